/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package jwt provides functionality for generating and verifying JWT tokens.
package jwt

import (
	"crypto"
	"crypto/hmac"
	"crypto/rsa"
	"crypto/sha512"
	"crypto/subtle"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/stratusid/stratus/internal/system/cert"
	"github.com/stratusid/stratus/internal/system/config"
	"github.com/stratusid/stratus/internal/system/utils"
)

const defaultTokenValidity = 3600 // default validity period of 1 hour
const defaultIssuer = "stratus"

// Signing algorithm names used in JWT headers.
const (
	AlgorithmRS512 = "RS512"
	AlgorithmHS512 = "HS512"
)

var (
	instance *JWTService
	once     sync.Once
)

// JWTServiceInterface defines the interface for JWT operations.
type JWTServiceInterface interface {
	Init() error
	GetPublicKey() *rsa.PublicKey
	GetCertificateKid() (string, error)
	GenerateJWT(sub, aud string, validityPeriod int64, claims map[string]interface{}) (string, int64, error)
	GenerateJWTWithKey(sub, aud string, validityPeriod int64, claims map[string]interface{},
		privateKey *rsa.PrivateKey, kid string) (string, int64, error)
	GenerateHS512JWT(sub, aud string, validityPeriod int64, claims map[string]interface{},
		secret []byte) (string, int64, error)
	VerifyJWTSignature(jwtToken string, jwtPublicKey *rsa.PublicKey) error
	VerifyHS512Signature(jwtToken string, secret []byte) error
}

// JWTService implements the JWTServiceInterface for generating and verifying JWT tokens.
type JWTService struct {
	privateKey               *rsa.PrivateKey
	SystemCertificateService cert.SystemCertificateServiceInterface
}

// GetJWTService returns a singleton instance of JWTService.
func GetJWTService() JWTServiceInterface {
	once.Do(func() {
		instance = &JWTService{
			SystemCertificateService: cert.NewSystemCertificateService(),
		}
	})
	return instance
}

// Init loads the server's signing key from the configured file path.
func (js *JWTService) Init() error {
	stratusRuntime := config.GetStratusRuntime()
	keyFilePath := path.Join(stratusRuntime.StratusHome, stratusRuntime.Config.Security.KeyFile)
	keyFilePath = filepath.Clean(keyFilePath)

	if _, err := os.Stat(keyFilePath); os.IsNotExist(err) {
		return errors.New("key file not found at " + keyFilePath)
	}

	keyData, err := os.ReadFile(keyFilePath)
	if err != nil {
		return err
	}

	privateKey, err := ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return err
	}
	js.privateKey = privateKey

	return nil
}

// GetPublicKey returns the RSA public key corresponding to the server's signing key.
func (js *JWTService) GetPublicKey() *rsa.PublicKey {
	if js.privateKey == nil {
		return nil
	}
	return &js.privateKey.PublicKey
}

// GetCertificateKid returns the Key ID (kid) of the server's signing certificate.
func (js *JWTService) GetCertificateKid() (string, error) {
	return js.SystemCertificateService.GetCertificateKid()
}

// GenerateJWT generates a RS512 signed JWT using the server's signing key.
func (js *JWTService) GenerateJWT(sub, aud string, validityPeriod int64, claims map[string]interface{}) (
	string, int64, error) {
	if js.privateKey == nil {
		return "", 0, errors.New("private key not loaded")
	}

	kid, err := js.SystemCertificateService.GetCertificateKid()
	if err != nil {
		return "", 0, err
	}

	return js.GenerateJWTWithKey(sub, aud, validityPeriod, claims, js.privateKey, kid)
}

// GenerateJWTWithKey generates a RS512 signed JWT using the provided private key and kid.
func (js *JWTService) GenerateJWTWithKey(sub, aud string, validityPeriod int64, claims map[string]interface{},
	privateKey *rsa.PrivateKey, kid string) (string, int64, error) {
	if privateKey == nil {
		return "", 0, errors.New("private key not provided")
	}

	signingInput, iat, err := buildSigningInput(AlgorithmRS512, kid, sub, aud, validityPeriod, claims)
	if err != nil {
		return "", 0, err
	}

	hashed := sha512.Sum512([]byte(signingInput))
	signature, err := rsa.SignPKCS1v15(nil, privateKey, crypto.SHA512, hashed[:])
	if err != nil {
		return "", 0, err
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), iat, nil
}

// GenerateHS512JWT generates a HS512 signed JWT using the provided shared secret.
func (js *JWTService) GenerateHS512JWT(sub, aud string, validityPeriod int64, claims map[string]interface{},
	secret []byte) (string, int64, error) {
	if len(secret) == 0 {
		return "", 0, errors.New("signing secret not provided")
	}

	signingInput, iat, err := buildSigningInput(AlgorithmHS512, "", sub, aud, validityPeriod, claims)
	if err != nil {
		return "", 0, err
	}

	mac := hmac.New(sha512.New, secret)
	mac.Write([]byte(signingInput))
	signature := mac.Sum(nil)

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), iat, nil
}

// buildSigningInput assembles the base64url encoded header and payload of a JWT.
func buildSigningInput(alg, kid, sub, aud string, validityPeriod int64,
	claims map[string]interface{}) (string, int64, error) {
	header := map[string]string{
		"alg": alg,
		"typ": "JWT",
	}
	if kid != "" {
		header["kid"] = kid
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", 0, err
	}

	if validityPeriod == 0 {
		validityPeriod = defaultTokenValidity
	}
	iat := time.Now()
	expirationTime := iat.Add(time.Duration(validityPeriod) * time.Second).Unix()

	payload := map[string]interface{}{
		"sub": sub,
		"iss": GetJWTTokenIssuer(),
		"aud": aud,
		"exp": expirationTime,
		"iat": iat.Unix(),
		"nbf": iat.Unix(),
		"jti": utils.GenerateUUID(),
	}

	for key, value := range claims {
		payload[key] = value
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", 0, err
	}

	headerBase64 := base64.RawURLEncoding.EncodeToString(headerJSON)
	payloadBase64 := base64.RawURLEncoding.EncodeToString(payloadJSON)

	return headerBase64 + "." + payloadBase64, iat.Unix(), nil
}

// VerifyJWTSignature verifies the RS512 signature of a JWT token using the provided public key.
func (js *JWTService) VerifyJWTSignature(jwtToken string, jwtPublicKey *rsa.PublicKey) error {
	parts := strings.Split(jwtToken, ".")
	if len(parts) != 3 {
		return errors.New("invalid JWT token format")
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("failed to decode JWT signature: %w", err)
	}

	signingInput := parts[0] + "." + parts[1]
	hashed := sha512.Sum512([]byte(signingInput))

	return rsa.VerifyPKCS1v15(jwtPublicKey, crypto.SHA512, hashed[:], signature)
}

// VerifyHS512Signature verifies the HS512 signature of a JWT token using the provided shared secret.
func (js *JWTService) VerifyHS512Signature(jwtToken string, secret []byte) error {
	parts := strings.Split(jwtToken, ".")
	if len(parts) != 3 {
		return errors.New("invalid JWT token format")
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("failed to decode JWT signature: %w", err)
	}

	mac := hmac.New(sha512.New, secret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	expected := mac.Sum(nil)

	if subtle.ConstantTimeCompare(signature, expected) != 1 {
		return errors.New("invalid token signature")
	}
	return nil
}

// ParseRSAPrivateKeyFromPEM parses a PEM encoded PKCS1 or PKCS8 RSA private key.
func ParseRSAPrivateKeyFromPEM(keyData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing private key")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("not an RSA private key")
		}
		return rsaKey, nil
	default:
		return nil, errors.New("unsupported private key type: " + block.Type)
	}
}

// ParseRSAPublicKeyFromPEM parses a PEM encoded PKIX RSA public key or certificate.
func ParseRSAPublicKeyFromPEM(keyData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}

	switch block.Type {
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("not an RSA public key")
		}
		return rsaKey, nil
	case "CERTIFICATE":
		parsedCert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := parsedCert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("certificate does not carry an RSA public key")
		}
		return rsaKey, nil
	default:
		return nil, errors.New("unsupported public key type: " + block.Type)
	}
}
