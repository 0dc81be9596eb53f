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

// Package jwks provides the implementation for retrieving JSON Web Key Sets (JWKS).
package jwks

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/pem"
	"strings"

	"crypto/x509"

	// Use crypto/sha1 only for JWKS x5t as required by spec for thumbprint.
	"crypto/sha1" //nolint:gosec

	appservice "github.com/stratusid/stratus/internal/application/service"
	"github.com/stratusid/stratus/internal/oauth/jwks/constants"
	"github.com/stratusid/stratus/internal/oauth/jwks/model"
	"github.com/stratusid/stratus/internal/system/cert"
	"github.com/stratusid/stratus/internal/system/config"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
	"github.com/stratusid/stratus/internal/system/jwt"
)

// JWKSServiceInterface defines the interface for JWKS service.
type JWKSServiceInterface interface {
	GetJWKS() (*model.JWKSResponse, *serviceerror.ServiceError)
	// GetClientJWKS publishes the public key registered for the given client.
	// Clients without a signing certificate of their own verify against the
	// server key set instead.
	GetClientJWKS(clientID string) (*model.JWKSResponse, *serviceerror.ServiceError)
}

// JWKSService implements the JWKSServiceInterface.
type JWKSService struct {
	SystemCertService  cert.SystemCertificateServiceInterface
	ApplicationService appservice.ApplicationServiceInterface
}

// NewJWKSService creates a new instance of JWKSService.
func NewJWKSService() JWKSServiceInterface {
	return &JWKSService{
		SystemCertService:  cert.NewSystemCertificateService(),
		ApplicationService: appservice.GetApplicationService(),
	}
}

// GetJWKS retrieves the JSON Web Key Set (JWKS) from the server's TLS certificate.
func (s *JWKSService) GetJWKS() (*model.JWKSResponse, *serviceerror.ServiceError) {
	stratusRuntime := config.GetStratusRuntime()

	kid, err := s.SystemCertService.GetCertificateKid()
	if err != nil {
		// Copy before editing the description; the package-level error is shared.
		svcErr := *constants.ErrorWhileRetrievingCertificateKid
		svcErr.ErrorDescription = err.Error()
		return nil, &svcErr
	}

	tlsConfig, err := s.SystemCertService.GetTLSConfig(&stratusRuntime.Config, stratusRuntime.StratusHome)
	if err != nil {
		svcErr := *constants.ErrorWhileRetrievingTLSConfig
		svcErr.ErrorDescription = err.Error()
		return nil, &svcErr
	}

	if len(tlsConfig.Certificates) == 0 || len(tlsConfig.Certificates[0].Certificate) == 0 {
		return nil, constants.ErrorNoCertificateFound
	}

	certData := tlsConfig.Certificates[0].Certificate[0]
	parsedCert, err := x509.ParseCertificate(certData)
	if err != nil {
		svcErr := *constants.ErrorWhileParsingCertificate
		svcErr.ErrorDescription = err.Error()
		return nil, &svcErr
	}

	jwk, svcErr := buildJWKFromCertificate(parsedCert, kid)
	if svcErr != nil {
		return nil, svcErr
	}

	return &model.JWKSResponse{
		Keys: []model.JWKS{*jwk},
	}, nil
}

// GetClientJWKS publishes the JWKS derived from the client's stored signing certificate.
func (s *JWKSService) GetClientJWKS(clientID string) (*model.JWKSResponse, *serviceerror.ServiceError) {
	oauthApp, appErr := s.ApplicationService.GetOAuthApplication(clientID)
	if appErr != nil || oauthApp == nil {
		return nil, constants.ErrorClientNotFound
	}
	if oauthApp.SigningCertificate == "" {
		return nil, constants.ErrorClientHasNoCertificate
	}

	block, _ := pem.Decode([]byte(oauthApp.SigningCertificate))
	if block == nil {
		return nil, constants.ErrorWhileParsingCertificate
	}

	if block.Type == "CERTIFICATE" {
		parsedCert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			svcErr := *constants.ErrorWhileParsingCertificate
			svcErr.ErrorDescription = err.Error()
			return nil, &svcErr
		}

		h := sha256.New()
		h.Write(parsedCert.Raw)
		kid := base64.StdEncoding.EncodeToString(h.Sum(nil))

		jwk, svcErr := buildJWKFromCertificate(parsedCert, kid)
		if svcErr != nil {
			return nil, svcErr
		}
		return &model.JWKSResponse{Keys: []model.JWKS{*jwk}}, nil
	}

	// A bare public key block carries no x5c chain; publish n and e only. The
	// kid matches the one the issuer stamps into token headers.
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(oauthApp.SigningCertificate))
	if err != nil {
		svcErr := *constants.ErrorWhileParsingCertificate
		svcErr.ErrorDescription = err.Error()
		return nil, &svcErr
	}
	publicKeyDER, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		svcErr := *constants.ErrorWhileParsingCertificate
		svcErr.ErrorDescription = err.Error()
		return nil, &svcErr
	}

	jwk := buildJWKFromRSAKey(publicKey, hash.Hash(publicKeyDER))
	return &model.JWKSResponse{Keys: []model.JWKS{*jwk}}, nil
}

// buildJWKFromCertificate builds a JWK from a parsed X.509 certificate.
func buildJWKFromCertificate(parsedCert *x509.Certificate, kid string) (
	*model.JWKS, *serviceerror.ServiceError) {
	pub, ok := parsedCert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, constants.ErrorUnsupportedPublicKeyType
	}

	jwk := buildJWKFromRSAKey(pub, kid)

	// x5c: base64 DER encoding
	jwk.X5c = []string{base64.StdEncoding.EncodeToString(parsedCert.Raw)}

	// x5t: SHA-1 thumbprint, x5t#S256: SHA-256 thumbprint
	sha1Sum := sha1.Sum(parsedCert.Raw) //nolint:gosec // x5t (SHA-1 thumbprint) is required by spec
	jwk.X5t = base64.StdEncoding.EncodeToString(sha1Sum[:])
	h := sha256.New()
	h.Write(parsedCert.Raw)
	jwk.X5tS256 = base64.StdEncoding.EncodeToString(h.Sum(nil))

	return jwk, nil
}

// buildJWKFromRSAKey builds a JWK from an RSA public key.
func buildJWKFromRSAKey(pub *rsa.PublicKey, kid string) *model.JWKS {
	encodeBase64URL := func(b []byte) string {
		return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
	}

	n := encodeBase64URL(pub.N.Bytes())
	// Properly encode the exponent as a big-endian byte slice, trimmed of leading zeros
	eBytes := make([]byte, 0, 8)
	e := pub.E
	for e > 0 {
		eBytes = append([]byte{byte(e & 0xff)}, eBytes...)
		e >>= 8
	}
	if len(eBytes) == 0 {
		eBytes = []byte{0}
	}

	return &model.JWKS{
		Kid: kid,
		Kty: "RSA",
		Use: "sig",
		Alg: jwt.AlgorithmRS512,
		N:   n,
		E:   encodeBase64URL(eBytes),
	}
}
