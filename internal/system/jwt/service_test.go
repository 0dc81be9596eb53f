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

package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/stratusid/stratus/internal/system/config"
)

type JWTServiceTestSuite struct {
	suite.Suite
	service    *JWTService
	privateKey *rsa.PrivateKey
}

func TestJWTServiceSuite(t *testing.T) {
	suite.Run(t, new(JWTServiceTestSuite))
}

func (suite *JWTServiceTestSuite) SetupSuite() {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(suite.T(), err)
	suite.privateKey = privateKey
}

func (suite *JWTServiceTestSuite) SetupTest() {
	config.ResetStratusRuntime()
	err := config.InitializeStratusRuntime("", &config.Config{
		OAuth: config.OAuthConfig{
			JWT: config.JWTConfig{Issuer: "https://test.stratus.io", ValidityPeriod: 3600},
		},
	})
	assert.NoError(suite.T(), err)

	suite.service = &JWTService{privateKey: suite.privateKey}
}

func (suite *JWTServiceTestSuite) TestGenerateJWTWithKey_RoundTrip() {
	token, iat, err := suite.service.GenerateJWTWithKey("user123", "client123", 3600,
		map[string]interface{}{"scope": "read write"}, suite.privateKey, "test-kid")
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)
	assert.InDelta(suite.T(), time.Now().Unix(), iat, 5)

	err = suite.service.VerifyJWTSignature(token, &suite.privateKey.PublicKey)
	assert.NoError(suite.T(), err)

	header, err := DecodeJWTHeader(token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), AlgorithmRS512, header["alg"])
	assert.Equal(suite.T(), "test-kid", header["kid"])

	claims, err := DecodeJWTPayload(token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user123", claims["sub"])
	assert.Equal(suite.T(), "client123", claims["aud"])
	assert.Equal(suite.T(), "https://test.stratus.io", claims["iss"])
	assert.Equal(suite.T(), "read write", claims["scope"])
	assert.NotEmpty(suite.T(), claims["jti"])
}

func (suite *JWTServiceTestSuite) TestVerifyJWTSignature_WrongKey() {
	token, _, err := suite.service.GenerateJWTWithKey("user123", "client123", 3600, nil,
		suite.privateKey, "test-kid")
	assert.NoError(suite.T(), err)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(suite.T(), err)

	err = suite.service.VerifyJWTSignature(token, &otherKey.PublicKey)
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestVerifyJWTSignature_TamperedPayload() {
	token, _, err := suite.service.GenerateJWTWithKey("user123", "client123", 3600, nil,
		suite.privateKey, "test-kid")
	assert.NoError(suite.T(), err)

	tampered := token[:len(token)-len(".sig")] + "AAAA"
	err = suite.service.VerifyJWTSignature(tampered, &suite.privateKey.PublicKey)
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestGenerateHS512JWT_RoundTrip() {
	secret := []byte("shared-secret")
	token, _, err := suite.service.GenerateHS512JWT("", "", 3600,
		map[string]interface{}{"active": false}, secret)
	assert.NoError(suite.T(), err)

	err = suite.service.VerifyHS512Signature(token, secret)
	assert.NoError(suite.T(), err)

	err = suite.service.VerifyHS512Signature(token, []byte("other-secret"))
	assert.Error(suite.T(), err)

	claims, err := DecodeJWTPayload(token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), false, claims["active"])
}

func (suite *JWTServiceTestSuite) TestGenerateHS512JWT_MissingSecret() {
	_, _, err := suite.service.GenerateHS512JWT("", "", 3600, nil, nil)
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestGenerateJWT_NoPrivateKey() {
	service := &JWTService{}
	_, _, err := service.GenerateJWT("user123", "client123", 3600, nil)
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestDecodeJWT_InvalidFormat() {
	_, err := DecodeJWTPayload("not-a-jwt")
	assert.Error(suite.T(), err)

	_, err = DecodeJWTHeader("only.two")
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestParseRSAPrivateKeyFromPEM() {
	pkcs1 := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(suite.privateKey),
	})
	parsed, err := ParseRSAPrivateKeyFromPEM(pkcs1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.privateKey.N, parsed.N)

	pkcs8Bytes, err := x509.MarshalPKCS8PrivateKey(suite.privateKey)
	assert.NoError(suite.T(), err)
	pkcs8 := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8Bytes})
	parsed, err = ParseRSAPrivateKeyFromPEM(pkcs8)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.privateKey.N, parsed.N)

	_, err = ParseRSAPrivateKeyFromPEM([]byte("not-pem"))
	assert.Error(suite.T(), err)
}

func (suite *JWTServiceTestSuite) TestParseRSAPublicKeyFromPEM() {
	pkixBytes, err := x509.MarshalPKIXPublicKey(&suite.privateKey.PublicKey)
	assert.NoError(suite.T(), err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkixBytes})

	parsed, err := ParseRSAPublicKeyFromPEM(pubPEM)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.privateKey.PublicKey.N, parsed.N)
}

func (suite *JWTServiceTestSuite) TestGetJWTTokenIssuer_Default() {
	config.ResetStratusRuntime()
	err := config.InitializeStratusRuntime("", &config.Config{})
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), defaultIssuer, GetJWTTokenIssuer())
	assert.Equal(suite.T(), int64(defaultTokenValidity), GetJWTTokenValidityPeriod())
}
