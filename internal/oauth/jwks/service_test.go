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

package jwks

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/jwks/constants"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
)

type applicationServiceMock struct {
	mock.Mock
}

func (m *applicationServiceMock) GetOAuthApplication(clientID string) (
	*appmodel.OAuthApplication, *serviceerror.ServiceError) {
	args := m.Called(clientID)
	var app *appmodel.OAuthApplication
	if args.Get(0) != nil {
		app = args.Get(0).(*appmodel.OAuthApplication)
	}
	var svcErr *serviceerror.ServiceError
	if args.Get(1) != nil {
		svcErr = args.Get(1).(*serviceerror.ServiceError)
	}
	return app, svcErr
}

func (m *applicationServiceMock) CreateOAuthApplication(app appmodel.OAuthApplication) *serviceerror.ServiceError {
	args := m.Called(app)
	if args.Get(0) != nil {
		return args.Get(0).(*serviceerror.ServiceError)
	}
	return nil
}

func (m *applicationServiceMock) DeleteOAuthApplication(clientID string) *serviceerror.ServiceError {
	args := m.Called(clientID)
	if args.Get(0) != nil {
		return args.Get(0).(*serviceerror.ServiceError)
	}
	return nil
}

func (m *applicationServiceMock) ValidateClientSecret(app *appmodel.OAuthApplication, clientSecret string) bool {
	args := m.Called(app, clientSecret)
	return args.Bool(0)
}

type JWKSServiceTestSuite struct {
	suite.Suite
	appService *applicationServiceMock
	service    *JWKSService
}

func TestJWKSServiceSuite(t *testing.T) {
	suite.Run(t, new(JWKSServiceTestSuite))
}

func (suite *JWKSServiceTestSuite) SetupTest() {
	suite.appService = &applicationServiceMock{}
	suite.service = &JWKSService{
		ApplicationService: suite.appService,
	}
}

func (suite *JWKSServiceTestSuite) selfSignedCertPEM() string {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "client123"},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(suite.T(), err)

	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func (suite *JWKSServiceTestSuite) TestGetClientJWKSFromCertificate() {
	certPEM := suite.selfSignedCertPEM()
	suite.appService.On("GetOAuthApplication", "client123").Return(
		&appmodel.OAuthApplication{ClientID: "client123", SigningCertificate: certPEM}, nil)

	response, svcErr := suite.service.GetClientJWKS("client123")

	require.Nil(suite.T(), svcErr)
	require.Len(suite.T(), response.Keys, 1)
	jwk := response.Keys[0]
	assert.Equal(suite.T(), "RSA", jwk.Kty)
	assert.Equal(suite.T(), "sig", jwk.Use)
	assert.NotEmpty(suite.T(), jwk.Kid)
	assert.NotEmpty(suite.T(), jwk.N)
	assert.NotEmpty(suite.T(), jwk.E)
	assert.NotEmpty(suite.T(), jwk.X5c)
}

func (suite *JWKSServiceTestSuite) TestGetClientJWKSFromPublicKey() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(suite.T(), err)
	pubPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	suite.appService.On("GetOAuthApplication", "client123").Return(
		&appmodel.OAuthApplication{ClientID: "client123", SigningCertificate: pubPEM}, nil)

	response, svcErr := suite.service.GetClientJWKS("client123")

	require.Nil(suite.T(), svcErr)
	require.Len(suite.T(), response.Keys, 1)
	assert.Equal(suite.T(), "RSA", response.Keys[0].Kty)
	assert.Empty(suite.T(), response.Keys[0].X5c)
}

func (suite *JWKSServiceTestSuite) TestGetClientJWKSUnknownClient() {
	suite.appService.On("GetOAuthApplication", "no-such-client").Return(nil, nil)

	response, svcErr := suite.service.GetClientJWKS("no-such-client")

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), constants.ErrorClientNotFound, svcErr)
}

func (suite *JWKSServiceTestSuite) TestGetClientJWKSClientWithoutCertificate() {
	suite.appService.On("GetOAuthApplication", "client123").Return(
		&appmodel.OAuthApplication{ClientID: "client123"}, nil)

	response, svcErr := suite.service.GetClientJWKS("client123")

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), constants.ErrorClientHasNoCertificate, svcErr)
}

func (suite *JWKSServiceTestSuite) TestGetClientJWKSInvalidCertificate() {
	invalidPEM := "-----BEGIN CERTIFICATE-----\naW52YWxpZA==\n-----END CERTIFICATE-----\n"
	suite.appService.On("GetOAuthApplication", "client123").Return(
		&appmodel.OAuthApplication{ClientID: "client123", SigningCertificate: invalidPEM}, nil)

	originalDescription := constants.ErrorWhileParsingCertificate.ErrorDescription

	response, svcErr := suite.service.GetClientJWKS("client123")

	assert.Nil(suite.T(), response)
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ErrorWhileParsingCertificate.Code, svcErr.Code)

	// The returned error carries the parse detail in a copy; the shared
	// package-level error must stay untouched.
	assert.NotSame(suite.T(), constants.ErrorWhileParsingCertificate, svcErr)
	assert.Equal(suite.T(), originalDescription, constants.ErrorWhileParsingCertificate.ErrorDescription)
	assert.NotEqual(suite.T(), originalDescription, svcErr.ErrorDescription)
}
