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

package introspect

import (
	"crypto/rsa"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/config"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
)

type tokenStoreMock struct {
	mock.Mock
}

func (m *tokenStoreMock) InsertToken(token store.TokenRecord) error {
	return m.Called(token).Error(0)
}

func (m *tokenStoreMock) GetToken(tokenHash, tokenKind string) (store.TokenRecord, error) {
	args := m.Called(tokenHash, tokenKind)
	return args.Get(0).(store.TokenRecord), args.Error(1)
}

func (m *tokenStoreMock) ConsumeToken(tokenID string) error {
	return m.Called(tokenID).Error(0)
}

func (m *tokenStoreMock) RevokeToken(tokenHash string) error {
	return m.Called(tokenHash).Error(0)
}

func (m *tokenStoreMock) PurgeExpiredTokens() error {
	return m.Called().Error(0)
}

type jwtServiceMock struct {
	mock.Mock
}

func (m *jwtServiceMock) Init() error {
	return m.Called().Error(0)
}

func (m *jwtServiceMock) GetPublicKey() *rsa.PublicKey {
	args := m.Called()
	if args.Get(0) != nil {
		return args.Get(0).(*rsa.PublicKey)
	}
	return nil
}

func (m *jwtServiceMock) GetCertificateKid() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *jwtServiceMock) GenerateJWT(sub, aud string, validityPeriod int64,
	claims map[string]interface{}) (string, int64, error) {
	args := m.Called(sub, aud, validityPeriod, claims)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *jwtServiceMock) GenerateJWTWithKey(sub, aud string, validityPeriod int64,
	claims map[string]interface{}, privateKey *rsa.PrivateKey, kid string) (string, int64, error) {
	args := m.Called(sub, aud, validityPeriod, claims, privateKey, kid)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *jwtServiceMock) GenerateHS512JWT(sub, aud string, validityPeriod int64,
	claims map[string]interface{}, secret []byte) (string, int64, error) {
	args := m.Called(sub, aud, validityPeriod, claims, secret)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *jwtServiceMock) VerifyJWTSignature(jwtToken string, jwtPublicKey *rsa.PublicKey) error {
	return m.Called(jwtToken, jwtPublicKey).Error(0)
}

func (m *jwtServiceMock) VerifyHS512Signature(jwtToken string, secret []byte) error {
	return m.Called(jwtToken, secret).Error(0)
}

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

func (m *applicationServiceMock) ValidateClientSecret(app *appmodel.OAuthApplication,
	clientSecret string) bool {
	args := m.Called(app, clientSecret)
	return args.Bool(0)
}

type TokenIntrospectionServiceTestSuite struct {
	suite.Suite
	mockTokenStore *tokenStoreMock
	mockJWTService *jwtServiceMock
	mockAppService *applicationServiceMock
	service        *TokenIntrospectionService
}

func TestTokenIntrospectionServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenIntrospectionServiceTestSuite))
}

func (suite *TokenIntrospectionServiceTestSuite) SetupTest() {
	config.ResetStratusRuntime()
	err := config.InitializeStratusRuntime("", &config.Config{
		OAuth: config.OAuthConfig{
			JWT:           config.JWTConfig{Issuer: "https://test.stratus.io", ValidityPeriod: 3600},
			Introspection: config.IntrospectionConfig{SigningSecret: "introspection-secret"},
		},
	})
	assert.NoError(suite.T(), err)

	suite.mockTokenStore = &tokenStoreMock{}
	suite.mockJWTService = &jwtServiceMock{}
	suite.mockAppService = &applicationServiceMock{}
	suite.service = &TokenIntrospectionService{
		JWTService:         suite.mockJWTService,
		TokenStore:         suite.mockTokenStore,
		ApplicationService: suite.mockAppService,
	}
}

func (suite *TokenIntrospectionServiceTestSuite) activeRecord(token string) store.TokenRecord {
	return store.TokenRecord{
		TokenID:     "token-id-1",
		TokenHash:   hash.HashString(token),
		TokenKind:   store.TokenKindAccess,
		ClientID:    "client123",
		Subject:     "user123",
		Scopes:      "read write",
		TimeCreated: time.Now().Add(-1 * time.Minute),
		ExpiryTime:  time.Now().Add(1 * time.Hour),
		State:       store.TokenStateActive,
	}
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectToken_EmptyToken() {
	response, err := suite.service.IntrospectToken("", "")
	assert.Nil(suite.T(), response)
	assert.Error(suite.T(), err)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectToken_ActiveOpaqueToken() {
	token := "opaque-access-token-value"
	record := suite.activeRecord(token)

	suite.mockTokenStore.On("GetToken", record.TokenHash, store.TokenKindAccess).Return(record, nil)

	response, err := suite.service.IntrospectToken(token, "")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), response.Active)
	assert.Equal(suite.T(), "read write", response.Scope)
	assert.Equal(suite.T(), "client123", response.ClientID)
	assert.Equal(suite.T(), "user123", response.Sub)
	assert.Equal(suite.T(), record.ExpiryTime.Unix(), response.Exp)
	assert.Equal(suite.T(), "token-id-1", response.Jti)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectToken_UnknownOpaqueToken() {
	token := "unknown-token-value"
	tokenHash := hash.HashString(token)

	suite.mockTokenStore.On("GetToken", tokenHash, store.TokenKindAccess).
		Return(store.TokenRecord{}, store.ErrTokenNotFound)
	suite.mockTokenStore.On("GetToken", tokenHash, store.TokenKindRefresh).
		Return(store.TokenRecord{}, store.ErrTokenNotFound)

	response, err := suite.service.IntrospectToken(token, "")

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Active)
	assert.Empty(suite.T(), response.Scope)
	assert.Empty(suite.T(), response.ClientID)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectToken_RevokedToken() {
	token := "revoked-token-value"
	record := suite.activeRecord(token)
	record.State = store.TokenStateRevoked

	suite.mockTokenStore.On("GetToken", record.TokenHash, store.TokenKindAccess).Return(record, nil)

	response, err := suite.service.IntrospectToken(token, "")

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Active)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectToken_ExpiredToken() {
	token := "expired-token-value"
	record := suite.activeRecord(token)
	record.ExpiryTime = time.Now().Add(-1 * time.Minute)

	suite.mockTokenStore.On("GetToken", record.TokenHash, store.TokenKindAccess).Return(record, nil)

	response, err := suite.service.IntrospectToken(token, "")

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Active)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectToken_RefreshTokenHintOrdering() {
	token := "opaque-refresh-token-value"
	record := suite.activeRecord(token)
	record.TokenKind = store.TokenKindRefresh

	// With the refresh_token hint the refresh kind is probed first.
	suite.mockTokenStore.On("GetToken", record.TokenHash, store.TokenKindRefresh).Return(record, nil)

	response, err := suite.service.IntrospectToken(token, "refresh_token")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), response.Active)
	suite.mockTokenStore.AssertNotCalled(suite.T(), "GetToken", record.TokenHash, store.TokenKindAccess)
}

func (suite *TokenIntrospectionServiceTestSuite) TestIntrospectToken_MalformedJWT() {
	// Structured like a JWT but with an undecodable payload. Malformed input
	// is an inactive token, not a server error.
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS512","typ":"JWT"}`))
	token := header + ".!not-base64!.signature"

	response, err := suite.service.IntrospectToken(token, "")

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Active)
}

func (suite *TokenIntrospectionServiceTestSuite) TestBuildSignedResponse_InactiveUsesServerSecret() {
	response := &IntrospectResponse{Active: false}

	suite.mockJWTService.On("GenerateHS512JWT", "", "", int64(3600), mock.Anything,
		[]byte("introspection-secret")).Return("signed-inactive-response", int64(0), nil)

	signed, err := suite.service.BuildSignedResponse(response)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "signed-inactive-response", signed)
	suite.mockJWTService.AssertExpectations(suite.T())
}

func (suite *TokenIntrospectionServiceTestSuite) TestBuildSignedResponse_InactiveWithoutSecret() {
	config.ResetStratusRuntime()
	err := config.InitializeStratusRuntime("", &config.Config{})
	assert.NoError(suite.T(), err)

	_, err = suite.service.BuildSignedResponse(&IntrospectResponse{Active: false})
	assert.Error(suite.T(), err)
}

func (suite *TokenIntrospectionServiceTestSuite) TestBuildSignedResponse_ActiveUsesServerKeyFallback() {
	response := &IntrospectResponse{
		Active:   true,
		ClientID: "client123",
		Sub:      "user123",
		Scope:    "read",
	}

	suite.mockAppService.On("GetOAuthApplication", "client123").
		Return(&appmodel.OAuthApplication{ClientID: "client123"}, nil)
	suite.mockJWTService.On("GenerateJWT", "user123", "client123", int64(3600), mock.Anything).
		Return("signed-active-response", int64(0), nil)

	signed, err := suite.service.BuildSignedResponse(response)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "signed-active-response", signed)
}

func (suite *TokenIntrospectionServiceTestSuite) TestBuildSignedResponse_ActiveUnknownClient() {
	suite.mockAppService.On("GetOAuthApplication", "ghost").Return(nil, nil)

	_, err := suite.service.BuildSignedResponse(&IntrospectResponse{Active: true, ClientID: "ghost"})
	assert.Error(suite.T(), err)
}
