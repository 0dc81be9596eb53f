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

package revoke

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
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

type TokenRevocationHandlerTestSuite struct {
	suite.Suite
	appService *applicationServiceMock
	tokenStore *tokenStoreMock
	handler    *TokenRevocationHandler
}

func TestTokenRevocationHandlerSuite(t *testing.T) {
	suite.Run(t, new(TokenRevocationHandlerTestSuite))
}

func (suite *TokenRevocationHandlerTestSuite) SetupTest() {
	suite.appService = &applicationServiceMock{}
	suite.tokenStore = &tokenStoreMock{}
	suite.handler = &TokenRevocationHandler{
		ApplicationService: suite.appService,
		TokenStore:         suite.tokenStore,
	}
}

func (suite *TokenRevocationHandlerTestSuite) postRevoke(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/oauth2/revoke", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	suite.handler.HandleRevoke(rr, req)
	return rr
}

func (suite *TokenRevocationHandlerTestSuite) expectAuthenticatedClient(clientID string) {
	oauthApp := &appmodel.OAuthApplication{ClientID: clientID}
	suite.appService.On("GetOAuthApplication", clientID).Return(oauthApp, nil)
	suite.appService.On("ValidateClientSecret", oauthApp, "secret123").Return(true)
}

func (suite *TokenRevocationHandlerTestSuite) TestRevokeOwnToken() {
	suite.expectAuthenticatedClient("client123")

	tokenHash := hash.HashString("opaque-token-value")
	suite.tokenStore.On("GetToken", tokenHash, store.TokenKindAccess).
		Return(store.TokenRecord{TokenID: "token-id-1", ClientID: "client123"}, nil)
	suite.tokenStore.On("RevokeToken", tokenHash).Return(nil)

	rr := suite.postRevoke(url.Values{
		"client_id":     {"client123"},
		"client_secret": {"secret123"},
		"token":         {"opaque-token-value"},
	})

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	suite.tokenStore.AssertCalled(suite.T(), "RevokeToken", tokenHash)
}

func (suite *TokenRevocationHandlerTestSuite) TestRevokeTokenOfAnotherClient() {
	suite.expectAuthenticatedClient("client123")

	tokenHash := hash.HashString("someone-elses-token")
	suite.tokenStore.On("GetToken", tokenHash, store.TokenKindAccess).
		Return(store.TokenRecord{TokenID: "token-id-2", ClientID: "other-client"}, nil)

	rr := suite.postRevoke(url.Values{
		"client_id":     {"client123"},
		"client_secret": {"secret123"},
		"token":         {"someone-elses-token"},
	})

	// A foreign token is treated as unknown: silent success, nothing revoked.
	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	suite.tokenStore.AssertNotCalled(suite.T(), "RevokeToken", mock.Anything)
}

func (suite *TokenRevocationHandlerTestSuite) TestRevokeUnknownToken() {
	suite.expectAuthenticatedClient("client123")

	tokenHash := hash.HashString("unknown-token")
	suite.tokenStore.On("GetToken", tokenHash, store.TokenKindAccess).
		Return(store.TokenRecord{}, store.ErrTokenNotFound)
	suite.tokenStore.On("GetToken", tokenHash, store.TokenKindRefresh).
		Return(store.TokenRecord{}, store.ErrTokenNotFound)

	rr := suite.postRevoke(url.Values{
		"client_id":     {"client123"},
		"client_secret": {"secret123"},
		"token":         {"unknown-token"},
	})

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	suite.tokenStore.AssertNotCalled(suite.T(), "RevokeToken", mock.Anything)
}

func (suite *TokenRevocationHandlerTestSuite) TestRevokeFallsBackToRefreshKind() {
	suite.expectAuthenticatedClient("client123")

	tokenHash := hash.HashString("refresh-token-value")
	suite.tokenStore.On("GetToken", tokenHash, store.TokenKindAccess).
		Return(store.TokenRecord{}, store.ErrTokenNotFound)
	suite.tokenStore.On("GetToken", tokenHash, store.TokenKindRefresh).
		Return(store.TokenRecord{TokenID: "token-id-3", ClientID: "client123"}, nil)
	suite.tokenStore.On("RevokeToken", tokenHash).Return(nil)

	rr := suite.postRevoke(url.Values{
		"client_id":     {"client123"},
		"client_secret": {"secret123"},
		"token":         {"refresh-token-value"},
	})

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	suite.tokenStore.AssertCalled(suite.T(), "RevokeToken", tokenHash)
}

func (suite *TokenRevocationHandlerTestSuite) TestMissingTokenParameter() {
	suite.expectAuthenticatedClient("client123")

	rr := suite.postRevoke(url.Values{
		"client_id":     {"client123"},
		"client_secret": {"secret123"},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	assert.Contains(suite.T(), rr.Body.String(), "invalid_request")
}

func (suite *TokenRevocationHandlerTestSuite) TestInvalidClientCredentials() {
	oauthApp := &appmodel.OAuthApplication{ClientID: "client123"}
	suite.appService.On("GetOAuthApplication", "client123").Return(oauthApp, nil)
	suite.appService.On("ValidateClientSecret", oauthApp, "wrong-secret").Return(false)

	rr := suite.postRevoke(url.Values{
		"client_id":     {"client123"},
		"client_secret": {"wrong-secret"},
		"token":         {"opaque-token-value"},
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
	suite.tokenStore.AssertNotCalled(suite.T(), "RevokeToken", mock.Anything)
}

func (suite *TokenRevocationHandlerTestSuite) TestUnknownClient() {
	suite.appService.On("GetOAuthApplication", "no-such-client").Return(nil, nil)

	rr := suite.postRevoke(url.Values{
		"client_id":     {"no-such-client"},
		"client_secret": {"secret123"},
		"token":         {"opaque-token-value"},
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
}
