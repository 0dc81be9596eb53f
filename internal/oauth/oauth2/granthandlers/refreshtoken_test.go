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

package granthandlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/config"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
)

const presentedRefreshToken = "presented-refresh-token-value"

type RefreshTokenGrantHandlerTestSuite struct {
	suite.Suite
	mockTokenStore  *tokenStoreMock
	mockTokenIssuer *tokenIssuerMock
	handler         *refreshTokenGrantHandler
	oauthApp        *appmodel.OAuthApplication
	record          store.TokenRecord
}

func TestRefreshTokenGrantHandlerSuite(t *testing.T) {
	suite.Run(t, new(RefreshTokenGrantHandlerTestSuite))
}

func (suite *RefreshTokenGrantHandlerTestSuite) SetupTest() {
	config.ResetStratusRuntime()
	err := config.InitializeStratusRuntime("", &config.Config{
		OAuth: config.OAuthConfig{
			JWT:          config.JWTConfig{Issuer: "https://test.stratus.io", ValidityPeriod: 3600},
			RefreshToken: config.RefreshTokenConfig{ValidityPeriod: 86400},
		},
	})
	assert.NoError(suite.T(), err)

	suite.mockTokenStore = &tokenStoreMock{}
	suite.mockTokenIssuer = &tokenIssuerMock{}
	suite.handler = &refreshTokenGrantHandler{
		TokenStore:  suite.mockTokenStore,
		TokenIssuer: suite.mockTokenIssuer,
	}

	suite.oauthApp = &appmodel.OAuthApplication{
		ClientID:          "client123",
		AllowedGrantTypes: []string{constants.GrantTypeAuthorizationCode, constants.GrantTypeRefreshToken},
	}

	suite.record = store.TokenRecord{
		TokenID:     "token-id-1",
		TokenHash:   hash.HashString(presentedRefreshToken),
		TokenKind:   store.TokenKindRefresh,
		ClientID:    "client123",
		Subject:     "user123",
		Scopes:      "read write",
		TimeCreated: time.Now(),
		ExpiryTime:  time.Now().Add(24 * time.Hour),
		State:       store.TokenStateActive,
	}
}

func (suite *RefreshTokenGrantHandlerTestSuite) tokenRequest() *model.TokenRequest {
	return &model.TokenRequest{
		GrantType:    "refresh_token",
		ClientID:     "client123",
		RefreshToken: presentedRefreshToken,
	}
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestValidateGrant_Success() {
	result := suite.handler.ValidateGrant(suite.tokenRequest(), suite.oauthApp)
	assert.Nil(suite.T(), result)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestValidateGrant_MissingRefreshToken() {
	tokenRequest := suite.tokenRequest()
	tokenRequest.RefreshToken = ""

	result := suite.handler.ValidateGrant(tokenRequest, suite.oauthApp)
	assert.NotNil(suite.T(), result)
	assert.Equal(suite.T(), constants.ErrorInvalidRequest, result.Error)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_RotationSuccess() {
	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(suite.record, nil)
	suite.mockTokenStore.On("ConsumeToken", "token-id-1").Return(nil)
	suite.mockTokenIssuer.On("IssueAccessToken", suite.oauthApp, "user123", []string{"read", "write"}).
		Return(&model.TokenDTO{Token: "new-access-token"}, nil)
	suite.mockTokenIssuer.On("IssueRefreshToken", suite.oauthApp, "user123", []string{"read", "write"},
		"token-id-1").Return(&model.TokenDTO{Token: "new-refresh-token"}, nil)

	ctx := &model.RequestContext{}
	result, errResp := suite.handler.HandleGrant(suite.tokenRequest(), suite.oauthApp, ctx)

	assert.Nil(suite.T(), errResp)
	assert.NotNil(suite.T(), result)
	assert.Equal(suite.T(), "new-access-token", result.AccessToken.Token)
	assert.Equal(suite.T(), "new-refresh-token", result.RefreshToken.Token)
	assert.Equal(suite.T(), "user123", ctx.Subject)

	// The old token is consumed before the replacement pair is minted, and
	// the new refresh token records its predecessor.
	suite.mockTokenStore.AssertExpectations(suite.T())
	suite.mockTokenIssuer.AssertExpectations(suite.T())
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_UnknownToken() {
	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(store.TokenRecord{}, store.ErrTokenNotFound)

	result, errResp := suite.handler.HandleGrant(suite.tokenRequest(), suite.oauthApp,
		&model.RequestContext{})

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorInvalidGrant, errResp.Error)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_RotatedTokenRejected() {
	// A token that lost the rotation race is inactive by the time the state
	// check runs, and the replay is rejected.
	record := suite.record
	record.State = store.TokenStateInactive
	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(record, nil)

	result, errResp := suite.handler.HandleGrant(suite.tokenRequest(), suite.oauthApp,
		&model.RequestContext{})

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorInvalidGrant, errResp.Error)
	assert.Equal(suite.T(), "Inactive refresh token", errResp.ErrorDescription)
	suite.mockTokenIssuer.AssertNotCalled(suite.T(), "IssueAccessToken",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_ConcurrentRotationLoses() {
	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(suite.record, nil)
	suite.mockTokenStore.On("ConsumeToken", "token-id-1").Return(store.ErrTokenAlreadyConsumed)

	result, errResp := suite.handler.HandleGrant(suite.tokenRequest(), suite.oauthApp,
		&model.RequestContext{})

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorInvalidGrant, errResp.Error)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_ExpiredToken() {
	record := suite.record
	record.ExpiryTime = time.Now().Add(-1 * time.Hour)
	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(record, nil)

	result, errResp := suite.handler.HandleGrant(suite.tokenRequest(), suite.oauthApp,
		&model.RequestContext{})

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorInvalidGrant, errResp.Error)
	assert.Equal(suite.T(), "Expired refresh token", errResp.ErrorDescription)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_ClientMismatch() {
	record := suite.record
	record.ClientID = "other-client"
	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(record, nil)

	result, errResp := suite.handler.HandleGrant(suite.tokenRequest(), suite.oauthApp,
		&model.RequestContext{})

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorInvalidGrant, errResp.Error)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_ScopeSubsetAllowed() {
	tokenRequest := suite.tokenRequest()
	tokenRequest.Scope = "read"

	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(suite.record, nil)
	suite.mockTokenStore.On("ConsumeToken", "token-id-1").Return(nil)
	suite.mockTokenIssuer.On("IssueAccessToken", suite.oauthApp, "user123", []string{"read"}).
		Return(&model.TokenDTO{Token: "new-access-token", Scopes: []string{"read"}}, nil)
	suite.mockTokenIssuer.On("IssueRefreshToken", suite.oauthApp, "user123", []string{"read"},
		"token-id-1").Return(&model.TokenDTO{Token: "new-refresh-token"}, nil)

	result, errResp := suite.handler.HandleGrant(tokenRequest, suite.oauthApp, &model.RequestContext{})

	assert.Nil(suite.T(), errResp)
	assert.NotNil(suite.T(), result)
	assert.Equal(suite.T(), []string{"read"}, result.AccessToken.Scopes)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrant_ScopeEscalationRejected() {
	tokenRequest := suite.tokenRequest()
	tokenRequest.Scope = "read write admin"

	suite.mockTokenStore.On("GetToken", suite.record.TokenHash, store.TokenKindRefresh).
		Return(suite.record, nil)

	result, errResp := suite.handler.HandleGrant(tokenRequest, suite.oauthApp, &model.RequestContext{})

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorInvalidScope, errResp.Error)
	suite.mockTokenStore.AssertNotCalled(suite.T(), "ConsumeToken", mock.Anything)
}
