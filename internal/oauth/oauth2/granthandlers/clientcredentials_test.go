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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	"github.com/stratusid/stratus/internal/system/config"
)

type ClientCredentialsGrantHandlerTestSuite struct {
	suite.Suite
	mockAppService  *applicationServiceMock
	mockTokenIssuer *tokenIssuerMock
	handler         *clientCredentialsGrantHandler
	oauthApp        *appmodel.OAuthApplication
}

func TestClientCredentialsGrantHandlerSuite(t *testing.T) {
	suite.Run(t, new(ClientCredentialsGrantHandlerTestSuite))
}

func (suite *ClientCredentialsGrantHandlerTestSuite) SetupTest() {
	config.ResetStratusRuntime()
	testConfig := &config.Config{
		OAuth: config.OAuthConfig{
			JWT: config.JWTConfig{
				Issuer:         "https://test.stratus.io",
				ValidityPeriod: 3600,
			},
		},
	}
	err := config.InitializeStratusRuntime("", testConfig)
	assert.NoError(suite.T(), err)

	suite.mockAppService = &applicationServiceMock{}
	suite.mockTokenIssuer = &tokenIssuerMock{}
	suite.handler = &clientCredentialsGrantHandler{
		ApplicationService: suite.mockAppService,
		TokenIssuer:        suite.mockTokenIssuer,
	}

	suite.oauthApp = &appmodel.OAuthApplication{
		ClientID:           "c1",
		HashedClientSecret: "hashedsecret123",
		RedirectURIs:       []string{"https://example.com/callback"},
		AllowedGrantTypes:  []string{constants.GrantTypeClientCredentials},
	}
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestNewClientCredentialsGrantHandler() {
	handler := newClientCredentialsGrantHandler()
	assert.NotNil(suite.T(), handler)
	assert.Implements(suite.T(), (*GrantHandlerInterface)(nil), handler)
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestValidateGrant_Success() {
	tokenRequest := &model.TokenRequest{
		GrantType:    "client_credentials",
		ClientID:     "c1",
		ClientSecret: "s3cr3t",
		Scope:        "read",
	}

	result := suite.handler.ValidateGrant(tokenRequest, suite.oauthApp)
	assert.Nil(suite.T(), result)
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestValidateGrant_WrongGrantType() {
	tokenRequest := &model.TokenRequest{
		GrantType:    "authorization_code",
		ClientID:     "c1",
		ClientSecret: "s3cr3t",
	}

	result := suite.handler.ValidateGrant(tokenRequest, suite.oauthApp)
	assert.NotNil(suite.T(), result)
	assert.Equal(suite.T(), constants.ErrorUnsupportedGrantType, result.Error)
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestValidateGrant_MissingCredentials() {
	testCases := []struct {
		name         string
		clientID     string
		clientSecret string
	}{
		{"MissingClientID", "", "s3cr3t"},
		{"MissingClientSecret", "c1", ""},
		{"MissingBoth", "", ""},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			tokenRequest := &model.TokenRequest{
				GrantType:    "client_credentials",
				ClientID:     tc.clientID,
				ClientSecret: tc.clientSecret,
			}

			result := suite.handler.ValidateGrant(tokenRequest, suite.oauthApp)
			assert.NotNil(suite.T(), result)
			assert.Equal(suite.T(), constants.ErrorInvalidClient, result.Error)
			assert.Equal(suite.T(), "Client Id and secret are required", result.ErrorDescription)
		})
	}
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestHandleGrant_Success() {
	tokenRequest := &model.TokenRequest{
		GrantType:    "client_credentials",
		ClientID:     "c1",
		ClientSecret: "s3cr3t",
		Scope:        "read",
	}
	ctx := &model.RequestContext{}

	suite.mockAppService.On("ValidateClientSecret", suite.oauthApp, "s3cr3t").Return(true)
	suite.mockTokenIssuer.On("IssueAccessToken", suite.oauthApp, "c1", []string{"read"}).
		Return(&model.TokenDTO{
			Token:     "issued-access-token",
			TokenType: constants.TokenTypeBearer,
			ExpiresIn: 3600,
			Scopes:    []string{"read"},
			ClientID:  "c1",
			Subject:   "c1",
		}, nil)

	result, errResp := suite.handler.HandleGrant(tokenRequest, suite.oauthApp, ctx)

	assert.Nil(suite.T(), errResp)
	assert.NotNil(suite.T(), result)
	assert.Equal(suite.T(), "issued-access-token", result.AccessToken.Token)
	assert.Equal(suite.T(), constants.TokenTypeBearer, result.AccessToken.TokenType)
	assert.Equal(suite.T(), []string{"read"}, result.AccessToken.Scopes)
	assert.Equal(suite.T(), "c1", result.AccessToken.Subject)
	assert.Empty(suite.T(), result.RefreshToken.Token)
	assert.Equal(suite.T(), "c1", ctx.ClientID)

	suite.mockAppService.AssertExpectations(suite.T())
	suite.mockTokenIssuer.AssertExpectations(suite.T())
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestHandleGrant_InvalidClientSecret() {
	tokenRequest := &model.TokenRequest{
		GrantType:    "client_credentials",
		ClientID:     "c1",
		ClientSecret: "wrong-secret",
	}
	ctx := &model.RequestContext{}

	suite.mockAppService.On("ValidateClientSecret", suite.oauthApp, "wrong-secret").Return(false)

	result, errResp := suite.handler.HandleGrant(tokenRequest, suite.oauthApp, ctx)

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorInvalidClient, errResp.Error)

	suite.mockAppService.AssertExpectations(suite.T())
	suite.mockTokenIssuer.AssertNotCalled(suite.T(), "IssueAccessToken",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestHandleGrant_TokenIssuanceError() {
	tokenRequest := &model.TokenRequest{
		GrantType:    "client_credentials",
		ClientID:     "c1",
		ClientSecret: "s3cr3t",
		Scope:        "read",
	}
	ctx := &model.RequestContext{}

	suite.mockAppService.On("ValidateClientSecret", suite.oauthApp, "s3cr3t").Return(true)
	suite.mockTokenIssuer.On("IssueAccessToken", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("signing key unavailable"))

	result, errResp := suite.handler.HandleGrant(tokenRequest, suite.oauthApp, ctx)

	assert.Nil(suite.T(), result)
	assert.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorServerError, errResp.Error)
	assert.Equal(suite.T(), "Failed to generate token", errResp.ErrorDescription)
}

func (suite *ClientCredentialsGrantHandlerTestSuite) TestHandleGrant_NoScope() {
	tokenRequest := &model.TokenRequest{
		GrantType:    "client_credentials",
		ClientID:     "c1",
		ClientSecret: "s3cr3t",
		Scope:        "   ",
	}
	ctx := &model.RequestContext{}

	suite.mockAppService.On("ValidateClientSecret", suite.oauthApp, "s3cr3t").Return(true)
	suite.mockTokenIssuer.On("IssueAccessToken", suite.oauthApp, "c1", []string{}).
		Return(&model.TokenDTO{Token: "issued-access-token", ClientID: "c1", Subject: "c1"}, nil)

	result, errResp := suite.handler.HandleGrant(tokenRequest, suite.oauthApp, ctx)

	assert.Nil(suite.T(), errResp)
	assert.NotNil(suite.T(), result)
	assert.Empty(suite.T(), result.AccessToken.Scopes)
}
