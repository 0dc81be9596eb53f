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
	"context"

	"github.com/stretchr/testify/mock"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/idp/backend"
	idpmodel "github.com/stratusid/stratus/internal/idp/model"
	authzmodel "github.com/stratusid/stratus/internal/oauth/oauth2/authz/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
	usermodel "github.com/stratusid/stratus/internal/user/model"
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

type tokenIssuerMock struct {
	mock.Mock
}

func (m *tokenIssuerMock) IssueAccessToken(oauthApp *appmodel.OAuthApplication, subject string,
	scopes []string) (*model.TokenDTO, error) {
	args := m.Called(oauthApp, subject, scopes)
	var token *model.TokenDTO
	if args.Get(0) != nil {
		token = args.Get(0).(*model.TokenDTO)
	}
	return token, args.Error(1)
}

func (m *tokenIssuerMock) IssueRefreshToken(oauthApp *appmodel.OAuthApplication, subject string,
	scopes []string, rotatedFrom string) (*model.TokenDTO, error) {
	args := m.Called(oauthApp, subject, scopes, rotatedFrom)
	var token *model.TokenDTO
	if args.Get(0) != nil {
		token = args.Get(0).(*model.TokenDTO)
	}
	return token, args.Error(1)
}

func (m *tokenIssuerMock) IssueIDToken(oauthApp *appmodel.OAuthApplication, subject string,
	claims map[string]interface{}) (string, error) {
	args := m.Called(oauthApp, subject, claims)
	return args.String(0), args.Error(1)
}

type authorizationCodeStoreMock struct {
	mock.Mock
}

func (m *authorizationCodeStoreMock) InsertAuthorizationCode(authzCode authzmodel.AuthorizationCode) error {
	return m.Called(authzCode).Error(0)
}

func (m *authorizationCodeStoreMock) GetAuthorizationCode(clientID, authCode string) (
	authzmodel.AuthorizationCode, error) {
	args := m.Called(clientID, authCode)
	return args.Get(0).(authzmodel.AuthorizationCode), args.Error(1)
}

func (m *authorizationCodeStoreMock) ConsumeAuthorizationCode(authzCode authzmodel.AuthorizationCode) error {
	return m.Called(authzCode).Error(0)
}

func (m *authorizationCodeStoreMock) RevokeAuthorizationCode(authzCode authzmodel.AuthorizationCode) error {
	return m.Called(authzCode).Error(0)
}

func (m *authorizationCodeStoreMock) ExpireAuthorizationCode(authzCode authzmodel.AuthorizationCode) error {
	return m.Called(authzCode).Error(0)
}

func (m *authorizationCodeStoreMock) PurgeExpiredAuthorizationCodes() error {
	return m.Called().Error(0)
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

type relyingPartyServiceMock struct {
	mock.Mock
}

func (m *relyingPartyServiceMock) Resolve(clientID string) (
	backend.IdentityBackend, *serviceerror.ServiceError) {
	args := m.Called(clientID)
	var b backend.IdentityBackend
	if args.Get(0) != nil {
		b = args.Get(0).(backend.IdentityBackend)
	}
	var svcErr *serviceerror.ServiceError
	if args.Get(1) != nil {
		svcErr = args.Get(1).(*serviceerror.ServiceError)
	}
	return b, svcErr
}

func (m *relyingPartyServiceMock) GetRelyingParty(clientID string) (
	*idpmodel.RelyingParty, *serviceerror.ServiceError) {
	args := m.Called(clientID)
	var rp *idpmodel.RelyingParty
	if args.Get(0) != nil {
		rp = args.Get(0).(*idpmodel.RelyingParty)
	}
	var svcErr *serviceerror.ServiceError
	if args.Get(1) != nil {
		svcErr = args.Get(1).(*serviceerror.ServiceError)
	}
	return rp, svcErr
}

func (m *relyingPartyServiceMock) CreateRelyingParty(rp idpmodel.RelyingParty) (
	*idpmodel.RelyingParty, *serviceerror.ServiceError) {
	args := m.Called(rp)
	var created *idpmodel.RelyingParty
	if args.Get(0) != nil {
		created = args.Get(0).(*idpmodel.RelyingParty)
	}
	var svcErr *serviceerror.ServiceError
	if args.Get(1) != nil {
		svcErr = args.Get(1).(*serviceerror.ServiceError)
	}
	return created, svcErr
}

func (m *relyingPartyServiceMock) DeleteRelyingParty(clientID string) *serviceerror.ServiceError {
	args := m.Called(clientID)
	if args.Get(0) != nil {
		return args.Get(0).(*serviceerror.ServiceError)
	}
	return nil
}

type identityBackendMock struct {
	mock.Mock
}

func (m *identityBackendMock) Authenticate(ctx context.Context, username, password string) (
	*usermodel.User, error) {
	args := m.Called(ctx, username, password)
	var user *usermodel.User
	if args.Get(0) != nil {
		user = args.Get(0).(*usermodel.User)
	}
	return user, args.Error(1)
}

func (m *identityBackendMock) FetchProfile(ctx context.Context, userID string) (*usermodel.User, error) {
	args := m.Called(ctx, userID)
	var user *usermodel.User
	if args.Get(0) != nil {
		user = args.Get(0).(*usermodel.User)
	}
	return user, args.Error(1)
}

func (m *identityBackendMock) InitiateRegistration(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}
