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
	"strings"
	"time"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	authzconstants "github.com/stratusid/stratus/internal/oauth/oauth2/authz/constants"
	authzmodel "github.com/stratusid/stratus/internal/oauth/oauth2/authz/model"
	authzstore "github.com/stratusid/stratus/internal/oauth/oauth2/authz/store"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/issuer"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	"github.com/stratusid/stratus/internal/system/crypto/pkce"
	"github.com/stratusid/stratus/internal/system/log"
)

// authorizationCodeGrantHandler handles the authorization code grant type.
type authorizationCodeGrantHandler struct {
	AuthorizationCodeStore authzstore.AuthorizationCodeStoreInterface
	TokenIssuer            issuer.TokenIssuerInterface
}

// newAuthorizationCodeGrantHandler creates a new instance of AuthorizationCodeGrantHandler.
func newAuthorizationCodeGrantHandler() GrantHandlerInterface {
	return &authorizationCodeGrantHandler{
		AuthorizationCodeStore: authzstore.NewAuthorizationCodeStore(),
		TokenIssuer:            issuer.NewTokenIssuer(),
	}
}

// ValidateGrant validates the authorization code grant request.
func (h *authorizationCodeGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypeAuthorizationCode {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.ClientID == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Client Id is required",
		}
	}
	if tokenRequest.Code == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Authorization code is required",
		}
	}

	return nil
}

// HandleGrant processes the authorization code grant request and generates a token response.
func (h *authorizationCodeGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication, ctx *model.RequestContext) (
	*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationCodeGrantHandler"))

	authzCode, err := h.AuthorizationCodeStore.GetAuthorizationCode(tokenRequest.ClientID, tokenRequest.Code)
	if err != nil {
		if errors.Is(err, authzconstants.ErrAuthorizationCodeNotFound) {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidGrant,
				ErrorDescription: "Invalid authorization code",
			}
		}
		logger.Error("Failed to retrieve authorization code", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to retrieve authorization code",
		}
	}

	if errResp := h.validateAuthorizationCode(tokenRequest, authzCode); errResp != nil {
		return nil, errResp
	}
	if errResp := h.validateCodeVerifier(tokenRequest, authzCode); errResp != nil {
		return nil, errResp
	}

	// Atomic deactivation ensures a single redemption even under concurrent requests.
	if err := h.AuthorizationCodeStore.ConsumeAuthorizationCode(authzCode); err != nil {
		if errors.Is(err, authzconstants.ErrAuthorizationCodeAlreadyConsumed) {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidGrant,
				ErrorDescription: "Invalid authorization code",
			}
		}
		logger.Error("Failed to consume authorization code", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to consume authorization code",
		}
	}

	ctx.ClientID = oauthApp.ClientID
	ctx.Subject = authzCode.AuthorizedUserID
	scopes := strings.Fields(authzCode.Scopes)

	accessToken, err := h.TokenIssuer.IssueAccessToken(oauthApp, authzCode.AuthorizedUserID, scopes)
	if err != nil {
		logger.Error("Failed to generate access token", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to generate token",
		}
	}

	tokenResponse := &model.TokenResponseDTO{
		AccessToken: *accessToken,
	}

	if oauthApp.IsAllowedGrantType(constants.GrantTypeRefreshToken) {
		refreshToken, err := h.TokenIssuer.IssueRefreshToken(oauthApp, authzCode.AuthorizedUserID, scopes, "")
		if err != nil {
			logger.Error("Failed to generate refresh token", log.Error(err))
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorServerError,
				ErrorDescription: "Failed to generate token",
			}
		}
		tokenResponse.RefreshToken = *refreshToken
	}

	if oauthApp.OIDCEnabled && containsScope(scopes, "openid") {
		idToken, err := h.TokenIssuer.IssueIDToken(oauthApp, authzCode.AuthorizedUserID, nil)
		if err != nil {
			logger.Error("Failed to generate id token", log.Error(err))
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorServerError,
				ErrorDescription: "Failed to generate token",
			}
		}
		tokenResponse.IDToken = idToken
	}

	return tokenResponse, nil
}

// validateAuthorizationCode validates the state and ownership of the authorization code.
func (h *authorizationCodeGrantHandler) validateAuthorizationCode(tokenRequest *model.TokenRequest,
	authzCode authzmodel.AuthorizationCode) *model.ErrorResponse {
	if authzCode.ClientID != tokenRequest.ClientID {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid authorization code",
		}
	}
	if authzCode.RedirectURI != "" && authzCode.RedirectURI != tokenRequest.RedirectURI {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid redirect URI",
		}
	}
	if authzCode.State != authzconstants.AuthCodeStateActive {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Inactive authorization code",
		}
	}
	if authzCode.ExpiryTime.Before(time.Now()) {
		if err := h.AuthorizationCodeStore.ExpireAuthorizationCode(authzCode); err != nil {
			log.GetLogger().Error("Failed to mark authorization code as expired", log.Error(err))
		}
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Expired authorization code",
		}
	}

	return nil
}

// validateCodeVerifier enforces PKCE when the authorization request carried a code challenge.
func (h *authorizationCodeGrantHandler) validateCodeVerifier(tokenRequest *model.TokenRequest,
	authzCode authzmodel.AuthorizationCode) *model.ErrorResponse {
	if authzCode.CodeChallenge == "" {
		return nil
	}
	if tokenRequest.CodeVerifier == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Code verifier is required",
		}
	}
	if err := pkce.ValidatePKCE(authzCode.CodeChallenge, authzCode.CodeChallengeMethod,
		tokenRequest.CodeVerifier); err != nil {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "PKCE validation failed",
		}
	}

	return nil
}

// containsScope reports whether the scope list contains the given scope.
func containsScope(scopes []string, scope string) bool {
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}
