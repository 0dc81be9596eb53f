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
	"errors"
	"strings"
	"time"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	appservice "github.com/stratusid/stratus/internal/application/service"
	"github.com/stratusid/stratus/internal/idp/backend"
	idpconstants "github.com/stratusid/stratus/internal/idp/constants"
	idpservice "github.com/stratusid/stratus/internal/idp/service"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/issuer"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	"github.com/stratusid/stratus/internal/system/log"
)

// authenticationTimeout bounds resource owner authentication against slow external backends.
const authenticationTimeout = 10 * time.Second

// passwordGrantHandler handles the resource owner password credentials grant type.
type passwordGrantHandler struct {
	ApplicationService  appservice.ApplicationServiceInterface
	RelyingPartyService idpservice.RelyingPartyServiceInterface
	TokenIssuer         issuer.TokenIssuerInterface
}

// newPasswordGrantHandler creates a new instance of PasswordGrantHandler.
func newPasswordGrantHandler() GrantHandlerInterface {
	return &passwordGrantHandler{
		ApplicationService:  appservice.GetApplicationService(),
		RelyingPartyService: idpservice.GetRelyingPartyService(),
		TokenIssuer:         issuer.NewTokenIssuer(),
	}
}

// ValidateGrant validates the password grant request.
func (h *passwordGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypePassword {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.ClientID == "" || tokenRequest.ClientSecret == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidClient,
			ErrorDescription: "Client Id and secret are required",
		}
	}
	if tokenRequest.Username == "" || tokenRequest.Password == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Username and password are required",
		}
	}

	return nil
}

// HandleGrant authenticates the resource owner against the relying party's
// identity backend and generates a token response.
func (h *passwordGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication, ctx *model.RequestContext) (
	*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PasswordGrantHandler"))

	if !h.ApplicationService.ValidateClientSecret(oauthApp, tokenRequest.ClientSecret) {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorInvalidClient,
			ErrorDescription: "Invalid client credentials",
		}
	}

	identityBackend, svcErr := h.RelyingPartyService.Resolve(tokenRequest.ClientID)
	if svcErr != nil {
		if svcErr.Code == idpconstants.ErrorMissingClientID.Code ||
			svcErr.Code == idpconstants.ErrorRelyingPartyNotConfigured.Code {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidRequest,
				ErrorDescription: svcErr.ErrorDescription,
			}
		}
		logger.Error("Failed to resolve relying party",
			log.String("errorCode", svcErr.Code))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to resolve relying party",
		}
	}

	authCtx, cancel := context.WithTimeout(context.Background(), authenticationTimeout)
	defer cancel()

	user, err := identityBackend.Authenticate(authCtx, tokenRequest.Username, tokenRequest.Password)
	if err != nil {
		if errors.Is(err, backend.ErrAuthenticationFailed) {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidGrant,
				ErrorDescription: "Invalid resource owner credentials",
			}
		}
		logger.Error("Resource owner authentication failed", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to authenticate resource owner",
		}
	}

	ctx.ClientID = oauthApp.ClientID
	ctx.Subject = user.ID
	scopes := strings.Fields(tokenRequest.Scope)

	accessToken, err := h.TokenIssuer.IssueAccessToken(oauthApp, user.ID, scopes)
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
		refreshToken, err := h.TokenIssuer.IssueRefreshToken(oauthApp, user.ID, scopes, "")
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
		idToken, err := h.TokenIssuer.IssueIDToken(oauthApp, user.ID, nil)
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
