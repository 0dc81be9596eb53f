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
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/issuer"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/log"
)

// refreshTokenGrantHandler handles the refresh token grant type.
type refreshTokenGrantHandler struct {
	TokenStore  store.TokenStoreInterface
	TokenIssuer issuer.TokenIssuerInterface
}

// newRefreshTokenGrantHandler creates a new instance of RefreshTokenGrantHandler.
func newRefreshTokenGrantHandler() GrantHandlerInterface {
	return &refreshTokenGrantHandler{
		TokenStore:  store.NewTokenStore(),
		TokenIssuer: issuer.NewTokenIssuer(),
	}
}

// ValidateGrant validates the refresh token grant request.
func (h *refreshTokenGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypeRefreshToken {
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
	if tokenRequest.RefreshToken == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Refresh token is required",
		}
	}

	return nil
}

// HandleGrant rotates the presented refresh token and generates a token
// response. The old refresh token is invalidated before the new pair is
// minted, so it cannot be replayed.
func (h *refreshTokenGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication, ctx *model.RequestContext) (
	*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RefreshTokenGrantHandler"))

	tokenHash := hash.HashString(tokenRequest.RefreshToken)
	record, err := h.TokenStore.GetToken(tokenHash, store.TokenKindRefresh)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidGrant,
				ErrorDescription: "Invalid refresh token",
			}
		}
		logger.Error("Failed to retrieve refresh token", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to retrieve refresh token",
		}
	}

	if record.ClientID != tokenRequest.ClientID {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid refresh token",
		}
	}
	if record.State != store.TokenStateActive {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Inactive refresh token",
		}
	}
	if record.IsExpired(time.Now()) {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Expired refresh token",
		}
	}

	grantedScopes := strings.Fields(record.Scopes)
	scopes := grantedScopes
	if tokenRequest.Scope != "" {
		scopes = strings.Fields(tokenRequest.Scope)
		for _, scope := range scopes {
			if !containsScope(grantedScopes, scope) {
				return nil, &model.ErrorResponse{
					Error:            constants.ErrorInvalidScope,
					ErrorDescription: "Requested scope exceeds the originally granted scope",
				}
			}
		}
	}

	// Atomic deactivation ensures a single rotation even under concurrent requests.
	if err := h.TokenStore.ConsumeToken(record.TokenID); err != nil {
		if errors.Is(err, store.ErrTokenAlreadyConsumed) {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidGrant,
				ErrorDescription: "Invalid refresh token",
			}
		}
		logger.Error("Failed to consume refresh token", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to consume refresh token",
		}
	}

	ctx.ClientID = oauthApp.ClientID
	ctx.Subject = record.Subject

	accessToken, err := h.TokenIssuer.IssueAccessToken(oauthApp, record.Subject, scopes)
	if err != nil {
		logger.Error("Failed to generate access token", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to generate token",
		}
	}

	refreshToken, err := h.TokenIssuer.IssueRefreshToken(oauthApp, record.Subject, scopes, record.TokenID)
	if err != nil {
		logger.Error("Failed to generate refresh token", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to generate token",
		}
	}

	return &model.TokenResponseDTO{
		AccessToken:  *accessToken,
		RefreshToken: *refreshToken,
	}, nil
}
