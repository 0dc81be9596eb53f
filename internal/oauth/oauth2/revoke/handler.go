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

// Package revoke provides handler for the OAuth2 token revocation endpoint.
package revoke

import (
	"errors"
	"net/http"
	"strings"

	appservice "github.com/stratusid/stratus/internal/application/service"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/jwt"
	"github.com/stratusid/stratus/internal/system/log"
	"github.com/stratusid/stratus/internal/system/utils"
)

// TokenRevocationHandler handles OAuth 2.0 token revocation requests.
type TokenRevocationHandler struct {
	ApplicationService appservice.ApplicationServiceInterface
	TokenStore         store.TokenStoreInterface
}

// NewTokenRevocationHandler creates a new token revocation handler.
func NewTokenRevocationHandler() *TokenRevocationHandler {
	return &TokenRevocationHandler{
		ApplicationService: appservice.GetApplicationService(),
		TokenStore:         store.NewTokenStore(),
	}
}

// HandleRevoke handles token revocation requests. Revoking an unknown or
// already revoked token succeeds silently as defined in RFC 7009.
func (h *TokenRevocationHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenRevocationHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Failed to parse request body", http.StatusBadRequest, nil)
		return
	}

	clientID := ""
	clientSecret := ""
	if r.Header.Get("Authorization") != "" {
		var err error
		clientID, clientSecret, err = utils.ExtractBasicAuthCredentials(r)
		if err != nil {
			utils.WriteJSONError(w, constants.ErrorInvalidClient,
				"Invalid client credentials", http.StatusUnauthorized, nil)
			return
		}
	}
	if clientID == "" {
		clientID = r.FormValue(constants.ClientID)
		clientSecret = r.FormValue(constants.ClientSecret)
	}

	oauthApp, err := h.ApplicationService.GetOAuthApplication(clientID)
	if err != nil || oauthApp == nil {
		utils.WriteJSONError(w, constants.ErrorInvalidClient,
			"Invalid client credentials", http.StatusUnauthorized, nil)
		return
	}
	if !h.ApplicationService.ValidateClientSecret(oauthApp, clientSecret) {
		utils.WriteJSONError(w, constants.ErrorInvalidClient,
			"Invalid client credentials", http.StatusUnauthorized, nil)
		return
	}

	token := r.FormValue(constants.Token)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Token parameter is required", http.StatusBadRequest, nil)
		return
	}

	// JWT tokens are tracked by their jti; opaque tokens by their value hash.
	tokenHash := hash.HashString(token)
	if strings.Count(token, ".") == 2 {
		if payload, err := jwt.DecodeJWTPayload(token); err == nil {
			if jti, ok := payload["jti"].(string); ok && jti != "" {
				tokenHash = jti
			}
		}
	}

	// A client may only revoke its own tokens. A token owned by another client
	// is treated as unknown, which still succeeds silently per RFC 7009.
	record, lookupErr := h.lookupToken(tokenHash)
	if lookupErr != nil {
		logger.Error("Failed to look up token for revocation", log.Error(lookupErr))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Server error while revoking token", http.StatusInternalServerError, nil)
		return
	}
	if record == nil || record.ClientID != clientID {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.TokenStore.RevokeToken(tokenHash); err != nil {
		logger.Error("Failed to revoke token", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Server error while revoking token", http.StatusInternalServerError, nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// lookupToken finds the stored record for the hash across token kinds.
func (h *TokenRevocationHandler) lookupToken(tokenHash string) (*store.TokenRecord, error) {
	for _, kind := range []string{store.TokenKindAccess, store.TokenKindRefresh} {
		record, err := h.TokenStore.GetToken(tokenHash, kind)
		if err != nil {
			if errors.Is(err, store.ErrTokenNotFound) {
				continue
			}
			return nil, err
		}
		return &record, nil
	}
	return nil, nil
}
