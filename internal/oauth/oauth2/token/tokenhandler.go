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

// Package token provides handler for managing OAuth 2.0 token requests.
package token

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stratusid/stratus/internal/system/utils"

	appprovider "github.com/stratusid/stratus/internal/application/provider"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/granthandlers"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	scopeprovider "github.com/stratusid/stratus/internal/oauth/scope/provider"
	"github.com/stratusid/stratus/internal/system/log"
)

// TokenHandler handles OAuth 2.0 token requests.
type TokenHandler struct {
	GrantHandlerProvider granthandlers.GrantHandlerProviderInterface
}

// NewTokenHandler creates a new instance of TokenHandler.
func NewTokenHandler() *TokenHandler {
	return &TokenHandler{
		GrantHandlerProvider: granthandlers.NewGrantHandlerProvider(),
	}
}

// HandleTokenRequest handles the token request for OAuth 2.0.
// It validates the client credentials and delegates to the appropriate grant handler.
func (th *TokenHandler) HandleTokenRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenHandler"))

	// Parse the form data from the request body.
	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Failed to parse request body", http.StatusBadRequest, nil)
		return
	}

	// Validate the grant_type.
	grantType := r.FormValue(constants.GrantType)
	if grantType == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Missing grant_type parameter", http.StatusBadRequest, nil)
		return
	}

	grantHandler, err := th.GrantHandlerProvider.GetGrantHandler(grantType)
	if err != nil {
		utils.WriteJSONError(w, constants.ErrorUnsupportedGrantType,
			"Unsupported grant type", http.StatusBadRequest, nil)
		return
	}

	// Extract client credentials from the request.
	clientID := ""
	clientSecret := ""
	if r.Header.Get("Authorization") != "" {
		var err error
		clientID, clientSecret, err = utils.ExtractBasicAuthCredentials(r)
		if err != nil {
			if err.Error() == "invalid authorization header" {
				responseHeaders := []map[string]string{
					{"WWW-Authenticate": "Basic"},
				}
				utils.WriteJSONError(w, constants.ErrorInvalidClient,
					"Invalid client credentials", http.StatusUnauthorized, responseHeaders)
				return
			}
			utils.WriteJSONError(w, constants.ErrorInvalidClient,
				"Invalid client credentials", http.StatusUnauthorized, nil)
			return
		}
	}

	// Check for client credentials in the request body.
	clientIDFromBody := r.FormValue(constants.ClientID)
	clientSecretFromBody := r.FormValue(constants.ClientSecret)

	if clientIDFromBody != "" && clientSecretFromBody != "" {
		if clientID != "" && clientSecret != "" {
			utils.WriteJSONError(w, constants.ErrorInvalidRequest,
				"Authorization information is provided in both header and body", http.StatusBadRequest, nil)
			return
		}

		clientID = clientIDFromBody
		clientSecret = clientSecretFromBody
	} else {
		if clientID == "" {
			clientID = clientIDFromBody
		}
		if clientSecret == "" {
			clientSecret = clientSecretFromBody
		}
	}

	// Construct the token request.
	tokenRequest := &model.TokenRequest{
		GrantType:    grantType,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        r.FormValue(constants.Scope),
		Username:     r.FormValue(constants.Username),
		Password:     r.FormValue(constants.Password),
		RefreshToken: r.FormValue(constants.RefreshToken),
		CodeVerifier: r.FormValue(constants.CodeVerifier),
		Code:         r.FormValue(constants.Code),
		RedirectURI:  r.FormValue(constants.RedirectURI),
	}

	// Retrieve the OAuth application based on the client id.
	appProvider := appprovider.NewApplicationProvider()
	appService := appProvider.GetApplicationService()

	oauthApp, svcErr := appService.GetOAuthApplication(clientID)
	if svcErr != nil || oauthApp == nil {
		utils.WriteJSONError(w, constants.ErrorInvalidClient,
			"Invalid client credentials", http.StatusUnauthorized, nil)
		return
	}

	// Validate grant type against the application.
	if !oauthApp.IsAllowedGrantType(tokenRequest.GrantType) {
		utils.WriteJSONError(w, constants.ErrorUnauthorizedClient,
			"The authenticated client is not authorized to use this grant type", http.StatusUnauthorized, nil)
		return
	}

	// Validate the token request.
	tokenError := grantHandler.ValidateGrant(tokenRequest, oauthApp)
	if tokenError != nil && tokenError.Error != "" {
		utils.WriteJSONError(w, tokenError.Error, tokenError.ErrorDescription,
			errorStatusCode(tokenError.Error), nil)
		return
	}

	// Validate and filter scopes. The refresh token grant derives its scopes
	// from the original grant, so the validator is not consulted for it.
	if grantType != constants.GrantTypeRefreshToken {
		scopeValidatorProvider := scopeprovider.NewScopeValidatorProvider()
		scopeValidator := scopeValidatorProvider.GetScopeValidator()

		validScopes, scopeError := scopeValidator.ValidateScopes(tokenRequest.Scope, oauthApp)
		if scopeError != nil {
			utils.WriteJSONError(w, scopeError.Error, scopeError.ErrorDescription, http.StatusBadRequest, nil)
			return
		}
		tokenRequest.Scope = validScopes
	}

	// Delegate to the grant handler.
	ctx := &model.RequestContext{
		CorrelationID: utils.GenerateUUID(),
	}
	tokenResponseDTO, tokenError := grantHandler.HandleGrant(tokenRequest, oauthApp, ctx)
	if tokenError != nil && tokenError.Error != "" {
		utils.WriteJSONError(w, tokenError.Error, tokenError.ErrorDescription,
			errorStatusCode(tokenError.Error), nil)
		return
	}

	tokenResponse := buildTokenResponse(tokenResponseDTO)

	// Log successful token generation.
	logger.Info("Token generated successfully", log.String(log.LoggerKeyClientID, clientID))

	// Set the response headers.
	w.Header().Set("Content-Type", "application/json")
	// Must include the following headers when sensitive data is returned.
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	// Write the token response.
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(tokenResponse); err != nil {
		logger.Error("Failed to write token response", log.Error(err))
		http.Error(w, "Failed to write token response", http.StatusInternalServerError)
		return
	}
}

// buildTokenResponse maps the internal token DTOs to the wire response.
func buildTokenResponse(dto *model.TokenResponseDTO) *model.TokenResponse {
	response := &model.TokenResponse{
		AccessToken: dto.AccessToken.Token,
		TokenType:   dto.AccessToken.TokenType,
		ExpiresIn:   dto.AccessToken.ExpiresIn,
		Scope:       strings.Join(dto.AccessToken.Scopes, " "),
		IDToken:     dto.IDToken,
	}
	if dto.RefreshToken.Token != "" {
		response.RefreshToken = dto.RefreshToken.Token
	}
	return response
}

// errorStatusCode maps an OAuth2 error code to its HTTP status code.
func errorStatusCode(errorCode string) int {
	switch errorCode {
	case constants.ErrorInvalidClient:
		return http.StatusUnauthorized
	case constants.ErrorServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
