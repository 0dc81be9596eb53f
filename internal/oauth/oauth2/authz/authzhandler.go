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

package authz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	appprovider "github.com/stratusid/stratus/internal/application/provider"
	"github.com/stratusid/stratus/internal/idp/backend"
	idpservice "github.com/stratusid/stratus/internal/idp/service"
	consentstore "github.com/stratusid/stratus/internal/oauth/consent/store"
	authzconstants "github.com/stratusid/stratus/internal/oauth/oauth2/authz/constants"
	authzmodel "github.com/stratusid/stratus/internal/oauth/oauth2/authz/model"
	authzstore "github.com/stratusid/stratus/internal/oauth/oauth2/authz/store"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	scopeprovider "github.com/stratusid/stratus/internal/oauth/scope/provider"
	sessionmodel "github.com/stratusid/stratus/internal/oauth/session/model"
	sessionstore "github.com/stratusid/stratus/internal/oauth/session/store"
	"github.com/stratusid/stratus/internal/system/config"
	"github.com/stratusid/stratus/internal/system/crypto/random"
	"github.com/stratusid/stratus/internal/system/log"
	"github.com/stratusid/stratus/internal/system/utils"
)

// AuthorizeHandler handles OAuth 2.0 authorization requests.
type AuthorizeHandler struct {
	AuthValidator          *AuthorizationValidator
	RelyingPartyService    idpservice.RelyingPartyServiceInterface
	AuthorizationCodeStore authzstore.AuthorizationCodeStoreInterface
	SessionDataStore       sessionstore.SessionDataStoreInterface
}

// NewAuthorizeHandler creates a new instance of AuthorizeHandler.
func NewAuthorizeHandler() *AuthorizeHandler {
	return &AuthorizeHandler{
		AuthValidator:          NewAuthorizationValidator(),
		RelyingPartyService:    idpservice.GetRelyingPartyService(),
		AuthorizationCodeStore: authzstore.NewAuthorizationCodeStore(),
		SessionDataStore:       sessionstore.GetSessionDataStore(),
	}
}

// HandleAuthorizeGetRequest handles the initial authorization request from the
// client. A valid request opens a pending authorization session keyed by a
// session data key, which the login flow completes with a POST.
func (ah *AuthorizeHandler) HandleAuthorizeGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	query := r.URL.Query()
	clientID := query.Get(constants.ClientID)
	redirectURI := query.Get(constants.RedirectURI)
	responseType := query.Get(constants.ResponseType)
	scope := query.Get(constants.Scope)
	state := query.Get(constants.State)
	codeChallenge := query.Get(constants.CodeChallenge)
	codeChallengeMethod := query.Get(constants.CodeChallengeMethod)

	appProvider := appprovider.NewApplicationProvider()
	appService := appProvider.GetApplicationService()

	oauthApp, err := appService.GetOAuthApplication(clientID)
	if err != nil || oauthApp == nil {
		utils.WriteJSONError(w, constants.ErrorInvalidClient, "Invalid client_id",
			http.StatusUnauthorized, nil)
		return
	}

	errorCode, errorMessage := ah.AuthValidator.ValidateAuthorizationRequest(oauthApp, redirectURI,
		responseType, codeChallenge, codeChallengeMethod)
	if errorCode != "" {
		utils.WriteJSONError(w, errorCode, errorMessage, http.StatusBadRequest, nil)
		return
	}

	scopeValidator := scopeprovider.NewScopeValidatorProvider().GetScopeValidator()
	validScopes, scopeError := scopeValidator.ValidateScopes(scope, oauthApp)
	if scopeError != nil {
		utils.WriteJSONError(w, scopeError.Error, scopeError.ErrorDescription,
			http.StatusBadRequest, nil)
		return
	}

	if redirectURI == "" {
		redirectURI = oauthApp.RedirectURIs[0]
	}

	sessionDataKey := utils.GenerateUUID()
	ah.SessionDataStore.AddSession(sessionDataKey, sessionmodel.SessionData{
		ClientID:            clientID,
		RedirectURI:         redirectURI,
		Scopes:              validScopes,
		State:               state,
		CodeChallenge:       codeChallenge,
		CodeChallengeMethod: codeChallengeMethod,
		CreatedAt:           time.Now(),
	})

	logger.Debug("Pending authorization session created",
		log.String(log.LoggerKeyClientID, clientID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(authzmodel.AuthZGetResponse{
		SessionDataKey: sessionDataKey,
	}); err != nil {
		logger.Error("Failed to write authorization response", log.Error(err))
		http.Error(w, "Failed to write authorization response", http.StatusInternalServerError)
	}
}

// HandleAuthorizePostRequest completes a pending authorization session. The
// end user is authenticated against the relying party's identity backend and
// an authorization code is issued on success.
func (ah *AuthorizeHandler) HandleAuthorizePostRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	var authZRequest authzmodel.AuthZPostRequest
	if err := json.NewDecoder(r.Body).Decode(&authZRequest); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Failed to decode request body", http.StatusBadRequest, nil)
		return
	}
	if authZRequest.SessionDataKey == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Session data key is required", http.StatusBadRequest, nil)
		return
	}

	sessionData, ok := ah.SessionDataStore.ConsumeSession(authZRequest.SessionDataKey)
	if !ok {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest,
			"Invalid or expired authorization session", http.StatusBadRequest, nil)
		return
	}

	identityBackend, svcErr := ah.RelyingPartyService.Resolve(sessionData.ClientID)
	if svcErr != nil {
		logger.Error("Failed to resolve relying party", log.String("errorCode", svcErr.Code))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Failed to resolve relying party", http.StatusInternalServerError, nil)
		return
	}

	authCtx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := identityBackend.Authenticate(authCtx, authZRequest.Username, authZRequest.Password)
	if err != nil {
		if errors.Is(err, backend.ErrAuthenticationFailed) {
			ah.writeAccessDeniedResponse(w, logger, sessionData)
			return
		}
		logger.Error("End user authentication failed", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Failed to authenticate user", http.StatusInternalServerError, nil)
		return
	}

	if err := ah.recordConsent(user.ID, sessionData); err != nil {
		logger.Error("Failed to record user consent", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Failed to record user consent", http.StatusInternalServerError, nil)
		return
	}

	authzCode, err := ah.issueAuthorizationCode(user.ID, sessionData)
	if err != nil {
		logger.Error("Failed to generate authorization code", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Failed to generate authorization code", http.StatusInternalServerError, nil)
		return
	}

	queryParams := map[string]string{
		constants.Code: authzCode.Code,
	}
	if sessionData.State != "" {
		queryParams[constants.State] = sessionData.State
	}
	redirectURI, err := utils.GetURIWithQueryParams(sessionData.RedirectURI, queryParams)
	if err != nil {
		logger.Error("Failed to construct redirect URI", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Failed to construct redirect URI", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(authzmodel.AuthZPostResponse{
		RedirectURI: redirectURI,
	}); err != nil {
		logger.Error("Failed to write authorization response", log.Error(err))
		http.Error(w, "Failed to write authorization response", http.StatusInternalServerError)
	}
}

// recordConsent records consent for the granted scopes unless the user has
// already consented to them.
func (ah *AuthorizeHandler) recordConsent(userID string, sessionData sessionmodel.SessionData) error {
	if sessionData.Scopes == "" {
		return nil
	}

	consent, err := consentstore.GetConsent(userID, sessionData.ClientID)
	if err != nil {
		return err
	}
	if consent != nil && consent.CoversScopes(sessionData.Scopes) {
		return nil
	}

	return consentstore.RecordConsent(userID, sessionData.ClientID, sessionData.Scopes)
}

// issueAuthorizationCode mints and persists a single use authorization code
// bound to the session's client, redirect URI, scopes and PKCE challenge.
func (ah *AuthorizeHandler) issueAuthorizationCode(userID string,
	sessionData sessionmodel.SessionData) (*authzmodel.AuthorizationCode, error) {
	code, err := random.GenerateSecret()
	if err != nil {
		return nil, err
	}

	validityPeriod := config.GetStratusRuntime().Config.OAuth.AuthorizationCode.ValidityPeriod
	if validityPeriod == 0 {
		validityPeriod = authzconstants.DefaultAuthCodeValidity
	}

	now := time.Now()
	authzCode := authzmodel.AuthorizationCode{
		CodeID:              utils.GenerateUUID(),
		Code:                code,
		ClientID:            sessionData.ClientID,
		RedirectURI:         sessionData.RedirectURI,
		AuthorizedUserID:    userID,
		TimeCreated:         now,
		ExpiryTime:          now.Add(time.Duration(validityPeriod) * time.Second),
		Scopes:              sessionData.Scopes,
		State:               authzconstants.AuthCodeStateActive,
		CodeChallenge:       sessionData.CodeChallenge,
		CodeChallengeMethod: sessionData.CodeChallengeMethod,
	}

	if err := ah.AuthorizationCodeStore.InsertAuthorizationCode(authzCode); err != nil {
		return nil, err
	}
	return &authzCode, nil
}

// writeAccessDeniedResponse writes the access denied redirect for a failed
// end user authentication.
func (ah *AuthorizeHandler) writeAccessDeniedResponse(w http.ResponseWriter, logger *log.Logger,
	sessionData sessionmodel.SessionData) {
	queryParams := map[string]string{
		constants.Error:            constants.ErrorAccessDenied,
		constants.ErrorDescription: "User authentication failed",
	}
	if sessionData.State != "" {
		queryParams[constants.State] = sessionData.State
	}

	redirectURI, err := utils.GetURIWithQueryParams(sessionData.RedirectURI, queryParams)
	if err != nil {
		logger.Error("Failed to construct redirect URI", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"Failed to construct redirect URI", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(authzmodel.AuthZPostResponse{
		RedirectURI: redirectURI,
	}); err != nil {
		logger.Error("Failed to write authorization response", log.Error(err))
		http.Error(w, "Failed to write authorization response", http.StatusInternalServerError)
	}
}
