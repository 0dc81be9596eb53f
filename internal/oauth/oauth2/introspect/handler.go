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

package introspect

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	serverconst "github.com/stratusid/stratus/internal/system/constants"
	"github.com/stratusid/stratus/internal/system/log"
)

// TokenIntrospectionHandler handles OAuth 2.0 token introspection requests.
type TokenIntrospectionHandler struct {
	service TokenIntrospectionServiceInterface
}

// NewTokenIntrospectionHandler creates a new token introspection handler.
func NewTokenIntrospectionHandler() *TokenIntrospectionHandler {
	return &TokenIntrospectionHandler{
		service: NewTokenIntrospectionService(),
	}
}

// HandleIntrospect handles token introspection requests. Requests that accept
// application/jwt receive the introspection result as a signed JWT.
func (h *TokenIntrospectionHandler) HandleIntrospect(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIntrospectionHandler"))

	if err := r.ParseForm(); err != nil {
		writeErrorResponse(w, logger, constants.ErrorInvalidRequest,
			"Failed to decode request body", http.StatusBadRequest)
		return
	}

	token := r.FormValue(constants.Token)
	if token == "" {
		writeErrorResponse(w, logger, constants.ErrorInvalidRequest,
			"Token parameter is required", http.StatusBadRequest)
		return
	}
	tokenTypeHint := r.FormValue(constants.TokenTypeHint)

	response, err := h.service.IntrospectToken(token, tokenTypeHint)
	if err != nil {
		logger.Error("Server error while introspecting token", log.Error(err))
		writeErrorResponse(w, logger, constants.ErrorServerError,
			"Server error while introspecting token", http.StatusInternalServerError)
		return
	}

	if acceptsJWTResponse(r) {
		signed, err := h.service.BuildSignedResponse(response)
		if err != nil {
			logger.Error("Failed to build signed introspection response", log.Error(err))
			writeErrorResponse(w, logger, constants.ErrorServerError,
				"Server error while introspecting token", http.StatusInternalServerError)
			return
		}

		w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJWT)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(signed)); err != nil {
			logger.Error("Error writing signed response", log.Error(err))
		}
		return
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Error encoding response", log.Error(err))
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// acceptsJWTResponse reports whether the caller requested a signed introspection response.
func acceptsJWTResponse(r *http.Request) bool {
	return strings.Contains(r.Header.Get(serverconst.AcceptHeaderName), serverconst.ContentTypeJWT)
}

// writeErrorResponse writes an OAuth2 error response as JSON.
func writeErrorResponse(w http.ResponseWriter, logger *log.Logger, code, description string,
	statusCode int) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(statusCode)

	errResp := model.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	}
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Error encoding error response", log.Error(err))
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
