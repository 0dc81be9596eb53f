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

// Package authz provides handlers for the OAuth2 authorization endpoint.
package authz

import (
	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/system/crypto/pkce"
)

// AuthorizationValidator validates inbound authorization requests.
type AuthorizationValidator struct{}

// NewAuthorizationValidator creates a new instance of AuthorizationValidator.
func NewAuthorizationValidator() *AuthorizationValidator {
	return &AuthorizationValidator{}
}

// ValidateAuthorizationRequest validates the initial authorization request
// against the registered application. Returns an empty error code on success.
func (av *AuthorizationValidator) ValidateAuthorizationRequest(oauthApp *appmodel.OAuthApplication,
	redirectURI, responseType, codeChallenge, codeChallengeMethod string) (string, string) {
	if responseType != constants.ResponseTypeCode {
		return constants.ErrorUnsupportedResponseType, "Unsupported response type"
	}
	if !oauthApp.IsAllowedGrantType(constants.GrantTypeAuthorizationCode) {
		return constants.ErrorUnauthorizedClient,
			"The client is not authorized to use the authorization code grant"
	}
	if err := oauthApp.ValidateRedirectURI(redirectURI); err != nil {
		return constants.ErrorInvalidRequest,
			"Your application's redirect URL does not match with the registered redirect URLs."
	}

	if codeChallenge != "" {
		if err := pkce.ValidateCodeChallenge(codeChallenge, codeChallengeMethod); err != nil {
			return constants.ErrorInvalidRequest, "Invalid code challenge"
		}
	} else if codeChallengeMethod != "" {
		return constants.ErrorInvalidRequest, "Code challenge is required when a method is given"
	}

	return "", ""
}
