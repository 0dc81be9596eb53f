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

// Package validator provides grant time scope validation.
package validator

import (
	"strings"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	scopeservice "github.com/stratusid/stratus/internal/scope/service"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
	"github.com/stratusid/stratus/internal/system/log"
)

const loggerComponentName = "ScopeValidator"

// ScopeError represents an error during scope validation.
type ScopeError struct {
	Error            string
	ErrorDescription string
}

// ScopeValidatorInterface defines the interface for scope validation.
type ScopeValidatorInterface interface {
	ValidateScopes(requestedScopes string, oauthApp *appmodel.OAuthApplication) (string, *ScopeError)
}

// GrantScopeValidator validates requested scopes against the client
// configuration and the scope registry.
type GrantScopeValidator struct {
	ScopeService scopeservice.ScopeServiceInterface
}

// NewGrantScopeValidator creates a new instance of GrantScopeValidator.
func NewGrantScopeValidator() ScopeValidatorInterface {
	return &GrantScopeValidator{
		ScopeService: scopeservice.NewScopeService(),
	}
}

// ValidateScopes resolves the scopes to grant for a token request.
//
// An empty request grants the client's full default scope set. When the
// client requires explicit scope authorization, every requested scope must
// appear in the client's allow list. Otherwise any registered public scope is
// grantable. A disallowed or unregistered scope fails the whole request; the
// granted set is exactly the requested set, never a silently filtered subset.
func (sv *GrantScopeValidator) ValidateScopes(requestedScopes string,
	oauthApp *appmodel.OAuthApplication) (string, *ScopeError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	requestedScopeList := strings.Fields(requestedScopes)
	if len(requestedScopeList) == 0 {
		return strings.Join(oauthApp.AuthorizedScopes, " "), nil
	}

	if oauthApp.AuthorizeScope {
		for _, scope := range requestedScopeList {
			if !oauthApp.IsAuthorizedScope(scope) {
				return "", &ScopeError{
					Error:            "invalid_scope",
					ErrorDescription: "The requested scope is not authorized for the client",
				}
			}
		}
		return strings.Join(requestedScopeList, " "), nil
	}

	registered, svcErr := sv.ScopeService.GetScopesByNames(requestedScopeList)
	if svcErr != nil {
		logger.Error("Failed to resolve requested scopes",
			log.String("errorCode", svcErr.Code))
		if svcErr.Type == serviceerror.ClientErrorType {
			return "", &ScopeError{
				Error:            "invalid_scope",
				ErrorDescription: "The requested scope is malformed",
			}
		}
		return "", &ScopeError{
			Error:            "server_error",
			ErrorDescription: "Failed to validate scopes",
		}
	}

	publicScopes := make(map[string]struct{}, len(registered))
	for _, scope := range registered {
		if scope.Public {
			publicScopes[scope.Name] = struct{}{}
		}
	}

	for _, scope := range requestedScopeList {
		if _, ok := publicScopes[scope]; !ok {
			return "", &ScopeError{
				Error:            "invalid_scope",
				ErrorDescription: "The requested scope is not registered as a public scope",
			}
		}
	}

	return strings.Join(requestedScopeList, " "), nil
}
