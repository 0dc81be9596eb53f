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
	"fmt"

	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
)

// GrantHandlerProviderInterface defines the interface for providing grant handlers.
type GrantHandlerProviderInterface interface {
	GetGrantHandler(grantType string) (GrantHandlerInterface, error)
}

// GrantHandlerProvider is the default implementation of GrantHandlerProviderInterface.
type GrantHandlerProvider struct{}

// NewGrantHandlerProvider creates a new instance of GrantHandlerProvider.
func NewGrantHandlerProvider() GrantHandlerProviderInterface {
	return &GrantHandlerProvider{}
}

// GetGrantHandler returns the grant handler for the given grant type.
func (ghp *GrantHandlerProvider) GetGrantHandler(grantType string) (GrantHandlerInterface, error) {
	switch grantType {
	case constants.GrantTypeClientCredentials:
		return newClientCredentialsGrantHandler(), nil
	case constants.GrantTypeAuthorizationCode:
		return newAuthorizationCodeGrantHandler(), nil
	case constants.GrantTypePassword:
		return newPasswordGrantHandler(), nil
	case constants.GrantTypeRefreshToken:
		return newRefreshTokenGrantHandler(), nil
	default:
		return nil, fmt.Errorf("unsupported grant type: %s", grantType)
	}
}
