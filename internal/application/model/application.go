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

// Package model defines the data structures for application management.
package model

import (
	"fmt"
	"net/url"

	"github.com/stratusid/stratus/internal/application/constants"
	"github.com/stratusid/stratus/internal/system/utils"
)

// OAuthApplication represents the OAuth client configuration of an application.
//
// The client secret is stored as a salted hash and never compared directly.
// Redirect URIs are matched exactly against the registered values.
type OAuthApplication struct {
	ClientID           string
	HashedClientSecret string
	RedirectURIs       []string
	AllowedGrantTypes  []string

	// AuthorizeScope restricts grantable scopes to the AuthorizedScopes allow list.
	// When false, any registered public scope is grantable.
	AuthorizeScope   bool
	AuthorizedScopes []string

	TokenType   constants.TokenType
	OIDCEnabled bool

	// Token validity periods in seconds. Zero means the server default applies.
	AccessTokenValidity  int64
	RefreshTokenValidity int64
	AuthzCodeValidity    int64

	// SigningCertificate is the PEM encoded certificate whose public key is
	// published through the JWKS endpoint for this client. Optional.
	SigningCertificate string
	// SigningKey is the PEM encoded private key used to sign JWTs issued to
	// this client's users. Optional; the server key is used when absent.
	SigningKey string
}

// IsAllowedGrantType checks if the provided grant type is allowed for the application.
func (o *OAuthApplication) IsAllowedGrantType(grantType string) bool {
	for _, allowedGrantType := range o.AllowedGrantTypes {
		if grantType == allowedGrantType {
			return true
		}
	}
	return false
}

// IsAuthorizedScope checks if the provided scope appears in the application's allow list.
func (o *OAuthApplication) IsAuthorizedScope(scope string) bool {
	for _, authorizedScope := range o.AuthorizedScopes {
		if scope == authorizedScope {
			return true
		}
	}
	return false
}

// ValidateRedirectURI validates the provided redirect URI against the registered redirect URIs.
func (o *OAuthApplication) ValidateRedirectURI(redirectURI string) error {
	if redirectURI == "" {
		// A missing redirect URI is acceptable only when exactly one fully
		// qualified URI is registered.
		if len(o.RedirectURIs) != 1 {
			return fmt.Errorf("redirect URI is required in the authorization request")
		}
		parsed, err := url.Parse(o.RedirectURIs[0])
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("registered redirect URI is not fully qualified")
		}
		return nil
	}

	if !o.isRegisteredRedirectURI(redirectURI) {
		return fmt.Errorf("redirect URI does not match the registered redirect URIs")
	}

	parsedRedirectURI, err := utils.ParseURL(redirectURI)
	if err != nil {
		return fmt.Errorf("invalid redirect URI: %s", err.Error())
	}
	if parsedRedirectURI.Fragment != "" {
		return fmt.Errorf("redirect URI must not contain a fragment component")
	}

	return nil
}

// isRegisteredRedirectURI checks the redirect URI against the registered values with exact matching.
func (o *OAuthApplication) isRegisteredRedirectURI(redirectURI string) bool {
	for _, registeredURI := range o.RedirectURIs {
		if redirectURI == registeredURI {
			return true
		}
	}
	return false
}
