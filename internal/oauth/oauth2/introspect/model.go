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

// IntrospectResponse represents the OAuth 2.0 token introspection response as
// defined in RFC 7662. For inactive tokens only the active flag is populated;
// no claim ever carries secret material.
type IntrospectResponse struct {
	Active    bool   `json:"active"`
	Scope     string `json:"scope,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
	Nbf       int64  `json:"nbf,omitempty"`
	Sub       string `json:"sub,omitempty"`
	Aud       string `json:"aud,omitempty"`
	Iss       string `json:"iss,omitempty"`
	Jti       string `json:"jti,omitempty"`
}

// toClaims maps the introspection response to JWT claims for the signed response mode.
func (r *IntrospectResponse) toClaims() map[string]interface{} {
	claims := map[string]interface{}{
		"active": r.Active,
	}
	if !r.Active {
		return claims
	}

	if r.Scope != "" {
		claims["scope"] = r.Scope
	}
	if r.ClientID != "" {
		claims["client_id"] = r.ClientID
	}
	if r.Username != "" {
		claims["username"] = r.Username
	}
	if r.TokenType != "" {
		claims["token_type"] = r.TokenType
	}
	if r.Exp != 0 {
		claims["token_exp"] = r.Exp
	}
	if r.Iat != 0 {
		claims["token_iat"] = r.Iat
	}
	if r.Jti != "" {
		claims["token_jti"] = r.Jti
	}

	return claims
}
