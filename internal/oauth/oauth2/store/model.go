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

package store

import "time"

// TokenRecord represents an issued token as persisted for revocation
// bookkeeping. Opaque tokens are stored by value hash; JWTs by their jti
// claim. The record is immutable apart from its state transitions, and
// expiry never changes after issuance.
type TokenRecord struct {
	TokenID     string
	TokenHash   string
	TokenKind   string
	ClientID    string
	Subject     string
	Scopes      string
	TimeCreated time.Time
	ExpiryTime  time.Time
	State       string
	// RotatedFrom holds the token id of the refresh token this one replaced.
	RotatedFrom string
}

// IsExpired reports whether the token is past its expiry at the given instant.
func (t *TokenRecord) IsExpired(now time.Time) bool {
	return now.After(t.ExpiryTime)
}

// IsActive reports whether the token is active and unexpired at the given instant.
func (t *TokenRecord) IsActive(now time.Time) bool {
	return t.State == TokenStateActive && !t.IsExpired(now)
}
