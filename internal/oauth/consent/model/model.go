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

// Package model defines the data structures for end user consent handling.
package model

import "strings"

// Consent records the scopes a resource owner has previously granted to a
// client. At most one consent record exists per (user, client) pair; it is
// used to avoid re-prompting for scopes already consented.
type Consent struct {
	ConsentID     string
	UserID        string
	ClientID      string
	GrantedScopes string
}

// CoversScopes reports whether every scope in the space separated list has
// already been granted.
func (c *Consent) CoversScopes(scopes string) bool {
	granted := make(map[string]struct{})
	for _, scope := range strings.Fields(c.GrantedScopes) {
		granted[scope] = struct{}{}
	}

	for _, scope := range strings.Fields(scopes) {
		if _, ok := granted[scope]; !ok {
			return false
		}
	}
	return true
}
