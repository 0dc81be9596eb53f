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

// Package model defines the data structures for user management.
package model

import "encoding/json"

// User represents a resource owner stored in the local user store.
type User struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// Credential holds the hashed credential material of a user.
// The raw password is never stored or logged.
type Credential struct {
	UserID         string
	CredentialHash string
	Salt           string
}
