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

// Package model defines the data structures for relying party management.
package model

import "github.com/stratusid/stratus/internal/idp/constants"

// RelyingParty maps an OAuth client to the identity backend that authenticates
// its end users. At most one relying party exists per client id.
type RelyingParty struct {
	ID          string                `json:"id"`
	ClientID    string                `json:"client_id"`
	BackendType constants.BackendType `json:"backend_type"`
	// Properties carries backend specific configuration such as external
	// endpoint URLs. Internal backends typically need none.
	Properties map[string]string `json:"properties,omitempty"`
}
