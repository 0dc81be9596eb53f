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

package model

// RequestContext carries per-request data through the grant handling path.
// It is threaded explicitly through grant handlers and the token issuer
// rather than implied by ambient state.
type RequestContext struct {
	// ClientID is the authenticated OAuth client of the request.
	ClientID string
	// CorrelationID identifies the request across log lines.
	CorrelationID string
	// Subject is the resource owner established during grant validation.
	// Empty for the client credentials grant.
	Subject string
	// TokenAttributes carries additional claims to embed in issued tokens.
	TokenAttributes map[string]interface{}
}

// ErrorResponse represents an OAuth2 error response as defined in RFC 6749.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
