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

// Package granthandlers provides an interface and implementations for handling OAuth 2.0 grant types.
package granthandlers

import (
	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
)

// GrantHandlerInterface defines the interface for handling OAuth 2.0 grants.
// Every path returns a typed error response; no error escapes as a panic.
type GrantHandlerInterface interface {
	ValidateGrant(tokenRequest *model.TokenRequest, oauthApp *appmodel.OAuthApplication) *model.ErrorResponse
	HandleGrant(tokenRequest *model.TokenRequest, oauthApp *appmodel.OAuthApplication,
		ctx *model.RequestContext) (*model.TokenResponseDTO, *model.ErrorResponse)
}
