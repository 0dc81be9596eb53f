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
	"strings"

	appmodel "github.com/stratusid/stratus/internal/application/model"
	appservice "github.com/stratusid/stratus/internal/application/service"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/issuer"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
)

// clientCredentialsGrantHandler handles the client credentials grant type.
type clientCredentialsGrantHandler struct {
	ApplicationService appservice.ApplicationServiceInterface
	TokenIssuer        issuer.TokenIssuerInterface
}

// newClientCredentialsGrantHandler creates a new instance of ClientCredentialsGrantHandler.
func newClientCredentialsGrantHandler() GrantHandlerInterface {
	return &clientCredentialsGrantHandler{
		ApplicationService: appservice.GetApplicationService(),
		TokenIssuer:        issuer.NewTokenIssuer(),
	}
}

// ValidateGrant validates the client credentials grant request.
func (h *clientCredentialsGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypeClientCredentials {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.ClientID == "" || tokenRequest.ClientSecret == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidClient,
			ErrorDescription: "Client Id and secret are required",
		}
	}

	return nil
}

// HandleGrant processes the client credentials grant request and generates a token response.
// The grant carries no resource owner; the subject of the issued token is the client itself.
func (h *clientCredentialsGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication, ctx *model.RequestContext) (
	*model.TokenResponseDTO, *model.ErrorResponse) {
	if !h.ApplicationService.ValidateClientSecret(oauthApp, tokenRequest.ClientSecret) {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorInvalidClient,
			ErrorDescription: "Invalid client credentials",
		}
	}

	scopes := strings.Fields(tokenRequest.Scope)

	accessToken, err := h.TokenIssuer.IssueAccessToken(oauthApp, oauthApp.ClientID, scopes)
	if err != nil {
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to generate token",
		}
	}

	ctx.ClientID = oauthApp.ClientID

	return &model.TokenResponseDTO{
		AccessToken: *accessToken,
	}, nil
}
