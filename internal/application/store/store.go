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

// Package store provides functionality for handling application data persistence.
package store

import (
	"fmt"

	"github.com/stratusid/stratus/internal/application/constants"
	"github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/system/database/provider"
	"github.com/stratusid/stratus/internal/system/utils"
)

// CreateOAuthApplication registers a new OAuth application.
func CreateOAuthApplication(app model.OAuthApplication) error {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryCreateApplication,
		app.ClientID, app.HashedClientSecret,
		utils.JoinStringArray(app.RedirectURIs), utils.JoinStringArray(app.AllowedGrantTypes),
		app.AuthorizeScope, utils.JoinStringArray(app.AuthorizedScopes),
		string(app.TokenType), app.OIDCEnabled,
		app.AccessTokenValidity, app.RefreshTokenValidity, app.AuthzCodeValidity,
		app.SigningCertificate, app.SigningKey)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetOAuthApplicationByClientID retrieves an OAuth application by its client id.
// Returns nil when no application is registered for the client id.
func GetOAuthApplicationByClientID(clientID string) (*model.OAuthApplication, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetApplicationByClientID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildOAuthApplicationFromResultRow(results[0])
}

// DeleteOAuthApplicationByClientID deletes an OAuth application by its client id.
func DeleteOAuthApplicationByClientID(clientID string) error {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryDeleteApplicationByClientID, clientID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// buildOAuthApplicationFromResultRow constructs an OAuthApplication object from a database result row.
func buildOAuthApplicationFromResultRow(row map[string]interface{}) (*model.OAuthApplication, error) {
	clientID, ok := row["consumer_key"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse consumer_key as string")
	}

	secretHash, ok := row["consumer_secret_hash"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse consumer_secret_hash as string")
	}

	callbackURIs, ok := row["callback_uris"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse callback_uris as string")
	}

	grantTypes, ok := row["grant_types"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse grant_types as string")
	}

	authorizedScopes, _ := row["authorized_scopes"].(string)
	tokenType, _ := row["token_type"].(string)
	if tokenType == "" {
		tokenType = string(constants.TokenTypeOpaque)
	}
	signingCert, _ := row["signing_cert"].(string)
	signingKey, _ := row["signing_key"].(string)

	return &model.OAuthApplication{
		ClientID:             clientID,
		HashedClientSecret:   secretHash,
		RedirectURIs:         utils.ParseStringArray(callbackURIs),
		AllowedGrantTypes:    utils.ParseStringArray(grantTypes),
		AuthorizeScope:       parseBoolColumn(row["authorize_scope"]),
		AuthorizedScopes:     utils.ParseStringArray(authorizedScopes),
		TokenType:            constants.TokenType(tokenType),
		OIDCEnabled:          parseBoolColumn(row["oidc_enabled"]),
		AccessTokenValidity:  parseIntColumn(row["access_token_validity"]),
		RefreshTokenValidity: parseIntColumn(row["refresh_token_validity"]),
		AuthzCodeValidity:    parseIntColumn(row["authz_code_validity"]),
		SigningCertificate:   signingCert,
		SigningKey:           signingKey,
	}, nil
}

// parseBoolColumn normalizes boolean columns across drivers. SQLite reports
// booleans as integers while Postgres reports native booleans.
func parseBoolColumn(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	default:
		return false
	}
}

// parseIntColumn normalizes integer columns across drivers.
func parseIntColumn(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
