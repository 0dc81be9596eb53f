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

// Package store provides functionality for handling end user consent persistence.
package store

import (
	"fmt"

	"github.com/stratusid/stratus/internal/oauth/consent/model"
	dbmodel "github.com/stratusid/stratus/internal/system/database/model"
	"github.com/stratusid/stratus/internal/system/database/provider"
	"github.com/stratusid/stratus/internal/system/utils"
)

var (
	// QueryInsertConsent is the query to record a new consent grant.
	QueryInsertConsent = dbmodel.DBQuery{
		ID: "CSQ-00001",
		Query: "INSERT INTO IDN_OAUTH2_CONSENT (CONSENT_ID, AUTHZ_USER, CONSUMER_KEY, GRANTED_SCOPES) " +
			"VALUES ($1, $2, $3, $4)",
	}
	// QueryGetConsent is the query to retrieve the consent record of a (user, client) pair.
	QueryGetConsent = dbmodel.DBQuery{
		ID: "CSQ-00002",
		Query: "SELECT CONSENT_ID, AUTHZ_USER, CONSUMER_KEY, GRANTED_SCOPES FROM IDN_OAUTH2_CONSENT " +
			"WHERE AUTHZ_USER = $1 AND CONSUMER_KEY = $2",
	}
	// QueryUpdateConsentScopes is the query to replace the granted scopes of a consent record.
	QueryUpdateConsentScopes = dbmodel.DBQuery{
		ID:    "CSQ-00003",
		Query: "UPDATE IDN_OAUTH2_CONSENT SET GRANTED_SCOPES = $1 WHERE CONSENT_ID = $2",
	}
	// QueryDeleteConsent is the query to revoke the consent of a (user, client) pair.
	QueryDeleteConsent = dbmodel.DBQuery{
		ID:    "CSQ-00004",
		Query: "DELETE FROM IDN_OAUTH2_CONSENT WHERE AUTHZ_USER = $1 AND CONSUMER_KEY = $2",
	}
)

// GetConsent retrieves the consent record for the given (user, client) pair.
// Returns nil when the user has not granted any consent to the client.
func GetConsent(userID, clientID string) (*model.Consent, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetConsent, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	consentID, ok := row["consent_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse consent_id as string")
	}
	grantedScopes, _ := row["granted_scopes"].(string)

	return &model.Consent{
		ConsentID:     consentID,
		UserID:        userID,
		ClientID:      clientID,
		GrantedScopes: grantedScopes,
	}, nil
}

// RecordConsent stores the granted scopes for a (user, client) pair. An
// existing record is extended with the newly granted scopes instead of
// creating a second row.
func RecordConsent(userID, clientID, grantedScopes string) error {
	existing, err := GetConsent(userID, clientID)
	if err != nil {
		return err
	}

	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if existing == nil {
		_, err = dbClient.Execute(QueryInsertConsent, utils.GenerateUUID(), userID, clientID, grantedScopes)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		return nil
	}

	merged := mergeScopes(existing.GrantedScopes, grantedScopes)
	_, err = dbClient.Execute(QueryUpdateConsentScopes, merged, existing.ConsentID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// RevokeConsent removes the consent record of a (user, client) pair.
// Revoking an absent consent is not an error.
func RevokeConsent(userID, clientID string) error {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryDeleteConsent, userID, clientID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// mergeScopes combines two space separated scope lists without duplicates.
func mergeScopes(existing, granted string) string {
	seen := make(map[string]struct{})
	merged := ""

	appendScopes := func(scopes string) {
		for _, scope := range utils.ParseScopeString(scopes) {
			if _, ok := seen[scope]; ok {
				continue
			}
			seen[scope] = struct{}{}
			if merged == "" {
				merged = scope
			} else {
				merged += " " + scope
			}
		}
	}

	appendScopes(existing)
	appendScopes(granted)
	return merged
}
