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

// Package store provides functionality for handling relying party data persistence.
package store

import (
	"encoding/json"
	"fmt"

	idpconstants "github.com/stratusid/stratus/internal/idp/constants"
	"github.com/stratusid/stratus/internal/idp/model"
	"github.com/stratusid/stratus/internal/system/database/provider"
)

// CreateRelyingParty persists a new relying party mapping.
func CreateRelyingParty(rp model.RelyingParty) error {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	properties := "{}"
	if len(rp.Properties) > 0 {
		data, err := json.Marshal(rp.Properties)
		if err != nil {
			return fmt.Errorf("failed to marshal relying party properties: %w", err)
		}
		properties = string(data)
	}

	_, err = dbClient.Execute(QueryCreateRelyingParty, rp.ID, rp.ClientID, string(rp.BackendType), properties)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetRelyingPartyByClientID retrieves the relying party configured for the
// given client id. Returns nil when none is configured.
func GetRelyingPartyByClientID(clientID string) (*model.RelyingParty, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetRelyingPartyByClientID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return buildRelyingPartyFromResultRow(results[0])
}

// DeleteRelyingPartyByClientID deletes the relying party configured for the given client id.
func DeleteRelyingPartyByClientID(clientID string) error {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryDeleteRelyingPartyByClientID, clientID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// buildRelyingPartyFromResultRow constructs a RelyingParty object from a database result row.
func buildRelyingPartyFromResultRow(row map[string]interface{}) (*model.RelyingParty, error) {
	rpID, ok := row["rp_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse rp_id as string")
	}

	clientID, ok := row["client_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse client_id as string")
	}

	backendType, ok := row["backend_type"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse backend_type as string")
	}

	properties := map[string]string{}
	if props, ok := row["properties"].(string); ok && props != "" {
		if err := json.Unmarshal([]byte(props), &properties); err != nil {
			return nil, fmt.Errorf("failed to unmarshal relying party properties: %w", err)
		}
	}

	return &model.RelyingParty{
		ID:          rpID,
		ClientID:    clientID,
		BackendType: idpconstants.BackendType(backendType),
		Properties:  properties,
	}, nil
}
