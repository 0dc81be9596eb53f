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

// Package store provides functionality for handling user data persistence.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/stratusid/stratus/internal/system/database/provider"
	"github.com/stratusid/stratus/internal/user/model"
)

// CreateUser persists a new user with the given credential material.
func CreateUser(user model.User, credential model.Credential) error {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	attributes := "{}"
	if len(user.Attributes) > 0 {
		attributes = string(user.Attributes)
	}

	_, err = dbClient.Execute(QueryCreateUser, user.ID, user.Username,
		credential.CredentialHash, credential.Salt, attributes)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by username. Returns nil when not found.
func GetUserByUsername(username string) (*model.User, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetUserByUsername, username)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return buildUserFromResultRow(results[0])
}

// GetUserByID retrieves a user by id. Returns nil when not found.
func GetUserByID(userID string) (*model.User, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetUserByID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return buildUserFromResultRow(results[0])
}

// GetCredentialByUsername retrieves the stored credential material of a user.
// Returns nil when no user exists with the given username.
func GetCredentialByUsername(username string) (*model.Credential, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetCredentialByUsername, username)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	userID, ok := row["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse user_id as string")
	}
	credentialHash, ok := row["credential_hash"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse credential_hash as string")
	}
	salt, ok := row["salt"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse salt as string")
	}

	return &model.Credential{
		UserID:         userID,
		CredentialHash: credentialHash,
		Salt:           salt,
	}, nil
}

// buildUserFromResultRow constructs a User object from a database result row.
func buildUserFromResultRow(row map[string]interface{}) (*model.User, error) {
	userID, ok := row["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse user_id as string")
	}

	username, ok := row["username"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse username as string")
	}

	var attributes json.RawMessage
	if attrs, ok := row["attributes"].(string); ok && attrs != "" {
		attributes = json.RawMessage(attrs)
	}

	return &model.User{
		ID:         userID,
		Username:   username,
		Attributes: attributes,
	}, nil
}
