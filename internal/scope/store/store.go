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

// Package store provides functionality for handling scope data persistence.
package store

import (
	"fmt"
	"strings"

	"github.com/stratusid/stratus/internal/scope/model"
	dbmodel "github.com/stratusid/stratus/internal/system/database/model"
	"github.com/stratusid/stratus/internal/system/database/provider"
	"github.com/stratusid/stratus/internal/system/log"
)

const loggerComponentName = "ScopeStore"

// CreateScope persists a new scope.
func CreateScope(scope model.Scope) error {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryCreateScope, scope.ID, scope.Name, scope.Description, scope.Public)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

// GetScopeByName retrieves a scope by its name. Scope names are matched case sensitively.
func GetScopeByName(name string) (*model.Scope, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetScopeByName, name)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	scope, err := buildScopeFromResultRow(results[0])
	if err != nil {
		return nil, err
	}
	return &scope, nil
}

// GetScopesByNames retrieves the registered scopes matching the provided names.
// Names with no registered scope are simply absent from the result.
func GetScopesByNames(names []string) ([]model.Scope, error) {
	if len(names) == 0 {
		return []model.Scope{}, nil
	}

	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	placeholders := make([]string, len(names))
	args := make([]interface{}, len(names))
	for i, name := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = name
	}

	query := dbmodel.DBQuery{
		ID:    QueryGetScopesByNames.ID,
		Query: fmt.Sprintf(QueryGetScopesByNames.Query, strings.Join(placeholders, ",")),
	}

	results, err := dbClient.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	scopes := make([]model.Scope, 0, len(results))
	for _, row := range results {
		scope, err := buildScopeFromResultRow(row)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}

	return scopes, nil
}

// GetScopeList retrieves all registered scopes.
func GetScopeList() ([]model.Scope, error) {
	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetScopeList)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	scopes := make([]model.Scope, 0, len(results))
	for _, row := range results {
		scope, err := buildScopeFromResultRow(row)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}

	return scopes, nil
}

// DeleteScopeByName deletes a scope by its name. Deleting an absent scope is not an error.
func DeleteScopeByName(name string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := provider.GetDBProvider().GetDBClient("identity")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rowsAffected, err := dbClient.Execute(QueryDeleteScopeByName, name)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if rowsAffected == 0 {
		logger.Debug("Scope not found for deletion", log.String("name", name))
	}

	return nil
}

// buildScopeFromResultRow constructs a Scope object from a database result row.
func buildScopeFromResultRow(row map[string]interface{}) (model.Scope, error) {
	scopeID, ok := row["scope_id"].(string)
	if !ok {
		return model.Scope{}, fmt.Errorf("failed to parse scope_id as string")
	}

	name, ok := row["name"].(string)
	if !ok {
		return model.Scope{}, fmt.Errorf("failed to parse name as string")
	}

	description, ok := row["description"].(string)
	if !ok {
		return model.Scope{}, fmt.Errorf("failed to parse description as string")
	}

	return model.Scope{
		ID:          scopeID,
		Name:        name,
		Description: description,
		Public:      parseBoolColumn(row["is_public"]),
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
