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

// Package store provides functionality for handling authorization code persistence and retrieval.
package store

import (
	"fmt"
	"time"

	"github.com/stratusid/stratus/internal/oauth/oauth2/authz/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/authz/model"
	"github.com/stratusid/stratus/internal/system/database/provider"
	"github.com/stratusid/stratus/internal/system/log"
)

const loggerComponentName = "AuthorizationCodeStore"

// AuthorizationCodeStoreInterface defines the interface for managing authorization codes.
type AuthorizationCodeStoreInterface interface {
	InsertAuthorizationCode(authzCode model.AuthorizationCode) error
	GetAuthorizationCode(clientID, authCode string) (model.AuthorizationCode, error)
	// ConsumeAuthorizationCode atomically transitions an active code to
	// inactive. Exactly one concurrent redemption of the same code succeeds;
	// all others receive ErrAuthorizationCodeAlreadyConsumed.
	ConsumeAuthorizationCode(authzCode model.AuthorizationCode) error
	RevokeAuthorizationCode(authzCode model.AuthorizationCode) error
	ExpireAuthorizationCode(authzCode model.AuthorizationCode) error
	PurgeExpiredAuthorizationCodes() error
}

// AuthorizationCodeStore implements the AuthorizationCodeStoreInterface for managing authorization codes.
type AuthorizationCodeStore struct {
	DBProvider provider.DBProviderInterface
}

// NewAuthorizationCodeStore creates a new instance of AuthorizationCodeStore.
func NewAuthorizationCodeStore() AuthorizationCodeStoreInterface {
	return &AuthorizationCodeStore{
		DBProvider: provider.GetDBProvider(),
	}
}

// InsertAuthorizationCode inserts a new authorization code into the database.
func (acs *AuthorizationCodeStore) InsertAuthorizationCode(authzCode model.AuthorizationCode) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	_, err = dbClient.Execute(constants.QueryInsertAuthorizationCode, authzCode.CodeID, authzCode.Code,
		authzCode.ClientID, authzCode.RedirectURI, authzCode.AuthorizedUserID, authzCode.TimeCreated,
		authzCode.ExpiryTime, authzCode.State, authzCode.Scopes, authzCode.CodeChallenge,
		authzCode.CodeChallengeMethod)
	if err != nil {
		logger.Error("Failed to insert authorization code", log.Error(err))
		return fmt.Errorf("failed to insert authorization code: %w", err)
	}

	return nil
}

// GetAuthorizationCode retrieves an authorization code by client id and authorization code.
func (acs *AuthorizationCodeStore) GetAuthorizationCode(clientID, authCode string) (
	model.AuthorizationCode, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.AuthorizationCode{}, err
	}

	results, err := dbClient.Query(constants.QueryGetAuthorizationCode, clientID, authCode)
	if err != nil {
		return model.AuthorizationCode{}, fmt.Errorf("error while retrieving authorization code: %w", err)
	}
	if len(results) == 0 {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeNotFound
	}
	row := results[0]

	codeID, _ := row["code_id"].(string)
	if codeID == "" {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeNotFound
	}

	timeCreated, err := parseTimeField(row["time_created"], "time_created")
	if err != nil {
		logger.Error("Failed to parse authorization code timestamps", log.Error(err))
		return model.AuthorizationCode{}, err
	}
	expiryTime, err := parseTimeField(row["expiry_time"], "expiry_time")
	if err != nil {
		logger.Error("Failed to parse authorization code timestamps", log.Error(err))
		return model.AuthorizationCode{}, err
	}

	code, _ := row["authorization_code"].(string)
	callbackURL, _ := row["callback_url"].(string)
	authzUser, _ := row["authz_user"].(string)
	state, _ := row["state"].(string)
	scopes, _ := row["scope"].(string)
	codeChallenge, _ := row["code_challenge"].(string)
	codeChallengeMethod, _ := row["code_challenge_method"].(string)

	return model.AuthorizationCode{
		CodeID:              codeID,
		Code:                code,
		ClientID:            clientID,
		RedirectURI:         callbackURL,
		AuthorizedUserID:    authzUser,
		TimeCreated:         timeCreated,
		ExpiryTime:          expiryTime,
		Scopes:              scopes,
		State:               state,
		CodeChallenge:       codeChallenge,
		CodeChallengeMethod: codeChallengeMethod,
	}, nil
}

// ConsumeAuthorizationCode atomically deactivates an active authorization code.
func (acs *AuthorizationCodeStore) ConsumeAuthorizationCode(authzCode model.AuthorizationCode) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	rowsAffected, err := dbClient.Execute(constants.QueryConsumeAuthorizationCode,
		constants.AuthCodeStateInactive, authzCode.CodeID, constants.AuthCodeStateActive)
	if err != nil {
		logger.Error("Failed to consume authorization code", log.Error(err))
		return fmt.Errorf("failed to consume authorization code: %w", err)
	}
	if rowsAffected == 0 {
		return constants.ErrAuthorizationCodeAlreadyConsumed
	}

	return nil
}

// RevokeAuthorizationCode revokes an authorization code.
func (acs *AuthorizationCodeStore) RevokeAuthorizationCode(authzCode model.AuthorizationCode) error {
	return acs.updateAuthorizationCodeState(authzCode, constants.AuthCodeStateRevoked)
}

// ExpireAuthorizationCode expires an authorization code.
func (acs *AuthorizationCodeStore) ExpireAuthorizationCode(authzCode model.AuthorizationCode) error {
	return acs.updateAuthorizationCodeState(authzCode, constants.AuthCodeStateExpired)
}

// PurgeExpiredAuthorizationCodes deletes authorization codes past their expiry time.
func (acs *AuthorizationCodeStore) PurgeExpiredAuthorizationCodes() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	rowsAffected, err := dbClient.Execute(constants.QueryPurgeExpiredAuthorizationCodes, time.Now())
	if err != nil {
		logger.Error("Failed to purge expired authorization codes", log.Error(err))
		return fmt.Errorf("failed to purge expired authorization codes: %w", err)
	}
	if rowsAffected > 0 {
		logger.Debug("Purged expired authorization codes", log.Int("count", int(rowsAffected)))
	}

	return nil
}

// updateAuthorizationCodeState updates the state of an authorization code.
func (acs *AuthorizationCodeStore) updateAuthorizationCodeState(authzCode model.AuthorizationCode,
	newState string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := acs.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	_, err = dbClient.Execute(constants.QueryUpdateAuthorizationCodeState, newState, authzCode.CodeID)
	if err != nil {
		logger.Error("Failed to update authorization code state", log.Error(err))
		return fmt.Errorf("failed to update authorization code state: %w", err)
	}

	return nil
}

// parseTimeField normalizes timestamp columns across drivers. SQLite reports
// timestamps as strings while Postgres reports time.Time values.
func parseTimeField(value interface{}, fieldName string) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00",
			"2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("failed to parse %s as time", fieldName)
	default:
		return time.Time{}, fmt.Errorf("failed to parse %s as time", fieldName)
	}
}
