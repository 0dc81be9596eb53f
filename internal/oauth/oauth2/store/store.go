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

// Package store provides functionality for handling issued token persistence and retrieval.
package store

import (
	"fmt"
	"time"

	"github.com/stratusid/stratus/internal/system/database/provider"
	"github.com/stratusid/stratus/internal/system/log"
)

const loggerComponentName = "TokenStore"

// TokenStoreInterface defines the interface for managing issued tokens.
type TokenStoreInterface interface {
	InsertToken(token TokenRecord) error
	// GetToken retrieves a token by its hash and kind regardless of state.
	// Callers decide how a non-active or expired record maps to their error
	// taxonomy.
	GetToken(tokenHash, tokenKind string) (TokenRecord, error)
	// ConsumeToken atomically transitions an active token to inactive.
	// Exactly one concurrent redemption of the same token succeeds; all
	// others receive ErrTokenAlreadyConsumed.
	ConsumeToken(tokenID string) error
	// RevokeToken revokes the token stored under the given hash. Revoking an
	// already revoked or absent token is not an error.
	RevokeToken(tokenHash string) error
	PurgeExpiredTokens() error
}

// TokenStore implements the TokenStoreInterface for managing issued tokens.
type TokenStore struct {
	DBProvider provider.DBProviderInterface
}

// NewTokenStore creates a new instance of TokenStore.
func NewTokenStore() TokenStoreInterface {
	return &TokenStore{
		DBProvider: provider.GetDBProvider(),
	}
}

// InsertToken inserts a new issued token into the database.
func (ts *TokenStore) InsertToken(token TokenRecord) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := ts.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	_, err = dbClient.Execute(QueryInsertToken, token.TokenID, token.TokenHash, token.TokenKind,
		token.ClientID, token.Subject, token.Scopes, token.TimeCreated, token.ExpiryTime,
		token.State, token.RotatedFrom)
	if err != nil {
		logger.Error("Failed to insert token", log.Error(err))
		return fmt.Errorf("failed to insert token: %w", err)
	}

	return nil
}

// GetToken retrieves a token by its hash and kind.
func (ts *TokenStore) GetToken(tokenHash, tokenKind string) (TokenRecord, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := ts.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return TokenRecord{}, err
	}

	results, err := dbClient.Query(QueryGetTokenByHash, tokenHash, tokenKind)
	if err != nil {
		return TokenRecord{}, fmt.Errorf("error while retrieving token: %w", err)
	}
	if len(results) == 0 {
		return TokenRecord{}, ErrTokenNotFound
	}
	row := results[0]

	tokenID, _ := row["token_id"].(string)
	if tokenID == "" {
		return TokenRecord{}, ErrTokenNotFound
	}

	timeCreated, err := parseTimeField(row["time_created"], "time_created")
	if err != nil {
		logger.Error("Failed to parse token timestamps", log.Error(err))
		return TokenRecord{}, err
	}
	expiryTime, err := parseTimeField(row["expiry_time"], "expiry_time")
	if err != nil {
		logger.Error("Failed to parse token timestamps", log.Error(err))
		return TokenRecord{}, err
	}

	clientID, _ := row["consumer_key"].(string)
	subject, _ := row["authz_user"].(string)
	scopes, _ := row["scope"].(string)
	state, _ := row["state"].(string)
	rotatedFrom, _ := row["rotated_from"].(string)

	return TokenRecord{
		TokenID:     tokenID,
		TokenHash:   tokenHash,
		TokenKind:   tokenKind,
		ClientID:    clientID,
		Subject:     subject,
		Scopes:      scopes,
		TimeCreated: timeCreated,
		ExpiryTime:  expiryTime,
		State:       state,
		RotatedFrom: rotatedFrom,
	}, nil
}

// ConsumeToken atomically deactivates an active token.
func (ts *TokenStore) ConsumeToken(tokenID string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := ts.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	rowsAffected, err := dbClient.Execute(QueryConsumeToken, TokenStateInactive, tokenID, TokenStateActive)
	if err != nil {
		logger.Error("Failed to consume token", log.Error(err))
		return fmt.Errorf("failed to consume token: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTokenAlreadyConsumed
	}

	return nil
}

// RevokeToken revokes the token stored under the given hash.
func (ts *TokenStore) RevokeToken(tokenHash string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := ts.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	_, err = dbClient.Execute(QueryRevokeToken, TokenStateRevoked, tokenHash)
	if err != nil {
		logger.Error("Failed to revoke token", log.Error(err))
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// PurgeExpiredTokens deletes tokens past their expiry time.
func (ts *TokenStore) PurgeExpiredTokens() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := ts.DBProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return err
	}

	rowsAffected, err := dbClient.Execute(QueryPurgeExpiredTokens, time.Now())
	if err != nil {
		logger.Error("Failed to purge expired tokens", log.Error(err))
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	if rowsAffected > 0 {
		logger.Debug("Purged expired tokens", log.Int("count", int(rowsAffected)))
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
