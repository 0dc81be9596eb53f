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

package store

import (
	"errors"

	dbmodel "github.com/stratusid/stratus/internal/system/database/model"
)

// Token kinds.
const (
	TokenKindAccess  = "ACCESS"
	TokenKindRefresh = "REFRESH"
)

// Token states.
const (
	TokenStateActive   = "ACTIVE"
	TokenStateInactive = "INACTIVE"
	TokenStateRevoked  = "REVOKED"
)

// ErrTokenNotFound is returned when a token is not found in the database.
var ErrTokenNotFound = errors.New("token not found")

// ErrTokenAlreadyConsumed is returned when a refresh token has already been
// rotated or is otherwise no longer active.
var ErrTokenAlreadyConsumed = errors.New("token already consumed")

// QueryInsertToken is the query to insert a new issued token into the database.
var QueryInsertToken = dbmodel.DBQuery{
	ID: "TKQ-00001",
	Query: "INSERT INTO IDN_OAUTH2_TOKEN (TOKEN_ID, TOKEN_HASH, TOKEN_KIND, CONSUMER_KEY, AUTHZ_USER, " +
		"SCOPE, TIME_CREATED, EXPIRY_TIME, STATE, ROTATED_FROM) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
}

// QueryGetTokenByHash is the query to retrieve an issued token by its hash and kind.
var QueryGetTokenByHash = dbmodel.DBQuery{
	ID: "TKQ-00002",
	Query: "SELECT TOKEN_ID, TOKEN_HASH, TOKEN_KIND, CONSUMER_KEY, AUTHZ_USER, SCOPE, TIME_CREATED, " +
		"EXPIRY_TIME, STATE, ROTATED_FROM FROM IDN_OAUTH2_TOKEN WHERE TOKEN_HASH = $1 AND TOKEN_KIND = $2",
}

// QueryConsumeToken is the query to atomically deactivate an active token.
// The state predicate makes concurrent redemptions of the same refresh token
// race on a single row update; exactly one wins.
var QueryConsumeToken = dbmodel.DBQuery{
	ID:    "TKQ-00003",
	Query: "UPDATE IDN_OAUTH2_TOKEN SET STATE = $1 WHERE TOKEN_ID = $2 AND STATE = $3",
}

// QueryRevokeToken is the query to revoke a token. Revocation is monotonic;
// a revoked token is never returned to an active state.
var QueryRevokeToken = dbmodel.DBQuery{
	ID:    "TKQ-00004",
	Query: "UPDATE IDN_OAUTH2_TOKEN SET STATE = $1 WHERE TOKEN_HASH = $2 AND STATE != $1",
}

// QueryPurgeExpiredTokens is the query to delete tokens past their expiry.
var QueryPurgeExpiredTokens = dbmodel.DBQuery{
	ID:    "TKQ-00005",
	Query: "DELETE FROM IDN_OAUTH2_TOKEN WHERE EXPIRY_TIME < $1",
}
