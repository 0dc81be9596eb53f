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

import dbmodel "github.com/stratusid/stratus/internal/system/database/model"

var (
	// QueryGetApplicationByClientID is the query to retrieve an OAuth application by its client id.
	QueryGetApplicationByClientID = dbmodel.DBQuery{
		ID: "STQ-APP_MGT-01",
		Query: "SELECT CONSUMER_KEY, CONSUMER_SECRET_HASH, CALLBACK_URIS, GRANT_TYPES, AUTHORIZE_SCOPE, " +
			"AUTHORIZED_SCOPES, TOKEN_TYPE, OIDC_ENABLED, ACCESS_TOKEN_VALIDITY, REFRESH_TOKEN_VALIDITY, " +
			"AUTHZ_CODE_VALIDITY, SIGNING_CERT, SIGNING_KEY " +
			"FROM IDN_OAUTH_CONSUMER_APPS WHERE CONSUMER_KEY = $1",
	}
	// QueryCreateApplication is the query to register a new OAuth application.
	QueryCreateApplication = dbmodel.DBQuery{
		ID: "STQ-APP_MGT-02",
		Query: "INSERT INTO IDN_OAUTH_CONSUMER_APPS (CONSUMER_KEY, CONSUMER_SECRET_HASH, CALLBACK_URIS, " +
			"GRANT_TYPES, AUTHORIZE_SCOPE, AUTHORIZED_SCOPES, TOKEN_TYPE, OIDC_ENABLED, ACCESS_TOKEN_VALIDITY, " +
			"REFRESH_TOKEN_VALIDITY, AUTHZ_CODE_VALIDITY, SIGNING_CERT, SIGNING_KEY) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)",
	}
	// QueryDeleteApplicationByClientID is the query to delete an OAuth application by its client id.
	QueryDeleteApplicationByClientID = dbmodel.DBQuery{
		ID:    "STQ-APP_MGT-03",
		Query: "DELETE FROM IDN_OAUTH_CONSUMER_APPS WHERE CONSUMER_KEY = $1",
	}
)
