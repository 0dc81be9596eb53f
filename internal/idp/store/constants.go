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
	// QueryCreateRelyingParty is the query to create a new relying party mapping.
	QueryCreateRelyingParty = dbmodel.DBQuery{
		ID: "STQ-IDP_MGT-01",
		Query: "INSERT INTO IDN_RELYING_PARTY (RP_ID, CLIENT_ID, BACKEND_TYPE, PROPERTIES) " +
			"VALUES ($1, $2, $3, $4)",
	}
	// QueryGetRelyingPartyByClientID is the query to retrieve a relying party by client id.
	QueryGetRelyingPartyByClientID = dbmodel.DBQuery{
		ID:    "STQ-IDP_MGT-02",
		Query: "SELECT RP_ID, CLIENT_ID, BACKEND_TYPE, PROPERTIES FROM IDN_RELYING_PARTY WHERE CLIENT_ID = $1",
	}
	// QueryDeleteRelyingPartyByClientID is the query to delete a relying party by client id.
	QueryDeleteRelyingPartyByClientID = dbmodel.DBQuery{
		ID:    "STQ-IDP_MGT-03",
		Query: "DELETE FROM IDN_RELYING_PARTY WHERE CLIENT_ID = $1",
	}
)
