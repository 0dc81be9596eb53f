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
	// QueryCreateScope is the query to create a new scope.
	QueryCreateScope = dbmodel.DBQuery{
		ID:    "STQ-SCOPE_MGT-01",
		Query: "INSERT INTO IDN_OAUTH_SCOPE (SCOPE_ID, NAME, DESCRIPTION, IS_PUBLIC) VALUES ($1, $2, $3, $4)",
	}
	// QueryGetScopeByName is the query to retrieve a scope by its name.
	QueryGetScopeByName = dbmodel.DBQuery{
		ID:    "STQ-SCOPE_MGT-02",
		Query: "SELECT SCOPE_ID, NAME, DESCRIPTION, IS_PUBLIC FROM IDN_OAUTH_SCOPE WHERE NAME = $1",
	}
	// QueryGetScopesByNames is the base query to retrieve scopes matching a set of names.
	QueryGetScopesByNames = dbmodel.DBQuery{
		ID:    "STQ-SCOPE_MGT-03",
		Query: "SELECT SCOPE_ID, NAME, DESCRIPTION, IS_PUBLIC FROM IDN_OAUTH_SCOPE WHERE NAME IN (%s)",
	}
	// QueryGetScopeList is the query to retrieve all registered scopes.
	QueryGetScopeList = dbmodel.DBQuery{
		ID:    "STQ-SCOPE_MGT-04",
		Query: "SELECT SCOPE_ID, NAME, DESCRIPTION, IS_PUBLIC FROM IDN_OAUTH_SCOPE",
	}
	// QueryDeleteScopeByName is the query to delete a scope by its name.
	QueryDeleteScopeByName = dbmodel.DBQuery{
		ID:    "STQ-SCOPE_MGT-05",
		Query: "DELETE FROM IDN_OAUTH_SCOPE WHERE NAME = $1",
	}
)
