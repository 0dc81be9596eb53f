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
	// QueryCreateUser is the query to create a new user with credentials.
	QueryCreateUser = dbmodel.DBQuery{
		ID: "STQ-USER_MGT-01",
		Query: "INSERT INTO IDN_USER (USER_ID, USERNAME, CREDENTIAL_HASH, SALT, ATTRIBUTES) " +
			"VALUES ($1, $2, $3, $4, $5)",
	}
	// QueryGetUserByUsername is the query to retrieve a user by username.
	QueryGetUserByUsername = dbmodel.DBQuery{
		ID:    "STQ-USER_MGT-02",
		Query: "SELECT USER_ID, USERNAME, ATTRIBUTES FROM IDN_USER WHERE USERNAME = $1",
	}
	// QueryGetUserByID is the query to retrieve a user by id.
	QueryGetUserByID = dbmodel.DBQuery{
		ID:    "STQ-USER_MGT-03",
		Query: "SELECT USER_ID, USERNAME, ATTRIBUTES FROM IDN_USER WHERE USER_ID = $1",
	}
	// QueryGetCredentialByUsername is the query to retrieve the credential material of a user.
	QueryGetCredentialByUsername = dbmodel.DBQuery{
		ID:    "STQ-USER_MGT-04",
		Query: "SELECT USER_ID, CREDENTIAL_HASH, SALT FROM IDN_USER WHERE USERNAME = $1",
	}
)
