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
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/stratusid/stratus/internal/oauth/oauth2/authz/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/authz/model"
	"github.com/stratusid/stratus/internal/system/database/client"
	dbmodel "github.com/stratusid/stratus/internal/system/database/model"
)

// fixedDBProvider hands out a client bound to the sqlmock connection.
type fixedDBProvider struct {
	dbClient client.DBClientInterface
}

func (p *fixedDBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	return p.dbClient, nil
}

type AuthorizationCodeStoreTestSuite struct {
	suite.Suite
	mockDB *sql.DB
	mock   sqlmock.Sqlmock
	store  *AuthorizationCodeStore
}

func TestAuthorizationCodeStoreSuite(t *testing.T) {
	suite.Run(t, new(AuthorizationCodeStoreTestSuite))
}

func (suite *AuthorizationCodeStoreTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	dbClient := client.NewDBClient(dbmodel.NewDB(suite.mockDB), "mock")
	suite.store = &AuthorizationCodeStore{
		DBProvider: &fixedDBProvider{dbClient: dbClient},
	}
}

func (suite *AuthorizationCodeStoreTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func testAuthorizationCode() model.AuthorizationCode {
	now := time.Now()
	return model.AuthorizationCode{
		CodeID:              "code-id-1",
		Code:                "abc123",
		ClientID:            "client123",
		RedirectURI:         "https://localhost:3000/callback",
		AuthorizedUserID:    "user123",
		TimeCreated:         now,
		ExpiryTime:          now.Add(10 * time.Minute),
		State:               constants.AuthCodeStateActive,
		Scopes:              "openid profile",
		CodeChallenge:       "challenge",
		CodeChallengeMethod: "S256",
	}
}

func (suite *AuthorizationCodeStoreTestSuite) TestInsertAuthorizationCode() {
	authzCode := testAuthorizationCode()

	suite.mock.ExpectExec(constants.QueryInsertAuthorizationCode.Query).
		WithArgs(driver.Value("code-id-1"), "abc123", "client123",
			"https://localhost:3000/callback", "user123", authzCode.TimeCreated,
			authzCode.ExpiryTime, constants.AuthCodeStateActive, "openid profile",
			"challenge", "S256").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.store.InsertAuthorizationCode(authzCode)
	assert.NoError(suite.T(), err)
}

func (suite *AuthorizationCodeStoreTestSuite) TestGetAuthorizationCode() {
	now := time.Now()
	columns := []string{"CODE_ID", "AUTHORIZATION_CODE", "CALLBACK_URL", "AUTHZ_USER",
		"TIME_CREATED", "EXPIRY_TIME", "STATE", "SCOPE", "CODE_CHALLENGE", "CODE_CHALLENGE_METHOD"}
	rows := sqlmock.NewRows(columns).
		AddRow("code-id-1", "abc123", "https://localhost:3000/callback", "user123",
			now, now.Add(10*time.Minute), constants.AuthCodeStateActive, "openid profile",
			"challenge", "S256")

	suite.mock.ExpectQuery(constants.QueryGetAuthorizationCode.Query).
		WithArgs(driver.Value("client123"), "abc123").
		WillReturnRows(rows)

	authzCode, err := suite.store.GetAuthorizationCode("client123", "abc123")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "code-id-1", authzCode.CodeID)
	assert.Equal(suite.T(), "client123", authzCode.ClientID)
	assert.Equal(suite.T(), "https://localhost:3000/callback", authzCode.RedirectURI)
	assert.Equal(suite.T(), constants.AuthCodeStateActive, authzCode.State)
	assert.Equal(suite.T(), "S256", authzCode.CodeChallengeMethod)
}

func (suite *AuthorizationCodeStoreTestSuite) TestGetAuthorizationCode_NotFound() {
	rows := sqlmock.NewRows([]string{"CODE_ID"})
	suite.mock.ExpectQuery(constants.QueryGetAuthorizationCode.Query).
		WithArgs(driver.Value("client123"), "no-such-code").
		WillReturnRows(rows)

	_, err := suite.store.GetAuthorizationCode("client123", "no-such-code")

	assert.ErrorIs(suite.T(), err, constants.ErrAuthorizationCodeNotFound)
}

func (suite *AuthorizationCodeStoreTestSuite) TestConsumeAuthorizationCode_SingleWinner() {
	suite.mock.ExpectExec(constants.QueryConsumeAuthorizationCode.Query).
		WithArgs(driver.Value(constants.AuthCodeStateInactive), "code-id-1",
			constants.AuthCodeStateActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.store.ConsumeAuthorizationCode(testAuthorizationCode())
	assert.NoError(suite.T(), err)
}

func (suite *AuthorizationCodeStoreTestSuite) TestConsumeAuthorizationCode_AlreadyConsumed() {
	// The state predicate matched no row, meaning a concurrent redemption
	// already flipped the code.
	suite.mock.ExpectExec(constants.QueryConsumeAuthorizationCode.Query).
		WithArgs(driver.Value(constants.AuthCodeStateInactive), "code-id-1",
			constants.AuthCodeStateActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := suite.store.ConsumeAuthorizationCode(testAuthorizationCode())
	assert.ErrorIs(suite.T(), err, constants.ErrAuthorizationCodeAlreadyConsumed)
}

func (suite *AuthorizationCodeStoreTestSuite) TestRevokeAuthorizationCode() {
	suite.mock.ExpectExec(constants.QueryUpdateAuthorizationCodeState.Query).
		WithArgs(driver.Value(constants.AuthCodeStateRevoked), "code-id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.store.RevokeAuthorizationCode(testAuthorizationCode())
	assert.NoError(suite.T(), err)
}

func (suite *AuthorizationCodeStoreTestSuite) TestExpireAuthorizationCode() {
	suite.mock.ExpectExec(constants.QueryUpdateAuthorizationCodeState.Query).
		WithArgs(driver.Value(constants.AuthCodeStateExpired), "code-id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.store.ExpireAuthorizationCode(testAuthorizationCode())
	assert.NoError(suite.T(), err)
}

func (suite *AuthorizationCodeStoreTestSuite) TestPurgeExpiredAuthorizationCodes() {
	suite.mock.ExpectExec(constants.QueryPurgeExpiredAuthorizationCodes.Query).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := suite.store.PurgeExpiredAuthorizationCodes()
	assert.NoError(suite.T(), err)
}
