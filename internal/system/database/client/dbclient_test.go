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

package client

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/stratusid/stratus/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	db := model.NewDB(suite.mockDB)
	suite.dbClient = NewDBClient(db, "mock")
}

func (suite *DBClientTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	testQuery := model.DBQuery{
		ID:    "test_query_success",
		Query: "SELECT id, name FROM users WHERE id = ?",
	}
	args := []interface{}{1}
	mockArgs := []driver.Value{1}

	columns := []string{"id", "name"}
	rows := sqlmock.NewRows(columns).
		AddRow(1, "John Doe").
		AddRow(2, "Jane Smith")
	suite.mock.ExpectQuery("SELECT id, name FROM users WHERE id = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	assert.Equal(suite.T(), int64(1), results[0]["id"])
	assert.Equal(suite.T(), "John Doe", results[0]["name"])
	assert.Equal(suite.T(), int64(2), results[1]["id"])
	assert.Equal(suite.T(), "Jane Smith", results[1]["name"])
}

func (suite *DBClientTestSuite) TestQueryNormalizesColumnNames() {
	testQuery := model.DBQuery{
		ID:    "test_query_columns",
		Query: "SELECT ID, NAME FROM users WHERE id = ?",
	}

	rows := sqlmock.NewRows([]string{"ID", "NAME"}).AddRow(1, "John Doe")
	suite.mock.ExpectQuery("SELECT ID, NAME FROM users WHERE id = ?").
		WithArgs(driver.Value(1)).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, 1)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	assert.Equal(suite.T(), "John Doe", results[0]["name"])
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	testQuery := model.DBQuery{
		ID:    "test_query_empty",
		Query: "SELECT id, name FROM users WHERE id = ?",
	}

	rows := sqlmock.NewRows([]string{"id", "name"})
	suite.mock.ExpectQuery("SELECT id, name FROM users WHERE id = ?").
		WithArgs(driver.Value(999)).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, 999)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
}

func (suite *DBClientTestSuite) TestQueryDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_query_error",
		Query: "SELECT id, name FROM non_existent_table",
	}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery("SELECT id, name FROM non_existent_table").
		WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(testQuery)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), results)
}

func (suite *DBClientTestSuite) TestExecuteSuccess() {
	testQuery := model.DBQuery{
		ID:    "test_execute_success",
		Query: "UPDATE users SET name = ? WHERE id = ?",
	}
	mockArgs := []driver.Value{"Jane Doe", 1}

	suite.mock.ExpectExec("UPDATE users SET name = \\? WHERE id = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rowsAffected, err := suite.dbClient.Execute(testQuery, "Jane Doe", 1)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rowsAffected)
}

func (suite *DBClientTestSuite) TestExecuteZeroRowsAffected() {
	testQuery := model.DBQuery{
		ID:    "test_execute_zero",
		Query: "UPDATE users SET name = ? WHERE id = ?",
	}
	mockArgs := []driver.Value{"Jane Doe", 999}

	suite.mock.ExpectExec("UPDATE users SET name = \\? WHERE id = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rowsAffected, err := suite.dbClient.Execute(testQuery, "Jane Doe", 999)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
}

func (suite *DBClientTestSuite) TestExecuteDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_db_error",
		Query: "UPDATE non_existent_table SET name = ? WHERE id = ?",
	}
	mockArgs := []driver.Value{"Jane Doe", 1}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectExec("UPDATE non_existent_table SET name = \\? WHERE id = \\?").
		WithArgs(mockArgs...).
		WillReturnError(expectedErr)

	rowsAffected, err := suite.dbClient.Execute(testQuery, "Jane Doe", 1)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
}

func (suite *DBClientTestSuite) TestExecuteRowsAffectedError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_rows_error",
		Query: "INSERT INTO users (name) VALUES (?)",
	}
	mockArgs := []driver.Value{"John Doe"}

	result := sqlmock.NewErrorResult(errors.New("rows affected error"))
	suite.mock.ExpectExec("INSERT INTO users \\(name\\) VALUES \\(\\?\\)").
		WithArgs(mockArgs...).
		WillReturnResult(result)

	rowsAffected, err := suite.dbClient.Execute(testQuery, "John Doe")

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "rows affected error")
	assert.Equal(suite.T(), int64(0), rowsAffected)
}

func (suite *DBClientTestSuite) TestBeginTxSuccess() {
	suite.mock.ExpectBegin()

	tx, err := suite.dbClient.BeginTx()

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), tx)
	assert.Implements(suite.T(), (*model.TxInterface)(nil), tx)
}

func (suite *DBClientTestSuite) TestBeginTxError() {
	expectedErr := errors.New("transaction error")
	suite.mock.ExpectBegin().WillReturnError(expectedErr)

	tx, err := suite.dbClient.BeginTx()

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), tx)
}

func (suite *DBClientTestSuite) TestCloseSuccess() {
	suite.mock.ExpectClose()

	err := suite.dbClient.Close()

	assert.NoError(suite.T(), err)
}
