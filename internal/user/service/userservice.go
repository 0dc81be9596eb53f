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

// Package service provides user management business logic and operations.
package service

import (
	"errors"
	"sync"

	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/log"
	"github.com/stratusid/stratus/internal/system/utils"
	"github.com/stratusid/stratus/internal/user/model"
	"github.com/stratusid/stratus/internal/user/store"
)

const loggerComponentName = "UserService"

// ErrInvalidCredentials is returned when the presented username or password is incorrect.
// The message is intentionally identical for both cases.
var ErrInvalidCredentials = errors.New("invalid username or password")

var (
	instance *UserService
	once     sync.Once
)

// UserServiceInterface defines the interface for user management operations.
type UserServiceInterface interface {
	CreateUser(username, password string, attributes []byte) (*model.User, error)
	GetUserByID(userID string) (*model.User, error)
	VerifyCredentials(username, password string) (*model.User, error)
}

// UserService is the default implementation of UserServiceInterface.
type UserService struct{}

// GetUserService returns a singleton instance of UserService.
func GetUserService() UserServiceInterface {
	once.Do(func() {
		instance = &UserService{}
	})
	return instance
}

// CreateUser registers a new user with a salted credential hash.
func (us *UserService) CreateUser(username, password string, attributes []byte) (*model.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	salt, err := hash.GenerateSalt()
	if err != nil {
		return nil, err
	}
	credentialHash, err := hash.HashStringWithSalt(password, salt)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:         utils.GenerateUUID(),
		Username:   username,
		Attributes: attributes,
	}
	credential := model.Credential{
		UserID:         user.ID,
		CredentialHash: credentialHash,
		Salt:           salt,
	}

	if err := store.CreateUser(user, credential); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns the user registered under the given id.
func (us *UserService) GetUserByID(userID string) (*model.User, error) {
	return store.GetUserByID(userID)
}

// VerifyCredentials verifies the presented username and password against the
// stored credential hash. The comparison is constant time and the failure
// mode does not reveal whether the username exists.
func (us *UserService) VerifyCredentials(username, password string) (*model.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	credential, err := store.GetCredentialByUsername(username)
	if err != nil {
		logger.Error("Failed to retrieve user credentials", log.Error(err))
		return nil, err
	}
	if credential == nil {
		return nil, ErrInvalidCredentials
	}

	presentedHash, err := hash.HashStringWithSalt(password, credential.Salt)
	if err != nil {
		return nil, err
	}
	if !hash.CompareHashes(presentedHash, credential.CredentialHash) {
		return nil, ErrInvalidCredentials
	}

	return store.GetUserByID(credential.UserID)
}
