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

// Package service provides application management business logic and operations.
package service

import (
	"sync"

	"github.com/stratusid/stratus/internal/application/constants"
	"github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/application/store"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
	"github.com/stratusid/stratus/internal/system/log"
)

const loggerComponentName = "ApplicationService"

var (
	instance *ApplicationService
	once     sync.Once
)

// ApplicationServiceInterface defines the interface for application management operations.
type ApplicationServiceInterface interface {
	GetOAuthApplication(clientID string) (*model.OAuthApplication, *serviceerror.ServiceError)
	CreateOAuthApplication(app model.OAuthApplication) *serviceerror.ServiceError
	DeleteOAuthApplication(clientID string) *serviceerror.ServiceError
	ValidateClientSecret(app *model.OAuthApplication, clientSecret string) bool
}

// ApplicationService is the default implementation of ApplicationServiceInterface.
type ApplicationService struct{}

// GetApplicationService returns a singleton instance of ApplicationService.
func GetApplicationService() ApplicationServiceInterface {
	once.Do(func() {
		instance = &ApplicationService{}
	})
	return instance
}

// GetOAuthApplication returns the OAuth application registered under the given client id.
func (as *ApplicationService) GetOAuthApplication(clientID string) (
	*model.OAuthApplication, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if clientID == "" {
		return nil, &constants.ErrorInvalidClientID
	}

	app, err := store.GetOAuthApplicationByClientID(clientID)
	if err != nil {
		logger.Error("Failed to retrieve application", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	if app == nil {
		return nil, &constants.ErrorApplicationNotFound
	}

	return app, nil
}

// CreateOAuthApplication registers a new OAuth application.
func (as *ApplicationService) CreateOAuthApplication(app model.OAuthApplication) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if app.ClientID == "" {
		return &constants.ErrorInvalidClientID
	}

	if err := store.CreateOAuthApplication(app); err != nil {
		logger.Error("Failed to create application", log.Error(err))
		return &constants.ErrorInternalServerError
	}

	return nil
}

// DeleteOAuthApplication deletes the OAuth application registered under the given client id.
func (as *ApplicationService) DeleteOAuthApplication(clientID string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if clientID == "" {
		return &constants.ErrorInvalidClientID
	}

	if err := store.DeleteOAuthApplicationByClientID(clientID); err != nil {
		logger.Error("Failed to delete application", log.Error(err))
		return &constants.ErrorInternalServerError
	}

	return nil
}

// ValidateClientSecret verifies the presented client secret against the stored
// hash using a constant time comparison.
func (as *ApplicationService) ValidateClientSecret(app *model.OAuthApplication, clientSecret string) bool {
	if app == nil || app.HashedClientSecret == "" || clientSecret == "" {
		return false
	}
	return hash.VerifySecret(clientSecret, app.HashedClientSecret)
}
