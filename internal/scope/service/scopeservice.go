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

// Package service provides scope management business logic and operations.
package service

import (
	"strings"

	"github.com/stratusid/stratus/internal/scope/constants"
	"github.com/stratusid/stratus/internal/scope/model"
	"github.com/stratusid/stratus/internal/scope/store"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
	"github.com/stratusid/stratus/internal/system/log"
	"github.com/stratusid/stratus/internal/system/utils"
)

const loggerComponentName = "ScopeService"

// ScopeServiceInterface defines the interface for scope management operations.
type ScopeServiceInterface interface {
	CreateScope(scope model.Scope) (*model.Scope, *serviceerror.ServiceError)
	GetScopeByName(name string) (*model.Scope, *serviceerror.ServiceError)
	GetScopesByNames(names []string) ([]model.Scope, *serviceerror.ServiceError)
	GetScopeList() ([]model.Scope, *serviceerror.ServiceError)
	DeleteScopeByName(name string) *serviceerror.ServiceError
}

// ScopeService is the default implementation of ScopeServiceInterface.
type ScopeService struct{}

// NewScopeService creates a new instance of ScopeService.
func NewScopeService() ScopeServiceInterface {
	return &ScopeService{}
}

// CreateScope registers a new scope after validating its name.
func (ss *ScopeService) CreateScope(scope model.Scope) (*model.Scope, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if !isValidScopeName(scope.Name) {
		return nil, &constants.ErrorInvalidScopeName
	}

	existing, err := store.GetScopeByName(scope.Name)
	if err != nil {
		logger.Error("Failed to check for existing scope", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	if existing != nil {
		return nil, &constants.ErrorScopeAlreadyExists
	}

	scope.ID = utils.GenerateUUID()
	if err := store.CreateScope(scope); err != nil {
		logger.Error("Failed to create scope", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	return &scope, nil
}

// GetScopeByName returns the scope registered under the given name.
func (ss *ScopeService) GetScopeByName(name string) (*model.Scope, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if !isValidScopeName(name) {
		return nil, &constants.ErrorInvalidScopeName
	}

	scope, err := store.GetScopeByName(name)
	if err != nil {
		logger.Error("Failed to retrieve scope", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	if scope == nil {
		return nil, &constants.ErrorScopeNotFound
	}

	return scope, nil
}

// GetScopesByNames returns the registered scopes matching the provided names.
func (ss *ScopeService) GetScopesByNames(names []string) ([]model.Scope, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	for _, name := range names {
		if !isValidScopeName(name) {
			return nil, &constants.ErrorInvalidScopeName
		}
	}

	scopes, err := store.GetScopesByNames(names)
	if err != nil {
		logger.Error("Failed to retrieve scopes", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	return scopes, nil
}

// GetScopeList returns all registered scopes.
func (ss *ScopeService) GetScopeList() ([]model.Scope, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	scopes, err := store.GetScopeList()
	if err != nil {
		logger.Error("Failed to retrieve scope list", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	return scopes, nil
}

// DeleteScopeByName deletes the scope registered under the given name.
func (ss *ScopeService) DeleteScopeByName(name string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if !isValidScopeName(name) {
		return &constants.ErrorInvalidScopeName
	}

	if err := store.DeleteScopeByName(name); err != nil {
		logger.Error("Failed to delete scope", log.Error(err))
		return &constants.ErrorInternalServerError
	}

	return nil
}

// isValidScopeName reports whether the given name is a valid scope name.
// Scope names are case sensitive, non-empty and must not contain spaces.
func isValidScopeName(name string) bool {
	return name != "" && !strings.Contains(name, " ")
}
