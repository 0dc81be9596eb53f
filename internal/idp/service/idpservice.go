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

// Package service provides relying party resolution and management operations.
package service

import (
	"sync"

	"github.com/stratusid/stratus/internal/idp/backend"
	"github.com/stratusid/stratus/internal/idp/constants"
	"github.com/stratusid/stratus/internal/idp/model"
	"github.com/stratusid/stratus/internal/idp/store"
	"github.com/stratusid/stratus/internal/system/error/serviceerror"
	"github.com/stratusid/stratus/internal/system/log"
	"github.com/stratusid/stratus/internal/system/utils"
)

const loggerComponentName = "RelyingPartyService"

var (
	instance *RelyingPartyService
	once     sync.Once
)

// RelyingPartyServiceInterface defines the interface for relying party operations.
type RelyingPartyServiceInterface interface {
	Resolve(clientID string) (backend.IdentityBackend, *serviceerror.ServiceError)
	GetRelyingParty(clientID string) (*model.RelyingParty, *serviceerror.ServiceError)
	CreateRelyingParty(rp model.RelyingParty) (*model.RelyingParty, *serviceerror.ServiceError)
	DeleteRelyingParty(clientID string) *serviceerror.ServiceError
}

// RelyingPartyService is the default implementation of RelyingPartyServiceInterface.
type RelyingPartyService struct{}

// GetRelyingPartyService returns a singleton instance of RelyingPartyService.
func GetRelyingPartyService() RelyingPartyServiceInterface {
	once.Do(func() {
		instance = &RelyingPartyService{}
	})
	return instance
}

// Resolve looks up the relying party for the given client id and returns the
// identity backend that authenticates its end users. A missing client id and
// a missing relying party configuration are reported as distinct errors.
func (rps *RelyingPartyService) Resolve(clientID string) (
	backend.IdentityBackend, *serviceerror.ServiceError) {
	rp, svcErr := rps.GetRelyingParty(clientID)
	if svcErr != nil {
		return nil, svcErr
	}

	switch rp.BackendType {
	case constants.BackendTypeInternal:
		return backend.NewInternalBackend(), nil
	case constants.BackendTypeExternal:
		return backend.NewExternalBackend(
			rp.Properties[constants.PropertyAuthEndpoint],
			rp.Properties[constants.PropertyProfileEndpoint],
			rp.Properties[constants.PropertyRegistrationEndpoint],
		), nil
	default:
		return nil, &constants.ErrorUnsupportedBackendType
	}
}

// GetRelyingParty returns the relying party configured for the given client id.
func (rps *RelyingPartyService) GetRelyingParty(clientID string) (
	*model.RelyingParty, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if clientID == "" {
		return nil, &constants.ErrorMissingClientID
	}

	rp, err := store.GetRelyingPartyByClientID(clientID)
	if err != nil {
		logger.Error("Failed to retrieve relying party", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	if rp == nil {
		return nil, &constants.ErrorRelyingPartyNotConfigured
	}

	return rp, nil
}

// CreateRelyingParty registers a new relying party mapping for a client.
func (rps *RelyingPartyService) CreateRelyingParty(rp model.RelyingParty) (
	*model.RelyingParty, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if rp.ClientID == "" {
		return nil, &constants.ErrorMissingClientID
	}
	if rp.BackendType != constants.BackendTypeInternal && rp.BackendType != constants.BackendTypeExternal {
		return nil, &constants.ErrorUnsupportedBackendType
	}

	existing, err := store.GetRelyingPartyByClientID(rp.ClientID)
	if err != nil {
		logger.Error("Failed to check for existing relying party", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	if existing != nil {
		return nil, &constants.ErrorRelyingPartyAlreadyExists
	}

	rp.ID = utils.GenerateUUID()
	if err := store.CreateRelyingParty(rp); err != nil {
		logger.Error("Failed to create relying party", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	return &rp, nil
}

// DeleteRelyingParty deletes the relying party configured for the given client id.
func (rps *RelyingPartyService) DeleteRelyingParty(clientID string) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if clientID == "" {
		return &constants.ErrorMissingClientID
	}

	if err := store.DeleteRelyingPartyByClientID(clientID); err != nil {
		logger.Error("Failed to delete relying party", log.Error(err))
		return &constants.ErrorInternalServerError
	}

	return nil
}
