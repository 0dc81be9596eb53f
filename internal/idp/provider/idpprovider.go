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

// Package provider provides functionality for managing relying party service instances.
package provider

import (
	"github.com/stratusid/stratus/internal/idp/service"
)

// RelyingPartyProviderInterface defines the interface for the relying party provider.
type RelyingPartyProviderInterface interface {
	GetRelyingPartyService() service.RelyingPartyServiceInterface
}

// RelyingPartyProvider is the default implementation of the RelyingPartyProviderInterface.
type RelyingPartyProvider struct{}

// NewRelyingPartyProvider creates a new instance of RelyingPartyProvider.
func NewRelyingPartyProvider() RelyingPartyProviderInterface {
	return &RelyingPartyProvider{}
}

// GetRelyingPartyService returns the relying party service instance.
func (rp *RelyingPartyProvider) GetRelyingPartyService() service.RelyingPartyServiceInterface {
	return service.GetRelyingPartyService()
}
