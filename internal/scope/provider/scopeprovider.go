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

// Package provider provides functionality for managing scope service instances.
package provider

import (
	"github.com/stratusid/stratus/internal/scope/service"
)

// ScopeProviderInterface defines the interface for the scope provider.
type ScopeProviderInterface interface {
	GetScopeService() service.ScopeServiceInterface
}

// ScopeProvider is the default implementation of the ScopeProviderInterface.
type ScopeProvider struct{}

// NewScopeProvider creates a new instance of ScopeProvider.
func NewScopeProvider() ScopeProviderInterface {
	return &ScopeProvider{}
}

// GetScopeService returns the scope service instance.
func (sp *ScopeProvider) GetScopeService() service.ScopeServiceInterface {
	return service.NewScopeService()
}
