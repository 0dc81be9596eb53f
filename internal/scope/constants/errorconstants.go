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

// Package constants defines constants used across the scope module.
package constants

import "github.com/stratusid/stratus/internal/system/error/serviceerror"

// Client errors for scope management operations.
var (
	// ErrorInvalidScopeName is the error returned when the scope name is empty or malformed.
	ErrorInvalidScopeName = serviceerror.ServiceError{
		Code:             "SCP-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "Scope name must be a non-empty string without spaces",
	}
	// ErrorScopeNotFound is the error returned when the requested scope is not registered.
	ErrorScopeNotFound = serviceerror.ServiceError{
		Code:             "SCP-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Scope not found",
		ErrorDescription: "The scope with the specified name does not exist",
	}
	// ErrorScopeAlreadyExists is the error returned when a scope with the same name is already registered.
	ErrorScopeAlreadyExists = serviceerror.ServiceError{
		Code:             "SCP-1003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Scope already exists",
		ErrorDescription: "A scope with the specified name already exists",
	}
)

// Server errors for scope management operations.
var (
	// ErrorInternalServerError is the error returned when an unexpected failure occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "SCP-5000",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
