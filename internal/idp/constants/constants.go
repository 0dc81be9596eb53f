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

// Package constants defines constants used across the idp module.
package constants

import "github.com/stratusid/stratus/internal/system/error/serviceerror"

// BackendType identifies the identity backend implementation serving a relying party.
type BackendType string

const (
	// BackendTypeInternal authenticates end users against the local user store.
	BackendTypeInternal BackendType = "INTERNAL"
	// BackendTypeExternal authenticates end users against a remote identity API.
	BackendTypeExternal BackendType = "EXTERNAL"
)

// Property keys recognized in relying party backend configuration.
const (
	// PropertyAuthEndpoint is the external endpoint used to verify end user credentials.
	PropertyAuthEndpoint = "auth_endpoint"
	// PropertyProfileEndpoint is the external endpoint used to fetch end user profiles.
	PropertyProfileEndpoint = "profile_endpoint"
	// PropertyRegistrationEndpoint is the external endpoint used to initiate user registration.
	PropertyRegistrationEndpoint = "registration_endpoint"
)

// Client errors for relying party operations. The descriptions are surfaced to
// administrators; the distinction between a missing client id and a missing
// relying party configuration is deliberate.
var (
	// ErrorMissingClientID is the error returned when no client id is supplied for resolution.
	ErrorMissingClientID = serviceerror.ServiceError{
		Code:             "IDP-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "No client id supplied for relying party resolution",
	}
	// ErrorRelyingPartyNotConfigured is the error returned when no relying party exists for the client.
	ErrorRelyingPartyNotConfigured = serviceerror.ServiceError{
		Code:             "IDP-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Relying party not configured",
		ErrorDescription: "No relying party is configured for the specified client id",
	}
	// ErrorRelyingPartyAlreadyExists is the error returned when a relying party already exists for the client.
	ErrorRelyingPartyAlreadyExists = serviceerror.ServiceError{
		Code:             "IDP-1003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Relying party already exists",
		ErrorDescription: "A relying party is already configured for the specified client id",
	}
	// ErrorUnsupportedBackendType is the error returned for an unrecognized backend type.
	ErrorUnsupportedBackendType = serviceerror.ServiceError{
		Code:             "IDP-1004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Unsupported backend type",
		ErrorDescription: "The relying party is configured with an unsupported identity backend type",
	}
)

// Server errors for relying party operations.
var (
	// ErrorInternalServerError is the error returned when an unexpected failure occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "IDP-5000",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
