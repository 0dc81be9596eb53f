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

package constants

import "github.com/stratusid/stratus/internal/system/error/serviceerror"

// Client errors for application management operations.
var (
	// ErrorInvalidClientID is the error returned when the client id is empty or malformed.
	ErrorInvalidClientID = serviceerror.ServiceError{
		Code:             "APP-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "Client id must be a non-empty string",
	}
	// ErrorApplicationNotFound is the error returned when no application exists for the given client id.
	ErrorApplicationNotFound = serviceerror.ServiceError{
		Code:             "APP-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Application not found",
		ErrorDescription: "No application is registered for the specified client id",
	}
)

// Server errors for application management operations.
var (
	// ErrorInternalServerError is the error returned when an unexpected failure occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "APP-5000",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
