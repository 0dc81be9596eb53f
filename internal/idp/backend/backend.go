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

// Package backend defines the identity backend capability set and its
// concrete implementations. Each relying party resolves to exactly one
// backend, which allows every OAuth client to authenticate its end users
// against a different user population.
package backend

import (
	"context"
	"errors"

	usermodel "github.com/stratusid/stratus/internal/user/model"
)

// ErrAuthenticationFailed is returned when the presented end user credentials
// are not valid. The message deliberately does not distinguish between an
// unknown username and a wrong password.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrCapabilityNotSupported is returned when a backend does not implement the
// invoked capability.
var ErrCapabilityNotSupported = errors.New("capability not supported by the identity backend")

// IdentityBackend defines the capability set of an identity backend.
type IdentityBackend interface {
	// Authenticate verifies the end user credentials and returns the user on success.
	Authenticate(ctx context.Context, username, password string) (*usermodel.User, error)
	// FetchProfile retrieves the profile of an already authenticated user.
	FetchProfile(ctx context.Context, userID string) (*usermodel.User, error)
	// InitiateRegistration starts a registration flow for a new end user.
	InitiateRegistration(ctx context.Context, username string) error
}
