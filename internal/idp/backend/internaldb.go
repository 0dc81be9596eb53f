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

package backend

import (
	"context"
	"errors"

	"github.com/stratusid/stratus/internal/system/log"
	usermodel "github.com/stratusid/stratus/internal/user/model"
	userservice "github.com/stratusid/stratus/internal/user/service"
)

const internalLoggerComponentName = "InternalIdentityBackend"

// InternalBackend authenticates end users against the local user store.
type InternalBackend struct {
	UserService userservice.UserServiceInterface
}

// NewInternalBackend creates a new instance of InternalBackend.
func NewInternalBackend() IdentityBackend {
	return &InternalBackend{
		UserService: userservice.GetUserService(),
	}
}

// Authenticate verifies the end user credentials against the local user store.
func (b *InternalBackend) Authenticate(_ context.Context, username, password string) (*usermodel.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, internalLoggerComponentName))

	user, err := b.UserService.VerifyCredentials(username, password)
	if err != nil {
		if errors.Is(err, userservice.ErrInvalidCredentials) {
			return nil, ErrAuthenticationFailed
		}
		logger.Error("Failed to verify user credentials", log.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrAuthenticationFailed
	}

	return user, nil
}

// FetchProfile retrieves the user profile from the local user store.
func (b *InternalBackend) FetchProfile(_ context.Context, userID string) (*usermodel.User, error) {
	user, err := b.UserService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// InitiateRegistration is not supported for the internal backend; users are
// provisioned through the administrative layer.
func (b *InternalBackend) InitiateRegistration(_ context.Context, _ string) error {
	return ErrCapabilityNotSupported
}
