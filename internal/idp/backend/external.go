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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	httpservice "github.com/stratusid/stratus/internal/system/http"
	"github.com/stratusid/stratus/internal/system/log"
	usermodel "github.com/stratusid/stratus/internal/user/model"
)

const externalLoggerComponentName = "ExternalIdentityBackend"

// externalRequestTimeout bounds calls to the remote identity API so that a
// slow backend surfaces as an error rather than a hanging grant request.
const externalRequestTimeout = 10 * time.Second

// ExternalBackend authenticates end users against a remote identity API.
type ExternalBackend struct {
	AuthEndpoint         string
	ProfileEndpoint      string
	RegistrationEndpoint string
	HTTPClient           httpservice.HTTPClientInterface
}

// NewExternalBackend creates a new instance of ExternalBackend with the given endpoints.
func NewExternalBackend(authEndpoint, profileEndpoint, registrationEndpoint string) IdentityBackend {
	return &ExternalBackend{
		AuthEndpoint:         authEndpoint,
		ProfileEndpoint:      profileEndpoint,
		RegistrationEndpoint: registrationEndpoint,
		HTTPClient:           httpservice.NewHTTPClientWithTimeout(externalRequestTimeout),
	}
}

// externalUser is the wire representation of a user returned by the remote identity API.
type externalUser struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// Authenticate verifies the end user credentials against the remote identity API.
func (b *ExternalBackend) Authenticate(ctx context.Context, username, password string) (*usermodel.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, externalLoggerComponentName))

	if b.AuthEndpoint == "" {
		return nil, errors.New("authentication endpoint is not configured")
	}

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.AuthEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		logger.Error("Failed to call the external authentication endpoint", log.Error(err))
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrAuthenticationFailed
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from authentication endpoint: %d", resp.StatusCode)
	}

	return decodeExternalUser(resp.Body)
}

// FetchProfile retrieves the user profile from the remote identity API.
func (b *ExternalBackend) FetchProfile(ctx context.Context, userID string) (*usermodel.User, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, externalLoggerComponentName))

	if b.ProfileEndpoint == "" {
		return nil, ErrCapabilityNotSupported
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.ProfileEndpoint+"/"+userID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		logger.Error("Failed to call the external profile endpoint", log.Error(err))
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from profile endpoint: %d", resp.StatusCode)
	}

	return decodeExternalUser(resp.Body)
}

// InitiateRegistration starts a registration flow for a new end user at the remote identity API.
func (b *ExternalBackend) InitiateRegistration(ctx context.Context, username string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, externalLoggerComponentName))

	if b.RegistrationEndpoint == "" {
		return ErrCapabilityNotSupported
	}

	body, err := json.Marshal(map[string]string{"username": username})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.RegistrationEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		logger.Error("Failed to call the external registration endpoint", log.Error(err))
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated &&
		resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status code from registration endpoint: %d", resp.StatusCode)
	}

	return nil
}

// decodeExternalUser decodes a user object from a remote identity API response.
func decodeExternalUser(body io.Reader) (*usermodel.User, error) {
	var extUser externalUser
	if err := json.NewDecoder(body).Decode(&extUser); err != nil {
		return nil, fmt.Errorf("failed to decode user from response: %w", err)
	}
	if extUser.ID == "" {
		return nil, errors.New("user id missing in response")
	}

	return &usermodel.User{
		ID:         extUser.ID,
		Username:   extUser.Username,
		Attributes: extUser.Attributes,
	}, nil
}
