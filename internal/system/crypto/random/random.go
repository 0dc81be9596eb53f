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

// Package random provides cryptographically secure random value generation.
package random

import (
	"crypto/rand"
	"encoding/base64"
)

// Minimum entropy for opaque credentials is 128 bits. Token values default
// to 32 bytes (256 bits) so that guessing is infeasible within any token lifetime.
const (
	minSecretBytes     = 16
	defaultSecretBytes = 32
)

// GenerateSecret generates a base64url-encoded random string with the default entropy.
func GenerateSecret() (string, error) {
	return GenerateSecretWithLength(defaultSecretBytes)
}

// GenerateSecretWithLength generates a base64url-encoded random string from the
// given number of random bytes. Lengths below the 128-bit minimum are raised to it.
func GenerateSecretWithLength(numBytes int) (string, error) {
	if numBytes < minSecretBytes {
		numBytes = minSecretBytes
	}

	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
