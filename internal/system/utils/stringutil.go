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

package utils

import "strings"

// ParseStringArray splits a comma separated string into a slice of trimmed strings.
func ParseStringArray(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// JoinStringArray joins a slice of strings into a comma separated string.
func JoinStringArray(values []string) string {
	return strings.Join(values, ",")
}

// ParseScopeString splits a space separated OAuth scope string into a slice.
// Scope names are case-sensitive, space-free tokens per RFC 6749.
func ParseScopeString(scope string) []string {
	trimmed := strings.TrimSpace(scope)
	if trimmed == "" {
		return []string{}
	}
	return strings.Fields(trimmed)
}
