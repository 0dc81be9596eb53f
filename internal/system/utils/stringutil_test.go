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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStringArray(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected []string
	}{
		{"Empty", "", []string{}},
		{"Whitespace", "   ", []string{}},
		{"Single", "read", []string{"read"}},
		{"Multiple", "read,write", []string{"read", "write"}},
		{"TrimsSpaces", " read , write ", []string{"read", "write"}},
		{"SkipsEmptyParts", "read,,write,", []string{"read", "write"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseStringArray(tc.value))
		})
	}
}

func TestJoinStringArray(t *testing.T) {
	assert.Equal(t, "", JoinStringArray(nil))
	assert.Equal(t, "read", JoinStringArray([]string{"read"}))
	assert.Equal(t, "read,write", JoinStringArray([]string{"read", "write"}))
}

func TestJoinParseRoundTrip(t *testing.T) {
	values := []string{"https://localhost:3000/cb", "https://localhost:3000/alt"}
	assert.Equal(t, values, ParseStringArray(JoinStringArray(values)))
}

func TestParseScopeString(t *testing.T) {
	assert.Equal(t, []string{}, ParseScopeString(""))
	assert.Equal(t, []string{"openid", "profile"}, ParseScopeString("openid profile"))
	assert.Equal(t, []string{"read"}, ParseScopeString("  read  "))
}
