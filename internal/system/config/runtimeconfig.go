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

package config

import "sync"

// StratusRuntime holds the runtime configuration for the Stratus server.
type StratusRuntime struct {
	StratusHome string `yaml:"stratus_home"`
	Config      Config `yaml:"config"`
}

var (
	runtimeConfig *StratusRuntime
	once          sync.Once
)

// InitializeStratusRuntime initializes the StratusRuntime configuration.
func InitializeStratusRuntime(stratusHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &StratusRuntime{
			StratusHome: stratusHome,
			Config:      *config,
		}
	})

	return nil
}

// GetStratusRuntime returns the StratusRuntime configuration.
func GetStratusRuntime() *StratusRuntime {
	if runtimeConfig == nil {
		panic("StratusRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetStratusRuntime resets the StratusRuntime.
// This should only be used in tests to reset the singleton state.
func ResetStratusRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
