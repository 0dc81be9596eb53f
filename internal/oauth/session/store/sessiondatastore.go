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

// Package store provides an in-memory store for pending authorization sessions.
package store

import (
	"sync"
	"time"

	"github.com/stratusid/stratus/internal/oauth/session/model"
)

// sessionValidityPeriod bounds how long a pending authorization session may
// wait for end user authentication.
const sessionValidityPeriod = 10 * time.Minute

var (
	instance *SessionDataStore
	once     sync.Once
)

// SessionDataStoreInterface defines the interface for managing pending authorization sessions.
type SessionDataStoreInterface interface {
	AddSession(key string, data model.SessionData)
	// ConsumeSession returns and removes the session stored under the key.
	// Expired or absent sessions return false.
	ConsumeSession(key string) (model.SessionData, bool)
	CleanupExpiredSessions()
}

// SessionDataStore is an in-memory implementation of SessionDataStoreInterface.
type SessionDataStore struct {
	sessions map[string]model.SessionData
	mu       sync.RWMutex
}

// GetSessionDataStore returns a singleton instance of SessionDataStore.
func GetSessionDataStore() SessionDataStoreInterface {
	once.Do(func() {
		instance = &SessionDataStore{
			sessions: make(map[string]model.SessionData),
		}
	})
	return instance
}

// AddSession stores the session data under the given key.
func (s *SessionDataStore) AddSession(key string, data model.SessionData) {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = data
}

// ConsumeSession returns and removes the session stored under the key.
func (s *SessionDataStore) ConsumeSession(key string) (model.SessionData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.sessions[key]
	if !ok {
		return model.SessionData{}, false
	}
	delete(s.sessions, key)

	if time.Since(data.CreatedAt) > sessionValidityPeriod {
		return model.SessionData{}, false
	}
	return data, true
}

// CleanupExpiredSessions removes sessions past their validity period.
func (s *SessionDataStore) CleanupExpiredSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, data := range s.sessions {
		if time.Since(data.CreatedAt) > sessionValidityPeriod {
			delete(s.sessions, key)
		}
	}
}
