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

// Package server provides server wide operations and utilities for request handling.
package server

import (
	"net/http"
)

// Cors holds the CORS options applied to a wrapped handler.
type Cors struct {
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials bool
}

// RequestWrapOptions holds the options applied when wrapping a handler function.
type RequestWrapOptions struct {
	Cors *Cors
}

// ServerOperationServiceInterface defines the interface for server operations.
type ServerOperationServiceInterface interface {
	WrapHandleFunction(mux *http.ServeMux, pattern string, opts *RequestWrapOptions,
		handler func(http.ResponseWriter, *http.Request))
}

// ServerOperationService is the default implementation of ServerOperationServiceInterface.
type ServerOperationService struct{}

// NewServerOperationService creates a new instance of ServerOperationService.
func NewServerOperationService() ServerOperationServiceInterface {
	return &ServerOperationService{}
}

// WrapHandleFunction registers the handler function on the multiplexer with the
// configured CORS headers applied to each response.
func (s *ServerOperationService) WrapHandleFunction(mux *http.ServeMux, pattern string,
	opts *RequestWrapOptions, handler func(http.ResponseWriter, *http.Request)) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		applyCorsHeaders(w, r, opts)
		handler(w, r)
	})
}

// applyCorsHeaders sets the CORS headers on the response based on the wrap options.
func applyCorsHeaders(w http.ResponseWriter, r *http.Request, opts *RequestWrapOptions) {
	if opts == nil || opts.Cors == nil {
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", origin)
	if opts.Cors.AllowedMethods != "" {
		w.Header().Set("Access-Control-Allow-Methods", opts.Cors.AllowedMethods)
	}
	if opts.Cors.AllowedHeaders != "" {
		w.Header().Set("Access-Control-Allow-Headers", opts.Cors.AllowedHeaders)
	}
	if opts.Cors.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}
