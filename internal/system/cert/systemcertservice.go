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

// Package cert provides access to the server certificate used for TLS and token signing.
package cert

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"path"
	"path/filepath"

	"github.com/stratusid/stratus/internal/system/config"
)

// SystemCertificateServiceInterface defines the interface for server certificate operations.
type SystemCertificateServiceInterface interface {
	GetTLSConfig(cfg *config.Config, stratusHome string) (*tls.Config, error)
	GetCertificate() (*x509.Certificate, error)
	GetCertificateKid() (string, error)
}

// SystemCertificateService is the default implementation of SystemCertificateServiceInterface.
type SystemCertificateService struct{}

// NewSystemCertificateService creates a new instance of SystemCertificateService.
func NewSystemCertificateService() SystemCertificateServiceInterface {
	return &SystemCertificateService{}
}

// GetTLSConfig loads the server certificate and key and returns the TLS configuration.
func (c *SystemCertificateService) GetTLSConfig(cfg *config.Config, stratusHome string) (*tls.Config, error) {
	certFilePath := filepath.Clean(path.Join(stratusHome, cfg.Security.CertFile))
	keyFilePath := filepath.Clean(path.Join(stratusHome, cfg.Security.KeyFile))

	tlsCert, err := tls.LoadX509KeyPair(certFilePath, keyFilePath)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		MinVersion:   tls.VersionTLS12, // Enforce minimum TLS version 1.2
	}, nil
}

// GetCertificate returns the parsed leaf certificate of the server.
func (c *SystemCertificateService) GetCertificate() (*x509.Certificate, error) {
	stratusRuntime := config.GetStratusRuntime()
	tlsConfig, err := c.GetTLSConfig(&stratusRuntime.Config, stratusRuntime.StratusHome)
	if err != nil {
		return nil, err
	}

	if len(tlsConfig.Certificates) == 0 || len(tlsConfig.Certificates[0].Certificate) == 0 {
		return nil, errors.New("no certificate found in TLS config")
	}

	return x509.ParseCertificate(tlsConfig.Certificates[0].Certificate[0])
}

// GetCertificateKid extracts the Key ID (kid) from the server certificate using SHA-256 thumbprint.
func (c *SystemCertificateService) GetCertificateKid() (string, error) {
	parsedCert, err := c.GetCertificate()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write(parsedCert.Raw)
	x5tS256 := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return x5tS256, nil
}
