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

// Package introspect provides functionality for the OAuth2 token introspection endpoint
package introspect

import (
	"crypto/x509"
	"errors"
	"strings"
	"time"

	appservice "github.com/stratusid/stratus/internal/application/service"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/config"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/jwt"
	"github.com/stratusid/stratus/internal/system/log"
)

const loggerComponentName = "TokenIntrospectionService"

// TokenIntrospectionServiceInterface defines the interface for OAuth 2.0 token introspection.
type TokenIntrospectionServiceInterface interface {
	IntrospectToken(token, tokenTypeHint string) (*IntrospectResponse, error)
	// BuildSignedResponse encodes an introspection response as a signed JWT.
	// Active responses are signed with the client's own key so the original
	// client's keypair can verify them; inactive responses are signed with the
	// server's shared introspection secret.
	BuildSignedResponse(response *IntrospectResponse) (string, error)
}

// TokenIntrospectionService implements the TokenIntrospectionServiceInterface.
type TokenIntrospectionService struct {
	JWTService         jwt.JWTServiceInterface
	TokenStore         store.TokenStoreInterface
	ApplicationService appservice.ApplicationServiceInterface
}

// NewTokenIntrospectionService creates a new TokenIntrospectionService instance.
func NewTokenIntrospectionService() TokenIntrospectionServiceInterface {
	return &TokenIntrospectionService{
		JWTService:         jwt.GetJWTService(),
		TokenStore:         store.NewTokenStore(),
		ApplicationService: appservice.GetApplicationService(),
	}
}

// IntrospectToken validates and introspects the token. It only returns an error if a server error occurs.
// All other failures are treated as inactive token as defined in the RFC 7662.
func (s *TokenIntrospectionService) IntrospectToken(token, tokenTypeHint string) (*IntrospectResponse, error) {
	if token == "" {
		return nil, errors.New("token is required")
	}

	if isJWTToken(token) {
		return s.introspectJWT(token)
	}
	return s.introspectOpaque(token, tokenTypeHint)
}

// introspectOpaque introspects an opaque token by looking it up in the token store.
func (s *TokenIntrospectionService) introspectOpaque(token, tokenTypeHint string) (
	*IntrospectResponse, error) {
	tokenHash := hash.HashString(token)

	kinds := []string{store.TokenKindAccess, store.TokenKindRefresh}
	if tokenTypeHint == constants.RefreshToken {
		kinds = []string{store.TokenKindRefresh, store.TokenKindAccess}
	}

	var record store.TokenRecord
	found := false
	for _, kind := range kinds {
		r, err := s.TokenStore.GetToken(tokenHash, kind)
		if err != nil {
			if errors.Is(err, store.ErrTokenNotFound) {
				continue
			}
			return nil, err
		}
		record = r
		found = true
		break
	}
	if !found {
		return &IntrospectResponse{Active: false}, nil
	}

	if !record.IsActive(time.Now()) {
		return &IntrospectResponse{Active: false}, nil
	}

	return &IntrospectResponse{
		Active:    true,
		Scope:     record.Scopes,
		ClientID:  record.ClientID,
		Username:  record.Subject,
		TokenType: constants.TokenTypeBearer,
		Exp:       record.ExpiryTime.Unix(),
		Iat:       record.TimeCreated.Unix(),
		Nbf:       record.TimeCreated.Unix(),
		Sub:       record.Subject,
		Aud:       record.ClientID,
		Iss:       jwt.GetJWTTokenIssuer(),
		Jti:       record.TokenID,
	}, nil
}

// introspectJWT introspects a self-contained JWT token. The signature is the
// authority; the store is consulted only for revocation.
func (s *TokenIntrospectionService) introspectJWT(token string) (*IntrospectResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	payload, err := jwt.DecodeJWTPayload(token)
	if err != nil {
		logger.Debug("Failed to decode JWT payload", log.Error(err))
		return &IntrospectResponse{Active: false}, nil
	}

	if valid, err := s.verifyTokenSignature(token, payload); err != nil {
		return nil, err
	} else if !valid {
		return &IntrospectResponse{Active: false}, nil
	}

	if !isValidByClaims(payload) {
		return &IntrospectResponse{Active: false}, nil
	}

	// Issued JWTs are tracked by their jti, so revocation is visible here.
	jti, _ := payload["jti"].(string)
	if jti == "" {
		return &IntrospectResponse{Active: false}, nil
	}
	record, err := s.TokenStore.GetToken(jti, store.TokenKindAccess)
	if err != nil {
		if !errors.Is(err, store.ErrTokenNotFound) {
			return nil, err
		}
		return &IntrospectResponse{Active: false}, nil
	}
	if record.State == store.TokenStateRevoked {
		return &IntrospectResponse{Active: false}, nil
	}

	return prepareJWTResponse(payload), nil
}

// verifyTokenSignature verifies the RS512 signature of a JWT token against the
// server key, falling back to the client's registered signing certificate.
func (s *TokenIntrospectionService) verifyTokenSignature(token string,
	payload map[string]interface{}) (bool, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	pubKey := s.JWTService.GetPublicKey()
	if pubKey != nil && s.JWTService.VerifyJWTSignature(token, pubKey) == nil {
		return true, nil
	}

	clientID, _ := payload["aud"].(string)
	if clientID == "" {
		return false, nil
	}
	oauthApp, svcErr := s.ApplicationService.GetOAuthApplication(clientID)
	if svcErr != nil || oauthApp == nil || oauthApp.SigningCertificate == "" {
		return false, nil
	}

	clientKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(oauthApp.SigningCertificate))
	if err != nil {
		logger.Debug("Failed to parse client signing certificate", log.Error(err))
		return false, nil
	}
	if err := s.JWTService.VerifyJWTSignature(token, clientKey); err != nil {
		logger.Debug("Failed to verify token signature", log.Error(err))
		return false, nil
	}

	return true, nil
}

// BuildSignedResponse encodes the introspection response as a signed JWT.
func (s *TokenIntrospectionService) BuildSignedResponse(response *IntrospectResponse) (string, error) {
	validityPeriod := jwt.GetJWTTokenValidityPeriod()
	claims := response.toClaims()

	if !response.Active {
		secret := config.GetStratusRuntime().Config.OAuth.Introspection.SigningSecret
		if secret == "" {
			return "", errors.New("introspection signing secret is not configured")
		}
		signed, _, err := s.JWTService.GenerateHS512JWT("", "", validityPeriod, claims, []byte(secret))
		return signed, err
	}

	oauthApp, svcErr := s.ApplicationService.GetOAuthApplication(response.ClientID)
	if svcErr != nil || oauthApp == nil {
		return "", errors.New("failed to resolve client for signed introspection response")
	}

	if oauthApp.SigningKey != "" {
		privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(oauthApp.SigningKey))
		if err != nil {
			return "", errors.New("failed to parse client signing key")
		}
		publicKeyDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
		if err != nil {
			return "", err
		}
		signed, _, err := s.JWTService.GenerateJWTWithKey(response.Sub, response.ClientID,
			validityPeriod, claims, privateKey, hash.Hash(publicKeyDER))
		return signed, err
	}

	signed, _, err := s.JWTService.GenerateJWT(response.Sub, response.ClientID, validityPeriod, claims)
	return signed, err
}

// isJWTToken reports whether the token value is structured as a JWT.
func isJWTToken(token string) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}
	_, err := jwt.DecodeJWTHeader(token)
	return err == nil
}

// isValidByClaims checks if the token is valid based on its claims.
func isValidByClaims(payload map[string]interface{}) bool {
	exp, ok := payload["exp"].(float64)
	if !ok {
		return false
	}
	if int64(exp) < time.Now().Unix() {
		return false
	}

	nbf, ok := payload["nbf"].(float64)
	if !ok {
		return false
	}
	if int64(nbf) > time.Now().Unix() {
		return false
	}

	return true
}

// prepareJWTResponse prepares the response for a valid JWT introspection.
func prepareJWTResponse(payload map[string]interface{}) *IntrospectResponse {
	response := &IntrospectResponse{
		Active:    true,
		TokenType: constants.TokenTypeBearer,
	}

	if scope, ok := payload["scope"].(string); ok {
		response.Scope = scope
	}
	if aud, ok := payload["aud"].(string); ok {
		response.Aud = aud
		response.ClientID = aud
	}
	if sub, ok := payload["sub"].(string); ok {
		response.Sub = sub
		response.Username = sub
	}
	if iss, ok := payload["iss"].(string); ok {
		response.Iss = iss
	}
	if jti, ok := payload["jti"].(string); ok {
		response.Jti = jti
	}

	if exp, ok := payload["exp"].(float64); ok {
		response.Exp = int64(exp)
	}
	if iat, ok := payload["iat"].(float64); ok {
		response.Iat = int64(iat)
	}
	if nbf, ok := payload["nbf"].(float64); ok {
		response.Nbf = int64(nbf)
	}

	return response
}
