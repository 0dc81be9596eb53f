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

// Package issuer provides token issuance for the OAuth2 grant handlers.
package issuer

import (
	"crypto/rsa"
	"fmt"
	"strings"
	"time"

	appconstants "github.com/stratusid/stratus/internal/application/constants"
	appmodel "github.com/stratusid/stratus/internal/application/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/constants"
	"github.com/stratusid/stratus/internal/oauth/oauth2/model"
	"github.com/stratusid/stratus/internal/oauth/oauth2/store"
	"github.com/stratusid/stratus/internal/system/config"
	"github.com/stratusid/stratus/internal/system/crypto/hash"
	"github.com/stratusid/stratus/internal/system/crypto/random"
	"github.com/stratusid/stratus/internal/system/jwt"
	"github.com/stratusid/stratus/internal/system/log"
	"github.com/stratusid/stratus/internal/system/utils"
)

const loggerComponentName = "TokenIssuer"

const defaultRefreshTokenValidity = 86400 // default validity period of 1 day

// TokenIssuerInterface defines the interface for issuing tokens.
type TokenIssuerInterface interface {
	// IssueAccessToken mints an access token for the client, formatted per
	// the client's token type, and persists it for revocation bookkeeping.
	IssueAccessToken(oauthApp *appmodel.OAuthApplication, subject string, scopes []string) (
		*model.TokenDTO, error)
	// IssueRefreshToken mints an opaque refresh token and persists it.
	// rotatedFrom carries the token id of the refresh token it replaces.
	IssueRefreshToken(oauthApp *appmodel.OAuthApplication, subject string, scopes []string,
		rotatedFrom string) (*model.TokenDTO, error)
	// IssueIDToken mints a signed OIDC ID token for the authenticated user.
	IssueIDToken(oauthApp *appmodel.OAuthApplication, subject string,
		claims map[string]interface{}) (string, error)
}

// TokenIssuer is the default implementation of TokenIssuerInterface.
type TokenIssuer struct {
	JWTService jwt.JWTServiceInterface
	TokenStore store.TokenStoreInterface
}

// NewTokenIssuer creates a new instance of TokenIssuer.
func NewTokenIssuer() TokenIssuerInterface {
	return &TokenIssuer{
		JWTService: jwt.GetJWTService(),
		TokenStore: store.NewTokenStore(),
	}
}

// IssueAccessToken mints and persists an access token for the client.
func (ti *TokenIssuer) IssueAccessToken(oauthApp *appmodel.OAuthApplication, subject string,
	scopes []string) (*model.TokenDTO, error) {
	validityPeriod := oauthApp.AccessTokenValidity
	if validityPeriod == 0 {
		validityPeriod = jwt.GetJWTTokenValidityPeriod()
	}

	var token string
	var tokenHash string
	var issuedAt int64
	var err error

	if oauthApp.TokenType == appconstants.TokenTypeJWT {
		token, tokenHash, issuedAt, err = ti.generateJWTAccessToken(oauthApp, subject, scopes, validityPeriod)
	} else {
		token, err = random.GenerateSecret()
		tokenHash = hash.HashString(token)
		issuedAt = time.Now().Unix()
	}
	if err != nil {
		return nil, err
	}

	record := store.TokenRecord{
		TokenID:     utils.GenerateUUID(),
		TokenHash:   tokenHash,
		TokenKind:   store.TokenKindAccess,
		ClientID:    oauthApp.ClientID,
		Subject:     subject,
		Scopes:      strings.Join(scopes, " "),
		TimeCreated: time.Unix(issuedAt, 0),
		ExpiryTime:  time.Unix(issuedAt, 0).Add(time.Duration(validityPeriod) * time.Second),
		State:       store.TokenStateActive,
	}
	if err := ti.TokenStore.InsertToken(record); err != nil {
		return nil, fmt.Errorf("failed to persist access token: %w", err)
	}

	return &model.TokenDTO{
		Token:     token,
		TokenType: constants.TokenTypeBearer,
		IssuedAt:  issuedAt,
		ExpiresIn: validityPeriod,
		Scopes:    scopes,
		ClientID:  oauthApp.ClientID,
		Subject:   subject,
	}, nil
}

// IssueRefreshToken mints and persists an opaque refresh token.
func (ti *TokenIssuer) IssueRefreshToken(oauthApp *appmodel.OAuthApplication, subject string,
	scopes []string, rotatedFrom string) (*model.TokenDTO, error) {
	validityPeriod := oauthApp.RefreshTokenValidity
	if validityPeriod == 0 {
		validityPeriod = config.GetStratusRuntime().Config.OAuth.RefreshToken.ValidityPeriod
	}
	if validityPeriod == 0 {
		validityPeriod = defaultRefreshTokenValidity
	}

	token, err := random.GenerateSecret()
	if err != nil {
		return nil, err
	}
	issuedAt := time.Now().Unix()

	record := store.TokenRecord{
		TokenID:     utils.GenerateUUID(),
		TokenHash:   hash.HashString(token),
		TokenKind:   store.TokenKindRefresh,
		ClientID:    oauthApp.ClientID,
		Subject:     subject,
		Scopes:      strings.Join(scopes, " "),
		TimeCreated: time.Unix(issuedAt, 0),
		ExpiryTime:  time.Unix(issuedAt, 0).Add(time.Duration(validityPeriod) * time.Second),
		State:       store.TokenStateActive,
		RotatedFrom: rotatedFrom,
	}
	if err := ti.TokenStore.InsertToken(record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &model.TokenDTO{
		Token:     token,
		TokenType: constants.TokenTypeBearer,
		IssuedAt:  issuedAt,
		ExpiresIn: validityPeriod,
		Scopes:    scopes,
		ClientID:  oauthApp.ClientID,
		Subject:   subject,
	}, nil
}

// IssueIDToken mints a signed OIDC ID token for the authenticated user.
func (ti *TokenIssuer) IssueIDToken(oauthApp *appmodel.OAuthApplication, subject string,
	claims map[string]interface{}) (string, error) {
	if !oauthApp.OIDCEnabled {
		return "", fmt.Errorf("client is not OIDC enabled")
	}

	validityPeriod := oauthApp.AccessTokenValidity
	if validityPeriod == 0 {
		validityPeriod = jwt.GetJWTTokenValidityPeriod()
	}

	token, _, err := ti.signJWT(oauthApp, subject, claims, validityPeriod)
	if err != nil {
		return "", fmt.Errorf("failed to generate id token: %w", err)
	}
	return token, nil
}

// generateJWTAccessToken mints a signed JWT access token and returns the
// token, its jti used for revocation bookkeeping, and the issue time.
func (ti *TokenIssuer) generateJWTAccessToken(oauthApp *appmodel.OAuthApplication, subject string,
	scopes []string, validityPeriod int64) (string, string, int64, error) {
	claims := make(map[string]interface{})
	if len(scopes) > 0 {
		claims["scope"] = strings.Join(scopes, " ")
	}

	token, issuedAt, err := ti.signJWT(oauthApp, subject, claims, validityPeriod)
	if err != nil {
		return "", "", 0, err
	}

	payload, err := jwt.DecodeJWTPayload(token)
	if err != nil {
		return "", "", 0, err
	}
	jti, _ := payload["jti"].(string)
	if jti == "" {
		return "", "", 0, fmt.Errorf("generated token is missing the jti claim")
	}

	return token, jti, issuedAt, nil
}

// signJWT signs a JWT with the client's own signing key when one is
// registered, falling back to the server signing key. The algorithm is fixed
// per key type and never taken from the request.
func (ti *TokenIssuer) signJWT(oauthApp *appmodel.OAuthApplication, subject string,
	claims map[string]interface{}, validityPeriod int64) (string, int64, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if oauthApp.SigningKey != "" {
		privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(oauthApp.SigningKey))
		if err != nil {
			logger.Error("Failed to parse the client signing key",
				log.String(log.LoggerKeyClientID, oauthApp.ClientID))
			return "", 0, fmt.Errorf("failed to parse client signing key")
		}
		kid, err := clientSigningKid(oauthApp, privateKey)
		if err != nil {
			return "", 0, err
		}
		return ti.JWTService.GenerateJWTWithKey(subject, oauthApp.ClientID, validityPeriod, claims,
			privateKey, kid)
	}

	return ti.JWTService.GenerateJWT(subject, oauthApp.ClientID, validityPeriod, claims)
}

// clientSigningKid derives the kid for a client signing key from its public key hash.
func clientSigningKid(oauthApp *appmodel.OAuthApplication, privateKey *rsa.PrivateKey) (string, error) {
	publicKeyDER, err := publicKeyBytes(&privateKey.PublicKey)
	if err != nil {
		return "", err
	}
	return hash.Hash(publicKeyDER), nil
}
