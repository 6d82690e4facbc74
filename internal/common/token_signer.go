package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload of a session bearer token
type TokenClaims struct {
	PrincipalID string `json:"principal_id"`
	SessionID   string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies HS256 session tokens
type TokenSigner struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenSigner(secretKey []byte, ttl time.Duration) *TokenSigner {
	return &TokenSigner{
		secretKey: secretKey,
		ttl:       ttl,
	}
}

// Sign returns a signed token for the session and its expiry
func (s *TokenSigner) Sign(principalID, sessionID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := TokenClaims{
		PrincipalID: principalID,
		SessionID:   sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Parse verifies signature and expiry and returns the claims
func (s *TokenSigner) Parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.PrincipalID == "" || claims.SessionID == "" {
		return nil, errors.New("missing principal_id or sid claim")
	}

	return claims, nil
}
