// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides bearer token inspection and credential primitives.
//
// # Architecture
//
// The client never verifies the remote API's signatures: it has no key. It
// only reads the registered claims of a JWT bearer token so that an expired
// session can be discarded before a network round trip. Tokens that are not
// JWTs are treated as opaque and always sent to the server for judgement.
//
// [TokenService] signs and verifies HS256 tokens; it backs the in-process
// fake of the remote API.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a bearer token.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID mirrors the identifier the remote API places in its tokens.
	UserID string `json:"id,omitempty"`
}

// TokenInfo describes what could be read from a bearer token without a key.
type TokenInfo struct {
	// IsJWT reports whether the token parsed as a JWT at all.
	IsJWT bool
	// UserID is the "id" claim, falling back to "sub".
	UserID string
	// ExpiresAt is the "exp" claim, or the zero time when absent.
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is not after now.
func (info TokenInfo) Expired(now time.Time) bool {
	return info.IsJWT && !info.ExpiresAt.IsZero() && !info.ExpiresAt.After(now)
}

// InspectToken reads the claims of a bearer token without verifying it.
func InspectToken(token string) TokenInfo {
	claims := &AuthClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{IsJWT: true, UserID: claims.UserID}
	if info.UserID == "" {
		info.UserID = claims.Subject
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}

// TokenService handles generation and verification of HS256 tokens.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with secret.
func NewTokenService(secret []byte, issuer string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: signing secret must be at least 16 bytes")
	}
	return &TokenService{secret: secret, issuer: issuer}, nil
}

// GenerateAccessToken creates a new signed token for a user.
func (service *TokenService) GenerateAccessToken(userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	return claims, nil
}
