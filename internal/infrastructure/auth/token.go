// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package auth provides JWT session tokens and password hashing for
// organization and owner accounts.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject kinds embedded in token claims. Organization tokens cannot be
// used against owner endpoints and vice versa.
const (
	SubjectKindOrganization = "organization"
	SubjectKindOwner        = "owner"
)

// DefaultTokenExpiry is the default session token lifetime
const DefaultTokenExpiry = 24 * time.Hour

// Claims are the JWT claims carried by a session token
type Claims struct {
	SubjectUID string `json:"subject_uid"`
	Email      string `json:"email"`
	Kind       string `json:"kind"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 session tokens
type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
}

// NewTokenManager creates a new token manager. A zero expiry period uses
// DefaultTokenExpiry.
func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	if expiryPeriod == 0 {
		expiryPeriod = DefaultTokenExpiry
	}
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
	}
}

// Generate issues a signed token for the subject
func (tm *TokenManager) Generate(subjectUID, email, kind, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectUID: subjectUID,
		Email:      email,
		Kind:       kind,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectUID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate parses and verifies a token, returning its claims
func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
