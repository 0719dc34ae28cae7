// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/constants"
)

// Principal identifies the authenticated subject of a request
type Principal struct {
	UID   string
	Email string
	Kind  string
	Role  string
}

// OrganizationAuthMiddleware requires a valid organization session token
// and stores the authenticated principal in the request context.
func OrganizationAuthMiddleware(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return principalMiddleware(tokenManager, auth.SubjectKindOrganization, constants.OrganizationContextID)
}

// OwnerAuthMiddleware requires a valid owner session token and stores the
// authenticated principal in the request context.
func OwnerAuthMiddleware(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return principalMiddleware(tokenManager, auth.SubjectKindOwner, constants.OwnerContextID)
}

func principalMiddleware(tokenManager *auth.TokenManager, kind string, contextKey any) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, "missing or malformed authorization header")
				return
			}

			claims, err := tokenManager.Validate(token)
			if err != nil {
				writeAuthError(w, "invalid or expired session token")
				return
			}
			if claims.Kind != kind {
				writeAuthError(w, "token is not valid for this endpoint")
				return
			}

			principal := &Principal{
				UID:   claims.SubjectUID,
				Email: claims.Email,
				Kind:  claims.Kind,
				Role:  claims.Role,
			}

			ctx := context.WithValue(r.Context(), contextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OrganizationFromContext returns the authenticated organization principal
func OrganizationFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(constants.OrganizationContextID).(*Principal)
	return principal, ok
}

// OwnerFromContext returns the authenticated owner principal
func OwnerFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(constants.OwnerContextID).(*Principal)
	return principal, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(constants.AuthorizationHeader)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
