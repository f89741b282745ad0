// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remotetest

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/internal/platform/sec"
)

type claimsKey struct{}

// authenticate verifies the bearer token when one is present.
//
// # Flow
//  1. No Authorization header: the request proceeds anonymously.
//  2. Malformed header, bad signature, expiry or revocation: 401.
//  3. Otherwise the claims are stored in the request context.
func authenticate(server *Server) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			token, found := strings.CutPrefix(header, constants.BearerPrefix)
			if !found || token == "" {
				writeError(writer, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			server.mu.Lock()
			revoked := server.revoked[token]
			server.mu.Unlock()

			claims, err := server.tokens.VerifyToken(token)
			if err != nil || revoked {
				writeError(writer, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), claimsKey{}, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// requireAuth rejects anonymous requests. Mount after [authenticate].
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if claimsFrom(request) == nil {
			writeError(writer, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func claimsFrom(request *http.Request) *sec.AuthClaims {
	claims, _ := request.Context().Value(claimsKey{}).(*sec.AuthClaims)
	return claims
}

func callerID(request *http.Request) string {
	if claims := claimsFrom(request); claims != nil {
		return claims.UserID
	}
	return ""
}
