package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wavrons/stargate/internal/logger"
	"github.com/wavrons/stargate/internal/utils"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] and stores the caller ("sub" claim) in
// the request context under [utils.CallerCtxKey]. Requests without a valid
// token are rejected with 401 and a JSON error body.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		ctx = context.WithValue(ctx, utils.CallerCtxKey, token.Caller)
		logger.FromContext(ctx).Debug().Str("func", "*Handler.auth").Str("caller", token.Caller).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
