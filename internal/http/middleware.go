package httpapi

import (
	"context"
	"net/http"
	"time"

	"shopd/internal/auth"
	"shopd/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFrom returns the authenticated identity placed by the auth
// middleware.
func PrincipalFrom(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(principalKey).(service.Principal)
	return p, ok
}

// RequestID assigns each request an id, echoes it in X-Request-Id and logs
// the request line on completion.
func RequestID(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Authenticate verifies the bearer token and stores the principal in the
// request context. Missing or invalid tokens end the request with a 401.
func Authenticate(tokens *auth.TokenService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.ExtractFromHeader(r.Header.Get("Authorization"))
		if !ok {
			writeJSON(w, http.StatusUnauthorized, Fail("missing bearer token"))
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, Fail("invalid or expired token"))
			return
		}
		p := service.Principal{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      claims.Role,
			CompanyID: claims.CompanyID,
		}
		next(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	}
}
