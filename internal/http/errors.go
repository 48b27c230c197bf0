package httpapi

import (
	"errors"
	"net/http"

	"shopd/internal/auth"
	"shopd/internal/domain"

	"go.uber.org/zap"
)

// base carries what every handler needs to render failures consistently.
type base struct {
	logger *zap.Logger
	env    string
}

// fail maps a service error onto the envelope and status code. Unexpected
// errors become a 500 whose detail is hidden in production.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, FailWith("validation failed", verr.Fields))
	case errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrPasswordMismatch):
		writeJSON(w, http.StatusUnauthorized, Fail(err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, Fail("forbidden"))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
	default:
		b.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg := "internal server error"
		if b.env != "production" {
			msg = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, Fail(msg))
	}
}

func (b *base) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, Fail(message))
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, Fail("method not allowed"))
}

// fieldErrors accumulates validation messages so a response reports every
// problem at once.
type fieldErrors []string

func (f *fieldErrors) add(msg string) { *f = append(*f, msg) }

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return domain.NewValidationError(f...)
}
