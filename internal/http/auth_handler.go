package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/auth"
	"shopd/internal/domain"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type AuthHandler struct {
	base
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService, logger *zap.Logger, env string) *AuthHandler {
	return &AuthHandler{base: base{logger: logger, env: env}, svc: svc}
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID int64  `json:"company_id"`
	Role      string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req registerRequest
	if err := readBodyJSON(r, &req); err != nil {
		h.badRequest(w, "invalid body")
		return
	}

	var errs fieldErrors
	if strings.TrimSpace(req.Name) == "" {
		errs.add("name is required")
	}
	if !validEmail(req.Email) {
		errs.add("a valid email is required")
	}
	if len(req.Password) < auth.MinPasswordLength {
		errs.add("password must be at least 6 characters")
	}
	if req.CompanyID <= 0 {
		errs.add("company_id is required")
	}
	if req.Role != "" && !domain.ValidRole(req.Role) {
		errs.add("role must be one of platform-admin, store-admin, customer")
	}
	if err := errs.err(); err != nil {
		h.fail(w, r, err)
		return
	}

	user, token, err := h.svc.Register(r.Context(), service.RegisterRequest{
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Password:  req.Password,
		CompanyID: req.CompanyID,
		Role:      req.Role,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, OkMessage("user registered", map[string]any{
		"user":  user,
		"token": token,
	}))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginRequest
	if err := readBodyJSON(r, &req); err != nil {
		h.badRequest(w, "invalid body")
		return
	}

	var errs fieldErrors
	if strings.TrimSpace(req.Email) == "" {
		errs.add("email is required")
	}
	if req.Password == "" {
		errs.add("password is required")
	}
	if err := errs.err(); err != nil {
		h.fail(w, r, err)
		return
	}

	user, token, err := h.svc.Login(r.Context(), service.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMessage("login successful", map[string]any{
		"user":  user,
		"token": token,
	}))
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := h.svc.Profile(r.Context(), p.UserID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"user": user}))

	case http.MethodPut:
		var req updateProfileRequest
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			errs.add("name must not be empty")
		}
		if req.Email != nil && !validEmail(*req.Email) {
			errs.add("a valid email is required")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		user, err := h.svc.UpdateProfile(r.Context(), p.UserID, service.UpdateProfileRequest{
			Name:  req.Name,
			Email: req.Email,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("profile updated", map[string]any{"user": user}))

	default:
		methodNotAllowed(w)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	var req changePasswordRequest
	if err := readBodyJSON(r, &req); err != nil {
		h.badRequest(w, "invalid body")
		return
	}
	var errs fieldErrors
	if req.CurrentPassword == "" {
		errs.add("currentPassword is required")
	}
	if len(req.NewPassword) < auth.MinPasswordLength {
		errs.add("newPassword must be at least 6 characters")
	}
	if err := errs.err(); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), p.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OkMessage("password changed", nil))
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	return r.RemoteAddr
}
