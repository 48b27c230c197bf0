package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/domain"
	"shopd/internal/repository"

	"go.uber.org/zap"
)

// RolesHandler manages the role lookup table. Reference data, so writes are
// restricted to platform admins.
type RolesHandler struct {
	base
	repo repository.RolesRepository
}

func NewRolesHandler(repo repository.RolesRepository, logger *zap.Logger, env string) *RolesHandler {
	return &RolesHandler{base: base{logger: logger, env: env}, repo: repo}
}

func (h *RolesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		roles, err := h.repo.List(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"roles": roles}))

	case http.MethodPost:
		if p.Role != domain.RolePlatformAdmin {
			h.fail(w, r, domain.ErrForbidden)
			return
		}
		var req struct {
			Value string `json:"value"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		value := strings.TrimSpace(req.Value)
		if value == "" {
			h.fail(w, r, domain.NewValidationError("value is required"))
			return
		}
		role, err := h.repo.Create(r.Context(), value)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("role created", map[string]any{"role": role}))

	default:
		methodNotAllowed(w)
	}
}

func (h *RolesHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/roles/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("role not found"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		role, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"role": role}))

	case http.MethodPut:
		if p.Role != domain.RolePlatformAdmin {
			h.fail(w, r, domain.ErrForbidden)
			return
		}
		var req struct {
			Value string `json:"value"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		value := strings.TrimSpace(req.Value)
		if value == "" {
			h.fail(w, r, domain.NewValidationError("value is required"))
			return
		}
		if err := h.repo.Update(r.Context(), id, value); err != nil {
			h.fail(w, r, err)
			return
		}
		role, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("role updated", map[string]any{"role": role}))

	case http.MethodDelete:
		if p.Role != domain.RolePlatformAdmin {
			h.fail(w, r, domain.ErrForbidden)
			return
		}
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("role deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
