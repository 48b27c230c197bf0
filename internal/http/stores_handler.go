package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type StoresHandler struct {
	base
	repo   repository.StoresRepository
	access *service.Access
}

func NewStoresHandler(repo repository.StoresRepository, access *service.Access, logger *zap.Logger, env string) *StoresHandler {
	return &StoresHandler{base: base{logger: logger, env: env}, repo: repo, access: access}
}

// Collection serves /stores.
func (h *StoresHandler) Collection(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		filters := repository.StoreFilters{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
		if p.Role != domain.RolePlatformAdmin {
			filters.CompanyID = p.CompanyID
		} else if cid, err := queryID(r, "company_id"); err != nil {
			h.badRequest(w, "invalid company_id")
			return
		} else if cid != nil {
			filters.CompanyID = *cid
		}
		stores, err := h.repo.List(r.Context(), filters)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"stores": stores}))

	case http.MethodPost:
		var req struct {
			Name      string `json:"name"`
			Domain    string `json:"domain"`
			Theme     string `json:"theme"`
			CompanyID int64  `json:"company_id"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if strings.TrimSpace(req.Name) == "" {
			errs.add("name is required")
		}
		if strings.TrimSpace(req.Domain) == "" {
			errs.add("domain is required")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}

		// Non-platform admins always create within their own company.
		companyID := p.CompanyID
		if p.Role == domain.RolePlatformAdmin && req.CompanyID > 0 {
			companyID = req.CompanyID
		}
		store := &domain.Store{
			CompanyID: companyID,
			Name:      strings.TrimSpace(req.Name),
			Domain:    strings.TrimSpace(req.Domain),
			Theme:     req.Theme,
		}
		id, err := h.repo.Create(r.Context(), store)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		created, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("store created", map[string]any{"store": created}))

	default:
		methodNotAllowed(w)
	}
}

// Item serves /stores/{id}.
func (h *StoresHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/stores/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("store not found"))
		return
	}

	store, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.access.CanAccessStore(r.Context(), p, id); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(map[string]any{"store": store}))

	case http.MethodPut:
		var req struct {
			Name   *string `json:"name"`
			Domain *string `json:"domain"`
			Theme  *string `json:"theme"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			errs.add("name must not be empty")
		}
		if req.Domain != nil && strings.TrimSpace(*req.Domain) == "" {
			errs.add("domain must not be empty")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		upd := repository.StoreUpdate{Name: req.Name, Domain: req.Domain, Theme: req.Theme}
		if err := h.repo.Update(r.Context(), id, upd); err != nil {
			h.fail(w, r, err)
			return
		}
		h.access.InvalidateStore(r.Context(), id)
		updated, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("store updated", map[string]any{"store": updated}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		h.access.InvalidateStore(r.Context(), id)
		writeJSON(w, http.StatusOK, OkMessage("store deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
