package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type CategoriesHandler struct {
	base
	repo   repository.CategoriesRepository
	access *service.Access
}

func NewCategoriesHandler(repo repository.CategoriesRepository, access *service.Access, logger *zap.Logger, env string) *CategoriesHandler {
	return &CategoriesHandler{base: base{logger: logger, env: env}, repo: repo, access: access}
}

func (h *CategoriesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		storeID, err := queryID(r, "store_id")
		if err != nil || storeID == nil {
			h.badRequest(w, "store_id is required")
			return
		}
		if err := h.access.CanAccessStore(r.Context(), p, *storeID); err != nil {
			h.fail(w, r, err)
			return
		}
		categories, err := h.repo.List(r.Context(), *storeID, strings.TrimSpace(r.URL.Query().Get("search")))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"categories": categories}))

	case http.MethodPost:
		var req struct {
			StoreID int64  `json:"store_id"`
			Name    string `json:"name"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.StoreID <= 0 {
			errs.add("store_id is required")
		}
		if strings.TrimSpace(req.Name) == "" {
			errs.add("name is required")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.access.CanAccessStore(r.Context(), p, req.StoreID); err != nil {
			h.fail(w, r, err)
			return
		}
		category := &domain.Category{StoreID: req.StoreID, Name: strings.TrimSpace(req.Name)}
		id, err := h.repo.Create(r.Context(), category)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		created, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("category created", map[string]any{"category": created}))

	default:
		methodNotAllowed(w)
	}
}

func (h *CategoriesHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/categories/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("category not found"))
		return
	}

	category, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.access.CanAccessStore(r.Context(), p, category.StoreID); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(map[string]any{"category": category}))

	case http.MethodPut:
		var req struct {
			StoreID *int64  `json:"store_id"`
			Name    *string `json:"name"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			errs.add("name must not be empty")
		}
		if req.StoreID != nil && *req.StoreID <= 0 {
			errs.add("store_id must be a positive id")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		// Moving a category needs access to the destination store too.
		if req.StoreID != nil && *req.StoreID != category.StoreID {
			if err := h.access.CanAccessStore(r.Context(), p, *req.StoreID); err != nil {
				h.fail(w, r, err)
				return
			}
		}
		if err := h.repo.Update(r.Context(), id, repository.CategoryUpdate{StoreID: req.StoreID, Name: req.Name}); err != nil {
			h.fail(w, r, err)
			return
		}
		updated, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("category updated", map[string]any{"category": updated}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("category deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
