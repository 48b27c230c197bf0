package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type CustomersHandler struct {
	base
	repo   repository.CustomersRepository
	access *service.Access
}

func NewCustomersHandler(repo repository.CustomersRepository, access *service.Access, logger *zap.Logger, env string) *CustomersHandler {
	return &CustomersHandler{base: base{logger: logger, env: env}, repo: repo, access: access}
}

func (h *CustomersHandler) Collection(w http.ResponseWriter, r *http.Request) {
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
		customers, err := h.repo.List(r.Context(), *storeID, strings.TrimSpace(r.URL.Query().Get("search")))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"customers": customers}))

	case http.MethodPost:
		var req struct {
			StoreID int64  `json:"store_id"`
			Name    string `json:"name"`
			Email   string `json:"email"`
			Phone   string `json:"phone"`
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
		if !validEmail(req.Email) {
			errs.add("a valid email is required")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.access.CanAccessStore(r.Context(), p, req.StoreID); err != nil {
			h.fail(w, r, err)
			return
		}
		customer := &domain.Customer{
			StoreID: req.StoreID,
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:   req.Phone,
		}
		id, err := h.repo.Create(r.Context(), customer)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		created, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("customer created", map[string]any{"customer": created}))

	default:
		methodNotAllowed(w)
	}
}

func (h *CustomersHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/customers/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("customer not found"))
		return
	}

	customer, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.access.CanAccessStore(r.Context(), p, customer.StoreID); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(map[string]any{"customer": customer}))

	case http.MethodPut:
		var req struct {
			Name  *string `json:"name"`
			Email *string `json:"email"`
			Phone *string `json:"phone"`
		}
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
		if err := h.repo.Update(r.Context(), id, repository.CustomerUpdate{Name: req.Name, Email: req.Email, Phone: req.Phone}); err != nil {
			h.fail(w, r, err)
			return
		}
		updated, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("customer updated", map[string]any{"customer": updated}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("customer deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
