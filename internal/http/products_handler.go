package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type ProductsHandler struct {
	base
	repo   repository.ProductsRepository
	access *service.Access
}

func NewProductsHandler(repo repository.ProductsRepository, access *service.Access, logger *zap.Logger, env string) *ProductsHandler {
	return &ProductsHandler{base: base{logger: logger, env: env}, repo: repo, access: access}
}

type productCreateRequest struct {
	StoreID     int64         `json:"store_id"`
	CategoryID  *int64        `json:"category_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       *domain.Money `json:"price"`
	Stock       *int          `json:"stock"`
	Image       string        `json:"image"`
}

func (h *ProductsHandler) Collection(w http.ResponseWriter, r *http.Request) {
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
		categoryID, err := queryID(r, "category_id")
		if err != nil {
			h.badRequest(w, "invalid category_id")
			return
		}
		filters := repository.ProductFilters{
			Search:     strings.TrimSpace(r.URL.Query().Get("search")),
			CategoryID: categoryID,
		}
		products, err := h.repo.List(r.Context(), *storeID, filters)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"products": products}))

	case http.MethodPost:
		var req productCreateRequest
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
		if req.Price == nil {
			errs.add("price is required")
		} else if *req.Price < 0 {
			errs.add("price must not be negative")
		}
		if req.Stock != nil && *req.Stock < 0 {
			errs.add("stock must not be negative")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.access.CanAccessStore(r.Context(), p, req.StoreID); err != nil {
			h.fail(w, r, err)
			return
		}

		product := &domain.Product{
			StoreID:     req.StoreID,
			CategoryID:  req.CategoryID,
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Price:       *req.Price,
			Image:       req.Image,
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}
		id, err := h.repo.Create(r.Context(), product)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		created, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("product created", map[string]any{"product": created}))

	default:
		methodNotAllowed(w)
	}
}

func (h *ProductsHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/products/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("product not found"))
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.access.CanAccessStore(r.Context(), p, product.StoreID); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(map[string]any{"product": product}))

	case http.MethodPut:
		var req struct {
			StoreID     *int64        `json:"store_id"`
			CategoryID  *int64        `json:"category_id"`
			Name        *string       `json:"name"`
			Description *string       `json:"description"`
			Price       *domain.Money `json:"price"`
			Stock       *int          `json:"stock"`
			Image       *string       `json:"image"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			errs.add("name must not be empty")
		}
		if req.Price != nil && *req.Price < 0 {
			errs.add("price must not be negative")
		}
		if req.Stock != nil && *req.Stock < 0 {
			errs.add("stock must not be negative")
		}
		if req.StoreID != nil && *req.StoreID <= 0 {
			errs.add("store_id must be a positive id")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		// Moving a product needs access to the destination store too.
		if req.StoreID != nil && *req.StoreID != product.StoreID {
			if err := h.access.CanAccessStore(r.Context(), p, *req.StoreID); err != nil {
				h.fail(w, r, err)
				return
			}
		}
		upd := repository.ProductUpdate{
			StoreID:     req.StoreID,
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			Image:       req.Image,
		}
		if err := h.repo.Update(r.Context(), id, upd); err != nil {
			h.fail(w, r, err)
			return
		}
		updated, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("product updated", map[string]any{"product": updated}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("product deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
