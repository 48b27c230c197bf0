package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type OrdersHandler struct {
	base
	repo   repository.OrdersRepository
	svc    service.OrderService
	access *service.Access
}

func NewOrdersHandler(repo repository.OrdersRepository, svc service.OrderService, access *service.Access, logger *zap.Logger, env string) *OrdersHandler {
	return &OrdersHandler{base: base{logger: logger, env: env}, repo: repo, svc: svc, access: access}
}

func orderFiltersFromQuery(r *http.Request) (repository.OrderFilters, error) {
	filters := repository.OrderFilters{
		Status:        strings.TrimSpace(r.URL.Query().Get("status")),
		PaymentStatus: strings.TrimSpace(r.URL.Query().Get("payment_status")),
	}
	customerID, err := queryID(r, "customer_id")
	if err != nil {
		return filters, fmt.Errorf("invalid customer_id")
	}
	filters.CustomerID = customerID
	return filters, nil
}

func (h *OrdersHandler) Collection(w http.ResponseWriter, r *http.Request) {
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
		filters, err := orderFiltersFromQuery(r)
		if err != nil {
			h.badRequest(w, err.Error())
			return
		}
		orders, err := h.repo.List(r.Context(), *storeID, filters)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"orders": orders}))

	case http.MethodPost:
		var req struct {
			StoreID       int64  `json:"store_id"`
			CustomerID    *int64 `json:"customer_id"`
			Status        string `json:"status"`
			PaymentStatus string `json:"payment_status"`
			Items         []struct {
				ProductID int64 `json:"product_id"`
				Quantity  int   `json:"quantity"`
			} `json:"items"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		if req.StoreID <= 0 {
			h.fail(w, r, domain.NewValidationError("store_id is required"))
			return
		}
		if err := h.access.CanAccessStore(r.Context(), p, req.StoreID); err != nil {
			h.fail(w, r, err)
			return
		}

		items := make([]service.CreateOrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, service.CreateOrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		order, err := h.svc.Create(r.Context(), service.CreateOrderRequest{
			StoreID:       req.StoreID,
			CustomerID:    req.CustomerID,
			Status:        req.Status,
			PaymentStatus: req.PaymentStatus,
			Items:         items,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("order created", map[string]any{"order": order}))

	default:
		methodNotAllowed(w)
	}
}

// Export serves GET /orders/export: the store's order book as a workbook.
func (h *OrdersHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	storeID, err := queryID(r, "store_id")
	if err != nil || storeID == nil {
		h.badRequest(w, "store_id is required")
		return
	}
	if err := h.access.CanAccessStore(r.Context(), p, *storeID); err != nil {
		h.fail(w, r, err)
		return
	}
	filters, err := orderFiltersFromQuery(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	f, err := h.svc.Export(r.Context(), *storeID, filters)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filename := fmt.Sprintf("orders-%d-%s.xlsx", *storeID, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to write export", zap.Error(err))
	}
}

func (h *OrdersHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/orders/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("order not found"))
		return
	}

	if _, err := h.access.CanAccessOrder(r.Context(), p, id); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		order, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"order": order}))

	case http.MethodPut:
		var req struct {
			Status        *string `json:"status"`
			PaymentStatus *string `json:"payment_status"`
			CustomerID    *int64  `json:"customer_id"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.Status != nil && !domain.ValidOrderStatus(*req.Status) {
			errs.add("status must be one of pending, processing, shipped, completed, cancelled")
		}
		if req.PaymentStatus != nil && !domain.ValidPaymentStatus(*req.PaymentStatus) {
			errs.add("payment_status must be one of unpaid, paid, refunded, partial")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		upd := repository.OrderUpdate{Status: req.Status, PaymentStatus: req.PaymentStatus, CustomerID: req.CustomerID}
		if err := h.repo.Update(r.Context(), id, upd); err != nil {
			h.fail(w, r, err)
			return
		}
		order, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("order updated", map[string]any{"order": order}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("order deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
