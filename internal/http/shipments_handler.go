package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type ShipmentsHandler struct {
	base
	repo   repository.ShipmentsRepository
	access *service.Access
}

func NewShipmentsHandler(repo repository.ShipmentsRepository, access *service.Access, logger *zap.Logger, env string) *ShipmentsHandler {
	return &ShipmentsHandler{base: base{logger: logger, env: env}, repo: repo, access: access}
}

func (h *ShipmentsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		orderID, err := queryID(r, "order_id")
		if err != nil || orderID == nil {
			h.badRequest(w, "order_id is required")
			return
		}
		if _, err := h.access.CanAccessOrder(r.Context(), p, *orderID); err != nil {
			h.fail(w, r, err)
			return
		}
		shipments, err := h.repo.ListByOrder(r.Context(), *orderID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"shipments": shipments}))

	case http.MethodPost:
		var req struct {
			OrderID      int64  `json:"order_id"`
			Address      string `json:"address"`
			City         string `json:"city"`
			TrackingCode string `json:"tracking_code"`
			Status       string `json:"status"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.OrderID <= 0 {
			errs.add("order_id is required")
		}
		if strings.TrimSpace(req.Address) == "" {
			errs.add("address is required")
		}
		if strings.TrimSpace(req.City) == "" {
			errs.add("city is required")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		if _, err := h.access.CanAccessOrder(r.Context(), p, req.OrderID); err != nil {
			h.fail(w, r, err)
			return
		}
		status := req.Status
		if status == "" {
			status = "pending"
		}
		shipment := &domain.Shipment{
			OrderID:      req.OrderID,
			Address:      strings.TrimSpace(req.Address),
			City:         strings.TrimSpace(req.City),
			TrackingCode: req.TrackingCode,
			Status:       status,
		}
		id, err := h.repo.Create(r.Context(), shipment)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		created, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("shipment created", map[string]any{"shipment": created}))

	default:
		methodNotAllowed(w)
	}
}

func (h *ShipmentsHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/shipments/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("shipment not found"))
		return
	}

	shipment, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.access.CanAccessOrder(r.Context(), p, shipment.OrderID); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(map[string]any{"shipment": shipment}))

	case http.MethodPut:
		var req struct {
			Address      *string `json:"address"`
			City         *string `json:"city"`
			TrackingCode *string `json:"tracking_code"`
			Status       *string `json:"status"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.Address != nil && strings.TrimSpace(*req.Address) == "" {
			errs.add("address must not be empty")
		}
		if req.City != nil && strings.TrimSpace(*req.City) == "" {
			errs.add("city must not be empty")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		upd := repository.ShipmentUpdate{
			Address:      req.Address,
			City:         req.City,
			TrackingCode: req.TrackingCode,
			Status:       req.Status,
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
		writeJSON(w, http.StatusOK, OkMessage("shipment updated", map[string]any{"shipment": updated}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("shipment deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
