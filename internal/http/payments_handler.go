package httpapi

import (
	"net/http"
	"strings"

	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

type PaymentsHandler struct {
	base
	repo   repository.PaymentsRepository
	access *service.Access
}

func NewPaymentsHandler(repo repository.PaymentsRepository, access *service.Access, logger *zap.Logger, env string) *PaymentsHandler {
	return &PaymentsHandler{base: base{logger: logger, env: env}, repo: repo, access: access}
}

func (h *PaymentsHandler) Collection(w http.ResponseWriter, r *http.Request) {
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
		payments, err := h.repo.ListByOrder(r.Context(), *orderID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"payments": payments}))

	case http.MethodPost:
		var req struct {
			OrderID  int64         `json:"order_id"`
			Provider string        `json:"provider"`
			Amount   *domain.Money `json:"amount"`
			Status   string        `json:"status"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.OrderID <= 0 {
			errs.add("order_id is required")
		}
		if strings.TrimSpace(req.Provider) == "" {
			errs.add("provider is required")
		}
		if req.Amount == nil {
			errs.add("amount is required")
		} else if *req.Amount < 0 {
			errs.add("amount must not be negative")
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
		payment := &domain.Payment{
			OrderID:  req.OrderID,
			Provider: strings.TrimSpace(req.Provider),
			Amount:   *req.Amount,
			Status:   status,
		}
		id, err := h.repo.Create(r.Context(), payment)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		created, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, OkMessage("payment created", map[string]any{"payment": created}))

	default:
		methodNotAllowed(w)
	}
}

func (h *PaymentsHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/payments/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("payment not found"))
		return
	}

	payment, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.access.CanAccessOrder(r.Context(), p, payment.OrderID); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(map[string]any{"payment": payment}))

	case http.MethodPut:
		var req struct {
			Provider *string       `json:"provider"`
			Amount   *domain.Money `json:"amount"`
			Status   *string       `json:"status"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		var errs fieldErrors
		if req.Provider != nil && strings.TrimSpace(*req.Provider) == "" {
			errs.add("provider must not be empty")
		}
		if req.Amount != nil && *req.Amount < 0 {
			errs.add("amount must not be negative")
		}
		if err := errs.err(); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.repo.Update(r.Context(), id, repository.PaymentUpdate{Provider: req.Provider, Amount: req.Amount, Status: req.Status}); err != nil {
			h.fail(w, r, err)
			return
		}
		updated, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("payment updated", map[string]any{"payment": updated}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("payment deleted", nil))

	default:
		methodNotAllowed(w)
	}
}
