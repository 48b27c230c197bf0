package httpapi

import (
	"net/http"

	"shopd/internal/service"

	"go.uber.org/zap"
)

// SeedHandler exposes the demo fixture loaders. Both routes are development
// tooling and disabled entirely when seeding is off.
type SeedHandler struct {
	base
	svc     service.SeedService
	enabled bool
}

func NewSeedHandler(svc service.SeedService, enabled bool, logger *zap.Logger, env string) *SeedHandler {
	return &SeedHandler{base: base{logger: logger, env: env}, svc: svc, enabled: enabled}
}

func (h *SeedHandler) Demo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !h.enabled {
		writeJSON(w, http.StatusNotFound, Fail("seeding is disabled"))
		return
	}
	summary, err := h.svc.ApplyDemo(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, OkMessage("database seeded", summary))
}

func (h *SeedHandler) SupplementsStore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !h.enabled {
		writeJSON(w, http.StatusNotFound, Fail("seeding is disabled"))
		return
	}
	summary, err := h.svc.ApplySupplementsStore(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, OkMessage("supplements store seeded", summary))
}
