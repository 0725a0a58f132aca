// Package http provides http transport for the intent catalog
package http

import (
	stdhttp "net/http"

	"adscope/internal/modkit/httpkit"
	svc "adscope/internal/services/intents/service"
)

// Register mounts intent endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /intents Intents intentsList
// @Summary List predefined intents
// @Tags Intents
// @Produce json
// @Success 200 {object} domain.IntentList "ok"
// @Router /intents [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context()), nil
}

// swagger:route GET /intents/{id} Intents intentsGet
// @Summary Fetch one intent
// @Tags Intents
// @Produce json
// @Param id path string true "Intent id"
// @Success 200 {object} domain.Intent "ok"
// @Failure 404 {object} map[string]any "not found"
// @Router /intents/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}
