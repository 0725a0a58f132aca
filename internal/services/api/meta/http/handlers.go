// Package http serves the meta endpoints: liveness, readiness against the
// optional stores, build info and the model backend with its call gate
package http

import (
	"context"
	"net/http"
	"time"

	"adscope/internal/core/version"
	"adscope/internal/modkit/httpkit"
	phttp "adscope/internal/platform/net/http"
	"adscope/internal/platform/store"

	"golang.org/x/sync/errgroup"
)

const readyTimeout = 2 * time.Second

// GateStats is the read side of the model call gate
type GateStats interface {
	Size() int
	InFlight() int
	Peak() int
	Admitted() int
}

// Deps are the handler dependencies. PG and CH are nil when not configured
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any

	Provider string
	Model    string
	Gate     GateStats
	Intents  func() int
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers(d)
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/llm", h.llm)
}

type handlers Deps

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK        bool   `json:"ok"         example:"true"`
	Service   string `json:"service"    example:"adscope-api"`
	Started   string `json:"started"    example:"2025-09-03T13:00:00Z"`
	UptimeSec int64  `json:"uptime_sec" example:"300"`
}

// ReadyCheck is one backend probe: ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok unless a configured backend fails its ping
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// LLMResponse reports the model backend and call gate counters
type LLMResponse struct {
	Provider string `json:"provider"  example:"openrouter"`
	Model    string `json:"model"     example:"deepseek/deepseek-chat"`
	Intents  int    `json:"intents"   example:"6"`
	GateSize int    `json:"gate_size" example:"3"`
	InFlight int    `json:"in_flight" example:"1"`
	Peak     int    `json:"peak"      example:"3"`
	Admitted int    `json:"admitted"  example:"42"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:        true,
		Service:   h.ServiceName,
		Started:   h.StartedAt.UTC().Format(time.RFC3339),
		UptimeSec: int64(time.Since(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Description Storage is optional; an unconfigured backend is skipped. Any failing ping answers 503.
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	backends := []struct {
		name string
		b    any
	}{{"pg", h.PG}, {"ch", h.CH}}
	checks := make([]ReadyCheck, len(backends))

	var g errgroup.Group
	for i, be := range backends {
		checks[i] = ReadyCheck{Name: be.name, Status: "skipped"}
		p, ok := be.b.(store.Pinger)
		if !ok {
			continue
		}
		g.Go(func() error {
			checks[i].Status = "ok"
			if err := p.Ping(ctx); err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: "ok", Checks: checks}
	for _, c := range checks {
		if c.Status == "fail" {
			out.Status = "fail"
			return phttp.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
		}
	}
	return out, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// @Summary Model backend and call gate counters
// @Tags Meta
// @Produce json
// @Success 200 {object} LLMResponse
// @Router /meta/llm [get]
func (h handlers) llm(_ *http.Request) (any, error) {
	out := LLMResponse{Provider: h.Provider, Model: h.Model}
	if h.Intents != nil {
		out.Intents = h.Intents()
	}
	if g := h.Gate; g != nil {
		out.GateSize, out.InFlight, out.Peak, out.Admitted = g.Size(), g.InFlight(), g.Peak(), g.Admitted()
	}
	return out, nil
}
