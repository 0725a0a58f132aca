// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "adscope/internal/modkit"
	"adscope/internal/modkit/httpkit"
	str "adscope/internal/platform/strings"

	metahttp "adscope/internal/services/api/meta/http"
)

// Ports are injected with modkit.WithPorts and describe the model backend
type Ports struct {
	ServiceName string
	Provider    string
	Model       string
	Gate        metahttp.GateStats
	Intents     func() int
}

// Module serves health, version and runtime status under /meta
type Module struct {
	b modkit.Built
	d metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.ServiceName == "" {
		in.ServiceName = "adscope-api"
	}

	d := metahttp.Deps{
		ServiceName: in.ServiceName,
		StartedAt:   time.Now(),
		Provider:    in.Provider,
		Model:       in.Model,
		Gate:        in.Gate,
		Intents:     in.Intents,
	}
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	return &Module{b: b, d: d}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.d) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements modkit.Module; meta only consumes ports
func (m *Module) Ports() any { return nil }
