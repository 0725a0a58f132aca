// Package module wires the intent catalog into the API using modkit
package module

import (
	modkit "adscope/internal/modkit"
	"adscope/internal/modkit/httpkit"
	str "adscope/internal/platform/strings"
	intentshttp "adscope/internal/services/intents/http"
	intentssvc "adscope/internal/services/intents/service"
)

// Module serves the intent catalog under /intents
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports
	svc   *intentssvc.Svc
}

// New loads the catalog and constructs the intents module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("intents"), modkit.WithPrefix("/intents")}, opts...)...)

	o := FromConfig(deps.Cfg)
	if overrides.File != "" {
		o.File = overrides.File
	}
	cat := overrides.Catalog
	if cat == nil {
		var err error
		if cat, err = intentssvc.LoadFile(o.File); err != nil {
			return nil, err
		}
	}
	return &Module{deps: deps, b: b, ports: Ports{Lookup: cat}, svc: intentssvc.New(cat)}, nil
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { intentshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
