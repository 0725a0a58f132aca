// Package module wires transcript analysis into the API using modkit
package module

import (
	"context"

	modkit "adscope/internal/modkit"
	"adscope/internal/modkit/httpkit"
	perr "adscope/internal/platform/errors"
	str "adscope/internal/platform/strings"
	analysishttp "adscope/internal/services/analysis/http"
	"adscope/internal/services/analysis/repo"
	analysissvc "adscope/internal/services/analysis/service"
)

// Module serves transcript analysis under /analysis
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports
	svc   *analysissvc.Svc
}

// New constructs the analysis module.
// Results are persisted when deps.PG is set and matches are appended to clickhouse when deps.CH is set.
func New(ctx context.Context, deps modkit.Deps, in Inputs, overrides Options, opts ...modkit.Option) (*Module, error) {
	if in.LLM == nil || in.Intents == nil {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "analysis module needs an llm and an intent lookup")
	}
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analysis"), modkit.WithPrefix("/analysis")}, opts...)...)
	o := FromConfig(deps.Cfg).merge(overrides)

	var svcOpts []analysissvc.Option
	if deps.PG != nil && o.Persist {
		st := analysissvc.NewPGStore(deps.PG, repo.NewPG())
		if err := st.EnsureSchema(ctx); err != nil {
			return nil, perr.WithOp(err, "analysis.module.New")
		}
		svcOpts = append(svcOpts, analysissvc.WithStore(st))
	}
	if sink := analysissvc.NewCHMatchSink(repo.NewCHSink(deps.CH, o.CHTable)); sink != nil {
		svcOpts = append(svcOpts, analysissvc.WithSink(sink))
	}

	m := &Module{deps: deps, b: b, svc: analysissvc.New(o.Service, in.LLM, in.Intents, svcOpts...)}
	m.ports = Ports{Analysis: m.svc, Gate: m.svc.Gate()}
	return m, nil
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { analysishttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
