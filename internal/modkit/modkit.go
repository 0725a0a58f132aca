// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"adscope/internal/modkit/repokit"
	"adscope/internal/platform/config"
	"adscope/internal/platform/logger"
	phttp "adscope/internal/platform/net/http"
	"adscope/internal/platform/store"
	str "adscope/internal/platform/strings"
)

// Module is the surface the api composes: a named route group with a port set
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Deps holds the shared dependencies handed to every module. PG and CH are
// nil when the backend is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Option mutates build configuration for a module
type Option func(*Built)

// WithName sets a module name used in logs
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects a port set owned by the receiving module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister adds routes after the module's own
func WithRegister(fn func(phttp.Router)) Option { return func(b *Built) { b.Register = fn } }

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount routes own plus any WithRegister extras under the prefix with the
// module middleware applied
func (b Built) Mount(r phttp.Router, own func(phttp.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr phttp.Router) {
		rr.Use(b.Mw...)
		if own != nil {
			own(rr)
		}
		if b.Register != nil {
			b.Register(rr)
		}
	})
}
