// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"adscope/internal/platform/config"
	"adscope/internal/platform/logger"
	phttp "adscope/internal/platform/net/http"
	"adscope/internal/platform/store"

	"adscope/internal/modkit"
	"adscope/internal/modkit/httpkit"
	"adscope/internal/modkit/swaggerkit"

	analysisdom "adscope/internal/services/analysis/domain"
	analysismod "adscope/internal/services/analysis/module"
	metamod "adscope/internal/services/api/meta/module"
	intentsmod "adscope/internal/services/intents/module"
)

// Model is the completion backend plus what meta reports about it
type Model interface {
	analysisdom.Completer
	ProviderName() string
	Model() string
}

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	LLM            Model
	RequestTimeout time.Duration
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	// the catalog comes first, analysis resolves intent ids through its Lookup port
	intents, err := intentsmod.New(deps, intentsmod.Options{})
	if err != nil {
		return err
	}
	lookup := modkit.MustPortsOf[intentsmod.Ports](intents).Lookup

	analysis, err := analysismod.New(ctx, deps, analysismod.Inputs{LLM: opt.LLM, Intents: lookup}, analysismod.Options{})
	if err != nil {
		return err
	}

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Provider: opt.LLM.ProviderName(),
		Model:    opt.LLM.Model(),
		Gate:     modkit.MustPortsOf[analysismod.Ports](analysis).Gate,
		Intents:  func() int { return len(lookup.All()) },
	}))

	mods := []modkit.Module{meta, intents, analysis}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStackTimeout(opt.RequestTimeout), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	return nil
}
