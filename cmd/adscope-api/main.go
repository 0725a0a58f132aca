// @title         Adscope API
// @version       0.1.0
// @description   Transcript analysis of marketing videos against predefined intents or free text prompts

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"adscope/internal/adapters/llm"
	"adscope/internal/platform/config"
	"adscope/internal/platform/logger"
	phttp "adscope/internal/platform/net/http"
	"adscope/internal/platform/store"

	"adscope/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// storage is optional, each backend turns on when its DBURL is set
	st, err := store.Open(ctx, store.FromConfig(root, "adscope-api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		l.Warn().Err(err).Msg("store not ready; /meta/ready will report it")
	}

	model, err := llm.New(llm.FromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("llm client")
	}
	l.Info().Str("provider", model.ProviderName()).Str("model", model.Model()).Msg("llm configured")

	// http server (reads CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	err = api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		LLM:            model,
		RequestTimeout: apiCfg.MayDuration("REQUEST_TIMEOUT", 10*time.Minute),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
