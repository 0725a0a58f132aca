// Package logger owns the process root zerolog logger and the context
// helpers that tag lines with request and run ids
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project wide logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
	Static      map[string]string
}

// env reads LOG_* directly; config logs through this package so it cannot be
// used here
func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv("LOG_" + key)); v != "" {
		return v
	}
	return def
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and
// LOG_SAMPLE_EVERY
func FromEnv() Options {
	caller, _ := strconv.ParseBool(env("CALLER", "false"))
	sample, _ := strconv.Atoi(env("SAMPLE_EVERY", "0"))
	return Options{
		Level:       strings.ToLower(env("LEVEL", "debug")),
		Format:      strings.ToLower(env("FORMAT", "console")),
		Service:     env("SERVICE", ""),
		WithCaller:  caller,
		SampleEvery: sample,
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger. Only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opt.Writer
		if w == nil {
			w = os.Stdout
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok {
			c = c.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			c = c.Str("service", opt.Service)
		}
		for k, v := range opt.Static {
			c = c.Str(k, v)
		}
		if opt.WithCaller {
			c = c.Caller()
		}
		l := c.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&l)
	})
}

// parseLevel maps a level name to zerolog, defaulting to debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return l
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyRunID
)

// WithRequest annotates ctx with the request id
func WithRequest(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRequestID, id)
}

// WithRun annotates ctx with an analysis run id
func WithRun(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRunID, id)
}

// C returns the root logger with request_id and run_id taken from ctx
func C(ctx context.Context) *Logger {
	l := Get()
	if ctx == nil {
		return l
	}
	c := l.With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		c = c.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyRunID).(string); s != "" {
		c = c.Str("run_id", s)
	}
	ll := c.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
