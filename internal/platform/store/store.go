// Package store opens the optional result backends: postgres for stored
// analysis results and clickhouse for the flattened match rows. Either may be
// absent; callers check for nil seams
package store

import (
	"context"
	"errors"

	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"
)

// Store holds whichever backends were enabled. The zero value has none
type Store struct {
	Log logger.Logger

	// PG is nil unless postgres is configured
	PG TxRunner

	// CH is nil unless clickhouse is configured
	CH Clickhouse
}

// Row is a single scanned row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos are written against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can run fn in a transaction. fn returning
// an error rolls back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar write seam
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates a Store during Open
type Option func(*Store)

// WithLogger sets the logger handed to the sql tracer
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.Log = log }
}

// Open connects every backend enabled in cfg. A failing backend fails Open
// and closes whatever was already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		pg, err := openPG(ctx, cfg.PG, s.Log)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "open postgres")
		}
		s.PG = pg
	}
	if cfg.CH.Enabled {
		ch, err := openCH(ctx, cfg.CH, cfg.AppName)
		if err != nil {
			_ = s.Close(ctx)
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "open clickhouse")
		}
		s.CH = ch
	}

	s.Log.Info().Bool("pg", s.PG != nil).Bool("ch", s.CH != nil).Msg("store opened")
	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return perr.Unavailablef("nil store")
	}
	var errs []error
	for name, b := range map[string]any{"pg": s.PG, "ch": s.CH} {
		p, ok := b.(Pinger)
		if !ok || p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s ping", name))
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
