package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adscope/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// pgxQuerier is what both *pgxpool.Pool and pgx.Tx offer
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// queryTrace receives one call per statement when LOG_SQL is on
type queryTrace func(ctx context.Context, sql string, args []any, elapsed time.Duration, err error)

// pgQuerier adapts a pgx querier to RowQuerier and traces each statement
type pgQuerier struct {
	q     pgxQuerier
	trace queryTrace
}

func (p pgQuerier) done(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if p.trace != nil {
		p.trace(ctx, sql, args, time.Since(start), err)
	}
}

func (p pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := p.q.Exec(ctx, sql, args...)
	p.done(ctx, sql, args, start, err)
	return ct, err
}

func (p pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := p.q.Query(ctx, sql, args...)
	p.done(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// QueryRow traces once Scan returns, since pgx defers the error until then
func (p pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{r: p.q.QueryRow(ctx, sql, args...), after: func(err error) { p.done(ctx, sql, args, start, err) }}
}

type tracedRow struct {
	r     pgx.Row
	after func(error)
}

func (t tracedRow) Scan(dst ...any) error {
	err := t.r.Scan(dst...)
	t.after(err)
	return err
}

// pgStore is the pool backed TxRunner
type pgStore struct {
	pgQuerier
	pool *pgxpool.Pool
}

func (s *pgStore) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(pgQuerier{q: tx, trace: s.trace})
	})
}

func (s *pgStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}

// sqlTracer logs statements at info, or warn once they reach slow
func sqlTracer(log logger.Logger, slow time.Duration) queryTrace {
	l := log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return func(_ context.Context, sql string, args []any, elapsed time.Duration, err error) {
		evt := l.Info()
		isSlow := slow > 0 && elapsed >= slow
		if isSlow || err != nil {
			evt = l.Warn()
		}
		evt.Dur("elapsed", elapsed).
			Bool("slow", isSlow).
			Str("sql", strings.Join(strings.Fields(sql), " ")).
			Int("args", len(args)).
			Err(err).
			Msg("pg query")
	}
}

var newPool = pgxpool.NewWithConfig

// openPG builds the pool and pings it with capped exponential backoff so the
// api can start alongside a database that is still booting
func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgStore, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if err := pingWithBackoff(ctx, attempts, timeout, pool.Ping); err != nil {
		pool.Close()
		return nil, err
	}

	s := &pgStore{pool: pool, pgQuerier: pgQuerier{q: pool}}
	if cfg.LogSQL {
		s.trace = sqlTracer(log, time.Duration(cfg.SlowQueryMs)*time.Millisecond)
	}
	return s, nil
}

func pingWithBackoff(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	const ceiling = 2 * time.Second
	backoff := 150 * time.Millisecond

	var last error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, ceiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, last)
}
