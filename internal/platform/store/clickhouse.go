package store

import (
	"context"

	"adscope/internal/platform/store/ch"
)

// chStore adapts *ch.CH to Clickhouse
type chStore struct{ c *ch.CH }

func openCH(ctx context.Context, cfg CHConfig, app string) (*chStore, error) {
	c, err := ch.Open(ctx, ch.Config{URL: cfg.URL, Role: cfg.Role, Tag: app})
	if err != nil {
		return nil, err
	}
	return &chStore{c: c}, nil
}

func (s *chStore) Insert(ctx context.Context, table string, data any) error {
	return s.c.Insert(ctx, table, data)
}

func (s *chStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := s.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (s *chStore) Ping(ctx context.Context) error { return s.c.Ping(ctx) }
func (s *chStore) Close() error                   { return s.c.Close() }

// chRows drops the error from Close to match Rows
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
