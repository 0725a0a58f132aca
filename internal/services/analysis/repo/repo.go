// Package repo provides persistence for analysis results
package repo

import (
	"context"
	"time"

	"adscope/internal/modkit/repokit"
	perr "adscope/internal/platform/errors"
)

// Repo defines the repository contract for analysis results
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, r RowResult) error
	Get(ctx context.Context, id string) (RowResult, error)
}

// RowResult is one stored analysis, Payload holds the full result as json
type RowResult struct {
	ID         string
	VideoID    string
	Mode       string
	Payload    []byte
	MatchCount int
	ErrorCount int
	CreatedAt  time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const schemaSQL = `
create table if not exists analysis_results (
	id uuid primary key,
	video_id text not null,
	mode text not null check (mode in ('intent', 'prompt')),
	payload jsonb not null,
	match_count int not null default 0,
	error_count int not null default 0,
	created_at timestamptz not null default now()
);
create index if not exists analysis_results_video_idx on analysis_results (video_id, created_at desc);
`

func (r *queries) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schemaSQL); err != nil {
		return perr.FromPostgres(err, "create analysis_results")
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, row RowResult) error {
	const sql = `
insert into analysis_results (id, video_id, mode, payload, match_count, error_count, created_at)
values ($1::uuid, $2, $3, $4::jsonb, $5, $6, $7)
`
	created := row.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, sql, row.ID, row.VideoID, row.Mode, string(row.Payload), row.MatchCount, row.ErrorCount, created)
	if err != nil {
		return perr.FromPostgresf(err, "insert analysis result %s", row.ID)
	}
	return nil
}

func (r *queries) Get(ctx context.Context, id string) (RowResult, error) {
	const sql = `
select id::text, video_id, mode, payload::text, match_count, error_count, created_at
from analysis_results
where id = $1::uuid
`
	var (
		out     RowResult
		payload string
	)
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&out.ID,
		&out.VideoID,
		&out.Mode,
		&payload,
		&out.MatchCount,
		&out.ErrorCount,
		&out.CreatedAt,
	)
	if err != nil {
		return RowResult{}, perr.FromPostgresf(err, "analysis result %s", id)
	}
	out.Payload = []byte(payload)
	return out, nil
}
