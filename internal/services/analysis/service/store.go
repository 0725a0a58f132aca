package service

import (
	"context"
	"encoding/json"
	"time"

	"adscope/internal/modkit/repokit"
	perr "adscope/internal/platform/errors"
	"adscope/internal/services/analysis/domain"
	"adscope/internal/services/analysis/repo"
)

// PGStore persists results through the analysis repo
type PGStore struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// NewPGStore binds the repo to db
func NewPGStore(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *PGStore {
	if db == nil {
		panic("analysis.PGStore requires a non nil TxRunner")
	}
	if binder == nil {
		panic("analysis.PGStore requires a non nil Repo binder")
	}
	return &PGStore{Repo: binder.Bind(db), binder: binder, db: db}
}

// EnsureSchema creates the results table when missing
func (p *PGStore) EnsureSchema(ctx context.Context) error { return p.Repo.EnsureSchema(ctx) }

// Save stores r as one row with a jsonb payload
func (p *PGStore) Save(ctx context.Context, r domain.AnalysisResult) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode analysis result")
	}
	row := repo.RowResult{
		ID:         r.ID,
		VideoID:    r.VideoID,
		Mode:       string(r.Mode),
		Payload:    payload,
		MatchCount: r.MatchCount(),
		ErrorCount: len(r.Errors),
		CreatedAt:  r.EndTime,
	}
	return repokit.WithTx(ctx, p.db, p.binder, func(tx repo.Repo) error {
		return tx.Insert(ctx, row)
	})
}

// Get loads one result by id
func (p *PGStore) Get(ctx context.Context, id string) (domain.AnalysisResult, error) {
	row, err := p.Repo.Get(ctx, id)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	var out domain.AnalysisResult
	if err := json.Unmarshal(row.Payload, &out); err != nil {
		return domain.AnalysisResult{}, perr.Wrapf(err, perr.ErrorCodeJSON, "decode stored result %s", id)
	}
	return out, nil
}

// CHMatchSink flattens results into clickhouse match rows
type CHMatchSink struct {
	sink *repo.CHSink
	now  func() time.Time
}

// NewCHMatchSink returns nil when sink is nil
func NewCHMatchSink(sink *repo.CHSink) *CHMatchSink {
	if sink == nil {
		return nil
	}
	return &CHMatchSink{sink: sink, now: time.Now}
}

// Append writes every match of r
func (c *CHMatchSink) Append(ctx context.Context, runID string, r domain.AnalysisResult) error {
	return c.sink.Write(ctx, MatchRows(runID, r, c.now().UTC()))
}

// MatchRows flattens a result; group order is not significant
func MatchRows(runID string, r domain.AnalysisResult, at time.Time) []repo.MatchRow {
	rows := make([]repo.MatchRow, 0, r.MatchCount())
	add := func(intentID string, m domain.Match) {
		rows = append(rows, repo.MatchRow{
			RunID:          runID,
			ResultID:       r.ID,
			VideoID:        r.VideoID,
			Mode:           string(r.Mode),
			IntentID:       intentID,
			StartTimestamp: m.StartTimestamp,
			EndTimestamp:   m.EndTimestamp,
			CoreText:       m.CoreText,
			Score:          uint8(m.Score),
			AdPhase:        m.AdPhase,
			CreatedAt:      at,
		})
	}
	for id, g := range r.Groups {
		for _, m := range g.Matches {
			add(id, m)
		}
	}
	for _, m := range r.Matches {
		add("", m)
	}
	return rows
}
