package repo

import (
	"context"
	"time"

	"adscope/internal/platform/store"
)

// MatchRow is one match as written to the clickhouse analytics table
type MatchRow struct {
	RunID          string    `ch:"run_id"`
	ResultID       string    `ch:"result_id"`
	VideoID        string    `ch:"video_id"`
	Mode           string    `ch:"mode"`
	IntentID       string    `ch:"intent_id"`
	StartTimestamp string    `ch:"start_timestamp"`
	EndTimestamp   string    `ch:"end_timestamp"`
	CoreText       string    `ch:"core_text"`
	Score          uint8     `ch:"score"`
	AdPhase        string    `ch:"ad_phase"`
	CreatedAt      time.Time `ch:"created_at"`
}

// CHSink appends match rows to a clickhouse table
type CHSink struct {
	ch    store.Clickhouse
	table string
}

// NewCHSink returns nil when ch is nil so callers can skip analytics
func NewCHSink(ch store.Clickhouse, table string) *CHSink {
	if ch == nil {
		return nil
	}
	if table == "" {
		table = "analysis_matches"
	}
	return &CHSink{ch: ch, table: table}
}

// Table is the destination table
func (s *CHSink) Table() string { return s.table }

// Write inserts rows in one batch
func (s *CHSink) Write(ctx context.Context, rows []MatchRow) error {
	if len(rows) == 0 {
		return nil
	}
	return s.ch.Insert(ctx, s.table, rows)
}
