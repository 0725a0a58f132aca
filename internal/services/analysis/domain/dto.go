// Package domain holds DTOs and contracts for transcript analysis
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"adscope/internal/core/matches"
	"adscope/internal/core/prompt"
	"adscope/internal/core/transcript"
)

type (
	// Line is one subtitle entry
	Line = transcript.Line

	// Match is one validated span
	Match = matches.Match

	// Mode selects intent or free text analysis
	Mode = prompt.Mode
)

const (
	// ModeIntent analyzes against catalog intents
	ModeIntent = prompt.ModeIntent
	// ModePrompt analyzes against a free text query
	ModePrompt = prompt.ModePrompt
)

// IntentGroup holds the matches found for one intent
type IntentGroup struct {
	IntentName  string  `json:"intent_name"`
	KeywordHits int     `json:"keyword_hits"`
	Skipped     bool    `json:"skipped,omitempty"`
	Matches     []Match `json:"matches"`
}

// UnitError records the failure of one analysis unit
type UnitError struct {
	UnitID   string `json:"unit_id" example:"product_intro"`
	IntentID string `json:"intent_id,omitempty" example:"product_intro"`
	Error    string `json:"error" example:"status 500: upstream exploded"`
	Code     string `json:"code" example:"http_error"`
}

// String renders "<unit_id>: <message>"
func (e UnitError) String() string { return fmt.Sprintf("%s: %s", e.UnitID, e.Error) }

// AnalysisResult is the outcome for one video.
// Intent mode fills Groups keyed by intent id, prompt mode fills Matches.
// Both travel under the "matches" key: an object of groups in intent mode,
// an array (possibly empty) in prompt mode.
type AnalysisResult struct {
	ID              string                 `json:"id" example:"3f0c1a52-8d8e-4c55-9f0e-1b1d2c3e4f5a"`
	VideoID         string                 `json:"video_id" example:"ad_0001"`
	Mode            Mode                   `json:"mode" example:"intent"`
	Groups          map[string]IntentGroup `json:"-"`
	Matches         []Match                `json:"-"`
	Errors          []UnitError            `json:"errors"`
	StartTime       time.Time              `json:"start_time"`
	EndTime         time.Time              `json:"end_time"`
	DurationSeconds float64                `json:"duration_seconds"`
}

type resultFields AnalysisResult

// MarshalJSON writes Groups or Matches under "matches" depending on Mode
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	var m any
	switch r.Mode {
	case ModeIntent:
		g := r.Groups
		if g == nil {
			g = map[string]IntentGroup{}
		}
		m = g
	default:
		ms := r.Matches
		if ms == nil {
			ms = []Match{}
		}
		m = ms
	}
	return json.Marshal(struct {
		resultFields
		Matches any `json:"matches"`
	}{resultFields(r), m})
}

// UnmarshalJSON reads "matches" back into Groups or Matches.
// An object is taken as intent groups, an array as prompt matches.
func (r *AnalysisResult) UnmarshalJSON(b []byte) error {
	var w struct {
		resultFields
		Matches json.RawMessage `json:"matches"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = AnalysisResult(w.resultFields)
	raw := w.Matches
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	switch firstByte(raw) {
	case '{':
		return json.Unmarshal(raw, &r.Groups)
	case '[':
		return json.Unmarshal(raw, &r.Matches)
	}
	return fmt.Errorf("matches: want object or array, got %s", raw)
}

func firstByte(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}

// ErrorStrings renders Errors as "<unit_id>: <message>"
func (r AnalysisResult) ErrorStrings() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.String())
	}
	return out
}

// MatchCount counts matches across groups or the flat list
func (r AnalysisResult) MatchCount() int {
	n := len(r.Matches)
	for _, g := range r.Groups {
		n += len(g.Matches)
	}
	return n
}

// BatchResult is the outcome for a batch, one entry per video id
type BatchResult struct {
	RunID           string                    `json:"run_id"`
	Mode            Mode                      `json:"mode"`
	Videos          map[string]AnalysisResult `json:"videos"`
	Artifact        string                    `json:"artifact,omitempty"`
	StartTime       time.Time                 `json:"start_time"`
	EndTime         time.Time                 `json:"end_time"`
	DurationSeconds float64                   `json:"duration_seconds"`
}

// VideoInput is one transcript to analyze
type VideoInput struct {
	VideoID   string `json:"video_id" validate:"notblank,max=200" example:"ad_0001"`
	Subtitles []Line `json:"subtitles" validate:"dive"`
}

// IntentInput requests intent analysis of one video; empty IntentIDs means all intents
type IntentInput struct {
	VideoID   string   `json:"video_id" validate:"notblank,max=200" example:"ad_0001"`
	Subtitles []Line   `json:"subtitles" validate:"dive"`
	IntentIDs []string `json:"intent_ids,omitempty" validate:"omitempty,dive,notblank"`
}

// PromptInput requests free text analysis of one video
type PromptInput struct {
	VideoID   string `json:"video_id" validate:"notblank,max=200" example:"ad_0001"`
	Subtitles []Line `json:"subtitles" validate:"dive"`
	Prompt    string `json:"prompt" validate:"notblank,max=4000" example:"find every mention of a discount"`
}

// BatchInput requests analysis of several videos with one mode
type BatchInput struct {
	Mode      Mode         `json:"mode" validate:"oneof=intent prompt" example:"intent"`
	Videos    []VideoInput `json:"videos" validate:"min=1,dive"`
	IntentIDs []string     `json:"intent_ids,omitempty" validate:"omitempty,dive,notblank"`
	Prompt    string       `json:"prompt,omitempty" validate:"max=4000"`
}
