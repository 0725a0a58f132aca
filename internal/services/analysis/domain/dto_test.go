package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"adscope/internal/platform/testkit"
)

func TestAnalysisResult_JSON(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		in   AnalysisResult
		want []string
		deny []string
	}{
		{
			name: "intent groups under matches",
			in: AnalysisResult{
				ID: "r1", VideoID: "v1", Mode: ModeIntent, StartTime: at, EndTime: at,
				Groups: map[string]IntentGroup{
					"promo": {IntentName: "Promotion", KeywordHits: 2, Matches: []Match{{CoreText: "50% off", Score: 90, IntentID: "promo"}}},
				},
				Errors: []UnitError{{UnitID: "pain", IntentID: "pain", Error: "status 500", Code: "http_error"}},
			},
			want: []string{`"matches":{"promo":{`, `"keyword_hits":2`, `"unit_id":"pain"`},
			deny: []string{`"groups"`},
		},
		{
			name: "prompt with nothing found keeps an empty array",
			in:   AnalysisResult{ID: "r2", VideoID: "v2", Mode: ModePrompt, Errors: []UnitError{}, StartTime: at, EndTime: at},
			want: []string{`"matches":[]`, `"errors":[]`},
		},
		{
			name: "prompt matches",
			in: AnalysisResult{
				ID: "r3", VideoID: "v3", Mode: ModePrompt, Errors: []UnitError{}, StartTime: at, EndTime: at,
				Matches: []Match{{StartTimestamp: "00:01", EndTimestamp: "00:02", Context: "c", CoreText: "k", Score: 75}},
			},
			want: []string{`"matches":[{"start_timestamp":"00:01"`},
		},
		{
			name: "intent with no groups is an empty object",
			in:   AnalysisResult{ID: "r4", VideoID: "v4", Mode: ModeIntent, Errors: []UnitError{}, StartTime: at, EndTime: at},
			want: []string{`"matches":{}`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			for _, w := range tc.want {
				testkit.MustContain(t, string(b), w)
			}
			for _, d := range tc.deny {
				if strings.Contains(string(b), d) {
					t.Fatalf("%s should not contain %s", b, d)
				}
			}

			var back AnalysisResult
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.ID != tc.in.ID || back.Mode != tc.in.Mode || len(back.Errors) != len(tc.in.Errors) {
				t.Fatalf("round trip = %+v", back)
			}
			if len(back.Groups) != len(tc.in.Groups) || len(back.Matches) != len(tc.in.Matches) {
				t.Fatalf("round trip groups=%d matches=%d, want %d and %d", len(back.Groups), len(back.Matches), len(tc.in.Groups), len(tc.in.Matches))
			}
			if tc.in.Mode == ModeIntent && len(tc.in.Groups) > 0 && back.Groups["promo"].Matches[0].Score != 90 {
				t.Fatalf("group lost its match: %+v", back.Groups)
			}
			if tc.in.Mode == ModePrompt && back.Matches == nil {
				t.Fatalf("prompt matches decoded as nil")
			}
		})
	}
}

func TestAnalysisResult_UnmarshalRejectsScalarMatches(t *testing.T) {
	var r AnalysisResult
	if err := json.Unmarshal([]byte(`{"id":"x","mode":"prompt","matches":7}`), &r); err == nil {
		t.Fatalf("want error for scalar matches")
	}
}

func TestBatchResult_NestsResultShape(t *testing.T) {
	b := BatchResult{RunID: "run", Mode: ModePrompt, Videos: map[string]AnalysisResult{"v": {ID: "r", VideoID: "v", Mode: ModePrompt}}}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	testkit.MustContain(t, string(raw), `"videos":{"v":{"id":"r"`)
	testkit.MustContain(t, string(raw), `"matches":[]`)
}
