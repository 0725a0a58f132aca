// Package matches validates candidate matches decoded from model output
package matches

import (
	"context"
	"sort"
	"strconv"

	perr "adscope/internal/platform/errors"
	"adscope/internal/platform/logger"

	"github.com/tidwall/gjson"
)

// Score bounds
const (
	MinScore = 0
	MaxScore = 100
)

// RequiredFields must all be present on a candidate for it to be kept
var RequiredFields = []string{"start_timestamp", "end_timestamp", "context", "core_text", "score"}

// Match is a validated transcript span with its relevance score
type Match struct {
	StartTimestamp string `json:"start_timestamp" example:"00:00:03,120"`
	EndTimestamp   string `json:"end_timestamp" example:"00:00:07,900"`
	Context        string `json:"context" example:"Tired of frizzy hair every morning? This serum fixes it."`
	CoreText       string `json:"core_text" example:"This serum fixes it."`
	Score          int    `json:"score" example:"85"`

	IntentID   string `json:"intent_id,omitempty" example:"product_intro"`
	IntentName string `json:"intent_name,omitempty" example:"Product introduction"`
	AdPhase    string `json:"ad_phase,omitempty" example:"product"`
}

// Validate parses doc and returns the well formed matches it contains.
// doc must be a JSON array, or an object whose only member is that array
// (json_object response mode cannot return a bare array).
// Elements that are not objects or miss a required field are skipped.
func Validate(ctx context.Context, doc string) ([]Match, error) {
	if !gjson.Valid(doc) {
		return nil, perr.New(perr.ErrorCodeExtraction, "payload is not valid json")
	}
	root := unwrap(gjson.Parse(doc))
	if !root.IsArray() {
		return nil, perr.Newf(perr.ErrorCodeNotAnArray, "expected a json array, got %s", kindOf(root))
	}

	log := logger.C(ctx)
	out := make([]Match, 0)
	idx := -1
	root.ForEach(func(_, el gjson.Result) bool {
		idx++
		if !el.IsObject() {
			log.Warn().Int("index", idx).Str("kind", kindOf(el)).Msg("skipping non object candidate")
			return true
		}
		if missing := missingField(el); missing != "" {
			log.Warn().Int("index", idx).Str("field", missing).Msg("skipping candidate with missing field")
			return true
		}
		out = append(out, Match{
			StartTimestamp: el.Get("start_timestamp").String(),
			EndTimestamp:   el.Get("end_timestamp").String(),
			Context:        el.Get("context").String(),
			CoreText:       el.Get("core_text").String(),
			Score:          CoerceScore(el.Get("score")),
		})
		return true
	})
	return out, nil
}

// CoerceScore turns a raw score into an int clamped to [0,100]
// strings use their first run of digits, numbers are truncated, anything else is 0
func CoerceScore(v gjson.Result) int {
	switch v.Type {
	case gjson.String:
		return Clamp(leadingDigits(v.Str))
	case gjson.Number:
		return Clamp(truncate(v.Num))
	default:
		return 0
	}
}

// Clamp bounds n to [MinScore, MaxScore]
func Clamp(n int) int {
	if n < MinScore {
		return MinScore
	}
	if n > MaxScore {
		return MaxScore
	}
	return n
}

// SortByScore orders ms by score descending keeping the input order for ties
func SortByScore(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Score > ms[j].Score })
}

// AtLeast returns the matches with Score >= floor, preserving order
func AtLeast(ms []Match, floor int) []Match {
	out := make([]Match, 0, len(ms))
	for _, m := range ms {
		if m.Score >= floor {
			out = append(out, m)
		}
	}
	return out
}

// unwrap returns the array held by a single member object such as {"matches":[...]}
func unwrap(root gjson.Result) gjson.Result {
	if !root.IsObject() {
		return root
	}
	var only gjson.Result
	n := 0
	root.ForEach(func(_, v gjson.Result) bool {
		n++
		only = v
		return n < 2
	})
	if n == 1 && only.IsArray() {
		return only
	}
	return root
}

func missingField(el gjson.Result) string {
	for _, f := range RequiredFields {
		if !el.Get(f).Exists() {
			return f
		}
	}
	return ""
}

// leadingDigits parses the first run of ASCII digits in s, 0 when none
func leadingDigits(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoiCapped(s[start:i])
		}
	}
	if start < 0 {
		return 0
	}
	return atoiCapped(s[start:])
}

// atoiCapped saturates overly long digit runs instead of failing
func atoiCapped(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return MaxScore
	}
	return n
}

func truncate(f float64) int {
	switch {
	case f > MaxScore:
		return MaxScore
	case f < MinScore:
		return MinScore
	default:
		return int(f)
	}
}

func kindOf(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	}
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "bool"
	case gjson.Null:
		return "null"
	default:
		return "unknown"
	}
}
