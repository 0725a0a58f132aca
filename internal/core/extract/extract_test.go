package extract

import (
	"testing"

	"adscope/internal/platform/testkit"

	"github.com/tidwall/gjson"
)

func TestExtract_Ladder(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKind Kind
		wantText string
	}{
		{name: "direct array", in: `[{"score":80}]`, wantKind: Direct, wantText: `[{"score":80}]`},
		{name: "direct with surrounding space", in: "  \n[]\n ", wantKind: Direct, wantText: `[]`},
		{name: "direct object", in: `{"a":1}`, wantKind: Direct, wantText: `{"a":1}`},
		{
			name:     "fenced json block inside prose",
			in:       "Here are the matches:\n```json\n[{\"score\":80}]\n```\nLet me know!",
			wantKind: Fenced,
			wantText: `[{"score":80}]`,
		},
		{
			name:     "bare fence",
			in:       "Result\n```\n{\"a\":1}\n```",
			wantKind: Fenced,
			wantText: `{"a":1}`,
		},
		{
			name:     "fence preferred over earlier brackets",
			in:       "see [note] below ```json [1,2] ``` end",
			wantKind: Fenced,
			wantText: `[1,2]`,
		},
		{
			name:     "first invalid fence skipped",
			in:       "```json\n[oops]\n```\n```json\n[3]\n```",
			wantKind: Fenced,
			wantText: `[3]`,
		},
		{name: "bracket scan array", in: `The result is [1, 2] as requested`, wantKind: BracketArray, wantText: `[1, 2]`},
		{name: "bracket scan object", in: `The result is {"a": 1} ok`, wantKind: BracketObject, wantText: `{"a": 1}`},
		{
			name:     "array span invalid falls to object",
			in:       `note [x] then {"a":1}`,
			wantKind: BracketObject,
			wantText: `{"a":1}`,
		},
		{name: "no brackets passthrough", in: "no json here", wantKind: Unrecognized, wantText: "no json here"},
		{name: "reversed brackets passthrough", in: "] nope [", wantKind: Unrecognized, wantText: "] nope ["},
		{name: "empty", in: "", wantKind: Unrecognized, wantText: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.in)
			if got.Kind != tc.wantKind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tc.wantKind)
			}
			if got.Text != tc.wantText {
				t.Fatalf("Text = %q, want %q", got.Text, tc.wantText)
			}
			if got.Recognized() && !gjson.Valid(got.Text) {
				t.Fatalf("recognized text is not valid JSON: %q", got.Text)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	if got := ExtractText("prose [1] prose"); got != "[1]" {
		t.Fatalf("ExtractText = %q", got)
	}
	if got := ExtractText("nothing"); got != "nothing" {
		t.Fatalf("ExtractText passthrough = %q", got)
	}
}

func TestExtractText_PanicYieldsEmpty(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &valid, func(string) bool { panic("boom") })

	testkit.MustNotPanic(t, func() {
		if got := ExtractText(`[1]`); got != "" {
			t.Fatalf("ExtractText after panic = %q, want empty", got)
		}
	})
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "array trailing comma", in: `[1,2,]`},
		{name: "object trailing comma", in: `{"a":1,}`},
		{name: "nested with whitespace", in: "[{\"a\":1,\n},\n]"},
		{name: "space before bracket", in: `{"a":[1,2 , ]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if gjson.Valid(tc.in) {
				t.Fatalf("fixture unexpectedly valid: %q", tc.in)
			}
			if got := Repair(tc.in); !gjson.Valid(got) {
				t.Fatalf("Repair(%q) = %q still invalid", tc.in, got)
			}
		})
	}

	if got := Repair(`[1,2]`); got != `[1,2]` {
		t.Fatalf("Repair changed valid input: %q", got)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKind Kind
		wantText string
	}{
		{name: "clean input untouched", in: `[1]`, wantKind: Direct, wantText: `[1]`},
		{name: "repair makes whole text direct", in: `[{"a":1},]`, wantKind: Direct, wantText: `[{"a":1}]`},
		{
			name:     "repair keeps fenced array over inner object",
			in:       "```json\n[{\"a\":1},]\n```",
			wantKind: Fenced,
			wantText: `[{"a":1}]`,
		},
		{name: "unrepairable", in: "just words", wantKind: Unrecognized, wantText: "just words"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Locate(tc.in)
			if got.Kind != tc.wantKind || got.Text != tc.wantText {
				t.Fatalf("Locate = %v %q, want %v %q", got.Kind, got.Text, tc.wantKind, tc.wantText)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if Fenced.String() != "fenced" || Unrecognized.String() != "unrecognized" || BracketArray.String() != "bracket_array" {
		t.Fatalf("unexpected kind names")
	}
}
