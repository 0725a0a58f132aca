package transcript

import (
	"os"
	"path/filepath"
	"testing"

	perr "adscope/internal/platform/errors"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  string
	}{
		{name: "empty", lines: nil, want: ""},
		{name: "single", lines: []Line{{Timestamp: "00:01", Text: "hello"}}, want: "[00:01] hello"},
		{
			name:  "multi keeps order and text verbatim",
			lines: []Line{{Timestamp: "00:01", Text: "Tired of  frizz?"}, {Timestamp: "00:04", Text: "Try this"}},
			want:  "[00:01] Tired of  frizz?\n[00:04] Try this",
		},
		{name: "control chars kept", lines: []Line{{Timestamp: "1", Text: "a\x00b\tc"}}, want: "[1] a\x00b\tc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Render(tc.lines); got != tc.want {
				t.Fatalf("Render = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText([]Line{{Text: " one "}, {Text: ""}, {Text: "two"}})
	if got != "one two" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	ok := filepath.Join(dir, "vid-1.json")
	if err := os.WriteFile(ok, []byte(`[{"timestamp":"00:00","text":"hi"},{"timestamp":"00:02","text":"there"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	lines, err := ReadFile(ok)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(lines) != 2 || lines[1].Text != "there" {
		t.Fatalf("unexpected lines %+v", lines)
	}
	if id := VideoID(ok); id != "vid-1" {
		t.Fatalf("VideoID = %q", id)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(bad); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error, got %v", err)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}
