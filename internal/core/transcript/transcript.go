// Package transcript holds timestamped subtitle lines produced by the upstream ASR step
package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	perr "adscope/internal/platform/errors"
)

// Line is one subtitle entry; Timestamp is kept verbatim as the ASR step emitted it
type Line struct {
	Timestamp string `json:"timestamp" validate:"required" example:"00:00:03,120"`
	Text      string `json:"text" example:"Tired of frizzy hair every morning?"`
}

// Render formats lines one per row as "[timestamp] text", text embedded verbatim
func Render(lines []Line) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteByte('[')
		b.WriteString(l.Timestamp)
		b.WriteString("] ")
		b.WriteString(l.Text)
	}
	return b.String()
}

// PlainText joins the text of all lines with single spaces
func PlainText(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// ReadFile loads a transcript stored as a JSON array of lines
func ReadFile(path string) ([]Line, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "transcript %s not found", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "read transcript %s", path)
	}
	var lines []Line
	if err := json.Unmarshal(b, &lines); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode transcript %s", path)
	}
	return lines, nil
}

// VideoID derives a video id from a transcript file name (base name without extension)
func VideoID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
