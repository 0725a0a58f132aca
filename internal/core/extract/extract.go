// Package extract pulls a JSON payload out of free-form model output
//
// Model answers often wrap JSON in prose or markdown fences even when JSON mode
// was requested. Extract walks a fixed fallback ladder and reports which rung
// produced the text so callers can log how clean the answer was.
package extract

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind tags how a payload was located
type Kind uint8

const (
	// Unrecognized means no rung produced valid JSON; Text is the raw input
	Unrecognized Kind = iota
	// Direct means the whole input parsed as JSON
	Direct
	// Fenced means the payload came from a ```json or ``` block
	Fenced
	// BracketArray means the span from the first '[' to the last ']' parsed
	BracketArray
	// BracketObject means the span from the first '{' to the last '}' parsed
	BracketObject
)

// String returns a log friendly name
func (k Kind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Fenced:
		return "fenced"
	case BracketArray:
		return "bracket_array"
	case BracketObject:
		return "bracket_object"
	default:
		return "unrecognized"
	}
}

// Extraction is the located payload and the rung that found it
type Extraction struct {
	Kind Kind
	Text string
}

// Recognized reports whether Text is known to be valid JSON
func (e Extraction) Recognized() bool { return e.Kind != Unrecognized }

var (
	// fenced blocks whose body is an array or object; non-greedy so the first block wins
	fencedRe = regexp.MustCompile("(?s)```(?:json)?\\s*([\\[{].*?[\\]}])\\s*```")

	// a comma followed only by whitespace before a closing bracket or brace
	trailingCommaRe = regexp.MustCompile(`,(\s*[\]}])`)
)

// valid is a seam for tests
var valid = gjson.Valid

// Extract locates a JSON payload in raw
// order: whole text, fenced block, first '[' to last ']', first '{' to last '}', raw text
func Extract(raw string) Extraction {
	trimmed := strings.TrimSpace(raw)

	if trimmed != "" && valid(trimmed) {
		return Extraction{Kind: Direct, Text: trimmed}
	}

	for _, m := range fencedRe.FindAllStringSubmatch(raw, -1) {
		body := strings.TrimSpace(m[1])
		if valid(body) {
			return Extraction{Kind: Fenced, Text: body}
		}
	}

	if s, ok := span(raw, '[', ']'); ok && valid(s) {
		return Extraction{Kind: BracketArray, Text: s}
	}
	if s, ok := span(raw, '{', '}'); ok && valid(s) {
		return Extraction{Kind: BracketObject, Text: s}
	}

	return Extraction{Kind: Unrecognized, Text: raw}
}

// ExtractText is the string form of Extract
// it returns the chosen text, or raw unchanged when nothing parsed
// the empty string is returned only if extraction itself panicked
func ExtractText(raw string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
		}
	}()
	return Extract(raw).Text
}

// Repair removes trailing commas before a closing ']' or '}'
// no other rewrites are attempted
func Repair(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// Locate runs Extract on raw and on the repaired input and keeps the earlier rung
// a trailing comma in a fenced array would otherwise fall through to the object rung
func Locate(raw string) Extraction {
	ex := Extract(raw)
	if ex.Kind == Direct {
		return ex
	}
	fixed := Repair(raw)
	if fixed == raw {
		return ex
	}
	if rx := Extract(fixed); rank(rx.Kind) < rank(ex.Kind) {
		return rx
	}
	return ex
}

// rank orders kinds by ladder position, unrecognized last
func rank(k Kind) int {
	if k == Unrecognized {
		return int(BracketObject) + 1
	}
	return int(k)
}

// span returns s[first open : last close+1] when both exist in order
func span(s string, open, close byte) (string, bool) {
	i := strings.IndexByte(s, open)
	j := strings.LastIndexByte(s, close)
	if i < 0 || j <= i {
		return "", false
	}
	return s[i : j+1], true
}
