package normalize

import (
	"strings"
	"unicode/utf8"
)

// keep reports whether r may appear in prompt text or stored results.
// Tab, CR and LF survive; other C0 and C1 controls, DEL and invalid bytes
// (seen as utf8.RuneError) do not
func keep(r rune) bool {
	switch {
	case r == '\n', r == '\r', r == '\t':
		return true
	case r < 0x20, r == 0x7F, r >= 0x80 && r <= 0x9F, r == utf8.RuneError:
		return false
	}
	return true
}

// Sanitize drops the runes keep rejects. Clean input is returned as is
func Sanitize(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return !keep(r) }) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}
