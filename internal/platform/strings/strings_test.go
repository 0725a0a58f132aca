package strings

import (
	"slices"
	"testing"

	"adscope/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET", "POST"}
	if got := IfEmpty(nil, def); !slices.Equal(got, def) {
		t.Fatalf("nil -> %v", got)
	}
	if got := IfEmpty([]string{"PUT"}, def); !slices.Equal(got, []string{"PUT"}) {
		t.Fatalf("set -> %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString(" analysis ", "module name"); got != " analysis " {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { MustString(" \t", "module name") })
}

func TestMustPrefix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/intents", "/intents"},
		{"intents", "/intents"},
		{" /meta/ ", "/meta"},
		{"//analysis//", "/analysis"},
		{"api/v1", "/api/v1"},
	}
	for _, tc := range tests {
		if got := MustPrefix(tc.in); got != tc.want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "  ", "/", " // "} {
		testkit.MustPanic(t, func() { MustPrefix(bad) })
	}
}
