// Package testkit holds the assertions and seam helpers shared by package tests
package testkit

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// panicked runs fn and returns the recovered value, if any
func panicked(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// MustPanic fails t unless fn panics
func MustPanic(t testing.TB, fn func()) {
	t.Helper()
	if panicked(fn) == nil {
		t.Fatalf("expected panic, got none")
	}
}

// MustNotPanic fails t if fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	if v := panicked(fn); v != nil {
		t.Fatalf("unexpected panic: %v", v)
	}
}

// MustContain fails t unless out contains want. Long output (log lines,
// prompts) is shown in full so the failure is readable on its own
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("missing %q in:\n%s", want, indent(out))
	}
}

func indent(s string) string {
	var b strings.Builder
	for i, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		fmt.Fprintf(&b, "%4d | %s\n", i+1, l)
	}
	return b.String()
}

var seamMu sync.Mutex

// Swap replaces a package level seam for the duration of the test
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process wide lock until the test ends, for tests that swap
// seams shared with other packages' tests in the same binary
func Serial(t testing.TB) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
