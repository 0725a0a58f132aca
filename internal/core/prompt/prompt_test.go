package prompt

import (
	"strings"
	"testing"

	"adscope/internal/core/transcript"
	"adscope/internal/platform/testkit"
)

var sample = []transcript.Line{
	{Timestamp: "00:00:01,000", Text: "Tired of frizzy hair?"},
	{Timestamp: "00:00:04,200", Text: "Meet SilkFix serum."},
	{Timestamp: "00:00:09,500", Text: "Order today and get 50% off."},
}

// invariants every prompt must hold regardless of mode or transcript
func assertInvariants(t *testing.T, p string, lines []transcript.Line) {
	t.Helper()
	testkit.MustContain(t, p, "JSON array")
	testkit.MustContain(t, p, "at least 60")
	for _, f := range []string{"start_timestamp", "end_timestamp", "context", "core_text", "score"} {
		testkit.MustContain(t, p, f)
	}
	for _, l := range lines {
		testkit.MustContain(t, p, "["+l.Timestamp+"] "+l.Text)
	}
}

func TestBuild_IntentMode(t *testing.T) {
	target := IntentTarget("Promotion", "Discounts, coupons or limited time offers", []string{"off", "coupon"})
	p := Build(sample, target)

	assertInvariants(t, p, sample)
	testkit.MustContain(t, p, "Name: Promotion")
	testkit.MustContain(t, p, "Description: Discounts, coupons or limited time offers")
	testkit.MustContain(t, p, "Typical keywords: off, coupon")
	if strings.Contains(p, "## Request") {
		t.Fatalf("intent prompt should not carry a request section")
	}
}

func TestBuild_PromptMode(t *testing.T) {
	p := Build(sample, QueryTarget("  where does the speaker mention price?  "))

	assertInvariants(t, p, sample)
	testkit.MustContain(t, p, "## Request\nwhere does the speaker mention price?\n")
	if strings.Contains(p, "## Intent") {
		t.Fatalf("prompt mode should not carry an intent section")
	}
}

func TestBuild_EmptyTranscript(t *testing.T) {
	for _, target := range []Target{IntentTarget("x", "y", nil), QueryTarget("q")} {
		p := Build(nil, target)
		assertInvariants(t, p, nil)
		testkit.MustContain(t, p, "(the transcript is empty)")
	}
}

func TestBuild_LineOrderPreserved(t *testing.T) {
	p := Build(sample, QueryTarget("q"))
	i0 := strings.Index(p, sample[0].Text)
	i1 := strings.Index(p, sample[1].Text)
	i2 := strings.Index(p, sample[2].Text)
	if !(i0 < i1 && i1 < i2) {
		t.Fatalf("lines out of order: %d %d %d", i0, i1, i2)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	target := IntentTarget("a", "b", []string{"c"})
	if Build(sample, target) != Build(sample, target) {
		t.Fatalf("Build is not deterministic")
	}
}

func TestBuild_Wrapped(t *testing.T) {
	plain := Build(sample, QueryTarget("q"))
	if strings.Contains(plain, `{"matches"`) {
		t.Fatalf("unwrapped prompt mentions the wrapper")
	}
	testkit.MustContain(t, plain, "respond with [].")

	target := IntentTarget("a", "b", nil)
	target.Wrapped = true
	p := Build(sample, target)
	assertInvariants(t, p, sample)
	testkit.MustContain(t, p, `{"matches": [...]}`)
	testkit.MustContain(t, p, `respond with {"matches": []}.`)
}

func TestModeValid(t *testing.T) {
	if !ModeIntent.Valid() || !ModePrompt.Valid() || Mode("other").Valid() {
		t.Fatalf("Mode.Valid mismatch")
	}
}
