package adphase

import "testing"

func TestLabel_DefaultTable(t *testing.T) {
	l := New(nil)

	tests := []struct {
		name  string
		texts []string
		want  Phase
	}{
		{name: "problem", texts: []string{"Tired of frizzy hair? It is so annoying."}, want: Problem},
		{name: "product", texts: []string{"Introducing SilkFix, made with argan oil."}, want: Product},
		{name: "benefit", texts: []string{"Visible results in just 7 days."}, want: Benefit},
		{name: "promotion", texts: []string{"Order today for 50% OFF and free shipping."}, want: Promotion},
		{name: "chinese promotion", texts: []string{"限时优惠，今天下单立减五十"}, want: Promotion},
		{name: "nothing", texts: []string{"The weather is nice."}, want: None},
		{name: "combined texts", texts: []string{"ok", "buy now, coupon inside"}, want: Promotion},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, hits := l.Label(tc.texts...)
			if got != tc.want {
				t.Fatalf("Label = %q (%d hits), want %q", got, hits, tc.want)
			}
			if tc.want == None && hits != 0 {
				t.Fatalf("None with %d hits", hits)
			}
		})
	}
}

func TestLabel_TieBreaksInNarrativeOrder(t *testing.T) {
	l := New(Table{
		Benefit:   {"alpha"},
		Problem:   {"beta"},
		Promotion: {"gamma"},
	})
	got, hits := l.Label("gamma alpha beta")
	if got != Problem || hits != 1 {
		t.Fatalf("Label = %q/%d, want problem/1", got, hits)
	}
}
