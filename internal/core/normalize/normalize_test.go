package normalize

import (
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity ascii", in: "limited offer", out: "limited offer"},
		{name: "utf8 repair drops invalid bytes", in: string([]byte{0xff, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}), out: "foo bar"},
		{name: "case fold", in: "FREE Shipping", out: "free shipping"},
		{name: "remove zero-widths", in: "sa\u200Ble\u200D", out: "sale"},
		{name: "combining marks composed by nfkc", in: "cafe\u0301", out: "caf\u00e9"},
		{name: "width fold fullwidth", in: "ＳＡＬＥ now", out: "sale now"},
		{name: "nfkc ligature", in: "oﬃce", out: "office"},
		{name: "cjk untouched", in: "限时优惠", out: "限时优惠"},
		{name: "fullwidth digits", in: "５０％", out: "50%"},
		{name: "collapse whitespace", in: "a\t\tb\nc   d", out: "a b c d"},
		{name: "trim edges", in: "  \n buy now \t", out: "buy now"},
		{name: "control chars dropped", in: "buy\x00 now\x7f", out: "buy now"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// normalizing twice changes nothing
			if got2 := n.Normalize(got); got2 != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, got2)
			}
		})
	}
}

func TestCountTerms(t *testing.T) {
	n := New()

	tests := []struct {
		name  string
		hay   string
		terms []string
		want  int
	}{
		{name: "empty haystack", hay: "", terms: []string{"sale"}, want: 0},
		{name: "no terms", hay: "big sale", terms: nil, want: 0},
		{name: "case and width folded", hay: "ＢＩＧ Sale today, sale ends soon", terms: []string{"SALE"}, want: 2},
		{name: "multiple terms", hay: "discount code and free shipping", terms: []string{"discount", "free shipping", "coupon"}, want: 2},
		{name: "blank term ignored", hay: "anything", terms: []string{"  "}, want: 0},
		{name: "cjk", hay: "今天下单立减五十，立减到手", terms: []string{"立减"}, want: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.CountTerms(tc.hay, tc.terms); got != tc.want {
				t.Fatalf("CountTerms(%q, %v) = %d, want %d", tc.hay, tc.terms, got, tc.want)
			}
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	in := " \t a \n b   c \r\n "
	want := "a b c"
	if got := collapseSpaces(in); got != want {
		t.Fatalf("collapseSpaces(%q) = %q, want %q", in, got, want)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"clean line\twith tab\r\n", "clean line\twith tab\r\n"},
		{"nul\x00 del\x7f bell\a", "nul del bell"},
		{"c1 \u0085next", "c1 next"},
		{"bad \xff\xfe bytes", "bad  bytes"},
		{"限时​优惠", "限时​优惠"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
