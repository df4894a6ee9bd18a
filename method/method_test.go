package method

import "testing"

func TestParseKnownMethods(t *testing.T) {
	for _, m := range List {
		got, ok := Parse([]byte(m.String()))
		if !ok || got != m {
			t.Fatalf("Parse(%q): got (%v, %v), want (%v, true)", m.String(), got, ok, m)
		}
	}
}

func TestParseUnknownMethod(t *testing.T) {
	if _, ok := Parse([]byte("FROBNICATE")); ok {
		t.Fatal("expected no match for an unrecognized method token")
	}
}
