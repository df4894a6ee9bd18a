package version

import "testing"

func TestParseKnownVersions(t *testing.T) {
	cases := map[string]Version{"HTTP/1.0": HTTP10, "HTTP/1.1": HTTP11}
	for raw, want := range cases {
		got, ok := Parse([]byte(raw))
		if !ok || got != want {
			t.Fatalf("Parse(%q): got (%v, %v), want (%v, true)", raw, got, ok, want)
		}
	}
}

func TestParseRejectsUnknownVersion(t *testing.T) {
	if _, ok := Parse([]byte("HTTP/2.0")); ok {
		t.Fatal("expected no match for HTTP/2.0")
	}
}
