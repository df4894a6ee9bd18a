package mime

import "testing"

func TestIsValidKnownTypes(t *testing.T) {
	for _, m := range []MediaType{TextPlain, TextHTML, ApplicationJSON, OctetStream} {
		if !m.IsValid() {
			t.Fatalf("IsValid(%q): got false, want true", m)
		}
	}
}

func TestIsValidRejectsUnknownType(t *testing.T) {
	if MediaType("application/xml").IsValid() {
		t.Fatal("expected application/xml to be invalid (not in the fixed table)")
	}
	if Invalid.IsValid() {
		t.Fatal("expected the empty MediaType to be invalid")
	}
}
