package status

import "testing"

func TestReasonKnownCodes(t *testing.T) {
	cases := map[Code]string{
		OK:         "OK",
		NotFound:   "Not Found",
		BadRequest: "Bad Request",
	}
	for code, want := range cases {
		if got := Reason(code); got != want {
			t.Fatalf("Reason(%d): got %q, want %q", code, got, want)
		}
	}
}

func TestReasonFallsBackForUnknownCode(t *testing.T) {
	if got := Reason(Code(999)); got != reasons[InternalServerError] {
		t.Fatalf("Reason(999): got %q, want fallback %q", got, reasons[InternalServerError])
	}
}
