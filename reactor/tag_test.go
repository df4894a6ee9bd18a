package reactor

import (
	"testing"

	"github.com/bthrall/pistache/poller"
)

func TestTagRoundTrip(t *testing.T) {
	fd := poller.Fd(17)
	var gen uint32 = 42

	tag := tagFor(fd, gen)

	if got := fdFromTag(tag); got != fd {
		t.Fatalf("fdFromTag: got %d, want %d", got, fd)
	}
	if got := genFromTag(tag); got != gen {
		t.Fatalf("genFromTag: got %d, want %d", got, gen)
	}
}

func TestTagDistinguishesGenerations(t *testing.T) {
	fd := poller.Fd(3)
	older := tagFor(fd, 1)
	newer := tagFor(fd, 2)

	if older == newer {
		t.Fatal("expected distinct tags for distinct generations of the same fd")
	}
}
