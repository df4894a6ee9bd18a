package poller

import "testing"

func TestInterestHas(t *testing.T) {
	i := Read | Hangup

	if !i.Has(Read) {
		t.Fatal("expected Read to be set")
	}
	if i.Has(Write) {
		t.Fatal("did not expect Write to be set")
	}
	if !i.Has(Hangup) {
		t.Fatal("expected Hangup to be set")
	}
}

func TestEpollAddPollRemove(t *testing.T) {
	ep, err := Create(64)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer ep.Close()

	r, w, err := pipeFds(t)
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer closeFd(r)
	defer closeFd(w)

	const tag Tag = 0xdeadbeef
	if err := ep.AddFd(r, Read, tag, Edge); err != nil {
		t.Fatalf("AddFd: %v", err)
	}

	writeByte(t, w)

	out := make([]Event, 8)
	n, err := ep.Poll(out, len(out), 1000)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 event, got %d", n)
	}
	if out[0].Tag != tag {
		t.Fatalf("expected tag %v, got %v", tag, out[0].Tag)
	}
	if !out[0].Interest.Has(Read) {
		t.Fatalf("expected Read interest, got %v", out[0].Interest)
	}

	if err := ep.RemoveFd(r); err != nil {
		t.Fatalf("RemoveFd: %v", err)
	}
	// Removing twice must not error: the second call models removal
	// racing a kernel-side close.
	if err := ep.RemoveFd(r); err != nil {
		t.Fatalf("RemoveFd after already removed: %v", err)
	}
}
