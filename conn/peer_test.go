package conn

import "testing"

func TestQueuePendingCopiesInput(t *testing.T) {
	p := newPeer(0, 1)

	buf := []byte("hello")
	p.queuePending(buf)

	// Mutate the caller's slice in place, as response.Response does when
	// it reuses its serialization buffer for the next response on the
	// same connection.
	copy(buf, "XXXXX")

	got := p.popPending()
	if string(got) != "hello" {
		t.Fatalf("popPending: got %q, want %q (queuePending must copy, not alias)", got, "hello")
	}
}
