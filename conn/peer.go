// Package conn is the glue between Poller events and the Parser: the
// boundary where user Handler code sees Request/Response pairs. Grounded
// on http.cc's Handler::onInput/onConnection/onDisconnection and the
// teacher's server/engine.Session arena-per-socket model, generalized to
// spec.md §4.4.
package conn

import (
	"github.com/eapache/queue"

	"github.com/bthrall/pistache/poller"
)

// Peer is a per-connection handle exposed to Handler code: send bytes,
// stash arbitrary per-connection state, and observe whether the
// underlying socket is still alive. Grounded on http.cc's Tcp::Peer.
type Peer struct {
	fd    poller.Fd
	tag   poller.Tag
	alive bool
	data  map[string]any

	pending *queue.Queue
}

func newPeer(fd poller.Fd, tag poller.Tag) *Peer {
	return &Peer{
		fd:      fd,
		tag:     tag,
		alive:   true,
		data:    make(map[string]any),
		pending: queue.New(),
	}
}

// Fd returns the peer's underlying file descriptor.
func (p *Peer) Fd() poller.Fd {
	return p.fd
}

// Alive reports whether the connection is still open. A Response's
// Send on a dead peer must fail synchronously with ErrClosed, mirroring
// the source's BrokenPipe-on-expired-weak_ptr behavior.
func (p *Peer) Alive() bool {
	return p.alive
}

// PutData stashes a value under key for the lifetime of the connection.
func (p *Peer) PutData(key string, value any) {
	p.data[key] = value
}

// GetData retrieves a previously stashed value.
func (p *Peer) GetData(key string) (any, bool) {
	v, ok := p.data[key]
	return v, ok
}

// queuePending appends a write that could not be fully flushed to the
// socket without blocking, for the reactor to retry on the next writable
// edge. Using eapache/queue here rather than a slice avoids O(n) copies
// on repeated partial-write retries under sustained backpressure.
//
// b is copied before queuing: callers (response.Response.SendBody via
// conn.Connection.Send) pass a slice of a buffer they reuse for every
// response on the connection, and a pipelined request's response would
// otherwise overwrite bytes still sitting in this queue before they
// reach the socket.
func (p *Peer) queuePending(b []byte) {
	p.pending.Add(append([]byte(nil), b...))
}

func (p *Peer) hasPending() bool {
	return p.pending.Length() > 0
}

func (p *Peer) popPending() []byte {
	b := p.pending.Peek().([]byte)
	p.pending.Remove()
	return b
}

// requeueFront puts b back at the head of the pending queue — used when
// a retried write only partially drains, so the rest of that same chunk
// goes out before anything queued after it. eapache/queue only supports
// push-back, so this rebuilds the queue once per partial write.
func (p *Peer) requeueFront(b []byte) {
	rest := p.pending
	p.pending = queue.New()
	p.pending.Add(b)
	for rest.Length() > 0 {
		p.pending.Add(rest.Peek())
		rest.Remove()
	}
}
