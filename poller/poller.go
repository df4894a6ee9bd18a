// Package poller is a thin façade over the OS readiness-notification
// primitive (epoll on Linux). Grounded on os.cc's Polling::Epoll and the
// teacher's server/engine/epoll.go, generalized to the spec.md §4.1
// contract and rebuilt on golang.org/x/sys/unix instead of raw syscall
// numbers (following LeGamerDc-gio's and momentics-hioload-ws's choice of
// dependency for the same concern).
package poller

// Fd is an OS file-descriptor handle, owned by exactly one connection for
// its lifetime.
type Fd int

// Tag is an opaque 64-bit correlation value returned verbatim on every
// Event for the Fd it was registered with. The reactor packs a
// connection-table index and a generation counter into it so a stale tag
// from a closed-then-reused slot can be detected.
type Tag uint64

// Interest is a set over the readiness capability alphabet.
type Interest uint8

const (
	Read Interest = 1 << iota
	Write
	Hangup
)

// Has reports whether i includes capability c.
func (i Interest) Has(c Interest) bool {
	return i&c != 0
}

// Mode selects level- or edge-triggered notification for a registration.
type Mode uint8

const (
	// Level delivers an event every time Poll is called while the fd
	// remains ready.
	Level Mode = iota
	// Edge delivers an event only on the not-ready→ready transition; the
	// owner must then drain the fd until it reports would-block before
	// returning to Poll (spec.md §5).
	Edge
)

// Event is a single readiness notification: which registration it
// belongs to (Tag) and which capabilities became ready (Interest). Unlike
// the source's Epoll::poll (os.cc), which constructs the flags but drops
// them before pushing into the output vector, this always carries both
// fields — see SPEC_FULL.md's "Poller event/flags bug" resolution.
type Event struct {
	Tag      Tag
	Interest Interest
}

// Poller is the readiness-notification handle a reactor worker owns
// exclusively. Construction failure is fatal to the process; per-call
// failures from Add/Remove/Rearm are recoverable and propagate to the
// caller, which closes the offending connection (spec.md §4.1, §7).
type Poller interface {
	// AddFd registers fd for interest, tagging every future event for it
	// with tag.
	AddFd(fd Fd, interest Interest, tag Tag, mode Mode) error
	// AddFdOneShot is like AddFd, but the poller emits at most one more
	// event for fd before the owner calls RearmFd.
	AddFdOneShot(fd Fd, interest Interest, tag Tag, mode Mode) error
	// RearmFd atomically updates an existing registration's interest set
	// and tag, re-enabling a one-shot fd.
	RearmFd(fd Fd, interest Interest, tag Tag, mode Mode) error
	// RemoveFd deregisters fd. Must tolerate events for fd already
	// in-flight; they may still be delivered once more.
	RemoveFd(fd Fd) error
	// Poll blocks up to timeoutMillis (negative blocks indefinitely, zero
	// is a nonblocking probe), appends up to maxEvents Events to out, and
	// returns how many were appended. Returns 0 on timeout, an error on
	// fatal failure.
	Poll(out []Event, maxEvents int, timeoutMillis int) (int, error)
	// Close releases the underlying notification handle.
	Close() error
}
