//go:build linux

package poller

import (
	"errors"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// tagPtr reinterprets the Fd/Pad pair of an unix.EpollEvent — the Go
// mirror of the kernel's epoll_data_t union — as a single uint64, so a
// Tag can ride through the kernel in the space normally used for a raw
// fd or pointer. Both fields are adjacent and together exactly 8 bytes
// on every platform x/sys/unix supports epoll on.
func tagPtr(ev *unix.EpollEvent) *Tag {
	return (*Tag)(unsafe.Pointer(&ev.Fd))
}

// Epoll is the linux/unix.EpollCreate1-backed Poller, grounded on
// os.cc's Polling::Epoll (addFd/addFdOneShot/rearmFd/removeFd/poll) and
// the teacher's server/engine/epoll.go wrapper around unix.EpollWait.
type Epoll struct {
	fd int
}

var _ Poller = (*Epoll)(nil)

// Create opens a new epoll instance. maxEventsHint sizes nothing here
// (Poll takes its own output slice) but is accepted to mirror the
// source's Epoll::init(size) signature.
func Create(maxEventsHint int) (*Epoll, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &Epoll{fd: fd}, nil
}

func toEpollEvents(i Interest, mode Mode, oneshot bool) uint32 {
	var events uint32
	if i.Has(Read) {
		events |= unix.EPOLLIN
	}
	if i.Has(Write) {
		events |= unix.EPOLLOUT
	}
	if i.Has(Hangup) {
		events |= unix.EPOLLRDHUP
	}
	if mode == Edge {
		events |= unix.EPOLLET
	}
	if oneshot {
		events |= unix.EPOLLONESHOT
	}
	return events
}

func fromEpollEvents(events uint32) Interest {
	var i Interest
	if events&(unix.EPOLLIN|unix.EPOLLPRI) != 0 {
		i |= Read
	}
	if events&unix.EPOLLOUT != 0 {
		i |= Write
	}
	if events&(unix.EPOLLHUP|unix.EPOLLRDHUP|unix.EPOLLERR) != 0 {
		i |= Hangup
	}
	return i
}

func (e *Epoll) ctl(op int, fd Fd, interest Interest, tag Tag, mode Mode, oneshot bool) error {
	ev := unix.EpollEvent{Events: toEpollEvents(interest, mode, oneshot)}
	*tagPtr(&ev) = tag
	return unix.EpollCtl(e.fd, op, int(fd), &ev)
}

// AddFd registers fd for level- or edge-triggered notification.
func (e *Epoll) AddFd(fd Fd, interest Interest, tag Tag, mode Mode) error {
	return e.ctl(unix.EPOLL_CTL_ADD, fd, interest, tag, mode, false)
}

// AddFdOneShot registers fd so it delivers at most one event before
// RearmFd is called again.
func (e *Epoll) AddFdOneShot(fd Fd, interest Interest, tag Tag, mode Mode) error {
	return e.ctl(unix.EPOLL_CTL_ADD, fd, interest, tag, mode, true)
}

// RearmFd updates an existing registration and re-enables a one-shot fd.
func (e *Epoll) RearmFd(fd Fd, interest Interest, tag Tag, mode Mode) error {
	return e.ctl(unix.EPOLL_CTL_MOD, fd, interest, tag, mode, true)
}

// RemoveFd deregisters fd. ENOENT is swallowed: the fd may already have
// been dropped by the kernel on close(2).
func (e *Epoll) RemoveFd(fd Fd) error {
	err := unix.EpollCtl(e.fd, unix.EPOLL_CTL_DEL, int(fd), nil)
	if errors.Is(err, unix.ENOENT) {
		return nil
	}
	return err
}

// Poll waits for readiness and appends up to maxEvents Events to out.
//
// Every entry the kernel reports is translated with both its Tag and its
// full Interest set, unlike the source's Epoll::poll (os.cc), which
// builds a flags value per entry and then pushes only the tag —
// discarding the flags it just computed. See SPEC_FULL.md's "Poller
// event/flags bug" resolution.
func (e *Epoll) Poll(out []Event, maxEvents int, timeoutMillis int) (int, error) {
	if maxEvents > len(out) {
		maxEvents = len(out)
	}
	raw := make([]unix.EpollEvent, maxEvents)

	n, err := unix.EpollWait(e.fd, raw, timeoutMillis)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, err
	}

	for i := 0; i < n; i++ {
		out[i] = Event{
			Tag:      *tagPtr(&raw[i]),
			Interest: fromEpollEvents(raw[i].Events),
		}
	}
	return n, nil
}

// Close releases the epoll fd.
func (e *Epoll) Close() error {
	return unix.Close(e.fd)
}

// blockForever is the timeout value handed to EpollWait for an
// indefinite wait, kept as a named constant so callers translating a
// time.Duration don't have to remember epoll's sentinel.
const blockForever = -1

// millis converts a time.Duration to the millisecond timeout EpollWait
// expects, clamping a negative duration to blockForever.
func millis(d time.Duration) int {
	if d < 0 {
		return blockForever
	}
	return int(d / time.Millisecond)
}
