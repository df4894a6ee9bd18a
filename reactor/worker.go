package reactor

import (
	"errors"
	"log/slog"

	"github.com/dchest/uniuri"
	"golang.org/x/sys/unix"

	"github.com/bthrall/pistache/conn"
	"github.com/bthrall/pistache/config"
	"github.com/bthrall/pistache/poller"
)

// pollTimeoutMillis bounds how long a worker's Poll call blocks, so it
// periodically drains newly accepted fds off its incoming channel. This
// is the "poll timeout governs wake-up frequency" knob spec.md's
// concurrency model explicitly leaves to the implementation.
const pollTimeoutMillis = 50

// entry is one live connection slot: the Connection itself plus the
// generation its current poller registration was tagged with.
type entry struct {
	conn *conn.Connection
	gen  uint32
	id   string
}

// worker owns one Poller and one connection table exclusively; all I/O
// and handler dispatch for its connections happens on this goroutine
// alone (spec.md §5).
type worker struct {
	id        int
	ep        *poller.Epoll
	handler   conn.Handler
	maxBuffer int
	incoming  chan poller.Fd
	logger    *slog.Logger

	conns   map[poller.Fd]*entry
	nextGen uint32
}

func newWorker(id int, handler conn.Handler, opts config.Options, logger *slog.Logger) (*worker, error) {
	ep, err := poller.Create(opts.MaxEvents)
	if err != nil {
		return nil, err
	}
	return &worker{
		id:        id,
		ep:        ep,
		handler:   handler,
		maxBuffer: opts.MaxBuffer,
		incoming:  make(chan poller.Fd, 128),
		logger:    logger,
		conns:     make(map[poller.Fd]*entry),
	}, nil
}

// accept hands a freshly accepted fd to this worker for registration on
// its next loop iteration.
func (w *worker) accept(fd poller.Fd) {
	w.incoming <- fd
}

// run is the worker's readiness loop: drain pending accepts, poll,
// dispatch, repeat. It returns only on a fatal Poller error (spec.md §7's
// PollFailure row — fatal to the worker).
func (w *worker) run() {
	events := make([]poller.Event, 128)
	for {
		w.drainIncoming()

		n, err := w.ep.Poll(events, len(events), pollTimeoutMillis)
		if err != nil {
			w.logger.Error("poller failed, worker exiting", "worker", w.id, "err", err)
			return
		}

		for i := 0; i < n; i++ {
			w.handleEvent(events[i])
		}
	}
}

func (w *worker) drainIncoming() {
	for {
		select {
		case fd := <-w.incoming:
			w.register(fd)
		default:
			return
		}
	}
}

func (w *worker) handleEvent(ev poller.Event) {
	fd := fdFromTag(ev.Tag)
	e, ok := w.conns[fd]
	if !ok || e.gen != genFromTag(ev.Tag) {
		return
	}

	if ev.Interest.Has(poller.Hangup) {
		w.close(fd)
		return
	}

	if ev.Interest.Has(poller.Write) {
		drained, err := e.conn.FlushPending()
		if err != nil {
			w.close(fd)
			return
		}
		if drained {
			w.rearm(fd, e, poller.Read|poller.Hangup)
		}
	}

	if ev.Interest.Has(poller.Read) {
		if !w.drainReadable(fd, e) {
			return
		}
		if e.conn.HasPendingWrites() {
			w.rearm(fd, e, poller.Read|poller.Write|poller.Hangup)
		}
	}
}

// drainReadable reads fd until it would block, matching the edge-
// triggered obligation in spec.md §5: an edge-mode readable event must be
// drained fully before returning to Poll. Returns false if the
// connection was closed while draining.
func (w *worker) drainReadable(fd poller.Fd, e *entry) bool {
	buf := make([]byte, 4096)
	for {
		n, err := unix.Read(int(fd), buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				return true
			}
			w.close(fd)
			return false
		}
		if n == 0 {
			w.close(fd)
			return false
		}
		e.conn.OnInput(buf[:n])
	}
}

func (w *worker) register(fd poller.Fd) {
	unix.SetNonblock(int(fd), true)

	gen := w.nextGen
	w.nextGen++
	id := uniuri.NewLen(8)

	c := conn.New(fd, tagFor(fd, gen), w.handler, w.maxBuffer)
	w.conns[fd] = &entry{conn: c, gen: gen, id: id}

	if err := w.ep.AddFd(fd, poller.Read|poller.Hangup, tagFor(fd, gen), poller.Edge); err != nil {
		w.logger.Warn("failed to register connection", "worker", w.id, "conn", id, "err", err)
		w.close(fd)
		return
	}
	w.logger.Info("connection accepted", "worker", w.id, "conn", id, "fd", int(fd))
}

func (w *worker) rearm(fd poller.Fd, e *entry, interest poller.Interest) {
	if err := w.ep.RearmFd(fd, interest, tagFor(fd, e.gen), poller.Edge); err != nil {
		w.logger.Warn("failed to rearm connection", "worker", w.id, "conn", e.id, "err", err)
		w.close(fd)
	}
}

func (w *worker) close(fd poller.Fd) {
	e, ok := w.conns[fd]
	if !ok {
		return
	}
	delete(w.conns, fd)
	_ = w.ep.RemoveFd(fd)
	_ = unix.Close(int(fd))
	e.conn.Close()
	w.logger.Info("connection closed", "worker", w.id, "conn", e.id)
}
