// Package reactor ties the Poller, Parser, and Handler layers together
// into a running server: N worker goroutines, each single-threaded over
// its own connections, fed by a dedicated accept loop. Grounded on the
// teacher's server/engine/epoll.go StartEpoll/startWorkerPool shape,
// generalized per spec.md §5, §6.
package reactor

import (
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/bthrall/pistache/conn"
	"github.com/bthrall/pistache/config"
	"github.com/bthrall/pistache/poller"
)

// Reactor runs the accept loop and owns the worker pool. Bind and Run
// mirror spec.md §6's Listener contract; the handler is given to New and
// there is no separate setter.
type Reactor struct {
	opts    config.Options
	handler conn.Handler
	logger  *slog.Logger

	listenFd poller.Fd
	workers  []*worker
}

// New constructs a Reactor whose connections all dispatch to handler;
// logger defaults to slog.Default() if nil.
func New(opts config.Options, handler conn.Handler, logger *slog.Logger) *Reactor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	return &Reactor{opts: opts, handler: handler, logger: logger}
}

// Bind opens the listening socket. Bind failures are fatal to the
// process per spec.md §6's CLI surface note.
func (r *Reactor) Bind() error {
	fd, err := bind(r.opts)
	if err != nil {
		return err
	}
	r.listenFd = fd
	return nil
}

// Run starts the worker pool and blocks accepting connections, sharding
// each one round-robin across workers. It returns only if accept(2)
// fails unrecoverably.
func (r *Reactor) Run() error {
	r.workers = make([]*worker, r.opts.Threads)
	for i := range r.workers {
		w, err := newWorker(i, r.handler, r.opts, r.logger)
		if err != nil {
			return err
		}
		r.workers[i] = w
		go w.run()
	}

	next := 0
	for {
		nfd, _, err := unix.Accept(int(r.listenFd))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		r.workers[next].accept(poller.Fd(nfd))
		next = (next + 1) % len(r.workers)
	}
}
