package conn

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	httperrors "github.com/bthrall/pistache/errors"
	"github.com/bthrall/pistache/future"
	"github.com/bthrall/pistache/parser"
	"github.com/bthrall/pistache/poller"
	"github.com/bthrall/pistache/response"
)

// Connection binds one socket fd to its Parser, its reusable Response,
// and the Handler that receives its requests. It is owned by exactly one
// reactor worker for its whole lifetime (spec.md §5).
type Connection struct {
	peer    *Peer
	parser  *parser.Parser
	resp    *response.Response
	handler Handler
}

// New constructs a Connection for a freshly accepted fd, attaches a
// fresh Parser (the default onConnection behavior described in spec.md
// §4.4), and invokes the handler's OnConnection callback.
func New(fd poller.Fd, tag poller.Tag, handler Handler, maxBuffer int) *Connection {
	c := &Connection{
		peer:    newPeer(fd, tag),
		parser:  parser.New(maxBuffer),
		handler: handler,
	}
	c.resp = response.New(c, maxBuffer)
	handler.OnConnection(c.peer)
	return c
}

// Peer returns the connection's peer handle.
func (c *Connection) Peer() *Peer {
	return c.peer
}

// OnInput feeds newly arrived bytes through the parser, dispatching every
// fully parsed request to the handler and recovering from parse and
// handler errors at the connection level (spec.md §4.4 step 2-4, §7).
func (c *Connection) OnInput(data []byte) {
	if !c.parser.Feed(data) {
		c.parser.Reset()
		c.sendError(httperrors.RequestEntityTooLarge("request exceeded maximum buffer size"))
		return
	}
	c.drain()
}

// drain repeatedly parses and dispatches requests out of the buffered
// bytes, re-feeding any pipelined remainder after each Reset (spec.md §9's
// Content-Length buffer-retention resolution: Reset discards the buffer,
// so the remainder is captured first and fed back in).
func (c *Connection) drain() {
	for {
		req, state, err := c.parser.Parse()
		if err != nil {
			httpErr, ok := httperrors.AsHTTPError(err)
			if !ok {
				httpErr = httperrors.BadRequest(err.Error())
			}
			c.parser.Reset()
			c.sendError(httpErr)
			return
		}
		if state != parser.Done {
			return
		}

		remainder := append([]byte(nil), c.parser.Unconsumed()...)

		c.resp.Reset()
		c.dispatch(req)

		c.parser.Reset()
		if len(remainder) == 0 {
			return
		}
		if !c.parser.Feed(remainder) {
			c.parser.Reset()
			c.sendError(httperrors.RequestEntityTooLarge("request exceeded maximum buffer size"))
			return
		}
	}
}

// dispatch invokes the handler for req, converting a returned
// *errors.HTTPError into that status, any other error into a 500 bearing
// its message, and recovering a panic into a 500 as well (spec.md §4.4
// step 4, §7 HandlerException rows).
func (c *Connection) dispatch(req *parser.Request) {
	err := c.invokeHandler(req)
	if err == nil {
		return
	}
	httpErr, ok := httperrors.AsHTTPError(err)
	if !ok {
		httpErr = httperrors.InternalServerError(err.Error())
	}
	c.sendError(httpErr)
}

func (c *Connection) invokeHandler(req *parser.Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in handler: %v", r)
		}
	}()
	return c.handler.OnRequest(req, c.resp)
}

func (c *Connection) sendError(e *httperrors.HTTPError) {
	// Best-effort: if the peer vanished mid-response there is nothing
	// further to do at this layer.
	_, _ = c.resp.SendError(e)
}

// Send implements response.Sender: it writes buf to the socket
// immediately, queuing any unwritten remainder for the next writable
// edge rather than blocking the worker (spec.md §5 edge-triggered
// contract).
func (c *Connection) Send(buf []byte) (*future.Future, error) {
	if !c.peer.Alive() {
		return nil, httperrors.ErrClosed
	}

	fut, promise := future.New()

	if c.peer.hasPending() {
		c.peer.queuePending(buf)
		promise.Resolve(0)
		return fut, nil
	}

	n, err := unix.Write(int(c.peer.fd), buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			c.peer.queuePending(buf)
			promise.Resolve(0)
			return fut, nil
		}
		promise.Reject(err)
		return fut, nil
	}
	if n < len(buf) {
		c.peer.queuePending(buf[n:])
	}
	promise.Resolve(n)
	return fut, nil
}

// FlushPending retries queued writes on a writable-readiness edge. It
// returns true once the queue has fully drained.
func (c *Connection) FlushPending() (drained bool, err error) {
	for c.peer.hasPending() {
		b := c.peer.popPending()
		n, werr := unix.Write(int(c.peer.fd), b)
		if werr != nil {
			if errors.Is(werr, unix.EAGAIN) {
				c.peer.requeueFront(b)
				return false, nil
			}
			return false, werr
		}
		if n < len(b) {
			c.peer.requeueFront(b[n:])
			return false, nil
		}
	}
	return true, nil
}

// HasPendingWrites reports whether any queued writes are still waiting
// for a writable edge, so the reactor knows whether to keep watching for
// Write readiness on this fd.
func (c *Connection) HasPendingWrites() bool {
	return c.peer.hasPending()
}

// Close marks the connection dead and invokes the handler's
// OnDisconnection callback exactly once.
func (c *Connection) Close() {
	if !c.peer.alive {
		return
	}
	c.peer.alive = false
	c.handler.OnDisconnection(c.peer)
}
