package router

import (
	"github.com/bthrall/pistache/conn"
	"github.com/bthrall/pistache/errors"
	"github.com/bthrall/pistache/parser"
	"github.com/bthrall/pistache/response"
)

// Dispatcher adapts a Router into a conn.Handler: unmatched routes get a
// 404, everything else is delegated to the matched route's Handler.
// Optional Connect/Disconnect hooks stand in for the core's default
// no-op onConnection/onDisconnection (spec.md §4.4).
type Dispatcher struct {
	Router       *Router
	OnConnect    func(peer *conn.Peer)
	OnDisconnect func(peer *conn.Peer)
}

var _ conn.Handler = (*Dispatcher)(nil)

func (d *Dispatcher) OnConnection(peer *conn.Peer) {
	if d.OnConnect != nil {
		d.OnConnect(peer)
	}
}

func (d *Dispatcher) OnDisconnection(peer *conn.Peer) {
	if d.OnDisconnect != nil {
		d.OnDisconnect(peer)
	}
}

func (d *Dispatcher) OnRequest(req *parser.Request, resp *response.Response) error {
	h, params := d.Router.Match(req.Method, req.Resource, nil)
	if h == nil {
		return errors.NotFound("no route matches " + req.Method.String() + " " + req.Resource)
	}
	return h(req, resp, params)
}
