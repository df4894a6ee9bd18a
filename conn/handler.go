package conn

import (
	"github.com/bthrall/pistache/parser"
	"github.com/bthrall/pistache/response"
)

// Handler is the interface user code implements to receive connection
// lifecycle events and requests. Grounded on http.cc's Handler contract
// (spec.md §4.4).
type Handler interface {
	// OnConnection is invoked once per accepted connection, before any
	// input arrives.
	OnConnection(peer *Peer)
	// OnRequest is invoked once per fully parsed request. The core never
	// calls into user code otherwise. Returning an *errors.HTTPError
	// (see the errors package) sends that status; any other error or a
	// panic inside OnRequest becomes a 500 carrying its message.
	OnRequest(req *parser.Request, resp *response.Response) error
	// OnDisconnection is invoked once when the connection closes.
	OnDisconnection(peer *Peer)
}
