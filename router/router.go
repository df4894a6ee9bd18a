// Package router is an optional path-dispatch layer on top of the core
// Handler contract: it matches a parsed Request's method and resource
// against registered routes and delegates to the matching Handler.
// Adapted from the teacher's server/router package (radix tree over
// path segments), generalized per-method and rebuilt against this
// module's parser.Request and response.Response rather than the
// teacher's arena-based RawRequest.
package router

import (
	"github.com/bthrall/pistache/method"
	"github.com/bthrall/pistache/parser"
	"github.com/bthrall/pistache/response"
)

// Handler is a route's request handler, receiving any captured path
// parameters alongside the parsed request and the response to write to.
type Handler func(req *parser.Request, resp *response.Response, params []Param) error

// Router is a per-method radix tree over path segments.
type Router struct {
	root node
}

// New returns an empty Router.
func New() *Router {
	return &Router{root: newNode()}
}

// Handle registers h for method m at path.
func (r *Router) Handle(m method.Method, path string, h Handler) {
	r.root.insert([]byte(path), m, h)
}

// Get registers a GET route.
func (r *Router) Get(path string, h Handler) { r.Handle(method.GET, path, h) }

// Post registers a POST route.
func (r *Router) Post(path string, h Handler) { r.Handle(method.POST, path, h) }

// Put registers a PUT route.
func (r *Router) Put(path string, h Handler) { r.Handle(method.PUT, path, h) }

// Delete registers a DELETE route.
func (r *Router) Delete(path string, h Handler) { r.Handle(method.DELETE, path, h) }

// Match finds the handler registered for m at path, appending any
// captured parameters to params (caller may pass a reused slice sliced
// to length 0 to avoid allocating per request). Returns (nil, params) on
// no match.
func (r *Router) Match(m method.Method, path string, params []Param) (Handler, []Param) {
	return r.root.match([]byte(path), m, params)
}
