package parser

import (
	"github.com/bthrall/pistache/headers"
	"github.com/bthrall/pistache/method"
	"github.com/bthrall/pistache/query"
	"github.com/bthrall/pistache/version"
)

// Request is a fully or partially parsed HTTP/1.x request. A Parser owns
// exactly one Request and resets it in place between messages (spec.md
// §4.2, §4.3).
type Request struct {
	Method   method.Method
	Resource string
	Query    *query.Query
	Version  version.Version
	Headers  *headers.Collection
	Body     []byte
}

func newRequest() *Request {
	return &Request{
		Query:   query.New(),
		Headers: headers.NewCollection(),
	}
}

// reset clears a Request in place for reuse, matching the source's
// Parser::reset (http.cc), which clears headers/body/resource rather
// than reallocating the Request.
func (r *Request) reset() {
	r.Method = method.Unknown
	r.Resource = ""
	r.Query.Reset()
	r.Version = version.Unknown
	r.Headers.Reset()
	r.Body = r.Body[:0]
}
