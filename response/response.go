// Package response builds and serializes outgoing HTTP/1.1 responses
// into a fixed slab buffer, grounded on http.cc's Response::send and
// generalized per spec.md §4.5.
package response

import (
	"bytes"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/bthrall/pistache/errors"
	"github.com/bthrall/pistache/future"
	"github.com/bthrall/pistache/headers"
	"github.com/bthrall/pistache/mime"
	"github.com/bthrall/pistache/status"
)

// Sender writes a fully serialized response to its peer and resolves a
// future with the number of bytes handed to the OS. conn.Connection
// implements this.
type Sender interface {
	Send(buf []byte) (*future.Future, error)
}

// Response accumulates headers for a single reply and serializes them
// together with a status code and body when Send is called. It holds a
// weak reference to its peer in spirit: calling Send after the
// connection is gone surfaces as an error from the Sender, not a panic
// (http.cc's Response::peer() throwing on an expired weak_ptr).
type Response struct {
	peer    Sender
	headers *headers.Collection
	buf     []byte
}

// New returns a Response bound to peer, with a serialization buffer
// sized to 2×maxBuffer — matching the source's bufSize(Const::MaxBuffer
// << 1) headroom for status line, headers, and body together.
func New(peer Sender, maxBuffer int) *Response {
	return &Response{
		peer:    peer,
		headers: headers.NewCollection(),
		buf:     make([]byte, 2*maxBuffer),
	}
}

// Headers returns the collection a handler can add response headers to
// before calling Send.
func (r *Response) Headers() *headers.Collection {
	return r.headers
}

// Send writes a status-only response with no body.
func (r *Response) Send(code status.Code) (*future.Future, error) {
	return r.SendBody(code, nil, mime.Invalid)
}

// SendError serializes err's status code and a default JSON body
// describing the failure, used by the connection's handler-error
// conversion path (spec.md §4.4, §7).
func (r *Response) SendError(err *errors.HTTPError) (*future.Future, error) {
	body, marshalErr := jsoniter.ConfigFastest.Marshal(err)
	if marshalErr != nil {
		body = []byte(`{"error":"` + status.Reason(err.Code) + `"}`)
	}
	return r.SendBody(err.Code, body, mime.ApplicationJSON)
}

// SendBody writes code, headers, and body to the peer's buffer and hands
// it off for transmission, matching the source's Response::send(code,
// body, mime) field order: status line, Content-Type (set-or-append),
// every accumulated header, then Content-Length + body or a bare CRLF.
func (r *Response) SendBody(code status.Code, body []byte, m mime.MediaType) (*future.Future, error) {
	var out bytes.Buffer

	out.WriteString("HTTP/1.1 ")
	out.WriteString(strconv.Itoa(int(code)))
	out.WriteByte(' ')
	out.WriteString(status.Reason(code))
	out.WriteString("\r\n")

	if m.IsValid() {
		if ct, ok := headers.TryGet[*headers.ContentType](r.headers); ok {
			ct.SetMime(m)
		} else {
			r.headers.Set(&headers.ContentType{MIME: m})
		}
	}

	if len(body) > 0 {
		r.headers.Set(&headers.ContentLength{Value: len(body)})
	}

	if _, err := r.headers.WriteTo(&out); err != nil {
		return nil, err
	}
	out.WriteString("\r\n")

	if len(body) > 0 {
		out.Write(body)
	}

	n := copy(r.buf, out.Bytes())
	if n < out.Len() {
		return nil, errors.InternalServerError("response exceeded serialization buffer")
	}

	return r.peer.Send(r.buf[:n])
}

// Reset clears accumulated headers so the Response can be reused for the
// next request on the same connection.
func (r *Response) Reset() {
	r.headers.Reset()
}
