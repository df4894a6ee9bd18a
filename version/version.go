// Package version defines the two HTTP versions this framework accepts on
// a request line. Responses always report HTTP/1.1 regardless of the
// request's version (see response.Response.Send).
package version

// Version is one of the two request-line protocol tokens this parser
// accepts. Anything else fails the request line step with Bad_Request.
type Version uint8

const (
	Unknown Version = iota
	HTTP10
	HTTP11
)

func (v Version) String() string {
	switch v {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	default:
		return "HTTP/?.?"
	}
}

// Parse matches the exact version token captured after the request-line's
// second SP. No other spelling is accepted.
func Parse(raw []byte) (Version, bool) {
	switch string(raw) {
	case "HTTP/1.0":
		return HTTP10, true
	case "HTTP/1.1":
		return HTTP11, true
	default:
		return Unknown, false
	}
}
