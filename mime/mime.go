// Package mime holds the small, fixed table of media types the response
// serializer knows how to stamp onto a Content-Type header. The MIME
// registry proper (content negotiation, extension lookup) is out of scope
// per spec.md's non-goals; this is the minimal opaque value the core
// touches.
package mime

// MediaType is an opaque, pre-validated media type string.
type MediaType string

const (
	Invalid        MediaType = ""
	TextPlain      MediaType = "text/plain"
	TextHTML       MediaType = "text/html"
	ApplicationJSON MediaType = "application/json"
	OctetStream    MediaType = "application/octet-stream"
)

// IsValid reports whether m is a non-empty, known media type.
func (m MediaType) IsValid() bool {
	switch m {
	case TextPlain, TextHTML, ApplicationJSON, OctetStream:
		return true
	default:
		return false
	}
}

// String returns the wire representation of m.
func (m MediaType) String() string {
	return string(m)
}
