// Package streambuf implements the resumable byte cursor and append-only
// buffer the HTTP parser lexes over. Grounded on http.cc's StreamCursor /
// Buffer / Token / Revert (spec.md §4.2).
package streambuf

// DefaultMaxBuffer matches the teacher's maxRequestSize (1<<16 - 1), the
// largest single request this framework will buffer before rejecting it
// with Request_Entity_Too_Large.
const DefaultMaxBuffer = 1<<16 - 1

// Buffer is a contiguous, growable byte region with a fixed maximum
// capacity. It never shrinks except on Reset.
type Buffer struct {
	data []byte
	max  int
}

// NewBuffer returns an empty Buffer capped at max bytes.
func NewBuffer(max int) *Buffer {
	return &Buffer{max: max}
}

// Feed appends data to the buffer. It returns false, leaving the buffer
// unchanged, if the append would exceed the maximum capacity.
func (b *Buffer) Feed(data []byte) bool {
	if len(b.data)+len(data) > b.max {
		return false
	}
	b.data = append(b.data, data...)
	return true
}

// Len returns the number of bytes currently buffered.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset truncates the buffer back to empty without releasing its
// underlying array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}
