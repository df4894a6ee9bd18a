// Package parser implements the incremental, zero-copy-where-possible
// HTTP/1.x request parser: a three-step state machine (request line →
// headers → body) driven across repeated Feed calls, grounded on
// http.cc's Private::Parser and its RequestLineStep/HeadersStep/BodyStep
// (spec.md §4.2, §4.3).
package parser

import (
	"github.com/bthrall/pistache/streambuf"
)

var allSteps = [...]step{
	requestLineStep{},
	headersStep{},
	bodyStep{},
}

// Parser holds one in-progress Request plus the buffer and cursor it is
// being parsed from. A Parser is owned by exactly one connection and
// reused across every request on it (spec.md §4.4).
type Parser struct {
	buf       *streambuf.Buffer
	cursor    *streambuf.Cursor
	request   *Request
	current   int
	bytesRead int
}

// New returns a Parser with the given maximum buffered-request size.
func New(maxBuffer int) *Parser {
	buf := streambuf.NewBuffer(maxBuffer)
	return &Parser{
		buf:     buf,
		cursor:  streambuf.NewCursor(buf),
		request: newRequest(),
	}
}

// Feed appends data to the parser's buffer. It returns false if data
// would exceed the configured maximum buffered size, in which case the
// buffer is left unchanged and the caller should fail the connection
// with 413 (spec.md §4.3, §7).
func (p *Parser) Feed(data []byte) bool {
	return p.buf.Feed(data)
}

// Parse drives the state machine as far as it can go with the bytes
// currently buffered, mirroring the source's Parser::parse() do/while
// loop over State::Next.
//
// It returns (nil, Again, nil) when more bytes are needed, (req, Done,
// nil) when a full request is ready, or (nil, Again, err) when a step
// rejected the input outright (a parse error, not a truncation).
func (p *Parser) Parse() (*Request, State, error) {
	state := Again
	for {
		s, err := allSteps[p.current].apply(p)
		if err != nil {
			return nil, Again, err
		}
		state = s
		if state != Next {
			break
		}
		p.current++
	}

	if state == Done {
		return p.request, Done, nil
	}
	return nil, Again, nil
}

// Reset clears the parser for the next request, discarding any
// unconsumed bytes — callers that need to preserve a pipelined remainder
// must copy it out before calling Reset and Feed it back in afterward
// (spec.md §9's Content-Length buffer-retention policy). Matches the
// source's Parser::reset.
func (p *Parser) Reset() {
	p.buf.Reset()
	p.cursor.Reset()
	p.current = 0
	p.bytesRead = 0
	p.request.reset()
}

// Unconsumed returns the bytes remaining in the buffer past the cursor's
// current position — the start of the next pipelined request, if any.
func (p *Parser) Unconsumed() []byte {
	return p.cursor.Peek(p.cursor.Remaining())
}
