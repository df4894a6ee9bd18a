package parser

import (
	"github.com/bthrall/pistache/errors"
	"github.com/bthrall/pistache/headers"
	"github.com/bthrall/pistache/method"
	"github.com/bthrall/pistache/query"
	"github.com/bthrall/pistache/streambuf"
	"github.com/bthrall/pistache/version"
)

// requestLineStep parses "METHOD SP resource[?query] SP HTTP-Version CRLF",
// grounded on http.cc's Private::RequestLineStep::apply.
type requestLineStep struct{}

func (requestLineStep) apply(p *Parser) (State, error) {
	cur := p.cursor
	revert := streambuf.NewRevert(cur)
	defer revert.Restore()

	methodTok := streambuf.NewToken(cur)
	for {
		b, ok := cur.Current()
		if !ok {
			return Again, nil
		}
		if b == ' ' {
			break
		}
		if !cur.Advance(1) {
			return Again, nil
		}
	}
	m, ok := method.Parse(methodTok.RawText())
	if !ok {
		return Done, errors.BadRequest("unknown HTTP request method")
	}
	if !cur.Advance(1) {
		return Again, nil
	}

	resTok := streambuf.NewToken(cur)
	for {
		b, ok := cur.Current()
		if !ok {
			return Again, nil
		}
		if b == '?' || b == ' ' {
			break
		}
		if !cur.Advance(1) {
			return Again, nil
		}
	}
	resource := resTok.Text()

	q := query.New()
	b, _ := cur.Current()
	if b == '?' {
		if !cur.Advance(1) {
			return Again, nil
		}
		for {
			cb, ok := cur.Current()
			if !ok {
				return Again, nil
			}
			if cb == ' ' {
				break
			}

			keyTok := streambuf.NewToken(cur)
			for {
				kb, ok := cur.Current()
				if !ok {
					return Again, nil
				}
				if kb == '=' {
					break
				}
				if !cur.Advance(1) {
					return Again, nil
				}
			}
			key := keyTok.Text()
			if !cur.Advance(1) {
				return Again, nil
			}

			valTok := streambuf.NewToken(cur)
			for {
				vb, ok := cur.Current()
				if !ok {
					return Again, nil
				}
				if vb == ' ' || vb == '&' {
					break
				}
				if !cur.Advance(1) {
					return Again, nil
				}
			}
			q.Add(key, valTok.Text())

			ab, _ := cur.Current()
			if ab == '&' {
				if !cur.Advance(1) {
					return Again, nil
				}
			}
		}
	}

	if !cur.Advance(1) {
		return Again, nil
	}

	verTok := streambuf.NewToken(cur)
	for !cur.EOL() {
		if !cur.Advance(1) {
			return Again, nil
		}
	}
	v, ok := version.Parse(verTok.RawText())
	if !ok {
		return Done, errors.BadRequest("Encountered invalid HTTP version")
	}
	if !cur.Advance(2) {
		return Again, nil
	}

	p.request.Method = m
	p.request.Resource = resource
	p.request.Query = q
	p.request.Version = v
	revert.Ignore()
	return Next, nil
}

// headersStep parses zero or more "Name: Value\r\n" lines up to (but not
// including) the blank line that terminates the header block, grounded
// on http.cc's Private::HeadersStep::apply. The blank line's CRLF itself
// is consumed by bodyStep, matching the source's split.
type headersStep struct{}

func (headersStep) apply(p *Parser) (State, error) {
	cur := p.cursor
	revert := streambuf.NewRevert(cur)
	defer revert.Restore()

	// Accumulate into a throwaway Collection and only assign it to
	// p.request.Headers on full step success, the same pattern
	// requestLineStep uses for query: the outer revert only restores the
	// cursor, so mutating p.request.Headers directly would re-add
	// already-committed headers whenever a later header (or the blank
	// terminator) triggers an Again and this step is re-entered from
	// scratch.
	hdrs := headers.NewCollection()

	for !cur.EOL() {
		nameTok := streambuf.NewToken(cur)
		for {
			b, ok := cur.Current()
			if !ok {
				return Again, nil
			}
			if b == ':' {
				break
			}
			if !cur.Advance(1) {
				return Again, nil
			}
		}
		name := append([]byte(nil), nameTok.RawText()...)
		if !cur.Advance(1) {
			return Again, nil
		}

		for {
			b, ok := cur.Current()
			if !ok {
				return Again, nil
			}
			if b != ' ' {
				break
			}
			if !cur.Advance(1) {
				return Again, nil
			}
		}

		valTok := streambuf.NewToken(cur)
		for !cur.EOL() {
			if !cur.Advance(1) {
				return Again, nil
			}
		}
		value := valTok.RawText()

		if err := hdrs.Add(name, value); err != nil {
			return Done, errors.BadRequest(err.Error())
		}

		if !cur.Advance(2) {
			return Again, nil
		}
	}

	p.request.Headers = hdrs
	revert.Ignore()
	return Next, nil
}

// bodyStep first consumes the blank-line CRLF that headersStep left
// untouched, then reads exactly Content-Length bytes into the request
// body, accumulating across Again calls via p.bytesRead when a message
// arrives split across multiple Feed calls. No Content-Length header
// means no body: the request completes at the blank line. A request
// carrying a Transfer-Encoding header is rejected with 501 Not
// Implemented. Grounded on http.cc's Private::BodyStep::apply.
type bodyStep struct{}

func (bodyStep) apply(p *Parser) (State, error) {
	cur := p.cursor

	if _, ok := p.request.Headers.Get("Transfer-Encoding"); ok {
		return Done, errors.NotImplemented("Transfer-Encoding is not supported")
	}

	cl, ok := headers.TryGet[*headers.ContentLength](p.request.Headers)
	if !ok {
		if !cur.Advance(2) {
			return Again, nil
		}
		return Done, nil
	}
	contentLength := cl.Value

	if p.bytesRead > 0 {
		remaining := contentLength - p.bytesRead
		available := cur.Remaining()
		if available < remaining {
			p.request.Body = append(p.request.Body, cur.Peek(available)...)
			p.bytesRead += available
			cur.Advance(available)
			return Again, nil
		}
		p.request.Body = append(p.request.Body, cur.Peek(remaining)...)
		cur.Advance(remaining)
	} else {
		crlf := streambuf.NewRevert(cur)
		if !cur.Advance(2) {
			return Again, nil
		}

		available := cur.Remaining()
		if available == 0 && contentLength > 0 {
			// No body bytes recorded yet: leave the blank-line CRLF for the
			// next call, which takes this branch again.
			crlf.Restore()
			return Again, nil
		}
		if available < contentLength {
			p.request.Body = append(p.request.Body, cur.Peek(available)...)
			p.bytesRead += available
			cur.Advance(available)
			return Again, nil
		}
		p.request.Body = append(p.request.Body, cur.Peek(contentLength)...)
		cur.Advance(contentLength)
	}

	p.bytesRead = 0
	return Done, nil
}
