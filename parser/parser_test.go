package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bthrall/pistache/headers"
	"github.com/bthrall/pistache/method"
	"github.com/bthrall/pistache/version"
)

func TestParseSimpleGet(t *testing.T) {
	p := New(4096)
	require.True(t, p.Feed([]byte("GET /hello HTTP/1.1\r\nHost: x\r\n\r\n")))

	req, state, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, Done, state)

	assert.Equal(t, method.GET, req.Method)
	assert.Equal(t, "/hello", req.Resource)
	assert.Equal(t, version.HTTP11, req.Version)
	host, ok := headers.TryGet[*headers.Host](req.Headers)
	require.True(t, ok)
	assert.Equal(t, "x", host.Value)
	assert.Empty(t, req.Body)
}

func TestParsePostWithQueryAndBody(t *testing.T) {
	p := New(4096)
	require.True(t, p.Feed([]byte("POST /x?a=1&b=two HTTP/1.0\r\nContent-Length: 5\r\n\r\nhello")))

	req, state, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, Done, state)

	assert.Equal(t, method.POST, req.Method)
	assert.Equal(t, version.HTTP10, req.Version)

	a, ok := req.Query.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", a)
	b, ok := req.Query.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two", b)

	assert.Equal(t, "hello", string(req.Body))
}

func TestParseByteAtATimeMatchesSingleFeed(t *testing.T) {
	raw := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")

	p := New(4096)
	var (
		req   *Request
		state State
		err   error
		done  int
	)
	for _, b := range raw {
		require.True(t, p.Feed([]byte{b}))
		req, state, err = p.Parse()
		require.NoError(t, err)
		if state == Done {
			done++
		}
	}

	assert.Equal(t, 1, done, "exactly one Done across all fragments")
	assert.Equal(t, method.GET, req.Method)
	assert.Equal(t, "/", req.Resource)
	assert.Equal(t, version.HTTP11, req.Version)

	// A header that completes only after several single-byte Again
	// returns (including across the blank-line terminator) must be
	// added exactly once, not once per re-entry into headersStep.
	host, ok := headers.TryGet[*headers.Host](req.Headers)
	require.True(t, ok)
	assert.Equal(t, "x", host.Value)
	assert.Equal(t, 1, req.Headers.Len())
}

func TestParseInvalidVersionFails(t *testing.T) {
	p := New(4096)
	require.True(t, p.Feed([]byte("GET / HTTP/2.0\r\n\r\n")))

	_, _, err := p.Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP version")
}

func TestFeedRejectsOversizedRequest(t *testing.T) {
	p := New(8)
	ok := p.Feed([]byte("GET /way-too-long HTTP/1.1\r\n\r\n"))
	assert.False(t, ok)
}

func TestResetClearsRequestState(t *testing.T) {
	p := New(4096)
	require.True(t, p.Feed([]byte("POST /x HTTP/1.1\r\nContent-Length: 2\r\n\r\nhi")))
	_, state, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, Done, state)

	p.Reset()
	require.True(t, p.Feed([]byte("GET / HTTP/1.1\r\n\r\n")))
	req, state, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, Done, state)
	assert.Equal(t, method.GET, req.Method)
	assert.Empty(t, req.Body)
}
