package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bthrall/pistache/future"
	"github.com/bthrall/pistache/mime"
	"github.com/bthrall/pistache/status"
)

type fakeSender struct {
	lastBuf []byte
}

func (f *fakeSender) Send(buf []byte) (*future.Future, error) {
	f.lastBuf = append([]byte(nil), buf...)
	fut, p := future.New()
	p.Resolve(len(buf))
	return fut, nil
}

func TestSendBodyWiresStatusLineHeadersAndBody(t *testing.T) {
	sender := &fakeSender{}
	r := New(sender, 4096)

	fut, err := r.SendBody(status.OK, []byte("hi"), mime.TextPlain)
	require.NoError(t, err)
	n, err := fut.Wait()
	require.NoError(t, err)
	assert.Equal(t, len(sender.lastBuf), n)

	out := string(sender.lastBuf)
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n"))
	assert.Contains(t, out, "Content-Type: text/plain\r\n")
	assert.Contains(t, out, "Content-Length: 2\r\n\r\nhi")
}

func TestSendStatusOnlyHasNoBody(t *testing.T) {
	sender := &fakeSender{}
	r := New(sender, 4096)

	_, err := r.Send(status.NoContent)
	require.NoError(t, err)

	out := string(sender.lastBuf)
	assert.True(t, strings.HasSuffix(out, "\r\n\r\n"))
	assert.NotContains(t, out, "Content-Length")
}
