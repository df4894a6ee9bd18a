//go:build linux

package poller

import (
	"testing"

	"golang.org/x/sys/unix"
)

func pipeFds(t *testing.T) (r, w Fd, err error) {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK); err != nil {
		return 0, 0, err
	}
	return Fd(fds[0]), Fd(fds[1]), nil
}

func closeFd(fd Fd) {
	unix.Close(int(fd))
}

func writeByte(t *testing.T, fd Fd) {
	t.Helper()
	if _, err := unix.Write(int(fd), []byte{0x01}); err != nil {
		t.Fatalf("write: %v", err)
	}
}
