package reactor

import (
	"golang.org/x/sys/unix"

	"github.com/bthrall/pistache/config"
	"github.com/bthrall/pistache/poller"
)

// bind creates, binds, and listens on the configured address, grounded
// on the teacher's server/engine/epoll.go listenSocket but rebuilt on
// golang.org/x/sys/unix in place of raw syscall numbers (spec.md §6
// Listener.bind()).
func bind(opts config.Options) (poller.Fd, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return 0, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return 0, err
	}
	if err := unix.Bind(fd, &unix.SockaddrInet4{Port: opts.Port, Addr: opts.Addr}); err != nil {
		unix.Close(fd)
		return 0, err
	}
	if err := unix.Listen(fd, opts.Backlog); err != nil {
		unix.Close(fd)
		return 0, err
	}
	return poller.Fd(fd), nil
}
