package reactor

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

// listen creates a non-blocking, SO_REUSEADDR TCP listening socket bound to
// addr ("host:port"). It uses golang.org/x/sys/unix directly rather than
// net.Listen because the reactor needs the raw fd to hand to poll - Go's
// net package deliberately keeps its netpoller fd private.
func listen(addr string) (int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return -1, fmt.Errorf("reactor: bad listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return -1, fmt.Errorf("reactor: bad port %q: %w", portStr, err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, fmt.Errorf("reactor: socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("reactor: setsockopt SO_REUSEADDR: %w", err)
	}

	sa := &unix.SockaddrInet4{Port: port}
	if host != "" && host != "0.0.0.0" {
		ip := net.ParseIP(host)
		if ip == nil || ip.To4() == nil {
			unix.Close(fd)
			return -1, fmt.Errorf("reactor: bad listen host %q", host)
		}
		copy(sa.Addr[:], ip.To4())
	}

	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("reactor: bind %s: %w", addr, err)
	}
	if err := unix.Listen(fd, listenBacklog); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("reactor: listen: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("reactor: set listening fd nonblocking: %w", err)
	}
	return fd, nil
}

// listenBacklog is the pending-connection queue depth passed to listen(2).
const listenBacklog = 128

// acceptOne accepts a single pending connection off the listening fd,
// setting it non-blocking before returning. ok is false (with err nil) on
// EAGAIN/EWOULDBLOCK, meaning there was nothing to accept.
func acceptOne(listenFd int) (fd int, ok bool, err error) {
	connFd, _, err := unix.Accept4(listenFd, unix.SOCK_NONBLOCK)
	if err != nil {
		if isAgain(err) {
			return -1, false, nil
		}
		if err == unix.EINTR {
			return -1, false, nil
		}
		return -1, false, err
	}
	return connFd, true, nil
}

func isAgain(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}
