package reactor

import "github.com/kvrdb/kvr/lib/ds"

// readBufSize is the stack-sized chunk each read path call pulls off the
// socket.
const readBufSize = 64 * 1024

// Conn is one client connection's full mutable state, owned exclusively by
// the reactor goroutine. fd indexes directly into Reactor.conns, so a
// Conn never needs its own identity beyond the fd it was accepted with.
type Conn struct {
	fd int

	inbuf  []byte
	outbuf []byte

	wantRead  bool
	wantWrite bool
	wantClose bool

	lastActiveMs int64

	// idleNode is this connection's node in the reactor's idle list. It is
	// moved to the tail on every I/O event and detached on teardown, so a
	// live connection appears exactly once in the idle list at all times.
	idleNode *ds.ListNode
}

func newConn(fd int, nowMs int64) *Conn {
	return &Conn{
		fd:           fd,
		wantRead:     true,
		lastActiveMs: nowMs,
	}
}
