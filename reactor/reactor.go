// Package reactor implements a single-threaded, poll-driven event loop:
// one goroutine owns the listening socket, the fd-indexed connection
// table, the idle-connection FIFO, the keyspace, and the TTL heap, and
// drives all of them through repeated calls to unix.Poll. Built on
// golang.org/x/sys/unix directly rather than net.Listener/net.Conn,
// since a custom reactor needs the raw, non-blocking fd that Go's
// netpoller otherwise keeps private.
package reactor

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sys/unix"

	"github.com/kvrdb/kvr/lib/db"
	"github.com/kvrdb/kvr/lib/ds"
	"github.com/kvrdb/kvr/reactor/commands"
	"github.com/kvrdb/kvr/reactor/common"
	"github.com/kvrdb/kvr/reactor/protocol"
)

// Reactor-wide counters, registered in the metrics library's default set,
// which metrics.WritePrometheus renders. cmd/serve does not serve them
// over HTTP. Package-level because the library's registry is itself the
// global singleton, so there is nothing to gain from instance-scoping
// these.
var (
	connectionsAccepted = metrics.NewCounter("kvr_connections_accepted_total")
	connectionsClosed   = metrics.NewCounter("kvr_connections_closed_total")
	commandsDispatched  = metrics.NewCounter("kvr_commands_dispatched_total")
	keysExpired         = metrics.NewCounter("kvr_keys_expired_total")
)

// Config holds the reactor's externally tunable parameters, bound to
// cobra flags and viper/env/dotenv sources in cmd/serve.
type Config struct {
	Addr    string
	Workers int
}

// Reactor is the single-goroutine owner of every reactor-visible
// structure: the fd-indexed connection table, the idle list, the
// keyspace, the TTL heap, and the worker pool's submission side.
type Reactor struct {
	listenFd int

	conns []*Conn // indexed by fd; nil where no connection lives

	idleList *ds.List

	keyspace  *db.Keyspace
	ttl       *db.TTLHeap
	destroyer *db.Destroyer
	engine    *commands.Engine

	log *common.Logger

	now func() int64
}

// New builds a Reactor bound to cfg.Addr, with cfg.Workers workers backing
// deferred destruction. The socket is bound and listening when New
// returns; connections are accepted and served only once Run is called.
func New(cfg Config, logger *common.Logger, nowFn func() int64) (*Reactor, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	fd, err := listen(cfg.Addr)
	if err != nil {
		return nil, err
	}

	keyspace := db.NewKeyspace(0)
	ttl := db.NewTTLHeap()
	pool := ds.NewWorkerPool(cfg.Workers)
	destroyer := db.NewDestroyer(pool)

	r := &Reactor{
		listenFd:  fd,
		idleList:  ds.NewList(),
		keyspace:  keyspace,
		ttl:       ttl,
		destroyer: destroyer,
		engine:    &commands.Engine{Keyspace: keyspace, TTL: ttl, Destroyer: destroyer},
		log:       logger,
		now:       nowFn,
	}
	return r, nil
}

// Close releases the listening socket and every live connection. Intended
// for tests and for graceful shutdown paths; Run's own loop never calls
// it on a clean exit since the reactor runs until the process dies.
func (r *Reactor) Close() {
	for _, c := range r.conns {
		if c != nil {
			r.destroyConn(c)
		}
	}
	unix.Close(r.listenFd)
}

// Run executes the reactor loop forever (or until poll returns a
// non-EINTR error): build the pollfd set, compute the timeout, poll,
// accept, service ready connections, then process timers.
func (r *Reactor) Run() error {
	r.log.Infof("reactor listening, fd=%d", r.listenFd)
	for {
		pfds := r.buildPollSet()
		nowMs := r.now()
		timeout := r.pollTimeoutMs(nowMs)

		n, err := unix.Poll(pfds, timeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("reactor: poll: %w", err)
		}

		nowMs = r.now()

		if n > 0 {
			r.serviceReady(pfds, nowMs)
		}
		r.processTimers(nowMs)
	}
}

// buildPollSet assembles one pollfd per live fd: the listening socket
// (POLLIN only) plus every connection (POLLERR always, POLLIN/POLLOUT per
// its want flags).
func (r *Reactor) buildPollSet() []unix.PollFd {
	pfds := make([]unix.PollFd, 0, len(r.conns)+1)
	pfds = append(pfds, unix.PollFd{Fd: int32(r.listenFd), Events: unix.POLLIN})

	for _, c := range r.conns {
		if c == nil {
			continue
		}
		var events int16 = unix.POLLERR
		if c.wantRead {
			events |= unix.POLLIN
		}
		if c.wantWrite {
			events |= unix.POLLOUT
		}
		pfds = append(pfds, unix.PollFd{Fd: int32(c.fd), Events: events})
	}
	return pfds
}

// serviceReady walks the just-polled pfds, accepting on the listening fd
// and dispatching read/write/error handling for every ready connection.
func (r *Reactor) serviceReady(pfds []unix.PollFd, nowMs int64) {
	listenPfd := pfds[0]
	if listenPfd.Revents&unix.POLLIN != 0 {
		r.acceptLoop(nowMs)
	}

	for _, pfd := range pfds[1:] {
		if pfd.Revents == 0 {
			continue
		}
		c := r.conns[pfd.Fd]
		if c == nil {
			continue
		}

		c.lastActiveMs = nowMs
		r.idleList.MoveToBack(c.idleNode)

		if pfd.Revents&unix.POLLERR != 0 {
			c.wantClose = true
		}
		if pfd.Revents&unix.POLLIN != 0 {
			r.readPath(c)
		}
		if !c.wantClose && pfd.Revents&unix.POLLOUT != 0 {
			r.writePath(c)
		}
		if c.wantClose {
			r.destroyConn(c)
		}
	}
}

// acceptLoop accepts one pending connection; the next poll iteration
// picks up any additional backlog.
func (r *Reactor) acceptLoop(nowMs int64) {
	fd, ok, err := acceptOne(r.listenFd)
	if err != nil {
		r.log.Warnf("accept: %v", err)
		return
	}
	if !ok {
		return
	}

	connectionsAccepted.Inc()
	c := newConn(fd, nowMs)
	c.idleNode = r.idleList.PushBack(c)

	for fd >= len(r.conns) {
		r.conns = append(r.conns, make([]*Conn, max(1, len(r.conns)))...)
	}
	r.conns[fd] = c
}

// readPath reads up to 64 KiB, feeds it into the inbound buffer, drains
// as many complete frames as are present, and opportunistically attempts
// a write if replies were produced.
func (r *Reactor) readPath(c *Conn) {
	var buf [readBufSize]byte
	n, err := unix.Read(c.fd, buf[:])
	switch {
	case n == 0 && err == nil:
		c.wantClose = true
		return
	case err != nil:
		if isAgain(err) {
			return
		}
		if err == unix.EINTR {
			return
		}
		c.wantClose = true
		return
	}

	c.inbuf = append(c.inbuf, buf[:n]...)

	producedReply := false
	for {
		args, consumed, err := protocol.TryParse(c.inbuf)
		if err != nil {
			r.log.Warnf("fd=%d protocol error: %v", c.fd, err)
			c.wantClose = true
			return
		}
		if consumed == 0 {
			break
		}
		c.inbuf = c.inbuf[consumed:]

		w := protocol.NewWriter()
		r.engine.Dispatch(args, r.now(), w)
		commandsDispatched.Inc()
		c.outbuf = append(c.outbuf, w.Bytes()...)
		producedReply = true
	}

	if producedReply && len(c.outbuf) > 0 {
		r.writePath(c)
	}
}

// writePath issues one write of the whole outbound buffer, keeping
// want_write on EAGAIN/short write and flipping back to want_read once
// the buffer drains.
func (r *Reactor) writePath(c *Conn) {
	if len(c.outbuf) == 0 {
		c.wantWrite = false
		c.wantRead = true
		return
	}

	n, err := unix.Write(c.fd, c.outbuf)
	if err != nil {
		if isAgain(err) || err == unix.EINTR {
			c.wantWrite = true
			c.wantRead = false
			return
		}
		c.wantClose = true
		return
	}

	c.outbuf = c.outbuf[n:]
	if len(c.outbuf) > 0 {
		c.wantWrite = true
		c.wantRead = false
		return
	}
	c.wantWrite = false
	c.wantRead = true
}

// destroyConn closes c's fd, detaches it from the idle list, and clears
// its connection-table slot.
func (r *Reactor) destroyConn(c *Conn) {
	connectionsClosed.Inc()
	unix.Close(c.fd)
	r.idleList.Detach(c.idleNode)
	if c.fd < len(r.conns) {
		r.conns[c.fd] = nil
	}
}
