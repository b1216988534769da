// Package commands maps a parsed request to a handler and writes its
// tagged reply. Dispatch by a case-sensitive switch on the first argument
// (every command name is lowercase) takes after freeflowuniverse/herolauncher's pkg/redisserver/server.go (a
// redcon-based Redis command switch), adapted to this server's private
// protocol.Writer output instead of redcon.Conn's reply helpers, and to
// exact-argc matching (every command here has exactly one fixed arity)
// instead of redcon's len(cmd.Args) < minimum checks.
package commands

import (
	"github.com/kvrdb/kvr/lib/db"
	"github.com/kvrdb/kvr/reactor/protocol"
)

// Engine bundles the reactor-owned state every handler needs: the
// keyspace, its TTL heap, and the deferred destructor for removed
// entries. One Engine is shared by every connection, since a single
// reactor thread owns all of it.
type Engine struct {
	Keyspace  *db.Keyspace
	TTL       *db.TTLHeap
	Destroyer *db.Destroyer
}

// Dispatch parses args[0] as a command name and args[1:] as its
// arguments, matching by exact (name, argc) pair, and writes the tagged
// reply to w. nowMs is the current monotonic timestamp in milliseconds
// used for TTL arithmetic.
func (e *Engine) Dispatch(args []string, nowMs int64, w *protocol.Writer) {
	if len(args) == 0 {
		w.WriteErr(protocol.ErrUnknown, "unknown command.")
		return
	}

	name := args[0]
	argc := len(args)

	switch {
	case name == "get" && argc == 2:
		e.doGet(args, w)
	case name == "set" && argc == 3:
		e.doSet(args, w)
	case name == "del" && argc == 2:
		e.doDel(args, w)
	case name == "pexpire" && argc == 3:
		e.doPexpire(args, nowMs, w)
	case name == "pttl" && argc == 2:
		e.doPttl(args, nowMs, w)
	case name == "keys" && argc == 1:
		e.doKeys(args, w)
	case name == "zadd" && argc == 4:
		e.doZadd(args, w)
	case name == "zrem" && argc == 3:
		e.doZrem(args, w)
	case name == "zscore" && argc == 3:
		e.doZscore(args, w)
	case name == "zquery" && argc == 6:
		e.doZquery(args, w)
	default:
		w.WriteErr(protocol.ErrUnknown, "unknown command.")
	}
}
