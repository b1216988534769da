package commands

import (
	"math"
	"strconv"

	"github.com/kvrdb/kvr/lib/db"
	"github.com/kvrdb/kvr/lib/zset"
	"github.com/kvrdb/kvr/reactor/protocol"
)

func (e *Engine) doGet(args []string, w *protocol.Writer) {
	ent, ok := e.Keyspace.Lookup([]byte(args[1]))
	if !ok {
		w.WriteNil()
		return
	}
	if ent.Kind != db.KindString {
		w.WriteErr(protocol.ErrBadType, "not a string value")
		return
	}
	w.WriteStr(string(ent.Str))
}

func (e *Engine) doSet(args []string, w *protocol.Writer) {
	ent, created := e.Keyspace.GetOrCreate([]byte(args[1]))
	if !created && ent.Kind != db.KindString {
		w.WriteErr(protocol.ErrBadType, "a non-string value exists")
		return
	}
	ent.Kind = db.KindString
	ent.Str = []byte(args[2])
	w.WriteNil()
}

func (e *Engine) doDel(args []string, w *protocol.Writer) {
	ent, ok := e.Keyspace.Delete([]byte(args[1]))
	if !ok {
		w.WriteInt(0)
		return
	}
	e.TTL.ClearExpire(ent)
	e.Destroyer.Destroy(ent)
	w.WriteInt(1)
}

func (e *Engine) doPexpire(args []string, nowMs int64, w *protocol.Writer) {
	ttlMs, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		w.WriteErr(protocol.ErrBadArg, "expect int64")
		return
	}
	ent, ok := e.Keyspace.Lookup([]byte(args[1]))
	if !ok {
		w.WriteInt(0)
		return
	}
	e.TTL.SetExpire(ent, nowMs, ttlMs)
	w.WriteInt(1)
}

func (e *Engine) doPttl(args []string, nowMs int64, w *protocol.Writer) {
	ent, ok := e.Keyspace.Lookup([]byte(args[1]))
	if !ok {
		w.WriteInt(-2)
		return
	}
	w.WriteInt(e.TTL.RemainingMs(ent, nowMs))
}

func (e *Engine) doKeys(_ []string, w *protocol.Writer) {
	ctx := w.BeginArr()
	var n uint32
	e.Keyspace.Foreach(func(ent *db.Entry) bool {
		w.WriteStr(string(ent.Key))
		n++
		return true
	})
	w.EndArr(ctx, n)
}

func (e *Engine) doZadd(args []string, w *protocol.Writer) {
	score, err := strconv.ParseFloat(args[2], 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		w.WriteErr(protocol.ErrBadArg, "expect float")
		return
	}
	name := args[3]

	ent, created := e.Keyspace.GetOrCreate([]byte(args[1]))
	if !created && ent.Kind != db.KindZSet {
		w.WriteErr(protocol.ErrBadType, "expect zset")
		return
	}
	if created {
		ent.Kind = db.KindZSet
		ent.ZSet = zset.New()
	}

	added := ent.ZSet.Insert(name, score)
	if added {
		w.WriteInt(1)
	} else {
		w.WriteInt(0)
	}
}

// lookupZSet returns the ZSet stored at key, treating a missing key as an
// empty (nil) set and reporting a type error for any non-ZSET entry -
// mirroring the original source's expect_zset, which hands back a shared
// empty ZSet for a missing key rather than erroring.
func (e *Engine) lookupZSet(key string) (z *zset.ZSet, bad bool) {
	ent, ok := e.Keyspace.Lookup([]byte(key))
	if !ok {
		return nil, false
	}
	if ent.Kind != db.KindZSet {
		return nil, true
	}
	return ent.ZSet, false
}

func (e *Engine) doZrem(args []string, w *protocol.Writer) {
	z, bad := e.lookupZSet(args[1])
	if bad {
		w.WriteErr(protocol.ErrBadType, "expect zset")
		return
	}
	if z == nil {
		w.WriteInt(0)
		return
	}
	n, ok := z.Lookup(args[2])
	if !ok {
		w.WriteInt(0)
		return
	}
	z.Delete(n)
	w.WriteInt(1)
}

func (e *Engine) doZscore(args []string, w *protocol.Writer) {
	z, bad := e.lookupZSet(args[1])
	if bad {
		w.WriteErr(protocol.ErrBadType, "expect zset")
		return
	}
	if z == nil {
		w.WriteNil()
		return
	}
	n, ok := z.Lookup(args[2])
	if !ok {
		w.WriteNil()
		return
	}
	w.WriteDbl(n.Score)
}

func (e *Engine) doZquery(args []string, w *protocol.Writer) {
	score, err1 := strconv.ParseFloat(args[2], 64)
	offset, err2 := strconv.ParseInt(args[4], 10, 64)
	limit, err3 := strconv.ParseInt(args[5], 10, 64)
	if err1 != nil {
		w.WriteErr(protocol.ErrBadArg, "expect fp number")
		return
	}
	if err2 != nil || err3 != nil {
		w.WriteErr(protocol.ErrBadArg, "expect int")
		return
	}
	name := args[3]

	z, bad := e.lookupZSet(args[1])
	if bad {
		w.WriteErr(protocol.ErrBadType, "expect zset")
		return
	}
	if limit <= 0 {
		w.WriteArr(0)
		return
	}
	if z == nil {
		w.WriteArr(0)
		return
	}

	n, ok := z.SeekGE(score, name)
	if ok {
		n, ok = z.Offset(n, int(offset))
	}

	ctx := w.BeginArr()
	var count int64
	for ok && count < limit {
		w.WriteStr(n.Name)
		w.WriteDbl(n.Score)
		n, ok = z.Offset(n, 1)
		count += 2
	}
	w.EndArr(ctx, uint32(count))
}
