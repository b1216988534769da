package reactor

import (
	"net"
	"testing"
	"time"

	"github.com/kvrdb/kvr/reactor/common"
	"github.com/kvrdb/kvr/reactor/protocol"
)

// startTestReactor starts a Reactor on an OS-assigned loopback port and
// runs it in the background, returning its address and a func that tears
// it down.
func startTestReactor(t *testing.T, nowFn func() int64) (addr string, cleanup func()) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr = ln.Addr().String()
	ln.Close()

	r, err := New(Config{Addr: addr, Workers: 2}, common.New("test", common.LevelError), nowFn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	go func() {
		_ = r.Run()
	}()

	return addr, func() {
		r.Close()
	}
}

func dialAndCall(t *testing.T, addr string, args ...string) protocol.Value {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))
	if _, err := conn.Write(protocol.EncodeRequest(args)); err != nil {
		t.Fatalf("write request: %v", err)
	}

	header := make([]byte, 4)
	if _, err := readFullTest(conn, header); err != nil {
		t.Fatalf("read header: %v", err)
	}
	n := int(header[0]) | int(header[1])<<8 | int(header[2])<<16 | int(header[3])<<24
	body := make([]byte, n)
	if _, err := readFullTest(conn, body); err != nil {
		t.Fatalf("read body: %v", err)
	}

	v, _, err := protocol.DecodeReply(append(header, body...))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func readFullTest(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func TestReactorServesSetAndGet(t *testing.T) {
	addr, cleanup := startTestReactor(t, func() int64 { return 0 })
	defer cleanup()

	if v := dialAndCall(t, addr, "set", "a", "1"); v.Tag != protocol.TagNil {
		t.Fatalf("set = %+v, want nil", v)
	}
	if v := dialAndCall(t, addr, "get", "a"); v.Tag != protocol.TagStr || v.Str != "1" {
		t.Fatalf("get = %+v, want STR 1", v)
	}
}

func TestReactorServesManySequentialConnections(t *testing.T) {
	addr, cleanup := startTestReactor(t, func() int64 { return 0 })
	defer cleanup()

	for i := 0; i < 20; i++ {
		key := "k"
		if v := dialAndCall(t, addr, "set", key, "v"); v.Tag != protocol.TagNil {
			t.Fatalf("set #%d = %+v, want nil", i, v)
		}
	}
	if v := dialAndCall(t, addr, "get", "k"); v.Tag != protocol.TagStr || v.Str != "v" {
		t.Fatalf("final get = %+v, want STR v", v)
	}
}

func TestReactorUnknownCommand(t *testing.T) {
	addr, cleanup := startTestReactor(t, func() int64 { return 0 })
	defer cleanup()

	v := dialAndCall(t, addr, "bogus")
	if v.Tag != protocol.TagErr || v.ErrCode != protocol.ErrUnknown {
		t.Fatalf("bogus command = %+v, want ERR(UNKNOWN)", v)
	}
}
