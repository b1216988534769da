// Package kv implements the "kvr client" command group: a thin TCP client
// that frames one request per invocation against a running kvr server and
// prints the decoded tagged reply. Grounded on cmd/kv/commands.go's
// one-cobra-command-per-server-command shape; the transport itself is a
// plain net.Conn since nothing here needs the raw, poll-driven fd access
// the server's reactor package requires.
package kv

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/kvrdb/kvr/reactor/protocol"
)

// Client holds one connection to a kvr server. Each Call is one
// request/response round trip: a client subcommand makes one Call, while
// the perf benchmarks make many Calls on each of their Clients.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
}

// Dial connects to addr, giving up after timeout. Read/write deadlines are
// not set here; Call sets one per request from its own timeout argument.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("kv: dial %s: %w", addr, err)
	}
	return &Client{conn: conn, r: bufio.NewReader(conn)}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Call sends one request frame built from args and returns the decoded
// reply.
func (c *Client) Call(timeout time.Duration, args ...string) (protocol.Value, error) {
	_ = c.conn.SetDeadline(time.Now().Add(timeout))

	if _, err := c.conn.Write(protocol.EncodeRequest(args)); err != nil {
		return protocol.Value{}, fmt.Errorf("kv: write request: %w", err)
	}

	header := make([]byte, 4)
	if _, err := readFull(c.r, header); err != nil {
		return protocol.Value{}, fmt.Errorf("kv: read response header: %w", err)
	}
	n := int(header[0]) | int(header[1])<<8 | int(header[2])<<16 | int(header[3])<<24

	body := make([]byte, n)
	if _, err := readFull(c.r, body); err != nil {
		return protocol.Value{}, fmt.Errorf("kv: read response body: %w", err)
	}

	full := append(header, body...)
	v, _, err := protocol.DecodeReply(full)
	if err != nil {
		return protocol.Value{}, fmt.Errorf("kv: decode response: %w", err)
	}
	return v, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
