// Package protocol implements the wire codec: a length-prefixed request
// frame (this file) and a tagged response writer (response.go). Framing
// style - manual encoding/binary field-by-field reads/writes, explicit
// length-prefixed sub-fields - takes after rpc/serializer/binaryImpl.go
// and rpc/transport/base/util.go's writeFrame/readFrame. Byte order is
// fixed little-endian.
package protocol

import (
	"encoding/binary"
	"errors"
)

const (
	// MaxMsgSize is the largest total request payload accepted, in bytes.
	MaxMsgSize = 32 << 20
	// MaxArgs is the largest argument-vector length accepted per request.
	MaxArgs = 200_000

	lenPrefixSize = 4
)

// ErrFrameTooBig reports a request whose declared length exceeds
// MaxMsgSize. ErrTooManyArgs reports nstr > MaxArgs. ErrMalformed reports
// any other framing violation (a short string length running past the
// declared payload, trailing bytes, etc). All three are fatal to the
// connection: the caller must close without replying.
var (
	ErrFrameTooBig = errors.New("protocol: request exceeds max message size")
	ErrTooManyArgs = errors.New("protocol: request exceeds max argument count")
	ErrMalformed   = errors.New("protocol: malformed request frame")
)

// TryParse attempts to parse one complete request from the front of buf.
// It returns the parsed argument vector, the number of bytes consumed
// from buf, and an error.
//
//   - (nil, 0, nil): not enough bytes buffered yet for a full frame; the
//     caller should wait for more reads and retry.
//   - (args, n, nil): a complete frame was parsed, consuming n bytes.
//   - (nil, 0, err): a framing violation; the caller must close the
//     connection without attempting a reply.
func TryParse(buf []byte) (args []string, consumed int, err error) {
	if len(buf) < lenPrefixSize {
		return nil, 0, nil
	}
	totalLen := binary.LittleEndian.Uint32(buf[:lenPrefixSize])
	if totalLen > MaxMsgSize {
		return nil, 0, ErrFrameTooBig
	}
	frameEnd := lenPrefixSize + int(totalLen)
	if len(buf) < frameEnd {
		return nil, 0, nil
	}

	payload := buf[lenPrefixSize:frameEnd]
	if len(payload) < 4 {
		return nil, 0, ErrMalformed
	}
	nstr := binary.LittleEndian.Uint32(payload[:4])
	if nstr > MaxArgs {
		return nil, 0, ErrTooManyArgs
	}

	pos := 4
	out := make([]string, 0, nstr)
	for i := uint32(0); i < nstr; i++ {
		if pos+4 > len(payload) {
			return nil, 0, ErrMalformed
		}
		strLen := binary.LittleEndian.Uint32(payload[pos : pos+4])
		pos += 4
		if pos+int(strLen) > len(payload) {
			return nil, 0, ErrMalformed
		}
		out = append(out, string(payload[pos:pos+int(strLen)]))
		pos += int(strLen)
	}
	if pos != len(payload) {
		return nil, 0, ErrMalformed
	}

	return out, frameEnd, nil
}

// EncodeRequest frames args into a request, the inverse of TryParse. Used
// by the CLI client (cmd/kv) to speak the same wire format as the server
// parses.
func EncodeRequest(args []string) []byte {
	payloadLen := 4
	for _, a := range args {
		payloadLen += 4 + len(a)
	}

	buf := make([]byte, lenPrefixSize+payloadLen)
	binary.LittleEndian.PutUint32(buf[:lenPrefixSize], uint32(payloadLen))
	binary.LittleEndian.PutUint32(buf[lenPrefixSize:lenPrefixSize+4], uint32(len(args)))

	pos := lenPrefixSize + 4
	for _, a := range args {
		binary.LittleEndian.PutUint32(buf[pos:pos+4], uint32(len(a)))
		pos += 4
		copy(buf[pos:pos+len(a)], a)
		pos += len(a)
	}
	return buf
}
