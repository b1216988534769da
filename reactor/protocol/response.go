package protocol

import (
	"encoding/binary"
	"math"
)

// Tag identifies the kind of a tagged response value.
type Tag byte

const (
	TagNil Tag = 0
	TagErr Tag = 1
	TagStr Tag = 2
	TagInt Tag = 3
	TagDbl Tag = 4
	TagArr Tag = 5
)

// ErrCode identifies a command-level error.
type ErrCode uint32

const (
	ErrUnknown ErrCode = 1
	ErrTooBig  ErrCode = 2
	ErrBadType ErrCode = 3
	ErrBadArg  ErrCode = 4
)

// maxRespSize is the 32 MiB response cap, shared with the request side.
const maxRespSize = 32 << 20

// Writer assembles one tagged response into a growable buffer. Array
// length is patched after the fact: BeginArr reserves a placeholder u32,
// EndArr writes the real count once every child has been appended -
// the classic out_begin_arr/out_end_arr pattern.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty response writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) WriteNil() {
	w.buf = append(w.buf, byte(TagNil))
}

func (w *Writer) WriteErr(code ErrCode, msg string) {
	w.buf = append(w.buf, byte(TagErr))
	w.buf = appendU32(w.buf, uint32(code))
	w.buf = appendU32(w.buf, uint32(len(msg)))
	w.buf = append(w.buf, msg...)
}

func (w *Writer) WriteStr(s string) {
	w.buf = append(w.buf, byte(TagStr))
	w.buf = appendU32(w.buf, uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteInt(v int64) {
	w.buf = append(w.buf, byte(TagInt))
	w.buf = appendU64(w.buf, uint64(v))
}

func (w *Writer) WriteDbl(v float64) {
	w.buf = append(w.buf, byte(TagDbl))
	w.buf = appendU64(w.buf, math.Float64bits(v))
}

// WriteArr appends a complete array of n elements whose tagged encodings
// the caller writes immediately afterward via repeated Write* calls. Use
// this only when n is known up front; otherwise use BeginArr/EndArr.
func (w *Writer) WriteArr(n uint32) {
	w.buf = append(w.buf, byte(TagArr))
	w.buf = appendU32(w.buf, n)
}

// BeginArr reserves an array header with a placeholder count and returns
// a token EndArr needs to patch it.
func (w *Writer) BeginArr() int {
	w.buf = append(w.buf, byte(TagArr))
	pos := len(w.buf)
	w.buf = appendU32(w.buf, 0)
	return pos
}

// EndArr patches the array header reserved at ctx with n, the number of
// elements actually appended since BeginArr.
func (w *Writer) EndArr(ctx int, n uint32) {
	binary.LittleEndian.PutUint32(w.buf[ctx:ctx+4], n)
}

// Bytes returns the fully framed response: a u32 length prefix followed
// by the tagged value, truncating and replacing an oversize response with
// ERR(TOO_BIG, ...).
func (w *Writer) Bytes() []byte {
	if len(w.buf) > maxRespSize {
		w.buf = w.buf[:0]
		w.WriteErr(ErrTooBig, "response is too big.")
	}
	out := make([]byte, lenPrefixSize+len(w.buf))
	binary.LittleEndian.PutUint32(out[:lenPrefixSize], uint32(len(w.buf)))
	copy(out[lenPrefixSize:], w.buf)
	return out
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}
