package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Value is a decoded tagged reply, used by the CLI client (cmd/kv) to
// print server responses without hand-rolling the tag switch at each call
// site.
type Value struct {
	Tag     Tag
	Str     string
	Int     int64
	Dbl     float64
	ErrCode ErrCode
	ErrMsg  string
	Arr     []Value
}

// DecodeReply decodes one framed response (as written by Writer.Bytes)
// starting at the u32 length prefix. It returns the decoded value and the
// number of bytes consumed.
func DecodeReply(buf []byte) (Value, int, error) {
	if len(buf) < lenPrefixSize {
		return Value{}, 0, errors.New("protocol: short response header")
	}
	n := binary.LittleEndian.Uint32(buf[:lenPrefixSize])
	end := lenPrefixSize + int(n)
	if len(buf) < end {
		return Value{}, 0, errors.New("protocol: short response body")
	}
	v, pos, err := decodeValue(buf[lenPrefixSize:end])
	if err != nil {
		return Value{}, 0, err
	}
	if pos != int(n) {
		return Value{}, 0, errors.New("protocol: trailing bytes in response")
	}
	return v, end, nil
}

func decodeValue(b []byte) (Value, int, error) {
	if len(b) < 1 {
		return Value{}, 0, errors.New("protocol: empty value")
	}
	tag := Tag(b[0])
	pos := 1
	switch tag {
	case TagNil:
		return Value{Tag: tag}, pos, nil
	case TagErr:
		if len(b) < pos+8 {
			return Value{}, 0, errors.New("protocol: short err value")
		}
		code := ErrCode(binary.LittleEndian.Uint32(b[pos : pos+4]))
		pos += 4
		msgLen := binary.LittleEndian.Uint32(b[pos : pos+4])
		pos += 4
		if len(b) < pos+int(msgLen) {
			return Value{}, 0, errors.New("protocol: short err message")
		}
		msg := string(b[pos : pos+int(msgLen)])
		pos += int(msgLen)
		return Value{Tag: tag, ErrCode: code, ErrMsg: msg}, pos, nil
	case TagStr:
		if len(b) < pos+4 {
			return Value{}, 0, errors.New("protocol: short str length")
		}
		strLen := binary.LittleEndian.Uint32(b[pos : pos+4])
		pos += 4
		if len(b) < pos+int(strLen) {
			return Value{}, 0, errors.New("protocol: short str value")
		}
		s := string(b[pos : pos+int(strLen)])
		pos += int(strLen)
		return Value{Tag: tag, Str: s}, pos, nil
	case TagInt:
		if len(b) < pos+8 {
			return Value{}, 0, errors.New("protocol: short int value")
		}
		v := int64(binary.LittleEndian.Uint64(b[pos : pos+8]))
		pos += 8
		return Value{Tag: tag, Int: v}, pos, nil
	case TagDbl:
		if len(b) < pos+8 {
			return Value{}, 0, errors.New("protocol: short dbl value")
		}
		bits := binary.LittleEndian.Uint64(b[pos : pos+8])
		pos += 8
		return Value{Tag: tag, Dbl: math.Float64frombits(bits)}, pos, nil
	case TagArr:
		if len(b) < pos+4 {
			return Value{}, 0, errors.New("protocol: short arr length")
		}
		n := binary.LittleEndian.Uint32(b[pos : pos+4])
		pos += 4
		children := make([]Value, 0, n)
		for i := uint32(0); i < n; i++ {
			child, used, err := decodeValue(b[pos:])
			if err != nil {
				return Value{}, 0, err
			}
			pos += used
			children = append(children, child)
		}
		return Value{Tag: tag, Arr: children}, pos, nil
	default:
		return Value{}, 0, fmt.Errorf("protocol: unknown tag %d", tag)
	}
}

// String renders v for display in the CLI client.
func (v Value) String() string {
	switch v.Tag {
	case TagNil:
		return "(nil)"
	case TagErr:
		return fmt.Sprintf("(error) code=%d %s", v.ErrCode, v.ErrMsg)
	case TagStr:
		return v.Str
	case TagInt:
		return fmt.Sprintf("%d", v.Int)
	case TagDbl:
		return fmt.Sprintf("%g", v.Dbl)
	case TagArr:
		s := "["
		for i, c := range v.Arr {
			if i > 0 {
				s += ", "
			}
			s += c.String()
		}
		return s + "]"
	default:
		return "(unknown)"
	}
}
