package protocol

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := []string{"set", "a", "1"}
	buf := EncodeRequest(want)

	got, consumed, err := TryParse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumed != len(buf) {
		t.Fatalf("consumed %d, want %d", consumed, len(buf))
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTryParseWaitsForMoreBytes(t *testing.T) {
	full := EncodeRequest([]string{"get", "a"})
	partial := full[:len(full)-1]

	args, consumed, err := TryParse(partial)
	if err != nil || args != nil || consumed != 0 {
		t.Fatalf("expected (nil, 0, nil) for a partial frame, got (%v, %d, %v)", args, consumed, err)
	}
}

func TestTryParseConsumesOnlyOneFrameFromMultiple(t *testing.T) {
	f1 := EncodeRequest([]string{"get", "a"})
	f2 := EncodeRequest([]string{"get", "b"})
	buf := append(append([]byte{}, f1...), f2...)

	args, consumed, err := TryParse(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumed != len(f1) {
		t.Fatalf("consumed %d, want %d (first frame only)", consumed, len(f1))
	}
	if args[1] != "a" {
		t.Fatalf("expected first frame's args, got %v", args)
	}
}

func TestOversizeFrameIsRejected(t *testing.T) {
	// Craft a header claiming a payload one byte over MaxMsgSize without
	// actually allocating that much payload - TryParse must reject on the
	// length field alone, never try to read past it.
	buf := make([]byte, lenPrefixSize)
	putU32(buf, MaxMsgSize+1)

	_, _, err := TryParse(buf)
	if err != ErrFrameTooBig {
		t.Fatalf("expected ErrFrameTooBig, got %v", err)
	}
}

func TestTooManyArgsIsRejected(t *testing.T) {
	payload := make([]byte, 4)
	putU32(payload, MaxArgs+1)
	buf := make([]byte, lenPrefixSize)
	putU32(buf, uint32(len(payload)))
	buf = append(buf, payload...)

	_, _, err := TryParse(buf)
	if err != ErrTooManyArgs {
		t.Fatalf("expected ErrTooManyArgs, got %v", err)
	}
}

func TestMalformedFrameTruncatedStringIsRejected(t *testing.T) {
	// nstr=1 but the declared string length runs past the payload.
	payload := make([]byte, 8)
	putU32(payload[0:4], 1)
	putU32(payload[4:8], 1000)
	buf := make([]byte, lenPrefixSize)
	putU32(buf, uint32(len(payload)))
	buf = append(buf, payload...)

	_, _, err := TryParse(buf)
	if err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
