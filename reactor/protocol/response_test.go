package protocol

import "testing"

func TestWriteNilRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteNil()
	v, n, err := DecodeReply(w.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(w.Bytes()) {
		t.Fatalf("consumed %d, want %d", n, len(w.Bytes()))
	}
	if v.Tag != TagNil {
		t.Fatalf("expected TagNil, got %v", v.Tag)
	}
}

func TestWriteStrIntDblRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteStr("hello")
	v, _, err := DecodeReply(w.Bytes())
	if err != nil || v.Tag != TagStr || v.Str != "hello" {
		t.Fatalf("str round-trip failed: %+v err=%v", v, err)
	}

	w = NewWriter()
	w.WriteInt(-42)
	v, _, err = DecodeReply(w.Bytes())
	if err != nil || v.Tag != TagInt || v.Int != -42 {
		t.Fatalf("int round-trip failed: %+v err=%v", v, err)
	}

	w = NewWriter()
	w.WriteDbl(1.5)
	v, _, err = DecodeReply(w.Bytes())
	if err != nil || v.Tag != TagDbl || v.Dbl != 1.5 {
		t.Fatalf("dbl round-trip failed: %+v err=%v", v, err)
	}
}

func TestWriteErrRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteErr(ErrUnknown, "unknown command.")
	v, _, err := DecodeReply(w.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Tag != TagErr || v.ErrCode != ErrUnknown || v.ErrMsg != "unknown command." {
		t.Fatalf("err round-trip failed: %+v", v)
	}
}

func TestBeginEndArrPatchesCount(t *testing.T) {
	w := NewWriter()
	ctx := w.BeginArr()
	w.WriteStr("x")
	w.WriteDbl(1.5)
	w.WriteStr("y")
	w.WriteDbl(2.0)
	w.EndArr(ctx, 4)

	v, _, err := DecodeReply(w.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Tag != TagArr || len(v.Arr) != 4 {
		t.Fatalf("expected 4-element array, got %+v", v)
	}
	if v.Arr[0].Str != "x" || v.Arr[1].Dbl != 1.5 || v.Arr[2].Str != "y" || v.Arr[3].Dbl != 2.0 {
		t.Fatalf("array contents mismatch: %+v", v.Arr)
	}
}

func TestOversizeResponseIsTruncatedToTooBig(t *testing.T) {
	w := NewWriter()
	w.WriteStr(string(make([]byte, maxRespSize+1)))

	v, _, err := DecodeReply(w.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Tag != TagErr || v.ErrCode != ErrTooBig {
		t.Fatalf("expected ERR(TOO_BIG), got %+v", v)
	}
}
