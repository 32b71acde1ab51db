package wire

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func mustDecode(t *testing.T, b []byte) (string, []byte) {
	t.Helper()
	f, p, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return f, p
}

func TestFrameRTEmptyAndNonEmpty(t *testing.T) {
	cases := []struct {
		format  string
		payload []byte
	}{
		{"json", nil},
		{"msgpack", []byte("hello")},
		{"cbor", []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := Encode(tc.format, tc.payload)
		if !IsFrame(enc) {
			t.Fatalf("IsFrame false for encoded %q", tc.format)
		}
		f, p := mustDecode(t, enc)
		if f != tc.format {
			t.Fatalf("format mismatch: got %q want %q", f, tc.format)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestFrameRejectsTrailingBytes(t *testing.T) {
	enc := Encode("json", []byte("[1]"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestFrameCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode("yaml", []byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}
	if IsFrame(badMagic) {
		t.Fatalf("IsFrame true on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// zero-length name
	noName := append([]byte(nil), enc...)
	noName[5] = 0
	if _, _, err := Decode(noName); err == nil {
		t.Fatalf("expected error on empty format name")
	}

	// payload length larger than remaining bytes
	long := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(long[6+4:], 1000)
	if _, _, err := Decode(long); err == nil {
		t.Fatalf("expected error on oversized length")
	}

	// truncated header
	if _, _, err := Decode(enc[:7]); err == nil {
		t.Fatalf("expected error on truncated frame")
	}
}

func TestPlainTextIsNotFrame(t *testing.T) {
	for _, b := range [][]byte{nil, []byte("[]"), []byte(`{"TJSN":1}`), []byte("TJS")} {
		if IsFrame(b) {
			t.Fatalf("IsFrame true for %q", b)
		}
	}
}

func TestEncodePanicsOnBadName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty format name")
		}
	}()
	Encode("", []byte("x"))
}
