package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("typedjson: corrupt frame")
	magic4     = [...]byte{'T', 'J', 'S', 'N'}
)

// IsFrame reports whether b starts with the frame magic.
func IsFrame(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Frame: magic(4) | ver(1) | nameLen(1) | name(nameLen) | plen(u32 be) | payload(plen)
//
// name is the carrier format the payload was written with (e.g. "msgpack").
func Encode(format string, payload []byte) []byte {
	if l := len(format); l == 0 || l > 0xFF {
		panic("typedjson: invalid format name length in frame")
	}
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + len(format) + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(byte(len(format)))
	buf.WriteString(format)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode splits a frame into its format name and payload. The payload
// aliases b.
func Decode(b []byte) (format string, payload []byte, err error) {
	const hdr = 4 + 1 + 1
	if len(b) < hdr || !IsFrame(b) || b[4] != version {
		return "", nil, ErrCorrupt
	}
	off := hdr

	// name
	nlen := int(b[5])
	if nlen == 0 || nlen > len(b)-off {
		return "", nil, ErrCorrupt
	}
	format = string(b[off : off+nlen])
	off += nlen

	// plen
	if off+4 > len(b) {
		return "", nil, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if plen < 0 || plen != len(b)-off { // exact length, no trailing bytes
		return "", nil, ErrCorrupt
	}

	return format, b[off : off+plen], nil
}
