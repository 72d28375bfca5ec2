package buf

import "encoding/binary"

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// PutU16BE writes v big-endian into b[0:2]. It reports false when b is too short.
func PutU16BE(b []byte, v uint16) bool {
	if len(b) < 2 {
		return false
	}
	binary.BigEndian.PutUint16(b, v)
	return true
}
