// Package buf contains bounds-checked helpers for decoding little-endian
// structures out of in-memory images.
package buf

import "encoding/binary"

// In reports whether the n bytes starting at off lie within b.
func In(b []byte, off, n int) bool {
	if off < 0 || n < 0 {
		return false
	}
	return off+n >= off && off+n <= len(b)
}

// U16 reads a little-endian uint16 at off. Returns 0 when out of bounds.
func U16(b []byte, off int) uint16 {
	if !In(b, off, 2) {
		return 0
	}
	return binary.LittleEndian.Uint16(b[off:])
}

// U32 reads a little-endian uint32 at off. Returns 0 when out of bounds.
func U32(b []byte, off int) uint32 {
	if !In(b, off, 4) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[off:])
}
