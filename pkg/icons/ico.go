package icons

import (
	"bytes"
	"encoding/binary"
)

const (
	icoHeaderLen = 6
	icoEntryLen  = 16
)

// encodeICO wraps one PNG image in an ICO container. Windows Vista and
// later read PNG-compressed entries directly.
func encodeICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	buf.Grow(icoHeaderLen + icoEntryLen + len(pngData))

	le := binary.LittleEndian

	// ICONDIR: reserved, type (1 = icon), image count
	_ = binary.Write(&buf, le, [3]uint16{0, 1, 1})

	// ICONDIRENTRY; 0 encodes 256 or more
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}
	buf.WriteByte(dim)
	buf.WriteByte(dim)
	buf.WriteByte(0) // palette size
	buf.WriteByte(0) // reserved
	_ = binary.Write(&buf, le, uint16(1))  // color planes
	_ = binary.Write(&buf, le, uint16(32)) // bits per pixel
	_ = binary.Write(&buf, le, uint32(len(pngData)))
	_ = binary.Write(&buf, le, uint32(icoHeaderLen+icoEntryLen))

	buf.Write(pngData)
	return buf.Bytes()
}
