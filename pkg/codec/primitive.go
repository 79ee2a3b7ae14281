package codec

import (
	"encoding/binary"
	"math"
)

// ByteOrder is the byte order of the wire format. The format is little-endian
// end to end; it is a constant, not a per-field choice.
var ByteOrder binary.ByteOrder = binary.LittleEndian

// The primitive layer reads and writes fixed-width values at absolute byte
// offsets. No alignment padding is ever inserted; callers are responsible for
// offsets, which in practice always come from the layout tables.

// WriteU8 stores v at buf[off].
func WriteU8(buf []byte, off int, v uint8) {
	buf[off] = v
}

// WriteU16 stores v at buf[off:off+2].
func WriteU16(buf []byte, off int, v uint16) {
	ByteOrder.PutUint16(buf[off:], v)
}

// WriteU32 stores v at buf[off:off+4].
func WriteU32(buf []byte, off int, v uint32) {
	ByteOrder.PutUint32(buf[off:], v)
}

// WriteU64 stores v at buf[off:off+8].
func WriteU64(buf []byte, off int, v uint64) {
	ByteOrder.PutUint64(buf[off:], v)
}

// WriteI32 stores v at buf[off:off+4] in two's complement.
func WriteI32(buf []byte, off int, v int32) {
	ByteOrder.PutUint32(buf[off:], uint32(v))
}

// WriteI64 stores v at buf[off:off+8] in two's complement.
func WriteI64(buf []byte, off int, v int64) {
	ByteOrder.PutUint64(buf[off:], uint64(v))
}

// WriteF64 stores v at buf[off:off+8] as IEEE-754 binary64.
func WriteF64(buf []byte, off int, v float64) {
	ByteOrder.PutUint64(buf[off:], math.Float64bits(v))
}

// WriteBytes copies src into the size-byte slot at buf[off:off+size],
// zero-filling the remainder when src is shorter. A source longer than the
// slot fails with FieldTooLongError: fixed slots never truncate silently.
func WriteBytes(buf []byte, off int, size int, field string, src []byte) error {
	if len(src) > size {
		return &FieldTooLongError{Field: field, Max: size, Got: len(src)}
	}
	n := copy(buf[off:off+size], src)
	for i := off + n; i < off+size; i++ {
		buf[i] = 0
	}
	return nil
}

// ReadU8 returns the byte at buf[off].
func ReadU8(buf []byte, off int) uint8 {
	return buf[off]
}

// ReadU16 returns the value at buf[off:off+2].
func ReadU16(buf []byte, off int) uint16 {
	return ByteOrder.Uint16(buf[off:])
}

// ReadU32 returns the value at buf[off:off+4].
func ReadU32(buf []byte, off int) uint32 {
	return ByteOrder.Uint32(buf[off:])
}

// ReadU64 returns the value at buf[off:off+8].
func ReadU64(buf []byte, off int) uint64 {
	return ByteOrder.Uint64(buf[off:])
}

// ReadI32 returns the two's-complement value at buf[off:off+4].
func ReadI32(buf []byte, off int) int32 {
	return int32(ByteOrder.Uint32(buf[off:]))
}

// ReadI64 returns the two's-complement value at buf[off:off+8].
func ReadI64(buf []byte, off int) int64 {
	return int64(ByteOrder.Uint64(buf[off:]))
}

// ReadF64 returns the IEEE-754 binary64 value at buf[off:off+8].
func ReadF64(buf []byte, off int) float64 {
	return math.Float64frombits(ByteOrder.Uint64(buf[off:]))
}

// ReadBytes copies the size-byte slot at buf[off:off+size] into a fresh slice.
// Slot contents travel verbatim; there is no string or NUL handling here.
func ReadBytes(buf []byte, off int, size int) []byte {
	out := make([]byte, size)
	copy(out, buf[off:off+size])
	return out
}
