// Package binbuf provides the append-only byte buffer every colpack
// serializer writes through. All multi-byte integers and floats are
// little-endian; varints are unsigned LEB128.
package binbuf

import (
	"encoding/binary"
	"math"
)

// Buffer is a growable, append-only byte sink. The zero value is ready to
// use. It is not safe for concurrent use.
type Buffer struct {
	data []byte
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewSize returns an empty buffer with capacity preallocated for n bytes.
func NewSize(n int) *Buffer {
	return &Buffer{data: make([]byte, 0, n)}
}

// WriteBytes appends p verbatim.
func (b *Buffer) WriteBytes(p []byte) {
	b.data = append(b.data, p...)
}

// WriteUint8 appends a single byte.
func (b *Buffer) WriteUint8(v uint8) {
	b.data = append(b.data, v)
}

// WriteInt32 appends v as 4 little-endian bytes, two's-complement for
// negative values.
func (b *Buffer) WriteInt32(v int32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, uint32(v))
}

// WriteInt64 appends v as 8 little-endian bytes. The full 64-bit range is
// preserved, including values with the high bit set.
func (b *Buffer) WriteInt64(v int64) {
	b.data = binary.LittleEndian.AppendUint64(b.data, uint64(v))
}

// WriteFloat32 appends the IEEE-754 single-precision bits of v, little-endian.
func (b *Buffer) WriteFloat32(v float32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, math.Float32bits(v))
}

// WriteFloat64 appends the IEEE-754 double-precision bits of v, little-endian.
func (b *Buffer) WriteFloat64(v float64) {
	b.data = binary.LittleEndian.AppendUint64(b.data, math.Float64bits(v))
}

// WriteUvarint appends v as an unsigned LEB128 varint: 7 payload bits per
// byte, least-significant group first, continuation bit 0x80 on all but the
// last byte.
func (b *Buffer) WriteUvarint(v uint64) {
	b.data = binary.AppendUvarint(b.data, v)
}

// WriteZigZag32 appends the zig-zag mapping of v as a varint.
func (b *Buffer) WriteZigZag32(v int32) {
	b.WriteUvarint(uint64(ZigZag32(v)))
}

// WriteZigZag64 appends the zig-zag mapping of v as a varint.
func (b *Buffer) WriteZigZag64(v int64) {
	b.WriteUvarint(ZigZag64(v))
}

// Bytes returns the accumulated bytes. The slice aliases the buffer's
// internal storage; callers must not retain it across further writes.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// ZigZag32 maps a signed 32-bit value to an unsigned one so that small
// magnitudes of either sign stay small under varint encoding.
func ZigZag32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// UnZigZag32 inverts ZigZag32.
func UnZigZag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// ZigZag64 maps a signed 64-bit value to an unsigned one.
func ZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// UnZigZag64 inverts ZigZag64.
func UnZigZag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
