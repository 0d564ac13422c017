package binbuf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFixedWidth(t *testing.T) {
	buf := New()

	buf.WriteUint8(0xAB)
	buf.WriteInt32(1)
	buf.WriteInt32(-1)
	buf.WriteInt64(math.MinInt64)

	want := []byte{
		0xAB,
		0x01, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80,
	}
	require.Equal(t, want, buf.Bytes())
	require.Equal(t, len(want), buf.Len())
}

func TestWriteInt64_FullRange(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt32 + 1, math.MinInt32 - 1, math.MaxInt64, math.MinInt64} {
		buf := New()
		buf.WriteInt64(v)
		require.Len(t, buf.Bytes(), 8)
		require.Equal(t, v, int64(binary.LittleEndian.Uint64(buf.Bytes())))
	}
}

func TestWriteFloats(t *testing.T) {
	buf := New()
	buf.WriteFloat32(1.5)
	buf.WriteFloat64(-2.25)

	require.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf.Bytes()[:4])))
	require.Equal(t, -2.25, math.Float64frombits(binary.LittleEndian.Uint64(buf.Bytes()[4:])))
}

func TestWriteUvarint_Boundaries(t *testing.T) {
	t.Run("127 is one byte", func(t *testing.T) {
		buf := New()
		buf.WriteUvarint(127)
		require.Equal(t, []byte{0x7F}, buf.Bytes())
	})

	t.Run("128 is two bytes", func(t *testing.T) {
		buf := New()
		buf.WriteUvarint(128)
		require.Equal(t, []byte{0x80, 0x01}, buf.Bytes())
	})

	t.Run("zero is one byte", func(t *testing.T) {
		buf := New()
		buf.WriteUvarint(0)
		require.Equal(t, []byte{0x00}, buf.Bytes())
	})
}

func TestZigZag_RoundTrip(t *testing.T) {
	for _, v := range []int32{0, -1, 1, -2, 2, 63, -64, math.MaxInt32, math.MinInt32} {
		require.Equal(t, v, UnZigZag32(ZigZag32(v)), "value %d", v)
	}
	for _, v := range []int64{0, -1, 1, math.MaxInt64, math.MinInt64} {
		require.Equal(t, v, UnZigZag64(ZigZag64(v)), "value %d", v)
	}
}

func TestZigZag_SmallMagnitudesStaySmall(t *testing.T) {
	require.Equal(t, uint32(0), ZigZag32(0))
	require.Equal(t, uint32(1), ZigZag32(-1))
	require.Equal(t, uint32(2), ZigZag32(1))
	require.Equal(t, uint32(3), ZigZag32(-2))
	require.Equal(t, uint64(math.MaxUint64), ZigZag64(math.MinInt64))
}

func TestWriteZigZag_EncodesAsVarint(t *testing.T) {
	buf := New()
	buf.WriteZigZag32(-1)
	require.Equal(t, []byte{0x01}, buf.Bytes())

	buf = New()
	buf.WriteZigZag64(64) // zigzag 128 -> two varint bytes
	require.Equal(t, []byte{0x80, 0x01}, buf.Bytes())
}

func TestBytesAndLen_MidWrite(t *testing.T) {
	buf := New()
	require.Equal(t, 0, buf.Len())
	require.Empty(t, buf.Bytes())

	buf.WriteBytes([]byte("PQT0"))
	require.Equal(t, 4, buf.Len())
	require.Equal(t, []byte("PQT0"), buf.Bytes())

	buf.WriteInt32(7)
	require.Equal(t, 8, buf.Len())
}

func TestNewSize_Preallocates(t *testing.T) {
	buf := NewSize(64)
	require.Equal(t, 0, buf.Len())
	buf.WriteBytes(make([]byte, 64))
	require.Equal(t, 64, buf.Len())
}
