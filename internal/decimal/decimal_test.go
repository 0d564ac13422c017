package decimal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_PinnedVectors(t *testing.T) {
	tests := []struct {
		name   string
		neg    bool
		digits string
		want   []byte
	}{
		{"zero", false, "0", []byte{0x00}},
		{"empty is zero", false, "", []byte{0x00}},
		{"negative zero keeps 0xFF", true, "0", []byte{0xFF}},
		// 255 must carry a leading 0x00, a bare 0xFF would read as -1.
		{"255", false, "255", []byte{0x00, 0xFF}},
		{"256", false, "256", []byte{0x01, 0x00}},
		{"65535", false, "65535", []byte{0x00, 0xFF, 0xFF}},
		{"minus one", true, "1", []byte{0xFF}},
		{"127", false, "127", []byte{0x7F}},
		{"128", false, "128", []byte{0x00, 0x80}},
		{"minus 128", true, "128", []byte{0x80}},
		{"minus 255", true, "255", []byte{0xFF, 0x01}},
		{"minus 256", true, "256", []byte{0xFF, 0x00}},
		{"leading zeros ignored", false, "00042", []byte{0x2A}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Encode(tc.neg, tc.digits))
		})
	}
}

func TestEncode_WideValues(t *testing.T) {
	// 2^64 = 18446744073709551616, needs 9 bytes: 0x01 followed by 8 zeros.
	got := Encode(false, "18446744073709551616")
	require.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0}, got)

	// 2^64 - 1 is all ones plus a sign-clearing prefix byte.
	got = Encode(false, "18446744073709551615")
	require.Equal(t, []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, got)
}

func TestDecode_RoundTrip(t *testing.T) {
	cases := []struct {
		neg    bool
		digits string
	}{
		{false, "0"},
		{false, "1"},
		{true, "1"},
		{false, "255"},
		{false, "256"},
		{true, "256"},
		{false, "65535"},
		{true, "9999999999999999999999999999"},
		{false, "123456789012345678901234567890"},
	}
	for _, tc := range cases {
		b := Encode(tc.neg, tc.digits)
		neg, digits := Decode(b)
		require.Equal(t, tc.digits, digits, "digits for %v%s", tc.neg, tc.digits)
		if tc.digits != "0" {
			require.Equal(t, tc.neg, neg, "sign for %s", tc.digits)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Run("strips sign and point", func(t *testing.T) {
		neg, digits, err := Normalize("-123.45")
		require.NoError(t, err)
		require.True(t, neg)
		require.Equal(t, "12345", digits)
	})

	t.Run("plus sign", func(t *testing.T) {
		neg, digits, err := Normalize("+10.5")
		require.NoError(t, err)
		require.False(t, neg)
		require.Equal(t, "105", digits)
	})

	t.Run("bare integer", func(t *testing.T) {
		neg, digits, err := Normalize("42")
		require.NoError(t, err)
		require.False(t, neg)
		require.Equal(t, "42", digits)
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, _, err := Normalize("12a4")
		require.ErrorIs(t, err, ErrBadLiteral)
	})

	t.Run("rejects two points", func(t *testing.T) {
		_, _, err := Normalize("1.2.3")
		require.ErrorIs(t, err, ErrBadLiteral)
	})
}

func TestEncodeString(t *testing.T) {
	b, err := EncodeString("-1")
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF}, b)

	b, err = EncodeString("2.56")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00}, b)

	_, err = EncodeString("not a number")
	require.ErrorIs(t, err, ErrBadLiteral)
}

func TestDecodeString_ScalePlacement(t *testing.T) {
	require.Equal(t, "123.45", DecodeString(Encode(false, "12345"), 2))
	require.Equal(t, "-0.05", DecodeString(Encode(true, "5"), 2))
	require.Equal(t, "12345", DecodeString(Encode(false, "12345"), 0))
	require.Equal(t, "0.001", DecodeString(Encode(false, "1"), 3))
}
