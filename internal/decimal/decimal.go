// Package decimal encodes arbitrary-precision base-10 integers as minimal
// big-endian two's-complement bytes. The arithmetic works directly on ASCII
// digit strings so values are not bounded by any machine word size; the
// decimal point is never encoded, the column scale is the out-of-band
// contract for where it belongs.
package decimal

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadLiteral = errors.New("decimal: literal is not a decimal number")

// Normalize splits a decimal literal into a sign and a bare digit string.
// A leading '+' or '-' is stripped and captured, a single decimal point is
// removed (the caller's scale must already account for it). An empty digit
// string is allowed and means zero.
func Normalize(lit string) (neg bool, digits string, err error) {
	s := lit
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if n := strings.Count(s, "."); n > 1 {
		return false, "", fmt.Errorf("%w: %q", ErrBadLiteral, lit)
	}
	s = strings.Replace(s, ".", "", 1)

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false, "", fmt.Errorf("%w: %q", ErrBadLiteral, lit)
		}
	}
	return neg, s, nil
}

// EncodeString normalizes lit and encodes it.
func EncodeString(lit string) ([]byte, error) {
	neg, digits, err := Normalize(lit)
	if err != nil {
		return nil, err
	}
	return Encode(neg, digits), nil
}

// Encode converts a sign and digit string into the minimal big-endian
// two's-complement representation. Zero magnitude encodes as 0x00, or 0xFF
// when the sign is negative (a quirk the on-disk format keeps).
func Encode(neg bool, digits string) []byte {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		if neg {
			return []byte{0xFF}
		}
		return []byte{0x00}
	}

	// Long division by 256 over the digit string, remainders become the
	// magnitude bytes, most significant first.
	var mag []byte
	for digits != "" {
		q, r := divmod256(digits)
		mag = append([]byte{r}, mag...)
		digits = q
	}

	// A set high bit would flip the sign on read, keep the magnitude
	// unambiguously non-negative before any complementing.
	if mag[0]&0x80 != 0 {
		mag = append([]byte{0x00}, mag...)
	}

	if !neg {
		return mag
	}

	// Two's complement: invert, add one with carry propagation.
	for i := range mag {
		mag[i] = ^mag[i]
	}
	carry := byte(1)
	for i := len(mag) - 1; i >= 0 && carry != 0; i-- {
		mag[i] += carry
		if mag[i] != 0 {
			carry = 0
		}
	}
	if carry != 0 {
		mag = append([]byte{0x01}, mag...)
	}

	// Drop redundant sign extension so the result stays minimal.
	for len(mag) > 1 && mag[0] == 0xFF && mag[1]&0x80 != 0 {
		mag = mag[1:]
	}
	return mag
}

// Decode inverts Encode: big-endian two's-complement bytes back to a sign
// and digit string. Zero-length input decodes as zero.
func Decode(b []byte) (neg bool, digits string) {
	if len(b) == 0 {
		return false, "0"
	}

	mag := make([]byte, len(b))
	copy(mag, b)

	if mag[0]&0x80 != 0 {
		neg = true
		// Undo the complement: subtract one with borrow, then invert.
		borrow := byte(1)
		for i := len(mag) - 1; i >= 0 && borrow != 0; i-- {
			if mag[i] != 0 {
				borrow = 0
			}
			mag[i]--
		}
		for i := range mag {
			mag[i] = ^mag[i]
		}
	}

	digits = "0"
	for _, by := range mag {
		digits = mulAdd(digits, 256, int(by))
	}
	return neg, digits
}

// DecodeString renders encoded bytes as a decimal literal with the point
// inserted scale digits from the right.
func DecodeString(b []byte, scale int) string {
	neg, digits := Decode(b)

	if scale > 0 {
		for len(digits) <= scale {
			digits = "0" + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if neg {
		return "-" + digits
	}
	return digits
}

// divmod256 divides a decimal digit string by 256, returning the quotient
// digit string (no leading zeros, empty when zero) and the remainder byte.
func divmod256(digits string) (quot string, rem byte) {
	var q []byte
	r := 0
	for i := 0; i < len(digits); i++ {
		r = r*10 + int(digits[i]-'0')
		d := r / 256
		r %= 256
		if len(q) > 0 || d != 0 {
			q = append(q, byte('0'+d))
		}
	}
	return string(q), byte(r)
}

// mulAdd computes digits*m + a over a decimal digit string.
func mulAdd(digits string, m, a int) string {
	carry := a
	out := make([]byte, len(digits))
	for i := len(digits) - 1; i >= 0; i-- {
		v := int(digits[i]-'0')*m + carry
		out[i] = byte('0' + v%10)
		carry = v / 10
	}
	for carry > 0 {
		out = append([]byte{byte('0' + carry%10)}, out...)
		carry /= 10
	}
	s := strings.TrimLeft(string(out), "0")
	if s == "" {
		return "0"
	}
	return s
}
