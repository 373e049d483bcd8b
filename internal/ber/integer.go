package ber

import (
	"golang.org/x/exp/constraints"
)

// maxIntegerOctets is the longest content that fits an int64.
const maxIntegerOctets = 8

// DecodeBoolean decodes the content octets of a BOOLEAN. Any non-zero octet
// is TRUE.
func DecodeBoolean(content []byte) (bool, error) {
	if len(content) != 1 {
		return false, ErrInvalidBoolean
	}
	return content[0] != 0x00, nil
}

// DecodeInteger decodes big-endian two's complement content octets.
// Empty content and content longer than eight octets are rejected.
func DecodeInteger(content []byte) (int64, error) {
	if len(content) == 0 || len(content) > maxIntegerOctets {
		return 0, ErrInvalidInteger
	}

	var result int64
	if content[0]&0x80 != 0 {
		// Sign extension
		result = -1
	}
	for _, b := range content {
		result = (result << 8) | int64(b)
	}
	return result, nil
}

// DecodeIntegerInRange decodes content octets into T and checks the value
// against [min, max]. Values outside the range return an *IntegerRangeError.
func DecodeIntegerInRange[T constraints.Signed](content []byte, min, max T) (T, error) {
	v, err := DecodeInteger(content)
	if err != nil {
		return 0, err
	}
	if v < int64(min) || v > int64(max) {
		return 0, &IntegerRangeError{Value: v, Min: int64(min), Max: int64(max)}
	}
	return T(v), nil
}

// EncodeInteger encodes v as minimal big-endian two's complement octets.
func EncodeInteger(v int64) []byte {
	n := 1
	for n < maxIntegerOctets {
		// The value fits in n octets when shifting out the lower n*8-1 bits
		// leaves only sign bits.
		rest := v >> (uint(n)*8 - 1)
		if rest == 0 || rest == -1 {
			break
		}
		n++
	}

	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}
