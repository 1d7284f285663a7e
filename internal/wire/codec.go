// Package wire implements the canonical binary form of logical time values.
//
// Every federate, whatever its host byte order, must read the same logical
// value from the same bytes. The encoding is therefore fixed-width and
// big-endian:
//
//	Float64:   IEEE-754 binary64 bit pattern, 8 bytes
//	Integer64: two's-complement int64, 8 bytes
//
// On the federation wire each value is prefixed with a one-byte domain tag
// (0x01 Float64, 0x02 Integer64), 9 bytes in total.
//
// The codec moves raw numbers only. It does not validate them as times or
// intervals; that is the factory's job.
package wire

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/roach88/hlatime/internal/ltime"
)

const (
	// Size is the length of an untagged encoded number.
	Size = 8

	// TaggedSize is the length of a tagged wire value.
	TaggedSize = 1 + Size
)

// Encode returns the 8-byte canonical form of n.
func Encode(n ltime.Number) ([]byte, error) {
	return Append(make([]byte, 0, Size), n)
}

// Append appends the 8-byte canonical form of n to dst.
func Append(dst []byte, n ltime.Number) ([]byte, error) {
	switch n.Domain() {
	case ltime.Float64:
		return binary.BigEndian.AppendUint64(dst, math.Float64bits(n.Float64())), nil
	case ltime.Integer64:
		return binary.BigEndian.AppendUint64(dst, uint64(n.Int64())), nil
	default:
		return dst, ltime.NewError(ltime.CodeDomainMismatch, "encode", fmt.Sprintf("unknown time domain %s", n.Domain()))
	}
}

// Decode reads an 8-byte canonical number of domain d.
// The raw round trip is bit-exact: Decode(d, Encode(n)) == n.
func Decode(d ltime.Domain, b []byte) (ltime.Number, error) {
	if len(b) != Size {
		return ltime.Number{}, ltime.NewError(ltime.CodeMalformedEncoding, "decode",
			fmt.Sprintf("expected %d bytes, got %d", Size, len(b)))
	}
	bits := binary.BigEndian.Uint64(b)
	switch d {
	case ltime.Float64:
		return ltime.Float(math.Float64frombits(bits)), nil
	case ltime.Integer64:
		return ltime.Int(int64(bits)), nil
	default:
		return ltime.Number{}, ltime.NewError(ltime.CodeMalformedEncoding, "decode",
			fmt.Sprintf("unknown time domain %s", d))
	}
}

// EncodeValue returns the 9-byte tagged wire form of a time or interval.
func EncodeValue(v ltime.Value) ([]byte, error) {
	return AppendValue(make([]byte, 0, TaggedSize), v)
}

// AppendValue appends the 9-byte tagged wire form of v to dst.
func AppendValue(dst []byte, v ltime.Value) ([]byte, error) {
	if v == nil {
		return dst, ltime.NewError(ltime.CodeDomainMismatch, "encode", "nil value")
	}
	n := v.Number()
	if !n.Domain().Valid() {
		return dst, ltime.NewError(ltime.CodeDomainMismatch, "encode", fmt.Sprintf("unknown time domain %s", n.Domain()))
	}
	return Append(append(dst, byte(n.Domain())), n)
}

// DecodeValue reads a 9-byte tagged wire value and returns its raw number.
// The domain comes from the tag byte.
func DecodeValue(b []byte) (ltime.Number, error) {
	if len(b) != TaggedSize {
		return ltime.Number{}, ltime.NewError(ltime.CodeMalformedEncoding, "decode",
			fmt.Sprintf("expected %d bytes, got %d", TaggedSize, len(b)))
	}
	d := ltime.Domain(b[0])
	if !d.Valid() {
		return ltime.Number{}, ltime.NewError(ltime.CodeMalformedEncoding, "decode",
			fmt.Sprintf("invalid domain tag 0x%02x", b[0]))
	}
	return Decode(d, b[1:])
}

// FormatHex renders wire bytes as lowercase hex.
func FormatHex(b []byte) string {
	return hex.EncodeToString(b)
}

// ParseHex reads hex wire bytes. Whitespace and an optional 0x prefix are ignored.
func ParseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ltime.WrapError(ltime.CodeMalformedEncoding, "parse hex", "not a hex string", err)
	}
	return b, nil
}
