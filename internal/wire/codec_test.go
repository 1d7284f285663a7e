package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/roach88/hlatime/internal/ltime"
)

func TestEncodeValue_Integer64Time(t *testing.T) {
	tm, err := ltime.NewTime(ltime.Int(1))
	require.NoError(t, err)

	b, err := EncodeValue(tm)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0, 0, 0, 0, 0, 0, 0, 0x01}, b)
	assert.Equal(t, "020000000000000001", FormatHex(b))
}

func TestEncode_Float64(t *testing.T) {
	b, err := Encode(ltime.Float(1.0))
	require.NoError(t, err)
	// 1.0 = 0x3FF0000000000000
	assert.Equal(t, []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}, b)

	iv, err := ltime.NewInterval(ltime.Float(math.Copysign(0, -1)), 1e-9)
	require.NoError(t, err)
	b, err = EncodeValue(iv)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b[0])
	assert.Equal(t, byte(0x80), b[1], "codec keeps the sign bit; normalization is the factory's job")
}

func TestEncode_NegativeInteger(t *testing.T) {
	b, err := Encode(ltime.Int(-1))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, b)
}

func TestEncode_UnknownDomain(t *testing.T) {
	_, err := Encode(ltime.Number{})
	assert.True(t, ltime.IsDomainMismatchError(err))

	_, err = EncodeValue(ltime.Time{})
	assert.True(t, ltime.IsDomainMismatchError(err))

	_, err = EncodeValue(nil)
	assert.True(t, ltime.IsDomainMismatchError(err))
}

func TestAppendValue_Appends(t *testing.T) {
	tm, err := ltime.NewTime(ltime.Int(2))
	require.NoError(t, err)
	iv, err := ltime.NewInterval(ltime.Int(3), 0)
	require.NoError(t, err)

	buf, err := AppendValue(nil, tm)
	require.NoError(t, err)
	buf, err = AppendValue(buf, iv)
	require.NoError(t, err)

	require.Len(t, buf, 2*TaggedSize)
	first, err := DecodeValue(buf[:TaggedSize])
	require.NoError(t, err)
	second, err := DecodeValue(buf[TaggedSize:])
	require.NoError(t, err)
	assert.Equal(t, ltime.Int(2), first)
	assert.Equal(t, ltime.Int(3), second)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"short", func() error { _, err := Decode(ltime.Integer64, []byte{1, 2, 3}); return err }},
		{"long", func() error { _, err := Decode(ltime.Float64, make([]byte, 9)); return err }},
		{"unknown domain", func() error { _, err := Decode(ltime.Domain(3), make([]byte, 8)); return err }},
		{"tagged short", func() error { _, err := DecodeValue(make([]byte, 8)); return err }},
		{"tagged bad tag", func() error { _, err := DecodeValue(append([]byte{0x07}, make([]byte, 8)...)); return err }},
		{"tagged zero tag", func() error { _, err := DecodeValue(make([]byte, 9)); return err }},
		{"empty", func() error { _, err := DecodeValue(nil); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			require.Error(t, err)
			assert.ErrorIs(t, err, ltime.ErrMalformedEncoding)
		})
	}
}

func TestParseHex(t *testing.T) {
	b, err := ParseHex("0x02 00000000 00000001")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0, 0, 0, 0, 0, 0, 0, 0x01}, b)

	_, err = ParseHex("zz")
	assert.True(t, ltime.IsMalformedEncodingError(err))
}

func TestIntegerRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int64().Draw(t, "v")

		b, err := Encode(ltime.Int(v))
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		got, err := Decode(ltime.Integer64, b)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if got.Int64() != v {
			t.Fatalf("round-trip failed: got %d, want %d", got.Int64(), v)
		}
	})
}

func TestFloatRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Every bit pattern, NaN payloads included.
		bits := rapid.Uint64().Draw(t, "bits")
		v := math.Float64frombits(bits)

		b, err := Encode(ltime.Float(v))
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		got, err := Decode(ltime.Float64, b)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if math.Float64bits(got.Float64()) != bits {
			t.Fatalf("round-trip failed: got %#x, want %#x", math.Float64bits(got.Float64()), bits)
		}
	})
}

func TestTaggedRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var n ltime.Number
		if rapid.Bool().Draw(t, "integer") {
			n = ltime.Int(rapid.Int64Range(0, math.MaxInt64).Draw(t, "i"))
		} else {
			n = ltime.Float(rapid.Float64Range(0, 1e12).Draw(t, "f"))
		}
		iv, err := ltime.NewInterval(n, 0)
		if err != nil {
			t.Fatalf("interval: %v", err)
		}

		b, err := EncodeValue(iv)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if ltime.Domain(b[0]) != n.Domain() {
			t.Fatalf("tag %#x for domain %s", b[0], n.Domain())
		}
		got, err := DecodeValue(b)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if got != n {
			t.Fatalf("round-trip failed: got %v, want %v", got, n)
		}
	})
}
