package ltime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		in      Number
		want    Number
		errCode ErrorCode
	}{
		{"int positive", Int(5), Int(5), ""},
		{"int zero", Int(0), Int(0), ""},
		{"int negative", Int(-1), Number{}, CodeInvalidInterval},
		{"float positive", Float(0.25), Float(0.25), ""},
		{"float negative", Float(-0.5), Number{}, CodeInvalidInterval},
		{"float negative within eps", Float(-1e-12), Float(0), ""},
		{"float negative eps", Float(-testEps), Number{}, CodeInvalidInterval},
		{"float nan", Float(math.NaN()), Number{}, CodeOverflow},
		{"no domain", Number{}, Number{}, CodeDomainMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := NewInterval(tt.in, testEps)
			if tt.errCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errCode, CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, iv.Number())
		})
	}
}

func TestNewInterval_NegativeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int64Range(math.MinInt64, -1).Draw(t, "v")
		_, err := NewInterval(Int(v), testEps)
		if !IsInvalidIntervalError(err) {
			t.Fatalf("NewInterval(%d) err = %v", v, err)
		}

		f := rapid.Float64Range(-1e9, -1e-6).Draw(t, "f")
		_, err = NewInterval(Float(f), testEps)
		if !IsInvalidIntervalError(err) {
			t.Fatalf("NewInterval(%v) err = %v", f, err)
		}
	})
}

func TestInterval_Arithmetic(t *testing.T) {
	a := mustInterval(t, Int(10))
	b := mustInterval(t, Int(4))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Int(14), sum.Number())

	diff, err := a.Subtract(b, testEps)
	require.NoError(t, err)
	assert.Equal(t, Int(6), diff.Number())

	_, err = b.Subtract(a, testEps)
	assert.True(t, IsInvalidIntervalError(err))

	_, err = mustInterval(t, Int(math.MaxInt64)).Add(mustInterval(t, Int(1)))
	assert.True(t, IsOverflowError(err))

	_, err = a.Add(mustInterval(t, Float(1)))
	assert.True(t, IsDomainMismatchError(err))
}

func TestInterval_Compare(t *testing.T) {
	o, err := mustInterval(t, Float(0.5)).Compare(mustInterval(t, Float(0.25)), testEps)
	require.NoError(t, err)
	assert.Equal(t, Greater, o)

	o, err = mustInterval(t, Int(3)).Compare(mustInterval(t, Int(3)), testEps)
	require.NoError(t, err)
	assert.Equal(t, Equal, o)
}

func TestEpsilonInterval(t *testing.T) {
	assert.Equal(t, Int(1), EpsilonInterval(Integer64, testEps).Number())
	assert.Equal(t, Float(testEps), EpsilonInterval(Float64, testEps).Number())
	assert.Equal(t, Number{}, EpsilonInterval(Domain(9), testEps).Number())

	assert.True(t, ZeroInterval(Integer64).IsZero(testEps))
	assert.False(t, EpsilonInterval(Integer64, testEps).IsZero(testEps))
	assert.False(t, EpsilonInterval(Float64, testEps).IsZero(testEps))

	iv, err := NewInterval(Float(testEps), testEps)
	require.NoError(t, err)
	assert.Equal(t, Float(testEps), iv.Number(), "eps survives normalization")
}
