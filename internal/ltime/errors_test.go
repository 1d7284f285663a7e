package ltime

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := NewError(CodeOverflow, "add", "too big")
	assert.Equal(t, "add: OVERFLOW: too big", err.Error())

	err = NewError(CodeParse, "", "bad")
	assert.Equal(t, "PARSE: bad", err.Error())

	cause := errors.New("short read")
	wrapped := WrapError(CodeMalformedEncoding, "decode", "need 8 bytes", cause)
	assert.Equal(t, "decode: MALFORMED_ENCODING: need 8 bytes: short read", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("handling message: %w", NewError(CodeInvalidInterval, "make interval", "negative"))

	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.NotErrorIs(t, err, ErrOverflow)
	assert.True(t, IsInvalidIntervalError(err))
	assert.False(t, IsParseError(err))
	assert.Equal(t, CodeInvalidInterval, CodeOf(err))
}

func TestCodeOf_NonLtimeError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("other")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		code  ErrorCode
		check func(error) bool
	}{
		{CodeDomainMismatch, IsDomainMismatchError},
		{CodeInvalidInterval, IsInvalidIntervalError},
		{CodeOverflow, IsOverflowError},
		{CodeParse, IsParseError},
		{CodeMalformedEncoding, IsMalformedEncodingError},
		{CodeInvalidTime, IsInvalidTimeError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.True(t, tt.check(NewError(tt.code, "op", "msg")))
			assert.False(t, tt.check(NewError("OTHER", "op", "msg")))
		})
	}
}
