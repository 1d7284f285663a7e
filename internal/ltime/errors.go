package ltime

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes failures of time construction and arithmetic.
type ErrorCode string

const (
	// CodeDomainMismatch indicates operands from different (or unknown) domains.
	CodeDomainMismatch ErrorCode = "DOMAIN_MISMATCH"

	// CodeInvalidInterval indicates a negative interval was about to be built.
	CodeInvalidInterval ErrorCode = "INVALID_INTERVAL"

	// CodeOverflow indicates a result outside the domain's representable range.
	CodeOverflow ErrorCode = "OVERFLOW"

	// CodeParse indicates literal text that is not a number of the domain.
	CodeParse ErrorCode = "PARSE"

	// CodeMalformedEncoding indicates wire bytes of wrong length or unknown tag.
	CodeMalformedEncoding ErrorCode = "MALFORMED_ENCODING"

	// CodeInvalidTime indicates a requested time earlier than the current time.
	CodeInvalidTime ErrorCode = "INVALID_TIME"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrDomainMismatch    = &Error{Code: CodeDomainMismatch, Message: "domain mismatch"}
	ErrInvalidInterval   = &Error{Code: CodeInvalidInterval, Message: "negative interval"}
	ErrOverflow          = &Error{Code: CodeOverflow, Message: "overflow"}
	ErrParse             = &Error{Code: CodeParse, Message: "parse failure"}
	ErrMalformedEncoding = &Error{Code: CodeMalformedEncoding, Message: "malformed encoding"}
	ErrInvalidTime       = &Error{Code: CodeInvalidTime, Message: "invalid logical time"}
)

// Error is returned by every failing construction or operation.
// It is fatal to the operation that produced it and never to the process.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that failed (e.g. "add", "decode").
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// NewError creates an Error without an underlying cause.
func NewError(code ErrorCode, op, message string) *Error {
	return &Error{Code: code, Op: op, Message: message}
}

// WrapError creates an Error carrying cause.
func WrapError(code ErrorCode, op, message string, cause error) *Error {
	return &Error{Code: code, Op: op, Message: message, Err: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// IsDomainMismatchError returns true if err is a domain mismatch.
func IsDomainMismatchError(err error) bool { return CodeOf(err) == CodeDomainMismatch }

// IsInvalidIntervalError returns true if err rejects a negative interval.
func IsInvalidIntervalError(err error) bool { return CodeOf(err) == CodeInvalidInterval }

// IsOverflowError returns true if err is an arithmetic or range overflow.
func IsOverflowError(err error) bool { return CodeOf(err) == CodeOverflow }

// IsParseError returns true if err rejects literal text.
func IsParseError(err error) bool { return CodeOf(err) == CodeParse }

// IsMalformedEncodingError returns true if err rejects wire bytes.
func IsMalformedEncodingError(err error) bool { return CodeOf(err) == CodeMalformedEncoding }

// IsInvalidTimeError returns true if err rejects a backwards time advance.
func IsInvalidTimeError(err error) bool { return CodeOf(err) == CodeInvalidTime }

func domainMismatch(op string, a, b Domain) *Error {
	return NewError(CodeDomainMismatch, op, fmt.Sprintf("%s operand with %s operand", a, b))
}

func unknownDomain(op string, d Domain) *Error {
	return NewError(CodeDomainMismatch, op, fmt.Sprintf("unknown time domain %s", d))
}
