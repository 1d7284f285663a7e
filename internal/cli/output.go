package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/hlatime/internal/ltime"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected time value, invalid config, failed scenario
	ExitCommandError = 2 // Command error (unreadable files, bad flags, etc.)
)

// CLI error codes.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeConfig       = "E002" // Config could not be loaded
	ErrCodeInvalid      = "E003" // Config loaded but invalid
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeTestFailed   = "E008" // One or more scenarios failed
	ErrCodeDomain       = "E010" // Time domain mismatch
	ErrCodeInterval     = "E011" // Negative interval
	ErrCodeOverflow     = "E012" // Value out of range
	ErrCodeParse        = "E013" // Malformed literal
	ErrCodeEncoding     = "E014" // Malformed wire bytes
	ErrCodeInvalidTime  = "E015" // Time earlier than allowed
)

var timeErrorCodes = map[ltime.ErrorCode]string{
	ltime.CodeDomainMismatch:    ErrCodeDomain,
	ltime.CodeInvalidInterval:   ErrCodeInterval,
	ltime.CodeOverflow:          ErrCodeOverflow,
	ltime.CodeParse:             ErrCodeParse,
	ltime.CodeMalformedEncoding: ErrCodeEncoding,
	ltime.CodeInvalidTime:       ErrCodeInvalidTime,
}

// ErrorCode maps err to a CLI error code.
func ErrorCode(err error) string {
	if code, ok := timeErrorCodes[ltime.CodeOf(err)]; ok {
		return code
	}
	return ErrCodeGeneric
}

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code     int    // Exit code (use ExitFailure or ExitCommandError)
	Message  string // Error message
	Err      error  // Underlying error (optional)
	Reported bool   // Already written to the command's output
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// reportedExitError is WrapExitError for a failure already written through
// an OutputFormatter.
func reportedExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err, Reported: true}
}

// ReportError writes err to w unless a command already reported it.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E010", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs data as JSON, or text as a single line.
func (f *OutputFormatter) Success(text string, data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns an ExitError carrying exit. Time errors
// carry their error code as details.
func (f *OutputFormatter) Fail(exit int, err error) error {
	var details any
	if code := ltime.CodeOf(err); code != "" {
		details = map[string]string{"time_error": string(code)}
	}
	if outErr := f.Error(ErrorCode(err), err.Error(), details); outErr != nil {
		return outErr
	}
	return reportedExitError(exit, "command failed", err)
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
