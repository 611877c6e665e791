package domain

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrorCode is the outcome category of a run. Its numeric value is the
// process exit status.
type ErrorCode int

const (
	NoError              ErrorCode = 0
	SystemError          ErrorCode = 1
	InvalidResponseError ErrorCode = 2
	ResponseParseError   ErrorCode = 3
)

var errorCodeNames = map[ErrorCode]string{
	NoError:              "NO_ERROR",
	SystemError:          "SYSTEM_ERROR",
	InvalidResponseError: "INVALID_RESPONSE_ERROR",
	ResponseParseError:   "RESPONSE_PARSE_ERROR",
}

// NameOf returns the symbolic name of code.
// Codes outside the known set report as NO_ERROR; unknown input is treated
// as the benign case instead of failing the diagnostic itself.
func NameOf(code int) string {
	if name, ok := errorCodeNames[ErrorCode(code)]; ok {
		return name
	}
	return errorCodeNames[NoError]
}

func (c ErrorCode) String() string { return NameOf(int(c)) }

// SuccessMessage is reported on the status line of a successful run.
const SuccessMessage = "Application terminated successfully"

// ExitError carries an outcome category and a user-facing message to the
// top level of the command.
type ExitError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// NewExitError creates an ExitError wrapping err.
func NewExitError(code ErrorCode, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode satisfies urfave/cli's ExitCoder.
func (e *ExitError) ExitCode() int { return int(e.Code) }

// ClassifyError turns any error into an ExitError. A nil error yields nil.
// Errors that already carry a category keep it; everything else is a
// system error.
func ClassifyError(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return NewExitError(SystemError, fmt.Sprintf("A system error occurred with message: %v", err), err)
}

// Exiter terminates the process. Tests replace it.
var Exiter = os.Exit

// StatusLine formats the final line printed by every run.
func StatusLine(code ErrorCode, message string) string {
	return fmt.Sprintf("Application exiting with error code: %s and message: %s", NameOf(int(code)), message)
}

// ExitWithMessage prints the status line to w and terminates the process
// with code as its exit status.
func ExitWithMessage(w io.Writer, code ErrorCode, message string) {
	fmt.Fprintln(w, StatusLine(code, message))
	Exiter(int(code))
}
