package errors

import (
	"fmt"
	"os"
	"strings"

	"richclip/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess       ExitCode = 0
	ExitCodeGeneral       ExitCode = 1
	ExitCodeConfig        ExitCode = 2
	ExitCodeParse         ExitCode = 3
	ExitCodeNotFound      ExitCode = 4
	ExitCodeInvalidRange  ExitCode = 5
	ExitCodeProcess       ExitCode = 6
	ExitCodeValidation    ExitCode = 7
	ExitCodeFileOperation ExitCode = 8
	ExitCodeUnsupported   ExitCode = 9
)

// Standardized error messages for consistent user-facing errors
const (
	ErrMsgRenderFailed    = "Failed to render document to HTML"
	ErrMsgClipboardFailed = "Failed to write to the clipboard"
	ErrMsgDecodeFailed    = "Failed to decode clipboard container"
	ErrMsgEncodeFailed    = "Failed to encode clipboard container"
	ErrMsgInvalidInput    = "Invalid input provided"
)

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code ExitCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

func NewWithSuggestion(code ExitCode, message string, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if wrapped, ok := err.(*Error); ok {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

func WrapWithCode(err error, code ExitCode, message string) *Error {
	if err == nil {
		return nil
	}

	var errMsg string
	if wrapped, ok := err.(*Error); ok {
		errMsg = wrapped.Message
		if wrapped.Underlying != nil {
			errMsg += ": " + wrapped.Underlying.Error()
		}
	} else {
		errMsg = err.Error()
	}

	return &Error{
		Code:       code,
		Message:    message + ": " + errMsg,
		Underlying: err,
	}
}

func IsExitCode(err error, code ExitCode) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		return e.Code == code
	}

	return false
}

// ParseError reports a clipboard container whose header matches neither the
// extended nor the basic grammar. Decoding aborts with no partial result.
func ParseError(detail string) *Error {
	return &Error{
		Code:    ExitCodeParse,
		Message: fmt.Sprintf("Clipboard container is not valid HTML Format: %s", detail),
	}
}

// NotFoundError reports a fragment or selection that is not a literal
// substring of its document at encode time.
func NotFoundError(what string) *Error {
	return &Error{
		Code:    ExitCodeNotFound,
		Message: fmt.Sprintf("%s not found in document", what),
	}
}

// InvalidRangeError reports offsets that violate the container ordering
// invariants; encoding rejects them rather than producing a corrupt payload.
func InvalidRangeError(detail string) *Error {
	return &Error{
		Code:    ExitCodeInvalidRange,
		Message: fmt.Sprintf("Invalid container offsets: %s", detail),
	}
}

// ProcessError reports an external clipboard command that could not be
// launched or exited non-zero.
func ProcessError(command string, err error) *Error {
	return &Error{
		Code:       ExitCodeProcess,
		Message:    fmt.Sprintf("Clipboard command failed: %s", command),
		Underlying: err,
		Suggestion: "Verify the command is installed and on PATH, or override its template in the config file.",
	}
}

// UnsupportedPlatformError reports an operation with no implementation for
// the current OS.
func UnsupportedPlatformError(operation, goos string) *Error {
	return &Error{
		Code:    ExitCodeUnsupported,
		Message: fmt.Sprintf("%s is not supported on %s", operation, goos),
	}
}

func ConfigError(message string) *Error {
	return &Error{
		Code:       ExitCodeConfig,
		Message:    message,
		Suggestion: "Check your configuration file or set the required environment variables.",
	}
}

func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: message,
	}
}

func FileError(message string, err error) *Error {
	return &Error{
		Code:       ExitCodeFileOperation,
		Message:    message,
		Underlying: err,
	}
}

// HandleReturn processes an error and returns the appropriate exit code.
// It does not call os.Exit - the caller is responsible for exiting the
// program. This makes it suitable for use in library code.
func HandleReturn(err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	var exitCode ExitCode = ExitCodeGeneral
	var message string
	var suggestion string

	if e, ok := err.(*Error); ok {
		exitCode = e.Code
		message = e.Message
		suggestion = e.Suggestion

		if e.Underlying != nil {
			logger.Error().Err(e.Underlying).Msg(e.Message)
		} else {
			logger.Error().Msg(e.Message)
		}
	} else {
		message = err.Error()
		logger.Error().Msg(message)
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(os.Stderr)
	red.Fprint(os.Stderr, "Error: ")
	fmt.Fprintln(os.Stderr, message)

	if suggestion != "" {
		yellow.Fprint(os.Stderr, "Suggestion: ")
		lines := strings.Split(suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				fmt.Fprintln(os.Stderr, line)
			} else {
				if strings.HasPrefix(line, "  -") {
					cyan.Fprintln(os.Stderr, line)
				} else {
					fmt.Fprintln(os.Stderr, "           "+line)
				}
			}
		}
	}

	fmt.Fprintln(os.Stderr)

	return exitCode
}

// Notice prints a user-facing informational message. Used for outcomes that
// are not failures, such as the image locator exhausting its cascade.
func Notice(message string) {
	cyan := color.New(color.FgCyan)
	cyan.Fprint(os.Stderr, "Notice: ")
	fmt.Fprintln(os.Stderr, message)
}
