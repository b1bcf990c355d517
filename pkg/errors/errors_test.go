package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "basic error without underlying",
			err:      &Error{Code: ExitCodeGeneral, Message: "test error"},
			expected: "test error",
		},
		{
			name:     "error with underlying",
			err:      &Error{Code: ExitCodeConfig, Message: "config error", Underlying: errors.New("file not found")},
			expected: "config error: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:       ExitCodeGeneral,
		Message:    "test error",
		Underlying: underlying,
	}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should match the underlying error")
	}
}

func TestIsExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     ExitCode
		expected bool
	}{
		{
			name:     "matching code",
			err:      ParseError("missing StartHTML field"),
			code:     ExitCodeParse,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      NotFoundError("fragment"),
			code:     ExitCodeParse,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ExitCodeGeneral,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ExitCodeGeneral,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExitCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsExitCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code ExitCode
	}{
		{"parse", ParseError("x"), ExitCodeParse},
		{"not found", NotFoundError("selection"), ExitCodeNotFound},
		{"invalid range", InvalidRangeError("EndFragment before StartFragment"), ExitCodeInvalidRange},
		{"process", ProcessError("xclip", errors.New("exit status 1")), ExitCodeProcess},
		{"unsupported", UnsupportedPlatformError("image copy", "windows"), ExitCodeUnsupported},
		{"config", ConfigError("bad template"), ExitCodeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.code)
			}
		})
	}
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := InvalidRangeError("fragment end past document")
	wrapped := Wrap(inner, "encode failed")

	if wrapped.Code != ExitCodeInvalidRange {
		t.Errorf("Wrap() code = %d, want %d", wrapped.Code, ExitCodeInvalidRange)
	}
	if wrapped.Message != "encode failed: "+inner.Message {
		t.Errorf("Wrap() message = %q", wrapped.Message)
	}
}

func TestHandleReturn(t *testing.T) {
	if got := HandleReturn(nil); got != ExitCodeSuccess {
		t.Errorf("HandleReturn(nil) = %d, want %d", got, ExitCodeSuccess)
	}
	if got := HandleReturn(ProcessError("pbcopy", errors.New("not found"))); got != ExitCodeProcess {
		t.Errorf("HandleReturn() = %d, want %d", got, ExitCodeProcess)
	}
	if got := HandleReturn(errors.New("plain")); got != ExitCodeGeneral {
		t.Errorf("HandleReturn(plain) = %d, want %d", got, ExitCodeGeneral)
	}
}
