package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "Validation"
	ErrorTypeFileSystem    ErrorType = "FileSystem"
	ErrorTypeConfiguration ErrorType = "Configuration"
	ErrorTypeStorage       ErrorType = "Storage"
	ErrorTypeUpload        ErrorType = "Upload"
)

// Error is a user-facing error with actionable guidance. The core engine
// never produces these; they belong to the I/O boundary: loading input
// files, saving reports, uploading to object storage.
type Error struct {
	Type      ErrorType
	Message   string
	Cause     string
	Solutions []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))
	if e.Cause != "" {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", e.Cause))
	}
	if len(e.Solutions) > 0 {
		sb.WriteString("Solutions:\n")
		for _, solution := range e.Solutions {
			sb.WriteString(fmt.Sprintf("  - %s\n", solution))
		}
	}

	return sb.String()
}

// Format implements fmt.Formatter; %+v includes the error category
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, e.Error())
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "[%s] %s", e.Type, e.Error())
		} else {
			fmt.Fprint(f, e.Error())
		}
	}
}

// New creates a new categorized error
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// WithCause attaches the underlying cause
func (e *Error) WithCause(cause string) *Error {
	e.Cause = cause
	return e
}

// WithSolutions appends suggested fixes shown to the user
func (e *Error) WithSolutions(solutions ...string) *Error {
	e.Solutions = append(e.Solutions, solutions...)
	return e
}

// IsType reports whether err is a driftlens error of the given category
func IsType(err error, errType ErrorType) bool {
	e, ok := err.(*Error)
	return ok && e.Type == errType
}
