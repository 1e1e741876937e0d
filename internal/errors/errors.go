package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// Configuration errors - missing or invalid settings and credentials
	ErrorTypeConfig ErrorType = iota
	// Validation errors - invalid user input such as a bad menu choice
	ErrorTypeValidation
	// Connection errors - driver creation, authentication, connectivity
	ErrorTypeConnection
	// Query errors - a read query failed or returned malformed rows
	ErrorTypeQuery
	// Catalog errors - the index catalog could not be listed
	ErrorTypeCatalogUnavailable
)

// Severity represents how critical an error is
type Severity int

const (
	// SeverityLow - output is complete apart from optional detail
	SeverityLow Severity = iota
	// SeverityMedium - one table is missing rows
	SeverityMedium
	// SeverityHigh - the database went away mid-run
	SeverityHigh
	// SeverityCritical - nothing can be printed
	SeverityCritical
)

// Sentinels for errors.Is matching by type.
var (
	ErrQuery              = &Error{Type: ErrorTypeQuery}
	ErrCatalogUnavailable = &Error{Type: ErrorTypeCatalogUnavailable}
	ErrConfig             = &Error{Type: ErrorTypeConfig}
)

// Error is a categorized error. Context carries key/value detail such as
// the operation that failed.
type Error struct {
	Type     ErrorType
	Severity Severity
	Message  string
	Cause    error
	Context  map[string]interface{}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Is matches on type only, so a sentinel matches every error of its kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// DetailedString renders kind, severity, every cause in the chain and the
// context keys in sorted order. Used for --verbose error output.
func (e *Error) DetailedString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] %s\n", e.Severity, e.Type, e.Message)

	for cause := e.Cause; cause != nil; {
		fmt.Fprintf(&sb, "Caused by: %v\n", cause)
		u, ok := cause.(interface{ Unwrap() error })
		if !ok {
			break
		}
		cause = u.Unwrap()
	}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("Context:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %v\n", k, e.Context[k])
		}
	}
	return sb.String()
}

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeConnection:
		return "CONNECTION"
	case ErrorTypeQuery:
		return "QUERY"
	case ErrorTypeCatalogUnavailable:
		return "CATALOG_UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// New creates a new error with the given type, severity, and message
func New(errType ErrorType, severity Severity, message string) *Error {
	return &Error{
		Type:     errType,
		Severity: severity,
		Message:  message,
	}
}

// Wrap wraps err; a nil err stays nil
func Wrap(err error, errType ErrorType, severity Severity, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Type:     errType,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// ConfigErrorf reports an unusable setting or credential. It stops the run.
func ConfigErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeConfig, SeverityCritical, fmt.Sprintf(format, args...))
}

// ValidationError reports bad user input
func ValidationError(message string) *Error {
	return New(ErrorTypeValidation, SeverityHigh, message)
}

// ValidationErrorf reports bad user input with formatting
func ValidationErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeValidation, SeverityHigh, fmt.Sprintf(format, args...))
}

// ConnectionError wraps a driver or connectivity failure.
// Connection failures stop the run.
func ConnectionError(err error, message string) *Error {
	return Wrap(err, ErrorTypeConnection, SeverityCritical, message)
}

// ConnectionErrorf wraps a connectivity failure with formatting
func ConnectionErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeConnection, SeverityCritical, fmt.Sprintf(format, args...))
}

// QueryError wraps a failed read query. The run continues without its rows.
func QueryError(err error, message string) *Error {
	return Wrap(err, ErrorTypeQuery, SeverityMedium, message)
}

// QueryErrorf wraps a failed read query with formatting
func QueryErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeQuery, SeverityMedium, fmt.Sprintf(format, args...))
}

// CatalogUnavailable wraps a failure to list the index catalog
func CatalogUnavailable(err error, message string) *Error {
	return Wrap(err, ErrorTypeCatalogUnavailable, SeverityLow, message)
}

// GetSeverity returns the severity of err. Untyped errors count as medium.
func GetSeverity(err error) Severity {
	if e, ok := err.(*Error); ok {
		return e.Severity
	}
	return SeverityMedium
}
