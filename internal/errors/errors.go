package errors

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// No repository discoverable from the analysis path
	ErrorTypeRepositoryNotFound ErrorType = iota
	// Reference enumeration or commit traversal failed
	ErrorTypeRepositoryAccess
	// Malformed user input (time bounds, alias pairs, enum values)
	ErrorTypeParse
	// Collection and filtering produced no commits
	ErrorTypeNoMatchingCommits
	// A reference match pattern could not be built
	ErrorTypeInvalidPattern
	// Missing or invalid configuration
	ErrorTypeConfig
	// Report store failures
	ErrorTypeStorage
	// Rendering failures
	ErrorTypeOutput
)

// Sentinels for errors.Is; matching compares only the Type.
var (
	ErrRepositoryNotFound = &Error{Type: ErrorTypeRepositoryNotFound}
	ErrRepositoryAccess   = &Error{Type: ErrorTypeRepositoryAccess}
	ErrParse              = &Error{Type: ErrorTypeParse}
	ErrNoMatchingCommits  = &Error{Type: ErrorTypeNoMatchingCommits}
	ErrInvalidPattern     = &Error{Type: ErrorTypeInvalidPattern}
	ErrConfig             = &Error{Type: ErrorTypeConfig}
	ErrStorage            = &Error{Type: ErrorTypeStorage}
	ErrOutput             = &Error{Type: ErrorTypeOutput}
)

// Error represents a structured error with context
type Error struct {
	Type       ErrorType
	Message    string
	Cause      error
	Context    map[string]interface{}
	StackTrace string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
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

// Is checks if this error matches the target error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// DetailedString returns a detailed error message with context
func (e *Error) DetailedString() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", typeString(e.Type), e.Message))

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Caused by: %v\n", e.Cause))
	}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("Context:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", k, e.Context[k]))
		}
	}

	if e.StackTrace != "" {
		sb.WriteString(fmt.Sprintf("Stack trace:\n%s\n", e.StackTrace))
	}

	return sb.String()
}

// String returns the upper-case kind name, e.g. NO_MATCHING_COMMITS
func (t ErrorType) String() string {
	return typeString(t)
}

func typeString(t ErrorType) string {
	switch t {
	case ErrorTypeRepositoryNotFound:
		return "REPOSITORY_NOT_FOUND"
	case ErrorTypeRepositoryAccess:
		return "REPOSITORY_ACCESS"
	case ErrorTypeParse:
		return "PARSE"
	case ErrorTypeNoMatchingCommits:
		return "NO_MATCHING_COMMITS"
	case ErrorTypeInvalidPattern:
		return "INVALID_PATTERN"
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeStorage:
		return "STORAGE"
	case ErrorTypeOutput:
		return "OUTPUT"
	default:
		return "UNKNOWN"
	}
}

// captureStackTrace captures the current stack trace
func captureStackTrace(skip int) string {
	var sb strings.Builder
	for i := skip; i < skip+10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			break
		}
		sb.WriteString(fmt.Sprintf("  %s:%d %s\n", file, line, fn.Name()))
	}
	return sb.String()
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:       errType,
		Message:    message,
		Context:    make(map[string]interface{}),
		StackTrace: captureStackTrace(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Type:       errType,
		Message:    message,
		Cause:      err,
		Context:    make(map[string]interface{}),
		StackTrace: captureStackTrace(2),
	}
}

// RepositoryNotFoundErrorf wraps a failed repository discovery
func RepositoryNotFoundErrorf(err error, format string, args ...interface{}) *Error {
	if err == nil {
		return New(ErrorTypeRepositoryNotFound, fmt.Sprintf(format, args...))
	}
	return Wrap(err, ErrorTypeRepositoryNotFound, fmt.Sprintf(format, args...))
}

// RepositoryAccessErrorf wraps a backend failure while reading refs or commits
func RepositoryAccessErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeRepositoryAccess, fmt.Sprintf(format, args...))
}

// ParseErrorf creates a parse error naming the offending input
func ParseErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeParse, fmt.Sprintf(format, args...))
}

// NoMatchingCommitsErrorf creates an empty-result error
func NoMatchingCommitsErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeNoMatchingCommits, fmt.Sprintf(format, args...))
}

// InvalidPatternError wraps a reference pattern compile failure
func InvalidPatternError(err error, pattern string) *Error {
	return Wrap(err, ErrorTypeInvalidPattern, fmt.Sprintf("invalid reference pattern '%s'", pattern)).
		WithContext("pattern", pattern)
}

// ConfigErrorf creates a configuration error with formatting
func ConfigErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeConfig, fmt.Sprintf(format, args...))
}

// StorageErrorf wraps a report store error with formatting
func StorageErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeStorage, fmt.Sprintf(format, args...))
}

// OutputErrorf wraps a rendering error with formatting
func OutputErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeOutput, fmt.Sprintf(format, args...))
}

// GetType returns the type of an error, walking wrapped causes
func GetType(err error) (ErrorType, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Type, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}
