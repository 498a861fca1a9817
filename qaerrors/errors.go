// Package qaerrors defines the error taxonomy shared by the cleaning pipeline.
//
// Parse and format failures abort the current file. Metadata lookup misses are
// not errors at all; they resolve to the "Unknown" label in the metadata package.
package qaerrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType classifies an AppError.
type ErrorType string

const (
	ErrTypeFileFormat     ErrorType = "FILE_FORMAT"
	ErrTypeTimestamp      ErrorType = "TIMESTAMP_PARSE"
	ErrTypeSchema         ErrorType = "SCHEMA"
	ErrTypeSchemaMismatch ErrorType = "SCHEMA_MISMATCH"
	ErrTypeConfig         ErrorType = "CONFIG"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeIO             ErrorType = "IO"
)

// AppError is a typed pipeline error with optional cause and context.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Type, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Context[k])
		}
		b.WriteString(")")
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to see the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds a key/value pair to the error and returns it.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new AppError.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewFileFormatError reports a missing or unexpected header row or column.
func NewFileFormatError(message string, cause error) *AppError {
	return NewAppError(ErrTypeFileFormat, message, cause)
}

// NewTimestampParseError reports an unparseable timestamp value.
func NewTimestampParseError(value string, line int, cause error) *AppError {
	return NewAppError(ErrTypeTimestamp, fmt.Sprintf("cannot parse timestamp %q", value), cause).
		WithContext("line", line)
}

// NewSchemaError reports a codebook column whose source column is absent.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewSchemaMismatchError reports a join across tables with different columns.
func NewSchemaMismatchError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchemaMismatch, message, cause)
}

// NewConfigError reports an invalid option or configuration file.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewValidationError reports a rejected metadata key or label.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewIOError wraps a filesystem failure.
func NewIOError(message string, cause error) *AppError {
	return NewAppError(ErrTypeIO, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

func is(err error, t ErrorType) bool {
	got, ok := TypeOf(err)
	return ok && got == t
}

func IsFileFormat(err error) bool     { return is(err, ErrTypeFileFormat) }
func IsTimestampParse(err error) bool { return is(err, ErrTypeTimestamp) }
func IsSchema(err error) bool         { return is(err, ErrTypeSchema) }
func IsSchemaMismatch(err error) bool { return is(err, ErrTypeSchemaMismatch) }
func IsConfig(err error) bool         { return is(err, ErrTypeConfig) }
func IsValidation(err error) bool     { return is(err, ErrTypeValidation) }
