package jtdvalidate

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal error codes (exported consts for type safety by convention). Every
// fatal category aborts the remaining stream immediately; ordinary
// validation errors never carry one of these.
const (
	CodeInvalidOption    = "invalid_option"
	CodeSchemaParse      = "schema_parse"
	CodeSchemaInvalid    = "schema_invalid"
	CodeInstanceParse    = "instance_parse"
	CodeMaxDepthExceeded = "max_depth_exceeded"
)

// FatalError is the single run-terminating error type. Callers distinguish
// "instance failed validation" (a Result with Failed > 0) from "run cannot
// continue" (a *FatalError) without untyped sentinel comparisons.
type FatalError struct {
	Code    string
	Message string
	Offset  int64 // byte offset in the input source (-1 when unknown)
	Cause   error // optional underlying error
}

// Error renders a single human-readable diagnostic for the error stream.
func (e *FatalError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Message)
	if e.Offset >= 0 {
		fmt.Fprintf(b, " (near byte %d)", e.Offset)
	}
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *FatalError) Unwrap() error { return e.Cause }

// Fatalf builds a FatalError with an unknown offset.
func Fatalf(code string, cause error, format string, args ...any) *FatalError {
	return &FatalError{Code: code, Message: fmt.Sprintf(format, args...), Offset: -1, Cause: cause}
}

// AsFatal extracts a *FatalError from an error using errors.As internally.
func AsFatal(err error) (*FatalError, bool) {
	if err == nil {
		return nil, false
	}
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ParseError reports a malformed document in the instance stream. Sources
// return it from Next; the driver promotes it to a CodeInstanceParse
// FatalError, keeping the offset.
type ParseError struct {
	Offset int64
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed instance near byte %d: %v", e.Offset, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
