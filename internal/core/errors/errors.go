package errors

import (
	"errors"
	"sort"
	"strings"
)

type ErrorCode string

const (
	CodeInputAccess     ErrorCode = "INPUT_ACCESS"
	CodeOutputAccess    ErrorCode = "OUTPUT_ACCESS"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// Context keys.
const (
	CtxPath      = "path"
	CtxOperation = "operation"
	CtxUnit      = "unit"
)

// DomainError is a coded failure. Context entries are rendered sorted by
// key, so messages are stable across runs.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]string
}

func (e *DomainError) With(key, value string) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Code))
	b.WriteString("] ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Context) == 0 {
		return b.String()
	}

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
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(e.Context[k])
	}
	b.WriteString(")")
	return b.String()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg}
}

func Wrap(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// WrapPath wraps err and records the offending path.
func WrapPath(err error, code ErrorCode, msg, path string) error {
	return (&DomainError{Code: code, Message: msg, Err: err}).With(CtxPath, path)
}

// AddContext tags err with key=value. Errors without a code become
// INTERNAL_ERROR. A nil err stays nil.
func AddContext(err error, key, value string) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		de.With(key, value)
		return err
	}
	return (&DomainError{Code: CodeInternal, Message: "unexpected failure", Err: err}).With(key, value)
}

func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first DomainError in err's chain, or ""
// when there is none.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
