package service

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorType int

const (
	ErrParse ErrorType = iota
	ErrTransient
	ErrFatal
	ErrInvalidResponse
	ErrBatch
	ErrWrite
	ErrConfig
	ErrUnknown
)

func (t ErrorType) String() string {
	switch t {
	case ErrParse:
		return "Parse"
	case ErrTransient:
		return "Transient"
	case ErrFatal:
		return "Fatal"
	case ErrInvalidResponse:
		return "InvalidResponse"
	case ErrBatch:
		return "Batch"
	case ErrWrite:
		return "Write"
	case ErrConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

// ModLocError is the structured error carried across the pipeline. Context
// holds identifying detail (file name, batch index) for the run report.
type ModLocError struct {
	Type    ErrorType
	Message string
	Context map[string]any
	Cause   error
}

func NewError(errorType ErrorType, message string) *ModLocError {
	return &ModLocError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

func WrapError(err error, errorType ErrorType, message string) *ModLocError {
	return &ModLocError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
		Cause:   err,
	}
}

func (e *ModLocError) Error() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Type, e.Message)}

	if len(e.Context) > 0 {
		var ctxParts []string
		for k, v := range e.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, "context: "+strings.Join(ctxParts, ", "))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}
	return strings.Join(parts, " | ")
}

func (e *ModLocError) Unwrap() error {
	return e.Cause
}

func (e *ModLocError) WithContext(key string, value any) *ModLocError {
	e.Context[key] = value
	return e
}

// IsErrorType reports whether err carries the given type anywhere in its
// chain.
func IsErrorType(err error, errorType ErrorType) bool {
	var mlErr *ModLocError
	if errors.As(err, &mlErr) {
		return mlErr.Type == errorType
	}
	return false
}
