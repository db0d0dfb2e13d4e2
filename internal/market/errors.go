package market

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError.
type ErrorKind int

const (
	// InvalidInput marks a negative price or quantity or an unusable recipe.
	InvalidInput ErrorKind = iota + 1
	// DivisionByZero marks a caller-supplied zero used as a divisor.
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case DivisionByZero:
		return "division by zero"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidInput matches any DomainError of kind InvalidInput via errors.Is.
	ErrInvalidInput = errors.New("market: invalid input")

	// ErrDivisionByZero matches any DomainError of kind DivisionByZero via errors.Is.
	ErrDivisionByZero = errors.New("market: division by zero")
)

// DomainError is returned by every calculation when its inputs cannot produce
// a meaningful result.
type DomainError struct {
	Kind  ErrorKind
	Field string
	Msg   string
}

func (e *DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s %s", e.Kind, e.Field, e.Msg)
}

// Is lets errors.Is match the kind sentinels.
func (e *DomainError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == InvalidInput
	case ErrDivisionByZero:
		return e.Kind == DivisionByZero
	}
	return false
}

// NewDivisionByZero builds a DivisionByZero error for field.
func NewDivisionByZero(field string) error {
	return &DomainError{Kind: DivisionByZero, Field: field, Msg: "must not be zero"}
}

// NewInvalidInput builds an InvalidInput error for field.
func NewInvalidInput(field, format string, args ...interface{}) error {
	return invalidInput(field, format, args...)
}

func invalidInput(field, format string, args ...interface{}) error {
	return &DomainError{Kind: InvalidInput, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// IsDomainError reports whether err wraps a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
