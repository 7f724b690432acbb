package eval

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to match; relational failures additionally
// match rel.ErrSchemaMismatch, rel.ErrUnknownColumn and rel.ErrArity.
var (
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrOperatorType      = errors.New("operator type error")
)

// Error is an evaluation failure.
type Error struct {
	Op      string // operator or statement that failed, if any
	Kind    error  // one of the Err* kinds above, or nil for wrapped rel errors
	Message string
	Err     error // underlying rel error, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" && e.Message != "" {
		return fmt.Sprintf("evaluation error in %s: %s", e.Op, msg)
	}
	return "evaluation error: " + msg
}

func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func unknownIdentifier(name, where string) *Error {
	return &Error{
		Kind:    ErrUnknownIdentifier,
		Message: fmt.Sprintf("unknown identifier %q%s", name, where),
	}
}

// wrapRel attributes an error returned by the operator library to op.
// Errors already produced by this package pass through untouched.
func wrapRel(op string, err error) error {
	var evalErr *Error
	if errors.As(err, &evalErr) {
		return err
	}
	return &Error{Op: op, Err: err}
}
