package engine

import (
	"errors"
	"fmt"
)

// ErrEquation matches every *EquationError via errors.Is.
var ErrEquation = errors.New("equation error")

// EquationError reports an expression that could not be evaluated.
type EquationError struct {
	// Source names the failing expression, e.g. "equation" or `variable "Z"`.
	Source string
	Expr   string
	Err    error
}

func (e *EquationError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrEquation, e.Source, e.Expr, e.Err)
}

func (e *EquationError) Unwrap() error { return e.Err }

func (e *EquationError) Is(target error) bool { return target == ErrEquation }
