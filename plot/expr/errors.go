package expr

import "errors"

var (
	ErrParse = errors.New("parse error")
	// ErrUnknownName is returned when an identifier is neither bound in the scope nor part of the library.
	ErrUnknownName = errors.New("unknown identifier")
	// ErrArity is returned when a library function is called with the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
)
