// Package guard marks values that were built by their constructor.
//
// Commands, queries and value objects embed a ConstructorGuard so that a zero value
// (for example a command literal built by hand in an adapter) is rejected by Validate
// instead of reaching a use case with unchecked fields.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into structs that may only be created via a constructor.
// Its zero value is "not constructed".
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
