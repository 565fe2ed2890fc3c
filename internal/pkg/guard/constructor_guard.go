// Package guard implements the constructor-guard pattern: a zero-size flag
// embedded in value objects and commands that distinguishes instances created
// through their constructor from zero values. Domain invariants are validated
// in constructors, so any zero-value instance is by definition invalid.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// supplied for an improperly constructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed one in a
// struct and set it with NewConstructorGuard inside the constructor.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object went through its constructor, otherwise
// the supplied error (or ErrDefaultConstructorGuard when nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}

	if validationError == nil {
		return ErrDefaultConstructorGuard
	}

	return validationError
}
