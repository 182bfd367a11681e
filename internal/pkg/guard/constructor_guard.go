// Package guard provides a defensive construction pattern for domain objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable, so value objects and entities can enforce creation through
// their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and no specific error was supplied by the caller.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding object was created through
// its constructor. The zero value fails validation; NewConstructorGuard
// produces a guard that passes.
//
// Example usage:
//
//	type Photo struct {
//	    url   string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPhoto(url string) (Photo, error) {
//	    if url == "" {
//	        return Photo{}, errors.New("url is required")
//	    }
//	    return Photo{url: url, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Photo) Validate() error {
//	    return p.guard.Validate(ErrPhotoIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or
// ErrDefaultConstructorGuard when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}

	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}

	return notConstructedErr
}
