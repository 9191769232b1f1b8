package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfAttraction indicates a body's attraction to itself was requested.
	ErrSelfAttraction = errors.New("physics: self attraction requested")

	// ErrCollision indicates two distinct bodies share the same position.
	ErrCollision = errors.New("physics: collision")
)

// SelfAttractionError is returned by [Body.Attraction] when other is the
// receiver itself.
type SelfAttractionError struct {
	Body string
}

func (e *SelfAttractionError) Error() string {
	return fmt.Sprintf("physics: attraction of %s to itself requested", e.Body)
}

func (e *SelfAttractionError) Is(target error) bool { return target == ErrSelfAttraction }

// CollisionError is returned by [Body.Attraction] when the two bodies are at
// zero separation.
type CollisionError struct {
	A, B string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("physics: collision between %s and %s", e.A, e.B)
}

func (e *CollisionError) Is(target error) bool { return target == ErrCollision }
