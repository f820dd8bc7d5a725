package glossary

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad matches every LoadError.
	ErrLoad = errors.New("glossary could not be loaded")
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("not found")
)

// Kind names the entity a lookup or search result refers to.
type Kind string

const (
	KindSubject Kind = "subject"
	KindGroup   Kind = "group"
	KindCard    Kind = "card"
)

// LoadError reports that the glossary document could not be fetched or
// parsed. It is terminal for the loader that produced it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading glossary from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// NotFoundError reports navigation to an id that does not exist.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
