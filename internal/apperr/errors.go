// Package apperr defines the build error taxonomy.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrCorpusNotFound reports that the source root does not exist.
	ErrCorpusNotFound = errors.New("corpus not found")
	// ErrNotADirectory reports that the source root is not a directory.
	ErrNotADirectory = errors.New("not a directory")
)

// DuplicateSlugError reports two source files normalizing to the same slug.
// A silent overwrite would drop one note's data, so this is fatal.
type DuplicateSlugError struct {
	Slug   string
	First  string // relative path of the note that claimed the slug
	Second string // relative path of the colliding note
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate slug %q: %s and %s", e.Slug, e.First, e.Second)
}
