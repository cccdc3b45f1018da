package navtree

import (
	"errors"
	"fmt"
)

// ErrWelcomeNotFound is returned by Paginate when no record carries the docs
// root slug.
var ErrWelcomeNotFound = errors.New("docs root record not found")

// ErrInvalidRecord is returned for records that cannot be placed in the tree
// at all, such as nil records or sections without an identifier.
var ErrInvalidRecord = errors.New("invalid navigation record")

// MissingParentError reports a record that references a section which was
// not registered when the record was processed.
type MissingParentError struct {
	Parent string
	Title  string
	Slug   string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("parent section %q not found for item %q (%s)", e.Parent, e.Title, e.Slug)
}

// DuplicateKeyError reports two records competing for the same key under a
// root section, or two root sections with the same identifier.
type DuplicateKeyError struct {
	Root     string
	Key      string
	Slug     string
	Existing string
}

func (e *DuplicateKeyError) Error() string {
	if e.Root == "" {
		return fmt.Sprintf("duplicate root section %q: %s conflicts with %s", e.Key, e.Slug, e.Existing)
	}
	return fmt.Sprintf("duplicate key %q in section %q: %s conflicts with %s", e.Key, e.Root, e.Slug, e.Existing)
}

// TraversalError reports a malformed node met while walking the tree.
type TraversalError struct {
	Path   string
	Reason string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traverse %s: %s", e.Path, e.Reason)
}
