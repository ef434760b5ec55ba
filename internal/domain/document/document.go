package document

import (
	"fmt"

	"github.com/kailas-cloud/localsearch/internal/domain"
)

// Document is a searchable unit: an opaque ID plus ordered search tags (immutable value object).
type Document struct {
	id   string
	tags []string
}

// New validates and creates a Document.
// ID must be non-empty. Tags may be empty; the order is kept because the first
// relevant tag decides the score.
func New(id string, tags []string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required: %w", domain.ErrInvalidArgument)
	}
	return Document{id: id, tags: cloneTags(tags)}, nil
}

// Reconstruct creates a Document without validation.
func Reconstruct(id string, tags []string) Document {
	return Document{id: id, tags: tags}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Tags returns the search tags in registration order.
func (d Document) Tags() []string { return d.tags }

// HasTags reports whether the document carries at least one tag.
func (d Document) HasTags() bool { return len(d.tags) > 0 }

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
