package ports

import (
	"context"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// DocumentStore defines the interface for persisting compiled documents.
// This is what makes a machine shareable as a link.
type DocumentStore interface {
	// Save persists the document under doc.ID, replacing any previous one.
	Save(ctx context.Context, doc domain.SharedDocument) error

	// Load retrieves the document with the given ID.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, id string) (domain.SharedDocument, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored documents.
	List(ctx context.Context) ([]string, error)
}
