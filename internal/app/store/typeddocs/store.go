// internal/app/store/typeddocs/store.go
package typeddocs

import (
	"context"
	"errors"

	"github.com/dalemusser/dossierhub/internal/domain/models"
)

// Store persists typed-document records. Exactly one implementation is
// active per process, chosen at startup; everything above this interface is
// backend-agnostic and works with models.TypedDocument only.
type Store interface {
	// Save inserts a new record and returns it with the backend-assigned ID.
	Save(ctx context.Context, doc models.TypedDocument) (models.TypedDocument, error)

	// LatestPerType returns one record per distinct type for the user: the
	// record with the most recent UploadDate, ties broken by highest ID.
	LatestPerType(ctx context.Context, userID string) ([]models.TypedDocument, error)

	// AllByUser returns every record for the user, newest upload first.
	AllByUser(ctx context.Context, userID string) ([]models.TypedDocument, error)

	// DeleteByTypeExact removes all records matching (userID, docType)
	// exactly and reports how many were deleted. Zero is not an error.
	DeleteByTypeExact(ctx context.Context, userID, docType string) (int64, error)

	// Relational reports whether the active backend is the relational one.
	Relational() bool
}

// ErrMissingType is returned when an operation that needs a document type
// gets an empty one.
var ErrMissingType = errors.New("document type is required")
