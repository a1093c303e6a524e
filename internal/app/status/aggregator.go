// internal/app/status/aggregator.go
package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/dossierhub/internal/app/catalog"
	"github.com/dalemusser/dossierhub/internal/app/store/typeddocs"
	"github.com/dalemusser/dossierhub/internal/domain/models"
	"go.uber.org/zap"
)

// UserDirectory resolves user IDs to display names. An unknown user yields
// an empty name, not an error.
type UserDirectory interface {
	DisplayName(ctx context.Context, id string) (string, error)
}

// FileMetadata describes the stored file behind an upload.
type FileMetadata struct {
	FileName string
	FilePath string
	FileType string
	FileSize int64
}

// Aggregator derives per-user document status from the typed-document
// records, whatever backend holds them.
type Aggregator struct {
	store   typeddocs.Store
	catalog *catalog.Catalog
	users   UserDirectory
	log     *zap.Logger
}

func New(store typeddocs.Store, cat *catalog.Catalog, users UserDirectory, log *zap.Logger) *Aggregator {
	return &Aggregator{store: store, catalog: cat, users: users, log: log}
}

// RecordUpload appends a new immutable record for (userID, docType),
// resolving the category from the catalog and stamping the upload time.
func (a *Aggregator) RecordUpload(ctx context.Context, userID, docType string, meta FileMetadata) (models.TypedDocument, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return models.TypedDocument{}, typeddocs.ErrMissingType
	}

	doc := models.TypedDocument{
		UserID:     userID,
		Type:       docType,
		Category:   a.catalog.ResolveCategory(docType),
		FileName:   meta.FileName,
		FilePath:   meta.FilePath,
		FileType:   meta.FileType,
		FileSize:   meta.FileSize,
		UploadDate: time.Now().UTC(),
	}
	saved, err := a.store.Save(ctx, doc)
	if err != nil {
		return models.TypedDocument{}, fmt.Errorf("record upload: %w", err)
	}
	a.log.Info("typed document recorded",
		zap.String("user", userID),
		zap.String("type", saved.Type),
		zap.String("category", saved.Category))
	return saved, nil
}

// LatestStatus returns the user's current status: one record per distinct
// type, each the most recent upload for that type (ties to the newest
// record). No uploads means an empty slice.
func (a *Aggregator) LatestStatus(ctx context.Context, userID string) ([]models.TypedDocument, error) {
	docs, err := a.store.LatestPerType(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("latest status: %w", err)
	}
	return docs, nil
}

// UploadHistory returns every record for the user, newest first, each
// annotated with the uploader's display name. Name resolution is best
// effort; a directory failure leaves the annotation empty.
func (a *Aggregator) UploadHistory(ctx context.Context, userID string) ([]models.TypedDocument, error) {
	docs, err := a.store.AllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("upload history: %w", err)
	}
	name, err := a.users.DisplayName(ctx, userID)
	if err != nil {
		a.log.Warn("display name lookup failed", zap.String("user", userID), zap.Error(err))
		name = ""
	}
	for i := range docs {
		docs[i].UserName = name
	}
	return docs, nil
}

// ClearStatus removes every record for (userID, docType), exact type match,
// and reports how many records went. Clearing a type with no records is
// not an error.
func (a *Aggregator) ClearStatus(ctx context.Context, userID, docType string) (int64, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return 0, typeddocs.ErrMissingType
	}
	n, err := a.store.DeleteByTypeExact(ctx, userID, docType)
	if err != nil {
		return 0, fmt.Errorf("clear status: %w", err)
	}
	a.log.Info("typed documents cleared",
		zap.String("user", userID),
		zap.String("type", docType),
		zap.Int64("deleted", n))
	return n, nil
}
