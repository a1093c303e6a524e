// internal/app/store/extracted/extractedstore.go
package extractedstore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/dalemusser/dossierhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps searchable extracted-text documents in the document store.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documents")}
}

// EnsureIndexes creates indexes for the extracted-documents collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Search results are sorted newest first
		{
			Keys:    bson.D{{Key: "uploadDate", Value: -1}},
			Options: options.Index().SetName("idx_document_upload_date"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts an extracted document and returns it with its ID.
func (s *Store) Create(ctx context.Context, d models.ExtractedDocument) (models.ExtractedDocument, error) {
	d.ID = primitive.NewObjectID()
	if d.UploadDate.IsZero() {
		d.UploadDate = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.ExtractedDocument{}, fmt.Errorf("insert extracted document: %w", err)
	}
	return d, nil
}

// Search pages through documents whose file name or content matches the
// query, newest first. An empty query matches everything. Returns the page
// of documents plus the total match count.
func (s *Store) Search(ctx context.Context, query string, page, limit int) ([]models.ExtractedDocument, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if query != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"fileName": re},
			bson.M{"fileType": re},
			bson.M{"content": re},
		}}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count extracted documents: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "uploadDate", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find extracted documents: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.ExtractedDocument
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
