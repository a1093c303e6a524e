// internal/app/store/files/filestore.go
package filestore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/dossierhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps the flat file-metadata inventory. It always lives in the
// document store, whichever backend holds the typed-document records.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("files")}
}

// EnsureIndexes creates indexes for the files collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Per-user listing, newest first
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_file_user_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a metadata record and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, f models.FileMeta) (models.FileMeta, error) {
	f.ID = primitive.NewObjectID()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.FileMeta{}, fmt.Errorf("insert file metadata: %w", err)
	}
	return f, nil
}

// GetByID returns one metadata record. mongo.ErrNoDocuments when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.FileMeta, error) {
	var f models.FileMeta
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return models.FileMeta{}, err
	}
	return f, nil
}

// ListByUser returns the user's metadata records, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.FileMeta, error) {
	return s.list(ctx, bson.M{"user": userID})
}

// ListAll returns every metadata record, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.FileMeta, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.FileMeta, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find file metadata: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.FileMeta
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a record.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, f models.FileMeta) error {
	set := bson.M{
		"filename": f.Filename,
		"size":     f.Size,
		"mimetype": f.Mimetype,
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update file metadata: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes one record. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete file metadata: %w", err)
	}
	return res.DeletedCount, nil
}

// PurgeAll wipes the whole inventory and reports how many records went.
// Admin-only escape hatch.
func (s *Store) PurgeAll(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("purge file metadata: %w", err)
	}
	return res.DeletedCount, nil
}
