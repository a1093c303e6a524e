// internal/app/store/typeddocs/mongostore.go
package typeddocs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/dossierhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps typed-document records in the "typeddocuments"
// collection.
type MongoStore struct {
	c *mongo.Collection
}

// mongoDoc is the collection shape. Field names stay camelCase with the
// owner under "user"; the mapping to models.TypedDocument never leaves
// this file.
type mongoDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user"`
	Type       string             `bson:"type"`
	Category   string             `bson:"category"`
	FileName   string             `bson:"fileName"`
	FilePath   string             `bson:"filePath"`
	FileType   string             `bson:"fileType"`
	FileSize   int64              `bson:"fileSize"`
	UploadDate time.Time          `bson:"uploadDate"`
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{c: db.Collection("typeddocuments")}
}

// EnsureIndexes creates the (user, type, uploadDate desc) index the
// latest-per-type pipeline leans on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user", Value: 1},
			{Key: "type", Value: 1},
			{Key: "uploadDate", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("create typeddocuments index: %w", err)
	}
	return nil
}

func (s *MongoStore) Relational() bool { return false }

func (s *MongoStore) Save(ctx context.Context, doc models.TypedDocument) (models.TypedDocument, error) {
	if strings.TrimSpace(doc.Type) == "" {
		return models.TypedDocument{}, ErrMissingType
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now().UTC()
	}

	md := mongoDoc{
		ID:         primitive.NewObjectID(),
		UserID:     doc.UserID,
		Type:       doc.Type,
		Category:   doc.Category,
		FileName:   doc.FileName,
		FilePath:   doc.FilePath,
		FileType:   doc.FileType,
		FileSize:   doc.FileSize,
		UploadDate: doc.UploadDate,
	}
	if _, err := s.c.InsertOne(ctx, md); err != nil {
		return models.TypedDocument{}, fmt.Errorf("insert typed document: %w", err)
	}
	return md.model(), nil
}

func (s *MongoStore) LatestPerType(ctx context.Context, userID string) ([]models.TypedDocument, error) {
	// Newest upload first, then newest _id so same-timestamp uploads break
	// toward the most recently inserted record; $first then keeps the
	// winner per type.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": userID}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "uploadDate", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$type",
			"newest": bson.M{"$first": "$$ROOT"},
		}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$newest"}}},
		{{Key: "$sort", Value: bson.D{{Key: "uploadDate", Value: -1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate latest per type: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toModels(docs), nil
}

func (s *MongoStore) AllByUser(ctx context.Context, userID string) ([]models.TypedDocument, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "uploadDate", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find typed documents: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toModels(docs), nil
}

func (s *MongoStore) DeleteByTypeExact(ctx context.Context, userID, docType string) (int64, error) {
	if strings.TrimSpace(docType) == "" {
		return 0, ErrMissingType
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"user": userID, "type": docType})
	if err != nil {
		return 0, fmt.Errorf("delete typed documents: %w", err)
	}
	return res.DeletedCount, nil
}

func (d mongoDoc) model() models.TypedDocument {
	return models.TypedDocument{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		Type:       d.Type,
		Category:   d.Category,
		FileName:   d.FileName,
		FilePath:   d.FilePath,
		FileType:   d.FileType,
		FileSize:   d.FileSize,
		UploadDate: d.UploadDate,
	}
}

func toModels(docs []mongoDoc) []models.TypedDocument {
	out := make([]models.TypedDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out
}
