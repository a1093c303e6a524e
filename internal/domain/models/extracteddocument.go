package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExtractedDocument holds the text content pulled out of an uploaded file,
// used by the searchable document listing. Extraction is best effort:
// formats without a supported extractor store an empty Content.
type ExtractedDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FileName   string             `bson:"fileName" json:"fileName"`
	FileType   string             `bson:"fileType" json:"fileType"`
	FileSize   int64              `bson:"fileSize" json:"fileSize"`
	UploadDate time.Time          `bson:"uploadDate" json:"uploadDate"`
	Content    string             `bson:"content" json:"content"`
}
