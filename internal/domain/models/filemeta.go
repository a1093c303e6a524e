package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileMeta is plain file metadata kept in the "files" collection.
//
// Every upload duplicates its metadata here on a best-effort basis so
// admins keep a flat inventory of stored files regardless of which
// backend holds the typed-document records. It only ever lives in the
// document store.
type FileMeta struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Filename  string             `bson:"filename" json:"filename"`
	Size      int64              `bson:"size" json:"size"`
	Mimetype  string             `bson:"mimetype" json:"mimetype"`
	UserID    string             `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
