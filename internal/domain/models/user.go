package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the directory entry consulted for display names and roles.
// Account creation and credential handling happen outside this service;
// we only ever read these records.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"` // "user" or "admin"
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DisplayName picks the best human-readable name for history annotations:
// full name, then username, then email.
func (u *User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
