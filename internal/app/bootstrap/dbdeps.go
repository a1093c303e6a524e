// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"database/sql"

	"github.com/dalemusser/dossierhub/internal/app/store/typeddocs"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// SQLDB is nil when no relational backend is configured or the
	// fallback kicked in.
	SQLDB *sql.DB

	// TypedDocs is the backend selected at startup; everything above the
	// store boundary talks to this.
	TypedDocs typeddocs.Store
}
