// internal/app/store/typeddocs/select.go
package typeddocs

import (
	"context"
	"database/sql"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Select picks the active backend once at startup and prepares its schema.
//
// The relational store wins whenever a SQL handle is present and usable.
// When it is not, a strict deployment (sqlRequired) refuses to start, and
// everything else falls back to the document store. The returned Store is
// the only one the process ever talks to.
func Select(ctx context.Context, mongoDB *mongo.Database, sqlDB *sql.DB, sqlRequired bool, logger *zap.Logger) (Store, error) {
	if sqlDB != nil {
		st := NewSQLStore(sqlDB)
		if err := st.EnsureSchema(ctx); err != nil {
			if sqlRequired {
				return nil, fmt.Errorf("relational backend required but unusable: %w", err)
			}
			logger.Warn("relational backend unusable, falling back to document store",
				zap.Error(err))
		} else {
			logger.Info("typed-document storage using relational backend")
			return st, nil
		}
	} else if sqlRequired {
		return nil, fmt.Errorf("relational backend required but not configured")
	}

	st := NewMongoStore(mongoDB)
	if err := st.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	logger.Info("typed-document storage using document backend")
	return st, nil
}
