// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	extractedstore "github.com/dalemusser/dossierhub/internal/app/store/extracted"
	filestore "github.com/dalemusser/dossierhub/internal/app/store/files"
	"github.com/dalemusser/dossierhub/internal/app/store/typeddocs"
	userstore "github.com/dalemusser/dossierhub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the database connections the app needs.
//
// MongoDB is always required; it holds users, uploaded-file metadata, and
// extracted documents. The relational backend is optional: when sql_dsn is
// set, ConnectDB opens a Postgres pool and hands both to the typed-document
// selector, which decides which backend serves typed-document records.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}
	logger.Info("connected to mongo", zap.String("database", appCfg.MongoDatabase))

	if appCfg.SQLDSN != "" {
		sqlDB, err := openSQL(connectCtx, appCfg.SQLDSN)
		if err != nil {
			if appCfg.SQLRequired {
				_ = client.Disconnect(context.Background())
				return DBDeps{}, fmt.Errorf("connect postgres: %w", err)
			}
			logger.Warn("postgres unreachable, falling back to the document store", zap.Error(err))
		} else {
			deps.SQLDB = sqlDB
		}
	}

	store, err := typeddocs.Select(connectCtx, deps.MongoDatabase, deps.SQLDB, appCfg.SQLRequired, logger)
	if err != nil {
		if deps.SQLDB != nil {
			_ = deps.SQLDB.Close()
		}
		_ = client.Disconnect(context.Background())
		return DBDeps{}, err
	}

	// A relational pool whose schema could not be set up is useless; the
	// selector already fell back, so release the pool and report it as
	// disabled everywhere else (health included).
	if deps.SQLDB != nil && !store.Relational() {
		_ = deps.SQLDB.Close()
		deps.SQLDB = nil
	}

	deps.TypedDocs = store
	return deps, nil
}

func openSQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema sets up indexes or schema as needed.
//
// The typed-document backend is already set up by the selector in
// ConnectDB; this covers the Mongo-only collections.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := userstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	if err := filestore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure file indexes: %w", err)
	}
	if err := extractedstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure extracted-document indexes: %w", err)
	}
	return nil
}
