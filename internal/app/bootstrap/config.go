// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for DossierHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, sql_dsn, etc.
//   - Environment variables: DOSSIERHUB_MONGO_URI, DOSSIERHUB_SQL_DSN, etc.
//   - Command-line flags: --mongo_uri, --sql_dsn, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "dossier_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Relational backend for typed-document records
	{Name: "sql_dsn", Default: "", Desc: "Postgres DSN for typed-document records (blank: document store)"},
	{Name: "sql_required", Default: false, Desc: "Fail startup when the relational backend is unusable"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},

	// S3 configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_endpoint", Default: "", Desc: "Custom S3 endpoint (MinIO)"},
	{Name: "storage_s3_path_style", Default: false, Desc: "Use path-style S3 addressing (MinIO)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@dossierhub.fr", Desc: "From email address"},
	{Name: "site_name", Default: "DossierHub", Desc: "Display name used in notification emails"},

	// Catalog expansion window
	{Name: "catalog_start_year", Default: 2000, Desc: "First year periodized document templates expand from"},
	{Name: "catalog_future_years", Default: 25, Desc: "Years past the current one templates expand to"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, DOSSIERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DOSSIERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SQLDSN:      appValues.String("sql_dsn"),
		SQLRequired: appValues.Bool("sql_required"),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		// File storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),

		// S3
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Endpoint:  appValues.String("storage_s3_endpoint"),
		StorageS3PathStyle: appValues.Bool("storage_s3_path_style"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		SiteName:     appValues.String("site_name"),

		// Catalog window
		CatalogStartYear:   appValues.Int("catalog_start_year"),
		CatalogFutureYears: appValues.Int("catalog_future_years"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// DossierHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and rejects a strict
// relational mode with no DSN to point at.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.SQLRequired && appCfg.SQLDSN == "" {
		return fmt.Errorf("sql_required is set but sql_dsn is empty")
	}

	if appCfg.StorageType == "s3" && appCfg.StorageS3Bucket == "" {
		return fmt.Errorf("storage_type 's3' requires storage_s3_bucket")
	}

	if appCfg.CatalogFutureYears < 0 {
		return fmt.Errorf("catalog_future_years must not be negative")
	}

	return nil
}
