// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/dossierhub/internal/app/catalog"
	dbfilesfeature "github.com/dalemusser/dossierhub/internal/app/features/dbfiles"
	documentsfeature "github.com/dalemusser/dossierhub/internal/app/features/documents"
	healthfeature "github.com/dalemusser/dossierhub/internal/app/features/health"
	notifyfeature "github.com/dalemusser/dossierhub/internal/app/features/notify"
	uploadsfeature "github.com/dalemusser/dossierhub/internal/app/features/uploads"
	"github.com/dalemusser/dossierhub/internal/app/status"
	extractedstore "github.com/dalemusser/dossierhub/internal/app/store/extracted"
	filestore "github.com/dalemusser/dossierhub/internal/app/store/files"
	userstore "github.com/dalemusser/dossierhub/internal/app/store/users"
	"github.com/dalemusser/dossierhub/internal/app/system/auth"
	"github.com/dalemusser/dossierhub/internal/app/system/mailer"
	"github.com/dalemusser/dossierhub/internal/app/system/ratelimit"
	"github.com/dalemusser/dossierhub/internal/app/system/storage"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// DossierHub initializes the session store, wires the document catalog and
// status aggregator over the selected typed-document backend, and mounts the
// JSON API: typed-document uploads, the searchable document archive, the
// file inventory, and upload notifications.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	fileStorage, err := buildStorage(appCfg, logger)
	if err != nil {
		logger.Error("file storage init failed", zap.Error(err))
		return nil, err
	}

	// The built-in French catalog, with the expansion window from config.
	cat := catalog.Default()
	cat.StartYear = appCfg.CatalogStartYear
	cat.FutureYears = appCfg.CatalogFutureYears

	users := userstore.New(deps.MongoDatabase)
	files := filestore.New(deps.MongoDatabase)
	extracted := extractedstore.New(deps.MongoDatabase)
	agg := status.New(deps.TypedDocs, cat, users, logger)

	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
	}, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.SQLDB, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// JSON API, signed-in users only, throttled per client IP
	apiLimiter := ratelimit.New(120, time.Minute)
	r.Route("/api", func(api chi.Router) {
		api.Use(ratelimit.Middleware(apiLimiter))
		api.Use(auth.RequireSignedIn)

		uploadsHandler := uploadsfeature.NewHandler(agg, cat, files, fileStorage, logger)
		api.Mount("/", uploadsfeature.Routes(uploadsHandler))

		notifyHandler := notifyfeature.NewHandler(sender, appCfg.SiteName, logger)
		api.Mount("/notify", notifyfeature.Routes(notifyHandler))

		documentsHandler := documentsfeature.NewHandler(extracted, logger)
		api.Mount("/db/documents", documentsfeature.Routes(documentsHandler))

		dbfilesHandler := dbfilesfeature.NewHandler(files, logger)
		api.Mount("/db/files", dbfilesfeature.Routes(dbfilesHandler))
	})

	return r, nil
}

// buildStorage picks the file-storage backend from config.
func buildStorage(appCfg AppConfig, logger *zap.Logger) (storage.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		logger.Info("using S3 file storage",
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("region", appCfg.StorageS3Region))
		return storage.NewS3(context.Background(), storage.S3Config{
			Bucket:    appCfg.StorageS3Bucket,
			Region:    appCfg.StorageS3Region,
			Endpoint:  appCfg.StorageS3Endpoint,
			PathStyle: appCfg.StorageS3PathStyle,
		})
	default:
		logger.Info("using local file storage", zap.String("path", appCfg.StorageLocalPath))
		return storage.NewLocal(appCfg.StorageLocalPath)
	}
}
