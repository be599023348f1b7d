// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/vaulthub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/vaulthub/internal/app/features/health"
	homefeature "github.com/dalemusser/vaulthub/internal/app/features/home"
	loginfeature "github.com/dalemusser/vaulthub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/vaulthub/internal/app/features/logout"
	vaultfeature "github.com/dalemusser/vaulthub/internal/app/features/vault"
	storehealth "github.com/dalemusser/vaulthub/internal/app/store/health"
	resourcestore "github.com/dalemusser/vaulthub/internal/app/store/resources"
	userstore "github.com/dalemusser/vaulthub/internal/app/store/users"
	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"github.com/dalemusser/vaulthub/internal/app/system/media"
	"github.com/dalemusser/vaulthub/internal/app/system/preview"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. VaultHub builds its shared
// infrastructure here (sessions, templates, file storage, the preview
// fetch chain, the stores) and mounts the feature routers on top:
// home, login (with the Google OAuth endpoints), logout, health, and
// the vault itself.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// File storage backend (local disk or S3, per config).
	files, err := buildStorage(appCfg, logger)
	if err != nil {
		return nil, err
	}

	// Link preview pipeline: the fetch chain tries proxy channels in
	// order and falls back to a plain link record, and the resolver
	// arbitrates between uploads and previews on every mutation.
	fetcher := preview.NewChainFetcher(logger, preview.DefaultChannels()...)
	resolver := media.NewResolver(files, fetcher, logger)

	// Stores.
	resources := resourcestore.New(deps.MongoDatabase, resolver, logger)
	users := userstore.New(deps.MongoDatabase)
	checker := storehealth.New(deps.MongoClient, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, checker, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Locally stored uploads are served straight off disk at the same
	// URL prefix storage.Local uses when building MediaURL values.
	if _, ok := files.(*storage.Local); ok && appCfg.StorageLocalURL != "" {
		r.Handle(appCfg.StorageLocalURL+"/*",
			http.StripPrefix(appCfg.StorageLocalURL+"/",
				http.FileServer(http.Dir(appCfg.StorageLocalPath))))
	}

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, sessionMgr, appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Get("/auth/google", loginHandler.HandleGoogleStart)
	r.Get("/auth/google/callback", loginHandler.HandleGoogleCallback)

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// The vault: resource CRUD, media downloads, live filtering.
	vaultHandler := vaultfeature.NewHandler(resources, files, errLog, logger)
	r.Mount("/vault", vaultfeature.Routes(vaultHandler, sessionMgr))

	return r, nil
}
