package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"rental-movies/internal/auth"
	"rental-movies/internal/breadcrumb"
	"rental-movies/internal/cache"
	"rental-movies/internal/config"
	"rental-movies/internal/data"
	"rental-movies/internal/handler"
	"rental-movies/internal/logger"
	"rental-movies/internal/middleware"
	"rental-movies/internal/service"
	"rental-movies/internal/textfilter"
	"rental-movies/internal/upload"
	"rental-movies/internal/view"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal(err, fmt.Sprintf("Unknown time zone '%s'", cfg.App.Timezone))
	}
	if cfg.Auth.AdminAcronym == "" {
		log.Fatal(errors.New("admin acronym not set"), "Please set RENTAL_AUTH_ADMIN_ACRONYM.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.Driver, cfg.DB.DSN); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = sessionStore(cfg.DB.Driver, db)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	var sso handler.SSO
	authenticator, err := auth.NewAuthenticator(context.Background(), cfg.OIDC)
	switch {
	case errors.Is(err, auth.ErrSSODisabled):
		log.Info("Single sign-on is disabled.")
	case err != nil:
		log.Fatal(err, "Failed to initialize authenticator")
	default:
		sso = authenticator
	}
	enforcer, err := auth.NewEnforcer(db, cfg.Auth.ModelPath)
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	renderCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer renderCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	settings := service.Settings{AdminAcronym: cfg.Auth.AdminAcronym, Location: location}
	renderer := textfilter.NewRenderer(textfilter.New(), renderCache, renderCache.TTL(), log)
	contentService := service.NewContentService(data.NewSQLContentRepository(db), db, renderer, settings)
	userService := service.NewUserService(data.NewSQLUserRepository(db), db, settings)
	movieService := service.NewMovieService(data.NewSQLMovieRepository(db), db)

	viewService := view.New(cfg.Log.Level == "debug")
	paging := handler.Paging{DefaultHits: cfg.App.DefaultHits, HitsOptions: cfg.App.HitsOptions}
	crumbs := breadcrumb.NewBuilder(movieService, contentService, cfg.Menu)

	handlers := handler.Handlers{
		Movies:  handler.NewMovieHandler(movieService, contentService, paging, viewService),
		News:    handler.NewNewsHandler(contentService, paging, viewService),
		Content: handler.NewContentHandler(contentService, paging, viewService),
		Users:   handler.NewUserHandler(userService, paging, viewService),
		Auth:    handler.NewAuthHandler(userService, sso, sessionManager, viewService, log),
		Nav:     handler.NewNavHandler(cfg.Menu, crumbs, viewService),
		Seo:     handler.NewSeoHandler(contentService, movieService, cfg.App.BaseURL),
		Upload:  handler.NewUploadHandler(upload.New(cfg.Upload), handler.UploadPrefix, viewService),
	}

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager, viewService, log)
	errorMiddleware := middleware.Error(log, viewService)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handlers, authzMiddleware, errorMiddleware, sessionManager, log)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}

// sessionStore keeps sessions in the application database.
func sessionStore(driver string, db *sqlx.DB) scs.Store {
	if driver == "sqlite3" {
		return sqlite3store.New(db.DB)
	}
	return mysqlstore.New(db.DB)
}
