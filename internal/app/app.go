package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"

	"github.com/asmelnikov/docgen-backend/internal/adapter/postgres"
	documentrepo "github.com/asmelnikov/docgen-backend/internal/adapter/postgres/document"
	fieldrepo "github.com/asmelnikov/docgen-backend/internal/adapter/postgres/field"
	personrepo "github.com/asmelnikov/docgen-backend/internal/adapter/postgres/person"
	templaterepo "github.com/asmelnikov/docgen-backend/internal/adapter/postgres/template"
	userrepo "github.com/asmelnikov/docgen-backend/internal/adapter/postgres/user"
	internalauth "github.com/asmelnikov/docgen-backend/internal/auth"
	"github.com/asmelnikov/docgen-backend/internal/config"
	authsvc "github.com/asmelnikov/docgen-backend/internal/service/auth"
	"github.com/asmelnikov/docgen-backend/internal/service/docgen"
	"github.com/asmelnikov/docgen-backend/internal/service/schema"
	"github.com/asmelnikov/docgen-backend/internal/transport/middleware"
	"github.com/asmelnikov/docgen-backend/internal/transport/rest"
	"github.com/asmelnikov/docgen-backend/migrations"
)

// Run is the application entry point: it loads configuration, connects to the
// database, applies migrations, wires the services, and serves HTTP until ctx
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := ensureDirs(cfg.Storage); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := applyMigrations(ctx, cfg.Database.DSN); err != nil {
		return err
	}
	logger.Info("migrations applied")

	// Repositories.
	users := userrepo.New(pool)
	fields := fieldrepo.New(pool)
	templates := templaterepo.New(pool)
	persons := personrepo.New(pool)
	documents := documentrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	// Services.
	jwtManager := internalauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, jwtManager)
	schemaService := schema.NewService(logger, fields)
	docgenService := docgen.NewService(logger, templates, persons, documents, schemaService, txm, docgen.Storage{
		TemplatesDir: cfg.Storage.TemplatesDir,
		DocumentsDir: cfg.Storage.DocumentsDir,
	})

	// Transport.
	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Auth:      rest.NewAuthHandler(authService, logger),
		Fields:    rest.NewFieldsHandler(fields, logger),
		Templates: rest.NewTemplatesHandler(templates, docgenService, cfg.Storage.TemplatesDir, cfg.Storage.MaxUploadBytes, logger),
		Documents: rest.NewDocumentsHandler(docgenService, documents, logger),
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		rateLimiter.Limit(300),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// applyMigrations runs the embedded goose migrations. goose needs a
// database/sql handle, so a short-lived stdlib connection is used.
func applyMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func ensureDirs(cfg config.StorageConfig) error {
	for _, dir := range []string{cfg.TemplatesDir, cfg.DocumentsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}
	return nil
}
