// Package server assembles the authentication server: storage backends,
// envelope manager, protocol services and the gRPC endpoint, and runs them
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/zkauth/internal/envelope"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/server/config"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zkauth/internal/server/repositories/templates"
	"github.com/dmitrijs2005/zkauth/internal/server/services"
	"github.com/dmitrijs2005/zkauth/internal/sessions"
	"github.com/dmitrijs2005/zkauth/internal/srp"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/zkauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}

	rm, err := app.initRepositories(ctx)
	if err != nil {
		return nil, err
	}

	tr, err := app.initTemplateRepository(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	login, err := services.NewLoginService(srp.Default, rm.Users(), logger, c.MaxProofAttempts,
		sessions.WithTTL(c.SRPSessionTTL), sessions.WithCapacity(c.SessionCapacity))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("login service init error: %w", err)
	}
	mfa := services.NewMFAService(srp.Default.Hash, logger, c.MaxProofAttempts,
		sessions.WithTTL(c.MFASessionTTL), sessions.WithCapacity(c.SessionCapacity))

	env := envelope.NewDefaultManager(int64(c.KDFConcurrency))
	creds := services.NewCredentialService(srp.Default, rm, env, c.MinPasswordLength, logger, login, mfa)
	tmpl := services.NewTemplateService(rm, tr, logger)

	app.authService = services.NewAuthService(login, mfa, creds, tmpl, rm.Users(), []byte(c.SecretKey), c.AccessTokenValidityDuration, logger)

	return app, nil
}

// initRepositories picks PostgreSQL when a DSN is configured, otherwise
// accounts live in memory for the lifetime of the process.
func (app *App) initRepositories(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "no database DSN configured, using in-memory storage")
		return repomanager.NewInMemoryRepositoryManager(), nil
	}

	db, err := sqlOpen("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	rm := repomanager.NewPostgresRepositoryManager(db)
	if err := rm.RunMigrations(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return rm, nil
}

func (app *App) initTemplateRepository(ctx context.Context) (templates.Repository, error) {
	if app.config.S3BaseEndpoint == "" {
		return templates.NewInMemoryRepository(), nil
	}

	r, err := templates.NewS3Repository(ctx, templates.S3Options{
		Region:       app.config.S3Region,
		AccessKey:    app.config.S3RootUser,
		SecretKey:    app.config.S3RootPassword,
		BaseEndpoint: app.config.S3BaseEndpoint,
		Bucket:       app.config.S3Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	return r, nil
}

// Close releases the database pool, if any.
func (app *App) Close() {
	if app.db != nil {
		_ = app.db.Close()
		app.db = nil
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService)
		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, "grpc server error", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}
