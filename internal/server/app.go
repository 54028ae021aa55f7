// Package server assembles the VitalKeeper data service: it opens the
// database, runs migrations, wires the services and runs the gRPC and HTTP
// endpoints until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/config"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/services"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/vitalkeeper/internal/server/grpc"
)

// seams for tests
var (
	openDB               = repomanager.OpenDB
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newObjectStore       = func(ctx context.Context, c storage.S3Config) (storage.ObjectStore, error) {
		return storage.NewS3Store(ctx, c)
	}
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	grpc   *gs.GRPCServer
	http   *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	profiles := services.NewProfileService(db, rm, logger)
	activities := services.NewActivityService(db, rm, logger)

	var exporter gs.JournalExporter
	store, err := newObjectStore(ctx, storage.S3Config{
		Region:    cfg.S3Region,
		AccessKey: cfg.S3RootUser,
		SecretKey: cfg.S3RootPassword,
		Endpoint:  cfg.S3BaseEndpoint,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		logger.Warn(ctx, "object storage disabled, journal export unavailable", "error", err)
	} else {
		exporter = services.NewExportService(db, rm, store, cfg.ExportURLValidity, logger)
	}

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		grpc:   gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, profiles, activities, exporter, cfg.SecretKey),
		http:   httpapi.NewServer(cfg.EndpointAddrHTTP, logger, profiles, db, cfg.AllowedOrigins),
	}, nil
}

// Run serves gRPC and HTTP until ctx is done or one of them fails, in which
// case the other is stopped too.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpc.Run(gctx) })
	g.Go(func() error { return app.http.Run(gctx) })

	err := g.Wait()
	app.logger.Info(ctx, "App stopped")
	return err
}

func (app *App) Close() error {
	return app.db.Close()
}
