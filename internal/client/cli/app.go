package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/client"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/config"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/services"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/store"
	"github.com/dmitrijs2005/vitalkeeper/internal/logging"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

type App struct {
	config     *config.Config
	db         *sql.DB
	remote     client.Client
	log        logging.Logger
	progress   *services.ProgressService
	activities *services.ActivityService
	sync       *services.SyncService
}

// NewApp opens the local store and wires the services. A nil clock uses
// the system clock.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, clock timex.Clock) (*App, error) {
	if log == nil {
		log = logging.Nop{}
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	db, err := store.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "init database", "path", c.DBPath, "error", err)
		return nil, fmt.Errorf("open local store: %w", err)
	}

	remote, err := client.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	progress := services.NewProgressService(db, clock, loc, log)
	return &App{
		config:     c,
		db:         db,
		remote:     remote,
		log:        log,
		progress:   progress,
		activities: services.NewActivityService(db, progress, log),
		sync:       services.NewSyncService(db, remote, progress, log),
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.remote.Close(), a.db.Close())
}

// remoteContext bounds a server round trip by the configured timeout.
func (a *App) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
