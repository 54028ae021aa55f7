package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vitalkeeper/internal/dbx"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/activities"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/profiles"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Activities(db dbx.DBTX) activities.Repository
}
