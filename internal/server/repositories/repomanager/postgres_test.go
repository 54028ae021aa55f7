package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/activities"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/repositories/profiles"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	var m RepositoryManager = NewPostgresRepositoryManager()
	if m == nil {
		t.Fatal("manager is nil")
	}
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	if p := m.Profiles(db); p == nil {
		t.Fatal("Profiles() nil")
	}
	if a := m.Activities(db); a == nil {
		t.Fatal("Activities() nil")
	}

	var _ profiles.Repository = m.Profiles(db)
	var _ activities.Repository = m.Activities(db)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func withSQLOpen(t *testing.T, db *sql.DB, openErr error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			t.Errorf("driver = %q, want pgx", driver)
		}
		return db, openErr
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func TestOpenDB_Success(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()
	mock.ExpectPing()

	withSQLOpen(t, db, nil)

	got, err := OpenDB(context.Background(), "postgres://x")
	if err != nil {
		t.Fatalf("OpenDB error: %v", err)
	}
	if got != db {
		t.Fatal("unexpected db handle")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenDB_PingError(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	withSQLOpen(t, db, nil)

	_, err := OpenDB(context.Background(), "postgres://x")
	if err == nil || err.Error() != "ping db: refused" {
		t.Fatalf("expected ping error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenDB_OpenError(t *testing.T) {
	withSQLOpen(t, nil, errors.New("bad dsn"))

	_, err := OpenDB(context.Background(), "::")
	if err == nil || err.Error() != "open db: bad dsn" {
		t.Fatalf("expected open error, got %v", err)
	}
}
