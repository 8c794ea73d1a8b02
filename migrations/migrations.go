// Package migrations embeds the SQL schema so that the service binary, the
// migrator and the integration tests apply exactly the same files.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed *.sql
var files embed.FS

// New builds a migrator over db. table overrides the migrations bookkeeping
// table when non-empty. Closing the returned migrator closes db as well.
func New(db *sql.DB, table string) (*migrate.Migrate, error) {
	const op = "migrations.New"

	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: table})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// Up applies every pending migration over a dedicated connection pool. An
// already current schema is not an error.
func Up(postgresURL, table string) error {
	const op = "migrations.Up"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := New(db, table)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
