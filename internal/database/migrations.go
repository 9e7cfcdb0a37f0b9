package database

import (
	"embed"
	"errors"
	"fmt"

	"jurnal/internal/config"
	"jurnal/internal/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate brings the schema up to date using the given mode.
func Migrate(db *gorm.DB, mode string, log zerolog.Logger) error {
	switch mode {
	case config.MigrationNone:
		log.Info().Msg("Schema migrations disabled")
		return nil
	case config.MigrationAuto:
		return AutoMigrate(db, log)
	case config.MigrationSQL:
		return RunSQLMigrations(db, log)
	default:
		return fmt.Errorf("unsupported migration mode %q", mode)
	}
}

// AutoMigrate lets GORM create or alter tables from the models.
func AutoMigrate(db *gorm.DB, log zerolog.Logger) error {
	if err := db.AutoMigrate(&models.User{}, &models.Article{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	log.Info().Msg("Auto-migration completed")
	return nil
}

// RunSQLMigrations applies the embedded SQL migrations with golang-migrate.
// Only PostgreSQL is supported.
func RunSQLMigrations(db *gorm.DB, log zerolog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// m.Close is not called: it would close the shared connection pool.
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations completed")
	return nil
}
