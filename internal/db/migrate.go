package db

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/diewo77/lens-orders/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// CoreTables must exist once EnsureSchema has returned.
var CoreTables = []string{
	"clients", "mkl_products", "mkl_orders", "mkl_order_items",
	"meridian_orders", "meridian_order_items", "meridian_products", "settings",
}

// EnsureSchema creates the database file and its schema when missing and seeds
// default settings. It is a no-op on an up to date database and is meant to be
// called on every start. Any error means the store cannot be used.
func EnsureSchema(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	if err := runSQLMigrations(path); err != nil {
		return fmt.Errorf("sql migrations failed: %w", err)
	}

	gdb, err := Open(path, false)
	if err != nil {
		return err
	}
	defer Close(gdb)

	// sanity check: ensure required core tables exist
	for _, table := range CoreTables {
		if !gdb.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return seed(gdb)
}

// seed inserts the default settings that are not present yet. Existing
// values are left untouched.
func seed(gdb *gorm.DB) error {
	for key, value := range models.DefaultSettings {
		s := models.Setting{Key: key, Value: value}
		if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}

func newMigrate(path string) (*migrate.Migrate, error) {
	gdb, err := Open(path, false)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	drv, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return migrate.NewWithInstance("iofs", src, "sqlite3", drv)
}

// runSQLMigrations applies the embedded migrations with golang-migrate.
func runSQLMigrations(path string) error {
	m, err := newMigrate(path)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if os.Getenv("DB_DEBUG") == "1" {
		v, dirty, _ := m.Version()
		log.Printf("[DB] schema version %d (dirty=%v)", v, dirty)
	}
	return nil
}

// SchemaVersion reports the applied migration version. A database without
// any applied migration returns 0 and no error.
func SchemaVersion(path string) (uint, bool, error) {
	m, err := newMigrate(path)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}
