// internal/infrastructure/database/sqldb/connection.go
package sqldb

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM connection
type Database struct {
	DB     *gorm.DB
	config *config.Config
}

// NewConnection opens the database selected by DB_DRIVER. The default is a
// single sqlite file; the schema is applied on first boot via auto-migration.
func NewConnection(cfg *config.Config) (*Database, error) {
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey so the services can classify them
	gormConfig := &gorm.Config{TranslateError: true}
	if cfg.App.Debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.Database.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Database.Path + "?_foreign_keys=on")
	case "postgres":
		dialector = postgres.Open(cfg.GetPostgresDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Printf("✅ Database connection established (%s)", cfg.Database.Driver)

	return &Database{DB: db, config: cfg}, nil
}

// GetDB returns the GORM database instance
func (d *Database) GetDB() *gorm.DB {
	return d.DB
}

// Health checks the database connection
func (d *Database) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Backup copies the sqlite database file to the configured backup path.
// Called on graceful shutdown; a no-op for postgres.
func (d *Database) Backup() error {
	if d.config.Database.Driver != "sqlite" {
		return nil
	}

	src, err := os.Open(d.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database file: %w", err)
	}
	defer src.Close()

	if dir := filepath.Dir(d.config.Database.BackupPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	dst, err := os.Create(d.config.Database.BackupPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy database file: %w", err)
	}

	log.Printf("✅ Database backup written to %s", d.config.Database.BackupPath)
	return nil
}
