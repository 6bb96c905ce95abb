package database

import (
	"errors"
	"log"

	"github.com/shaoyun/taskmaster-pro/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ErrNotConfigured is returned by store-dependent code paths when no
// database has been initialized. Callers degrade to a read-only error
// response instead of crashing.
var ErrNotConfigured = errors.New("database not configured")

// Init opens the SQLite database and runs migrations.
// glebarez/sqlite is a pure Go implementation, so no CGO is required.
func Init(dsn string) error {
	if dsn == "" {
		return ErrNotConfigured
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto-migrate the schema (creates tables if they don't exist)
	if err := db.AutoMigrate(
		&models.Task{},
		&models.Sprint{},
		&models.Tag{},
		&models.Setting{},
	); err != nil {
		return err
	}

	DB = db
	log.Println("Database connected and migrated")
	return nil
}

// GetDB returns the database connection.
func GetDB() *gorm.DB {
	return DB
}
