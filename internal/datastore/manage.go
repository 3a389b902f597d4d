// manage.go: database connection management and schema migration
package datastore

import (
	"log"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gamevault/gamevault/internal/entity"
)

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow and logged at warn level.
const DefaultSlowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.Default.LogMode(level)
}

// performAutoMigration runs GORM auto-migration for all catalog entities.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	err := db.AutoMigrate(
		&entity.RatingBoard{},
		&entity.Rating{},
		&entity.Genre{},
		&entity.Company{},
		&entity.Platform{},
		&entity.VideoGame{},
	)
	if err != nil {
		return dbError(err, "auto-migration", "db_type", dbType)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}
	return nil
}

// Close closes the underlying database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return dbError(err, "close")
	}
	if err := sqlDB.Close(); err != nil {
		return dbError(err, "close")
	}
	return nil
}
