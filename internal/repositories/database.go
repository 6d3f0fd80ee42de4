package repositories

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// OpenDatabase connects GORM to the configured SQL database.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// One connection gives SQLite the single-writer discipline it expects.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	zap.L().Info("database connection established", zap.String("driver", driver))
	return db, nil
}

// NewProductRepository builds the product store for driver. The returned
// *gorm.DB is nil for the in-memory store.
func NewProductRepository(driver, dsn string) (ProductRepository, *gorm.DB, error) {
	if driver == DriverMemory {
		return NewInMemoryProductRepository(), nil, nil
	}
	db, err := OpenDatabase(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	return NewGORMProductRepository(db), db, nil
}
