package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"blogapp/internal/config"
	"blogapp/internal/logger"
	"blogapp/internal/model"
)

const slowQueryThreshold = 200 * time.Millisecond

func gormConfig(log *logger.Logger) *gorm.Config {
	return &gorm.Config{
		// Maps driver specific unique violations to gorm.ErrDuplicatedKey.
		TranslateError: true,
		// Lookups of unknown emails and post ids are expected, so not-found is not logged.
		Logger: gormlogger.NewSlogLogger(log.Logger, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}),
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// NewSQLite opens (creating if needed) a sqlite database at path.
func NewSQLite(path string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	// One connection keeps the pragma below in effect and avoids SQLITE_BUSY on writes.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return db, nil
}

// Open connects to the database selected by cfg and migrates the schema when enabled.
func Open(cfg config.Database, log *logger.Logger) (*gorm.DB, error) {
	var (
		gormDB *gorm.DB
		err    error
	)
	switch cfg.Driver {
	case "mysql":
		gormDB, err = NewMySQL(cfg.DSN, log)
	case "sqlite":
		gormDB, err = NewSQLite(cfg.DSN, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			return nil, err
		}
	}
	return gormDB, nil
}

// Migrate creates or updates the users and posts tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
