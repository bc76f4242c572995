package storage

import (
	"fmt"
	"sync"
	"time"

	"creativeflow/internal/config"
	"creativeflow/internal/util/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once

	models   []any
	modelsMu sync.Mutex
)

// RegisterModels adds gorm models whose tables are created by AutoMigrate on
// SQLite. PostgreSQL schemas come from the SQL migrations. Models register
// from init so the list is complete before the first GetDb call.
func RegisterModels(items ...any) {
	modelsMu.Lock()
	defer modelsMu.Unlock()

	models = append(models, items...)
}

func GetDb() *gorm.DB {
	dbOnce.Do(func() {
		conn, err := Open(config.GetEnv().DbDriver, config.GetEnv().DatabaseDsn)
		if err != nil {
			logger.GetLogger().Error("failed to connect to database", "error", err)
			panic(err)
		}

		if config.GetEnv().DbDriver == config.DbDriverSqlite {
			if err := AutoMigrate(conn); err != nil {
				logger.GetLogger().Error("failed to create sqlite schema", "error", err)
				panic(err)
			}
		}

		db = conn
	})

	return db
}

func Open(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DbDriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DbDriverSqlite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	conn, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if driver == config.DbDriverSqlite {
		// a single connection keeps the in-memory database alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return conn, nil
}

// AutoMigrate creates the tables of every registered model. Used for SQLite
// where the PostgreSQL migrations do not apply.
func AutoMigrate(conn *gorm.DB) error {
	modelsMu.Lock()
	defer modelsMu.Unlock()

	if len(models) == 0 {
		return nil
	}

	return conn.AutoMigrate(models...)
}

func Ping() error {
	sqlDB, err := GetDb().DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
