package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yeremiapane/enterprise-pos/config"
	"github.com/yeremiapane/enterprise-pos/store"
	"github.com/yeremiapane/enterprise-pos/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("unknown STORE_DRIVER, expected memory, sqlite, mysql or postgres")

// InitDB opens the backend selected by cfg.Driver. The returned close
// function releases the underlying connections.
func InitDB(ctx context.Context, cfg config.StoreConfig) (store.Backend, func(), error) {
	switch cfg.Driver {
	case "memory":
		utils.InfoLogger.Println("Using in-memory store")
		return store.NewMemoryBackend(), func() {}, nil
	case "", "sqlite":
		return openGorm(sqlite.Open(cfg.SQLitePath), "sqlite "+cfg.SQLitePath)
	case "mysql":
		if cfg.MySQLDSN == "" {
			return nil, nil, errors.New("MYSQL_DSN is required for the mysql driver")
		}
		return openGorm(mysql.Open(cfg.MySQLDSN), "mysql")
	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		backend, err := store.NewPgBackend(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		utils.InfoLogger.Println("Connected to postgres")
		return backend, pool.Close, nil
	}
	return nil, nil, ErrUnknownDriver
}

func openGorm(dialector gorm.Dialector, name string) (store.Backend, func(), error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	backend, err := store.NewGormBackend(db)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	utils.InfoLogger.Printf("Connected to %s", name)
	return backend, closeFn, nil
}
