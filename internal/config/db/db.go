package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Popolzen/quranverse/internal/config"
	migration "github.com/Popolzen/quranverse/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var ErrNoDSN = errors.New("database DSN is not configured")

// DBConfig содержит конфигурацию для подключения к БД
type DBConfig struct {
	DBurl string
}

// DataBase представляет подключение к базе данных
type DataBase struct {
	*sql.DB
}

// NewDBConfig создает новую конфигурацию БД
func NewDBConfig(c config.Config) DBConfig {
	return DBConfig{
		DBurl: c.DBurl,
	}
}

// NewDataBase открывает пул соединений pgx и проверяет подключение
func NewDataBase(ctx context.Context, cfg DBConfig) (*DataBase, error) {
	if cfg.DBurl == "" {
		return nil, ErrNoDSN
	}
	db, err := sql.Open("pgx", cfg.DBurl)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть подключение: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	return &DataBase{DB: db}, nil
}

// PingDB проверяет подключение к базе данных (без создания постоянного соединения)
func (d DBConfig) PingDB(ctx context.Context) error {
	if d.DBurl == "" {
		return ErrNoDSN
	}
	db, err := sql.Open("pgx", d.DBurl)
	if err != nil {
		return fmt.Errorf("ошибка при создании подключения: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ошибка при подключении к БД: %w", err)
	}

	return nil
}

// Migrate применяет встроенные миграции
func (d *DataBase) Migrate() error {
	return migration.MigrateUp(d.DB)
}
