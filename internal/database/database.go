package database

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"socialfeed/internal/config"
	"socialfeed/internal/logging"
)

type MethodsDB interface {
	CloseDB() error
	RunMigrations(migrationFilePath string) error
	HealthCheck() error
}

type DB struct {
	*sqlx.DB
	logger logging.Logger
}

func ConnectDB(cfg *config.Config, logger logging.Logger) (*DB, error) {
	connStr, err := cfg.DB.DSN()
	if err != nil {
		return nil, err
	}

	logger.WithFields(logging.Fields{
		"host":   cfg.DB.DbHOST,
		"dbname": cfg.DB.DbNAME,
		"url":    cfg.DB.URL != "",
	}).Info("Подключаемся к БД")

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{DB: db, logger: logger}

	if err := dbStruct.RunMigrations(cfg.DB.Migrations); err != nil {
		logger.WithError(err).Warn("Внимание: ошибка при применении миграций")
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("проверка БД не пройдена: %w", err)
	}

	logger.Info("Успешное подключение к PostgreSQL")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) RunMigrations(migrationFilePath string) error {
	if _, err := os.Stat(migrationFilePath); os.IsNotExist(err) {
		return fmt.Errorf("файл миграций не найден: %s", migrationFilePath)
	}

	migrationSQL, err := os.ReadFile(migrationFilePath)
	if err != nil {
		return fmt.Errorf("ошибка при чтении файла миграций: %w", err)
	}

	db.logger.WithField("path", migrationFilePath).Info("Применяем миграции")

	if _, err := db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}

	db.logger.Info("Миграции успешно применены")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("подключение к БД не инициализировано")
	}

	return db.Ping()
}
