package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"todoApp/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// UpSQLite applies the embedded sqlite schema. db stays open: the migrate
// instance is not closed because closing it would close db as well.
func UpSQLite(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("драйвер миграций sqlite: %w", err)
	}
	_, err = up("sqlite", "sqlite3", driver)
	return err
}

// UpPostgres applies the embedded postgres schema over its own connection,
// which is closed afterwards.
func UpPostgres(connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("подключение для миграций: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("драйвер миграций postgres: %w", err)
	}

	m, err := up("postgres", "pgx5", driver)
	if m != nil {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("Migrations: Ошибка закрытия мигратора", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}
	return err
}

func up(dir, dbName string, driver database.Driver) (*migrate.Migrate, error) {
	src, err := iofs.New(files, dir)
	if err != nil {
		return nil, fmt.Errorf("источник миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dbName, driver)
	if err != nil {
		return nil, fmt.Errorf("создание мигратора: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Migrations: Схема актуальна", zap.String("dialect", dir))
			return m, nil
		}
		return m, fmt.Errorf("применение миграций: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("Migrations: Миграции применены", zap.String("dialect", dir), zap.Uint("version", version))
	return m, nil
}
