package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"todoApp/internal/logger"
	"todoApp/internal/migrations"
	"todoApp/internal/models/todo"
	repo "todoApp/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const slowQuery = 50 * time.Millisecond

type Storage struct {
	db *sqlx.DB
}

// DSN builds the sqlite connection string for a database file.
// _cslike делает LIKE регистрозависимым.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_cslike=1", path)
}

// New opens the database file at path. The store keeps a single connection.
func New(ctx context.Context, path string) (*Storage, error) {
	db, err := sqlx.Open("sqlite3", DSN(path))
	if err != nil {
		logger.Error("Repository: Ошибка открытия базы sqlite", err)
		return nil, fmt.Errorf("открытие базы: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное подключение к sqlite", zap.String("path", path))
	return &Storage{db: db}, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Repository: Применение миграций sqlite")
	if err := migrations.UpSQLite(s.db.DB); err != nil {
		logger.Error("Repository: Ошибка миграций", err)
		return err
	}
	return nil
}

func (s *Storage) Close() {
	if err := s.db.Close(); err != nil {
		logger.Error("Repository: Ошибка закрытия sqlite", err)
		return
	}
	logger.Info("Repository: Закрытие соединения sqlite")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func warnIfSlow(start time.Time, op string) {
	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос", zap.String("operation", op), zap.Duration("ms", time.Since(start)))
	}
}

func (s *Storage) List(ctx context.Context, sel todo.Selection) ([]*todo.Todo, error) {
	start := time.Now()
	defer warnIfSlow(start, "list")

	query, args := repo.BuildListQuery(sel)

	todos := []*todo.Todo{}
	if err := s.db.SelectContext(ctx, &todos, query, args...); err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.String("filter", sel.Name))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return todos, nil
}

func (s *Storage) ListDueOn(ctx context.Context, dueDate string) ([]*todo.Todo, error) {
	start := time.Now()
	defer warnIfSlow(start, "list_due_on")

	query := `SELECT ` + repo.TodoColumns + `
				FROM todo
				WHERE due_date = ?
				ORDER BY id`

	todos := []*todo.Todo{}
	if err := s.db.SelectContext(ctx, &todos, query, dueDate); err != nil {
		logger.Error("Repository: Не удалось получить задачи на дату", err, zap.String("due_date", dueDate))
		return nil, fmt.Errorf("получение задач на дату: %w", err)
	}
	return todos, nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*todo.Todo, error) {
	start := time.Now()
	defer warnIfSlow(start, "get")

	query := `SELECT ` + repo.TodoColumns + `
				FROM todo
				WHERE id = ?`

	item := &todo.Todo{}
	if err := s.db.GetContext(ctx, item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Int64("todo_id", id))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return item, nil
}

func (s *Storage) Create(ctx context.Context, item *todo.Todo) error {
	start := time.Now()
	defer warnIfSlow(start, "create")

	query := `INSERT INTO todo
				(id, todo, priority, status, category, due_date)
				VALUES (:id, :todo, :priority, :status, :category, :due_date)`

	if _, err := s.db.NamedExecContext(ctx, query, item); err != nil {
		if isConstraint(err) {
			return repo.ErrAlreadyExists
		}
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Int64("todo_id", item.ID))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

func (s *Storage) Update(ctx context.Context, item *todo.Todo) error {
	start := time.Now()
	defer warnIfSlow(start, "update")

	query := `UPDATE todo
			SET todo = :todo,
				priority = :priority,
				status = :status,
				category = :category,
				due_date = :due_date
			WHERE id = :id`

	res, err := s.db.NamedExecContext(ctx, query, item)
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err, zap.Int64("todo_id", item.ID))
		return fmt.Errorf("обновление задачи: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if affected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// удаление отсутствующей задачи не считается ошибкой
func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	defer warnIfSlow(start, "delete")

	res, err := s.db.ExecContext(ctx, `DELETE FROM todo WHERE id = ?`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Int64("todo_id", id))
		return fmt.Errorf("удаление задачи: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil {
		logger.Debug("Repository: Удаление задачи", zap.Int64("todo_id", id), zap.Int64("affected", affected))
	}
	return nil
}

func isConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
