package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todoApp/internal/config"
	"todoApp/internal/logger"
	"todoApp/internal/migrations"
	"todoApp/internal/models/todo"
	repo "todoApp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type Storage struct {
	pool       *pgxpool.Pool
	connString string
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool, connString: cfg.URL}, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Repository: Применение миграций PostgreSQL")
	if err := migrations.UpPostgres(s.connString); err != nil {
		logger.Error("Repository: Ошибка миграций", err)
		return err
	}
	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) List(ctx context.Context, sel todo.Selection) ([]*todo.Todo, error) {
	start := time.Now()

	query, args := repo.BuildListQuery(sel)
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	todos, err := s.query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.String("filter", sel.Name), zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	if time.Since(start) > time.Millisecond*50+time.Millisecond*time.Duration(len(todos)) {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return todos, nil
}

func (s *Storage) ListDueOn(ctx context.Context, dueDate string) ([]*todo.Todo, error) {
	start := time.Now()

	query := `SELECT ` + repo.TodoColumns + `
				FROM todo
				WHERE due_date = $1
				ORDER BY id`

	todos, err := s.query(ctx, query, dueDate)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи на дату", err, zap.String("due_date", dueDate), zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач на дату: %w", err)
	}
	return todos, nil
}

func (s *Storage) query(ctx context.Context, query string, args ...any) ([]*todo.Todo, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	todos, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[todo.Todo])
	if err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return todos, nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*todo.Todo, error) {
	start := time.Now()

	query := `SELECT ` + repo.TodoColumns + `
				FROM todo
				WHERE id = $1`

	item := &todo.Todo{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Todo,
		&item.Priority,
		&item.Status,
		&item.Category,
		&item.DueDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Int64("todo_id", id), zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return item, nil
}

func (s *Storage) Create(ctx context.Context, item *todo.Todo) error {
	start := time.Now()

	query := `INSERT INTO todo
				(id, todo, priority, status, category, due_date)
				VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, query,
		item.ID,
		item.Todo,
		item.Priority,
		item.Status,
		item.Category,
		item.DueDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repo.ErrAlreadyExists
		}
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Update(ctx context.Context, item *todo.Todo) error {
	start := time.Now()

	query := `UPDATE todo
			SET todo = $1,
				priority = $2,
				status = $3,
				category = $4,
				due_date = $5
			WHERE id = $6`

	tag, err := s.pool.Exec(ctx, query,
		item.Todo,
		item.Priority,
		item.Status,
		item.Category,
		item.DueDate,
		item.ID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err, zap.Int64("todo_id", item.ID))
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// полное удаление из БД, отсутствие строки ошибкой не считается
func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM todo WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Полное удаление задачи", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Debug("Repository: Удаление задачи", zap.Int64("todo_id", id), zap.Int64("affected", tag.RowsAffected()))
	return nil
}
