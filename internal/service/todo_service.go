package service

import (
	"context"
	"errors"
	"fmt"
	"todoApp/internal/logger"
	"todoApp/internal/models/todo"
	rep "todoApp/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

type TodoService struct {
	repo   TodoRepository
	strict bool
}

// NewTodoService creates the service. With strict set, enum fields and due
// dates are validated and due dates are stored normalized; otherwise values pass through.
func NewTodoService(repo TodoRepository, strict bool) *TodoService {
	return &TodoService{
		repo:   repo,
		strict: strict,
	}
}

type Agenda struct {
	Date  string
	Valid bool
	Todos []*todo.Todo
}

func (s *TodoService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

func (s *TodoService) ListTodos(ctx context.Context, filter todo.Filter) ([]*todo.Todo, error) {
	sel := filter.Select()
	logger.Debug("Service: Выбран фильтр", zap.String("filter", sel.Name), zap.Int("conditions", len(sel.Conditions)))

	todos, err := s.repo.List(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return todos, nil
}

func (s *TodoService) GetTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
			return nil, NewNotFound(id, err)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return item, nil
}

func (s *TodoService) CreateTodo(ctx context.Context, item *todo.Todo) error {
	if s.strict {
		if err := item.Validate(); err != nil {
			return toValidationError(err)
		}
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, rep.ErrAlreadyExists) {
			logger.Info("Service: Задача уже существует", zap.Int64("target_id", item.ID))
			return NewAlreadyExists(item.ID, err)
		}
		return fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.Int64("todo_id", item.ID))
	return nil
}

// UpdateTodo applies the patch on top of the stored todo and persists every field.
// It returns the name of the first field that changed, or "" if none did.
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, patch todo.Patch) (string, error) {
	prev, err := s.GetTodo(ctx, id)
	if err != nil {
		return "", err
	}

	if s.strict {
		if err := patch.Validate(); err != nil {
			return "", toValidationError(err)
		}
	}

	next := *prev
	for _, opt := range patch.Options() {
		if opt != nil {
			opt(&next)
		}
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return "", NewNotFound(id, err)
		}
		return "", fmt.Errorf("обновление задачи: %w", err)
	}

	changed := todo.Diff(prev, &next)
	logger.Info("Service: Задача обновлена", zap.Int64("todo_id", id), zap.String("changed", changed))
	return changed, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("удаление задачи: %w", err)
	}
	return nil
}

// CheckAgenda validates date and, when it is a real calendar date, returns the
// todos due on it. An invalid date is not an error: Valid is false.
func (s *TodoService) CheckAgenda(ctx context.Context, date string) (*Agenda, error) {
	normalized, err := todo.ParseDueDate(date)
	if err != nil {
		logger.Info("Service: Неверная дата повестки", zap.String("date", date))
		return &Agenda{Date: date, Valid: false}, nil
	}

	todos, err := s.repo.ListDueOn(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("получение повестки: %w", err)
	}
	return &Agenda{Date: normalized, Valid: true, Todos: todos}, nil
}

func toValidationError(err error) error {
	var fieldErr *todo.InvalidFieldError
	if errors.As(err, &fieldErr) {
		return NewValidationError(fieldErr.Field, fieldErr.Message)
	}
	return err
}
