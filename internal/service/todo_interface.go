package service

import (
	"context"
	"todoApp/internal/models/todo"
)

type TodoRepository interface {
	HealthCheck(context.Context) error
	List(context.Context, todo.Selection) ([]*todo.Todo, error)
	ListDueOn(context.Context, string) ([]*todo.Todo, error)
	GetByID(context.Context, int64) (*todo.Todo, error)
	Create(context.Context, *todo.Todo) error
	Update(context.Context, *todo.Todo) error
	Delete(context.Context, int64) error
}
