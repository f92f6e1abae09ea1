package dto

import "todoApp/internal/models/todo"

type CreateTodoRequest struct {
	ID       int64         `json:"id"`
	Todo     string        `json:"todo"`
	Priority todo.Priority `json:"priority"`
	Status   todo.Status   `json:"status"`
	Category todo.Category `json:"category"`
	DueDate  string        `json:"dueDate"`
}

func (r CreateTodoRequest) ToTodo() *todo.Todo {
	return &todo.Todo{
		ID:       r.ID,
		Todo:     r.Todo,
		Priority: r.Priority,
		Status:   r.Status,
		Category: r.Category,
		DueDate:  r.DueDate,
	}
}

type UpdateTodoRequest struct {
	Todo     *string        `json:"todo,omitempty"`
	Priority *todo.Priority `json:"priority,omitempty"`
	Status   *todo.Status   `json:"status,omitempty"`
	Category *todo.Category `json:"category,omitempty"`
	DueDate  *string        `json:"dueDate,omitempty"`
}

func (r UpdateTodoRequest) ToPatch() todo.Patch {
	return todo.Patch{
		Todo:     r.Todo,
		Priority: r.Priority,
		Status:   r.Status,
		Category: r.Category,
		DueDate:  r.DueDate,
	}
}

type TodoResponse struct {
	ID       int64  `json:"id"`
	Todo     string `json:"todo"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Category string `json:"category"`
	DueDate  string `json:"dueDate"`
}

type AgendaResponse struct {
	Date  string         `json:"date"`
	Valid bool           `json:"valid"`
	Todos []TodoResponse `json:"todos"`
}

func FromTodo(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:       t.ID,
		Todo:     t.Todo,
		Priority: string(t.Priority),
		Status:   string(t.Status),
		Category: string(t.Category),
		DueDate:  t.DueDate,
	}
}

func FromTodoList(todos []*todo.Todo) []TodoResponse {
	result := make([]TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = FromTodo(t)
	}
	return result
}
