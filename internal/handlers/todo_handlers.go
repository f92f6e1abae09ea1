package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
	"todoApp/internal/handlers/dto"
	"todoApp/internal/logger"
	"todoApp/internal/models/todo"
	"todoApp/internal/service"

	"go.uber.org/zap"
)

const (
	MsgTodoAdded   = "Todo Successfully Added"
	MsgTodoDeleted = "Todo Deleted"
	MsgNothing     = "Nothing"
)

type TodoService interface {
	HealthCheck(context.Context) error
	ListTodos(context.Context, todo.Filter) ([]*todo.Todo, error)
	GetTodo(context.Context, int64) (*todo.Todo, error)
	CreateTodo(context.Context, *todo.Todo) error
	UpdateTodo(context.Context, int64, todo.Patch) (string, error)
	DeleteTodo(context.Context, int64) error
	CheckAgenda(context.Context, string) (*service.Agenda, error)
}

type TodoHandler struct {
	TodoService TodoService
}

func NewTodoHandler(todoService TodoService) *TodoHandler {
	return &TodoHandler{
		TodoService: todoService,
	}
}

func (s *TodoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.TodoService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check не пройден", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", "todo-api"),
		)
		return
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", "todo-api"),
	)
}

func (s *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	todos, err := s.TodoService.ListTodos(r.Context(), filterFromQuery(r))
	if err != nil {
		handleServiceError(w, r, err, "list_todos")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(todos)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTodoList(todos))
}

func (s *TodoHandler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDParam(r)
	if !ok {
		logger.Warn("HTTP: Не удалось получить id", zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, todo.MsgInvalidID)
		return
	}

	item, err := s.TodoService.GetTodo(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "get_todo")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.Int64("todo_id", item.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromTodo(item))
}

func (s *TodoHandler) PostTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "Invalid Request Body")
		return
	}

	if err := s.TodoService.CreateTodo(r.Context(), request.ToTodo()); err != nil {
		handleServiceError(w, r, err, "create_todo")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int64("todo_id", request.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithText(w, http.StatusOK, MsgTodoAdded)
}

func (s *TodoHandler) UpdateTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDParam(r)
	if !ok {
		logger.Warn("HTTP: Не удалось получить id", zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, todo.MsgInvalidID)
		return
	}

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.UpdateTodoRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "Invalid Request Body")
		return
	}

	changed, err := s.TodoService.UpdateTodo(r.Context(), id, request.ToPatch())
	if err != nil {
		handleServiceError(w, r, err, "update_todo")
		return
	}
	if changed == "" {
		changed = MsgNothing
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.Int64("todo_id", id),
		zap.String("changed", changed),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithText(w, http.StatusOK, changed+" Updated")
}

func (s *TodoHandler) DeleteTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := todoIDParam(r)
	if !ok {
		logger.Warn("HTTP: Не удалось получить id", zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, todo.MsgInvalidID)
		return
	}

	if err := s.TodoService.DeleteTodo(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "delete_todo")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.Int64("todo_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithText(w, http.StatusOK, MsgTodoDeleted)
}

// GetAgenda always answers: 200 with the todos due on a valid date, 400 otherwise.
func (s *TodoHandler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	agenda, err := s.TodoService.CheckAgenda(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, r, err, "agenda")
		return
	}

	if !agenda.Valid {
		logger.Warn("HTTP: Неверная дата повестки", zap.String("date", agenda.Date))
		responseWithJSON(w, http.StatusBadRequest,
			toPayload("date", agenda.Date),
			toPayload("valid", false),
			toPayload("error", todo.MsgInvalidDueDate),
		)
		return
	}

	logger.Info("HTTP_OUT: Повестка получена",
		zap.String("date", agenda.Date),
		zap.Int("count", len(agenda.Todos)),
		zap.Duration("ms", time.Since(start)))

	responseWithBody(w, http.StatusOK, dto.AgendaResponse{
		Date:  agenda.Date,
		Valid: true,
		Todos: dto.FromTodoList(agenda.Todos),
	})
}
