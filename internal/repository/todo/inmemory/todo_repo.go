package inmemory

import (
	"context"
	"slices"
	"sync"
	"todoApp/internal/models/todo"
	repo "todoApp/internal/repository"
)

type TodoStorage struct {
	storage map[int64]todo.Todo
	mtx     *sync.RWMutex
}

func NewTodoStorage() *TodoStorage {
	return &TodoStorage{
		storage: make(map[int64]todo.Todo),
		mtx:     &sync.RWMutex{},
	}
}

func (s *TodoStorage) HealthCheck(ctx context.Context) error {
	return nil
}

// Migrate нужен только для единообразия с SQL-хранилищами
func (s *TodoStorage) Migrate(ctx context.Context) error {
	return nil
}

func (s *TodoStorage) Close() {}

func (s *TodoStorage) Create(ctx context.Context, item *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[item.ID]; ok {
		return repo.ErrAlreadyExists
	}
	s.storage[item.ID] = *item
	return nil
}

func (s *TodoStorage) Update(ctx context.Context, item *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[item.ID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[item.ID] = *item
	return nil
}

// хранилище отдаёт копии, чтобы вызывающий код не менял данные в обход Update
func (s *TodoStorage) GetByID(ctx context.Context, id int64) (*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	item, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &item, nil
}

func (s *TodoStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.storage, id)
	return nil
}

func (s *TodoStorage) List(ctx context.Context, sel todo.Selection) ([]*todo.Todo, error) {
	return s.collect(sel.Matches), nil
}

func (s *TodoStorage) ListDueOn(ctx context.Context, dueDate string) ([]*todo.Todo, error) {
	return s.collect(func(t *todo.Todo) bool { return t.DueDate == dueDate }), nil
}

func (s *TodoStorage) collect(match func(*todo.Todo) bool) []*todo.Todo {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*todo.Todo{}
	for _, item := range s.storage {
		if match(&item) {
			res = append(res, &item)
		}
	}
	slices.SortFunc(res, func(a, b *todo.Todo) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return res
}
