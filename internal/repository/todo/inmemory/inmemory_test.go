package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"todoApp/internal/models/todo"
	"todoApp/internal/repository"
	"todoApp/internal/repository/todo/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func seed(t *testing.T, storage *inmemory.TodoStorage) {
	items := []*todo.Todo{
		{ID: 5, Todo: "Write report", Priority: todo.PriorityHigh, Status: todo.StatusToDo, Category: todo.CategoryWork, DueDate: "2023-01-05"},
		{ID: 1, Todo: "Buy milk", Priority: todo.PriorityHigh, Status: todo.StatusToDo, Category: todo.CategoryHome, DueDate: "2023-01-05"},
		{ID: 3, Todo: "Fix bug", Priority: todo.PriorityLow, Status: todo.StatusToDo, Category: todo.CategoryWork, DueDate: "2023-01-05"},
		{ID: 2, Todo: "Learn Go", Priority: todo.PriorityHigh, Status: todo.StatusDone, Category: todo.CategoryLearning, DueDate: "2023-01-06"},
		{ID: 4, Todo: "Buy bread", Priority: todo.PriorityMedium, Status: todo.StatusInProgress, Category: todo.CategoryHome, DueDate: "2023-02-01"},
	}
	for _, item := range items {
		require.NoError(t, storage.Create(context.Background(), item))
	}
}

func ids(items []*todo.Todo) []int64 {
	res := make([]int64, len(items))
	for i, item := range items {
		res[i] = item.ID
	}
	return res
}

// TestTodoStorage_Create тестирует создание задачи
func TestTodoStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	item := &todo.Todo{ID: 1, Todo: "Buy milk", Priority: todo.PriorityHigh, Status: todo.StatusToDo, Category: todo.CategoryHome, DueDate: "2023-01-05"}
	require.NoError(t, storage.Create(ctx, item))

	got, err := storage.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	// изменение возвращённой копии не влияет на хранилище
	got.Todo = "changed"
	again, err := storage.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", again.Todo)

	assert.ErrorIs(t, storage.Create(ctx, item), repository.ErrAlreadyExists)
}

func TestTodoStorage_GetByID_NotFound(t *testing.T) {
	_, err := inmemory.NewTodoStorage().GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTodoStorage_List(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()
	seed(t, storage)

	tests := []struct {
		name     string
		filter   todo.Filter
		expected []int64
	}{
		{name: "everything sorted by id", filter: todo.Filter{}, expected: []int64{1, 2, 3, 4, 5}},
		{name: "search", filter: todo.Filter{Search: "Buy"}, expected: []int64{1, 4}},
		{name: "priority and status", filter: todo.Filter{Priority: ptr(todo.PriorityHigh), Status: ptr(todo.StatusToDo)}, expected: []int64{1, 5}},
		{name: "status", filter: todo.Filter{Status: ptr(todo.StatusDone)}, expected: []int64{2}},
		{name: "category", filter: todo.Filter{Category: ptr(todo.CategoryHome)}, expected: []int64{1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.List(ctx, tt.filter.Select())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestTodoStorage_ListDueOn(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()
	seed(t, storage)

	got, err := storage.ListDueOn(ctx, "2023-01-05")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 5}, ids(got))
}

func TestTodoStorage_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()
	seed(t, storage)

	item, err := storage.GetByID(ctx, 2)
	require.NoError(t, err)
	item.Status = todo.StatusInProgress
	require.NoError(t, storage.Update(ctx, item))

	got, err := storage.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, todo.StatusInProgress, got.Status)

	assert.ErrorIs(t, storage.Update(ctx, &todo.Todo{ID: 99}), repository.ErrNotFound)

	require.NoError(t, storage.Delete(ctx, 2))
	_, err = storage.GetByID(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, storage.Delete(ctx, 2))
}

// TestTodoStorage_Concurrent проверяет потокобезопасность
func TestTodoStorage_Concurrent(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = storage.Create(ctx, &todo.Todo{ID: id, Todo: fmt.Sprintf("todo %d", id)})
			_, _ = storage.List(ctx, todo.Filter{}.Select())
		}(int64(i))
	}
	wg.Wait()

	all, err := storage.List(ctx, todo.Filter{}.Select())
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
