package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"todoApp/internal/config"
	"todoApp/internal/handlers"
	"todoApp/internal/logger"
	"todoApp/internal/middleware"
	"todoApp/internal/repository/todo/inmemory"
	"todoApp/internal/repository/todo/postgres"
	"todoApp/internal/repository/todo/sqlite"
	"todoApp/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store - хранилище задач вместе с управлением схемой и соединениями
type Store interface {
	service.TodoRepository
	Migrate(context.Context) error
	Close()
}

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	handler    http.Handler
	repository Store // интерфейс!
	service    *service.TodoService
	shutdowns  []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Завершение работы логгирования...")
		logger.Sync()
	})

	if err := a.initRepository(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.service = service.NewTodoService(a.repository, a.config.Validation.Strict)
	a.router = a.newRouter(handlers.NewTodoHandler(a.service))

	a.handler = a.router
	if a.config.HTTP.Tracing {
		a.handler = otelhttp.NewHandler(a.router, "todo-api")
	}

	logger.Info("App: Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.Bool("strict_validation", a.config.Validation.Strict))
	return a, nil
}

func (a *App) initRepository(ctx context.Context) error {
	var (
		store Store
		err   error
	)

	switch a.config.Repository.Type {
	case config.RepositorySQLite:
		store, err = newSQLite(ctx, a.config.Database.Path)
	case config.RepositoryPostgres:
		store, err = newPostgres(ctx, a.config.Database)
	case config.RepositoryInMemory:
		store = inmemory.NewTodoStorage()
	default:
		err = fmt.Errorf("неизвестный тип репозитория %q", a.config.Repository.Type)
	}
	if err != nil {
		return fmt.Errorf("создание репозитория: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return fmt.Errorf("миграции: %w", err)
	}

	a.repository = store
	a.shutdowns = append(a.shutdowns, store.Close)
	return nil
}

// конструкторы возвращают Store, чтобы не получить интерфейс с nil-указателем
func newSQLite(ctx context.Context, path string) (Store, error) {
	s, err := sqlite.New(ctx, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newPostgres(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	s, err := postgres.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a *App) newRouter(h *handlers.TodoHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.HTTP.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(a.config.HTTP.RateLimit))
	if a.config.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(a.config.Server.RequestTimeout))
	}

	listTodos := http.Handler(http.HandlerFunc(h.GetTodos))
	if a.config.Validation.Strict {
		listTodos = middleware.ValidateTodoQuery(listTodos)
	}

	r.Route("/todos", func(r chi.Router) {
		r.Method(http.MethodGet, "/", listTodos) // GET /todos
		r.Post("/", h.PostTodo)                  // POST /todos

		r.Route("/{todoId}", func(r chi.Router) {
			r.Get("/", h.GetTodoByID)       // GET /todos/{todoId}
			r.Put("/", h.UpdateTodoByID)    // PUT /todos/{todoId}
			r.Delete("/", h.DeleteTodoByID) // DELETE /todos/{todoId}
		})
	})

	r.Get("/agenda", h.GetAgenda)
	r.Get("/health", h.HealthCheck)

	return r
}

// Handler возвращает корневой обработчик со всеми middleware
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер и освобождает ресурсы
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.handler,
		ReadHeaderTimeout: a.config.Server.RequestTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("запуск сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("App: Остановка сервера")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close вызывает функции завершения в обратном порядке регистрации
func (a *App) Close() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
