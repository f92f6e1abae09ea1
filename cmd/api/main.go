package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"todoApp/internal/app"
	"todoApp/internal/config"
	"todoApp/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("загрузка конфига: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg).Init(ctx)
	if err != nil {
		return err
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("App: Сервер завершился с ошибкой", err)
		return err
	}
	return nil
}
