package app

import (
	"context"
	"fmt"

	"taskboard/internal/config"
	"taskboard/internal/gateway"
	"taskboard/internal/logger"
	"taskboard/internal/models/task"
	"taskboard/internal/realtime"
	"taskboard/internal/reconciler"
	"taskboard/internal/worker"
)

// App - жизненный цикл одной сессии: создаётся при входе,
// Shutdown освобождает всё в обратном порядке
type App struct {
	config     *config.Config
	gateway    *gateway.Client
	channel    *realtime.Channel
	reconciler *reconciler.Reconciler
	worker     *worker.RefreshWorker
	shutdowns  []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Завершение работы логгирования...")
		logger.Sync()
	})

	a.gateway = gateway.New(a.config.API.BaseURL, a.config.API.Timeout.Std())

	a.channel = realtime.NewChannel(
		a.config.Realtime.URL,
		a.config.Session.UserID,
		a.config.Realtime.ReconnectWait.Std(),
	)
	if err := a.channel.Connect(); err != nil {
		return fmt.Errorf("подключение канала событий: %w", err)
	}
	a.shutdowns = append(a.shutdowns, a.channel.Close)

	a.reconciler = reconciler.New(a.gateway, a.channel.Events(), a.config.Session.UserID)
	a.shutdowns = append(a.shutdowns, a.reconciler.Close)

	// первая загрузка без фильтра, сбой не фатален - догонит воркер
	if err := a.reconciler.Load(ctx, task.Filter{}); err != nil {
		logger.Error("App: Первичная загрузка не удалась", err)
	}

	refreshInterval := a.config.Refresh.Interval.Std()
	a.worker = worker.NewRefreshWorker(a.reconciler, &refreshInterval)

	return nil
}

func (a *App) Run(ctx context.Context) {
	go a.worker.Start(ctx)
	<-ctx.Done()
}

// Shutdown вызывает функции завершения в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}

func (a *App) Reconciler() *reconciler.Reconciler {
	return a.reconciler
}
