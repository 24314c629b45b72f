package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/models/task"
)

// события, потерянные за окно обрыва канала, навёрстываются
// только явной перезагрузкой - этим и занимается воркер

type TaskReloader interface {
	Load(context.Context, task.Filter) error
	ActiveFilter() task.Filter
}

type RefreshWorker struct {
	reloader TaskReloader
	interval time.Duration
}

func NewRefreshWorker(reloader TaskReloader, interval *time.Duration) *RefreshWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = 5 * time.Minute
	} else {
		intervalToSet = *interval
	}

	return &RefreshWorker{
		reloader: reloader,
		interval: intervalToSet,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая перезагрузка коллекции", zap.Time("started_at", time.Now()))
			w.Refresh(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая перезагрузка останавливается")
			return
		}
	}
}

func (w *RefreshWorker) Refresh(ctx context.Context) {
	start := time.Now()

	if err := w.reloader.Load(ctx, w.reloader.ActiveFilter()); err != nil {
		logger.Warn("Worker: Ошибка перезагрузки коллекции", zap.Error(err))
		return
	}

	logger.Info("Worker: Перезагрузка завершена", zap.Duration("ms", time.Since(start)))
}
