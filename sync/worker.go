package sync

import (
	"context"
	"lightningbowl-sync/models"
	"log/slog"
	"sync"
	"time"
)

// GameLoader loads the local game history and releases its readiness barrier.
type GameLoader interface {
	Load(ctx context.Context) error
}

// SyncService is the part of the orchestrator the worker drives.
type SyncService interface {
	Init(ctx context.Context) error
	SubscribeStatus() (<-chan models.SyncStatus, func())
}

// Worker runs the startup work in the background: it loads the game history,
// initializes cloud sync (which may run the startup sync) and logs status
// transitions until stopped.
type Worker struct {
	games           GameLoader
	service         SyncService
	baseInterval    time.Duration
	maxInterval     time.Duration
	currentInterval time.Duration
	running         bool
	mu              sync.Mutex
	cancel          context.CancelFunc
	done            chan struct{}
	logger          *slog.Logger
}

func NewWorker(games GameLoader, service SyncService, logger *slog.Logger) *Worker {
	return &Worker{
		games:           games,
		service:         service,
		baseInterval:    2 * time.Second,
		maxInterval:     time.Minute,
		currentInterval: 2 * time.Second,
		logger:          logger.With("component", "sync_worker"),
	}
}

// Start begins the background work. Calling it twice is a no-op.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	w.logger.Info("starting sync worker")
	go w.run(ctx)
}

// Stop cancels in-flight work and waits for the worker to exit.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	w.logger.Info("stopping sync worker")
	cancel()
	<-done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.loadGames(ctx)
	}()

	if err := w.service.Init(ctx); err != nil {
		w.logger.Error("cloud sync init failed", "error", err)
	}

	w.watchStatus(ctx)
	wg.Wait()
}

// loadGames retries with a growing interval until the history loads or ctx ends.
func (w *Worker) loadGames(ctx context.Context) {
	for {
		err := w.games.Load(ctx)
		if err == nil {
			return
		}

		w.mu.Lock()
		wait := w.currentInterval
		w.currentInterval *= 2
		if w.currentInterval > w.maxInterval {
			w.currentInterval = w.maxInterval
		}
		w.mu.Unlock()

		w.logger.Error("loading game history failed", "error", err, "retry_in", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// watchStatus logs sync and disconnect transitions until ctx is done.
func (w *Worker) watchStatus(ctx context.Context) {
	updates, unsubscribe := w.service.SubscribeStatus()
	defer unsubscribe()

	var prev models.SyncStatus
	first := true
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			if !first {
				w.logTransition(prev, st)
			}
			prev, first = st, false
		}
	}
}

func (w *Worker) logTransition(prev, next models.SyncStatus) {
	switch {
	case !prev.SyncInProgress && next.SyncInProgress:
		w.logger.Debug("sync in progress")
	case prev.SyncInProgress && !next.SyncInProgress && next.Error != "":
		w.logger.Warn("sync finished with error", "error", next.Error)
	case prev.IsAuthenticated && !next.IsAuthenticated:
		w.logger.Info("cloud provider disconnected")
	case !prev.IsAuthenticated && next.IsAuthenticated:
		w.logger.Info("cloud provider connected")
	}
}
