package sync

import (
	"context"
	"errors"
	"io"
	"lightningbowl-sync/models"
	"lightningbowl-sync/pkg/observable"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	failures int32
	calls    atomic.Int32
	loaded   chan struct{}
}

func (f *fakeLoader) Load(ctx context.Context) error {
	n := f.calls.Add(1)
	if n <= f.failures {
		return errors.New("database is locked")
	}
	close(f.loaded)
	return nil
}

type fakeService struct {
	status *observable.Value[models.SyncStatus]
	inits  atomic.Int32
}

func (f *fakeService) Init(ctx context.Context) error {
	f.inits.Add(1)
	return nil
}

func (f *fakeService) SubscribeStatus() (<-chan models.SyncStatus, func()) {
	return f.status.Subscribe()
}

func newTestWorker(loader *fakeLoader, svc *fakeService) *Worker {
	w := NewWorker(loader, svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.currentInterval = time.Millisecond
	w.baseInterval = time.Millisecond
	w.maxInterval = 5 * time.Millisecond
	return w
}

func TestWorker_StartInitializesAndLoads(t *testing.T) {
	loader := &fakeLoader{loaded: make(chan struct{})}
	svc := &fakeService{status: observable.New(models.SyncStatus{})}
	w := newTestWorker(loader, svc)

	w.Start(context.Background())
	w.Start(context.Background())

	select {
	case <-loader.loaded:
	case <-time.After(time.Second):
		t.Fatal("games never loaded")
	}

	svc.status.Set(models.SyncStatus{SyncInProgress: true})
	svc.status.Set(models.SyncStatus{Error: "boom"})

	w.Stop()
	w.Stop()

	assert.Equal(t, int32(1), svc.inits.Load())
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestWorker_RetriesFailedLoad(t *testing.T) {
	loader := &fakeLoader{failures: 2, loaded: make(chan struct{})}
	svc := &fakeService{status: observable.New(models.SyncStatus{})}
	w := newTestWorker(loader, svc)

	w.Start(context.Background())
	defer w.Stop()

	select {
	case <-loader.loaded:
	case <-time.After(time.Second):
		t.Fatal("games never loaded")
	}
	require.Equal(t, int32(3), loader.calls.Load())
}

func TestWorker_StopInterruptsRetries(t *testing.T) {
	loader := &fakeLoader{failures: 1000, loaded: make(chan struct{})}
	svc := &fakeService{status: observable.New(models.SyncStatus{})}
	w := newTestWorker(loader, svc)
	w.maxInterval = time.Hour
	w.currentInterval = time.Hour

	w.Start(context.Background())

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop blocked on retry")
	}
}
