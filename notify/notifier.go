// Package notify delivers short user-facing notifications (toasts).
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	IconCheckmark       = "checkmark-outline"
	IconCheckmarkCircle = "checkmark-circle"
	IconBug             = "bug-outline"
)

type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Icon      string    `json:"icon"`
	IsError   bool      `json:"isError"`
	CreatedAt time.Time `json:"createdAt"`
}

type Notifier interface {
	Notify(message, icon string, isError bool)
}

// Feed keeps the most recent toasts in a fixed-size ring and logs each one.
type Feed struct {
	mu     sync.Mutex
	ring   []Toast
	next   int
	full   bool
	logger *slog.Logger
}

func NewFeed(size int, logger *slog.Logger) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{
		ring:   make([]Toast, size),
		logger: logger.With("component", "notify"),
	}
}

func (f *Feed) Notify(message, icon string, isError bool) {
	toast := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Icon:      icon,
		IsError:   isError,
		CreatedAt: time.Now(),
	}

	if isError {
		f.logger.Warn("toast", "message", message, "icon", icon)
	} else {
		f.logger.Info("toast", "message", message, "icon", icon)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ring[f.next] = toast
	f.next = (f.next + 1) % len(f.ring)
	if f.next == 0 {
		f.full = true
	}
}

// Recent returns the buffered toasts, newest first.
func (f *Feed) Recent() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.next
	if f.full {
		n = len(f.ring)
	}
	out := make([]Toast, 0, n)
	for i := 1; i <= n; i++ {
		idx := (f.next - i + len(f.ring)) % len(f.ring)
		out = append(out, f.ring[idx])
	}
	return out
}
