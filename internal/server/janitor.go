// ABOUTME: Background pruning of idle sessions
// ABOUTME: Periodically deletes sessions whose last update is older than the TTL

package server

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultJanitorInterval is how often idle sessions are pruned
const DefaultJanitorInterval = time.Minute

// SessionPruner deletes sessions last updated before a cutoff
type SessionPruner interface {
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Janitor prunes idle sessions in a background goroutine.
type Janitor struct {
	store  SessionPruner
	ttl    time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

// NewJanitor starts a janitor that runs every interval and deletes sessions
// idle for longer than ttl.
func NewJanitor(s SessionPruner, ttl, interval time.Duration, logger *slog.Logger) *Janitor {
	j := &Janitor{
		store:  s,
		ttl:    ttl,
		logger: logger,
		done:   make(chan struct{}),
	}
	go j.run(interval)
	return j
}

func (j *Janitor) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.prune()
		case <-j.done:
			return
		}
	}
}

// prune deletes every session idle for longer than the TTL
func (j *Janitor) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.store.DeleteSessionsBefore(ctx, time.Now().Add(-j.ttl))
	if err != nil {
		j.logger.Error("failed to prune sessions", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("pruned idle sessions", "count", n)
	}
}

// Close stops the background goroutine. It is safe to call multiple times.
func (j *Janitor) Close() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.closed {
		close(j.done)
		j.closed = true
	}
}
