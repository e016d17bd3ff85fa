package service

import (
	"context"
	"sync"
	"time"

	"github.com/viraldaily/viraldaily-go/internal/middleware"
	"github.com/viraldaily/viraldaily-go/internal/model"
	"github.com/viraldaily/viraldaily-go/internal/repository"
)

// SnapshotWorker batches aggregation snapshots into Postgres. Snapshot
// persistence is best-effort: a slow or absent database must never delay
// an aggregation request, so Record only appends to a pending buffer and
// the flush loop writes in the background.
type SnapshotWorker struct {
	repo        *repository.SnapshotRepo
	batchWindow time.Duration

	mu      sync.Mutex
	pending []model.PlatformSnapshot
}

// NewSnapshotWorker creates a snapshot batching worker.
func NewSnapshotWorker(repo *repository.SnapshotRepo) *SnapshotWorker {
	return &SnapshotWorker{
		repo:        repo,
		batchWindow: 5 * time.Second,
	}
}

// Record enqueues a cycle's snapshots for persistence. Never blocks on I/O.
func (w *SnapshotWorker) Record(snapshots []model.PlatformSnapshot) {
	if w == nil || len(snapshots) == 0 {
		return
	}
	w.mu.Lock()
	w.pending = append(w.pending, snapshots...)
	// Cap the buffer so a dead database cannot grow it without bound.
	if len(w.pending) > 10000 {
		w.pending = w.pending[len(w.pending)-10000:]
	}
	w.mu.Unlock()
}

// Start runs the flush loop until the context is cancelled, then performs
// a final flush.
func (w *SnapshotWorker) Start(ctx context.Context) {
	middleware.Logger.Info().Dur("batch_window", w.batchWindow).Msg("snapshot-worker: starting")

	ticker := time.NewTicker(w.batchWindow)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			w.flush(context.Background())
			middleware.Logger.Info().Msg("snapshot-worker: stopping (context cancelled)")
			return
		}
	}
}

// flush drains the pending buffer and writes it in one batch.
func (w *SnapshotWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = nil
	w.mu.Unlock()

	flushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := w.repo.InsertBatch(flushCtx, batch); err != nil {
		middleware.Logger.Warn().Err(err).Int("snapshots", len(batch)).Msg("snapshot-worker: batch insert failed, dropping batch")
		return
	}
	middleware.Logger.Debug().Int("snapshots", len(batch)).Msg("snapshot-worker: batch flushed")
}
