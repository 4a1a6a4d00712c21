package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"travelbrowser/internal/catalog"
	"travelbrowser/internal/log"
)

const defaultSyncInterval = 60 * time.Second

// CatalogReader reads the whole catalog, e.g. relational.Repo.
type CatalogReader interface {
	Dump(ctx context.Context) (catalog.Seed, error)
}

// SyncWorker periodically mirrors the relational catalog into the graph.
type SyncWorker struct {
	reader   CatalogReader
	graph    GraphClient
	interval time.Duration

	// ResetOnStop wipes the mirror when the worker stops.
	ResetOnStop bool

	mu       sync.Mutex
	cancel   context.CancelFunc
	running  bool
	wg       sync.WaitGroup
	lastSync time.Time
}

// NewSyncWorker creates a new worker instance. A non-positive interval
// uses the default.
func NewSyncWorker(r CatalogReader, g GraphClient, interval time.Duration) (*SyncWorker, error) {
	if r == nil || g == nil {
		return nil, errors.New("catalog reader and graph client are required")
	}
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &SyncWorker{reader: r, graph: g, interval: interval}, nil
}

// Start runs one sync immediately and then one per interval.
func (w *SyncWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("worker already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	go w.loop(ctx)
	return nil
}

// Stop gracefully stops the worker and closes the graph client.
func (w *SyncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.running = false
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()

	ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if w.ResetOnStop {
		if err := w.graph.Reset(ctx); err != nil {
			log.WarningLog.Printf("graph reset failed: %v", err)
		}
	}
	if err := w.graph.Close(ctx); err != nil {
		log.WarningLog.Printf("graph close failed: %v", err)
	}
}

// PullOnce mirrors the catalog immediately.
func (w *SyncWorker) PullOnce(ctx context.Context) error {
	data, err := w.reader.Dump(ctx)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if err := w.graph.IngestCatalog(ctx, data); err != nil {
		return fmt.Errorf("ingest catalog: %w", err)
	}

	w.mu.Lock()
	w.lastSync = time.Now()
	w.mu.Unlock()
	log.InfoLog.Printf("graph mirror synced: %d countries, %d places", len(data.Countries), len(data.Places))
	return nil
}

// LastSync returns when the mirror last succeeded, or the zero time.
func (w *SyncWorker) LastSync() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSync
}

func (w *SyncWorker) loop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// An unreachable graph fails every tick; report it at most every few minutes.
	failures := log.NewEvery(5 * time.Minute)
	pull := func() {
		if err := w.PullOnce(ctx); err != nil && ctx.Err() == nil && failures.ShouldLog() {
			log.ErrorLog.Printf("graph sync failed: %v", err)
		}
	}

	pull()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pull()
		}
	}
}
