/*
sweeper.go - Automated overdue-finding sweep

PURPOSE:
  Periodically moves audit findings past their due date into Overdue so
  the register reflects reality without waiting for a manual sweep.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - Delegates the actual move to the GRC service, which honours the
    finding transition table (resolved findings are never swept)
  - Persists the findings register only when something moved

USAGE:
  sweeper := NewOverdueSweeper(handler, log)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - grc/service.go: SweepOverdue, the manual sweep endpoint's backend
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OverdueSweeper periodically marks past-due findings as overdue.
type OverdueSweeper struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	log    *zap.Logger
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewOverdueSweeper creates a sweeper with a one-hour check interval.
func NewOverdueSweeper(h *Handler, log *zap.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		Handler:       h,
		CheckInterval: time.Hour,
		Enabled:       true,
		log:           log.Named("sweeper"),
		stop:          make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (sw *OverdueSweeper) Start() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if !sw.Enabled {
		sw.log.Info("sweeper disabled, not starting")
		return
	}

	sw.ticker = time.NewTicker(sw.CheckInterval)
	sw.wg.Add(1)
	go sw.run()

	sw.log.Info("sweeper started", zap.Duration("interval", sw.CheckInterval))
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish.
func (sw *OverdueSweeper) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.ticker != nil {
		sw.ticker.Stop()
		close(sw.stop)
		sw.wg.Wait()
		sw.log.Info("sweeper stopped")
	}
}

func (sw *OverdueSweeper) run() {
	defer sw.wg.Done()

	// Run immediately on start
	sw.sweep()

	for {
		select {
		case <-sw.ticker.C:
			sw.sweep()
		case <-sw.stop:
			return
		}
	}
}

func (sw *OverdueSweeper) sweep() {
	ctx := context.Background()
	moved := sw.Handler.svc.GRC.SweepOverdue(ctx)
	if moved == 0 {
		return
	}
	sw.Handler.saveGRC(ctx)
	sw.log.Info("findings marked overdue", zap.Int("moved", moved))
}

// RunNow triggers an immediate sweep (for testing/admin).
func (sw *OverdueSweeper) RunNow() {
	sw.sweep()
}
