// Package adwatch simulates the rewarded-ad flow: a fixed-length wait
// with per-second progress, one at a time.
package adwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/config"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/economy"
)

// ErrInProgress rejects a second watch while one is still running.
var ErrInProgress = errors.New("adwatch: already in progress")

type Gate struct {
	cfg    config.Balance
	ledger *economy.Ledger

	mu      sync.Mutex
	running bool
}

func New(cfg config.Balance, ledger *economy.Ledger) *Gate {
	return &Gate{cfg: cfg, ledger: ledger}
}

// Running reports whether a watch is in flight.
func (g *Gate) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Watch blocks for the configured ad duration, calling onTick with
// elapsed whole seconds. On completion it records the watch and
// returns nil; cancellation grants nothing.
func (g *Gate) Watch(ctx context.Context, onTick func(elapsed, total int)) error {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return ErrInProgress
	}
	g.running = true
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.running = false
		g.mu.Unlock()
	}()

	total := int(g.cfg.AdWatchDuration / time.Second)
	if total < 1 {
		total = 1
	}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for elapsed := 0; elapsed < total; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			elapsed++
			if onTick != nil {
				onTick(elapsed, total)
			}
		}
	}
	g.ledger.RecordAdWatch()
	return nil
}
