package kpistore

import (
	"context"
	"log/slog"
	"os"
	"time"

	"scorecard.bizops.dev/internal/logging"
)

// reloadPeriodically re-imports Source whenever its modification time moves.
func (manager *Manager) reloadPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			manager.reloadIfChanged()
		case <-manager.shutdownChan:
			return
		}
	}
}

func (manager *Manager) reloadIfChanged() {
	info, err := os.Stat(manager.config.Source)
	if err != nil {
		logging.LogError(manager.logger, "failed to stat KPI source", err,
			slog.String("source", manager.config.Source))
		return
	}

	manager.writeMutex.Lock()
	defer manager.writeMutex.Unlock()

	if !info.ModTime().After(manager.sourceMod) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// a broken file keeps the previous snapshot
	if err := manager.importSource(ctx); err != nil {
		logging.LogError(manager.logger, "failed to reload KPI source", err,
			slog.String("source", manager.config.Source))
	}
}
