// Package schedule repeats a task on a fixed interval.
package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

// Every runs task once right away and then on every tick until ctx ends.
// Runs never overlap: a tick that fires during a run is dropped.
// A failed run is logged and does not stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, log *zap.Logger, task Task) {
	if log == nil {
		log = zap.NewNop()
	}
	run := func() {
		start := time.Now()
		if err := task(ctx); err != nil {
			log.Error("scheduled run failed", zap.String("task", name), zap.Error(err))
			return
		}
		log.Debug("scheduled run done", zap.String("task", name), zap.Duration("took", time.Since(start)))
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ctx.Err() != nil {
				return
			}
			run()
		}
	}
}
