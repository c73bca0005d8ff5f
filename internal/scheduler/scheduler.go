package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on each tick until ctx is done. A
// tick that arrives while the previous run is still going is skipped.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	var running atomic.Bool
	run := func() {
		if !running.CompareAndSwap(false, true) {
			slog.Debug(fmt.Sprintf("[%s] previous run still going, tick skipped", name))
			return
		}
		defer running.Store(false)
		if err := task(ctx); err != nil {
			slog.Error(fmt.Sprintf("[%s] error", name), "err", err)
		}
	}

	go run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			go run()
		}
	}
}
