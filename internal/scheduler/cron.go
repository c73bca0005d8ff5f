package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type cronLogger struct {
	name string
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(fmt.Sprintf("[%s] %s", l.name, msg), keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(fmt.Sprintf("[%s] %s", l.name, msg), append(keysAndValues, "err", err)...)
}

// Cron runs task on a standard 5-field cron spec until ctx is done. Runs that
// would overlap a still running one are skipped.
func Cron(ctx context.Context, spec, name string, task Task) error {
	logger := cronLogger{name: name}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	_, err := c.AddFunc(spec, func() {
		if err := task(ctx); err != nil {
			slog.Error(fmt.Sprintf("[%s] error", name), "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}
