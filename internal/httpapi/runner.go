package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"pitchdeck-scraper/internal/config"
	"pitchdeck-scraper/internal/domain"
	"pitchdeck-scraper/internal/events"
	"pitchdeck-scraper/internal/scrape"
	"pitchdeck-scraper/internal/scrape/types"
)

var (
	ErrAlreadyRunning = errors.New("a scrape is already running")
	ErrShuttingDown   = errors.New("runner is shutting down")
)

// RunFunc executes one operation with the given observer.
type RunFunc func(ctx context.Context, cfg config.Config, op scrape.Operation, obs types.Observer) ([]domain.Run, error)

// Runner serializes scrape runs started from the API or the scheduler and
// tracks the status of the latest one.
type Runner struct {
	base   context.Context
	cfgVal *atomic.Value
	hub    *events.Hub
	run    RunFunc

	mu     sync.Mutex
	status types.ScrapeStatus
	closed bool
	wg     sync.WaitGroup
}

func NewRunner(base context.Context, cfgVal *atomic.Value, hub *events.Hub, run RunFunc) *Runner {
	return &Runner{base: base, cfgVal: cfgVal, hub: hub, run: run}
}

func (r *Runner) Status() types.ScrapeStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Start launches op in the background. It fails with ErrAlreadyRunning while
// a previous run is in progress and with ErrShuttingDown once the runner is
// closed or its base context is done.
func (r *Runner) Start(op scrape.Operation, reqID string) error {
	_, err := r.start(op, reqID)
	return err
}

// start returns a channel that receives the run's own error once it ends.
func (r *Runner) start(op scrape.Operation, reqID string) (<-chan error, error) {
	r.mu.Lock()
	if r.closed || r.base.Err() != nil {
		r.mu.Unlock()
		return nil, ErrShuttingDown
	}
	if r.status.Running {
		r.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	r.status.Operation = string(op)
	r.status.Running = true
	r.status.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	r.status.LastError = ""
	r.status.LastRecords = 0
	r.wg.Add(1)
	r.mu.Unlock()

	r.hub.Publish(events.MakeEvent(reqID, events.TypeRunStarted, 1, map[string]any{"operation": op}))

	done := make(chan error, 1)
	go func() {
		defer r.wg.Done()
		done <- r.finish(op, reqID)
	}()
	return done, nil
}

// RunSync starts op and blocks until it finishes. The scheduler uses it.
func (r *Runner) RunSync(op scrape.Operation) error {
	done, err := r.start(op, "")
	if err != nil {
		return err
	}
	return <-done
}

// Wait blocks until no run is in progress.
func (r *Runner) Wait() { r.wg.Wait() }

// Close refuses further runs and waits for the current one to finish.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Runner) finish(op scrape.Operation, reqID string) error {
	cfg := r.cfgVal.Load().(config.Config)
	obs := scrape.MultiObserver{scrape.LogObserver{}, events.Observer{Hub: r.hub, RequestID: reqID}}

	runs, err := r.run(r.base, cfg, op, obs)

	records := 0
	for _, run := range runs {
		records += run.RecordCount
	}

	now := time.Now().UTC().Format(time.RFC3339)
	r.mu.Lock()
	r.status.Running = false
	r.status.LastRunAt = now
	r.status.LastRecords = records
	if err != nil {
		r.status.LastError = err.Error()
	} else {
		r.status.LastOkAt = now
	}
	r.mu.Unlock()

	if err != nil {
		slog.Error(fmt.Sprintf("[scrape:%s] run failed", op), "err", err, "exit_code", types.ExitCode(err))
		r.hub.Publish(events.MakeEvent(reqID, events.TypeRunFailed, 1, map[string]any{
			"operation": op, "error": err.Error(), "exit_code": types.ExitCode(err),
		}))
		return err
	}
	r.hub.Publish(events.MakeEvent(reqID, events.TypeRunFinished, 1, map[string]any{"operation": op, "runs": runs}))
	return nil
}
