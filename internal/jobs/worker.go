package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued jobs on a fixed pool and named jobs on schedules
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	queue   chan namedJob
	size    int
	stats   WorkerStats
	statsMu sync.RWMutex
	closed  sync.Once
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	Workers       int                  `json:"workers"`
	ActiveJobs    int                  `json:"active_jobs"`
	CompletedJobs int64                `json:"completed_jobs"`
	FailedJobs    int64                `json:"failed_jobs"`
	QueueLength   int                  `json:"queue_length"`
	LastRuns      map[string]time.Time `json:"last_runs"`
}

// NewWorker creates a worker with numWorkers queue processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan namedJob, 100),
		size:   numWorkers,
		stats:  WorkerStats{LastRuns: make(map[string]time.Time)},
	}

	w.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go w.process(i)
	}
	return w
}

// Enqueue adds a job to the pool. When the queue is full the job runs on the caller.
func (w *Worker) Enqueue(name string, job Job) {
	select {
	case w.queue <- namedJob{name: name, run: job}:
	default:
		logger.Warn("Job queue full, running synchronously", "job", name)
		w.run(namedJob{name: name, run: job}, slog.String("runner", "caller"))
	}
}

func (w *Worker) process(id int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(job, slog.Int("runner", id))
		}
	}
}

// ScheduleEvery runs a job at fixed intervals, first after one interval
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, false)
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, true)
}

func (w *Worker) schedule(name string, interval time.Duration, job Job, immediate bool) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		nj := namedJob{name: name, run: job}
		if immediate {
			w.run(nj, slog.String("runner", "scheduler"))
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run(nj, slog.String("runner", "scheduler"))
			}
		}
	}()
}

// run executes one job, recording stats and recovering panics
func (w *Worker) run(job namedJob, runner slog.Attr) {
	w.trackJobStart()
	start := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			logger.Error("Job failed", "job", job.name, runner, "error", err)
		} else {
			logger.Info("Job completed", "job", job.name, runner, "elapsed", time.Since(start))
		}
		w.trackJobEnd(job.name, err != nil)
	}()
	err = job.run(w.ctx)
}

// Shutdown stops the schedules and queue processors and waits for them
func (w *Worker) Shutdown() {
	w.closed.Do(func() {
		w.cancel()
		w.wg.Wait()
	})
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.Workers = w.size
	stats.QueueLength = len(w.queue)
	stats.LastRuns = make(map[string]time.Time, len(w.stats.LastRuns))
	for k, v := range w.stats.LastRuns {
		stats.LastRuns[k] = v
	}
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// trackJobEnd counts every finished job as completed; failures are also counted separately
func (w *Worker) trackJobEnd(name string, failed bool) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
	if failed {
		w.stats.FailedJobs++
	}
	w.stats.LastRuns[name] = time.Now()
}
