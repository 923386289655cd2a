package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gnana997/uimeta/pkg/extract"
	"github.com/gnana997/uimeta/pkg/util"
)

// scanJob names one component to extract.
type scanJob struct {
	Component string
	JobID     int
}

// scanResult carries one extracted component record.
type scanResult struct {
	Component string
	Metadata  extract.ComponentMetadata
}

// ScanError pairs a component with the error that kept it out of a
// scan.
type ScanError struct {
	Component string
	Err       error
}

func (se ScanError) Error() string {
	return fmt.Sprintf("%s: %v", se.Component, se.Err)
}

// ScanReport is the outcome of a bulk scan. Components are sorted by
// name; Failed lists components whose extraction could not run.
type ScanReport struct {
	Components []extract.ComponentMetadata
	Failed     []ScanError
}

// workerPool fans component extraction across goroutines. Extraction is
// CPU-bound pattern scanning, so the pool is sized from the CPU count
// and results are merged from a channel by the collector, never shared.
type workerPool struct {
	numWorkers int
	jobs       chan scanJob
	results    chan scanResult
	errs       chan ScanError
	wg         sync.WaitGroup
	run        func(ctx context.Context, component string) (extract.ComponentMetadata, error)
	logger     *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	jobsClosed atomic.Bool

	processed atomic.Int64
	failed    atomic.Int64
}

func newWorkerPool(
	ctx context.Context,
	numWorkers int,
	run func(ctx context.Context, component string) (extract.ComponentMetadata, error),
	logger *slog.Logger,
) *workerPool {
	numWorkers = util.GetOptimalPoolSizeWithOverride(numWorkers)
	ctx, cancel := context.WithCancel(ctx)

	return &workerPool{
		numWorkers: numWorkers,
		jobs:       make(chan scanJob, numWorkers*2),
		results:    make(chan scanResult, numWorkers),
		errs:       make(chan ScanError, numWorkers),
		run:        run,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (wp *workerPool) start() {
	wp.logger.Debug("starting scan workers", "workers", wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *workerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			wp.process(id, job)
		}
	}
}

func (wp *workerPool) process(workerID int, job scanJob) {
	meta, err := wp.run(wp.ctx, job.Component)
	if err != nil {
		wp.failed.Add(1)
		wp.logger.Debug("scan job failed", "worker_id", workerID, "component", job.Component, "error", err)
		select {
		case wp.errs <- ScanError{Component: job.Component, Err: err}:
		case <-wp.ctx.Done():
		}
		return
	}

	wp.processed.Add(1)
	select {
	case wp.results <- scanResult{Component: job.Component, Metadata: meta}:
	case <-wp.ctx.Done():
	}
}

func (wp *workerPool) submit(job scanJob) error {
	select {
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	case wp.jobs <- job:
		return nil
	}
}

// finishSubmitting closes the jobs channel so workers drain and exit.
// Idempotent.
func (wp *workerPool) finishSubmitting() {
	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
}

func (wp *workerPool) stop() {
	wp.finishSubmitting()
	wp.wg.Wait()
	close(wp.results)
	close(wp.errs)
	wp.cancel()
}

// ScanAll extracts metadata for every listed component on the worker
// pool and returns the merged report.
func (r *Registry) ScanAll(ctx context.Context) (ScanReport, error) {
	names, err := r.source.ListComponents(ctx)
	if err != nil {
		return ScanReport{}, fmt.Errorf("list components: %w", err)
	}

	pool := newWorkerPool(ctx, r.workers, r.ComponentMetadata, r.logger)
	pool.start()

	go func() {
		for i, name := range names {
			if err := pool.submit(scanJob{Component: name, JobID: i}); err != nil {
				return
			}
		}
		pool.finishSubmitting()
	}()

	report := ScanReport{}
	for collected := 0; collected < len(names); collected++ {
		select {
		case <-ctx.Done():
			pool.stop()
			return ScanReport{}, ctx.Err()
		case result := <-pool.results:
			report.Components = append(report.Components, result.Metadata)
		case scanErr := <-pool.errs:
			report.Failed = append(report.Failed, scanErr)
		}
	}
	pool.stop()

	sort.Slice(report.Components, func(i, j int) bool {
		return report.Components[i].Name < report.Components[j].Name
	})
	sort.Slice(report.Failed, func(i, j int) bool {
		return report.Failed[i].Component < report.Failed[j].Component
	})

	r.logger.Info("bulk scan finished",
		"components", len(report.Components),
		"failed", len(report.Failed))
	return report, nil
}
