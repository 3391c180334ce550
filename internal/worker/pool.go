// Package worker provides a parallel seed-variant rendering worker pool.
package worker

import (
	"context"
	"sync"
	"time"
)

// Renderer renders one seed variant to an output file. This matches the
// signature of render.Pipeline.Render.
type Renderer interface {
	Render(ctx context.Context, seed int64, outPath string) error
}

// Task is a single variant rendering job.
type Task struct {
	Seed    int64
	OutPath string
}

// Result is the outcome of one task.
type Result struct {
	Task    Task
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Renderer   Renderer
	OnProgress ProgressFunc
}

// Pool runs variant rendering tasks in parallel.
type Pool struct {
	workers    int
	renderer   Renderer
	onProgress ProgressFunc
}

// New creates a worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers:    workers,
		renderer:   cfg.Renderer,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns their results. It blocks until every
// task has completed or been abandoned due to context cancellation.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task)
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var (
		results   = make([]Result, 0, len(tasks))
		completed int
		failed    int
	)
	for result := range resultCh {
		results = append(results, result)
		completed++
		if result.Err != nil {
			failed++
		}
		if p.onProgress != nil {
			p.onProgress(completed, len(tasks), failed)
		}
	}
	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		if err := ctx.Err(); err != nil {
			results <- Result{Task: task, Err: err}
			continue
		}

		start := time.Now()
		err := p.renderer.Render(ctx, task.Seed, task.OutPath)
		results <- Result{
			Task:    task,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
