package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ColumnTask represents one image column to render
type ColumnTask struct {
	Column int   // Image x coordinate
	Seed   int64 // Seed for the column's private random source
}

// ColumnResult contains the result from rendering a column
type ColumnResult struct {
	Column int
	Stats  RenderStats
}

// WorkerPool manages parallel column rendering
type WorkerPool struct {
	taskQueue   chan ColumnTask
	resultQueue chan ColumnResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders columns taken from the shared queue
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan ColumnTask
	resultQueue chan ColumnResult
}

// NewWorkerPool creates a worker pool sized for columns tasks. numWorkers <= 0
// uses one worker per CPU.
func NewWorkerPool(raytracer *Raytracer, columns, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ColumnTask, columns),   // Buffer for every column
		resultQueue: make(chan ColumnResult, columns), // Buffer for every result
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a column task to the worker pool
func (wp *WorkerPool) SubmitTask(task ColumnTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed column result
func (wp *WorkerPool) GetResult() (ColumnResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each column draws from its own source, so a seeded render does not
		// depend on which worker picks up which column
		sampler := core.NewSeededSampler(task.Seed)
		stats := w.raytracer.RenderColumn(task.Column, sampler)

		w.resultQueue <- ColumnResult{Column: task.Column, Stats: stats}
	}
}
