package renderer

import (
	"fmt"
	"image"
	"runtime"
	"sync"
)

// BandRenderFunc renders every pixel inside bounds and reports what it did.
// Bands never overlap, so concurrent calls write disjoint parts of the frame.
type BandRenderFunc func(bounds image.Rectangle) RenderStats

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band   *Band
	TaskID int
}

// BandResult contains the result from rendering a band
type BandResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	render      BandRenderFunc
	taskQueue   <-chan BandTask
	resultQueue chan<- BandResult
}

// NewWorkerPool creates a worker pool sized for maxTasks queued bands
func NewWorkerPool(maxTasks, numWorkers int, render BandRenderFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, maxTasks),   // Buffer for all bands of a frame
		resultQueue: make(chan BandResult, maxTasks), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			render:      render,
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

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
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
		w.resultQueue <- w.renderTask(task)
	}
}

// renderTask renders one band, turning a panic into an error result
func (w *Worker) renderTask(task BandTask) (result BandResult) {
	result.TaskID = task.TaskID
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("worker %d: band %d panicked: %v", w.ID, task.Band.ID, r)
		}
	}()

	result.Stats = w.render(task.Band.Bounds)
	return result
}
