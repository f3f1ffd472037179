package concurrent

import (
	"sync"
)

// JobFunc processes one queued job and returns its result.
type JobFunc[T any, G any] func(job T) G

// WorkerPool fans a queue of jobs out to a fixed number of goroutines.
// The intended call order is AddJob for every job, Close, Start, Wait,
// then draining CollectResults. The result buffer is sized like the job
// queue, so queue at most jobQueueSize jobs before draining.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

// Start launches the worker goroutines. Workers exit once the job queue
// is closed and drained.
func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every queued job has been processed, then closes the
// result channel so CollectResults can be ranged over.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

// Close marks the job queue complete. Call it after the last AddJob.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}
