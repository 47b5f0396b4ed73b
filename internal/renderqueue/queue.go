// Package renderqueue provides a priority queue for markdown-to-HTML
// rendering jobs. It supports priority ordering (interactive before
// background), same-draft deduplication, and graceful shutdown with
// in-flight job completion.
package renderqueue

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrQueueClosed is returned when Submit is called on a closed queue.
var ErrQueueClosed = errors.New("render queue is closed")

// Tier represents the priority tier of a render job.
type Tier int

const (
	// TierInteractive is for user-facing requests - highest priority.
	TierInteractive Tier = iota
	// TierBackground is for bulk re-renders - lower priority.
	TierBackground
)

// Job represents a markdown rendering job for one draft.
type Job struct {
	DraftID     int64     // Dedup key: one queued job per draft
	RevisionID  int64     // Revision being rendered (updated on dedup)
	Markdown    string    // Content to render
	Tier        Tier      // Priority tier
	SubmittedAt time.Time // For FIFO ordering within tier
	heapIndex   int       // Internal index for heap operations
}

// Result contains the outcome of a render job.
type Result struct {
	RevisionID int64  // Revision the HTML belongs to
	HTML       string // Rendered HTML (empty on error)
	Err        error  // Render error, if any
}

// RenderFunc is the function signature for markdown-to-HTML rendering.
type RenderFunc func(markdown string) (string, error)

// Queue manages a pool of workers that process render jobs in priority order.
type Queue struct {
	render      RenderFunc
	mu          sync.Mutex
	heap        *jobHeap
	draftJobs   map[int64]*Job          // dedup by draft ID
	waiters     map[int64][]chan Result // notification channels by draft ID
	jobReady    chan struct{}           // buffered(1), signals workers
	closed      bool
	closeCh     chan struct{}
	wg          sync.WaitGroup
	workerCount int
}

// New creates a render queue with the specified number of workers.
func New(workerCount int, render RenderFunc) *Queue {
	if workerCount < 1 {
		workerCount = 1
	}

	q := &Queue{
		render:      render,
		heap:        &jobHeap{},
		draftJobs:   make(map[int64]*Job),
		waiters:     make(map[int64][]chan Result),
		jobReady:    make(chan struct{}, 1),
		closeCh:     make(chan struct{}),
		workerCount: workerCount,
	}

	heap.Init(q.heap)

	q.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go q.worker()
	}

	return q
}

// Submit adds a job to the queue. If a job for the same draft is already
// queued, the existing job is updated with the new revision and markdown
// but keeps its queue position. The waiter channel (if non-nil) receives
// the result when the job completes.
//
// Returns ErrQueueClosed if the queue has been shut down.
func (q *Queue) Submit(ctx context.Context, job Job, waitCh chan Result) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	if existing, ok := q.draftJobs[job.DraftID]; ok {
		// Update in place; original SubmittedAt keeps the FIFO position.
		existing.RevisionID = job.RevisionID
		existing.Markdown = job.Markdown

		if job.Tier < existing.Tier {
			existing.Tier = job.Tier
			q.heap.Fix(existing.heapIndex)
		}
	} else {
		jobCopy := job
		q.draftJobs[job.DraftID] = &jobCopy
		heap.Push(q.heap, &jobCopy)
	}

	if waitCh != nil {
		q.waiters[job.DraftID] = append(q.waiters[job.DraftID], waitCh)
	}

	select {
	case q.jobReady <- struct{}{}:
	default:
	}

	return nil
}

// Shutdown stops accepting new jobs, drains pending jobs, and waits for
// in-flight jobs to complete up to the context deadline.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeCh)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.closeCh:
			// Drain remaining jobs before exiting
			for q.processOneJob() {
			}
			return
		case <-q.jobReady:
			q.processOneJob()
		}
	}
}

// processOneJob attempts to pop and process one job from the queue.
// Returns true if a job was processed, false if the queue was empty.
func (q *Queue) processOneJob() bool {
	q.mu.Lock()
	if q.heap.Len() == 0 {
		q.mu.Unlock()
		return false
	}

	job := heap.Pop(q.heap).(*Job)
	draftID := job.DraftID
	revisionID := job.RevisionID
	markdown := job.Markdown
	delete(q.draftJobs, draftID)

	jobWaiters := q.waiters[draftID]
	delete(q.waiters, draftID)

	// More jobs pending: signal the next worker.
	if q.heap.Len() > 0 {
		select {
		case q.jobReady <- struct{}{}:
		default:
		}
	}

	q.mu.Unlock()

	result := q.executeRender(markdown)
	result.RevisionID = revisionID

	for _, ch := range jobWaiters {
		if ch != nil {
			select {
			case ch <- result:
			default:
				// Waiter abandoned, skip
			}
		}
	}

	return true
}

// executeRender calls the render function with panic recovery.
func (q *Queue) executeRender(markdown string) Result {
	var result Result

	func() {
		defer func() {
			if r := recover(); r != nil {
				result = Result{Err: fmt.Errorf("render panic: %v", r)}
			}
		}()

		html, err := q.render(markdown)
		result = Result{HTML: html, Err: err}
	}()

	return result
}
