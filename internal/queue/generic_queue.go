package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// DecisionSuccess is returned by a processFunc when an item was processed.
	DecisionSuccess = 1

	// DecisionSkipped is returned by a processFunc when an item needed no
	// processing.
	DecisionSkipped = 0

	// DecisionRequeue is returned by a processFunc when an item needs
	// requeueing.
	DecisionRequeue = -1

	// DecisionFailed is returned by a processFunc when processing an item has
	// failed.
	DecisionFailed = -2
)

// GenericQueue is a generic queue that can hold any comparable type of items.
type GenericQueue[T comparable] struct {
	sync.RWMutex
	hasStarted bool
	startTime  time.Time
	finishTime time.Time
	head       int
	items      []T
	success    []T
	skipped    []T
	failed     []T
	inProgress map[T]struct{}
}

// NewGenericQueue returns a pointer to a new [GenericQueue].
func NewGenericQueue[T comparable]() *GenericQueue[T] {
	return &GenericQueue[T]{
		inProgress: make(map[T]struct{}),
	}
}

// HasRemainingItems returns whether a queue has remaining items to process.
func (q *GenericQueue[T]) HasRemainingItems() bool {
	q.RLock()
	defer q.RUnlock()

	return q.head < len(q.items)
}

// Len returns the total amount of items ever enqueued.
func (q *GenericQueue[T]) Len() int {
	q.RLock()
	defer q.RUnlock()

	return len(q.items)
}

// Enqueue adds items to the queue.
func (q *GenericQueue[T]) Enqueue(items ...T) {
	q.Lock()
	defer q.Unlock()

	q.finishTime = time.Time{}

	for _, item := range items {
		delete(q.inProgress, item)
		q.items = append(q.items, item)
	}
}

// Dequeue returns an item from the queue and advances the queue head.
func (q *GenericQueue[T]) Dequeue() (T, bool) { //nolint:ireturn
	q.Lock()
	defer q.Unlock()

	if q.head >= len(q.items) {
		var zeroVal T

		return zeroVal, false
	}

	if !q.hasStarted {
		q.startTime = time.Now()
		q.hasStarted = true
	}

	item := q.items[q.head]
	q.head++

	return item, true
}

// SetProcessing sets given items as in progress (processing).
func (q *GenericQueue[T]) SetProcessing(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		q.inProgress[item] = struct{}{}
	}
}

// SetSuccess sets given in-progress queue items as successfully processed. The
// items are removed from the in-progress map in the process.
func (q *GenericQueue[T]) SetSuccess(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.success = append(q.success, item)
	}
	q.markFinished()
}

// SetSkipped sets given in-progress queue items as skipped. The items are
// removed from the in-progress map in the process.
func (q *GenericQueue[T]) SetSkipped(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.skipped = append(q.skipped, item)
	}
	q.markFinished()
}

// SetFailed sets given in-progress queue items as failed. The items are
// removed from the in-progress map in the process.
func (q *GenericQueue[T]) SetFailed(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.failed = append(q.failed, item)
	}
	q.markFinished()
}

// markFinished records the finish time once every item is accounted for.
// The caller must hold the lock.
func (q *GenericQueue[T]) markFinished() {
	if q.finishTime.IsZero() && q.processedUnsafe() >= len(q.items) {
		q.finishTime = time.Now()
	}
}

func (q *GenericQueue[T]) processedUnsafe() int {
	return len(q.success) + len(q.skipped) + len(q.failed)
}

// Progress returns the [Progress] for the [GenericQueue].
func (q *GenericQueue[T]) Progress() Progress {
	q.RLock()
	defer q.RUnlock()

	totalItems := len(q.items)
	processedItems := min(q.processedUnsafe(), totalItems)
	hasFinished := q.hasStarted && totalItems > 0 && processedItems == totalItems

	var progressPct float64
	if totalItems > 0 {
		progressPct = float64(processedItems) / float64(totalItems) * 100 //nolint:mnd
		progressPct = max(float64(0), min(progressPct, float64(100)))     //nolint:mnd
	}

	var eta time.Time
	var timeLeft time.Duration
	var itemsPerSec float64

	if q.hasStarted && processedItems > 0 && processedItems < totalItems {
		elapsed := time.Since(q.startTime)
		itemsPerSec = float64(processedItems) / max(elapsed.Seconds(), 1)

		if itemsPerSec > 0 {
			remainingItems := totalItems - processedItems
			remainingSeconds := float64(remainingItems) / itemsPerSec
			timeLeft = time.Duration(remainingSeconds * float64(time.Second))
			eta = time.Now().Add(timeLeft)
		}
	}

	var finishTime time.Time
	if hasFinished {
		finishTime = q.finishTime
	}

	return Progress{
		HasStarted:      q.hasStarted,
		HasFinished:     hasFinished,
		StartTime:       q.startTime,
		FinishTime:      finishTime,
		ProgressPct:     progressPct,
		TotalItems:      totalItems,
		ProcessedItems:  processedItems,
		InProgressItems: len(q.inProgress),
		SuccessItems:    len(q.success),
		SkippedItems:    len(q.skipped),
		FailedItems:     len(q.failed),
		ETA:             eta,
		TimeLeft:        timeLeft,
		ItemsPerSec:     itemsPerSec,
	}
}

func (q *GenericQueue[T]) decide(item T, decision int) {
	switch decision {
	case DecisionRequeue:
		q.Enqueue(item)

	case DecisionSkipped:
		q.SetSkipped(item)

	case DecisionFailed:
		q.SetFailed(item)

	case DecisionSuccess:
		q.SetSuccess(item)
	}
}

// DequeueAndProcess sequentially dequeues and processes items using the given
// processFunc. An error is only returned in case of a context cancellation, the
// processFunc is otherwise expected to return only an integer with the
// processing function's decision for that item.
//
// Possible decisions to be returned: [DecisionSuccess], [DecisionSkipped],
// [DecisionFailed], [DecisionRequeue].
func (q *GenericQueue[T]) DequeueAndProcess(ctx context.Context, processFunc func(T) int) error {
	for {
		if ctx.Err() != nil {
			break
		}

		item, ok := q.Dequeue()
		if !ok {
			break
		}

		q.SetProcessing(item)
		q.decide(item, processFunc(item))
	}

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-proc) %w", ctx.Err())
	}

	return nil
}

// DequeueAndProcessConc concurrently dequeues and processes items using given
// processFunc. An error is only returned in case of a context cancellation, the
// processFunc is otherwise expected to return only an integer with the
// processing function's decision for that item.
//
// Possible decisions to be returned: [DecisionSuccess], [DecisionSkipped],
// [DecisionFailed], [DecisionRequeue].
//
// It is the responsibility of the processFunc to ensure thread-safety for
// anything happening inside the processFunc, with the [GenericQueue] only
// guaranteeing thread-safety for itself.
func (q *GenericQueue[T]) DequeueAndProcessConc(ctx context.Context, maxWorkers int, processFunc func(T) int) error {
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, max(maxWorkers, 1))

LOOP:
	for {
		select {
		case <-ctx.Done():
			wg.Wait()

			return fmt.Errorf("(queue-concproc) %w", ctx.Err())
		case semaphore <- struct{}{}:
		}

		item, ok := q.Dequeue()
		if !ok {
			<-semaphore

			break
		}

		wg.Add(1)
		go func(item T) {
			defer wg.Done()
			defer func() { <-semaphore }()

			q.SetProcessing(item)
			q.decide(item, processFunc(item))
		}(item)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-concproc) %w", ctx.Err())
	}

	if q.HasRemainingItems() {
		// In case item(s) were requeued but all workers have already left.
		goto LOOP
	}

	return nil
}
