// Package util provides a lock-free multi-producer single-consumer (MPSC) queue.
//
// Features and Guarantees:
//
//   - Lock-Free: producers only use atomic operations on the shared tail
//   - Unbounded: the queue grows as needed, limited only by available memory
//   - Single Consumer: one internal goroutine hands items to the Recv() channel
//   - Ordering: items pushed by one goroutine (or by goroutines that serialise their
//     Push calls, e.g. under a mutex) are delivered in push order. Concurrent,
//     unsynchronised producers are ordered by whichever append wins first.
//   - Draining Close: after Close no new items are accepted, but every item that
//     was accepted before Close is still delivered before the Recv() channel is
//     closed. A Push racing with Close may be dropped, callers that need every
//     accepted item delivered must serialise Push and Close themselves.
package util

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// node is a single element of the linked list
type node[T any] struct {
	value *T
	next  atomic.Pointer[node[T]]
}

// Queue is a lock-free multi-producer single-consumer queue
type Queue[T any] struct {
	head   atomic.Pointer[node[T]] // sentinel, only touched by the consumer
	tail   atomic.Pointer[node[T]]
	out    chan *T
	closed atomic.Bool
	done   chan struct{}

	mu   sync.Mutex
	cond *sync.Cond
}

// NewQueue creates a queue and starts its consumer goroutine.
func NewQueue[T any]() *Queue[T] {
	sentinel := &node[T]{}
	q := &Queue[T]{
		out:  make(chan *T),
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	q.head.Store(sentinel)
	q.tail.Store(sentinel)

	go q.consume()
	return q
}

// Push appends an item. It returns false if the item is nil or the queue is closed.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (q *Queue[T]) Push(item *T) bool {
	if item == nil || q.closed.Load() {
		return false
	}

	n := &node[T]{value: item}
	spins := 0
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				// a failed swap means another producer already advanced the tail for us
				q.tail.CompareAndSwap(tail, n)
				q.signal()
				return true
			}
		} else {
			q.tail.CompareAndSwap(tail, next)
		}

		// back off under contention
		if spins < 10 {
			spins++
			for i := 0; i < 1<<spins; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// signal wakes the consumer. Taking the lock avoids a lost wakeup between the
// consumer's emptiness check and its call to Wait.
func (q *Queue[T]) signal() {
	q.mu.Lock()
	q.cond.Signal()
	q.mu.Unlock()
}

// consume moves items from the list to the output channel until the queue is
// closed and empty.
func (q *Queue[T]) consume() {
	defer close(q.done)
	defer close(q.out)

	for {
		head := q.head.Load()
		next := head.next.Load()
		if next != nil {
			item := next.value
			q.head.Store(next)
			q.out <- item
			next.value = nil
			continue
		}

		if q.closed.Load() {
			return
		}

		q.mu.Lock()
		if head.next.Load() == nil && !q.closed.Load() {
			q.cond.Wait()
		}
		q.mu.Unlock()
	}
}

// Recv returns the channel the consumer delivers items on. It is closed once the
// queue has been closed and fully drained.
func (q *Queue[T]) Recv() <-chan *T {
	return q.out
}

// Close stops accepting new items. Items already accepted are still delivered.
func (q *Queue[T]) Close() {
	q.closed.Store(true)
	q.signal()
}

// Done is closed when the consumer goroutine has exited.
func (q *Queue[T]) Done() <-chan struct{} {
	return q.done
}

// IsClosed returns true if the queue is closed.
func (q *Queue[T]) IsClosed() bool {
	return q.closed.Load()
}

// Len returns an approximate count of queued items. This is O(n), debugging only.
func (q *Queue[T]) Len() int {
	count := 0
	for n := q.head.Load().next.Load(); n != nil; n = n.next.Load() {
		count++
	}
	return count
}
