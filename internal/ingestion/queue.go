package ingestion

import (
	"context"
	"errors"
	"sync"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
)

// DefaultQueueCapacity is small on purpose: a full queue blocks producers, which is
// how a slow database pushes back on clients.
const DefaultQueueCapacity = 64

// ErrQueueClosed is returned by Put once the consumer has permanently stopped.
var ErrQueueClosed = errors.New("ingest queue closed")

// Queue is a bounded FIFO of accepted reports between the push endpoint and the
// report writer. Any number of producers, one consumer.
type Queue struct {
	items     chan *v1.Report
	done      chan struct{}
	closeOnce sync.Once
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		items: make(chan *v1.Report, capacity),
		done:  make(chan struct{}),
	}
}

// Put blocks while the queue is full. It returns ErrQueueClosed if the queue is or
// becomes closed, and ctx.Err() if ctx ends first.
func (q *Queue) Put(ctx context.Context, report *v1.Report) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}

	select {
	case q.items <- report:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get blocks until a report is available. After Close it keeps returning the
// remaining reports, then ErrQueueClosed.
func (q *Queue) Get(ctx context.Context) (*v1.Report, error) {
	select {
	case r := <-q.items:
		return r, nil
	case <-q.done:
		if r, ok := q.TryGet(); ok {
			return r, nil
		}
		return nil, ErrQueueClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryGet returns the next report without blocking.
func (q *Queue) TryGet() (*v1.Report, bool) {
	select {
	case r := <-q.items:
		return r, true
	default:
		return nil, false
	}
}

// Close rejects every later Put. Safe to call more than once.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}

func (q *Queue) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

func (q *Queue) Len() int { return len(q.items) }

func (q *Queue) Cap() int { return cap(q.items) }
