package analytics

import (
	"context"
	"sync"
	"time"

	"resumescore/internal/errors"
)

// StatSink receives keyword occurrence increments.
type StatSink interface {
	UpsertKeywordStat(ctx context.Context, keyword, industry string) error
}

type event struct {
	keyword  string
	industry string
}

// Recorder tracks keyword occurrences in the background. Events go
// through a bounded queue served by a single worker; when the queue is
// full new events are dropped so analysis never blocks on analytics.
type Recorder struct {
	sink    StatSink
	queue   chan event
	logger  *errors.Logger
	timeout time.Duration

	closeOnce sync.Once
	done      chan struct{}

	mu      sync.Mutex
	dropped int64
}

// NewRecorder starts the worker. queueSize <= 0 falls back to 1024.
func NewRecorder(sink StatSink, queueSize int, logger *errors.Logger) *Recorder {
	if queueSize <= 0 {
		queueSize = 1024
	}

	r := &Recorder{
		sink:    sink,
		queue:   make(chan event, queueSize),
		logger:  logger,
		timeout: 5 * time.Second,
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues a keyword occurrence. It never blocks: when the
// queue is full the event is counted as dropped and discarded.
func (r *Recorder) Record(keyword, industry string) {
	select {
	case r.queue <- event{keyword: keyword, industry: industry}:
	default:
		r.mu.Lock()
		r.dropped++
		r.mu.Unlock()
	}
}

// Dropped returns how many events were discarded due to a full queue
func (r *Recorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close stops accepting events, drains the queue, and waits for the
// worker to finish.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.queue)
		<-r.done
	})
}

func (r *Recorder) run() {
	defer close(r.done)

	for ev := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := r.sink.UpsertKeywordStat(ctx, ev.keyword, ev.industry)
		cancel()
		if err != nil {
			r.logger.Warn("Failed to record keyword stat",
				"keyword", ev.keyword,
				"industry", ev.industry,
				"error", err.Error())
		}
	}
}
