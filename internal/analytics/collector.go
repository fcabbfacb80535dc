// Package analytics publishes query events to Kafka in batches. Tracking
// never blocks the query path: events that do not fit in the buffer are
// dropped and counted.
package analytics

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/resilience"
)

// Publisher writes a batch of events.
type Publisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
}

type Collector struct {
	publisher     Publisher
	eventCh       chan QueryEvent
	batchSize     int
	flushInterval time.Duration
	backoff       resilience.Backoff
	logger        *slog.Logger
	done          chan struct{}
	dropped       atomic.Int64
	published     atomic.Int64
}

func NewCollector(publisher Publisher, bufferSize, batchSize int, flushInterval time.Duration) *Collector {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if flushInterval <= 0 {
		flushInterval = 5 * time.Second
	}
	return &Collector{
		publisher:     publisher,
		eventCh:       make(chan QueryEvent, bufferSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		logger:        logger.WithComponent("analytics-collector"),
		done:          make(chan struct{}),
	}
}

// WithBackoff sets how failed batches are retried.
func (c *Collector) WithBackoff(b resilience.Backoff) *Collector {
	c.backoff = b
	return c
}

// Start launches the background batching loop. It runs until Close is
// called or ctx is cancelled.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.flushInterval)
		defer ticker.Stop()

		batch := make([]kafka.Event, 0, c.batchSize)
		flush := func(ctx context.Context) {
			if len(batch) == 0 {
				return
			}
			err := resilience.Retry(ctx, "publish query events", c.backoff, func(ctx context.Context) error {
				return c.publisher.PublishBatch(ctx, batch)
			})
			if err != nil {
				c.logger.Error("failed to publish query events", "count", len(batch), "error", err)
			} else {
				c.published.Add(int64(len(batch)))
			}
			batch = make([]kafka.Event, 0, c.batchSize)
		}

		for {
			select {
			case ev, ok := <-c.eventCh:
				if !ok {
					flush(context.Background())
					return
				}
				batch = append(batch, kafka.Event{Key: ev.Kind, Value: ev})
				if len(batch) >= c.batchSize {
					flush(ctx)
				}
			case <-ticker.C:
				flush(ctx)
			case <-ctx.Done():
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				c.drainInto(&batch)
				flush(flushCtx)
				cancel()
				return
			}
		}
	}()
	c.logger.Info("analytics collector started",
		"buffer_size", cap(c.eventCh),
		"batch_size", c.batchSize,
		"flush_interval", c.flushInterval,
	)
}

// Track enqueues ev without blocking.
func (c *Collector) Track(ev QueryEvent) {
	select {
	case c.eventCh <- ev:
	default:
		c.dropped.Add(1)
		c.logger.Warn("analytics event dropped (buffer full)")
	}
}

// Close flushes pending events and waits for the loop to exit. Track must
// not be called after Close.
func (c *Collector) Close() {
	close(c.eventCh)
	<-c.done
}

func (c *Collector) Stats() (published, dropped int64) {
	return c.published.Load(), c.dropped.Load()
}

func (c *Collector) drainInto(batch *[]kafka.Event) {
	for {
		select {
		case ev, ok := <-c.eventCh:
			if !ok {
				return
			}
			*batch = append(*batch, kafka.Event{Key: ev.Kind, Value: ev})
		default:
			return
		}
	}
}
