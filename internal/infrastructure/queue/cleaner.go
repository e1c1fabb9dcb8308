package queue

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/JHanslik/restaurants-back/internal/api/metrics"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

const (
	defaultWorkers = 2
	// maxAttempts bounds retries per asset; after that the task is
	// dropped and logged for manual reconciliation.
	maxAttempts = 5
)

// Cleaner drains the media cleanup queue, destroying delegate-side
// assets whose documents no longer reference them. Failed destroys are
// re-enqueued with an attempt counter, so a delegate outage delays
// cleanup instead of orphaning assets.
type Cleaner struct {
	queue   ports.CleanupQueue
	media   ports.MediaStore
	log     zerolog.Logger
	workers int
	wg      sync.WaitGroup
}

// NewCleaner creates a Cleaner with numWorkers concurrent workers. If
// numWorkers <= 0, defaultWorkers is used.
func NewCleaner(queue ports.CleanupQueue, media ports.MediaStore, numWorkers int, log zerolog.Logger) *Cleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Cleaner{queue: queue, media: media, workers: numWorkers, log: log}
}

// Start launches the worker goroutines. Workers stop when ctx is
// cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func(id int) {
			defer c.wg.Done()
			c.run(ctx, id)
		}(i)
	}
}

// Wait blocks until all workers have stopped.
func (c *Cleaner) Wait() {
	c.wg.Wait()
}

func (c *Cleaner) run(ctx context.Context, id int) {
	log := c.log.With().Int("worker_id", id).Logger()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, err := c.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("cleanup dequeue failed")
			continue
		}
		if task == nil {
			continue
		}

		c.process(ctx, log, *task)
	}
}

func (c *Cleaner) process(ctx context.Context, log zerolog.Logger, task ports.CleanupTask) {
	if err := c.media.Destroy(ctx, task.PublicID); err != nil {
		task.Attempts++
		if task.Attempts >= maxAttempts {
			metrics.MediaCleanupTotal.WithLabelValues("dropped").Inc()
			log.Error().Err(err).Str("public_id", task.PublicID).Int("attempts", task.Attempts).Msg("giving up on asset cleanup")
			return
		}

		metrics.MediaCleanupTotal.WithLabelValues("retry").Inc()
		log.Warn().Err(err).Str("public_id", task.PublicID).Int("attempts", task.Attempts).Msg("asset cleanup failed, re-enqueueing")
		if err := c.queue.Enqueue(ctx, task); err != nil {
			log.Error().Err(err).Str("public_id", task.PublicID).Msg("failed to re-enqueue cleanup task")
		}
		return
	}

	metrics.MediaCleanupTotal.WithLabelValues("ok").Inc()
	log.Debug().Str("public_id", task.PublicID).Msg("asset destroyed")
}
