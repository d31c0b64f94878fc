package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dhank77/akayacraft/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// QueueBlobCleanup holds keys of image blobs that should no longer exist:
// uploads orphaned by a failed product write, and best-effort deletes that
// failed inline. The queue is a janitor, not a correctness mechanism — the
// catalog never references a key that sits here.
const QueueBlobCleanup = "jobs:blob_cleanup"

const maxCleanupAttempts = 5

// CleanupJob is the envelope for one blob deletion attempt.
type CleanupJob struct {
	Key      string `json:"key"`
	Attempts int    `json:"attempts"`
}

// Dispatcher enqueues cleanup jobs into a Redis list.
// The worker pool dequeues them via BRPOP. A nil Dispatcher (or one without a
// Redis client) is valid and reports the queue as disabled.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueBlobCleanup pushes a blob key for asynchronous deletion.
func (d *Dispatcher) EnqueueBlobCleanup(ctx context.Context, key string) error {
	return d.enqueue(ctx, CleanupJob{Key: key})
}

func (d *Dispatcher) enqueue(ctx context.Context, job CleanupJob) error {
	if d == nil || d.rdb == nil {
		return errors.New("cleanup queue disabled")
	}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueBlobCleanup, encoded).Err()
}

// StartPool launches numWorkers goroutines consuming the cleanup queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, blobs storage.BlobStore, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, blobs, i)
	}
	log.Info().Msgf("blob cleanup pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, blobs storage.BlobStore, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("cleanup worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueBlobCleanup).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, blobs, result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, blobs storage.BlobStore, raw string) {
	var job CleanupJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal cleanup job")
		return
	}

	err := blobs.Delete(ctx, job.Key)
	if err == nil {
		log.Info().Str("key", job.Key).Msg("orphaned blob removed")
		return
	}

	job.Attempts++
	if job.Attempts >= maxCleanupAttempts {
		log.Error().Str("key", job.Key).Err(err).
			Msg("blob cleanup gave up; orphan blob left behind")
		return
	}
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		log.Error().Err(mErr).Msg("failed to re-marshal cleanup job")
		return
	}
	if pushErr := rdb.LPush(ctx, QueueBlobCleanup, encoded).Err(); pushErr != nil {
		log.Error().Str("key", job.Key).Err(pushErr).Msg("failed to requeue cleanup job")
		return
	}
	log.Warn().Str("key", job.Key).Int("attempts", job.Attempts).Err(err).
		Msg("blob cleanup failed, requeued")
}
