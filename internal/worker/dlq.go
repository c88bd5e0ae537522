package worker

// Jobs whose handler fails are parked on a per-queue Redis list
// (dlq:<queue>) so an operator can inspect and requeue them by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// DeadLetter records a failed job together with its failure context.
type DeadLetter struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
}

func newDeadLetter(queue string, job Job, reason string) DeadLetter {
	return DeadLetter{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
	}
}

func deadLetterKey(queue string) string {
	return dlqPrefix + queue
}

// parkDeadLetter pushes the entry onto its queue's dead letter list.
// Push failures are only logged: workers keep consuming either way.
func parkDeadLetter(ctx context.Context, rdb *redis.Client, entry DeadLetter) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", entry.Queue).Msg("dead letter entry not serializable")
		return
	}

	key := deadLetterKey(entry.Queue)
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("could not park dead letter")
		return
	}

	log.Warn().
		Str("queue", entry.Queue).
		Str("type", entry.Type).
		Str("reason", entry.Reason).
		Msg("job parked on dead letter list")
}

// DeadLetterLength reports how many entries a queue's dead letter list holds.
func DeadLetterLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, deadLetterKey(queue)).Result()
}
