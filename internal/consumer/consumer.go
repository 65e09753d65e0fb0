package consumer

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
)

// TaskCache invalidates the cached task lists after an upstream event.
// Satisfied by *client.TaskBackendClient.
type TaskCache interface {
	InvalidateTasks(ctx context.Context)
}

// Consumer listens for task events from the task backend. A confirmed
// upstream deletion is reconciled into every seeded board; any other task
// event just invalidates the cached lists so the next read reseeds.
type Consumer struct {
	reader  *kafka.Reader
	boards  *repository.BoardStore
	backend TaskCache
}

func NewConsumer(reader *kafka.Reader, boards *repository.BoardStore, backend TaskCache) *Consumer {
	return &Consumer{reader: reader, boards: boards, backend: backend}
}

// Start blocks reading task events until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}

		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	// key -> "task.deleted.taskID" or "task.updated.taskID". The id is the
	// full remainder; it may itself contain dots.
	key := string(msg.Key)
	parts := strings.SplitN(key, ".", 3)
	if len(parts) < 3 {
		log.Error().Msgf("Unknown task event key: %s", key)
		return
	}
	eventType := parts[1]
	taskID := parts[2]

	switch eventType {
	case "deleted":
		removed := c.boards.RemoveEverywhere(taskID)
		c.backend.InvalidateTasks(ctx)
		log.Info().Msgf("Task %s deleted upstream, removed from %d boards", taskID, removed)
	case "created", "updated", "completed":
		c.backend.InvalidateTasks(ctx)
	default:
		log.Error().Msgf("Unknown task event type: %s", eventType)
	}
}
