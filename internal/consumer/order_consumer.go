package consumer

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// OrderStatusStore applies a lifecycle transition to a persisted order.
// Satisfied by *repository.OrderRepository.
type OrderStatusStore interface {
	UpdateOrderStatus(ctx context.Context, orderID int, status string) error
}

// OrderConsumer listens for order lifecycle events published by the payment
// side and moves the persisted order through its statuses. "created" events
// originate here and are skipped.
type OrderConsumer struct {
	reader *kafka.Reader
	orders OrderStatusStore
}

func NewOrderConsumer(reader *kafka.Reader, orders OrderStatusStore) *OrderConsumer {
	return &OrderConsumer{reader: reader, orders: orders}
}

// Start blocks reading order events until the context is cancelled.
func (c *OrderConsumer) Start(ctx context.Context) {
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

func (c *OrderConsumer) processMessage(ctx context.Context, msg kafka.Message) {
	// key -> "order.paid.123456"
	key := string(msg.Key)
	parts := strings.SplitN(key, ".", 3)
	if len(parts) < 3 {
		log.Error().Msgf("Unknown order event key: %s", key)
		return
	}
	eventType := parts[1]

	orderID, err := strconv.Atoi(parts[2])
	if err != nil {
		log.Error().Msgf("Invalid order id in event key %s: %v", key, err)
		return
	}

	switch eventType {
	case "created":
		// Published by this service at checkout; nothing to apply.
	case "paid", "cancelled":
		if err := c.orders.UpdateOrderStatus(ctx, orderID, eventType); err != nil {
			log.Error().Err(err).Msgf("Error updating status of order %d to %s", orderID, eventType)
			return
		}
		log.Info().Msgf("Order %d moved to %s", orderID, eventType)
	default:
		log.Error().Msgf("Unknown order event type: %s", eventType)
	}
}
