package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Notification is one transient toast for the frontend: a level, a message,
// and the session it belongs to.
type Notification struct {
	ID      string `json:"id"`
	Session string `json:"session"`
	Level   string `json:"level"` // "success" or "error"
	Message string `json:"message"`
	Time    string `json:"time"`
}

// KafkaNotifier publishes notifications fire-and-forget. Core operations
// never wait on a toast: a publish failure is logged and dropped.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(writer *kafka.Writer) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}

func (n *KafkaNotifier) Success(session, message string) {
	n.publish(session, "success", message)
}

func (n *KafkaNotifier) Error(session, message string) {
	n.publish(session, "error", message)
}

func (n *KafkaNotifier) publish(session, level, message string) {
	notification := Notification{
		ID:      uuid.NewString(),
		Session: session,
		Level:   level,
		Message: message,
		Time:    time.Now().Format(time.RFC3339),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		payload, err := json.Marshal(notification)
		if err != nil {
			logger.Error().Err(err).Msg("Error marshalling notification")
			return
		}

		msg := kafka.Message{
			Key:   []byte(fmt.Sprintf("notification.%s.%s", level, notification.ID)),
			Value: payload,
		}

		if err := n.writer.WriteMessages(ctx, msg); err != nil {
			logger.Error().Err(err).Msgf("Error publishing %s notification for %s", level, session)
		}
	}()
}
