package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageIterator is the consumer side the Iterator reads from.
//
// Implementations are responsible for the lifecycle of the consumer connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been handed over.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// DecodeFunc decodes a message payload into a T.
type DecodeFunc[T any] func(payload []byte) (T, error)

// Delivery pairs a decoded payload with the message that carried it.
type Delivery[T any] struct {
	Data    T
	Message kafka.Message
}
