package kafkaclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// KafkaReader defines the interface for a Kafka message reader.
// This allows for easy mocking in unit tests.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer manages the Kafka consumer and its message loop.
type KafkaConsumer struct {
	reader KafkaReader
	// closed to signal a graceful shutdown.
	doneChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	// messages read from the reader, waiting to be consumed.
	messageChan chan kafka.Message
}

func (kc *KafkaConsumer) Messages() <-chan kafka.Message {
	return kc.messageChan
}

func (kc *KafkaConsumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	log.WithFields(log.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	}).Debug("committing offset")
	return kc.reader.CommitMessages(ctx, msg)
}

// NewKafkaConsumer creates a consumer group reader with manual commits.
func NewKafkaConsumer(topic, groupID, broker string) (*KafkaConsumer, error) {
	if topic == "" || broker == "" {
		return nil, errors.New("kafka topic and broker are required")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// Disable auto-commit to manually control offset committing.
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
	return newConsumer(reader), nil
}

func newConsumer(reader KafkaReader) *KafkaConsumer {
	return &KafkaConsumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}
}

// StartConsuming begins the Kafka message consumption loop in a separate goroutine.
func (kc *KafkaConsumer) StartConsuming(ctx context.Context) {
	kc.wg.Add(1)
	go func() {
		defer kc.wg.Done()
		defer close(kc.messageChan)

		log.Debug("starting kafka consumer loop")

		for {
			select {
			case <-ctx.Done():
				log.Debug("context canceled, stopping consumer loop")
				return
			case <-kc.doneChan:
				log.Debug("shutdown signal received, stopping consumer loop")
				return
			default:
				msg, err := kc.reader.ReadMessage(ctx)
				if err != nil {
					if errors.Is(err, io.EOF) || ctx.Err() != nil {
						return
					}
					log.WithError(err).Error("error reading message")
					// Back off to prevent a tight error loop.
					select {
					case <-time.After(time.Second):
					case <-kc.doneChan:
						return
					case <-ctx.Done():
						return
					}
					continue
				}

				select {
				case kc.messageChan <- msg:
					log.WithFields(log.Fields{
						"topic":     msg.Topic,
						"partition": msg.Partition,
						"offset":    msg.Offset,
					}).Debug("message received")
				case <-ctx.Done():
					return
				case <-kc.doneChan:
					return
				}
			}
		}
	}()
}

// Stop gracefully shuts down the Kafka consumer.
func (kc *KafkaConsumer) Stop() {
	kc.stopOnce.Do(func() {
		close(kc.doneChan)
		kc.wg.Wait()
		if err := kc.reader.Close(); err != nil {
			log.WithError(err).Error("failed to close kafka reader")
		}
		log.Info("kafka consumer stopped")
	})
}
