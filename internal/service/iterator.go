// Package service turns a stream of Kafka messages into decoded requests.
package service

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// Iterator decodes the messages of a MessageIterator and yields them as
// deliveries. It does not own the message source.
type Iterator[T any] struct {
	msgIterator MessageIterator
	decode      DecodeFunc[T]
}

func NewIterator[T any](iterator MessageIterator, decode DecodeFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		decode:      decode,
	}
}

// JSON decodes payloads as JSON documents.
func JSON[T any]() DecodeFunc[T] {
	return func(payload []byte) (T, error) {
		var v T
		err := json.Unmarshal(payload, &v)
		return v, err
	}
}

// Objects streams decoded deliveries until the source closes or ctx is done.
// A message is committed once its delivery has been received. Messages that
// fail to decode are committed and skipped so they are not redelivered.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *Delivery[T] {
	out := make(chan *Delivery[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			fields := log.Fields{"topic": msg.Topic, "partition": msg.Partition, "offset": msg.Offset}

			data, err := it.decode(msg.Value)
			if err != nil {
				log.WithError(err).WithFields(fields).Warn("skipping undecodable message")
				it.commit(ctx, msg)
				continue
			}

			select {
			case out <- &Delivery[T]{Data: data, Message: msg}:
			case <-ctx.Done():
				return
			}
			it.commit(ctx, msg)
		}
	}()
	return out
}

func (it *Iterator[T]) commit(ctx context.Context, msg kafka.Message) {
	if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
		log.WithError(err).WithField("offset", msg.Offset).Error("failed to commit offset")
	}
}
