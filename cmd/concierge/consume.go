package main

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"concierge/internal/concierge"
	"concierge/internal/service"
	"concierge/pkg/graceful"
	"concierge/pkg/kafkaclient"
)

func consumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Answer requests from a Kafka topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := graceful.Context(context.Background())
			defer cancel()

			svc, release, err := newService(ctx, cfg)
			if err != nil {
				return err
			}
			defer release()

			k := cfg.Kafka
			log.WithFields(log.Fields{
				"broker": k.Broker,
				"topic":  k.Topic,
				"group":  k.GroupID,
				"reply":  k.ReplyTopic,
			}).Info("connecting to kafka")

			consumer, err := kafkaclient.NewKafkaConsumer(k.Topic, k.GroupID, k.Broker)
			if err != nil {
				return err
			}
			producer, err := kafkaclient.NewKafkaProducer(k.ReplyTopic, k.Broker)
			if err != nil {
				return err
			}
			defer producer.Close()

			consumer.StartConsuming(ctx)
			iterator := service.NewIterator(consumer, service.JSON[concierge.Job]())
			for d := range iterator.Objects(ctx) {
				jobCtx, done := context.WithTimeout(ctx, cfg.RequestTimeout)
				reply := svc.Handle(jobCtx, d.Data)
				if err := producer.Publish(jobCtx, reply.ID, reply); err != nil {
					log.WithError(err).WithField("id", reply.ID).Error("failed to publish reply")
				}
				done()
			}

			consumer.Stop()
			return nil
		},
	}
}
