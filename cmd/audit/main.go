package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"examsched/internal/reservations/events"
	"examsched/pkg/kafka"
	kafka_config "examsched/pkg/kafka/config"
	"examsched/pkg/logger"
)

const ServiceName = "audit"

// The audit consumer tails the reservation event stream and writes a
// structured log line per event. It is the verification surface for the
// event pipeline and a template for heavier downstream consumers.
func main() {
	log := logger.New(logger.Config{
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  logger.JSON,
		Service: ServiceName,
	})

	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled {
		log.Fatal("Kafka events are disabled, nothing to audit. Set KAFKA_EVENTS_ENABLED=true")
	}

	consumer, err := kafka.NewConsumer(kafkaCfg, kafkaCfg.Topic, kafkaCfg.ConsumerGroupID, auditHandler(log))
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Audit consumer started",
		"topic", kafkaCfg.Topic,
		"group_id", kafkaCfg.ConsumerGroupID,
	)

	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	log.Info("Audit consumer stopped")
}

func auditHandler(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event events.ReservationEvent
		if err := msg.DecodeValue(&event); err != nil {
			log.Warn("Skipping undecodable event",
				"event_id", msg.GetEventID(),
				"error", err,
			)
			return nil
		}

		log.Info("Reservation event",
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"reservation_id", event.ID,
			"ids", event.IDs,
			"saved_count", event.SavedCount,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
