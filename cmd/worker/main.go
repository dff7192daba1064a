package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/skytrip/flightcrm/config"
	"github.com/skytrip/flightcrm/internal/email"
	"github.com/skytrip/flightcrm/internal/kafka"
	"github.com/skytrip/flightcrm/internal/logger"
)

// The worker consumes domain events and sends admin notifications, keeping
// delivery out of the request path.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic)
	defer consumer.Close()

	notifier := email.NewSender(os.Getenv("ADMIN_EMAIL"))

	logg.Info("worker started", "topic", cfg.Kafka.EventsTopic, "group", cfg.Kafka.GroupID)

	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.DomainEvent) error {
		if err := notifier.Send(ctx, event); err != nil {
			logg.Error("send notification", "type", event.Type, "error", err)
		}
		return nil
	}); err != nil && ctx.Err() == nil {
		logg.Error("consumer stopped", "error", err)
	}
}
