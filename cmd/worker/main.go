package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/IBM/sarama"

	"github.com/WaqarAhmad321/smart-city-sol/internal/config"
	"github.com/WaqarAhmad321/smart-city-sol/internal/database"
	"github.com/WaqarAhmad321/smart-city-sol/internal/events"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting tally relay worker")

	redisClient, err := database.NewRedisConnection(cfg.Redis.URI)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, events.NewConsumerConfig())
	if err != nil {
		slog.Error("Failed to create consumer group", "error", err)
		os.Exit(1)
	}
	defer group.Close()

	relay := events.NewTallyRelay(events.NewRedisBroadcaster(redisClient))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("Worker shutting down...")
		cancel()
	}()

	go func() {
		for err := range group.Errors() {
			slog.Error("Consumer group error", "error", err)
		}
	}()

	for {
		if err := group.Consume(ctx, []string{cfg.Kafka.VoteTopic}, relay); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				break
			}
			slog.Error("Consume failed", "error", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	slog.Info("Worker stopped")
}
