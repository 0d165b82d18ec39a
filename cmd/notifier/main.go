package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/config"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/consumer"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/notifier"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/sender"
	"github.com/Ramaseck1/njabatechBack-sub000/pkg/database"
	"github.com/Ramaseck1/njabatechBack-sub000/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var dispatcher notifier.Dispatcher
	if cfg.SMTP.Host != "" {
		dispatcher = sender.NewEmailSender(&cfg.SMTP)
	} else {
		log.Warn("no SMTP host configured, logging notifications instead of sending")
		dispatcher = sender.NewLogSender(log)
	}

	svc := notifier.New(repos, dispatcher, log)

	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("no kafka brokers configured (KAFKA_BROKERS)")
	}

	cons := consumer.NewKafkaNotificationConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopicNotification, svc, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := cons.Run(ctx); err != nil {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutdown signal received")
	cancel()
	_ = cons.Close()
	time.Sleep(200 * time.Millisecond)
}
