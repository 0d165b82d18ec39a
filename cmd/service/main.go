package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ramaseck1/njabatechBack-sub000/config"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/cache"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/producer"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"
	transport "github.com/Ramaseck1/njabatechBack-sub000/internal/transport/http"
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

	repos := repository.NewWithLockTimeout(db, cfg.DB.LockTimeout)

	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 {
		bus := producer.NewKafkaEventBus(cfg.KafkaBrokers, cfg.KafkaTopicNotification)
		defer bus.Close()
		events = bus
		log.Info("kafka event bus enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopicNotification))
	} else {
		log.Warn("no kafka brokers configured, notifications disabled")
	}

	var statsCache service.StatsCache
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rc.Close()
		statsCache = rc
	}

	orders := service.NewOrderService(repos, events, log)
	lifecycle := service.NewLifecycleService(repos, events, statsCache, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
	catalog := service.NewCatalogService(repos)

	r := transport.Router(transport.RouterDeps{
		Orders:       orders,
		Lifecycle:    lifecycle,
		Catalog:      catalog,
		AccessSecret: cfg.JWTAccessSecret,
		Log:          log,
		IsDev:        isDev,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := r.Run(cfg.Port); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")
}
