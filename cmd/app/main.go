package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/skytrip/flightcrm/api"
	"github.com/skytrip/flightcrm/config"
	"github.com/skytrip/flightcrm/internal/auth"
	"github.com/skytrip/flightcrm/internal/bootstrap"
	"github.com/skytrip/flightcrm/internal/cache"
	"github.com/skytrip/flightcrm/internal/kafka"
	"github.com/skytrip/flightcrm/internal/logger"
	"github.com/skytrip/flightcrm/internal/metrics"
	"github.com/skytrip/flightcrm/internal/repository"
	authservice "github.com/skytrip/flightcrm/internal/service/auth"
	"github.com/skytrip/flightcrm/internal/service/applications"
	"github.com/skytrip/flightcrm/internal/service/messages"
	"github.com/skytrip/flightcrm/internal/service/packages"
)

func main() {
	_ = godotenv.Load()

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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	if cfg.Database.MigrationsDir != "" {
		if err := repository.Migrate(ctx, pool, cfg.Database.MigrationsDir); err != nil {
			logg.Fatal("apply migrations", "error", err)
		}
	}

	m := metrics.NewMetrics("flightcrm")

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.PackagesTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers, kafka.WithPublishedCounter(m.EventsPublished))
	defer producer.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	adminRepo := repository.NewAdminRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	authService := authservice.NewAuthService(adminRepo, tokens)
	packageService := packages.NewPackageService(packageRepo, redisCache, logg)
	applicationService := applications.NewApplicationService(
		applicationRepo,
		packageRepo,
		logg,
		applications.WithProducer(producer, cfg.Kafka.EventsTopic),
	)
	messageService := messages.NewMessageService(
		messageRepo,
		logg,
		messages.WithProducer(producer, cfg.Kafka.EventsTopic),
	)

	router := bootstrap.NewRouter(cfg, logg, m, tokens, bootstrap.Handlers{
		Admin:        api.NewAdminHandler(authService),
		Packages:     api.NewPackageHandler(packageService),
		Applications: api.NewApplicationHandler(applicationService),
		Messages:     api.NewMessageHandler(messageService),
	})

	if err := bootstrap.Run(ctx, cfg, logg, router); err != nil {
		logg.Fatal("server error", "error", err)
	}
}
