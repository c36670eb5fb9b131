package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	app "github.com/KolesnikovPavel/limit-order-book/internal/app/engine"
	orderreader "github.com/KolesnikovPavel/limit-order-book/internal/usecase/order-reader"
	"github.com/KolesnikovPavel/limit-order-book/internal/usecase/orderbook"
	resultpublisher "github.com/KolesnikovPavel/limit-order-book/internal/usecase/result-publisher"
	"github.com/KolesnikovPavel/limit-order-book/internal/usecase/snapshot"
	"github.com/KolesnikovPavel/limit-order-book/pkg/config"
	"github.com/KolesnikovPavel/limit-order-book/pkg/logger"
	"github.com/KolesnikovPavel/limit-order-book/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	redisConfig := redis.DefaultConfig()
	redisConfig.Addrs = strings.Split(cfg.RedisConfig.Addrs, ",")
	redisConfig.Password = cfg.RedisConfig.Password
	redisConfig.Username = cfg.RedisConfig.Username
	redisConfig.DB = cfg.RedisConfig.DB

	rclient := redis.NewClient(log, redisConfig)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_redis",
		})
		return
	}

	book := orderbook.NewBook()
	reader := orderreader.NewReader(cfg.KafkaConfig, log)
	snapshotStore := snapshot.NewStore(rclient, cfg.Instrument, log)
	publisher := resultpublisher.NewPublisher(cfg.ResultPublisherConfig, log)

	engine, err := app.NewEngine(
		book,
		reader,
		snapshotStore,
		publisher,
		log,
		cfg,
	)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "create_engine",
		})
		return
	}

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Matching service started", logger.Field{
		Key:   "instrument",
		Value: cfg.Instrument,
	})

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if err := publisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_publisher",
		})
	}

	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "disconnect_redis",
		})
	}

	log.Info("Matching service shutdown complete")
}
