package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/akshayam/wellness-store.git/internal/catalog"
	"github.com/akshayam/wellness-store.git/internal/config"
	"github.com/akshayam/wellness-store.git/internal/inventory"
	kafkax "github.com/akshayam/wellness-store.git/internal/kafka"
	"github.com/akshayam/wellness-store.git/internal/orders"
	"github.com/akshayam/wellness-store.git/internal/postgres"
	"github.com/akshayam/wellness-store.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConn)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &inventory.Service{
		Products: &catalog.Repo{DB: db},
		Redis:    rdb,
	}

	group := getenv("INVENTORY_GROUP", "inventory-cache")
	workers := getint("INVENTORY_WORKERS", 8)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderEvents, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("inventory consumer started: group=%s topic=%s workers=%d",
			group, orders.TopicOrderEvents, workers)
		return cons.Start(gctx, svc.Handle)
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
			log.Println("shutting down consumer...")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("consumer exit: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
