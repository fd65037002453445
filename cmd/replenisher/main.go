package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"warehouse-fulfillment/internal/catalog"
	"warehouse-fulfillment/internal/config"
	"warehouse-fulfillment/internal/events"
	"warehouse-fulfillment/internal/fulfillment"
	kafkax "warehouse-fulfillment/internal/kafka"
	"warehouse-fulfillment/internal/postgres"
	"warehouse-fulfillment/internal/redisx"
	"warehouse-fulfillment/internal/replenish"
	"warehouse-fulfillment/internal/stock"
	"warehouse-fulfillment/internal/truck"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producers: replenished & rejected
	pOK := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockReplenished, 1024)
	pOK.Start()
	pRJ := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockRejected, 1024)
	pRJ.Start()

	cat := &catalog.Cache{Next: &catalog.Repo{DB: db}, Redis: rdb}
	ledger := &stock.Repo{DB: db}
	svc := &replenish.Service{
		Fulfillment:    fulfillment.New(cat, ledger, truck.NewLoader(cfg.TruckCapacityKg)),
		Redis:          rdb,
		ProducerOK:     pOK,
		ProducerReject: pRJ,
		ServiceName:    cfg.ServiceName + "-replenisher",
	}

	group := getenv("REPLENISHER_GROUP", "replenisher-svc")
	workers := mustAtoi(os.Getenv("REPLENISHER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, events.TopicInboundManifest, workers)

	go func() {
		log.Printf("replenisher consumer started: group=%s topic=%s workers=%d",
			group, events.TopicInboundManifest, workers)
		if err := cons.Start(ctx, svc.HandleManifest); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	pOK.Close()
	pRJ.Close()
	pOK.WaitClosed()
	pRJ.WaitClosed()
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
