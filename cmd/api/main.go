package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"warehouse-fulfillment/internal/catalog"
	"warehouse-fulfillment/internal/config"
	"warehouse-fulfillment/internal/events"
	"warehouse-fulfillment/internal/fulfillment"
	"warehouse-fulfillment/internal/httpx"
	kafkax "warehouse-fulfillment/internal/kafka"
	"warehouse-fulfillment/internal/postgres"
	"warehouse-fulfillment/internal/redisx"
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
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for shipped events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicOutboundShipped, 1024)
	prod.Start()

	// Capabilities & coordinator
	cat := &catalog.Cache{Next: &catalog.Repo{DB: db}, Redis: rdb}
	ledger := &stock.Repo{DB: db}
	svc := fulfillment.New(cat, ledger, truck.NewLoader(cfg.TruckCapacityKg))

	router := httpx.NewRouter()
	oh := &httpx.OutboundHandler{Fulfillment: svc, Producer: prod, Service: cfg.ServiceName}
	oh.Register(router)
	ih := &httpx.InboundHandler{Fulfillment: svc}
	ih.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush buffered events, then close the writer
	prod.WaitClosed()
}
