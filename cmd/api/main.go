package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/signup/internal/api"
	"example.com/signup/internal/config"
	"example.com/signup/internal/domain"
	"example.com/signup/internal/events"
	"example.com/signup/internal/registry"
	httptransport "example.com/signup/internal/transport/http"
)

func main() {
	cfg := config.Load()

	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()

	var publisher events.Publisher = events.NoopPublisher{}
	var dispatcher *events.Dispatcher
	if cfg.EventsEnabled() {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers)
		defer producer.Close()
		dispatcher = events.NewDispatcher(events.NewKafkaPublisher(producer, cfg.RosterTopic), cfg.EventBuffer, cfg.PublishTimeout, nil)
		go dispatcher.Start(dispatchCtx)
		publisher = dispatcher
		log.Printf("roster events enabled -> %v (topic=%s)", cfg.KafkaBrokers, cfg.RosterTopic)
	} else {
		log.Printf("KAFKA_BROKERS not set, roster events disabled")
	}

	repo := registry.NewInMemoryRepository()
	service := domain.NewService(repo, publisher)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	server := httptransport.NewServer(cfg, httptransport.Chain(mux,
		httptransport.Logging(log.Default()),
		httptransport.CORS(cfg.CORSOrigin),
		httptransport.Instrument,
	), nil)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("signup-service listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	if dispatcher != nil {
		stopDispatch()
		select {
		case <-dispatcher.Done():
		case <-shutdownCtx.Done():
			log.Printf("roster event flush interrupted: %v", shutdownCtx.Err())
		}
	}
}
