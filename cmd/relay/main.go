package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/medora-health/portal-access-service/internal/adapters/messaging"
	"github.com/medora-health/portal-access-service/internal/adapters/outbox"
	"github.com/medora-health/portal-access-service/internal/config"
	"github.com/medora-health/portal-access-service/internal/logger"
)

func main() {
	cfg := config.LoadRelayConfig()
	log := logger.New(cfg.LogLevel)

	log.Info("starting outbox relay service")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Error("failed to open database")
	} else {
		defer db.Close()
		log.Info("database connection initialized, circuit breaker will validate on first operation")
	}

	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.PortalQueueName)
	if err != nil {
		log.WithError(err).Warn("failed to connect portal event publisher")
	} else {
		defer broker.Close()
		log.Info("connected to RabbitMQ")
	}

	worker := outbox.NewRelay(db, cfg.DatabaseURL, broker, log)

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "UP"
		httpStatus := http.StatusOK

		if !worker.IsHealthy() {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    status,
			"component": "outbox-relay",
		})
	})

	healthServer := &http.Server{
		Addr:    ":8090",
		Handler: healthMux,
	}

	go func() {
		log.Info("starting relay health server on :8090")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("relay health server error")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)

	go func() {
		log.Info("starting event processing worker")
		if err := worker.Start(ctx); err != nil && err != context.Canceled {
			log.WithError(err).Error("relay worker error")
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Infof("received signal %v, initiating shutdown", sig)
		cancel()

	case err := <-errChan:
		log.WithError(err).Error("fatal relay error, shutting down")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("error shutting down relay health server")
	}

	log.Info("relay shutdown complete")
}
