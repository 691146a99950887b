// Command optimus-api runs the HTTP front door: it accepts job submissions,
// enqueues them, and serves status polling. It does not execute jobs itself —
// that is cmd/optimus-worker's job. Ported from the teacher's cmd/api/main.go
// signal-handling/graceful-shutdown skeleton.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/optimuscode/optimus/internal/api"
	"github.com/optimuscode/optimus/internal/config"
	"github.com/optimuscode/optimus/internal/dispatcher"
	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/internal/store"
)

func main() {
	cfg := config.LoadFromEnv()

	log.Printf("Starting optimus-api")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %d", cfg.Server.Port)
	log.Printf("Redis enabled: %t", cfg.Redis.Enabled)
	if cfg.Redis.Enabled {
		log.Printf("Redis address: %s", cfg.Redis.Addr)
		log.Printf("Job TTL: %s", cfg.Redis.JobTTL)
	}

	policies := loadPolicies(cfg)

	s, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create job store: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("Error closing job store: %v", err)
		}
	}()

	d := dispatcher.New(s, policies, dispatcher.Limits{
		MaxPayloadBytes: cfg.Dispatcher.MaxPayloadBytes,
		MaxTimeoutMS:    cfg.Dispatcher.MaxTimeoutMS,
	})

	server := api.New(d)

	go func() {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		log.Printf("Server listening on %s", addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func loadPolicies(cfg *config.Config) langpolicy.Table {
	path := cfg.Languages.ConfigPath
	if path == "" {
		path = langpolicy.DefaultConfigPath()
	}
	table, err := langpolicy.LoadConfig(path)
	if err != nil {
		log.Printf("Falling back to hardcoded language policy: %v", err)
		return langpolicy.Hardcoded()
	}
	return table
}

func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.Redis.Enabled {
		return store.New(store.TypeRedis, store.Config{
			RedisAddr:     cfg.Redis.Addr,
			RedisPassword: cfg.Redis.Password,
			RedisDB:       cfg.Redis.DB,
			JobTTL:        cfg.Redis.JobTTL,
		})
	}
	return store.New(store.TypeMemory, store.Config{})
}
