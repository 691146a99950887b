// Command optimus-worker runs the Execution Engine: it blocking-pops job ids
// from every configured language's queue, drives the Test Orchestration
// State Machine for each one, and writes results back to the shared store.
// It never serves HTTP; that is cmd/optimus-api's job. Ported from the
// teacher's cmd/api/main.go signal-handling/graceful-shutdown skeleton,
// generalized from "HTTP server + in-process worker pool" to "standalone
// worker process" so the engine can be scaled independently per spec.md §1.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/optimuscode/optimus/internal/config"
	"github.com/optimuscode/optimus/internal/container"
	"github.com/optimuscode/optimus/internal/engine"
	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/internal/store"
)

func main() {
	cfg := config.LoadFromEnv()

	log.Printf("Starting optimus-worker")
	log.Printf("Container backend: %s", cfg.Container.Backend)
	log.Printf("Parallelism per language: %d", cfg.Engine.ParallelismPerLanguage)

	policies := loadPolicies(cfg)
	languages := policies.Languages()
	if len(languages) == 0 {
		log.Fatalf("no languages configured, nothing to run")
	}
	log.Printf("Languages: %v", languages)

	s, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create job store: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("Error closing job store: %v", err)
		}
	}()

	driver, err := container.New(container.Type(cfg.Container.Backend), cfg.Container.Namespace)
	if err != nil {
		log.Fatalf("Failed to create container driver: %v", err)
	}
	if closer, ok := driver.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("Error closing container driver: %v", err)
			}
		}()
	}

	e := engine.New(s, driver, policies, engine.Config{
		Parallelism:        cfg.Engine.ParallelismPerLanguage,
		CompileTimeout:     cfg.Engine.CompileTimeout,
		WorkDir:            cfg.Container.WorkDir,
		DisableNetwork:     true,
		DefaultTestTimeout: cfg.Engine.DefaultTestTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Worker pool running, %d worker(s) per language", cfg.Engine.ParallelismPerLanguage)
	e.Run(ctx, languages)

	snapshot := e.Stats().Snapshot()
	log.Printf("Worker stopped. processed=%d failed=%d cancelled=%d compile_failures=%d",
		snapshot.JobsProcessed, snapshot.JobsFailed, snapshot.JobsCancelled, snapshot.CompileFailures)
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
