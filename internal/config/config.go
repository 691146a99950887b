// Package config holds Optimus's application configuration, ported from the
// teacher's Config struct-tree-plus-DefaultConfig shape and generalized from
// "one compile service" to "N-language execution engine plus dispatcher
// front door".
package config

import (
	"time"
)

// Config holds the application configuration.
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Engine     EngineConfig
	Dispatcher DispatcherConfig
	Languages  LanguagesConfig
	Container  ContainerConfig
}

// ServerConfig holds the internal/api HTTP front door's settings.
type ServerConfig struct {
	Port        int
	Environment string // "development" or "production"
}

// RedisConfig holds internal/store/redis connection settings.
type RedisConfig struct {
	// Enabled determines whether to use Redis or in-memory storage.
	Enabled bool

	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MaxRetries   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// JobTTL is the time-to-live for job/state/result records.
	JobTTL time.Duration
}

// EngineConfig holds internal/engine worker-pool settings.
type EngineConfig struct {
	// ParallelismPerLanguage is P from spec.md §4.2: how many jobs of one
	// language a worker process runs concurrently.
	ParallelismPerLanguage int

	// CompileTimeout bounds S1_Compile.
	CompileTimeout time.Duration

	// DefaultTestTimeout is used when a job omits timeout_ms.
	DefaultTestTimeout time.Duration
}

// DispatcherConfig holds internal/dispatcher validation limits.
type DispatcherConfig struct {
	MaxPayloadBytes int
	MaxTimeoutMS    int
}

// LanguagesConfig points internal/langpolicy at its policy file.
type LanguagesConfig struct {
	ConfigPath string
}

// ContainerConfig selects and tunes the pkg/container.Driver backend.
type ContainerConfig struct {
	// Backend is "docker", "kubernetes", or "auto".
	Backend   string
	Namespace string // Kubernetes only
	WorkDir   string
}

// DefaultConfig returns a configuration with sensible defaults, matching the
// teacher's DefaultConfig constants where the concern is unchanged (Redis
// pool sizing, server port) and replacing compilation-specific defaults with
// engine/dispatcher equivalents.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Environment: "development",
		},
		Redis: RedisConfig{
			Enabled:      false,
			Addr:         "localhost:6379",
			Password:     "",
			DB:           0,
			PoolSize:     20,
			MaxRetries:   3,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			JobTTL:       time.Hour,
		},
		Engine: EngineConfig{
			ParallelismPerLanguage: 3,
			CompileTimeout:         30 * time.Second,
			DefaultTestTimeout:     10 * time.Second,
		},
		Dispatcher: DispatcherConfig{
			MaxPayloadBytes: 1 * 1024 * 1024, // 1 MiB
			MaxTimeoutMS:    30_000,
		},
		Languages: LanguagesConfig{
			ConfigPath: "configs/languages.yaml",
		},
		Container: ContainerConfig{
			Backend: "auto",
			WorkDir: "/code",
		},
	}
}
