package config

import (
	"os"
	"strconv"
)

// LoadFromEnv starts from DefaultConfig and applies OPTIMUS_* environment
// overrides, ported from the teacher's cmd/api/main.go loadConfig() function.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("OPTIMUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("OPTIMUS_ENV"); v != "" {
		cfg.Server.Environment = v
	}

	if v := os.Getenv("OPTIMUS_STORE"); v == "redis" {
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("OPTIMUS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("OPTIMUS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("OPTIMUS_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}

	if v := os.Getenv("OPTIMUS_ENGINE_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.ParallelismPerLanguage = n
		}
	}

	if v := os.Getenv("OPTIMUS_LANGUAGES_CONFIG"); v != "" {
		cfg.Languages.ConfigPath = v
	}

	if v := os.Getenv("OPTIMUS_CONTAINER_BACKEND"); v != "" {
		cfg.Container.Backend = v
	}
	if v := os.Getenv("OPTIMUS_K8S_NAMESPACE"); v != "" {
		cfg.Container.Namespace = v
	}

	return cfg
}
