package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Engine.ParallelismPerLanguage)
	assert.Equal(t, "configs/languages.yaml", cfg.Languages.ConfigPath)
	assert.Equal(t, "auto", cfg.Container.Backend)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("OPTIMUS_PORT", "9090")
	t.Setenv("OPTIMUS_STORE", "redis")
	t.Setenv("OPTIMUS_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("OPTIMUS_ENGINE_PARALLELISM", "7")

	cfg := LoadFromEnv()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 7, cfg.Engine.ParallelismPerLanguage)
}

func TestLoadFromEnvLeavesDefaultsUntouched(t *testing.T) {
	cfg := LoadFromEnv()
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}
