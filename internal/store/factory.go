package store

import (
	"fmt"
	"os"
	"strconv"
	"time"

	memorystore "github.com/optimuscode/optimus/internal/store/memory"
	redisstore "github.com/optimuscode/optimus/internal/store/redis"
)

// Type selects which backend New builds, ported from the teacher's
// internal/storage/factory.go StorageType.
type Type string

const (
	TypeMemory Type = "memory"
	TypeRedis  Type = "redis"
)

// Config configures New's Redis backend; ignored for TypeMemory.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// JobTTL is how long job/state/result/cancel records survive before
	// expiring. Zero falls back to DefaultTTL.
	JobTTL time.Duration
}

// New constructs a Store of the given type.
func New(t Type, cfg Config) (Store, error) {
	switch t {
	case TypeMemory:
		return memorystore.New(), nil
	case TypeRedis:
		return redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.JobTTL), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", t)
	}
}

// NewFromEnv builds a Store using OPTIMUS_STORE (memory|redis, default
// memory) and OPTIMUS_REDIS_ADDR/OPTIMUS_REDIS_PASSWORD/OPTIMUS_REDIS_DB.
func NewFromEnv() (Store, error) {
	t := Type(os.Getenv("OPTIMUS_STORE"))
	if t == "" {
		t = TypeMemory
	}
	cfg := Config{
		RedisAddr:     os.Getenv("OPTIMUS_REDIS_ADDR"),
		RedisPassword: os.Getenv("OPTIMUS_REDIS_PASSWORD"),
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if dbStr := os.Getenv("OPTIMUS_REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid OPTIMUS_REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}
	return New(t, cfg)
}
