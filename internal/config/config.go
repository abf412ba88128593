package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisURL        string
	EventsChannel   string
	JWTSecret       string
	DecaySchedule   string
	DecayWorkers    int
	ClusterRadiusKm float64
	ShutdownTimeout time.Duration
	LogLevel        string
}

const (
	defaultRunAddress      = ":8080"
	defaultEventsChannel   = "flashrescue:events"
	defaultJWTSecret       = "change-me-in-production"
	defaultDecaySchedule   = "@every 1m"
	defaultDecayWorkers    = 4
	defaultClusterRadiusKm = 2.0
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	dotEnvFile             = ".env"
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	return load(os.Args[1:], withDotEnv(os.LookupEnv, dotEnvFile))
}

type envLookup func(string) (string, bool)

// withDotEnv falls back to values from path for keys missing in lookup.
func withDotEnv(lookup envLookup, path string) envLookup {
	values, err := godotenv.Read(path)
	if err != nil {
		return lookup
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, ok
		}
		v, ok := values[key]
		return v, ok
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisURL:        getString(lookup, "REDIS_URL", ""),
		EventsChannel:   getString(lookup, "EVENTS_CHANNEL", defaultEventsChannel),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		DecaySchedule:   getString(lookup, "DECAY_SCHEDULE", defaultDecaySchedule),
		DecayWorkers:    getInt(lookup, "DECAY_WORKERS", defaultDecayWorkers),
		ClusterRadiusKm: getFloat(lookup, "CLUSTER_RADIUS_KM", defaultClusterRadiusKm),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("flashrescue", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL for event broadcast")
	fs.StringVar(&cfg.EventsChannel, "events-channel", cfg.EventsChannel, "Redis pub/sub channel for events")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying bearer tokens")
	fs.StringVar(&cfg.DecaySchedule, "decay-schedule", cfg.DecaySchedule, "Cron spec of the price decay tick")
	fs.IntVar(&cfg.DecayWorkers, "decay-workers", cfg.DecayWorkers, "Concurrent listing updates per decay tick")
	fs.Float64Var(&cfg.ClusterRadiusKm, "cluster-radius", cfg.ClusterRadiusKm, "Mission cluster radius in kilometres")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if _, err := cron.ParseStandard(cfg.DecaySchedule); err != nil {
		return nil, fmt.Errorf("invalid decay schedule: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.DecayWorkers <= 0 {
		cfg.DecayWorkers = defaultDecayWorkers
	}

	if cfg.ClusterRadiusKm <= 0 {
		cfg.ClusterRadiusKm = defaultClusterRadiusKm
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.EventsChannel == "" {
		cfg.EventsChannel = defaultEventsChannel
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
