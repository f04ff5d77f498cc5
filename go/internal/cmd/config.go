package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mcdev12/overworld/go/internal/players"
	"github.com/mcdev12/overworld/go/internal/tilemap"
	"github.com/mcdev12/overworld/go/internal/worldconfig"
	"github.com/rs/zerolog"
)

// Config is the process configuration read from the environment
type Config struct {
	Port            string
	LogLevel        zerolog.Level
	NatsURL         string
	GoogleClientID  string
	DevLogin        bool
	AdminToken      string
	WorldConfig     string
	MapPath         string
	AllowedOrigins  []string
	PresenceTimeout time.Duration
	FlushInterval   time.Duration
}

func loadConfig() (*Config, error) {
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        level,
		NatsURL:         os.Getenv("NATS_URL"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		DevLogin:        getEnvAsBool("DEV_LOGIN", false),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		WorldConfig:     getEnv("WORLD_CONFIG", "config/world.yaml"),
		MapPath:         getEnv("MAP_PATH", "config/map.csv"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		PresenceTimeout: getEnvAsDuration("PRESENCE_TIMEOUT", players.DefaultPresenceTimeout),
		FlushInterval:   getEnvAsDuration("FLUSH_INTERVAL", players.DefaultFlushInterval),
	}

	if cfg.GoogleClientID == "" && !cfg.DevLogin {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required unless DEV_LOGIN is set")
	}
	return cfg, nil
}

// loadWorld reads the world content and terrain and checks they agree
func loadWorld(cfg *Config) (*worldconfig.Config, *tilemap.Map, error) {
	world, err := worldconfig.Load(cfg.WorldConfig)
	if err != nil {
		return nil, nil, err
	}

	worldMap, err := tilemap.Load(cfg.MapPath)
	if err != nil {
		return nil, nil, err
	}

	if err := world.CheckMap(worldMap); err != nil {
		return nil, nil, fmt.Errorf("world config does not fit the map: %w", err)
	}
	return world, worldMap, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
