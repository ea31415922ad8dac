package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName      string
	AppEnv       string
	AppPort      string
	DatabaseURL  string
	RedisURL     string
	NATSUrl      string
	JWTSecret    string
	SeedEnabled  bool
	SeedToken    string
	VibeCacheTTL time.Duration
	CORSOrigins  string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HOMMIEFI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Hommiefi API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("seed.enabled", false)
	v.SetDefault("vibe.cache_ttl", "30s")

	ttlString := v.GetString("vibe.cache_ttl")
	if ttlString == "" {
		ttlString = "30s"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid vibe cache ttl: %w", err)
	}

	cfg := Config{
		AppName:      v.GetString("app.name"),
		AppEnv:       v.GetString("app.env"),
		AppPort:      v.GetString("app.port"),
		DatabaseURL:  v.GetString("database.url"),
		RedisURL:     v.GetString("redis.url"),
		NATSUrl:      v.GetString("nats.url"),
		JWTSecret:    v.GetString("jwt.secret"),
		SeedEnabled:  v.GetBool("seed.enabled"),
		SeedToken:    v.GetString("seed.token"),
		VibeCacheTTL: ttl,
		CORSOrigins:  v.GetString("cors.origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
