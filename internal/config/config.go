package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the API process.
type Config struct {
	Addr            string
	DatabaseURL     string
	RedisAddr       string
	JWTSecret       string
	LedgerCacheTTL  time.Duration
	RefreshInterval time.Duration
}

// Load reads configuration from the environment with sane defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("pantry")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "pantry-redis:6379")
	v.SetDefault("jwt_secret", "super-secret-key") // move to a real secret in prod
	v.SetDefault("ledger_cache_ttl", "30s")
	v.SetDefault("refresh_cleanup_interval", "30m")

	cfg := Config{
		Addr:            v.GetString("addr"),
		DatabaseURL:     v.GetString("database_url"),
		RedisAddr:       v.GetString("redis_addr"),
		JWTSecret:       v.GetString("jwt_secret"),
		LedgerCacheTTL:  v.GetDuration("ledger_cache_ttl"),
		RefreshInterval: v.GetDuration("refresh_cleanup_interval"),
	}
	return cfg, nil
}
