package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Session configuration.
	SessionStore        string `mapstructure:"SESSION_STORE"`
	SessionTTLSeconds   int    `mapstructure:"SESSION_TTL_SECONDS"`
	SessionSweepSeconds int    `mapstructure:"SESSION_SWEEP_SECONDS"`
	SessionSigningKey   string `mapstructure:"SESSION_SIGNING_KEY"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SESSION_STORE", "redis")
	viper.SetDefault("SESSION_TTL_SECONDS", 300)
	viper.SetDefault("SESSION_SWEEP_SECONDS", 300)
	viper.SetDefault("SESSION_SIGNING_KEY", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SessionTTL returns the sliding expiry window for idle sessions.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLSeconds) * time.Second
}

// SessionSweepInterval returns how often the in-memory store scans for expired entries.
func SessionSweepInterval() time.Duration {
	return time.Duration(AppConfig.SessionSweepSeconds) * time.Second
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
