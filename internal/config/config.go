package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Ahmedezz570/SkillSwap/pkg/config"
)

// Config holds all configuration for the SkillSwap API.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SKILLSWAP_HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"skillswap"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"skillswap_secret"`
	PostgresDB   string `env:"SKILLSWAP_DB_NAME" envDefault:"skillswap_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Match cache TTL in minutes
	MatchCacheTTL int `env:"MATCH_CACHE_TTL_MINUTES" envDefault:"5"`

	// Bookable time slots, HH:MM, 24-hour clock
	BookingTimeSlots []string `env:"BOOKING_TIME_SLOTS" envDefault:"09:00,10:00,11:00,14:00,15:00,16:00,17:00,18:00" envSeparator:","`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load skillswap config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.MatchCacheTTL < 1 {
		return fmt.Errorf("MATCH_CACHE_TTL_MINUTES must be at least 1, got %d", c.MatchCacheTTL)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	if len(c.BookingTimeSlots) == 0 {
		return fmt.Errorf("BOOKING_TIME_SLOTS must not be empty")
	}
	for _, slot := range c.BookingTimeSlots {
		if _, err := time.Parse("15:04", slot); err != nil {
			return fmt.Errorf("invalid time slot %q: must be HH:MM on a 24-hour clock", slot)
		}
	}
	return nil
}

// MatchCacheTTLDuration returns the match cache TTL as a time.Duration.
func (c *Config) MatchCacheTTLDuration() time.Duration {
	return time.Duration(c.MatchCacheTTL) * time.Minute
}
