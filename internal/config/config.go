// Package config loads config.toml and applies environment overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Oso5408/ofcoz-booking/internal/domain"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Venue    VenueConfig    `toml:"venue"`
	Pricing  PricingConfig  `toml:"pricing"`
	Supabase SupabaseConfig `toml:"supabase"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Redis    RedisConfig    `toml:"redis"`
	Email    EmailConfig    `toml:"email"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type VenueConfig struct {
	Timezone         string `toml:"timezone"`
	OpenHour         int    `toml:"open_hour"`
	CloseHour        int    `toml:"close_hour"`
	StepMinutes      int    `toml:"step_minutes"`
	MinNoticeMinutes int    `toml:"min_notice_minutes"`
}

// OperatingHours resolves the timezone and returns the domain window.
func (v VenueConfig) OperatingHours() (domain.OperatingHours, error) {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return domain.OperatingHours{}, fmt.Errorf("config: venue timezone %q: %w", v.Timezone, err)
	}
	return domain.OperatingHours{
		OpenHour:         v.OpenHour,
		CloseHour:        v.CloseHour,
		StepMinutes:      v.StepMinutes,
		MinNoticeMinutes: v.MinNoticeMinutes,
		Location:         loc,
	}, nil
}

type PricingConfig struct {
	EquipmentTokens int `toml:"equipment_tokens"`
	TokenValidDays  int `toml:"token_valid_days"`
}

func (p PricingConfig) Pricing() domain.Pricing {
	return domain.Pricing{EquipmentSurchargeTokens: p.EquipmentTokens}
}

type SupabaseConfig struct {
	URL           string `toml:"url"`
	ServiceKey    string `toml:"service_key"`
	ReceiptBucket string `toml:"receipt_bucket"`
	MaxReceiptMB  int    `toml:"max_receipt_mb"`
	JWKSURL       string `toml:"jwks_url"`
	JWTSecret     string `toml:"jwt_secret"`
}

func (s SupabaseConfig) MaxReceiptBytes() int64 {
	return int64(s.MaxReceiptMB) << 20
}

type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type EmailConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	APIKey   string `toml:"api_key"`
	Operator string `toml:"operator"`
	Timeout  int    `toml:"timeout"`
}

// Load reads path, loads .env when present, applies environment overrides
// and defaults, then validates.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Supabase.URL, "SUPABASE_URL")
	setString(&c.Supabase.ServiceKey, "SUPABASE_SERVICE_KEY")
	setString(&c.Supabase.JWKSURL, "SUPABASE_JWKS_URL")
	setString(&c.Supabase.JWTSecret, "SUPABASE_JWT_SECRET")
	setString(&c.RabbitMQ.URL, "RABBITMQ_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Email.URL, "EMAIL_FUNCTION_URL")
	setString(&c.Email.APIKey, "EMAIL_FUNCTION_KEY")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	return setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: invalid int for %s: %q", key, v)
	}
	*dst = n
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "ofcoz-booking"
	}
	if c.Venue.Timezone == "" {
		c.Venue.Timezone = domain.DefaultTimezone
	}
	if c.Venue.OpenHour == 0 && c.Venue.CloseHour == 0 {
		c.Venue.OpenHour = domain.DefaultOpenHour
		c.Venue.CloseHour = domain.DefaultCloseHour
	}
	if c.Venue.StepMinutes == 0 {
		c.Venue.StepMinutes = domain.DefaultSlotStepMinutes
	}
	if c.Venue.MinNoticeMinutes == 0 {
		c.Venue.MinNoticeMinutes = domain.DefaultMinNoticeMinutes
	}
	if c.Pricing.EquipmentTokens == 0 {
		c.Pricing.EquipmentTokens = domain.DefaultEquipmentTokens
	}
	if c.Supabase.ReceiptBucket == "" {
		c.Supabase.ReceiptBucket = "receipts"
	}
	if c.Supabase.MaxReceiptMB == 0 {
		c.Supabase.MaxReceiptMB = 5
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = "booking-events"
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 10
	}
	if c.Email.Timeout == 0 {
		c.Email.Timeout = 5
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database host and dbname are required")
	}
	if c.Venue.OpenHour < 0 || c.Venue.CloseHour > 24 || c.Venue.OpenHour >= c.Venue.CloseHour {
		return fmt.Errorf("config: invalid venue hours %d-%d", c.Venue.OpenHour, c.Venue.CloseHour)
	}
	if c.Venue.StepMinutes <= 0 || 60%c.Venue.StepMinutes != 0 {
		return fmt.Errorf("config: step_minutes must divide an hour, got %d", c.Venue.StepMinutes)
	}
	if c.Venue.MinNoticeMinutes < 0 {
		return errors.New("config: min_notice_minutes must not be negative")
	}
	if _, err := time.LoadLocation(c.Venue.Timezone); err != nil {
		return fmt.Errorf("config: venue timezone %q: %w", c.Venue.Timezone, err)
	}
	if c.Pricing.EquipmentTokens < 0 || c.Pricing.TokenValidDays < 0 {
		return errors.New("config: pricing values must not be negative")
	}
	if c.Supabase.JWKSURL == "" && c.Supabase.JWTSecret == "" {
		return errors.New("config: supabase jwks_url or jwt_secret is required")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return errors.New("config: rabbitmq url is required when enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("config: redis addr is required when enabled")
	}
	if c.Email.Enabled && c.Email.URL == "" {
		return errors.New("config: email url is required when enabled")
	}
	return nil
}
