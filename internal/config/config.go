package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	SessionDriverRedis  = "redis"
	SessionDriverMemory = "memory"

	PaymentProviderStripe = "stripe"
	PaymentProviderMock   = "mock"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Session   SessionConfig   `toml:"session"`
	Redis     RedisConfig     `toml:"redis"`
	Payment   PaymentConfig   `toml:"payment"`
	Jobs      JobsConfig      `toml:"jobs"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Admin     AdminConfig     `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	// Timezone IANA-зона площадки: по ней считается "сегодня"
	Timezone string `toml:"timezone"`
}

// Location загружает часовой пояс площадки
func (s ServerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, s.Timezone)
	}
	return loc, nil
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig выбор хранилища бронирований и цен
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// SessionConfig хранилище выборов слотов
type SessionConfig struct {
	Driver string `toml:"driver"`
	TTL    int    `toml:"ttl"` // секунды
}

type RedisConfig struct {
	URL string `toml:"url"`
}

type PaymentConfig struct {
	Provider  string `toml:"provider"`
	SecretKey string `toml:"secret_key"`
	Currency  string `toml:"currency"`
}

type JobsConfig struct {
	LifecycleEnabled  bool `toml:"lifecycle_enabled"`
	LifecycleInterval int  `toml:"lifecycle_interval"` // секунды
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

// Default конфигурация по умолчанию: всё в памяти, мок-платежи
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			Timezone:        "Asia/Kolkata",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "turf",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "turf-booking-service",
		},
		Storage: StorageConfig{Driver: StorageDriverMemory},
		Session: SessionConfig{Driver: SessionDriverMemory, TTL: 1800},
		Redis:   RedisConfig{URL: "redis://localhost:6379/0"},
		Payment: PaymentConfig{Provider: PaymentProviderMock, Currency: "inr"},
		Jobs: JobsConfig{
			LifecycleInterval: 3600,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
	}
}

// Load читает config.toml поверх значений по умолчанию,
// затем подгружает .env (если есть) и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env не обязателен
	_ = godotenv.Load(".env")
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("SERVER_TIMEZONE"); v != "" {
		c.Server.Timezone = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		c.Payment.SecretKey = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Admin.Token = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Session.Driver {
	case SessionDriverRedis, SessionDriverMemory:
	default:
		return fmt.Errorf("%w: unknown session driver %q", ErrInvalidConfig, c.Session.Driver)
	}

	switch c.Payment.Provider {
	case PaymentProviderMock:
	case PaymentProviderStripe:
		if c.Payment.SecretKey == "" {
			return fmt.Errorf("%w: stripe provider requires secret key", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown payment provider %q", ErrInvalidConfig, c.Payment.Provider)
	}

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: http_port must be positive", ErrInvalidConfig)
	}
	if _, err := c.Server.Location(); err != nil {
		return err
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidConfig)
	}
	if c.Admin.Token == "" {
		return fmt.Errorf("%w: admin token is required", ErrInvalidConfig)
	}
	if c.Jobs.LifecycleEnabled && c.Jobs.LifecycleInterval <= 0 {
		return fmt.Errorf("%w: lifecycle_interval must be positive", ErrInvalidConfig)
	}

	return nil
}

// ErrInvalidConfig ошибка валидации конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")
