// Package config конфигурация сервиса из TOML файла и переменных окружения
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // зона доступна и в образах без /usr/share/zoneinfo

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

// Config корневая конфигурация
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret        string `toml:"jwt_secret"`
	TokenTTLHours    int    `toml:"token_ttl_hours"`
	AccountTTLMonths int    `toml:"account_ttl_months"`
	AdminLoginID     string `toml:"admin_login_id"`
	AdminPassword    string `toml:"admin_password"`
}

type BookingConfig struct {
	Timezone      string `toml:"timezone"`
	HorizonMonths int    `toml:"horizon_months"`
}

// RateLimitConfig лимит на вход и регистрацию с одного IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
}

var (
	// ErrMissingJWTSecret возвращается без секрета подписи токенов
	ErrMissingJWTSecret = errors.New("config: auth.jwt_secret is required")
	// ErrInvalidTimezone возвращается для неизвестной зоны
	ErrInvalidTimezone = errors.New("config: invalid booking.timezone")
)

// Load читает .env (если есть), затем TOML файл, затем переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "space-booking",
		},
		Auth: AuthConfig{
			TokenTTLHours:    24,
			AccountTTLMonths: domain.DefaultAccountTTLMonths,
		},
		Booking: BookingConfig{
			Timezone:      domain.DefaultTimezone,
			HorizonMonths: domain.DefaultHorizonMonths,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 10,
			Burst:             5,
		},
	}
}

// applyEnv секреты и хост БД можно переопределить окружением
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := getenv("AUTH_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := getenv("ADMIN_PASSWORD"); v != "" {
		c.Auth.AdminPassword = v
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Booking.HorizonMonths <= 0 {
		return fmt.Errorf("config: booking.horizon_months must be positive, got %d", c.Booking.HorizonMonths)
	}
	if c.Auth.AccountTTLMonths <= 0 {
		return fmt.Errorf("config: auth.account_ttl_months must be positive, got %d", c.Auth.AccountTTLMonths)
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения для golang-migrate
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Location часовой пояс календаря бронирований
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, c.Booking.Timezone, err)
	}
	return loc, nil
}

// TokenTTL срок жизни токена сессии
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}
