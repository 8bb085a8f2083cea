package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Политики границ окна бронирования
const (
	BoundaryInclusive = "inclusive"
	BoundaryExclusive = "exclusive"
)

// Политики отмены после времени подачи автомобиля
const (
	LateCancellationFirstTier  = "first_tier"
	LateCancellationFullCharge = "full_charge"
)

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	FleetService  ServiceClientConfig `toml:"fleet_service"`
	UserService   ServiceClientConfig `toml:"user_service"`
	Notifications NotificationsConfig `toml:"notifications"`
	Availability  AvailabilityConfig  `toml:"availability"`
	Cancellation  CancellationConfig  `toml:"cancellation"`
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
}

// DSN строка подключения для lib/pq
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

type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type NotificationsConfig struct {
	Enabled    bool    `toml:"enabled"`
	URL        string  `toml:"url"`
	Timeout    int     `toml:"timeout"`      // секунды
	QueueSize  int     `toml:"queue_size"`   // размер буфера событий
	Workers    int     `toml:"workers"`      // количество отправителей
	RatePerSec float64 `toml:"rate_per_sec"` // ограничение запросов к шлюзу
	Burst      int     `toml:"burst"`
}

type AvailabilityConfig struct {
	// Boundary inclusive: окна, касающиеся концами, считаются пересекающимися
	Boundary string `toml:"boundary"`
}

type CancellationConfig struct {
	// LatePolicy правило для отмены после времени подачи (diff_hours < 0)
	LatePolicy string `toml:"late_policy"`
}

// Load читает конфигурацию из TOML-файла, применяет значения по умолчанию,
// переопределения из переменных окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "rental",
			DBName:          "rental_dispatch",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "rental_dispatch_service",
		},
		FleetService: ServiceClientConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		UserService: ServiceClientConfig{
			URL:     "http://localhost:8082",
			Timeout: 5,
		},
		Notifications: NotificationsConfig{
			Enabled:    true,
			URL:        "http://localhost:8090",
			Timeout:    5,
			QueueSize:  1024,
			Workers:    4,
			RatePerSec: 50,
			Burst:      10,
		},
		Availability: AvailabilityConfig{
			Boundary: BoundaryInclusive,
		},
		Cancellation: CancellationConfig{
			LatePolicy: LateCancellationFirstTier,
		},
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host/dbname/user must not be empty", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.FleetService.URL == "" {
		return fmt.Errorf("%w: fleet_service.url is required", ErrInvalidConfig)
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
	}
	if c.Notifications.Enabled {
		if c.Notifications.URL == "" {
			return fmt.Errorf("%w: notifications.url is required when notifications are enabled", ErrInvalidConfig)
		}
		if c.Notifications.QueueSize <= 0 || c.Notifications.Workers <= 0 {
			return fmt.Errorf("%w: notifications.queue_size and notifications.workers must be positive", ErrInvalidConfig)
		}
	}

	switch c.Availability.Boundary {
	case BoundaryInclusive, BoundaryExclusive:
	default:
		return fmt.Errorf("%w: availability.boundary must be %q or %q",
			ErrInvalidConfig, BoundaryInclusive, BoundaryExclusive)
	}

	switch c.Cancellation.LatePolicy {
	case LateCancellationFirstTier, LateCancellationFullCharge:
	default:
		return fmt.Errorf("%w: cancellation.late_policy must be %q or %q",
			ErrInvalidConfig, LateCancellationFirstTier, LateCancellationFullCharge)
	}

	return nil
}

// applyEnv переопределяет секреты и адреса из окружения (для docker/k8s)
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("DB_HOST"); ok && v != "" {
		cfg.Database.Host = v
	}
	if v, ok := os.LookupEnv("DB_PORT"); ok && v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v, ok := os.LookupEnv("DB_USER"); ok && v != "" {
		cfg.Database.User = v
	}
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv("DB_NAME"); ok && v != "" {
		cfg.Database.DBName = v
	}
}
