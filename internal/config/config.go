package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/shapebuilder/internal/shape"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Build     BuildConfig     `yaml:"build"`
	Storage   StorageConfig   `yaml:"storage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Progress  ProgressConfig  `yaml:"progress"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
	// MaxSampleCoords ограничивает число координат в ответе /api/shapes/sample
	MaxSampleCoords int `yaml:"max_sample_coords"`
	// MaxVolume ограничивает объём ограничивающего параллелепипеда фигуры, 0 - без ограничения
	MaxVolume int64 `yaml:"max_volume"`
}

type BuildConfig struct {
	ChunkSize      int     `yaml:"chunk_size"`
	ShellThreshold float64 `yaml:"ellipsoid_shell_threshold"`
	// DefaultMaterial используется, если в запросе материал не указан
	DefaultMaterial string `yaml:"default_material"`
}

// StorageConfig: backend "memory" или "badger"
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// ProgressConfig: пустой NATSURL отключает публикацию прогресса в NATS
type ProgressConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			MaxSampleCoords: 10000,
			MaxVolume:       1 << 22,
		},
		Build: BuildConfig{
			ChunkSize:       4096,
			ShellThreshold:  0.8,
			DefaultMaterial: "stone",
		},
		Storage: StorageConfig{
			Backend: BackendMemory,
			Path:    "data",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "shapebuilder",
		},
		Progress: ProgressConfig{
			Subject: "shapebuilder.progress",
		},
		Logging: LoggingConfig{
			Dir:          "logs",
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "SHAPEBUILDER_REST_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	var errs []error
	if c.Build.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("build.chunk_size must be positive, got %d", c.Build.ChunkSize))
	}
	if !shape.ValidShellThreshold(c.Build.ShellThreshold) {
		errs = append(errs, fmt.Errorf("build.ellipsoid_shell_threshold must be in (0, 1), got %g", c.Build.ShellThreshold))
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendBadger:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for badger backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.backend %q", c.Storage.Backend))
	}
	if c.Server.MaxSampleCoords < 0 {
		errs = append(errs, fmt.Errorf("server.max_sample_coords must not be negative, got %d", c.Server.MaxSampleCoords))
	}
	if c.Server.MaxVolume < 0 {
		errs = append(errs, fmt.Errorf("server.max_volume must not be negative, got %d", c.Server.MaxVolume))
	}
	return errors.Join(errs...)
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", пытается прочитать из ENV SHAPEBUILDER_CONFIG, иначе возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("SHAPEBUILDER_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан - использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
