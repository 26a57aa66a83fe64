package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds environment-based settings
type Config struct {
	Environment   string
	ServerAddress string
	LogLevel      string

	APIBase      string
	CountryCode  string
	CalendarYear int

	SessionSecret string
	SessionTTL    time.Duration

	SettingsBackend string
	SettingsFile    string
	RedisAddress    string
	RedisUsername   string
	RedisPassword   string
	DatabaseURL     string
	MigrationsPath  string

	ThemeDir        string
	ExportDir       string
	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string

	MQTTBrokerURL string
	MQTTTopic     string
	HeaderLogoURL string
}

// Development reports whether the server runs in development mode.
func (c *Config) Development() bool {
	return c.Environment == "" || c.Environment == "development"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment:   os.Getenv("APP_ENV"),
		ServerAddress: getenv("SERVER_ADDRESS", ":8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),

		APIBase:     getenv("API_BASE", "https://ataselik.de/api.php?path="),
		CountryCode: getenv("COUNTRY_CODE", "ALMANYA"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		SettingsBackend: getenv("SETTINGS_BACKEND", BackendMemory),
		SettingsFile:    getenv("SETTINGS_FILE", "./data/font-settings"),
		RedisAddress:    getenv("REDIS_ADDRESS", "localhost:6379"),
		RedisUsername:   os.Getenv("REDIS_USERNAME"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  getenv("MIGRATIONS_PATH", "./migrations"),

		ThemeDir:        getenv("THEME_DIR", "./web/static/images"),
		ExportDir:       getenv("EXPORT_DIR", "./exports"),
		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		MQTTTopic:     getenv("MQTT_TOPIC", "imsakiye/exports"),
		HeaderLogoURL: os.Getenv("HEADER_LOGO_URL"),
	}

	year, err := strconv.Atoi(getenv("CALENDAR_YEAR", "2026"))
	if err != nil {
		return nil, fmt.Errorf("CALENDAR_YEAR: %w", err)
	}
	cfg.CalendarYear = year

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	if cfg.SessionSecret == "" {
		if !cfg.Development() {
			return nil, fmt.Errorf("SESSION_SECRET is required")
		}
		cfg.SessionSecret = "development-secret"
	}

	switch cfg.SettingsBackend {
	case BackendMemory, BackendFile, BackendRedis:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres settings backend")
		}
	default:
		return nil, fmt.Errorf("unknown SETTINGS_BACKEND %q", cfg.SettingsBackend)
	}

	if cfg.UseSpaces && (cfg.SpacesBucket == "" || cfg.SpacesEndpoint == "") {
		return nil, fmt.Errorf("SPACES_ENDPOINT and SPACES_BUCKET are required when USE_SPACES=true")
	}
	return cfg, nil
}
