package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Schema   string
}

// StorageConfig holds the Supabase Storage settings.
type StorageConfig struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
}

// Config holds all configuration for the application.
type Config struct {
	Environment   string
	Port          int
	ImageProvider string
	FalAPIKey     string
	GeminiAPIKey  string
	Storage       StorageConfig
	DB            DBConfig
}

// Load loads the configuration from environment variables. A missing .env
// file is not an error; deployed environments inject variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:   getEnv("APP_ENV", "production"),
		ImageProvider: getEnv("IMAGE_PROVIDER", "falai"),
		FalAPIKey:     os.Getenv("FAL_API_KEY"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		Storage: StorageConfig{
			BaseURL:    os.Getenv("SUPABASE_URL"),
			ServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
			Bucket:     getEnv("STORAGE_BUCKET", "generated-images"),
		},
		DB: DBConfig{
			Host:     os.Getenv("DB_HOSTNAME"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: os.Getenv("DB_DBNAME"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			Schema:   getEnv("DB_SCHEMA", "public"),
		},
	}

	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	} else {
		cfg.Port = 1337
	}

	if port, err := strconv.Atoi(os.Getenv("DB_PORT")); err == nil {
		cfg.DB.Port = port
	} else {
		cfg.DB.Port = 5432
	}

	switch cfg.ImageProvider {
	case "falai":
		if cfg.FalAPIKey == "" {
			return nil, fmt.Errorf("FAL_API_KEY is required")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
	default:
		return nil, fmt.Errorf("unknown IMAGE_PROVIDER %q", cfg.ImageProvider)
	}

	if cfg.Storage.BaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.Storage.ServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}

	return cfg, nil
}

// Development reports whether the app runs in development mode. Error
// responses carry extra detail in this mode only.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode, c.DB.Schema)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
