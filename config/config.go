package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Keys     APIKeys
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type APIKeys struct {
	Gemini   string
	Weather  string
	Geoapify string
}

type AppConfig struct {
	Environment           string
	Version               string
	FrontendOrigin        string
	NotifyIntervalSeconds int
	WeatherTTLMinutes     int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "agriplan"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Keys: APIKeys{
			Gemini:   getEnv("API_KEY_GEMINI", ""),
			Weather:  getEnv("API_KEY_WEATHER", ""),
			Geoapify: getEnv("API_KEY_GEOAPIFY", ""),
		},
		App: AppConfig{
			Environment:           getEnv("APP_ENV", "development"),
			Version:               getEnv("APP_VERSION", "1.0.0"),
			FrontendOrigin:        getEnv("FRONTEND_ORIGIN", "https://gquyenhsb.github.io"),
			NotifyIntervalSeconds: getEnvAsInt("NOTIFY_INTERVAL_SECONDS", 60),
			WeatherTTLMinutes:     getEnvAsInt("WEATHER_TTL_MINUTES", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Keys.Gemini == "" {
		return fmt.Errorf("API_KEY_GEMINI is required")
	}
	if c.Keys.Weather == "" {
		return fmt.Errorf("API_KEY_WEATHER is required")
	}
	if c.Keys.Geoapify == "" {
		return fmt.Errorf("API_KEY_GEOAPIFY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
