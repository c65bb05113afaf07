package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type Config struct {
	Port           string
	AllowedOrigin  string
	StoreBackend   string
	DataDir        string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisPrefix    string
	MongoURI       string
	MongoDBName    string
	Timezone       string
	ExportDir      string
	DailyCloseCron string
	LogLevel       string
}

// Load reads the environment, after merging envFile (or ./.env when empty)
// into it. A missing env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		redisDB = 0
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		DataDir:        getEnv("DATA_DIR", "data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		RedisPrefix:    getEnv("REDIS_PREFIX", "salon:"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		MongoDBName:    getEnv("MONGODB_DB_NAME", "salon"),
		Timezone:       getEnv("TIMEZONE", "UTC"),
		ExportDir:      strings.TrimSpace(os.Getenv("EXPORT_DIR")),
		DailyCloseCron: getEnv("DAILY_CLOSE_CRON", "55 23 * * *"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the chosen backend has its connection settings and
// that the timezone and cron expression parse.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must be provided")
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return errors.New("DATA_DIR must be provided for the file backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR must be provided for the redis backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be provided for the postgres backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided for the mongo backend")
		}
		if c.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	if _, err := cron.ParseStandard(c.DailyCloseCron); err != nil {
		return fmt.Errorf("invalid DAILY_CLOSE_CRON %q: %w", c.DailyCloseCron, err)
	}
	return nil
}

// Location is the business location. Validate guarantees it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
