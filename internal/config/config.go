package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")

type Config struct {
	DatabaseURL string
	Port        int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// "disk" or "minio"
	StorageBackend string
	UploadDir      string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SweepOrphans  bool
	SweepInterval time.Duration
	SweepMinAge   time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s, using default %d", key, def)
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, def)
	}
	return def
}

// Load reads configuration from the environment, loading a .env file first if
// one exists. DATABASE_URL is the only required setting.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           getenvInt("PORT", 8080),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getenvInt("REDIS_DB", 0),
		StorageBackend: getenv("STORAGE_BACKEND", "disk"),
		UploadDir:      getenv("UPLOAD_DIR", "public/images"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getenv("MINIO_BUCKET", "product-images"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		SweepOrphans:   os.Getenv("SWEEP_ORPHANS") == "true",
		SweepInterval:  getenvDuration("SWEEP_INTERVAL", 6*time.Hour),
		SweepMinAge:    getenvDuration("SWEEP_MIN_AGE", time.Hour),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}
