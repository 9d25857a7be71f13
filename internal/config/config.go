package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// app config
	APP_PORT string
	// database config
	DB_DRIVER            string
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_PATH              string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
	// media config
	MEDIA_ROOT      string
	MEDIA_BASE_URL  string
	PHOTO_MAX_BYTES int64
	// search index config, empty url disables indexing
	ELASTIC_URL   string
	ELASTIC_INDEX string
	// import history config, empty project disables it
	DATASTORE_PROJECT_ID string
	// statistics
	RECENT_WINDOW time.Duration
	RECENT_LIMIT  int
}

// LoadEnvConfig reads .env files (if any) followed by the process environment.
func LoadEnvConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		DB_DRIVER:            strings.ToLower(getEnvString("DB_DRIVER", "sqlite")),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "skilltrack"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_PATH:              getEnvString("DB_PATH", "skilltrack.sqlite"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
		MEDIA_ROOT:           getEnvString("MEDIA_ROOT", "media"),
		MEDIA_BASE_URL:       getEnvString("MEDIA_BASE_URL", "/media"),
		PHOTO_MAX_BYTES:      int64(getEnvInt("PHOTO_MAX_BYTES", 5*1024*1024)),
		ELASTIC_URL:          getEnvString("ELASTIC_URL", ""),
		ELASTIC_INDEX:        getEnvString("ELASTIC_INDEX", "employees"),
		DATASTORE_PROJECT_ID: getEnvString("DATASTORE_PROJECT_ID", ""),
		RECENT_WINDOW:        getEnvDuration("RECENT_WINDOW", 30*24*time.Hour),
		RECENT_LIMIT:         getEnvInt("RECENT_LIMIT", 10),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
