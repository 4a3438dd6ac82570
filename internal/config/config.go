package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Port      string
	DBDriver  string // sqlite | postgres
	DBDSN     string
	LogFile   string
	LogLevel  string
	RedisAddr string
	CacheTTL  time.Duration
	SeedFile  string
}

// Load reads .env files (when present) and then the process environment.
// Variables already set in the environment win over file values.
func Load() Config {
	env := getenv("APP_ENV", "development")
	if env == "local" {
		_ = godotenv.Load(".env.local")
	}
	_ = godotenv.Load()

	driver := strings.ToLower(getenv("DB_DRIVER", "sqlite"))
	if driver == "postgresql" || driver == "pq" {
		driver = "postgres"
	}
	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "5m"))
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return Config{
		Env:       env,
		Port:      getenv("PORT", "8080"),
		DBDriver:  driver,
		DBDSN:     getenv("DB_DSN", "julex.db"), // sqlite file in project root
		LogFile:   os.Getenv("LOG_FILE"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		CacheTTL:  ttl,
		SeedFile:  os.Getenv("SEED_FILE"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
