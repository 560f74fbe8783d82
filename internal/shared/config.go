package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	MetricsAddr    string
	DBDriver       string
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	ConnectTimeout time.Duration
}

// Load reads .env (if present) and then the environment. DBName, DBPort and
// DBUser come from the command line and are left empty here.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be read")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	return Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "warn"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		DBDriver:       env("DB_DRIVER", "postgres"),
		DBHost:         env("DB_HOST", "localhost"),
		DBPassword:     env("DB_PASSWORD", ""),
		ConnectTimeout: time.Duration(atoi("DB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
