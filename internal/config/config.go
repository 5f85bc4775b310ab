package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"movierec/internal/logging"

	"github.com/joho/godotenv"
)

const (
	RatingsBackendCSV   = "csv"
	RatingsBackendMongo = "mongo"
)

type Config struct {
	HTTPPort string

	MoviesCSV      string
	RatingsCSV     string
	RatingsBackend string

	MongoURI       string
	MongoDB        string
	HistoryEnabled bool

	RedisAddr string
	RedisPass string
	CacheTTL  time.Duration

	LogLevel  string
	LogFormat string

	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "5000"),

		MoviesCSV:      getEnv("MOVIES_CSV", "project.csv"),
		RatingsCSV:     getEnv("RATINGS_CSV", "ratings.csv"),
		RatingsBackend: strings.ToLower(getEnv("RATINGS_BACKEND", RatingsBackendCSV)),

		// vacío = sin Mongo (solo CSV, sin historial)
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getEnv("MONGO_DB", "movierec"),
		HistoryEnabled: getBool("HISTORY_ENABLED", false),

		// vacío = sin cache
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:  time.Duration(getInt("CACHE_TTL_SECONDS", 600)) * time.Second,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

// UsesMongo indica si algún componente necesita la conexión a Mongo.
func (c *Config) UsesMongo() bool {
	return c.RatingsBackend == RatingsBackendMongo || c.HistoryEnabled
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		logging.Info().Str("key", key).Str("default", def).Msg("[config] variable no seteada, usando valor por defecto")
		return def
	}
	return v
}

func getInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", raw).Msg("[config] entero inválido, usando valor por defecto")
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", raw).Msg("[config] booleano inválido, usando valor por defecto")
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", raw).Msg("[config] duración inválida, usando valor por defecto")
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
