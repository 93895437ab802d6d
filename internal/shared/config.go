package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	PlacesBase string
	PlacesKey  string
	GeminiBase string
	GeminiKey  string

	// Pipeline tuning.
	SimThreshold float64
	PlaceCap     int
	PageDelay    time.Duration

	CacheTTL    time.Duration
	JWTSecret   string
	MaxInflight int
	CORSOrigins []string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/matzip?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		PlacesBase:   env("PLACES_BASE_URL", "https://places.googleapis.com/v1"),
		PlacesKey:    env("PLACES_API_KEY", ""),
		GeminiBase:   env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiKey:    env("GEMINI_API_KEY", ""),
		SimThreshold: atof("SIM_THRESHOLD", 0.01),
		PlaceCap:     atoi("PLACE_CAP", 150),
		PageDelay:    time.Duration(atoi("PAGE_DELAY_MS", 1000)) * time.Millisecond,
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		JWTSecret:    env("JWT_SECRET", ""),
		MaxInflight:  atoi("MAX_INFLIGHT", 4),
		CORSOrigins:  strings.Split(env("CORS_ORIGINS", "http://localhost:3000"), ","),
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("PLACES_API_KEY is empty; place search will return no results")
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty; semantic ranking and review analysis disabled")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; using an insecure default")
		c.JWTSecret = "dev-secret-change-me"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
