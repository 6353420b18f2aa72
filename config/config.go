// Package config reads runtime settings from the environment, after loading
// a .env file when one is present.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"tripdeck/models"
	"tripdeck/pricing"
)

// Catalog sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

type Config struct {
	Port string

	CatalogSource string
	CatalogFile   string
	DatabaseURL   string
	MongoURI      string
	MongoDB       string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	Destination  string
	ShareBaseURL string
	JWTSecret    string

	SessionIdle time.Duration
	PDFPerMin   int

	EstimateRates pricing.EstimateRates
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:          get("PORT", "8080"),
		CatalogSource: get("CATALOG_SOURCE", SourceFile),
		CatalogFile:   get("CATALOG_FILE", "data/catalog.json"),
		DatabaseURL:   getenv("DATABASE_URL"),
		MongoURI:      getenv("MONGO_URI"),
		MongoDB:       get("MONGO_DB", "tripdeck"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		Destination:   get("DESTINATION", "Kutch"),
		ShareBaseURL:  getenv("SHARE_BASE_URL"),
		JWTSecret:     getenv("JWT_SECRET"),
		EstimateRates: pricing.DefaultEstimateRates,
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	var err error
	if cfg.CacheTTL, err = time.ParseDuration(get("CATALOG_CACHE_TTL", "10m")); err != nil {
		return Config{}, fmt.Errorf("CATALOG_CACHE_TTL: %w", err)
	}
	if cfg.SessionIdle, err = time.ParseDuration(get("SESSION_IDLE", "12h")); err != nil {
		return Config{}, fmt.Errorf("SESSION_IDLE: %w", err)
	}
	if cfg.PDFPerMin, err = strconv.Atoi(get("PDF_PER_MINUTE", "6")); err != nil {
		return Config{}, fmt.Errorf("PDF_PER_MINUTE: %w", err)
	}

	rates := []struct {
		key string
		dst *models.Money
	}{
		{"ESTIMATE_SEDAN_RATE", &cfg.EstimateRates.Sedan},
		{"ESTIMATE_MUV_RATE", &cfg.EstimateRates.MUV},
		{"ESTIMATE_VAN_RATE", &cfg.EstimateRates.Van},
	}
	for _, r := range rates {
		raw := getenv(r.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return Config{}, fmt.Errorf("%s: invalid rate %q", r.key, raw)
		}
		*r.dst = models.Money(v)
	}

	switch cfg.CatalogSource {
	case SourceFile:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("CATALOG_SOURCE=postgres needs DATABASE_URL")
		}
	case SourceMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("CATALOG_SOURCE=mongo needs MONGO_URI")
		}
	default:
		return Config{}, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET not set; catalog refresh uses the development secret")
	}
	return cfg, nil
}
