package config

import (
	"testing"
	"time"

	"tripdeck/pricing"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != ":8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.CatalogSource != SourceFile || cfg.CatalogFile != "data/catalog.json" {
		t.Errorf("catalog source = %q %q", cfg.CatalogSource, cfg.CatalogFile)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.EstimateRates != pricing.DefaultEstimateRates {
		t.Errorf("EstimateRates = %+v", cfg.EstimateRates)
	}
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":                ":9000",
		"CATALOG_SOURCE":      "postgres",
		"DATABASE_URL":        "postgres://localhost/kutch",
		"CATALOG_CACHE_TTL":   "30s",
		"ESTIMATE_SEDAN_RATE": "3200",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != ":9000" || cfg.CacheTTL != 30*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.EstimateRates.Sedan != 3200 || cfg.EstimateRates.Van != pricing.DefaultEstimateRates.Van {
		t.Errorf("rates = %+v", cfg.EstimateRates)
	}
}

func TestInvalid(t *testing.T) {
	bad := []map[string]string{
		{"CATALOG_SOURCE": "sqlite"},
		{"CATALOG_SOURCE": "postgres"},
		{"CATALOG_SOURCE": "mongo"},
		{"CATALOG_CACHE_TTL": "ten"},
		{"ESTIMATE_MUV_RATE": "-1"},
		{"PDF_PER_MINUTE": "many"},
	}
	for _, env := range bad {
		if _, err := FromEnv(envOf(env)); err == nil {
			t.Errorf("FromEnv(%v) succeeded, want error", env)
		}
	}
}
