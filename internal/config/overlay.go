// config/overlay.go
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// OverlayEnv applies LEADFLOW_* overrides on top of a loaded config.
// getenv is os.Getenv in production.
func OverlayEnv(cfg *Config, getenv func(string) string) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"LEADFLOW_MAX_INVESTORS_PER_CITY", &cfg.Investors.PerCity},
		{"LEADFLOW_MAX_CITIES_PER_RUN", &cfg.Investors.CitiesPerRun},
		{"LEADFLOW_MAX_PROPERTIES_PER_CITY", &cfg.Inheritance.MaxPropertiesPerCity},
		{"LEADFLOW_MIN_PROPERTY_POTENTIAL", &cfg.Inheritance.MinPropertyPotential},
		{"LEADFLOW_HIGH_QUALITY_SCORE", &cfg.Report.HighQuality},
		{"LEADFLOW_MEDIUM_QUALITY_SCORE", &cfg.Report.MediumQuality},
	}
	for _, it := range ints {
		raw := strings.TrimSpace(getenv(it.key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", it.key, err)
		}
		*it.dst = n
	}

	if v := strings.TrimSpace(getenv("LEADFLOW_DATA_DIR")); v != "" {
		cfg.App.DataDir = v
	}
	if v := strings.TrimSpace(getenv("LEADFLOW_FETCH_MODE")); v != "" {
		cfg.Fetch.Mode = v
	}
	if v := strings.TrimSpace(getenv("LEADFLOW_SEED")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LEADFLOW_SEED: %w", err)
		}
		cfg.Enrichment.Seed = n
	}
	return nil
}
