package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.Investors.PerCity <= 0 {
		errs = append(errs, "investors.per_city must be > 0")
	}
	if cfg.Investors.CitiesPerRun <= 0 {
		errs = append(errs, "investors.cities_per_run must be > 0")
	}
	if cfg.Investors.TermsPerCity <= 0 {
		errs = append(errs, "investors.terms_per_city must be > 0")
	}
	if cfg.Inheritance.CitiesPerRun <= 0 {
		errs = append(errs, "inheritance.cities_per_run must be > 0")
	}
	if cfg.Inheritance.MaxPropertiesPerCity <= 0 {
		errs = append(errs, "inheritance.max_properties_per_city must be > 0")
	}
	if cfg.Inheritance.MinPropertyPotential < 0 || cfg.Inheritance.MinPropertyPotential > 100 {
		errs = append(errs, "inheritance.min_property_potential must be 0..100")
	}
	if cfg.Report.MediumQuality > cfg.Report.HighQuality {
		errs = append(errs, "report.medium_quality must be <= report.high_quality")
	}
	if cfg.Pipeline.Concurrency < 1 {
		errs = append(errs, "pipeline.concurrency must be >= 1")
	}
	switch cfg.Fetch.Mode {
	case "chrome", "dir", "mailbox":
	default:
		errs = append(errs, fmt.Sprintf("fetch.mode %q must be chrome, dir or mailbox", cfg.Fetch.Mode))
	}

	// Rule helpers
	checkRules := func(name string, rules []Rule) {
		for i, r := range rules {
			if r.Tag == "" {
				errs = append(errs, fmt.Sprintf("%s[%d].tag is required", name, i))
			}
			if len(r.Any) == 0 {
				errs = append(errs, fmt.Sprintf("%s[%d].any must have at least 1 term", name, i))
			}
			for j, term := range r.Any {
				if term == "" {
					errs = append(errs, fmt.Sprintf("%s[%d].any[%d] cannot be empty", name, i, j))
				}
			}
		}
	}

	checkPatterns := func(name string, patterns []string) {
		for i, p := range patterns {
			if _, err := regexp.Compile(p); err != nil {
				errs = append(errs, fmt.Sprintf("%s[%d] does not compile: %v", name, i, err))
			}
		}
	}

	checkRules("scoring.investor.title_rules", cfg.Scoring.Investor.TitleRules)
	checkRules("scoring.investor.location_rules", cfg.Scoring.Investor.LocationRules)
	checkPatterns("extract.obituary.age_patterns", cfg.Extract.Obituary.AgePatterns)
	checkPatterns("extract.obituary.date_patterns", cfg.Extract.Obituary.DatePatterns)
	checkPatterns("extract.obituary.address_patterns", cfg.Extract.Obituary.AddressPattern)

	for i, t := range cfg.Scoring.Inheritance.AgeTiers {
		if i > 0 && t.Min >= cfg.Scoring.Inheritance.AgeTiers[i-1].Min {
			errs = append(errs, fmt.Sprintf("scoring.inheritance.age_tiers[%d].min must be below the previous tier", i))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
