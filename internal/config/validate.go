package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a copy with trimmed, de-duplicated lists plus
// the hard errors from Validate and softer warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Investors.TargetCities = trimList(out.Investors.TargetCities)
	out.Investors.SearchTerms = trimList(out.Investors.SearchTerms)
	out.Inheritance.TargetCities = trimList(out.Inheritance.TargetCities)
	out.Scoring.Inheritance.HighValueCities = trimList(out.Scoring.Inheritance.HighValueCities)

	if err := Validate(out); err != nil {
		for _, line := range strings.Split(err.Error(), "\n- ")[1:] {
			res.addErr("%s", line)
		}
	}

	if len(out.Investors.TargetCities) == 0 {
		res.addWarn("investors.target_cities is empty; pass --city to run investor hunts.")
	}
	if len(out.Investors.SearchTerms) == 0 {
		res.addErr("investors.search_terms must have at least 1 term")
	} else if out.Investors.TermsPerCity > len(out.Investors.SearchTerms) {
		res.addWarn("investors.terms_per_city (%d) exceeds the %d configured search terms.",
			out.Investors.TermsPerCity, len(out.Investors.SearchTerms))
	}
	if len(out.Inheritance.TargetCities) == 0 {
		res.addWarn("inheritance.target_cities is empty; pass --city to run inheritance hunts.")
	}
	if out.Fetch.Mode == "chrome" && out.Fetch.RequestsPerSecond > 1 {
		res.addWarn("fetch.requests_per_second is high (%.2f) for a live browser and may trip rate limits.", out.Fetch.RequestsPerSecond)
	}
	if out.Fetch.Mode == "mailbox" {
		if strings.TrimSpace(out.Fetch.Mailbox.IMAPHost) == "" {
			res.addErr("fetch.mailbox.imap_host is required when fetch.mode=mailbox")
		}
		if strings.TrimSpace(out.Fetch.Mailbox.Username) == "" {
			res.addErr("fetch.mailbox.username is required when fetch.mode=mailbox")
		}
	}
	if out.Enrichment.Provider != "synthetic" {
		res.addErr("enrichment.provider %q is not available (only synthetic)", out.Enrichment.Provider)
	}

	// high-value city list drives both scoring and the report; warn on cities nobody targets
	targets := map[string]bool{}
	for _, c := range out.Inheritance.TargetCities {
		targets[strings.ToLower(c)] = true
	}
	for _, c := range out.Scoring.Inheritance.HighValueCities {
		if !targets[strings.ToLower(c)] {
			res.addWarn("high-value city %q is not in inheritance.target_cities", c)
		}
	}

	return out, res
}
