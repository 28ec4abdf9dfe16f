package extract

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

// ErrRejected marks a fragment that does not make a usable record.
// Callers drop it silently.
var ErrRejected = errors.New("record rejected")

type Obituaries struct {
	name  Chain
	age   Chain
	date  Chain
	addrs []*regexp.Regexp

	maxPerPattern int
	maxHints      int
}

func NewObituaries(cfg config.ObituaryExtract) (*Obituaries, error) {
	ages, err := compileAll(cfg.AgePatterns)
	if err != nil {
		return nil, fmt.Errorf("age patterns: %w", err)
	}
	dates, err := compileAll(cfg.DatePatterns)
	if err != nil {
		return nil, fmt.Errorf("date patterns: %w", err)
	}
	addrs, err := compileAll(cfg.AddressPattern)
	if err != nil {
		return nil, fmt.Errorf("address patterns: %w", err)
	}

	nameRules := make([]Rule, 0, len(cfg.NameSelectors)+1)
	for _, css := range cfg.NameSelectors {
		nameRules = append(nameRules, Selector(css))
	}
	nameRules = append(nameRules, Line(0))

	return &Obituaries{
		name:          Chain{Rules: nameRules, MinLen: cfg.NameMinLen},
		age:           Chain{Rules: regexRules(ages), Default: domain.UnknownAge},
		date:          Chain{Rules: regexRules(dates), Default: domain.RecentDeathDate},
		addrs:         addrs,
		maxPerPattern: cfg.MaxPerPattern,
		maxHints:      cfg.MaxHints,
	}, nil
}

// Extract builds an unscored obituary lead. The potential score is left at
// zero for the scoring engine to fill in.
func (o *Obituaries) Extract(f domain.RawFragment) (domain.InheritanceLead, error) {
	in := NewInput(f)

	name, ok := o.name.First(in)
	if !ok {
		return domain.InheritanceLead{}, fmt.Errorf("%w: no deceased name", ErrRejected)
	}

	scraped := f.FetchedAt
	if scraped.IsZero() {
		scraped = time.Now().UTC()
	}

	return domain.InheritanceLead{
		DeceasedName: name,
		Age:          o.age.Eval(in),
		DeathDate:    o.date.Eval(in),
		City:         f.City,
		AddressHints: o.AddressHints(in.fullText()),
		Source:       f.Label,
		ScrapedAt:    scraped,
	}, nil
}

// AddressHints collects up to maxPerPattern street-like matches per pattern,
// in pattern order, and keeps the first maxHints overall.
func (o *Obituaries) AddressHints(text string) domain.AddressHints {
	var out domain.AddressHints
	for _, re := range o.addrs {
		n := o.maxPerPattern
		if n <= 0 {
			n = -1
		}
		out = append(out, re.FindAllString(text, n)...)
	}
	if o.maxHints > 0 && len(out) > o.maxHints {
		out = out[:o.maxHints]
	}
	return out
}
