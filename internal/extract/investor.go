package extract

import (
	"fmt"
	"time"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

type Investors struct {
	name     Chain
	title    Chain
	location Chain
	link     Chain
}

func NewInvestors(cfg config.InvestorExtract) *Investors {
	return &Investors{
		name:     Chain{Rules: []Rule{Selector(cfg.NameSelector), Line(0)}, MinLen: cfg.NameMinLen},
		title:    Chain{Rules: []Rule{Selector(cfg.TitleSelector), Line(1)}},
		location: Chain{Rules: []Rule{Selector(cfg.LocationSelector), Line(2)}},
		link:     Chain{Rules: []Rule{SelectorAttr(cfg.LinkSelector, "href")}},
	}
}

// Extract builds an unscored investor lead from one profile card. The
// location falls back to the city the search targeted.
func (x *Investors) Extract(f domain.RawFragment) (domain.InvestorLead, error) {
	in := NewInput(f)

	name, ok := x.name.First(in)
	if !ok {
		return domain.InvestorLead{}, fmt.Errorf("%w: no usable name", ErrRejected)
	}
	title, ok := x.title.First(in)
	if !ok {
		return domain.InvestorLead{}, fmt.Errorf("%w: no title for %q", ErrRejected, name)
	}

	location := x.location.Eval(in)
	if location == "" {
		location = f.City
	}

	scraped := f.FetchedAt
	if scraped.IsZero() {
		scraped = time.Now().UTC()
	}

	return domain.InvestorLead{
		Name:       name,
		Title:      title,
		Location:   location,
		ProfileURL: x.link.Eval(in),
		SearchTerm: f.Label,
		TargetCity: f.City,
		LeadType:   domain.LeadTypeInvestor,
		ScrapedAt:  scraped,
	}, nil
}
