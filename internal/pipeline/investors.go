package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"leadflow-engine/internal/domain"
	"leadflow-engine/internal/extract"
	"leadflow-engine/internal/fetch"
	"leadflow-engine/internal/rank"
)

type InvestorResult struct {
	Cities []string
	Leads  []domain.InvestorLead // ranked
	Stats  Stats
}

// RunInvestors searches each city for the first terms_per_city search terms.
func (p *Pipeline) RunInvestors(ctx context.Context, cities []string) (InvestorResult, error) {
	if p.Fetcher == nil {
		return InvestorResult{}, ErrNoFetcher
	}
	cfg := p.Cfg
	log := p.logger().Named("investors")

	cities = PickCities(p.Rand, cfg.Investors.TargetCities, cfg.Investors.CitiesPerRun, cities)
	terms := cfg.Investors.SearchTerms
	if n := cfg.Investors.TermsPerCity; n > 0 && len(terms) > n {
		terms = terms[:n]
	}
	perTerm := 0
	if len(terms) > 0 {
		perTerm = max(cfg.Investors.PerCity/len(terms), 1)
	}

	var queries []fetch.Query
	for _, city := range cities {
		for _, term := range terms {
			queries = append(queries, fetch.Query{Kind: fetch.KindInvestor, City: city, Term: term, Limit: perTerm})
		}
	}
	log.Info("run", zap.Strings("cities", cities), zap.Strings("terms", terms), zap.Int("per_term", perTerm))

	batches := p.fetchAll(ctx, queries)

	res := InvestorResult{Cities: cities}
	res.Stats.countBatches(batches)

	x := extract.NewInvestors(cfg.Extract.Investor)
	scorer := rank.InvestorScorer{Cfg: cfg.Scoring.Investor}
	seen := map[dedupeKey]bool{}

	var leads []domain.InvestorLead
	perCity := map[string]int{}
	for _, b := range batches {
		for _, f := range b.frags {
			lead, err := x.Extract(f)
			if err != nil {
				if !errors.Is(err, extract.ErrRejected) {
					log.Warn("extract", zap.Error(err))
				}
				res.Stats.Rejected++
				continue
			}
			if cfg.Pipeline.Dedupe {
				k := keyOf(lead.Name, lead.TargetCity)
				if seen[k] {
					res.Stats.Duplicates++
					continue
				}
				seen[k] = true
			}
			lead.QualityScore, lead.Tags = scorer.Score(lead)
			leads = append(leads, lead)
			perCity[b.query.City]++
		}
	}
	for _, city := range cities {
		log.Info("city done", zap.String("city", city), zap.Int("leads", perCity[city]))
	}

	res.Leads = rank.RankInvestors(leads)
	res.Stats.Kept = len(res.Leads)
	return res, ctx.Err()
}
