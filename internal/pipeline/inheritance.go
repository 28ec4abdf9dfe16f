package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
	"leadflow-engine/internal/extract"
	"leadflow-engine/internal/fetch"
	"leadflow-engine/internal/rank"
)

type InheritanceResult struct {
	Cities     []string
	Obituaries []domain.InheritanceLead // scored, above the potential threshold
	Properties []domain.PropertyRecord  // ranked
	Stats      Stats
}

func keepObituary(cfg config.Config, o domain.InheritanceLead) (keep bool, reason string) {
	if o.PropertyPotentialScore < cfg.Inheritance.MinPropertyPotential {
		return false, "low_potential"
	}
	return true, ""
}

// RunInheritance reads obituary listings per city and looks up properties
// for the deceased with enough potential, until the city's cap is reached.
func (p *Pipeline) RunInheritance(ctx context.Context, cities []string) (InheritanceResult, error) {
	if p.Fetcher == nil {
		return InheritanceResult{}, ErrNoFetcher
	}
	if p.Provider == nil {
		return InheritanceResult{}, errors.New("no enrichment provider")
	}
	cfg := p.Cfg
	log := p.logger().Named("inheritance")

	cities = PickCities(p.Rand, cfg.Inheritance.TargetCities, cfg.Inheritance.CitiesPerRun, cities)
	queries := make([]fetch.Query, 0, len(cities))
	for _, city := range cities {
		queries = append(queries, fetch.Query{
			Kind:  fetch.KindObituary,
			City:  city,
			Label: cfg.Inheritance.Source,
			Limit: cfg.Inheritance.MaxCardsPerCity,
		})
	}
	log.Info("run", zap.Strings("cities", cities))

	batches := p.fetchAll(ctx, queries)

	res := InheritanceResult{Cities: cities}
	res.Stats.countBatches(batches)

	x, err := extract.NewObituaries(cfg.Extract.Obituary)
	if err != nil {
		return res, fmt.Errorf("obituary rules: %w", err)
	}
	scorer := rank.InheritanceScorer{Cfg: cfg.Scoring.Inheritance}
	seen := map[dedupeKey]bool{}
	limit := cfg.Inheritance.MaxPropertiesPerCity

	var props []domain.PropertyRecord
cities:
	for _, b := range batches {
		city := b.query.City
		found := 0
		for _, f := range b.frags {
			if limit > 0 && found >= limit {
				break
			}
			if ctx.Err() != nil {
				break cities
			}

			obit, err := x.Extract(f)
			if err != nil {
				res.Stats.Rejected++
				continue
			}
			obit.PropertyPotentialScore, obit.Tags = scorer.Score(obit)

			if keep, why := keepObituary(cfg, obit); !keep {
				log.Debug("skipped", zap.String("reason", why), zap.String("name", obit.DeceasedName),
					zap.Int("score", obit.PropertyPotentialScore))
				res.Stats.BelowThreshold++
				continue
			}
			if cfg.Pipeline.Dedupe {
				k := keyOf(obit.DeceasedName, obit.City)
				if seen[k] {
					res.Stats.Duplicates++
					continue
				}
				seen[k] = true
			}
			res.Obituaries = append(res.Obituaries, obit)

			candidates, err := p.Provider.FindProperties(ctx, obit.DeceasedName, city)
			if err != nil {
				log.Warn("property lookup", zap.String("name", obit.DeceasedName), zap.Error(err))
				res.Stats.EnrichFailures++
				continue
			}
			for _, prop := range candidates {
				if limit > 0 && found >= limit {
					break
				}
				contacts, err := p.Provider.FindHeirContacts(ctx, obit.DeceasedName, city)
				if err != nil {
					log.Warn("contact lookup", zap.String("name", obit.DeceasedName), zap.Error(err))
					res.Stats.EnrichFailures++
					contacts = nil
				}
				if prop.FoundAt.IsZero() {
					prop.FoundAt = p.now()
				}
				props = append(props, prop.Enrich(obit, contacts))
				found++
			}
		}
		log.Info("city done", zap.String("city", city), zap.Int("properties", found))
	}

	res.Properties = rank.RankProperties(props)
	res.Stats.Kept = len(res.Properties)
	return res, ctx.Err()
}
