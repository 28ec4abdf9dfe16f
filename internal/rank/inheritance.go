package rank

import (
	"strconv"
	"strings"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

type InheritanceScorer struct {
	Cfg config.InheritanceScoring
}

func (s InheritanceScorer) Score(lead domain.InheritanceLead) (int, []string) {
	score := s.Cfg.Base
	var tags []string

	if age, err := strconv.Atoi(strings.TrimSpace(lead.Age)); err == nil {
		for _, tier := range s.Cfg.AgeTiers {
			if age >= tier.Min {
				score += tier.Weight
				tags = append(tags, "age_"+strconv.Itoa(tier.Min)+"_plus")
				break
			}
		}
	}

	if len(lead.AddressHints) > 0 {
		score += s.Cfg.HintWeight
		tags = append(tags, "address_hint")
		if len(lead.AddressHints.Joined()) > s.Cfg.LongHintChars {
			score += s.Cfg.LongHintWeight
			tags = append(tags, "detailed_address")
		}
	}

	city := strings.ToLower(strings.TrimSpace(lead.City))
	for _, c := range s.Cfg.HighValueCities {
		if strings.ToLower(strings.TrimSpace(c)) == city {
			score += s.Cfg.HighValueWeight
			tags = append(tags, "high_value_city")
			break
		}
	}

	return Clamp(score), tags
}

func ScoreInheritance(s Scorer[domain.InheritanceLead], leads []domain.InheritanceLead) []domain.InheritanceLead {
	out := make([]domain.InheritanceLead, len(leads))
	for i, l := range leads {
		l.PropertyPotentialScore, l.Tags = s.Score(l)
		out[i] = l
	}
	return out
}
