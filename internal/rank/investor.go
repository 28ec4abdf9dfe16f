package rank

import (
	"strings"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

type InvestorScorer struct {
	Cfg config.InvestorScoring
}

func (s InvestorScorer) Score(lead domain.InvestorLead) (int, []string) {
	score := s.Cfg.Base
	var tags []string

	w, t := applyRules(lead.Title, s.Cfg.TitleRules)
	score += w
	tags = append(tags, t...)

	w, t = applyRules(lead.Location, s.Cfg.LocationRules)
	score += w
	tags = append(tags, t...)

	term := squash(lead.SearchTerm)
	if term != "" && strings.Contains(squash(lead.Title), term) {
		score += s.Cfg.SearchTermWeight
		tags = append(tags, s.Cfg.SearchTermTag)
	}

	return Clamp(score), uniq(tags)
}

// ScoreInvestors returns copies of leads with QualityScore and Tags set.
func ScoreInvestors(s Scorer[domain.InvestorLead], leads []domain.InvestorLead) []domain.InvestorLead {
	out := make([]domain.InvestorLead, len(leads))
	for i, l := range leads {
		l.QualityScore, l.Tags = s.Score(l)
		out[i] = l
	}
	return out
}

// squash lowercases s and drops every space, so "Real Estate" matches "realestate".
func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}
