package rank

import (
	"cmp"
	"slices"

	"leadflow-engine/internal/domain"
)

// CompositeKey orders enriched properties: urgency, value in units of
// 100k and the obituary's potential score.
func CompositeKey(p domain.PropertyRecord) float64 {
	return 0.4*float64(p.UrgencyScore) +
		0.3*(float64(p.EstimatedValue)/100000) +
		0.3*float64(p.PropertyPotentialScore)
}

// RankInvestors sorts a copy by quality score, highest first. Equal scores
// keep discovery order.
func RankInvestors(leads []domain.InvestorLead) []domain.InvestorLead {
	out := slices.Clone(leads)
	slices.SortStableFunc(out, func(a, b domain.InvestorLead) int {
		return cmp.Compare(b.QualityScore, a.QualityScore)
	})
	return out
}

// RankProperties sorts a copy by CompositeKey, highest first, keeping the
// relative order of equal keys.
func RankProperties(props []domain.PropertyRecord) []domain.PropertyRecord {
	out := slices.Clone(props)
	slices.SortStableFunc(out, func(a, b domain.PropertyRecord) int {
		return cmp.Compare(CompositeKey(b), CompositeKey(a))
	})
	return out
}

// Top returns at most n leading elements of a ranked slice.
func Top[T any](ranked []T, n int) []T {
	if n < 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
