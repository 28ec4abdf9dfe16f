package rank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

func investorScorer() InvestorScorer {
	return InvestorScorer{Cfg: config.Default().Scoring.Investor}
}

func inheritanceScorer() InheritanceScorer {
	return InheritanceScorer{Cfg: config.Default().Scoring.Inheritance}
}

func TestInvestorScoreClampsAt100(t *testing.T) {
	score, tags := investorScorer().Score(domain.InvestorLead{
		Title:      "Miami Real Estate Investor & Cash Buyer",
		Location:   "Miami, FL",
		SearchTerm: "real estate investor",
	})
	assert.Equal(t, 100, score)
	assert.ElementsMatch(t, []string{"investor", "real estate", "cash buyer", "major_metro", "search_term_match"}, tags)
}

func TestInvestorScoreRules(t *testing.T) {
	cases := []struct {
		name  string
		lead  domain.InvestorLead
		score int
	}{
		{"base only", domain.InvestorLead{Title: "Nurse", Location: "Omaha, NE", SearchTerm: "fix and flip"}, 50},
		{"one keyword", domain.InvestorLead{Title: "Property Developer", Location: "Boise"}, 60},
		{"keyword counted once", domain.InvestorLead{Title: "Investor, investor, INVESTOR"}, 60},
		{"metro location", domain.InvestorLead{Title: "Nurse", Location: "Greater Chicago Area"}, 65},
		{"search term trimmed", domain.InvestorLead{Title: "Fix and Flip specialist", SearchTerm: "  fix and flip "}, 70},
		{"inner spaces ignored", domain.InvestorLead{Title: "Realestate Investor", SearchTerm: "real estate investor"}, 80},
		{"title spaces ignored", domain.InvestorLead{Title: "Fixandflip specialist", SearchTerm: "fix and flip"}, 70},
		{"search term not in title", domain.InvestorLead{Title: "Realtor", SearchTerm: "real estate wholesaler"}, 50},
		{"term plus keywords", domain.InvestorLead{Title: "Multifamily Investor", SearchTerm: "multifamily investor", Location: "Denver"}, 80},
	}
	s := investorScorer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := s.Score(tc.lead)
			assert.Equal(t, tc.score, got)
		})
	}
}

func TestInheritanceScoreExamples(t *testing.T) {
	s := inheritanceScorer()

	score, tags := s.Score(domain.InheritanceLead{Age: "72", AddressHints: domain.AddressHints{"12 Oak St"}, City: "Austin"})
	assert.Equal(t, 95, score)
	assert.Equal(t, []string{"age_70_plus", "address_hint", "high_value_city"}, tags)

	score, tags = s.Score(domain.InheritanceLead{Age: domain.UnknownAge, City: "Omaha"})
	assert.Equal(t, 30, score)
	assert.Empty(t, tags)
}

func TestInheritanceAgeTiers(t *testing.T) {
	s := inheritanceScorer()
	for age, want := range map[string]int{
		"49": 30, "50": 40, "59": 40, "60": 45, "69": 45, "70": 55, "105": 55,
		"N/A": 30, "": 30, "seventy": 30,
	} {
		got, _ := s.Score(domain.InheritanceLead{Age: age, City: "Omaha"})
		assert.Equal(t, want, got, "age %q", age)
	}
}

func TestInheritanceLongHints(t *testing.T) {
	s := inheritanceScorer()
	hints := domain.AddressHints{"1200 Oakwood Boulevard", "lived on Sycamore Ridge Estates Road"}
	require.Greater(t, len(hints.Joined()), 50)

	got, tags := s.Score(domain.InheritanceLead{Age: "81", AddressHints: hints, City: "MIAMI"})
	assert.Equal(t, 100, got, "30+25+20+15+20 clamps to 100")
	assert.Contains(t, tags, "detailed_address")

	got, _ = s.Score(domain.InheritanceLead{AddressHints: hints, City: "Tulsa"})
	assert.Equal(t, 65, got)
}

func TestScoresStayInRange(t *testing.T) {
	cfg := config.Default().Scoring.Investor
	cfg.Base = -40
	low := InvestorScorer{Cfg: cfg}
	got, _ := low.Score(domain.InvestorLead{Title: "nothing"})
	assert.Equal(t, 0, got)

	inv := investorScorer()
	inh := inheritanceScorer()
	titles := []string{"", "investor", "real estate investor developer capital properties cash buyer"}
	for _, title := range titles {
		for _, loc := range []string{"", "Miami", "Nowhere"} {
			got, _ := inv.Score(domain.InvestorLead{Title: title, Location: loc, SearchTerm: title})
			assert.GreaterOrEqual(t, got, 50)
			assert.LessOrEqual(t, got, 100)
		}
	}
	for _, age := range []string{"", "55", "99"} {
		for _, city := range []string{"austin", "omaha"} {
			got, _ := inh.Score(domain.InheritanceLead{Age: age, City: city, AddressHints: domain.AddressHints{"x"}})
			assert.GreaterOrEqual(t, got, 30)
			assert.LessOrEqual(t, got, 100)
		}
	}
}

func TestScoreInvestorsFillsScores(t *testing.T) {
	in := []domain.InvestorLead{{Title: "Investor"}, {Title: "Chef"}}
	out := ScoreInvestors(investorScorer(), in)
	assert.Equal(t, 60, out[0].QualityScore)
	assert.Equal(t, 50, out[1].QualityScore)
	assert.Zero(t, in[0].QualityScore, "input is not modified")
}

func TestCompositeKey(t *testing.T) {
	p := domain.PropertyRecord{UrgencyScore: 10, EstimatedValue: 500000, PropertyPotentialScore: 80}
	assert.InDelta(t, 4+1.5+24, CompositeKey(p), 1e-9)
}

func TestRankInvestorsStable(t *testing.T) {
	leads := []domain.InvestorLead{
		{Name: "a", QualityScore: 70},
		{Name: "b", QualityScore: 90},
		{Name: "c", QualityScore: 70},
		{Name: "d", QualityScore: 90},
		{Name: "e", QualityScore: 50},
	}
	var names []string
	for _, l := range RankInvestors(leads) {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names)
	assert.Equal(t, "a", leads[0].Name, "input order untouched")
}

func TestRankPropertiesStable(t *testing.T) {
	var props []domain.PropertyRecord
	for i := range 6 {
		props = append(props, domain.PropertyRecord{
			OwnerName:              fmt.Sprintf("p%d", i),
			UrgencyScore:           8,
			EstimatedValue:         300000,
			PropertyPotentialScore: 60,
		})
	}
	props[4].UrgencyScore = 10

	ranked := RankProperties(props)
	var names []string
	for _, p := range ranked {
		names = append(names, p.OwnerName)
	}
	assert.Equal(t, []string{"p4", "p0", "p1", "p2", "p3", "p5"}, names)
}

func TestTop(t *testing.T) {
	xs := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, Top(xs, 2))
	assert.Equal(t, xs, Top(xs, 10))
	assert.Empty(t, Top(xs, 0))
}
