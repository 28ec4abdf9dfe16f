package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

var now = time.Date(2024, 7, 4, 15, 30, 0, 0, time.UTC)

func opts() Options { return OptionsFrom(config.Default()) }

func TestSummarizeInvestors(t *testing.T) {
	var leads []domain.InvestorLead
	for i, score := range []int{100, 80, 79, 60, 59, 50, 95} {
		leads = append(leads, domain.InvestorLead{Name: fmt.Sprintf("lead%d", i), QualityScore: score})
	}
	s := SummarizeInvestors(leads, opts(), now)

	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 3, s.High)
	assert.Equal(t, 2, s.Medium)
	assert.InDelta(t, 523.0/7, s.MeanScore, 1e-9)
	assert.Equal(t, 3*250, s.HighRevenue)
	assert.Equal(t, 2*150, s.MediumRevenue)
	assert.Equal(t, 1050, s.Revenue)

	require.Len(t, s.Top, 5)
	assert.Equal(t, "lead0", s.Top[0].Name)
	assert.Equal(t, "lead6", s.Top[1].Name)
	assert.Equal(t, "lead3", s.Top[4].Name)
}

func TestSummarizePropertiesIntegerMean(t *testing.T) {
	props := []domain.PropertyRecord{
		{OwnerName: "a", EstimatedValue: 400000, UrgencyScore: 9, PropertyPotentialScore: 50},
		{OwnerName: "b", EstimatedValue: 400001, UrgencyScore: 7, PropertyPotentialScore: 95,
			HeirContacts: []domain.HeirContact{{Name: "x"}, {Name: "y"}}},
		{OwnerName: "c", EstimatedValue: 250000, UrgencyScore: 10, PropertyPotentialScore: 70,
			HeirContacts: []domain.HeirContact{{Name: "z"}}},
	}
	s := SummarizeProperties(props, opts(), now)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1050001, s.TotalValue)
	assert.Equal(t, 350000, s.MeanValue)
	assert.InDelta(t, 215.0/3, s.MeanPotential, 1e-9)
	assert.Equal(t, 1, s.HighValue, "exactly 400000 is not high value")
	assert.Equal(t, 2, s.Standard)
	assert.Equal(t, 2, s.HighUrgency)
	assert.Equal(t, 3, s.HeirContacts)
	assert.Equal(t, 300+2*150, s.Revenue)
	assert.Equal(t, "b", s.Top[0].OwnerName)
}

func TestEmptySummaries(t *testing.T) {
	inv := SummarizeInvestors(nil, opts(), now)
	assert.Zero(t, inv.Total)
	assert.Zero(t, inv.MeanScore)
	assert.Empty(t, inv.Top)

	props := SummarizeProperties([]domain.PropertyRecord{}, opts(), now)
	assert.Zero(t, props.MeanValue)
	assert.Zero(t, props.Revenue)

	var buf bytes.Buffer
	require.NoError(t, RenderInvestors(&buf, inv))
	assert.Contains(t, buf.String(), "No investors found")
	assert.Contains(t, buf.String(), "2024-07-04 15:30:00")

	buf.Reset()
	require.NoError(t, RenderProperties(&buf, props))
	assert.Contains(t, buf.String(), "No inheritance properties found")
	assert.NotContains(t, buf.String(), "RECOMMENDATIONS")
}

func TestRenderInvestors(t *testing.T) {
	leads := []domain.InvestorLead{
		{Name: "Jane Doe", Title: "Real Estate Investor", Location: "Miami, FL", QualityScore: 100},
		{Name: "Carl Stone", Title: "Developer", Location: "Austin, TX", QualityScore: 65},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderInvestors(&buf, SummarizeInvestors(leads, opts(), now)))
	out := buf.String()

	assert.Contains(t, out, "- Total Investors Found: 2\n")
	assert.Contains(t, out, "- High Quality Leads (80+ score): 1\n")
	assert.Contains(t, out, "- Medium Quality Leads (60-79 score): 1\n")
	assert.Contains(t, out, "- Average Quality Score: 82.5\n")
	assert.Contains(t, out, "- High Quality Leads: $250 (@$250 each)\n")
	assert.Contains(t, out, "- Total Market Value: $400\n")
	assert.Contains(t, out, "1. Jane Doe (Score: 100)\n   Real Estate Investor - Miami, FL\n")
	assert.Contains(t, out, "2. Carl Stone (Score: 65)\n")
}

func TestRenderProperties(t *testing.T) {
	props := []domain.PropertyRecord{{
		OwnerName: "Margaret Jones", Address: "1200 Maple Ave, Miami", EstimatedValue: 1234567,
		UrgencyScore: 10, LeadQuality: domain.QualityHigh, DeceasedAge: "84", PropertyPotentialScore: 95,
		HeirContacts: []domain.HeirContact{{Name: "Sarah Jones"}},
	}}
	var buf bytes.Buffer
	require.NoError(t, RenderProperties(&buf, SummarizeProperties(props, opts(), now)))
	out := buf.String()

	assert.Contains(t, out, "- Total Estimated Value: $1,234,567\n")
	assert.Contains(t, out, "1. 1200 Maple Ave, Miami - $1,234,567\n   Owner: Margaret Jones (Age: 84)\n")
	assert.Contains(t, out, "   Urgency: 10/10 | Quality: High\n   Heir Contacts: 1 found\n")
	assert.Contains(t, out, "- High-Value Properties: $300 (@$300 per lead)\n")
	assert.Contains(t, out, "RECOMMENDATIONS:")
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path, err := Save(dir, InvestorReportFile, func(w io.Writer) error {
		return RenderInvestors(w, SummarizeInvestors(nil, opts(), now))
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "investor_hunt_report.txt"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "LeadFlow - Investor Hunt Summary Report")
}
