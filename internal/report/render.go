package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

const rule = "============================================================"

func money(n int) string {
	return "$" + humanize.Comma(int64(n))
}

const timeLayout = "2006-01-02 15:04:05"

func RenderInvestors(w io.Writer, s InvestorSummary) error {
	var b strings.Builder
	b.WriteString("LeadFlow - Investor Hunt Summary Report\n")
	b.WriteString(rule + "\n\n")

	if s.Total == 0 {
		b.WriteString("No investors found in this run.\n")
	} else {
		fmt.Fprintf(&b, "RESULTS OVERVIEW:\n")
		fmt.Fprintf(&b, "- Total Investors Found: %d\n", s.Total)
		fmt.Fprintf(&b, "- High Quality Leads (%d+ score): %d\n", s.HighQuality, s.High)
		fmt.Fprintf(&b, "- Medium Quality Leads (%d-%d score): %d\n", s.MediumQuality, s.HighQuality-1, s.Medium)
		fmt.Fprintf(&b, "- Average Quality Score: %.1f\n\n", s.MeanScore)

		fmt.Fprintf(&b, "REVENUE POTENTIAL:\n")
		fmt.Fprintf(&b, "- High Quality Leads: %s (@%s each)\n", money(s.HighRevenue), money(s.Rates.High))
		fmt.Fprintf(&b, "- Medium Quality Leads: %s (@%s each)\n", money(s.MediumRevenue), money(s.Rates.Other))
		fmt.Fprintf(&b, "- Total Market Value: %s\n\n", money(s.Revenue))

		fmt.Fprintf(&b, "TOP %d HIGHEST QUALITY LEADS:\n", len(s.Top))
		for i, l := range s.Top {
			fmt.Fprintf(&b, "%d. %s (Score: %d)\n   %s - %s\n", i+1, l.Name, l.QualityScore, l.Title, l.Location)
		}
	}

	fmt.Fprintf(&b, "\nGenerated by LeadFlow - %s\n", s.GeneratedAt.Format(timeLayout))
	_, err := io.WriteString(w, b.String())
	return err
}

func RenderProperties(w io.Writer, s PropertySummary) error {
	var b strings.Builder
	b.WriteString("LeadFlow - Inheritance Property Report\n")
	b.WriteString(rule + "\n\n")

	if s.Total == 0 {
		b.WriteString("No inheritance properties found in this run.\n")
	} else {
		fmt.Fprintf(&b, "ANALYSIS SUMMARY:\n")
		fmt.Fprintf(&b, "- Total Properties Discovered: %d\n", s.Total)
		fmt.Fprintf(&b, "- Total Estimated Value: %s\n", money(s.TotalValue))
		fmt.Fprintf(&b, "- Average Property Value: %s\n", money(s.MeanValue))
		fmt.Fprintf(&b, "- Average Potential Score: %.1f\n", s.MeanPotential)
		fmt.Fprintf(&b, "- High-Value Properties (>$400K): %d\n", s.HighValue)
		fmt.Fprintf(&b, "- High-Urgency Leads: %d\n", s.HighUrgency)
		fmt.Fprintf(&b, "- Heir Contacts: %d\n\n", s.HeirContacts)

		fmt.Fprintf(&b, "TOP OPPORTUNITIES:\n")
		for i, p := range s.Top {
			fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Address, money(p.EstimatedValue))
			fmt.Fprintf(&b, "   Owner: %s (Age: %s)\n", p.OwnerName, p.DeceasedAge)
			fmt.Fprintf(&b, "   Urgency: %d/10 | Quality: %s\n", p.UrgencyScore, p.LeadQuality)
			fmt.Fprintf(&b, "   Heir Contacts: %d found\n", len(p.HeirContacts))
		}

		fmt.Fprintf(&b, "\nREVENUE POTENTIAL:\n")
		fmt.Fprintf(&b, "- High-Value Properties: %s (@%s per lead)\n", money(s.HighRevenue), money(s.Rates.High))
		fmt.Fprintf(&b, "- Standard Properties: %s (@%s per lead)\n", money(s.StandardRevenue), money(s.Rates.Other))
		fmt.Fprintf(&b, "- Total Market Value: %s\n\n", money(s.Revenue))

		b.WriteString("RECOMMENDATIONS:\n")
		b.WriteString("1. Prioritize high-urgency leads for immediate outreach\n")
		b.WriteString("2. Focus on properties over $400K for premium pricing\n")
		b.WriteString("3. Contact heirs within 30 days of the death date\n")
		b.WriteString("4. Use the listed heir contacts for direct outreach\n")
	}

	fmt.Fprintf(&b, "\nGenerated by LeadFlow - %s\n", s.GeneratedAt.Format(timeLayout))
	_, err := io.WriteString(w, b.String())
	return err
}

// Save renders into dir/name, replacing any previous report.
func Save(dir, name string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
