// Package export writes ranked leads to CSV files with a fixed column order
// and reads them back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"leadflow-engine/internal/domain"
)

var (
	InvestorColumns = []string{
		"name", "title", "location", "profile_url", "search_term",
		"target_city", "quality_score", "lead_type", "scraped_at",
	}
	PropertyColumns = []string{
		"owner_name", "address", "city", "estimated_value", "property_type",
		"status", "urgency_score", "lead_quality", "deceased_age", "death_date",
		"property_potential_score", "heir_contacts", "found_at",
	}
	ObituaryColumns = []string{
		"deceased_name", "age", "death_date", "city", "address_hints",
		"property_potential_score", "source", "scraped_at",
	}
)

const timeFormat = time.RFC3339Nano

func InvestorsPath(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("leadflow_investors_%d.csv", at.Unix()))
}

func PropertiesPath(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("leadflow_inheritance_%d.csv", at.Unix()))
}

func ObituariesPath(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("leadflow_obituaries_%d.csv", at.Unix()))
}

func investorRow(l domain.InvestorLead) []string {
	return []string{
		l.Name, l.Title, l.Location, l.ProfileURL, l.SearchTerm,
		l.TargetCity, strconv.Itoa(l.QualityScore), l.LeadType, l.ScrapedAt.Format(timeFormat),
	}
}

func propertyRow(p domain.PropertyRecord) []string {
	return []string{
		p.OwnerName, p.Address, p.City, strconv.Itoa(p.EstimatedValue), string(p.PropertyType),
		p.Status, strconv.Itoa(p.UrgencyScore), string(p.LeadQuality), p.DeceasedAge, p.DeathDate,
		strconv.Itoa(p.PropertyPotentialScore), domain.FlattenContacts(p.HeirContacts), p.FoundAt.Format(timeFormat),
	}
}

func obituaryRow(o domain.InheritanceLead) []string {
	return []string{
		o.DeceasedName, o.Age, o.DeathDate, o.City, o.AddressHints.Joined(),
		strconv.Itoa(o.PropertyPotentialScore), o.Source, o.ScrapedAt.Format(timeFormat),
	}
}

func WriteInvestors(path string, leads []domain.InvestorLead) error {
	return writeFile(path, InvestorColumns, len(leads), func(i int) []string { return investorRow(leads[i]) })
}

func WriteProperties(path string, props []domain.PropertyRecord) error {
	return writeFile(path, PropertyColumns, len(props), func(i int) []string { return propertyRow(props[i]) })
}

func WriteObituaries(path string, obits []domain.InheritanceLead) error {
	return writeFile(path, ObituaryColumns, len(obits), func(i int) []string { return obituaryRow(obits[i]) })
}

// writeFile writes to a temp file next to path and renames it into place.
func writeFile(path string, header []string, n int, row func(int) []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := writeRows(f, header, n, row); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeRows(w io.Writer, header []string, n int, row func(int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range n {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
