package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"leadflow-engine/internal/domain"
)

// ReadInvestors parses a file written by WriteInvestors. Tags are not part
// of the file and come back empty.
func ReadInvestors(path string) ([]domain.InvestorLead, error) {
	rows, err := readFile(path, InvestorColumns)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InvestorLead, 0, len(rows))
	for i, r := range rows {
		var p rowParser
		l := domain.InvestorLead{
			Name:         r[0],
			Title:        r[1],
			Location:     r[2],
			ProfileURL:   r[3],
			SearchTerm:   r[4],
			TargetCity:   r[5],
			QualityScore: p.atoi(r[6]),
			LeadType:     r[7],
			ScrapedAt:    p.timestamp(r[8]),
		}
		if p.err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, p.err)
		}
		out = append(out, l)
	}
	return out, nil
}

// ReadProperties parses a file written by WriteProperties. Heir contacts
// keep only name and phone.
func ReadProperties(path string) ([]domain.PropertyRecord, error) {
	rows, err := readFile(path, PropertyColumns)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PropertyRecord, 0, len(rows))
	for i, r := range rows {
		var p rowParser
		rec := domain.PropertyRecord{
			OwnerName:              r[0],
			Address:                r[1],
			City:                   r[2],
			EstimatedValue:         p.atoi(r[3]),
			PropertyType:           domain.PropertyType(r[4]),
			Status:                 r[5],
			UrgencyScore:           p.atoi(r[6]),
			LeadQuality:            domain.LeadQuality(r[7]),
			DeceasedAge:            r[8],
			DeathDate:              r[9],
			PropertyPotentialScore: p.atoi(r[10]),
			HeirContacts:           domain.ParseContacts(r[11]),
			FoundAt:                p.timestamp(r[12]),
			LeadType:               domain.LeadTypeInheritance,
		}
		if p.err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, p.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func readFile(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 || !slices.Equal(rows[0], header) {
		return nil, fmt.Errorf("read %s: unexpected header", path)
	}
	return rows[1:], nil
}

// rowParser keeps the first conversion error of a row.
type rowParser struct{ err error }

func (p *rowParser) atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return n
}

func (p *rowParser) timestamp(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return t
}
