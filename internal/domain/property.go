package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type PropertyType string

const (
	SingleFamily PropertyType = "Single Family"
	Condo        PropertyType = "Condo"
	Townhouse    PropertyType = "Townhouse"
)

var PropertyTypes = []PropertyType{SingleFamily, Condo, Townhouse}

type LeadQuality string

const (
	QualityHigh   LeadQuality = "High"
	QualityMedium LeadQuality = "Medium"
)

// HighValueThreshold separates High from Medium lead quality.
const HighValueThreshold = 400000

const StatusInherited = "Inherited - Potential Sale"

func QualityForValue(value int) LeadQuality {
	if value > HighValueThreshold {
		return QualityHigh
	}
	return QualityMedium
}

type Relationship string

const (
	Son      Relationship = "Son"
	Daughter Relationship = "Daughter"
	Spouse   Relationship = "Spouse"
	Sibling  Relationship = "Sibling"
)

var Relationships = []Relationship{Son, Daughter, Spouse, Sibling}

type HeirContact struct {
	Name         string
	Phone        string
	Relationship Relationship
	Confidence   int
}

type PropertyRecord struct {
	OwnerName      string
	Address        string
	City           string
	EstimatedValue int
	PropertyType   PropertyType
	Status         string
	UrgencyScore   int
	LeadQuality    LeadQuality
	FoundAt        time.Time

	// Filled in from the obituary that led to this property.
	DeceasedAge            string
	DeathDate              string
	ObituarySource         string
	PropertyPotentialScore int
	HeirContacts           []HeirContact
	LeadType               string
}

// Enrich returns a copy of p carrying the obituary context and contacts.
func (p PropertyRecord) Enrich(obit InheritanceLead, contacts []HeirContact) PropertyRecord {
	out := p
	out.DeceasedAge = obit.Age
	out.DeathDate = obit.DeathDate
	out.ObituarySource = obit.Source
	out.PropertyPotentialScore = obit.PropertyPotentialScore
	out.HeirContacts = append([]HeirContact(nil), contacts...)
	out.LeadType = LeadTypeInheritance
	return out
}

// FlattenContacts renders contacts as "Name (Phone); Name (Phone)".
func FlattenContacts(cs []HeirContact) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, c.Phone))
	}
	return strings.Join(parts, "; ")
}

var reFlatContact = regexp.MustCompile(`^(.*?) \((.*)\)$`)

// ParseContacts reverses FlattenContacts. Relationship and confidence
// are not part of the flattened form and come back zero.
func ParseContacts(s string) []HeirContact {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []HeirContact
	for _, part := range strings.Split(s, "; ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := reFlatContact.FindStringSubmatch(part); m != nil {
			out = append(out, HeirContact{Name: m[1], Phone: m[2]})
			continue
		}
		out = append(out, HeirContact{Name: part})
	}
	return out
}
