package domain

import (
	"strings"
	"time"
)

const (
	LeadTypeInvestor    = "LinkedIn Investor"
	LeadTypeInheritance = "Inheritance Property"

	UnknownAge      = "N/A"
	RecentDeathDate = "Recent"
)

// RawFragment is one card of text handed over by a page fetcher.
// HTML is optional; extraction falls back to Text when it is empty.
type RawFragment struct {
	Text      string
	HTML      string
	City      string
	Label     string // search term (investors) or source label (obituaries)
	FetchedAt time.Time
}

type InvestorLead struct {
	Name         string
	Title        string
	Location     string
	ProfileURL   string
	SearchTerm   string
	TargetCity   string
	QualityScore int
	Tags         []string
	LeadType     string
	ScrapedAt    time.Time
}

type InheritanceLead struct {
	DeceasedName           string
	Age                    string // digits or UnknownAge
	DeathDate              string // as written in the source or RecentDeathDate
	City                   string
	AddressHints           AddressHints
	PropertyPotentialScore int
	Tags                   []string
	Source                 string
	ScrapedAt              time.Time
}

// AddressHints keeps extraction order.
type AddressHints []string

const hintSeparator = "; "

func (h AddressHints) Joined() string {
	return strings.Join(h, hintSeparator)
}

func SplitAddressHints(s string) AddressHints {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return AddressHints(strings.Split(s, hintSeparator))
}
