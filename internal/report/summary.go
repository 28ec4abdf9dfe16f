// Package report summarizes a ranked run into counts, averages, the top
// leads and a flat-rate revenue estimate, and renders that as plain text.
package report

import (
	"time"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
	"leadflow-engine/internal/rank"
)

const (
	InvestorReportFile    = "investor_hunt_report.txt"
	InheritanceReportFile = "inheritance_property_report.txt"
)

type Options struct {
	HighQuality   int
	MediumQuality int
	HighUrgency   int
	TopInvestors  int
	TopProperties int
	InvestorRates config.Rates
	PropertyRates config.Rates
}

func OptionsFrom(cfg config.Config) Options {
	r := cfg.Report
	return Options{
		HighQuality:   r.HighQuality,
		MediumQuality: r.MediumQuality,
		HighUrgency:   r.HighUrgency,
		TopInvestors:  r.TopInvestors,
		TopProperties: r.TopProperties,
		InvestorRates: r.InvestorRates,
		PropertyRates: r.PropertyRates,
	}
}

type InvestorSummary struct {
	Total     int
	High      int
	Medium    int
	MeanScore float64

	HighQuality   int // score floor for High
	MediumQuality int // score floor for Medium

	HighRevenue   int
	MediumRevenue int
	Revenue       int
	Rates         config.Rates

	Top         []domain.InvestorLead
	GeneratedAt time.Time
}

// SummarizeInvestors never divides by zero: an empty run has a zero mean.
func SummarizeInvestors(leads []domain.InvestorLead, opts Options, now time.Time) InvestorSummary {
	s := InvestorSummary{
		Total:         len(leads),
		HighQuality:   opts.HighQuality,
		MediumQuality: opts.MediumQuality,
		Rates:         opts.InvestorRates,
		GeneratedAt:   now,
	}
	if len(leads) == 0 {
		return s
	}

	sum := 0
	for _, l := range leads {
		sum += l.QualityScore
		switch {
		case l.QualityScore >= opts.HighQuality:
			s.High++
		case l.QualityScore >= opts.MediumQuality:
			s.Medium++
		}
	}
	s.MeanScore = float64(sum) / float64(len(leads))
	s.HighRevenue = s.High * opts.InvestorRates.High
	s.MediumRevenue = s.Medium * opts.InvestorRates.Other
	s.Revenue = s.HighRevenue + s.MediumRevenue
	s.Top = rank.Top(rank.RankInvestors(leads), opts.TopInvestors)
	return s
}

type PropertySummary struct {
	Total         int
	TotalValue    int
	MeanValue     int
	MeanPotential float64
	HighValue     int
	Standard      int
	HighUrgency   int
	HeirContacts  int

	HighRevenue     int
	StandardRevenue int
	Revenue         int
	Rates           config.Rates

	Top         []domain.PropertyRecord
	GeneratedAt time.Time
}

func SummarizeProperties(props []domain.PropertyRecord, opts Options, now time.Time) PropertySummary {
	s := PropertySummary{Total: len(props), Rates: opts.PropertyRates, GeneratedAt: now}
	if len(props) == 0 {
		return s
	}

	potential := 0
	for _, p := range props {
		s.TotalValue += p.EstimatedValue
		potential += p.PropertyPotentialScore
		s.HeirContacts += len(p.HeirContacts)
		if p.EstimatedValue > domain.HighValueThreshold {
			s.HighValue++
		}
		if p.UrgencyScore >= opts.HighUrgency {
			s.HighUrgency++
		}
	}
	s.Standard = s.Total - s.HighValue
	s.MeanValue = s.TotalValue / s.Total
	s.MeanPotential = float64(potential) / float64(s.Total)
	s.HighRevenue = s.HighValue * opts.PropertyRates.High
	s.StandardRevenue = s.Standard * opts.PropertyRates.Other
	s.Revenue = s.HighRevenue + s.StandardRevenue
	s.Top = rank.Top(rank.RankProperties(props), opts.TopProperties)
	return s
}
