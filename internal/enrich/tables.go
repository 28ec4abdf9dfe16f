package enrich

import "leadflow-engine/internal/domain"

var (
	propertyCountWeights = []int{30, 50, 15, 5}
	contactCountWeights  = []int{20, 40, 30, 10}

	streetNames = []string{
		"Oak", "Pine", "Maple", "Cedar", "Elm", "Main", "Park",
		"Lake", "River", "Hill", "Valley", "Garden", "Forest", "Meadow",
	}
	streetSuffixes = []string{"St", "Ave", "Dr", "Rd", "Ln", "Way", "Blvd", "Ct"}

	firstNames = []string{"Michael", "Sarah", "David", "Jennifer", "Robert", "Lisa", "James", "Patricia"}

	cityMultipliers = map[string]float64{
		"miami":     1.5,
		"atlanta":   1.3,
		"austin":    1.4,
		"denver":    1.3,
		"charlotte": 1.2,
		"phoenix":   1.1,
		"dallas":    1.2,
		"tampa":     1.1,
	}
)

type span struct{ lo, hi int }

var (
	streetNumberRange = span{100, 9999}
	baseValueRange    = span{180000, 650000}
	urgencyRange      = span{7, 10}
	areaCodeRange     = span{200, 999}
	exchangeRange     = span{200, 999}
	lineNumberRange   = span{1000, 9999}
	confidenceRange   = span{70, 95}
)

var (
	propertyTypes = domain.PropertyTypes
	relationships = domain.Relationships
)
