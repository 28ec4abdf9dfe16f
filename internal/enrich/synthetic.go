package enrich

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"leadflow-engine/internal/domain"
)

// Synthetic draws plausible properties and contacts from fixed weighted
// tables. Draw order is fixed, so a scripted Rand yields exact records.
type Synthetic struct {
	Now func() time.Time

	mu   sync.Mutex
	rand Rand
}

func NewSynthetic(r Rand) *Synthetic {
	return &Synthetic{rand: r, Now: time.Now}
}

var _ Provider = (*Synthetic)(nil)

func (s *Synthetic) FindProperties(ctx context.Context, owner, city string) ([]domain.PropertyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.Fields(owner)) < 2 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.weighted(propertyCountWeights)
	out := make([]domain.PropertyRecord, 0, n)
	for range n {
		number := s.uniform(streetNumberRange)
		street := streetNames[s.rand.IntN(len(streetNames))]
		suffix := streetSuffixes[s.rand.IntN(len(streetSuffixes))]
		base := s.uniform(baseValueRange)
		urgency := s.uniform(urgencyRange)
		ptype := propertyTypes[s.rand.IntN(len(propertyTypes))]

		value := int(float64(base) * CityMultiplier(city))
		out = append(out, domain.PropertyRecord{
			OwnerName:      owner,
			Address:        fmt.Sprintf("%d %s %s, %s", number, street, suffix, city),
			City:           city,
			EstimatedValue: value,
			PropertyType:   ptype,
			Status:         domain.StatusInherited,
			UrgencyScore:   urgency,
			LeadQuality:    domain.QualityForValue(value),
			FoundAt:        s.now(),
		})
	}
	return out, nil
}

func (s *Synthetic) FindHeirContacts(ctx context.Context, owner, _ string) ([]domain.HeirContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parts := strings.Fields(owner)
	if len(parts) < 2 {
		return nil, nil
	}
	surname := parts[len(parts)-1]

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.weighted(contactCountWeights)
	out := make([]domain.HeirContact, 0, n)
	for range n {
		first := firstNames[s.rand.IntN(len(firstNames))]
		phone := fmt.Sprintf("(%d) %d-%d",
			s.uniform(areaCodeRange), s.uniform(exchangeRange), s.uniform(lineNumberRange))
		rel := relationships[s.rand.IntN(len(relationships))]
		conf := s.uniform(confidenceRange)

		out = append(out, domain.HeirContact{
			Name:         first + " " + surname,
			Phone:        phone,
			Relationship: rel,
			Confidence:   conf,
		})
	}
	return out, nil
}

// CityMultiplier scales base values for pricier markets; unknown cities
// get 1.0.
func CityMultiplier(city string) float64 {
	if m, ok := cityMultipliers[strings.ToLower(strings.TrimSpace(city))]; ok {
		return m
	}
	return 1.0
}

func (s *Synthetic) uniform(r span) int {
	return r.lo + s.rand.IntN(r.hi-r.lo+1)
}

// weighted returns the index drawn with the given relative weights.
func (s *Synthetic) weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	x := s.rand.IntN(total)
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}

func (s *Synthetic) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
