// Package enrich attaches property and heir-contact records to obituary
// leads. Only the synthetic placeholder model ships; a real data provider
// plugs in behind the same interface.
package enrich

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

type Provider interface {
	FindProperties(ctx context.Context, owner, city string) ([]domain.PropertyRecord, error)
	FindHeirContacts(ctx context.Context, owner, city string) ([]domain.HeirContact, error)
}

// Rand is the slice of *rand.Rand the model draws from.
type Rand interface {
	IntN(n int) int
}

func New(cfg config.Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Enrichment.Provider)) {
	case "", "synthetic":
		seed := cfg.Enrichment.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewSynthetic(NewRand(seed)), nil
	default:
		return nil, fmt.Errorf("unknown enrichment provider %q", cfg.Enrichment.Provider)
	}
}

// NewRand returns a deterministic source for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}
