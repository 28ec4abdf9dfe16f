package pipeline

import (
	"strings"

	"leadflow-engine/internal/enrich"
)

// PickCities returns explicit when given, else n distinct cities sampled
// from targets with r. Without r the first n targets are used.
func PickCities(r enrich.Rand, targets []string, n int, explicit []string) []string {
	if len(explicit) > 0 {
		out := make([]string, 0, len(explicit))
		for _, c := range explicit {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
		return out
	}

	pool := append([]string(nil), targets...)
	if n > len(pool) {
		n = len(pool)
	}
	if r == nil {
		return pool[:n]
	}
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

type dedupeKey struct{ name, city string }

func keyOf(name, city string) dedupeKey {
	return dedupeKey{
		name: strings.ToLower(strings.TrimSpace(name)),
		city: strings.ToLower(strings.TrimSpace(city)),
	}
}
