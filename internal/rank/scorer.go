package rank

import (
	"strings"

	"leadflow-engine/internal/config"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Scorer maps one record to a bounded score and the tags of every rule that
// contributed to it.
type Scorer[T any] interface {
	Score(rec T) (score int, tags []string)
}

func Clamp(score int) int {
	return min(max(score, MinScore), MaxScore)
}

// applyRules adds each rule's weight at most once, when any of its needles
// occurs in text. Matching is case-insensitive.
func applyRules(text string, rules []config.Rule) (int, []string) {
	text = strings.ToLower(text)
	score := 0
	var tags []string
	for _, r := range rules {
		for _, needle := range r.Any {
			n := strings.ToLower(strings.TrimSpace(needle))
			if n != "" && strings.Contains(text, n) {
				score += r.Weight
				tags = append(tags, r.Tag)
				break
			}
		}
	}
	return score, tags
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
