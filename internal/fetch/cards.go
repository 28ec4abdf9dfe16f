package fetch

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadflow-engine/internal/domain"
	"leadflow-engine/internal/extract"
)

// SplitCards cuts a page into one fragment per element matching selector.
// Cards without any text are skipped.
func SplitCards(page, selector string, q Query, at time.Time) ([]domain.RawFragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var out []domain.RawFragment
	doc.Find(selector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		text := extract.NodeText(card)
		if text == "" {
			return true
		}
		markup, err := goquery.OuterHtml(card)
		if err != nil {
			return true
		}
		out = append(out, domain.RawFragment{
			Text:      text,
			HTML:      markup,
			City:      q.City,
			Label:     q.label(),
			FetchedAt: at,
		})
		return q.Limit <= 0 || len(out) < q.Limit
	})
	return out, nil
}

// SplitText cuts a plain-text page into cards separated by "---" lines.
func SplitText(page string, q Query, at time.Time) []domain.RawFragment {
	page = strings.ReplaceAll(page, "\r\n", "\n")

	var out []domain.RawFragment
	var cur []string
	flush := func() {
		text := strings.TrimSpace(strings.Join(cur, "\n"))
		cur = cur[:0]
		if text == "" || (q.Limit > 0 && len(out) >= q.Limit) {
			return
		}
		out = append(out, domain.RawFragment{Text: text, City: q.City, Label: q.label(), FetchedAt: at})
	}
	for _, line := range strings.Split(page, "\n") {
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}

func mentionsCity(f domain.RawFragment, city string) bool {
	city = strings.ToLower(strings.TrimSpace(city))
	return city == "" || strings.Contains(strings.ToLower(f.Text), city)
}
