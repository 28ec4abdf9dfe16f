// Package fetch supplies raw card fragments to the pipeline. The core only
// sees the Fetcher interface; how a page is obtained stays in here.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

type Kind string

const (
	KindInvestor Kind = "investor"
	KindObituary Kind = "obituary"
)

// Query names one batch: a city plus a search term (investors) or a
// source label (obituaries).
type Query struct {
	Kind  Kind
	City  string
	Term  string
	Label string
	Limit int
}

func (q Query) label() string {
	if q.Kind == KindInvestor && q.Term != "" {
		return q.Term
	}
	return q.Label
}

func (q Query) String() string {
	if q.Term != "" {
		return fmt.Sprintf("%s %s/%q", q.Kind, q.City, q.Term)
	}
	return fmt.Sprintf("%s %s", q.Kind, q.City)
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]domain.RawFragment, error)
	Close() error
}

// New builds the fetcher selected by fetch.mode. A failure here means the
// run cannot fetch anything at all.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (Fetcher, error) {
	fc := cfg.Fetch
	switch strings.ToLower(strings.TrimSpace(fc.Mode)) {
	case "dir":
		return NewDir(DirOptions{
			Root:             fc.PagesDir,
			InvestorSelector: fc.Chrome.InvestorCardSelector,
			ObituarySelector: fc.Chrome.ObituaryCardSelector,
		}), nil
	case "mailbox":
		return NewMailbox(MailboxOptions{
			Host:         fc.Mailbox.IMAPHost,
			Port:         fc.Mailbox.IMAPPort,
			Username:     fc.Mailbox.Username,
			Mailbox:      fc.Mailbox.Mailbox,
			MaxMessages:  fc.Mailbox.MaxMessages,
			CardSelector: fc.Mailbox.CardSelector,
			Timeout:      time.Duration(fc.TimeoutSeconds) * time.Second,
		}, log)
	case "", "chrome":
		return NewChrome(ctx, ChromeOptions{
			ExecPath:         fc.Chrome.ExecPath,
			UserDataDir:      fc.Chrome.UserDataDir,
			Headless:         fc.Chrome.Headless,
			Scrolls:          fc.Chrome.Scrolls,
			InvestorURL:      fc.Chrome.InvestorURL,
			ObituaryURL:      fc.Chrome.ObituaryURL,
			InvestorSelector: fc.Chrome.InvestorCardSelector,
			ObituarySelector: fc.Chrome.ObituaryCardSelector,
			Timeout:          time.Duration(fc.TimeoutSeconds) * time.Second,
			Limiter:          NewHostLimiter(fc.RequestsPerSecond, fc.Burst),
		}, log)
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", fc.Mode)
	}
}

// Slug turns a city or search term into a path and URL friendly token.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ExpandURL fills {query}, {term} and {city} in a URL template.
func ExpandURL(tmpl string, q Query) string {
	query := strings.TrimSpace(q.Term + " " + q.City)
	return strings.NewReplacer(
		"{query}", url.QueryEscape(query),
		"{term}", url.QueryEscape(q.Term),
		"{city}", Slug(q.City),
	).Replace(tmpl)
}
