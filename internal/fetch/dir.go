package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"leadflow-engine/internal/domain"
)

type DirOptions struct {
	Root             string
	InvestorSelector string
	ObituarySelector string
}

// Dir serves pages saved earlier from a browser session:
//
//	<root>/investor/<city>__<term>.html
//	<root>/obituary/<city>.html
//
// A .txt file in the same place holds plain-text cards split by "---" lines.
type Dir struct {
	opts DirOptions
	now  func() time.Time
}

func NewDir(opts DirOptions) *Dir {
	return &Dir{opts: opts, now: time.Now}
}

func (d *Dir) Name() string { return "dir" }

func (d *Dir) Close() error { return nil }

// PagePath is where a page for q is expected, without extension.
func (d *Dir) PagePath(q Query) string {
	name := Slug(q.City)
	if q.Kind == KindInvestor && q.Term != "" {
		name += "__" + Slug(q.Term)
	}
	return filepath.Join(d.opts.Root, string(q.Kind), name)
}

func (d *Dir) Fetch(ctx context.Context, q Query) ([]domain.RawFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := d.PagePath(q)
	at := d.now().UTC()

	b, err := os.ReadFile(base + ".html")
	if err == nil {
		return SplitCards(string(b), d.selector(q.Kind), q, at)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	b, err = os.ReadFile(base + ".txt")
	if err != nil {
		return nil, fmt.Errorf("no saved page for %s: %w", q, err)
	}
	return SplitText(string(b), q, at), nil
}

func (d *Dir) selector(k Kind) string {
	if k == KindInvestor {
		return d.opts.InvestorSelector
	}
	return d.opts.ObituarySelector
}
