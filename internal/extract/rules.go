// Package extract pulls typed fields out of noisy fragment text with ordered
// fallback rules. A rule that misses (or panics) just hands over to the next
// one; a field that nobody matches takes its chain default.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"leadflow-engine/internal/domain"
)

// Input is the view of one fragment that rules run against. The HTML is
// parsed once, on first use by a selector rule.
type Input struct {
	Text string
	HTML string

	parsed bool
	doc    *goquery.Document
	lines  []string
}

func NewInput(f domain.RawFragment) *Input {
	return &Input{Text: f.Text, HTML: f.HTML}
}

func (in *Input) document() *goquery.Document {
	if !in.parsed {
		in.parsed = true
		if strings.TrimSpace(in.HTML) != "" {
			in.doc, _ = goquery.NewDocumentFromReader(strings.NewReader(in.HTML))
		}
	}
	return in.doc
}

func (in *Input) textLines() []string {
	if in.lines == nil {
		text := in.Text
		if strings.TrimSpace(text) == "" {
			if doc := in.document(); doc != nil {
				text = NodeText(doc.Selection)
			}
		}
		in.lines = []string{}
		for _, l := range strings.Split(text, "\n") {
			if l = CleanText(l); l != "" {
				in.lines = append(in.lines, l)
			}
		}
	}
	return in.lines
}

// fullText is what regex rules scan: the plain text, or the HTML's text when
// the fetcher only sent markup.
func (in *Input) fullText() string {
	if strings.TrimSpace(in.Text) != "" {
		return in.Text
	}
	return strings.Join(in.textLines(), "\n")
}

// Rule returns a candidate value and whether it matched at all.
type Rule func(in *Input) (string, bool)

// Chain evaluates Rules in order. The first match whose length exceeds MinLen
// wins; otherwise Default is used.
type Chain struct {
	Rules   []Rule
	MinLen  int
	Default string
}

func (c Chain) Eval(in *Input) string {
	v, _ := c.First(in)
	return v
}

// First is Eval plus a flag telling whether a rule produced the value.
func (c Chain) First(in *Input) (string, bool) {
	for _, r := range c.Rules {
		v, ok := try(r, in)
		if ok && utf8.RuneCountInString(v) > c.MinLen {
			return v, true
		}
	}
	return c.Default, false
}

func try(r Rule, in *Input) (v string, ok bool) {
	defer func() {
		if recover() != nil {
			v, ok = "", false
		}
	}()
	v, ok = r(in)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Selector matches the text of the first element for css.
func Selector(css string) Rule {
	return func(in *Input) (string, bool) {
		doc := in.document()
		if doc == nil {
			return "", false
		}
		sel := doc.Find(css).First()
		if sel.Length() == 0 {
			return "", false
		}
		return CleanText(sel.Text()), true
	}
}

// SelectorAttr matches an attribute of the first element for css.
func SelectorAttr(css, attr string) Rule {
	return func(in *Input) (string, bool) {
		doc := in.document()
		if doc == nil {
			return "", false
		}
		return doc.Find(css).First().Attr(attr)
	}
}

// Regex matches the first capture group (or the whole match when the
// pattern has none) anywhere in the fragment text.
func Regex(re *regexp.Regexp) Rule {
	return func(in *Input) (string, bool) {
		m := re.FindStringSubmatch(in.fullText())
		switch {
		case m == nil:
			return "", false
		case len(m) > 1:
			return m[1], true
		default:
			return m[0], true
		}
	}
}

// Line matches the n-th non-empty text line of a fragment that arrived
// without markup. It stands in for selectors on plain-text cards.
func Line(n int) Rule {
	return func(in *Input) (string, bool) {
		if strings.TrimSpace(in.HTML) != "" {
			return "", false
		}
		lines := in.textLines()
		if n < 0 || n >= len(lines) {
			return "", false
		}
		return lines[n], true
	}
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func regexRules(res []*regexp.Regexp) []Rule {
	out := make([]Rule, 0, len(res))
	for _, re := range res {
		out = append(out, Regex(re))
	}
	return out
}
