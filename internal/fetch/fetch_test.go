package fetch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leadflow-engine/internal/config"
)

var at = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

const obituaryPage = `<html><body>
<div class="obituary-card"><h3>Helen Park</h3><p>Helen Park, 88, of Tampa died March 1, 2024.</p></div>
<div class="obituary-card">   </div>
<div class="obit-card"><h3>Omar Reyes</h3><p>age 75, lived on Elm Court</p></div>
<div class="ad">Buy now</div>
</body></html>`

func TestSlug(t *testing.T) {
	assert.Equal(t, "fort-worth", Slug(" Fort Worth "))
	assert.Equal(t, "cash-buyer-real-estate", Slug("Cash Buyer -- Real Estate!"))
	assert.Equal(t, "", Slug("  "))
}

func TestExpandURL(t *testing.T) {
	q := Query{Kind: KindInvestor, City: "San Diego", Term: "fix and flip"}
	got := ExpandURL("https://example.com/search?keywords={query}&c={city}", q)
	assert.Equal(t, "https://example.com/search?keywords=fix+and+flip+San+Diego&c=san-diego", got)
}

func TestSplitCards(t *testing.T) {
	q := Query{Kind: KindObituary, City: "Tampa", Label: "Legacy.com"}
	frags, err := SplitCards(obituaryPage, ".obituary-card, .obit-card", q, at)
	require.NoError(t, err)
	require.Len(t, frags, 2)

	assert.Equal(t, "Helen Park\nHelen Park, 88, of Tampa died March 1, 2024.", frags[0].Text)
	assert.True(t, strings.HasPrefix(frags[0].HTML, `<div class="obituary-card">`))
	assert.Equal(t, "Tampa", frags[0].City)
	assert.Equal(t, "Legacy.com", frags[0].Label)
	assert.Equal(t, at, frags[0].FetchedAt)
	assert.Contains(t, frags[1].Text, "Omar Reyes")

	q.Limit = 1
	frags, err = SplitCards(obituaryPage, ".obituary-card, .obit-card", q, at)
	require.NoError(t, err)
	assert.Len(t, frags, 1)
}

func TestSplitTextUsesSearchTermAsLabel(t *testing.T) {
	page := "Jane Doe\r\nInvestor\r\n---\r\n\r\n---\nLi Wei\nDeveloper\n"
	q := Query{Kind: KindInvestor, City: "Miami", Term: "property developer", Label: "ignored"}
	frags := SplitText(page, q, at)
	require.Len(t, frags, 2)
	assert.Equal(t, "Jane Doe\nInvestor", frags[0].Text)
	assert.Equal(t, "Li Wei\nDeveloper", frags[1].Text)
	assert.Equal(t, "property developer", frags[1].Label)
	assert.Empty(t, frags[1].HTML)
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDirFetcher(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "obituary", "tampa.html"), obituaryPage)
	writeFile(t, filepath.Join(root, "investor", "fort-worth__fix-and-flip.txt"), "Sam Cole\nFlipper\n")

	d := NewDir(DirOptions{Root: root, ObituarySelector: ".obituary-card, .obit-card", InvestorSelector: ".card"})
	d.now = func() time.Time { return at }
	ctx := context.Background()

	frags, err := d.Fetch(ctx, Query{Kind: KindObituary, City: "Tampa", Label: "Legacy.com"})
	require.NoError(t, err)
	assert.Len(t, frags, 2)

	frags, err = d.Fetch(ctx, Query{Kind: KindInvestor, City: "Fort Worth", Term: "Fix and Flip"})
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, "Sam Cole\nFlipper", frags[0].Text)
	assert.Equal(t, "Fix and Flip", frags[0].Label)

	_, err = d.Fetch(ctx, Query{Kind: KindObituary, City: "Boise"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const alertMail = "From: alerts@legacy.example\n" +
	"To: me@example.com\n" +
	"Subject: Obituaries near you\n" +
	"Date: Mon, 04 Mar 2024 08:00:00 +0000\n" +
	"MIME-Version: 1.0\n" +
	"Content-Type: multipart/alternative; boundary=\"b1\"\n" +
	"\n" +
	"--b1\n" +
	"Content-Type: text/plain; charset=utf-8\n" +
	"\n" +
	"plain version\n" +
	"--b1\n" +
	"Content-Type: text/html; charset=utf-8\n" +
	"Content-Transfer-Encoding: quoted-printable\n" +
	"\n" +
	"<div class=3D\"obituary-card\"><h3>Helen Park</h3><p>Helen Park, 88, of Tampa died March 1, 2024.</p></div>\n" +
	"<div class=3D\"obituary-card\"><h3>Omar Reyes</h3><p>Omar Reyes, 75, of Denver died March 2, 2024.</p></div>\n" +
	"--b1--\n"

func TestParseMail(t *testing.T) {
	p := parseMail(rawMail{body: []byte(alertMail)})
	assert.Equal(t, "plain version", strings.TrimSpace(p.text))
	assert.Contains(t, p.html, `<div class="obituary-card">`)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), p.date.UTC())

	p = parseMail(rawMail{body: []byte("not a mail at all")})
	assert.Equal(t, "not a mail at all", p.text)
}

func TestMailboxFiltersByCityAndLoadsOnce(t *testing.T) {
	loads := 0
	m := &Mailbox{
		opts: MailboxOptions{CardSelector: ".obituary-card"},
		log:  zap.NewNop(),
		load: func(context.Context) ([]rawMail, error) {
			loads++
			return []rawMail{{body: []byte(alertMail)}}, nil
		},
	}
	ctx := context.Background()

	frags, err := m.Fetch(ctx, Query{Kind: KindObituary, City: "Tampa", Label: "Legacy.com"})
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Text, "Helen Park")
	assert.Equal(t, "Legacy.com", frags[0].Label)

	frags, err = m.Fetch(ctx, Query{Kind: KindObituary, City: "denver"})
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Text, "Omar Reyes")

	frags, err = m.Fetch(ctx, Query{Kind: KindObituary, City: "Boise"})
	require.NoError(t, err)
	assert.Empty(t, frags)
	assert.Equal(t, 1, loads)
}

func TestNewMailboxNeedsHost(t *testing.T) {
	_, err := NewMailbox(MailboxOptions{Username: "me"}, nil)
	assert.Error(t, err)
}

func TestNewRejectsUnknownMode(t *testing.T) {
	cfg := config.Default()
	cfg.Fetch.Mode = "carrier-pigeon"
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "carrier-pigeon")

	cfg.Fetch.Mode = "dir"
	f, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "dir", f.Name())
	assert.NoError(t, f.Close())
}

func TestHostLimiter(t *testing.T) {
	off := NewHostLimiter(0, 1)
	assert.Nil(t, off)
	assert.NoError(t, off.WaitURL(context.Background(), "https://example.com"))

	hl := NewHostLimiter(0.001, 1)
	require.NoError(t, hl.WaitURL(context.Background(), "https://a.example.com/x"))
	require.NoError(t, hl.WaitURL(context.Background(), "https://b.example.com/x"), "hosts have separate budgets")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, hl.WaitURL(ctx, "https://a.example.com/y"))
}
