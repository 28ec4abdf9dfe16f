package extract

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow-engine/internal/config"
	"leadflow-engine/internal/domain"
)

var fetched = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newObits(t *testing.T) *Obituaries {
	t.Helper()
	o, err := NewObituaries(config.Default().Extract.Obituary)
	require.NoError(t, err)
	return o
}

func TestChainFirstMatchWins(t *testing.T) {
	miss := func(*Input) (string, bool) { return "", false }
	short := func(*Input) (string, bool) { return "Al", true }
	boom := func(*Input) (string, bool) { panic("selector blew up") }
	hit := func(*Input) (string, bool) { return "  Alice Walker ", true }
	later := func(*Input) (string, bool) { return "Somebody Else", true }

	c := Chain{Rules: []Rule{miss, short, boom, hit, later}, MinLen: 3, Default: "nobody"}
	v, ok := c.First(&Input{})
	assert.True(t, ok)
	assert.Equal(t, "Alice Walker", v)

	c = Chain{Rules: []Rule{miss, short, boom}, MinLen: 3, Default: "nobody"}
	v, ok = c.First(&Input{})
	assert.False(t, ok)
	assert.Equal(t, "nobody", v)
}

func TestRegexRuleUsesFirstGroup(t *testing.T) {
	in := &Input{Text: "aged 91 years old"}
	v, ok := Regex(regexp.MustCompile(`(\d+) years`))(in)
	assert.True(t, ok)
	assert.Equal(t, "91", v)

	v, ok = Regex(regexp.MustCompile(`\d+ years`))(in)
	assert.True(t, ok)
	assert.Equal(t, "91 years", v)
}

func TestLineOnlyAppliesToPlainText(t *testing.T) {
	plain := &Input{Text: "\n  Jane Doe \n\nInvestor\n"}
	v, ok := Line(1)(plain)
	assert.True(t, ok)
	assert.Equal(t, "Investor", v)

	_, ok = Line(5)(plain)
	assert.False(t, ok)

	marked := &Input{Text: "Jane Doe", HTML: "<p>Jane Doe</p>"}
	_, ok = Line(0)(marked)
	assert.False(t, ok)
}

func TestObituaryFromHTMLCard(t *testing.T) {
	card := `<div class="obituary-card">
  <h3>Margaret Ellen Jones</h3>
  <p>Margaret Ellen Jones, 84, of Austin passed away March 3, 2024.
  She lived on Maple Ridge for 40 years at 1200 Oak Street.</p>
  <script>var x = "999 Fake Street";</script>
</div>`
	lead, err := newObits(t).Extract(domain.RawFragment{HTML: card, City: "Austin", Label: "Legacy.com", FetchedAt: fetched})
	require.NoError(t, err)

	assert.Equal(t, "Margaret Ellen Jones", lead.DeceasedName)
	assert.Equal(t, "84", lead.Age)
	assert.Equal(t, "March 3, 2024", lead.DeathDate)
	assert.Equal(t, domain.AddressHints{"1200 Oak Street", "lived on Maple Ridge"}, lead.AddressHints)
	assert.Equal(t, "Austin", lead.City)
	assert.Equal(t, "Legacy.com", lead.Source)
	assert.Equal(t, fetched, lead.ScrapedAt)
	assert.Zero(t, lead.PropertyPotentialScore)
}

func TestObituaryNameSelectorOrder(t *testing.T) {
	card := `<div><h3>In Loving Memory</h3><span class="obit-name">Harold Finch</span></div>`
	lead, err := newObits(t).Extract(domain.RawFragment{HTML: card})
	require.NoError(t, err)
	assert.Equal(t, "Harold Finch", lead.DeceasedName, ".obit-name is tried before h3")
}

func TestObituaryFromPlainText(t *testing.T) {
	text := "Robert Lee Smith\nage 67 of Miami\nDied 01/15/2024\nresided at 455 Palm"
	lead, err := newObits(t).Extract(domain.RawFragment{Text: text, City: "Miami"})
	require.NoError(t, err)

	assert.Equal(t, "Robert Lee Smith", lead.DeceasedName)
	assert.Equal(t, "67", lead.Age)
	assert.Equal(t, "01/15/2024", lead.DeathDate)
	assert.Equal(t, domain.AddressHints{"resided at 455 Palm"}, lead.AddressHints)
	assert.False(t, lead.ScrapedAt.IsZero())
}

func TestObituaryDefaults(t *testing.T) {
	lead, err := newObits(t).Extract(domain.RawFragment{Text: "Evelyn Hart\nBeloved grandmother"})
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownAge, lead.Age)
	assert.Equal(t, domain.RecentDeathDate, lead.DeathDate)
	assert.Empty(t, lead.AddressHints)
}

func TestObituaryISODate(t *testing.T) {
	lead, err := newObits(t).Extract(domain.RawFragment{Text: "Evelyn Hart\n92 years old\nDied 2024-02-29"})
	require.NoError(t, err)
	assert.Equal(t, "92", lead.Age)
	assert.Equal(t, "2024-02-29", lead.DeathDate)
}

func TestObituaryRejectsShortOrMissingNames(t *testing.T) {
	o := newObits(t)
	for _, f := range []domain.RawFragment{
		{Text: "Al"},
		{Text: ""},
		{HTML: `<div><span>no name selector here</span></div>`},
	} {
		_, err := o.Extract(f)
		assert.True(t, errors.Is(err, ErrRejected), "fragment %+v", f)
	}
}

// The trailing-comma age pattern also fires on the day of a date.
func TestAgeCommaPatternMatchesDayOfMonth(t *testing.T) {
	lead, err := newObits(t).Extract(domain.RawFragment{Text: "John Doe\npassed on June 15, 2023"})
	require.NoError(t, err)
	assert.Equal(t, "15", lead.Age)
	assert.Equal(t, "June 15, 2023", lead.DeathDate)
}

func TestAddressHintsCapped(t *testing.T) {
	hints := newObits(t).AddressHints("10 Oak St, 20 Elm Ave, 30 Pine Rd, 40 Lake Dr")
	assert.Equal(t, domain.AddressHints{"10 Oak St", "20 Elm Ave"}, hints)
	assert.Equal(t, "10 Oak St; 20 Elm Ave", hints.Joined())
}

func TestNewObituariesBadPattern(t *testing.T) {
	cfg := config.Default().Extract.Obituary
	cfg.DatePatterns = []string{`(\d`}
	_, err := NewObituaries(cfg)
	assert.ErrorContains(t, err, "date patterns")
}

func TestInvestorFromHTMLCard(t *testing.T) {
	card := `<li class="reusable-search__result-container">
  <span class="entity-result__title-text">
    <a href="https://www.linkedin.com/in/jane-doe"><span aria-hidden="true">Jane Doe</span><span class="visually-hidden">View profile</span></a>
  </span>
  <div class="entity-result__primary-subtitle">Miami Real Estate Investor &amp; Cash Buyer</div>
  <div class="entity-result__secondary-subtitle">Miami, FL</div>
</li>`
	x := NewInvestors(config.Default().Extract.Investor)
	lead, err := x.Extract(domain.RawFragment{HTML: card, City: "Miami", Label: "real estate investor", FetchedAt: fetched})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", lead.Name)
	assert.Equal(t, "Miami Real Estate Investor & Cash Buyer", lead.Title)
	assert.Equal(t, "Miami, FL", lead.Location)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", lead.ProfileURL)
	assert.Equal(t, "real estate investor", lead.SearchTerm)
	assert.Equal(t, "Miami", lead.TargetCity)
	assert.Equal(t, domain.LeadTypeInvestor, lead.LeadType)
}

func TestInvestorLocationFallsBackToCity(t *testing.T) {
	card := `<div><span class="entity-result__title-text"><a><span aria-hidden="true">Sam Porter</span></a></span>
<div class="entity-result__primary-subtitle">Property Developer</div></div>`
	x := NewInvestors(config.Default().Extract.Investor)
	lead, err := x.Extract(domain.RawFragment{HTML: card, City: "Chicago"})
	require.NoError(t, err)
	assert.Equal(t, "Chicago", lead.Location)
	assert.Empty(t, lead.ProfileURL)
}

func TestInvestorFromPlainText(t *testing.T) {
	x := NewInvestors(config.Default().Extract.Investor)
	lead, err := x.Extract(domain.RawFragment{Text: "Li Wei\nMultifamily Investor\nDenver, CO", City: "Denver"})
	require.NoError(t, err)
	assert.Equal(t, "Li Wei", lead.Name)
	assert.Equal(t, "Multifamily Investor", lead.Title)
	assert.Equal(t, "Denver, CO", lead.Location)
}

func TestInvestorRejections(t *testing.T) {
	x := NewInvestors(config.Default().Extract.Investor)

	_, err := x.Extract(domain.RawFragment{Text: "Bo\nInvestor"})
	assert.ErrorIs(t, err, ErrRejected, "names of two characters are too short")

	_, err = x.Extract(domain.RawFragment{Text: "Jane Doe"})
	assert.ErrorIs(t, err, ErrRejected, "title is required")
}
