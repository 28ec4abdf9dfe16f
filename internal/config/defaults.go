package config

func keywordRules(weight int, words ...string) []Rule {
	out := make([]Rule, 0, len(words))
	for _, w := range words {
		out = append(out, Rule{Tag: w, Weight: weight, Any: []string{w}})
	}
	return out
}

// Default returns the built-in configuration. Every value here can be
// overridden by config.yml or the LEADFLOW_* environment.
func Default() Config {
	var cfg Config

	cfg.App.DataDir = "data"
	cfg.App.LogLevel = "info"
	cfg.App.LogFormat = "console"

	cfg.Fetch.Mode = "chrome"
	cfg.Fetch.PagesDir = "pages"
	cfg.Fetch.RequestsPerSecond = 0.2
	cfg.Fetch.Burst = 1
	cfg.Fetch.TimeoutSeconds = 90
	cfg.Fetch.Chrome.Headless = true
	cfg.Fetch.Chrome.Scrolls = 3
	cfg.Fetch.Chrome.InvestorURL = "https://www.linkedin.com/search/results/people/?keywords={query}&origin=CLUSTER_EXPANSION"
	cfg.Fetch.Chrome.ObituaryURL = "https://www.legacy.com/obituaries/{city}/"
	cfg.Fetch.Chrome.InvestorCardSelector = ".reusable-search__result-container"
	cfg.Fetch.Chrome.ObituaryCardSelector = ".obituary-card, .obit-card, .memorial-listing"
	cfg.Fetch.Mailbox.IMAPPort = 993
	cfg.Fetch.Mailbox.Mailbox = "INBOX"
	cfg.Fetch.Mailbox.MaxMessages = 50
	cfg.Fetch.Mailbox.CardSelector = ".obituary-card, .obit-card, .memorial-listing, table.card"

	cfg.Investors.TargetCities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
		"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
		"San Francisco", "Indianapolis", "Seattle", "Denver", "Boston",
		"Miami", "Atlanta", "Orlando", "Tampa", "Las Vegas",
	}
	cfg.Investors.SearchTerms = []string{
		"real estate investor",
		"property investor",
		"fix and flip",
		"rental property investor",
		"cash buyer real estate",
		"real estate wholesaler",
		"property developer",
		"real estate entrepreneur",
		"multifamily investor",
		"commercial real estate investor",
	}
	cfg.Investors.CitiesPerRun = 3
	cfg.Investors.TermsPerCity = 3
	cfg.Investors.PerCity = 30

	cfg.Inheritance.TargetCities = []string{
		"Miami", "Atlanta", "Phoenix", "Dallas", "Denver",
		"Austin", "Charlotte", "Tampa", "Orlando", "Jacksonville",
		"Fort Worth", "San Antonio", "El Paso", "Memphis", "Nashville",
	}
	cfg.Inheritance.CitiesPerRun = 3
	cfg.Inheritance.MaxCardsPerCity = 40
	cfg.Inheritance.MaxPropertiesPerCity = 15
	cfg.Inheritance.MinPropertyPotential = 50
	cfg.Inheritance.Source = "Legacy.com"

	cfg.Extract.Obituary = ObituaryExtract{
		NameSelectors: []string{
			".obit-name", ".obituary-name", ".name", "h3", ".memorial-name",
			"[data-cy='obit-name']", ".deceased-name",
		},
		NameMinLen:   3,
		AgePatterns:  []string{`(?i)age (\d{2,3})`, `(?i)(\d{2,3}) years old`, `(?i)(\d{2,3}),`},
		DatePatterns: []string{`(\w+ \d{1,2}, \d{4})`, `(\d{1,2}/\d{1,2}/\d{4})`, `(\d{4}-\d{2}-\d{2})`},
		AddressPattern: []string{
			`(?i)\d+\s+\w+\s+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Way|Place|Pl|Court|Ct)`,
			`(?i)\d+\s+[A-Za-z]+\s+[A-Za-z]+\s+(?:Street|St|Avenue|Ave|Road|Rd)`,
			`(?i)lived on \w+\s+\w+`,
			`(?i)resided at \d+\s+\w+`,
		},
		MaxPerPattern: 3,
		MaxHints:      2,
	}
	cfg.Extract.Investor = InvestorExtract{
		NameSelector:     ".entity-result__title-text a span[aria-hidden='true']",
		TitleSelector:    ".entity-result__primary-subtitle",
		LocationSelector: ".entity-result__secondary-subtitle",
		LinkSelector:     ".entity-result__title-text a",
		NameMinLen:       2,
	}

	cfg.Scoring.Investor = InvestorScoring{
		Base:       50,
		TitleRules: keywordRules(10, "investor", "developer", "capital", "properties", "real estate", "cash buyer"),
		LocationRules: []Rule{
			{Tag: "major_metro", Weight: 15, Any: []string{"new york", "los angeles", "chicago", "miami"}},
		},
		SearchTermTag:    "search_term_match",
		SearchTermWeight: 20,
	}
	cfg.Scoring.Inheritance = InheritanceScoring{
		Base: 30,
		AgeTiers: []AgeTier{
			{Min: 70, Weight: 25},
			{Min: 60, Weight: 15},
			{Min: 50, Weight: 10},
		},
		HintWeight:      20,
		LongHintChars:   50,
		LongHintWeight:  15,
		HighValueCities: []string{"miami", "atlanta", "austin", "denver", "charlotte"},
		HighValueWeight: 20,
	}

	cfg.Enrichment.Provider = "synthetic"

	cfg.Pipeline.Concurrency = 1

	cfg.Report.HighQuality = 80
	cfg.Report.MediumQuality = 60
	cfg.Report.HighUrgency = 9
	cfg.Report.TopInvestors = 5
	cfg.Report.TopProperties = 10
	cfg.Report.InvestorRates = Rates{High: 250, Other: 150}
	cfg.Report.PropertyRates = Rates{High: 300, Other: 150}

	cfg.Export.CSV = true

	return cfg
}
