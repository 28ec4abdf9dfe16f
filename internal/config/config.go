// config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Tag    string   `yaml:"tag"`
	Weight int      `yaml:"weight"`
	Any    []string `yaml:"any"`
}

// AgeTier awards Weight when the parsed age is >= Min. Tiers are checked
// in order and the first hit wins.
type AgeTier struct {
	Min    int `yaml:"min"`
	Weight int `yaml:"weight"`
}

type InvestorScoring struct {
	Base             int    `yaml:"base"`
	TitleRules       []Rule `yaml:"title_rules"`
	LocationRules    []Rule `yaml:"location_rules"`
	SearchTermTag    string `yaml:"search_term_tag"`
	SearchTermWeight int    `yaml:"search_term_weight"`
}

type InheritanceScoring struct {
	Base            int       `yaml:"base"`
	AgeTiers        []AgeTier `yaml:"age_tiers"`
	HintWeight      int       `yaml:"hint_weight"`
	LongHintChars   int       `yaml:"long_hint_chars"`
	LongHintWeight  int       `yaml:"long_hint_weight"`
	HighValueCities []string  `yaml:"high_value_cities"`
	HighValueWeight int       `yaml:"high_value_weight"`
}

type ObituaryExtract struct {
	NameSelectors  []string `yaml:"name_selectors"`
	NameMinLen     int      `yaml:"name_min_len"`
	AgePatterns    []string `yaml:"age_patterns"`
	DatePatterns   []string `yaml:"date_patterns"`
	AddressPattern []string `yaml:"address_patterns"`
	MaxPerPattern  int      `yaml:"max_per_pattern"`
	MaxHints       int      `yaml:"max_hints"`
}

type InvestorExtract struct {
	NameSelector     string `yaml:"name_selector"`
	TitleSelector    string `yaml:"title_selector"`
	LocationSelector string `yaml:"location_selector"`
	LinkSelector     string `yaml:"link_selector"`
	NameMinLen       int    `yaml:"name_min_len"`
}

type Rates struct {
	High  int `yaml:"high"`
	Other int `yaml:"other"`
}

type Config struct {
	App struct {
		DataDir         string `yaml:"data_dir"`
		LogLevel        string `yaml:"log_level"`
		LogFormat       string `yaml:"log_format"`
		MetricsTextfile string `yaml:"metrics_textfile"`
	} `yaml:"app"`

	Fetch struct {
		Mode              string  `yaml:"mode"` // chrome | dir | mailbox
		PagesDir          string  `yaml:"pages_dir"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`

		Chrome struct {
			ExecPath             string `yaml:"exec_path"`
			UserDataDir          string `yaml:"user_data_dir"`
			Headless             bool   `yaml:"headless"`
			Scrolls              int    `yaml:"scrolls"`
			InvestorURL          string `yaml:"investor_url"`
			ObituaryURL          string `yaml:"obituary_url"`
			InvestorCardSelector string `yaml:"investor_card_selector"`
			ObituaryCardSelector string `yaml:"obituary_card_selector"`
		} `yaml:"chrome"`

		Mailbox struct {
			IMAPHost     string `yaml:"imap_host"`
			IMAPPort     int    `yaml:"imap_port"`
			Username     string `yaml:"username"`
			Mailbox      string `yaml:"mailbox"`
			MaxMessages  int    `yaml:"max_messages"`
			CardSelector string `yaml:"card_selector"`
		} `yaml:"mailbox"`
	} `yaml:"fetch"`

	Investors struct {
		TargetCities []string `yaml:"target_cities"`
		SearchTerms  []string `yaml:"search_terms"`
		CitiesPerRun int      `yaml:"cities_per_run"`
		TermsPerCity int      `yaml:"terms_per_city"`
		PerCity      int      `yaml:"per_city"`
	} `yaml:"investors"`

	Inheritance struct {
		TargetCities         []string `yaml:"target_cities"`
		CitiesPerRun         int      `yaml:"cities_per_run"`
		MaxCardsPerCity      int      `yaml:"max_cards_per_city"`
		MaxPropertiesPerCity int      `yaml:"max_properties_per_city"`
		MinPropertyPotential int      `yaml:"min_property_potential"`
		Source               string   `yaml:"source"`
	} `yaml:"inheritance"`

	Extract struct {
		Obituary ObituaryExtract `yaml:"obituary"`
		Investor InvestorExtract `yaml:"investor"`
	} `yaml:"extract"`

	Scoring struct {
		Investor    InvestorScoring    `yaml:"investor"`
		Inheritance InheritanceScoring `yaml:"inheritance"`
	} `yaml:"scoring"`

	Enrichment struct {
		Provider string `yaml:"provider"`
		Seed     int64  `yaml:"seed"`
	} `yaml:"enrichment"`

	Pipeline struct {
		Concurrency int  `yaml:"concurrency"`
		Dedupe      bool `yaml:"dedupe"`
	} `yaml:"pipeline"`

	Report struct {
		HighQuality   int   `yaml:"high_quality"`
		MediumQuality int   `yaml:"medium_quality"`
		HighUrgency   int   `yaml:"high_urgency"`
		TopInvestors  int   `yaml:"top_investors"`
		TopProperties int   `yaml:"top_properties"`
		InvestorRates Rates `yaml:"investor_rates"`
		PropertyRates Rates `yaml:"property_rates"`
	} `yaml:"report"`

	Export struct {
		CSV               bool   `yaml:"csv"`
		IncludeObituaries bool   `yaml:"include_obituaries"`
		SQLitePath        string `yaml:"sqlite_path"`
	} `yaml:"export"`
}

// Load reads the YAML file at path on top of Default(), so a partial file
// only overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
