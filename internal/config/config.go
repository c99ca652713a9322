package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/schedboard/internal/model"
)

// Environment variables consulted for defaults.
const (
	EnvSheetURL = "SCHEDBOARD_SHEET_URL"
	EnvConfig   = "SCHEDBOARD_CONFIG"
)

const (
	DefaultLookaheadDays = 14
	MaxLookaheadDays     = 3650
	DefaultCacheTTL      = 10 * time.Minute
	DefaultFetchTimeout  = 30 * time.Second
	DefaultHeaderKeyword = "사업명"
	DefaultAddr          = ":8080"
	DefaultChartWidth    = 60
)

// Config holds all runtime configuration for a schedboard run.
type Config struct {
	ConfigPath string
	LogFormat  string // "text", "json" or "auto"

	// Exactly one source is used, in this order of preference.
	SnapshotPath string
	CSVPath      string
	SheetURL     string

	HeaderKeyword string
	FetchTimeout  time.Duration
	CacheTTL      time.Duration

	LookaheadDays   int
	Sentinels       []string // extra status labels on top of the built-in ones
	NameKeywords    []string
	EndDateKeywords []string
	ManagerKeywords []string
	DisplayColumns  []string

	ChartWidth  int
	PDFFontPath string // TTF with Hangul glyphs; core fonts are used when empty
	Addr        string
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	SheetURL      string      `yaml:"sheet_url"`
	HeaderKeyword string      `yaml:"header_keyword"`
	FetchTimeout  string      `yaml:"fetch_timeout"`
	CacheTTL      string      `yaml:"cache_ttl"`
	LookaheadDays int         `yaml:"lookahead_days"`
	Sentinels     []string    `yaml:"sentinels"`
	Columns       yamlColumns `yaml:"columns"`
	ChartWidth    int         `yaml:"chart_width"`
	PDFFontPath   string      `yaml:"pdf_font"`
	Addr          string      `yaml:"addr"`
}

// yamlColumns overrides the keyword sets used to locate columns.
type yamlColumns struct {
	Name    []string `yaml:"name"`
	EndDate []string `yaml:"end_date"`
	Manager []string `yaml:"manager"`
	Display []string `yaml:"display"`
}

// Defaults returns a Config with every tunable set to its default.
func Defaults() Config {
	return Config{
		LogFormat:       "text",
		HeaderKeyword:   DefaultHeaderKeyword,
		FetchTimeout:    DefaultFetchTimeout,
		CacheTTL:        DefaultCacheTTL,
		LookaheadDays:   DefaultLookaheadDays,
		NameKeywords:    append([]string(nil), model.NameRole.Keywords...),
		EndDateKeywords: append([]string(nil), model.EndDateRole.Keywords...),
		ManagerKeywords: append([]string(nil), model.ManagerRole.Keywords...),
		DisplayColumns:  append([]string(nil), model.DefaultDisplayColumns...),
		ChartWidth:      DefaultChartWidth,
		Addr:            DefaultAddr,
	}
}

// LoadEnv reads a .env file if one exists. A missing file is not an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// LoadFromFile reads a YAML config file and merges its non-empty values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if yc.SheetURL != "" && c.SheetURL == "" {
		c.SheetURL = yc.SheetURL
	}
	if yc.HeaderKeyword != "" {
		c.HeaderKeyword = yc.HeaderKeyword
	}
	if yc.FetchTimeout != "" {
		d, err := time.ParseDuration(yc.FetchTimeout)
		if err != nil {
			return fmt.Errorf("parse fetch_timeout: %w", err)
		}
		c.FetchTimeout = d
	}
	if yc.CacheTTL != "" {
		d, err := time.ParseDuration(yc.CacheTTL)
		if err != nil {
			return fmt.Errorf("parse cache_ttl: %w", err)
		}
		c.CacheTTL = d
	}
	if yc.LookaheadDays != 0 {
		c.LookaheadDays = yc.LookaheadDays
	}
	c.Sentinels = append(c.Sentinels, yc.Sentinels...)
	if len(yc.Columns.Name) > 0 {
		c.NameKeywords = yc.Columns.Name
	}
	if len(yc.Columns.EndDate) > 0 {
		c.EndDateKeywords = yc.Columns.EndDate
	}
	if len(yc.Columns.Manager) > 0 {
		c.ManagerKeywords = yc.Columns.Manager
	}
	if len(yc.Columns.Display) > 0 {
		c.DisplayColumns = yc.Columns.Display
	}
	if yc.ChartWidth != 0 {
		c.ChartWidth = yc.ChartWidth
	}
	if yc.PDFFontPath != "" {
		c.PDFFontPath = yc.PDFFontPath
	}
	if yc.Addr != "" {
		c.Addr = yc.Addr
	}
	return c.Validate()
}

// Validate checks tunables and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.LookaheadDays <= 0 {
		return fmt.Errorf("lookahead_days must be positive, got %d", c.LookaheadDays)
	}
	if c.LookaheadDays > MaxLookaheadDays {
		return fmt.Errorf("lookahead_days must be at most %d, got %d", MaxLookaheadDays, c.LookaheadDays)
	}
	if len(c.NameKeywords) == 0 {
		return fmt.Errorf("at least one name column keyword is required")
	}
	if len(c.EndDateKeywords) == 0 {
		return fmt.Errorf("at least one end date column keyword is required")
	}
	if c.HeaderKeyword == "" {
		return fmt.Errorf("header_keyword must not be empty")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	if c.ChartWidth < 10 {
		return fmt.Errorf("chart_width must be at least 10, got %d", c.ChartWidth)
	}
	return nil
}

// ValidateWithSource checks tunables and that some table source is set.
func (c *Config) ValidateWithSource() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch {
	case c.SnapshotPath != "":
		if _, err := os.Stat(c.SnapshotPath); err != nil {
			return fmt.Errorf("snapshot not accessible: %w", err)
		}
	case c.CSVPath != "":
		if _, err := os.Stat(c.CSVPath); err != nil {
			return fmt.Errorf("csv file not accessible: %w", err)
		}
	case c.SheetURL == "":
		return fmt.Errorf("--sheet-url, --csv, --snapshot or %s is required", EnvSheetURL)
	}
	return nil
}

// Lookahead returns the bar length as a duration.
func (c *Config) Lookahead() time.Duration {
	return time.Duration(c.LookaheadDays) * 24 * time.Hour
}
