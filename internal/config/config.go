package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

// Profile is the YAML keyword profile:
//
// keywords:
//   - AI
//   - 로봇
// language: 한국어
// max_items: 3
type Profile struct {
	Keywords []string `yaml:"keywords"`
	Language string   `yaml:"language"`
	MaxItems int      `yaml:"max_items"`
}

type Config struct {
	// Collection settings
	Keywords []string
	Language string // 한국어 or 영어
	MaxItems int    // per-keyword item cap
	From     time.Time
	Until    time.Time

	// Fetcher settings
	RequestTimeout time.Duration
	CacheTTL       time.Duration

	// Presentation settings
	BookmarkLinks  []string
	CSVExportPath  string
	TextExportPath string

	// App settings
	ProfilePath string
	Debug       bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Keywords:       []string{"AI", "로봇", "IT"},
		Language:       "한국어",
		MaxItems:       3,
		RequestTimeout: 10 * time.Second,
		CacheTTL:       time.Hour,
		ProfilePath:    getEnvOrDefault("KEYWORD_PROFILE_PATH", "configs/keywords.yaml"),
	}

	// Profile file is optional; env values override it below.
	if _, err := os.Stat(cfg.ProfilePath); err == nil {
		profile, err := LoadProfile(cfg.ProfilePath)
		if err != nil {
			return nil, err
		}
		cfg.applyProfile(profile)
	}

	if kws := os.Getenv("KEYWORDS"); kws != "" {
		cfg.Keywords = splitList(kws)
	}
	if lang := os.Getenv("NEWS_LANG"); lang != "" {
		cfg.Language = lang
	}
	if v := os.Getenv("MAX_NEWS_ITEMS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxItems = val
		}
	}
	if v := os.Getenv("CACHE_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.CacheTTL = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if v := os.Getenv("START_DATE"); v != "" {
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return nil, fmt.Errorf("START_DATE %q: %w", v, err)
		}
		cfg.From = t
	}
	if v := os.Getenv("END_DATE"); v != "" {
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return nil, fmt.Errorf("END_DATE %q: %w", v, err)
		}
		cfg.Until = t
	}

	cfg.BookmarkLinks = splitList(os.Getenv("BOOKMARK_LINKS"))
	cfg.CSVExportPath = os.Getenv("CSV_EXPORT_PATH")
	cfg.TextExportPath = os.Getenv("TEXT_EXPORT_PATH")

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// LoadProfile reads the keyword profile from a YAML file.
func LoadProfile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("open keyword profile: %w", err)
	}
	defer f.Close()

	var p Profile
	if err := yaml.NewDecoder(f).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode keyword profile %s: %w", path, err)
	}
	return p, nil
}

func (c *Config) applyProfile(p Profile) {
	if len(p.Keywords) > 0 {
		c.Keywords = p.Keywords
	}
	if p.Language != "" {
		c.Language = p.Language
	}
	if p.MaxItems > 0 {
		c.MaxItems = p.MaxItems
	}
}

func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("MAX_NEWS_ITEMS must be positive")
	}
	if !c.From.IsZero() && !c.Until.IsZero() && c.Until.Before(c.From) {
		return fmt.Errorf("END_DATE is before START_DATE")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
