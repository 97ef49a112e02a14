// Package region loads and validates per-jurisdiction configuration. Each
// region lives in regions/<key>/ with a config.yaml holding the scoring
// thresholds and the FIPS code that guards cross-region matches.
package region

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ridgeline-data/propmail/internal/score"
)

// Config is one region's processing configuration.
type Config struct {
	Name        string  `yaml:"region_name"`
	Code        string  `yaml:"region_code"`
	FIPS        string  `yaml:"fips_code"`
	DateCutoff1 string  `yaml:"date_cutoff1"` // ABS1: sold on or before
	DateCutoff2 string  `yaml:"date_cutoff2"` // BUY1/BUY2: sold on or after
	Amount1     float64 `yaml:"amount_cutoff1"`
	Amount2     float64 `yaml:"amount_cutoff2"`
	MarketType  string  `yaml:"market_type"`
	Description string  `yaml:"description"`
	Notes       string  `yaml:"notes"`

	date1 time.Time
	date2 time.Time
}

// Thresholds converts the config into scorer inputs.
func (c *Config) Thresholds() score.Thresholds {
	return score.Thresholds{
		DateCutoff1:   c.date1,
		DateCutoff2:   c.date2,
		AmountCutoff1: c.Amount1,
		AmountCutoff2: c.Amount2,
	}
}

// validate parses the dates and checks internal consistency. A missing or
// malformed FIPS code or threshold is a configuration error and aborts the
// run before any matching begins.
func (c *Config) validate() error {
	if c.FIPS == "" {
		return eris.New("region: fips_code is required")
	}
	var err error
	if c.date1, err = time.Parse("2006-01-02", c.DateCutoff1); err != nil {
		return eris.Wrapf(err, "region %s: parse date_cutoff1", c.Code)
	}
	if c.date2, err = time.Parse("2006-01-02", c.DateCutoff2); err != nil {
		return eris.Wrapf(err, "region %s: parse date_cutoff2", c.Code)
	}
	if !c.date1.Before(c.date2) {
		return eris.Errorf("region %s: date_cutoff1 (%s) must be older than date_cutoff2 (%s)",
			c.Code, c.DateCutoff1, c.DateCutoff2)
	}
	if c.Amount1 <= 0 || c.Amount2 <= 0 {
		return eris.Errorf("region %s: amount cutoffs must be > 0", c.Code)
	}
	if c.Amount1 >= c.Amount2 {
		zap.L().Warn("region amount_cutoff1 >= amount_cutoff2",
			zap.String("region", c.Code),
			zap.Float64("amount1", c.Amount1),
			zap.Float64("amount2", c.Amount2),
		)
	}
	return nil
}

// Manager holds every configured region, keyed by directory name.
type Manager struct {
	dir     string
	configs map[string]*Config
}

// NewManager walks regionsDir and loads every region that carries a
// config.yaml. Directories with a broken config fail the load outright:
// silently skipping a region risks mailing against stale data.
func NewManager(regionsDir string) (*Manager, error) {
	entries, err := os.ReadDir(regionsDir)
	if err != nil {
		return nil, eris.Wrapf(err, "region: read dir %s", regionsDir)
	}

	m := &Manager{dir: regionsDir, configs: make(map[string]*Config)}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(regionsDir, e.Name(), "config.yaml")
		if _, statErr := os.Stat(path); statErr != nil {
			zap.L().Warn("region directory has no config.yaml", zap.String("region", e.Name()))
			continue
		}
		cfg, loadErr := loadConfig(path)
		if loadErr != nil {
			return nil, loadErr
		}
		m.configs[e.Name()] = cfg
	}

	zap.L().Info("regions loaded", zap.Int("count", len(m.configs)))
	return m, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "region: read %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, eris.Wrapf(err, "region: parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns one region's config.
func (m *Manager) Get(key string) (*Config, error) {
	cfg, ok := m.configs[key]
	if !ok {
		return nil, eris.Errorf("region: %q not configured (available: %v)", key, m.Keys())
	}
	return cfg, nil
}

// Dir returns the data directory for a region.
func (m *Manager) Dir(key string) string {
	return filepath.Join(m.dir, key)
}

// Keys returns the configured region keys, sorted.
func (m *Manager) Keys() []string {
	keys := make([]string, 0, len(m.configs))
	for k := range m.configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
