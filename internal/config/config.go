// Package config resolves runtime settings from defaults, an optional YAML
// file and COURSEPLAN_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/courseplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config holds everything main needs to wire the app.
type Config struct {
	DBPath            string   `yaml:"db_path"`
	CatalogCandidates []string `yaml:"catalog_candidates"`
	SlotsPerYear      int      `yaml:"slots_per_year"`
	FetchTimeoutMs    int      `yaml:"fetch_timeout_ms"`
	LogMode           string   `yaml:"log_mode"`
	ListenAddr        string   `yaml:"listen_addr"`
}

// DefaultConfig returns settings rooted at ~/.courseplan. The catalog is read
// from ./course-database.json first, then from the data directory.
func DefaultConfig() Config {
	dir := dataDir()
	return Config{
		DBPath: filepath.Join(dir, "courseplan.db"),
		CatalogCandidates: []string{
			"course-database.json",
			filepath.Join(dir, "course-database.json"),
		},
		SlotsPerYear:   domain.DefaultSlotsPerYear,
		FetchTimeoutMs: 10000,
		LogMode:        "dev",
		ListenAddr:     "127.0.0.1:8080",
	}
}

// FetchTimeout is the per-candidate catalog timeout.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// LoadConfig reads the YAML file named by COURSEPLAN_CONFIG (or
// ~/.courseplan/config.yaml when that exists) over the defaults, then applies
// environment overrides. A missing default file is not an error; a missing
// explicit file is.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("COURSEPLAN_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir(), "config.yaml")
	}
	if err := applyFile(&cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	merge(cfg, fileCfg)
	return nil
}

// merge copies every set field of src over dst.
func merge(dst *Config, src Config) {
	if src.DBPath != "" {
		dst.DBPath = expandHome(src.DBPath)
	}
	if len(src.CatalogCandidates) > 0 {
		dst.CatalogCandidates = src.CatalogCandidates
	}
	if src.SlotsPerYear > 0 {
		dst.SlotsPerYear = src.SlotsPerYear
	}
	if src.FetchTimeoutMs > 0 {
		dst.FetchTimeoutMs = src.FetchTimeoutMs
	}
	if src.LogMode != "" {
		dst.LogMode = src.LogMode
	}
	if src.ListenAddr != "" {
		dst.ListenAddr = src.ListenAddr
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COURSEPLAN_DB"); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := os.Getenv("COURSEPLAN_CATALOG"); v != "" {
		var candidates []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				candidates = append(candidates, c)
			}
		}
		if len(candidates) > 0 {
			cfg.CatalogCandidates = candidates
		}
	}
	if v := os.Getenv("COURSEPLAN_SLOTS_PER_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SlotsPerYear = n
		}
	}
	if v := os.Getenv("COURSEPLAN_FETCH_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutMs = n
		}
	}
	if v := os.Getenv("COURSEPLAN_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("COURSEPLAN_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".courseplan"
	}
	return filepath.Join(home, ".courseplan")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
