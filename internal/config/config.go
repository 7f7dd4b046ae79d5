package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the jobscout scanner.
type Config struct {
	HTTP    HTTPConfig
	Cache   CacheConfig
	Scan    ScanConfig
	Store   StoreConfig
	Sources SourcesConfig
	Aliases AliasConfig
}

// HTTPConfig controls request timeouts.
type HTTPConfig struct {
	Timeout     time.Duration // per-request timeout
	RunDeadline time.Duration // overall deadline for one scan
}

// CacheConfig controls the query-result cache.
type CacheConfig struct {
	Dir string
	TTL time.Duration
}

// StoreConfig controls the seen-links database used by --new-only.
type StoreConfig struct {
	Path string
}

// ScanConfig holds default scan parameters, overridable per-run via flags.
type ScanConfig struct {
	SortBy string `yaml:"sort_by"` // "location", "keyword" or "published at"
	Limit  int    `yaml:"limit"`   // max results requested per source call
	Output string `yaml:"output"`  // CSV output path
}

// SourcesConfig holds per-source endpoints and credentials.
type SourcesConfig struct {
	Remotive  RemotiveConfig
	Adzuna    AdzunaConfig
	Arbeitnow ArbeitnowConfig
	RemoteOK  RemoteOKConfig
	Airtable  AirtableConfig
}

type RemotiveConfig struct {
	Enabled bool
	URL     string
}

type AdzunaConfig struct {
	Enabled bool
	URL     string // base URL; country code and page number are appended as path segments
	AppID   string
	AppKey  string
}

type ArbeitnowConfig struct {
	Enabled bool
	URL     string
}

type RemoteOKConfig struct {
	Enabled bool
	URL     string
}

type AirtableConfig struct {
	Enabled  bool
	EmbedURL string
	// BaseHeaders are sent on every request to the backend; the handshake
	// merges the per-session auth headers on top of them.
	BaseHeaders map[string]string
}

const (
	defaultRemotiveURL  = "https://remotive.com/api/remote-jobs"
	defaultAdzunaURL    = "https://api.adzuna.com/v1/api/jobs"
	defaultArbeitnowURL = "https://www.arbeitnow.com/api/job-board-api"
	defaultRemoteOKURL  = "https://remoteok.com/api"
	defaultAirtableURL  = "https://airtable.com/embed/appwewqLk7iUY4azc/shrQBuWjXd0YgPqV6/tblnk93ouV3B2ce9b?viewControls=on"
)

func defaultAirtableHeaders() map[string]string {
	return map[string]string{
		"Accept":                          "*/*",
		"User-Agent":                      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"X-Airtable-Accept-Msgpack":       "true",
		"X-Airtable-Inter-Service-Client": "webClient",
		"X-Early-Prefetch":                "true",
		"X-Requested-With":                "XMLHttpRequest",
		"X-Time-Zone":                     "Europe/London",
		"X-User-Locale":                   "en",
	}
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	HTTP    rawHTTPConfig    `yaml:"http"`
	Cache   rawCacheConfig   `yaml:"cache"`
	Scan    ScanConfig       `yaml:"scan"`
	Store   rawStoreConfig   `yaml:"store"`
	Sources rawSourcesConfig `yaml:"sources"`
	Aliases rawAliasConfig   `yaml:"aliases"`
}

type rawHTTPConfig struct {
	Timeout     string `yaml:"timeout"`
	RunDeadline string `yaml:"run_deadline"`
}

type rawCacheConfig struct {
	Dir string `yaml:"dir"`
	TTL string `yaml:"ttl"`
}

type rawStoreConfig struct {
	Path string `yaml:"path"`
}

type rawSourcesConfig struct {
	Remotive  rawSourceConfig `yaml:"remotive"`
	Adzuna    rawAdzunaConfig `yaml:"adzuna"`
	Arbeitnow rawSourceConfig `yaml:"arbeitnow"`
	RemoteOK  rawSourceConfig `yaml:"remoteok"`
	Airtable  rawSourceConfig `yaml:"airtable"`
}

type rawSourceConfig struct {
	Disabled bool   `yaml:"disabled"`
	URL      string `yaml:"url"`
}

type rawAdzunaConfig struct {
	Disabled bool   `yaml:"disabled"`
	URL      string `yaml:"url"`
	AppID    string `yaml:"app_id"`
	AppKey   string `yaml:"app_key"`
}

type rawAliasConfig struct {
	Countries map[string]string   `yaml:"countries"`
	Cities    map[string][]string `yaml:"cities"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:     30 * time.Second,
			RunDeadline: 3 * time.Minute,
		},
		Cache: CacheConfig{
			Dir: filepath.Join(xdg.CacheHome, "jobscout"),
			TTL: 15 * time.Minute,
		},
		Store: StoreConfig{
			Path: filepath.Join(xdg.DataHome, "jobscout", "seen.db"),
		},
		Scan: ScanConfig{
			SortBy: "location",
			Limit:  300,
			Output: "jobs.csv",
		},
		Sources: SourcesConfig{
			Remotive:  RemotiveConfig{Enabled: true, URL: defaultRemotiveURL},
			Adzuna:    AdzunaConfig{Enabled: true, URL: defaultAdzunaURL},
			Arbeitnow: ArbeitnowConfig{Enabled: true, URL: defaultArbeitnowURL},
			RemoteOK:  RemoteOKConfig{Enabled: true, URL: defaultRemoteOKURL},
			Airtable: AirtableConfig{
				Enabled:     true,
				EmbedURL:    defaultAirtableURL,
				BaseHeaders: defaultAirtableHeaders(),
			},
		},
		Aliases: AliasConfig{
			Countries: DefaultCountries(),
			Cities:    DefaultCities(),
		},
	}
}

// Load reads and parses the YAML config file at path and overlays it on the
// defaults. Environment variable references in the file are expanded first,
// so credentials can live outside the file (app_key: ${ADZUNA_APP_KEY}).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.HTTP.Timeout != "" {
		cfg.HTTP.Timeout, err = time.ParseDuration(raw.HTTP.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse http.timeout %q: %w", raw.HTTP.Timeout, err)
		}
	}
	if raw.HTTP.RunDeadline != "" {
		cfg.HTTP.RunDeadline, err = time.ParseDuration(raw.HTTP.RunDeadline)
		if err != nil {
			return nil, fmt.Errorf("parse http.run_deadline %q: %w", raw.HTTP.RunDeadline, err)
		}
	}
	if raw.Cache.Dir != "" {
		cfg.Cache.Dir = raw.Cache.Dir
	}
	if raw.Cache.TTL != "" {
		cfg.Cache.TTL, err = time.ParseDuration(raw.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("parse cache.ttl %q: %w", raw.Cache.TTL, err)
		}
	}
	if raw.Store.Path != "" {
		cfg.Store.Path = raw.Store.Path
	}
	if raw.Scan.SortBy != "" {
		cfg.Scan.SortBy = raw.Scan.SortBy
	}
	if raw.Scan.Limit > 0 {
		cfg.Scan.Limit = raw.Scan.Limit
	}
	if raw.Scan.Output != "" {
		cfg.Scan.Output = raw.Scan.Output
	}

	applySource(&cfg.Sources.Remotive.Enabled, &cfg.Sources.Remotive.URL, raw.Sources.Remotive)
	applySource(&cfg.Sources.Arbeitnow.Enabled, &cfg.Sources.Arbeitnow.URL, raw.Sources.Arbeitnow)
	applySource(&cfg.Sources.RemoteOK.Enabled, &cfg.Sources.RemoteOK.URL, raw.Sources.RemoteOK)
	applySource(&cfg.Sources.Airtable.Enabled, &cfg.Sources.Airtable.EmbedURL, raw.Sources.Airtable)

	cfg.Sources.Adzuna.Enabled = !raw.Sources.Adzuna.Disabled
	if raw.Sources.Adzuna.URL != "" {
		cfg.Sources.Adzuna.URL = raw.Sources.Adzuna.URL
	}
	cfg.Sources.Adzuna.AppID = raw.Sources.Adzuna.AppID
	cfg.Sources.Adzuna.AppKey = raw.Sources.Adzuna.AppKey

	// Alias overrides extend the built-in tables rather than replacing them.
	for name, code := range raw.Aliases.Countries {
		cfg.Aliases.Countries[name] = code
	}
	for city, ids := range raw.Aliases.Cities {
		cfg.Aliases.Cities[city] = ids
	}

	return cfg, nil
}

func applySource(enabled *bool, url *string, raw rawSourceConfig) {
	*enabled = !raw.Disabled
	if raw.URL != "" {
		*url = raw.URL
	}
}
