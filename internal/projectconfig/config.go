// Package projectconfig provides the ProjectConfig struct and loader for
// .scorecard.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up by Load.
const FileName = ".scorecard.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultCategorizerEngine  = "static"
	DefaultCategorizerModel   = "claude-sonnet-4.6"
	DefaultCategorizerTimeout = 60
	DefaultCategorizerCache   = ".scorecard/cache"

	DefaultServerPort = 3000

	DefaultDeckOutputDir = "decks/"
	DefaultDeckStyle     = "Professional"

	DefaultSessionPath = ".scorecard/session.yaml"
)

// Environment variables that override file values.
const (
	EnvCategorizer = "SCORECARD_CATEGORIZER"
	EnvModel       = "SCORECARD_MODEL"
	EnvPort        = "SCORECARD_PORT"
	EnvBlobURL     = "SCORECARD_BLOB_URL"
)

// DefaultCatalog is the predefined metric list offered by the wizard.
var DefaultCatalog = []string{
	"Video views (Franchise)",
	"Social Impressions",
	"Press UMV (unique monthly views)",
	"Social Conversation Volume",
	"Views trailer",
	"UGC Views",
	"Social Impressions-Posts with trailer (FB, IG, X)",
	"Social Impressions-All posts",
	"Nb. press articles",
	"Social Sentiment (Franchise)",
	"Trailer avg % viewed (Youtube)",
	"Email Open Rate (OR)",
	"Email Click Through Rate (CTR)",
	"Labs program sign-ups",
	"Discord channel sign-ups",
	"% Trailer views from Discord (Youtube)",
	"Labs sign up click-through Web",
	"Sessions",
	"DAU",
	"Hours Watched (Streams)",
	"CPV (Cost Per View)",
}

// DefaultSelection is the metric list preselected in a fresh session.
var DefaultSelection = []string{"Video views (Franchise)", "Social Impressions"}

// DefaultStyles are the deck style presets.
var DefaultStyles = []string{"Professional", "Vibrant", "Minimalist"}

// MetricsConfig holds the metric catalog.
type MetricsConfig struct {
	Catalog []string `yaml:"catalog,omitempty"`
	Default []string `yaml:"default,omitempty"`
}

// CategorizerConfig selects how metrics are assigned to funnel categories.
type CategorizerConfig struct {
	Engine    string            `yaml:"engine,omitempty"`
	Model     string            `yaml:"model,omitempty"`
	Timeout   int               `yaml:"timeout,omitempty"`
	Overrides map[string]string `yaml:"overrides,omitempty"`
	CacheDir  string            `yaml:"cache_dir,omitempty"`
}

// TimeoutDuration returns Timeout in seconds as a time.Duration.
func (c CategorizerConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// DeckConfig holds deck bundle export settings.
type DeckConfig struct {
	OutputDir        string   `yaml:"output_dir,omitempty"`
	Styles           []string `yaml:"styles,omitempty"`
	DefaultStyle     string   `yaml:"default_style,omitempty"`
	BlobContainerURL string   `yaml:"blob_container_url,omitempty"`
}

// HasStyle reports whether name is one of the configured presets.
func (d DeckConfig) HasStyle(name string) bool {
	for _, s := range d.Styles {
		if s == name {
			return true
		}
	}
	return false
}

// SessionConfig holds wizard session persistence settings.
type SessionConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .scorecard.yaml.
type ProjectConfig struct {
	Metrics     MetricsConfig     `yaml:"metrics,omitempty"`
	Categorizer CategorizerConfig `yaml:"categorizer,omitempty"`
	Server      ServerConfig      `yaml:"server,omitempty"`
	Deck        DeckConfig        `yaml:"deck,omitempty"`
	Session     SessionConfig     `yaml:"session,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Metrics: MetricsConfig{
			Catalog: append([]string(nil), DefaultCatalog...),
			Default: append([]string(nil), DefaultSelection...),
		},
		Categorizer: CategorizerConfig{
			Engine:   DefaultCategorizerEngine,
			Model:    DefaultCategorizerModel,
			Timeout:  DefaultCategorizerTimeout,
			CacheDir: DefaultCategorizerCache,
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Deck: DeckConfig{
			OutputDir:    DefaultDeckOutputDir,
			Styles:       append([]string(nil), DefaultStyles...),
			DefaultStyle: DefaultDeckStyle,
		},
		Session: SessionConfig{
			Path: DefaultSessionPath,
		},
	}
}

// Load finds .scorecard.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// ApplyEnv overlays SCORECARD_* environment overrides using getenv, which is
// os.Getenv outside of tests.
func (c *ProjectConfig) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvCategorizer)); v != "" {
		c.Categorizer.Engine = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		c.Categorizer.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		c.Server.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvBlobURL)); v != "" {
		c.Deck.BlobContainerURL = v
	}
	return nil
}

// findConfigFile walks up from dir looking for .scorecard.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Metrics
	if len(src.Metrics.Catalog) > 0 {
		dst.Metrics.Catalog = src.Metrics.Catalog
	}
	if len(src.Metrics.Default) > 0 {
		dst.Metrics.Default = src.Metrics.Default
	}

	// Categorizer
	if src.Categorizer.Engine != "" {
		dst.Categorizer.Engine = src.Categorizer.Engine
	}
	if src.Categorizer.Model != "" {
		dst.Categorizer.Model = src.Categorizer.Model
	}
	if src.Categorizer.Timeout != 0 {
		dst.Categorizer.Timeout = src.Categorizer.Timeout
	}
	if src.Categorizer.CacheDir != "" {
		dst.Categorizer.CacheDir = src.Categorizer.CacheDir
	}
	if src.Categorizer.Overrides != nil {
		dst.Categorizer.Overrides = src.Categorizer.Overrides
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}

	// Deck
	if src.Deck.OutputDir != "" {
		dst.Deck.OutputDir = src.Deck.OutputDir
	}
	if len(src.Deck.Styles) > 0 {
		dst.Deck.Styles = src.Deck.Styles
		if !dst.Deck.HasStyle(dst.Deck.DefaultStyle) {
			dst.Deck.DefaultStyle = src.Deck.Styles[0]
		}
	}
	if src.Deck.DefaultStyle != "" {
		dst.Deck.DefaultStyle = src.Deck.DefaultStyle
	}
	if src.Deck.BlobContainerURL != "" {
		dst.Deck.BlobContainerURL = src.Deck.BlobContainerURL
	}

	// Session
	if src.Session.Path != "" {
		dst.Session.Path = src.Session.Path
	}
}
