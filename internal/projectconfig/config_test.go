package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultCatalog, cfg.Metrics.Catalog)
	assert.Equal(t, []string{"Video views (Franchise)", "Social Impressions"}, cfg.Metrics.Default)

	assert.Equal(t, "static", cfg.Categorizer.Engine)
	assert.Equal(t, "claude-sonnet-4.6", cfg.Categorizer.Model)
	assert.Equal(t, 60*time.Second, cfg.Categorizer.TimeoutDuration())
	assert.Nil(t, cfg.Categorizer.Overrides)
	assert.Equal(t, ".scorecard/cache", cfg.Categorizer.CacheDir)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Empty(t, cfg.Server.AllowedOrigins)

	assert.Equal(t, "decks/", cfg.Deck.OutputDir)
	assert.Equal(t, "Professional", cfg.Deck.DefaultStyle)
	assert.True(t, cfg.Deck.HasStyle("Vibrant"))
	assert.Empty(t, cfg.Deck.BlobContainerURL)

	assert.Equal(t, ".scorecard/session.yaml", cfg.Session.Path)
}

func TestNew_CatalogIsACopy(t *testing.T) {
	cfg := New()
	cfg.Metrics.Catalog[0] = "changed"
	assert.Equal(t, "Video views (Franchise)", DefaultCatalog[0])
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
metrics:
  catalog: ["DAU", "Sessions"]
  default: ["DAU"]
categorizer:
  engine: copilot
  model: gpt-4o
  timeout: 15
  overrides:
    Wishlist adds: Action
  cache_dir: tmp/cache
server:
  port: 8080
  allowed_origins: ["http://localhost:5173"]
deck:
  output_dir: out/
  styles: [Dark, Light]
  default_style: Light
  blob_container_url: https://acct.blob.core.windows.net/decks
session:
  path: state.yaml
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"DAU", "Sessions"}, cfg.Metrics.Catalog)
	assert.Equal(t, []string{"DAU"}, cfg.Metrics.Default)
	assert.Equal(t, "copilot", cfg.Categorizer.Engine)
	assert.Equal(t, "gpt-4o", cfg.Categorizer.Model)
	assert.Equal(t, 15*time.Second, cfg.Categorizer.TimeoutDuration())
	assert.Equal(t, map[string]string{"Wishlist adds": "Action"}, cfg.Categorizer.Overrides)
	assert.Equal(t, "tmp/cache", cfg.Categorizer.CacheDir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "out/", cfg.Deck.OutputDir)
	assert.Equal(t, []string{"Dark", "Light"}, cfg.Deck.Styles)
	assert.Equal(t, "Light", cfg.Deck.DefaultStyle)
	assert.Equal(t, "https://acct.blob.core.windows.net/decks", cfg.Deck.BlobContainerURL)
	assert.Equal(t, "state.yaml", cfg.Session.Path)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "server:\n  port: 9000\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "static", cfg.Categorizer.Engine)
	assert.Equal(t, DefaultCatalog, cfg.Metrics.Catalog)
	assert.Equal(t, DefaultSessionPath, cfg.Session.Path)
}

func TestLoad_StylesWithoutDefaultPicksFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "deck:\n  styles: [Neon, Retro]\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Neon", cfg.Deck.DefaultStyle)
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoad_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "categorizer:\n  engine: copilot\n")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "copilot", cfg.Categorizer.Engine)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "server: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .scorecard.yaml")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvCategorizer: "copilot",
		EnvModel:       "gpt-5",
		EnvPort:        "4242",
		EnvBlobURL:     "https://x.blob.core.windows.net/c",
	}
	cfg := New()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "copilot", cfg.Categorizer.Engine)
	assert.Equal(t, "gpt-5", cfg.Categorizer.Model)
	assert.Equal(t, 4242, cfg.Server.Port)
	assert.Equal(t, "https://x.blob.core.windows.net/c", cfg.Deck.BlobContainerURL)
}

func TestApplyEnv_EmptyLeavesValues(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.ApplyEnv(func(string) string { return "" }))
	assert.Equal(t, New(), cfg)
}

func TestApplyEnv_BadPort(t *testing.T) {
	for _, v := range []string{"abc", "0", "70000"} {
		t.Run(v, func(t *testing.T) {
			cfg := New()
			err := cfg.ApplyEnv(func(k string) string {
				if k == EnvPort {
					return v
				}
				return ""
			})
			assert.ErrorContains(t, err, EnvPort)
		})
	}
}
