package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultMatchesStockLedger(t *testing.T) {
	lc, err := Default().LedgerConfig()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultLedgerConfig(), lc)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "swipecity.yaml", `
seed: 9
cascade_depth: 2
resources:
  Economy:
    initial: 30
dependencies:
  economy:
    factor: 0
  happiness:
    target: technology
    factor: 0.5
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 2, cfg.CascadeDepth)
	assert.Equal(t, ResourceConfig{Initial: 30, Min: 0, Max: 100}, cfg.Resources["economy"])

	lc, err := cfg.LedgerConfig()
	require.NoError(t, err)
	l, err := game.NewLedger(lc)
	require.NoError(t, err)
	assert.Equal(t, 30, l.Value(game.Economy))

	_, ok := l.Dependency(game.Economy)
	assert.False(t, ok, "zero factor disables the entry")
	dep, ok := l.Dependency(game.Happiness)
	require.True(t, ok)
	assert.Equal(t, game.Technology, dep.Target)
}

func TestEnvAndFlagPrecedence(t *testing.T) {
	path := writeFile(t, "swipecity.yaml", "seed: 9\ncascade_depth: 2\n")
	t.Setenv("SWIPECITY_SEED", "42")
	t.Setenv("SWIPECITY_RESOURCES_HAPPINESS_INITIAL", "70")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 70, cfg.Resources["happiness"].Initial)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int64("seed", 0, "")
	flags.Int("cascade-depth", 1, "")
	require.NoError(t, flags.Parse([]string{"--seed", "7"}))

	cfg, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 2, cfg.CascadeDepth, "unset flag does not override the file")
}

func TestLoadRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"cycle", "dependencies:\n  happiness: {target: economy, factor: 0.1}\n"},
		{"unknown resource", "resources:\n  morale: {initial: 5, min: 0, max: 10}\n"},
		{"unknown target", "dependencies:\n  economy: {target: morale, factor: 0.1}\n"},
		{"initial on boundary", "resources:\n  economy: {initial: 0}\n"},
		{"negative depth", "cascade_depth: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", tt.yaml), nil)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 123
	cfg.Resources["environment"] = ResourceConfig{Initial: 40, Min: 10, Max: 90}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadCatalog(t *testing.T) {
	cfg := Default()
	cards, err := cfg.LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, cards, len(game.CardRegistry))

	cfg.Catalog = writeFile(t, "cards.yaml", "cards:\n  - id: only\n    left: {label: no}\n    right: {label: yes}\n")
	ec, err := cfg.EngineConfig(nil)
	require.NoError(t, err)
	require.Len(t, ec.Catalog, 1)
	assert.Equal(t, "only", ec.Catalog[0].ID)

	cfg.Catalog = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.LoadCatalog()
	assert.Error(t, err)
}
