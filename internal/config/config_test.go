package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unforced-Dev/natal-engine-sub000/internal/aspects"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/compat"
	"github.com/Unforced-Dev/natal-engine-sub000/internal/humandesign"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"NATAL_PORT", "NATAL_DB_PATH", "NATAL_ADMIN_KEY", "NATAL_CACHE_SIZE",
		"NATAL_EPHEMERIS_URL", "NATAL_RULES", "CORS_ORIGINS", "NATAL_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/natal.db", cfg.DBPath)
	assert.Equal(t, 4096, cfg.CacheSize)
	assert.Empty(t, cfg.AdminKey)
	assert.Empty(t, cfg.EphemerisURL)
	assert.Nil(t, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("NATAL_PORT", "9000")
	t.Setenv("NATAL_DB_PATH", "/tmp/x.db")
	t.Setenv("NATAL_CACHE_SIZE", "0")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("NATAL_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Zero(t, cfg.CacheSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for k, v := range map[string]string{
		"NATAL_PORT":       "eighty",
		"NATAL_CACHE_SIZE": "-1",
		"NATAL_LOG_LEVEL":  "loud",
	} {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := Load()
			assert.ErrorContains(t, err, v)
		})
	}
}

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, aspects.Default, rules.Aspects)
	assert.Equal(t, compat.DefaultConfig, rules.Compat)
	assert.Equal(t, humandesign.DefaultSolver, rules.Solver)
}

func TestLoadRulesPartialOverride(t *testing.T) {
	path := writeRules(t, `
compat:
  baseline: 40
  include_minor: true
solver:
  max_iterations: 50
`)
	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 40.0, rules.Compat.Baseline)
	assert.True(t, rules.Compat.IncludeMinor)
	assert.Equal(t, compat.DefaultConfig.KeyPairs, rules.Compat.KeyPairs, "absent keys keep defaults")
	assert.Equal(t, aspects.Default, rules.Aspects)
	assert.Equal(t, 50, rules.Solver.MaxIterations)
	assert.Equal(t, humandesign.DefaultSolver.Tolerance, rules.Solver.Tolerance)
}

func TestLoadRulesReplacesAspectTable(t *testing.T) {
	path := writeRules(t, `
aspects:
  - {name: Conjunction, angle: 0, orb: 6, harmony: 0.5}
  - {name: Opposition, angle: 180, orb: 6, harmony: -0.5}
`)
	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules.Aspects, 2)
	assert.Equal(t, "Opposition", rules.Aspects[1].Name)
	assert.Len(t, aspects.Default, len(DefaultRules().Aspects), "defaults untouched")
}

func TestLoadRulesValidates(t *testing.T) {
	_, err := LoadRules(writeRules(t, "aspects:\n  - {name: Square, angle: 90, orb: -1}\n"))
	assert.ErrorContains(t, err, "negative orb")

	_, err = LoadRules(writeRules(t, "compat:\n  other_weight: 0.9\n"))
	assert.ErrorContains(t, err, "compat")

	_, err = LoadRules(writeRules(t, "solver:\n  max_iterations: -3\n"))
	assert.ErrorContains(t, err, "solver: max iterations -3")

	_, err = LoadRules(writeRules(t, "solver:\n  tolerance: -0.5\n"))
	assert.ErrorContains(t, err, "solver: tolerance")

	_, err = LoadRules(writeRules(t, "aspects: [unterminated"))
	assert.ErrorContains(t, err, "parse rules")

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read rules")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"": slog.LevelInfo, "warn": slog.LevelWarn, "warning": slog.LevelWarn, " error ": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
