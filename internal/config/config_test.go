package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "g2pdict.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// inEmptyDir runs the test from a directory without a config file.
func inEmptyDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("G2PDICT_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	inEmptyDir(t)
	path := writeYAML(t, t.TempDir(), `
log:
  level: debug
  format: json
generate:
  workers: 8
  proper_nouns:
    ESSOMBA: e s o m b a
  single_chars:
    H: a S
review:
  db: /tmp/review.db
  record: true
metrics:
  file: /tmp/g2pdict.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Generate.Workers)
	assert.Equal(t, map[string]string{"ESSOMBA": "e s o m b a"}, cfg.Generate.ProperNouns)
	assert.Equal(t, map[string]string{"H": "a S"}, cfg.Generate.SingleChars)
	assert.Equal(t, "/tmp/review.db", cfg.Review.DB)
	assert.True(t, cfg.Review.Record)
	assert.Equal(t, "/tmp/g2pdict.prom", cfg.Metrics.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	inEmptyDir(t)
	path := writeYAML(t, t.TempDir(), "generate:\n  workers: 8\n")
	t.Setenv("G2PDICT_WORKERS", "2")
	t.Setenv("G2PDICT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Generate.Workers)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_PathFromEnv(t *testing.T) {
	inEmptyDir(t)
	path := writeYAML(t, t.TempDir(), "review:\n  db: queue.db\n")
	t.Setenv("G2PDICT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "queue.db", cfg.Review.DB)
}

func TestLoad_DefaultPath(t *testing.T) {
	inEmptyDir(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	writeYAML(t, wd, "log:\n  format: json\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Errors(t *testing.T) {
	inEmptyDir(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing_explicit", filepath.Join(dir, "nope.yaml")},
		{"bad_level", writeYAML(t, t.TempDir(), "log:\n  level: loud\n")},
		{"bad_format", writeYAML(t, t.TempDir(), "log:\n  format: xml\n")},
		{"negative_workers", writeYAML(t, t.TempDir(), "generate:\n  workers: -1\n")},
		{"bad_proper_noun", writeYAML(t, t.TempDir(), "generate:\n  proper_nouns:\n    ESSOMBA: \"\"\n")},
		{"bad_single_char", writeYAML(t, t.TempDir(), "generate:\n  single_chars:\n    QU: k y\n")},
		{"colliding_proper_nouns", writeYAML(t, t.TempDir(), "generate:\n  proper_nouns:\n    Fouda: f u d a\n    FOUDA: f u l a\n")},
		{"colliding_single_chars", writeYAML(t, t.TempDir(), "generate:\n  single_chars:\n    h: a S\n    H: a S\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	inEmptyDir(t)
	path := filepath.Join(t.TempDir(), "nested", "g2pdict.yaml")

	cfg := Default()
	cfg.Generate.ProperNouns = map[string]string{"ESSOMBA": "e s o m b a"}
	require.NoError(t, cfg.SaveToFile(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
