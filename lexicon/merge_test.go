package lexicon

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLines(t *testing.T) {
	a := strings.NewReader("NGO n g o\n\nBIDA b i d a\n")
	b := strings.NewReader("\r\nFOUDA f u l a\r\nBIDA b i d a")

	lines, err := MergeLines(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"BIDA b i d a",
		"BIDA b i d a",
		"FOUDA f u l a",
		"NGO n g o",
	}, lines)
}

func TestWriteLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"none", nil, ""},
		{"one", []string{"NGO n g o"}, "NGO n g o"},
		{"two", []string{"BIDA b i d a", "NGO n g o"}, "BIDA b i d a\nNGO n g o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteLines(&buf, tt.lines))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestMergeFiles_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.dict")
	second := filepath.Join(dir, "b.dict")
	require.NoError(t, os.WriteFile(first, []byte("OMGBA u m b a\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("BILONG b i l N\n"), 0o644))

	lines, err := MergeFiles(first, second)
	require.NoError(t, err)

	out := filepath.Join(dir, "merged.dict")
	require.NoError(t, WriteFile(out, lines))

	lex, err := LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"BILONG", "OMGBA"}, lex.Words())
}

func TestMergeFiles_Missing(t *testing.T) {
	_, err := MergeFiles(filepath.Join(t.TempDir(), "missing.dict"))
	assert.Error(t, err)
}
