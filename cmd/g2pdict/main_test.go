package main

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ieee0824/g2pdict/corpus"
	"github.com/ieee0824/g2pdict/g2p"
	"github.com/ieee0824/g2pdict/internal/fsutil"
	"github.com/ieee0824/g2pdict/lexicon"
)

// execute runs a fresh root command and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// workdir moves the test into an empty directory with no config in scope.
func workdir(t *testing.T) string {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("G2PDICT_CONFIG", "")
	t.Setenv("G2PDICT_REVIEW_DB", filepath.Join(dir, "review.db"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestVersionCmd(t *testing.T) {
	orig := version
	version = "test-version-1.0.0"
	defer func() { version = orig }()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "g2pdict version test-version-1.0.0")
}

func TestGenerateCmd(t *testing.T) {
	dir := workdir(t)
	writeFile(t, "oov.txt", "YAOUNDE\r\nM'BIDA\nL'AMI\nNGUIDJOL\nD\n\nP\nÇA\n")
	writeFile(t, "base.dict", "M' m\nBIDA b i d a\n")

	out, stderr, err := execute(t, "generate", "oov.txt", "base.dict", "new.dict",
		"--report", "report.yaml", "--metrics-file", "g2pdict.prom", "--record", "--workers", "3")
	require.NoError(t, err, stderr)

	assert.Equal(t, "M'BIDA m b i d a\nNGUIDJOL g i Z o l\nP p e\nYAOUNDE j a u n d e", readFile(t, "new.dict"))
	assert.Contains(t, out, "Certain:    3")
	assert.Contains(t, out, "Guessed:    1")
	assert.Contains(t, out, "Undecided:  1")
	assert.Contains(t, out, "Dropped:    1")
	assert.Contains(t, out, "Failed:     1")
	assert.Contains(t, out, "  D d\n")
	assert.Contains(t, out, "Queued for review as run ")
	assert.Contains(t, stderr, "transcription failed")

	var rep report
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, "report.yaml")), &rep))
	assert.Equal(t, 7, rep.Processed)
	assert.Equal(t, []string{"L'AMI"}, rep.Dropped)
	assert.Equal(t, map[string]string{"D": "d"}, rep.Undecided)
	require.Len(t, rep.Failed, 1)
	assert.Equal(t, "ÇA", rep.Failed[0].Word)

	assert.Contains(t, readFile(t, "g2pdict.prom"), `g2pdict_words_total{tier="certain"} 3`)

	out, _, err = execute(t, "review", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "D")
	assert.Contains(t, out, "YAOUNDE")
	assert.NotContains(t, out, "NGUIDJOL")
	assert.FileExists(t, filepath.Join(dir, "review.db"))
}

func TestGenerateCmd_ConfigTables(t *testing.T) {
	workdir(t)
	writeFile(t, "g2pdict.yaml", "generate:\n  proper_nouns:\n    ESSOMBA: e s o m b a\n  single_chars:\n    H: a S\n")
	writeFile(t, "oov.txt", "Essomba\nH\n")
	writeFile(t, "base.dict", "")

	_, stderr, err := execute(t, "generate", "oov.txt", "base.dict", "new.dict")
	require.NoError(t, err, stderr)
	assert.Equal(t, "ESSOMBA e s o m b a\nH a S", readFile(t, "new.dict"))
}

func TestGenerateCmd_Errors(t *testing.T) {
	workdir(t)
	writeFile(t, "oov.txt", "YAOUNDE\n")
	writeFile(t, "base.dict", "BIDA b i d a\n")
	writeFile(t, "exists.dict", "")
	writeFile(t, "broken.dict", "BIDA\n")

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"missing_oov", []string{"generate", "nope.txt", "base.dict", "new.dict"}, fsutil.ErrNotFound},
		{"missing_dict", []string{"generate", "oov.txt", "nope.dict", "new.dict"}, fsutil.ErrNotFound},
		{"output_exists", []string{"generate", "oov.txt", "base.dict", "exists.dict"}, fsutil.ErrAlreadyExists},
		{"forbidden_name", []string{"generate", "oov.txt", "base.dict", "new?.dict"}, fsutil.ErrForbiddenName},
		{"malformed_dict", []string{"generate", "oov.txt", "broken.dict", "new.dict"}, lexicon.ErrMalformedEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.NoFileExists(t, "new.dict")

	_, _, err := execute(t, "generate", "oov.txt")
	assert.Error(t, err)
}

func TestMergeCmd(t *testing.T) {
	workdir(t)
	writeFile(t, "a.dict", "YAOUNDE j a u n d e\n\nBIDA b i d a\n")
	writeFile(t, "b.dict", "M' m")

	out, _, err := execute(t, "merge", "-o", "all.dict", "a.dict", "b.dict")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 lines to all.dict")
	assert.Equal(t, "BIDA b i d a\nM' m\nYAOUNDE j a u n d e", readFile(t, "all.dict"))

	_, _, err = execute(t, "merge", "-o", "all.dict", "a.dict")
	assert.ErrorIs(t, err, fsutil.ErrAlreadyExists)

	_, _, err = execute(t, "merge", "-o", "other.dict", "a.dict", "missing.dict")
	assert.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = execute(t, "merge", "a.dict")
	assert.Error(t, err, "--out is required")
}

func createDOCX(t *testing.T, path string, paragraphs ...string) {
	t.Helper()
	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// createWAV writes a silent 16 kHz mono recording of the given length.
func createWAV(t *testing.T, path string, frames int) {
	t.Helper()
	var buf bytes.Buffer
	dataSize := uint32(frames * 2)
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVEfmt ")
	for _, v := range []any{uint32(16), uint16(1), uint16(1), uint32(16000), uint32(32000), uint16(2), uint16(16)} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLabCmd(t *testing.T) {
	dir := workdir(t)
	createDOCX(t, "text.docx", "Bonjour Yaoundé", "   ", "Au revoir")
	require.NoError(t, os.Mkdir("wavs", 0o755))
	createWAV(t, filepath.Join("wavs", "s02.wav"), 8000)
	createWAV(t, filepath.Join("wavs", "s01.wav"), 16000)
	writeFile(t, filepath.Join("wavs", "notes.txt"), "ignored")

	out, stderr, err := execute(t, "lab", "text.docx", "wavs", "labs")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "Wrote 2 lab files to labs (1.5s of audio)")
	assert.Equal(t, "Bonjour Yaoundé", readFile(t, filepath.Join(dir, "labs", "s01.lab")))
	assert.Equal(t, "Au revoir", readFile(t, filepath.Join(dir, "labs", "s02.lab")))

	_, _, err = execute(t, "lab", "text.docx", "wavs", "labs")
	assert.ErrorIs(t, err, fsutil.ErrAlreadyExists)
}

func TestLabCmd_Errors(t *testing.T) {
	workdir(t)
	createDOCX(t, "text.docx", "un", "deux", "trois")
	require.NoError(t, os.Mkdir("wavs", 0o755))
	createWAV(t, filepath.Join("wavs", "a.wav"), 100)
	createWAV(t, filepath.Join("wavs", "b.wav"), 100)

	_, _, err := execute(t, "lab", "text.docx", "wavs", "labs")
	var cm *corpus.CountMismatchError
	require.ErrorAs(t, err, &cm)
	assert.Equal(t, 3, cm.Paragraphs)
	assert.Equal(t, 2, cm.WAVs)
	assert.NoDirExists(t, "labs")

	_, _, err = execute(t, "lab", "missing.docx", "wavs", "labs")
	assert.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = execute(t, "lab", "text.docx", "missing", "labs")
	assert.ErrorIs(t, err, fsutil.ErrNotFound)

	writeFile(t, filepath.Join("wavs", "c.wav"), "not audio")
	_, _, err = execute(t, "lab", "text.docx", "wavs", "labs")
	assert.Error(t, err)
	assert.NoDirExists(t, "labs")
}

func TestAudit(t *testing.T) {
	lex, err := lexicon.Build("NDOP n d o p\nYAOUNDE j a u n d e\nH a S\nÇA s a\nM'BIDA m b i d a\n")
	require.NoError(t, err)

	s := audit(g2p.Default(), lex, 10)
	assert.Equal(t, 5, s.Entries)
	assert.Equal(t, 3, s.Scanned)
	assert.Equal(t, 1, s.Exact)
	assert.Equal(t, 1, s.Unscannable)
	assert.Equal(t, 1, s.Silent)
	assert.InDelta(t, 1.0, s.MeanDistance(), 1e-9)
	require.Len(t, s.Worst, 2)
	assert.Equal(t, "H", s.Worst[0].Word)
	assert.Equal(t, 2, s.Worst[0].Distance)
	assert.Equal(t, "NDOP", s.Worst[1].Word)

	assert.Equal(t, 0, s.Foreign)

	s = audit(g2p.Default(), lex, 1)
	assert.Len(t, s.Worst, 1)

	lex, err = lexicon.Build("BUS b @ s\nL'AMI l a m i\n")
	require.NoError(t, err)
	assert.Equal(t, 1, audit(g2p.Default(), lex, 10).Foreign)
}

func TestAuditCmd(t *testing.T) {
	workdir(t)
	writeFile(t, "base.dict", "NDOP n d o p\nYAOUNDE j a u n d e\n")

	out, _, err := execute(t, "audit", "base.dict")
	require.NoError(t, err)
	assert.Contains(t, out, "Exact matches:  1")
	assert.Contains(t, out, "NDOP")
}

func TestReviewCmds(t *testing.T) {
	workdir(t)
	writeFile(t, "oov.txt", "YAOUNDE\nD\nQU\n")
	writeFile(t, "base.dict", "")

	_, _, err := execute(t, "generate", "oov.txt", "base.dict", "new.dict", "--record")
	require.NoError(t, err)

	out, _, err := execute(t, "review", "list", "--tier", "undecided")
	require.NoError(t, err)
	assert.Contains(t, out, "QU")
	assert.NotContains(t, out, "YAOUNDE")

	_, _, err = execute(t, "review", "list", "--tier", "maybe")
	assert.Error(t, err)

	out, _, err = execute(t, "review", "resolve", "D", "d", "e")
	require.NoError(t, err)
	assert.Contains(t, out, "Approved D d e")

	_, _, err = execute(t, "review", "resolve", "YAOUNDE")
	require.NoError(t, err)
	_, _, err = execute(t, "review", "reject", "QU")
	require.NoError(t, err)

	out, _, err = execute(t, "review", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to review.")

	out, _, err = execute(t, "review", "export")
	require.NoError(t, err)
	assert.Equal(t, "D d e\nYAOUNDE j a u n d e\n", out)

	_, _, err = execute(t, "review", "export", "-o", "approved.dict")
	require.NoError(t, err)
	assert.Equal(t, "D d e\nYAOUNDE j a u n d e", readFile(t, "approved.dict"))

	_, _, err = execute(t, "review", "reject", "MISSING")
	assert.Error(t, err)
}

func TestConfigCmds(t *testing.T) {
	workdir(t)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ./g2pdict.yaml")
	assert.Contains(t, readFile(t, "g2pdict.yaml"), "NGUIDJOL: g i Z o l")

	_, _, err = execute(t, "config", "init")
	assert.ErrorIs(t, err, fsutil.ErrAlreadyExists)

	out, _, err = execute(t, "config", "show", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "level: debug")
	assert.Contains(t, out, "workers: 4")

	_, _, err = execute(t, "config", "show", "--config", "missing.yaml")
	assert.Error(t, err)

	_, _, err = execute(t, "config", "show", "--log-level", "loud")
	assert.Error(t, err)
}
