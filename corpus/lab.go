package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ieee0824/g2pdict/internal/fsutil"
)

// Lab is one written label file.
type Lab struct {
	WAV  string // source recording
	Path string // written .lab file
	Text string
}

// CountMismatchError reports a document whose paragraphs do not line up
// with the recordings.
type CountMismatchError struct {
	Paragraphs int
	WAVs       int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%d wav files but %d paragraphs: the counts must match", e.WAVs, e.Paragraphs)
}

// WAVFiles returns the .wav files directly inside dir, sorted by name.
// The extension match ignores case.
func WAVFiles(dir string) ([]string, error) {
	if err := fsutil.RequireDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// LabName returns the .lab file name for a recording.
func LabName(wav string) string {
	base := filepath.Base(wav)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".lab"
}

// WriteLabs writes paragraphs[i] to outDir/<stem of wavs[i]>.lab.
// Nothing is created when the counts differ. outDir must not exist yet
// and its name must not contain a forbidden character.
func WriteLabs(paragraphs, wavs []string, outDir string, opts ...Option) ([]Lab, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if len(paragraphs) != len(wavs) {
		return nil, &CountMismatchError{Paragraphs: len(paragraphs), WAVs: len(wavs)}
	}
	if err := fsutil.ValidName(outDir); err != nil {
		return nil, err
	}
	if err := fsutil.RequireAbsent(outDir); err != nil {
		return nil, err
	}
	if err := os.Mkdir(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", outDir, err)
	}

	labs := make([]Lab, 0, len(wavs))
	for i, wav := range wavs {
		path := filepath.Join(outDir, LabName(wav))
		if err := os.WriteFile(path, []byte(paragraphs[i]), 0o644); err != nil {
			return labs, fmt.Errorf("write %s: %w", path, err)
		}
		o.logger.Debug("lab written", slog.String("wav", wav), slog.String("lab", path))
		labs = append(labs, Lab{WAV: wav, Path: path, Text: paragraphs[i]})
	}
	return labs, nil
}

// Option configures WriteLabs.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
