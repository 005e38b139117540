package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ieee0824/g2pdict/audio"
	"github.com/ieee0824/g2pdict/corpus"
	"github.com/ieee0824/g2pdict/internal/fsutil"
)

func labCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lab <transcript.docx> <wav-folder> <new-lab-folder>",
		Short: "Write one .lab file per recording from a .docx transcript",
		Long: `Pairs the non-blank paragraphs of the transcript, in order, with the
.wav files of the folder sorted by name. Each paragraph is written to
<new-lab-folder>/<recording>.lab. The paragraph and recording counts must
match, and <new-lab-folder> must not exist yet.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			docxPath, wavDir, outDir := args[0], args[1], args[2]

			if err := fsutil.RequireFile(docxPath); err != nil {
				return err
			}
			paragraphs, err := corpus.ParagraphsFile(docxPath)
			if err != nil {
				return err
			}
			wavs, err := corpus.WAVFiles(wavDir)
			if err != nil {
				return err
			}

			var total time.Duration
			for _, wav := range wavs {
				h, err := audio.ReadHeaderFile(wav)
				if err != nil {
					return err
				}
				a.logger.Debug("recording", slog.String("wav", wav), slog.Duration("duration", h.Duration()))
				total += h.Duration()
			}

			labs, err := corpus.WriteLabs(paragraphs, wavs, outDir, corpus.WithLogger(a.logger))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lab files to %s (%s of audio)\n", len(labs), outDir, total.Round(time.Millisecond))
			return nil
		},
	}
}
