package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ieee0824/g2pdict/g2p"
	"github.com/ieee0824/g2pdict/internal/fsutil"
	"github.com/ieee0824/g2pdict/internal/metrics"
	"github.com/ieee0824/g2pdict/internal/review"
	"github.com/ieee0824/g2pdict/lexicon"
)

type generateOptions struct {
	report      string
	metricsFile string
	workers     int
	record      bool
}

func generateCmd(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <oov-list> <dictionary> <new-dictionary>",
		Short: "Transcribe out-of-vocabulary words into a new dictionary",
		Long: `Reads one word per line from <oov-list>, transcribes each word and
writes the certain and guessed entries to <new-dictionary>, which must
not exist yet. Undecided words are printed for review and left out.

<dictionary> is the existing pronunciation dictionary. It resolves the
two halves of apostrophe compounds such as M'BIDA.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args[0], args[1], args[2], opts)
		},
	}

	cmd.Flags().StringVar(&opts.report, "report", "", "write the tiered result as YAML to this file")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file (textfile collector)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of parallel workers (default from config)")
	cmd.Flags().BoolVar(&opts.record, "record", false, "queue guessed and undecided words in the review database")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, oovPath, dictPath, outPath string, opts generateOptions) error {
	if err := fsutil.RequireFile(oovPath); err != nil {
		return err
	}
	if err := fsutil.RequireFile(dictPath); err != nil {
		return err
	}
	if err := fsutil.ValidName(outPath); err != nil {
		return err
	}
	if err := fsutil.RequireAbsent(outPath); err != nil {
		return err
	}

	lex, err := lexicon.LoadFile(dictPath)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	oovs, err := readOOVs(oovPath)
	if err != nil {
		return fmt.Errorf("read oov list: %w", err)
	}
	a.logger.Info("inputs loaded", slog.Int("oovs", len(oovs)), slog.Int("dictionary_entries", lex.Len()))

	engine, err := g2p.New(
		g2p.WithProperNouns(a.cfg.Generate.ProperNouns),
		g2p.WithSingleChars(a.cfg.Generate.SingleChars),
		g2p.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	workers := opts.workers
	if workers < 1 {
		workers = a.cfg.Generate.Workers
	}

	start := time.Now()
	res, err := engine.TranscribeParallel(cmd.Context(), oovs, lex, workers)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, e := range res.Guessed.All() {
		if len(e.Pronunciation.Audible()) == 0 {
			a.logger.Warn("empty pronunciation", slog.String("word", e.Word))
		}
	}

	if err := lexicon.WriteFile(outPath, res.DictionaryLines()); err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}
	printSummary(cmd.OutOrStdout(), res, outPath)

	if opts.report != "" {
		if err := writeReport(opts.report, newReport(oovPath, dictPath, res)); err != nil {
			return err
		}
		a.logger.Info("report written", slog.String("path", opts.report))
	}

	metricsFile := opts.metricsFile
	if metricsFile == "" {
		metricsFile = a.cfg.Metrics.File
	}
	if metricsFile != "" {
		rec := metrics.New()
		rec.Observe(res, elapsed)
		if err := rec.WriteFile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if opts.record || a.cfg.Review.Record {
		store, err := review.Open(a.cfg.Review.DB)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.RecordRun(cmd.Context(), oovPath, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Queued for review as run %s\n", id)
	}
	return nil
}

func readOOVs(path string) ([]g2p.WordForm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return g2p.ReadWordForms(f)
}

func printSummary(w io.Writer, res *g2p.Result, outPath string) {
	fmt.Fprintf(w, "OOV words:  %d\n", res.Processed)
	fmt.Fprintf(w, "Certain:    %d\n", res.Certain.Len())
	fmt.Fprintf(w, "Guessed:    %d\n", res.Guessed.Len())
	fmt.Fprintf(w, "Undecided:  %d\n", res.Undecided.Len())
	if len(res.Dropped) > 0 {
		fmt.Fprintf(w, "Dropped:    %d (compound with a part missing from the dictionary)\n", len(res.Dropped))
	}
	if len(res.Failed) > 0 {
		fmt.Fprintf(w, "Failed:     %d\n", len(res.Failed))
		for _, f := range res.Failed {
			fmt.Fprintf(w, "  %v\n", f.Err)
		}
	}
	if res.Undecided.Len() > 0 {
		fmt.Fprintln(w, "\nUndecided words (not written):")
		for _, e := range res.Undecided.All() {
			fmt.Fprintf(w, "  %s\n", e.Line())
		}
	}
	fmt.Fprintf(w, "\nWrote %d entries to %s\n", res.Certain.Len()+res.Guessed.Len(), outPath)
}
