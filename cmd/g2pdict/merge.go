package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ieee0824/g2pdict/internal/fsutil"
	"github.com/ieee0824/g2pdict/lexicon"
)

func mergeCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "merge -o <merged-dictionary> <dictionary>...",
		Short: "Merge dictionaries into one sorted dictionary",
		Long: `Concatenates the non-empty lines of every dictionary, sorts them and
writes the result to the output file, which must not exist yet.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fsutil.ValidName(out); err != nil {
				return err
			}
			if err := fsutil.RequireAbsent(out); err != nil {
				return err
			}
			for _, path := range args {
				if err := fsutil.RequireFile(path); err != nil {
					return err
				}
			}

			lines, err := lexicon.MergeFiles(args...)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			if err := lexicon.WriteFile(out, lines); err != nil {
				return fmt.Errorf("merge: %w", err)
			}

			a.logger.Info("dictionaries merged", slog.Int("inputs", len(args)), slog.Int("lines", len(lines)))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", len(lines), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "merged dictionary to create")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
