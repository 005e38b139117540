package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ieee0824/g2pdict/g2p"
	"github.com/ieee0824/g2pdict/internal/fsutil"
	"github.com/ieee0824/g2pdict/internal/review"
	"github.com/ieee0824/g2pdict/lexicon"
)

func reviewCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and decide queued guessed and undecided words",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "review database (default from config)")

	open := func() (*review.Store, error) {
		path := dbPath
		if path == "" {
			path = a.cfg.Review.DB
		}
		return review.Open(path)
	}

	cmd.AddCommand(
		reviewListCmd(open),
		reviewResolveCmd(open),
		reviewRejectCmd(open),
		reviewExportCmd(open),
	)
	return cmd
}

type openStore func() (*review.Store, error)

func reviewListCmd(open openStore) *cobra.Command {
	var tier string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List words waiting for a decision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tiers := []g2p.Tier{g2p.Undecided, g2p.Guessed}
			if tier != "" {
				t, err := g2p.ParseTier(tier)
				if err != nil {
					return err
				}
				tiers = []g2p.Tier{t}
			}

			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			n := 0
			for _, t := range tiers {
				items, err := store.Pending(cmd.Context(), t)
				if err != nil {
					return err
				}
				for _, it := range items {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Word, t, it.Proposed)
					n++
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "", "only list this tier (guessed or undecided)")
	return cmd
}

func reviewResolveCmd(open openStore) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <word> [unit...]",
		Short: "Approve a word, optionally with a corrected pronunciation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Resolve(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			it, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Approved %s\n", it.Line())
			return nil
		},
	}
}

func reviewRejectCmd(open openStore) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <word>",
		Short: "Keep a word out of the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Reject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s\n", args[0])
			return nil
		},
	}
}

func reviewExportCmd(open openStore) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write approved words as dictionary lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.Approved(cmd.Context())
			if err != nil {
				return err
			}
			lines := make([]string, len(items))
			for i, it := range items {
				lines[i] = it.Line()
			}

			if out == "" {
				if err := lexicon.WriteLines(cmd.OutOrStdout(), lines); err != nil {
					return err
				}
				if len(lines) > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			}

			if err := fsutil.ValidName(out); err != nil {
				return err
			}
			if err := fsutil.RequireAbsent(out); err != nil {
				return err
			}
			if err := lexicon.WriteFile(out, lines); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d entries to %s\n", len(lines), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "dictionary file to create (default stdout)")
	return cmd
}
