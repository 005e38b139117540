package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ieee0824/g2pdict/g2p"
	"github.com/ieee0824/g2pdict/internal/fsutil"
	"github.com/ieee0824/g2pdict/lexicon"
	"github.com/ieee0824/g2pdict/phoneme"
)

// auditEntry compares the rule scan of one dictionary word with its entry.
type auditEntry struct {
	Word     string
	Want     phoneme.Pronunciation
	Got      phoneme.Pronunciation
	Distance int
}

type auditSummary struct {
	Entries     int // words in the dictionary
	Scanned     int // apostrophe-free words the rules could read
	Exact       int
	Unscannable int
	Silent      int // scans with no audible unit
	Foreign     int // dictionary entries using units outside the inventory
	TotalDist   int
	Worst       []auditEntry
}

func (s auditSummary) MeanDistance() float64 {
	if s.Scanned == 0 {
		return 0
	}
	return float64(s.TotalDist) / float64(s.Scanned)
}

// audit re-runs the rules over every apostrophe-free dictionary word and
// keeps the worst entries by edit distance.
func audit(engine *g2p.Engine, lex *lexicon.Lexicon, worst int) auditSummary {
	s := auditSummary{Entries: lex.Len()}
	var all []auditEntry

	for _, w := range lex.Words() {
		want, _ := lex.Lookup(w)
		if len(want.Unknown()) > 0 {
			s.Foreign++
		}
		if strings.ContainsRune(w, '\'') {
			continue
		}
		got, err := engine.Scan(g2p.NewWordForm(w).Key)
		if err != nil {
			s.Unscannable++
			continue
		}
		d := lexicon.PhonemeEditDistance(got, want)

		s.Scanned++
		s.TotalDist += d
		if d == 0 {
			s.Exact++
		}
		if len(got.Audible()) == 0 {
			s.Silent++
		}
		all = append(all, auditEntry{Word: w, Want: want, Got: got, Distance: d})
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Distance > all[j].Distance })
	for _, e := range all {
		if len(s.Worst) >= worst || e.Distance == 0 {
			break
		}
		s.Worst = append(s.Worst, e)
	}
	return s
}

func printAudit(w io.Writer, s auditSummary) {
	fmt.Fprintf(w, "Entries:        %d\n", s.Entries)
	fmt.Fprintf(w, "Scanned:        %d\n", s.Scanned)
	fmt.Fprintf(w, "Exact matches:  %d\n", s.Exact)
	fmt.Fprintf(w, "Mean distance:  %.3f\n", s.MeanDistance())
	fmt.Fprintf(w, "Unscannable:    %d\n", s.Unscannable)
	if s.Silent > 0 {
		fmt.Fprintf(w, "Silent scans:   %d (every unit silent, e.g. a lone H)\n", s.Silent)
	}
	if s.Foreign > 0 {
		fmt.Fprintf(w, "Foreign units:  %d entries use units outside the inventory\n", s.Foreign)
	}
	if len(s.Worst) > 0 {
		fmt.Fprintln(w, "\nWorst entries:")
		for _, e := range s.Worst {
			fmt.Fprintf(w, "  %-20s d=%d  dictionary=%q rules=%q\n", e.Word, e.Distance, e.Want.String(), e.Got.String())
		}
	}
}

func auditCmd(a *app) *cobra.Command {
	var worst int

	cmd := &cobra.Command{
		Use:   "audit <dictionary>",
		Short: "Compare the spelling rules against an existing dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fsutil.RequireFile(args[0]); err != nil {
				return err
			}
			lex, err := lexicon.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("load dictionary: %w", err)
			}
			engine, err := g2p.New(g2p.WithLogger(a.logger))
			if err != nil {
				return err
			}
			printAudit(cmd.OutOrStdout(), audit(engine, lex, worst))
			return nil
		},
	}

	cmd.Flags().IntVarP(&worst, "worst", "n", 10, "number of worst entries to list")
	return cmd
}
