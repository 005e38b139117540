package g2p

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ieee0824/g2pdict/phoneme"
)

// Entry is one transcribed word.
type Entry struct {
	Word          string
	Pronunciation phoneme.Pronunciation
}

// Line renders the entry as a dictionary line.
func (e Entry) Line() string {
	return e.Word + " " + e.Pronunciation.String()
}

// Entries is a word to pronunciation map that remembers insertion order.
// Writing an existing word replaces its pronunciation in place.
type Entries struct {
	order []string
	prons map[string]phoneme.Pronunciation
}

func newEntries() *Entries {
	return &Entries{prons: make(map[string]phoneme.Pronunciation)}
}

func (e *Entries) put(word string, p phoneme.Pronunciation) {
	if _, ok := e.prons[word]; !ok {
		e.order = append(e.order, word)
	}
	e.prons[word] = p
}

func (e *Entries) remove(word string) {
	if _, ok := e.prons[word]; !ok {
		return
	}
	delete(e.prons, word)
	for i, w := range e.order {
		if w == word {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Get returns the pronunciation stored for word.
func (e *Entries) Get(word string) (phoneme.Pronunciation, bool) {
	p, ok := e.prons[word]
	return p, ok
}

// Len returns the number of words.
func (e *Entries) Len() int {
	return len(e.order)
}

// All returns the entries in insertion order.
func (e *Entries) All() []Entry {
	out := make([]Entry, len(e.order))
	for i, w := range e.order {
		out[i] = Entry{Word: w, Pronunciation: e.prons[w]}
	}
	return out
}

// Strings returns the entries as rendered pronunciation strings.
func (e *Entries) Strings() map[string]string {
	out := make(map[string]string, len(e.prons))
	for w, p := range e.prons {
		out[w] = p.String()
	}
	return out
}

// Result is the tiered output of a batch. A word appears in at most one tier.
type Result struct {
	Certain   *Entries
	Guessed   *Entries
	Undecided *Entries

	// Dropped lists compounds whose parts are not all in the lexicon.
	Dropped []string
	// Failed lists words the scanner rejected.
	Failed []WordError
	// Processed counts the word-forms given to the batch.
	Processed int
}

func newResult() *Result {
	return &Result{
		Certain:   newEntries(),
		Guessed:   newEntries(),
		Undecided: newEntries(),
	}
}

// Tier returns the entries of tier t.
func (r *Result) Tier(t Tier) *Entries {
	switch t {
	case Certain:
		return r.Certain
	case Guessed:
		return r.Guessed
	default:
		return r.Undecided
	}
}

// DictionaryLines returns the lines to append to the dictionary:
// certain entries first, then guessed ones. Undecided words are left out.
func (r *Result) DictionaryLines() []string {
	lines := make([]string, 0, r.Certain.Len()+r.Guessed.Len())
	for _, t := range []Tier{Certain, Guessed} {
		for _, e := range r.Tier(t).All() {
			lines = append(lines, e.Line())
		}
	}
	return lines
}

func (r *Result) add(t Transcription) {
	key := t.Word.Key
	for _, tier := range Tiers() {
		if tier != t.Tier {
			r.Tier(tier).remove(key)
		}
	}
	r.Tier(t.Tier).put(key, t.Pronunciation)
}

type outcome struct {
	t   Transcription
	err error
}

// Transcribe resolves every word-form with the default engine.
func Transcribe(oovs []WordForm, lex Resolver) *Result {
	return Default().Transcribe(oovs, lex)
}

// Transcribe resolves every word-form. A word that fails is recorded in
// Result.Failed and does not stop the batch.
func (e *Engine) Transcribe(oovs []WordForm, lex Resolver) *Result {
	outs := make([]outcome, len(oovs))
	for i, w := range oovs {
		outs[i].t, outs[i].err = e.TranscribeWord(w, lex)
	}
	return e.assemble(outs)
}

// TranscribeParallel is Transcribe on a pool of workers. The result is the
// same as the sequential one; only cancellation of ctx returns an error.
func (e *Engine) TranscribeParallel(ctx context.Context, oovs []WordForm, lex Resolver, workers int) (*Result, error) {
	if workers < 1 {
		workers = 1
	}
	outs := make([]outcome, len(oovs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range oovs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outs[i].t, outs[i].err = e.TranscribeWord(w, lex)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.assemble(outs), nil
}

func (e *Engine) assemble(outs []outcome) *Result {
	r := newResult()
	r.Processed = len(outs)
	for _, o := range outs {
		switch {
		case o.err != nil:
			e.logger.Warn("transcription failed", slog.String("word", o.t.Word.Text), slog.String("error", o.err.Error()))
			r.Failed = append(r.Failed, WordError{Word: o.t.Word.Text, Err: o.err})
		case o.t.Dropped:
			e.logger.Debug("compound dropped", slog.String("word", o.t.Word.Text))
			r.Dropped = append(r.Dropped, o.t.Word.Text)
		default:
			r.add(o.t)
		}
	}
	return r
}
