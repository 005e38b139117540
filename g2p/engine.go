// Package g2p transcribes out-of-vocabulary word-forms into pronunciations
// for a forced-alignment dictionary.
//
// Exception tables are consulted first (proper nouns, apostrophe compounds,
// one-letter words). Everything else goes through an ordered table of
// context-sensitive spelling rules, one cursor step at a time, with a
// per-character fallback. Each result is classified as certain, guessed or
// undecided.
package g2p

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/ieee0824/g2pdict/phoneme"
)

// Engine applies the exception tables and the rule table.
// It is immutable once built and safe for concurrent use.
type Engine struct {
	rules       []Rule
	properNouns map[string]phoneme.Pronunciation
	singleChars map[string]phoneme.Pronunciation
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the built-in rule table.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		e.rules = append([]Rule(nil), rules...)
	}
}

// WithProperNouns adds proper nouns to the built-in table, replacing
// built-in entries with the same key. Keys are uppercased and applied in
// sorted order, so the last colliding key in byte order wins.
func WithProperNouns(extra map[string]string) Option {
	return func(e *Engine) {
		for _, w := range sortedKeys(extra) {
			e.properNouns[upper(w)] = phoneme.Parse(extra[w])
		}
	}
}

// WithSingleChars adds one-letter words to the built-in table.
// Keys longer than one character are ignored.
func WithSingleChars(extra map[string]string) Option {
	return func(e *Engine) {
		for _, w := range sortedKeys(extra) {
			key := upper(w)
			if utf8.RuneCountInString(key) == 1 {
				e.singleChars[key] = phoneme.Parse(extra[w])
			}
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithLogger sets the logger used for batch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine. It fails when a rule could stall the scanner.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		rules:       DefaultRules(),
		properNouns: make(map[string]phoneme.Pronunciation, len(properNouns)),
		singleChars: make(map[string]phoneme.Pronunciation, len(singleChars)),
		logger:      slog.Default(),
	}
	for w, p := range properNouns {
		e.properNouns[w] = p
	}
	for w, p := range singleChars {
		e.singleChars[w] = p
	}
	for _, opt := range opts {
		opt(e)
	}
	for i := range e.rules {
		if err := e.rules[i].validate(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New()
	if err != nil {
		panic(fmt.Sprintf("g2p: built-in rules: %v", err))
	}
	return e
})

// Default returns the engine with the built-in tables.
func Default() *Engine {
	return defaultEngine()
}

// Step is one cursor move of the scanner.
type Step struct {
	Pos   int
	Rule  string // empty when the base map was used
	Units phoneme.Pronunciation
}

// Trace scans word and returns every step taken. word is expected in uppercase.
func (e *Engine) Trace(word string) ([]Step, error) {
	runes := []rune(word)
	steps := make([]Step, 0, len(runes))
	for i := 0; i < len(runes); {
		step, advance, err := e.step(runes, i)
		if err != nil {
			return nil, locate(err, word, runes, i)
		}
		steps = append(steps, step)
		i += advance
	}
	return steps, nil
}

// Scan runs the rule table over word and returns the pronunciation.
func (e *Engine) Scan(word string) (phoneme.Pronunciation, error) {
	steps, err := e.Trace(word)
	if err != nil {
		return nil, err
	}
	var out phoneme.Pronunciation
	for _, s := range steps {
		out = append(out, s.Units...)
	}
	return out, nil
}

func (e *Engine) step(runes []rune, i int) (Step, int, error) {
	for k := range e.rules {
		r := &e.rules[k]
		if !r.matches(runes, i) {
			continue
		}
		units, err := r.output(runes, i)
		if err != nil {
			return Step{}, 0, err
		}
		return Step{Pos: i, Rule: r.Name, Units: units}, r.Advance, nil
	}
	units, err := baseUnit(runes[i])
	if err != nil {
		return Step{}, 0, err
	}
	return Step{Pos: i, Units: units}, 1, nil
}

// locate fills in the word and position of an unknown character error.
// The failing character is either the one under the cursor or the next one.
func locate(err error, word string, runes []rune, i int) error {
	uc, ok := err.(*UnknownCharacterError)
	if !ok {
		return err
	}
	pos := i
	if runes[i] != uc.Char && i+1 < len(runes) {
		pos = i + 1
	}
	return &UnknownCharacterError{Word: word, Char: uc.Char, Pos: pos}
}

// Transcription is the outcome for one word-form.
type Transcription struct {
	Word          WordForm
	Pronunciation phoneme.Pronunciation
	Provenance    Provenance
	Tier          Tier
	Dropped       bool // apostrophe compound with an unknown part
}

// TranscribeWord resolves one word-form. Proper nouns win over everything,
// then apostrophe compounds, then one-letter words, then the rule scan.
func (e *Engine) TranscribeWord(w WordForm, lex Resolver) (Transcription, error) {
	t := Transcription{Word: w}

	if p, ok := e.properNouns[w.Key]; ok {
		return e.classified(t, p, ProperNoun), nil
	}

	if _, _, ok := SplitCompound(w.Text); ok {
		p, ok := resolveCompound(w.Text, lex)
		if !ok {
			t.Dropped = true
			return t, nil
		}
		return e.classified(t, p, Compound), nil
	}

	if utf8.RuneCountInString(w.Key) == 1 {
		if p, ok := e.singleChars[w.Key]; ok {
			return e.classified(t, p, SingleChar), nil
		}
	}

	p, err := e.Scan(w.Key)
	if err != nil {
		return t, err
	}
	return e.classified(t, p, Scan), nil
}

func (e *Engine) classified(t Transcription, p phoneme.Pronunciation, prov Provenance) Transcription {
	t.Pronunciation = p
	t.Provenance = prov
	t.Tier = Classify(t.Word.Key, prov)
	return t
}
