package g2p

import (
	"fmt"
	"strings"

	"github.com/ieee0824/g2pdict/phoneme"
)

// Position constrains where in the word a rule may fire.
type Position int

const (
	Anywhere     Position = iota
	WordInitial           // first character only
	ThirdFromEnd          // exactly two characters left after the trigger
)

// Lookahead inspects the one or two characters after the trigger.
// A missing character is passed as 0.
type Lookahead func(next, further rune) bool

// Emitter computes a rule's output from the trigger and the character after it.
type Emitter func(cur, next rune) (phoneme.Pronunciation, error)

// Rule is one context-sensitive rewrite. Rules are tried in table order and
// the first match at a cursor position wins.
type Rule struct {
	Name      string
	Trigger   string // characters the rule can start on
	At        Position
	Lookahead Lookahead // nil matches any context
	Units     phoneme.Pronunciation
	Emit      Emitter // overrides Units when set
	Advance   int     // characters consumed, including the trigger
}

func (r *Rule) validate() error {
	if r.Trigger == "" {
		return fmt.Errorf("%w: rule %q has no trigger", ErrInvalidRule, r.Name)
	}
	if r.Advance < 1 {
		return fmt.Errorf("%w: rule %q advances %d characters", ErrInvalidRule, r.Name, r.Advance)
	}
	return nil
}

func (r *Rule) matches(word []rune, i int) bool {
	if !strings.ContainsRune(r.Trigger, word[i]) {
		return false
	}
	last := len(word) - 1
	switch r.At {
	case WordInitial:
		if i != 0 {
			return false
		}
	case ThirdFromEnd:
		if i != last-2 {
			return false
		}
	}
	if r.Lookahead == nil {
		return true
	}
	var next, further rune
	if i+1 <= last {
		next = word[i+1]
	}
	if i+2 <= last {
		further = word[i+2]
	}
	return r.Lookahead(next, further)
}

func (r *Rule) output(word []rune, i int) (phoneme.Pronunciation, error) {
	if r.Emit == nil {
		return r.Units, nil
	}
	var next rune
	if i+1 < len(word) {
		next = word[i+1]
	}
	return r.Emit(word[i], next)
}

// NextIn matches when the next character is one of set.
func NextIn(set string) Lookahead {
	return func(next, _ rune) bool {
		return next != 0 && strings.ContainsRune(set, next)
	}
}

// NextPair matches an exact two-character lookahead.
func NextPair(a, b rune) Lookahead {
	return func(next, further rune) bool {
		return next == a && further == b
	}
}

// NextConsonant matches when the next character is an unaccented consonant.
func NextConsonant() Lookahead {
	return func(next, _ rune) bool {
		return isConsonant(next)
	}
}

// defaultRules is the spelling table. Order is significant.
var defaultRules = []Rule{
	// Yaoundé
	{Name: "ou", Trigger: "O", Lookahead: NextIn("OU"), Units: phoneme.Of(phoneme.PhonU), Advance: 2},
	// Suzanne
	{Name: "nne-final", Trigger: "N", At: ThirdFromEnd, Lookahead: NextPair('N', 'E'), Units: phoneme.Of(phoneme.PhonN), Advance: 3},
	// Rachel
	{Name: "ch", Trigger: "C", Lookahead: NextIn("H"), Units: phoneme.Of(phoneme.PhonSh), Advance: 2},
	// Samuel
	{Name: "ue", Trigger: "U", Lookahead: NextIn("E"), Units: phoneme.Of(phoneme.PhonHuit, phoneme.PhonEh), Advance: 2},
	// Manguèlè, Nguènè
	{Name: "uè", Trigger: "U", Lookahead: NextIn("È"), Units: phoneme.Of(phoneme.PhonE), Advance: 2},
	// Cicam, cependant
	{Name: "soft-c", Trigger: "C", Lookahead: NextIn("IE"), Units: phoneme.Of(phoneme.PhonS), Advance: 1},
	// Nguidjol
	{Name: "ui", Trigger: "U", Lookahead: NextIn("I"), Units: phoneme.Of(phoneme.PhonI), Advance: 2},
	// Kellé
	{Name: "ll", Trigger: "L", Lookahead: NextIn("L"), Units: phoneme.Of(phoneme.PhonL), Advance: 2},
	// Mbock
	{Name: "ck", Trigger: "C", Lookahead: NextIn("K"), Units: phoneme.Of(phoneme.PhonK), Advance: 2},
	// Likeng, Nyong, Bakang, Libong
	{Name: "vowel-ng-final", Trigger: vowels, At: ThirdFromEnd, Lookahead: NextPair('N', 'G'), Emit: emitNasalVowel, Advance: 3},
	// Mbida, Ndop: the initial nasal takes the sound of the next consonant.
	{Name: "initial-nasal", Trigger: "MN", At: WordInitial, Lookahead: NextConsonant(), Emit: emitNext, Advance: 2},
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

func emitNasalVowel(cur, _ rune) (phoneme.Pronunciation, error) {
	return phoneme.Concat(nasalVowels[cur], phoneme.Of(phoneme.PhonNg)), nil
}

func emitNext(_, next rune) (phoneme.Pronunciation, error) {
	return baseUnit(next)
}

// baseUnit looks up the fallback unit of r.
func baseUnit(r rune) (phoneme.Pronunciation, error) {
	if p, ok := baseMap[toLower(r)]; ok {
		return p, nil
	}
	return nil, &UnknownCharacterError{Char: r}
}
