package g2p

import (
	"strings"

	"github.com/ieee0824/g2pdict/phoneme"
)

// Resolver looks up known pronunciations. *lexicon.Lexicon implements it.
type Resolver interface {
	Lookup(word string) (phoneme.Pronunciation, bool)
}

// SplitCompound cuts text after its first apostrophe. The apostrophe stays
// with the first part; later apostrophes are left in the second part.
func SplitCompound(text string) (first, second string, ok bool) {
	i := strings.IndexByte(text, '\'')
	if i < 0 {
		return "", "", false
	}
	return text[:i+1], text[i+1:], true
}

// resolveCompound pronounces both parts of text from lex.
// It reports false when either part is unknown.
func resolveCompound(text string, lex Resolver) (phoneme.Pronunciation, bool) {
	first, second, ok := SplitCompound(text)
	if !ok || lex == nil {
		return nil, false
	}
	p1, ok := lex.Lookup(first)
	if !ok {
		return nil, false
	}
	p2, ok := lex.Lookup(second)
	if !ok {
		return nil, false
	}
	return phoneme.Concat(p1, p2), true
}
