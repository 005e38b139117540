package g2p

import (
	"strings"

	"github.com/ieee0824/g2pdict/phoneme"
)

// properNouns holds names whose pronunciation the rules cannot guess.
// Keys are uppercase word-forms.
var properNouns = map[string]phoneme.Pronunciation{
	"BIYONG":   phoneme.Parse("b i j N"),
	"NGUIDJOL": phoneme.Parse("g i Z o l"),
	"NGO":      phoneme.Parse("n g o"),
	"BILONG":   phoneme.Parse("b i l N"),
	"MINLEND":  phoneme.Parse("m i l i n d"),
	"FOUDA":    phoneme.Parse("f u l a"),
	"OMGBA":    phoneme.Parse("u m b a"),
}

// singleChars holds one-letter words spoken as the letter name.
// H is absent: a lone H scans to the silent unit and yields an empty
// pronunciation. Callers can add it back with WithSingleChars.
var singleChars = map[string]phoneme.Pronunciation{
	"P": phoneme.Parse("p e"),
	"R": phoneme.Parse("E R"),
}

// baseMap is the fallback unit of every character the scanner accepts.
// Keys are lowercase. h is silent; digits stay as placeholders.
var baseMap = map[rune]phoneme.Pronunciation{
	'a': phoneme.Of(phoneme.PhonA),
	'b': phoneme.Of(phoneme.PhonB),
	'c': phoneme.Of(phoneme.PhonK),
	'd': phoneme.Of(phoneme.PhonD),
	'e': phoneme.Of(phoneme.PhonE),
	'é': phoneme.Of(phoneme.PhonE),
	'è': phoneme.Of(phoneme.PhonE),
	'f': phoneme.Of(phoneme.PhonF),
	'g': phoneme.Of(phoneme.PhonG),
	'h': phoneme.Of(phoneme.Silent),
	'i': phoneme.Of(phoneme.PhonI),
	'j': phoneme.Of(phoneme.PhonZh),
	'k': phoneme.Of(phoneme.PhonK),
	'l': phoneme.Of(phoneme.PhonL),
	'm': phoneme.Of(phoneme.PhonM),
	'n': phoneme.Of(phoneme.PhonN),
	'o': phoneme.Of(phoneme.PhonO),
	'p': phoneme.Of(phoneme.PhonP),
	'q': phoneme.Of(phoneme.PhonK),
	'r': phoneme.Of(phoneme.PhonR),
	's': phoneme.Of(phoneme.PhonS),
	't': phoneme.Of(phoneme.PhonT),
	'u': phoneme.Of(phoneme.PhonY),
	'v': phoneme.Of(phoneme.PhonV),
	'w': phoneme.Of(phoneme.PhonW),
	'x': phoneme.Of(phoneme.PhonK, phoneme.PhonS),
	'y': phoneme.Of(phoneme.PhonJ),
	'z': phoneme.Of(phoneme.PhonZ),
	'œ': phoneme.Of(phoneme.PhonNeuf),
	'0': phoneme.Of(phoneme.Digit0),
	'1': phoneme.Of(phoneme.Digit1),
	'2': phoneme.Of(phoneme.Digit2),
	'3': phoneme.Of(phoneme.Digit3),
	'4': phoneme.Of(phoneme.Digit4),
	'5': phoneme.Of(phoneme.Digit5),
	'6': phoneme.Of(phoneme.Digit6),
	'7': phoneme.Of(phoneme.Digit7),
	'8': phoneme.Of(phoneme.Digit8),
	'9': phoneme.Of(phoneme.Digit9),
}

// ambiguous lists scanned words that are also abbreviations or elided
// articles; they go to review instead of the guessed tier.
var ambiguous = map[string]bool{
	"D": true, "J": true, "L": true, "M": true,
	"N": true, "QU": true, "S": true, "Y": true,
}

// Y counts as a vowel.
const vowels = "AEIOUY"

// nasalVowels is the vowel part of a trailing -NG. U and Y have no recorded
// sound yet and stay silent.
var nasalVowels = map[rune]phoneme.Pronunciation{
	'A': phoneme.Of(phoneme.PhonA),
	'E': phoneme.Of(phoneme.PhonEh),
	'I': phoneme.Of(phoneme.PhonI),
	'O': phoneme.Of(phoneme.PhonOh),
	'U': phoneme.Of(phoneme.Silent),
	'Y': phoneme.Of(phoneme.Silent),
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

// isConsonant covers unaccented uppercase letters only.
func isConsonant(r rune) bool {
	return r >= 'A' && r <= 'Z' && !isVowel(r)
}

// SingleChars returns a copy of the built-in one-letter table.
func SingleChars() map[string]string {
	out := make(map[string]string, len(singleChars))
	for w, p := range singleChars {
		out[w] = p.String()
	}
	return out
}

// ProperNouns returns a copy of the built-in proper-noun table.
func ProperNouns() map[string]string {
	out := make(map[string]string, len(properNouns))
	for w, p := range properNouns {
		out[w] = p.String()
	}
	return out
}
