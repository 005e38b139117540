package phoneme

import "strings"

// Phoneme is one unit of the dictionary's phonemic alphabet.
// The empty Phoneme is a silent unit and is dropped when a Pronunciation is rendered.
type Phoneme string

const (
	Silent Phoneme = ""

	// Vowels
	PhonA  Phoneme = "a"
	PhonE  Phoneme = "e"
	PhonEh Phoneme = "E" // open e, as in "mère"
	PhonI  Phoneme = "i"
	PhonO  Phoneme = "o"
	PhonOh Phoneme = "O" // open o
	PhonU  Phoneme = "u"
	PhonY  Phoneme = "y"

	// Stops
	PhonP Phoneme = "p"
	PhonT Phoneme = "t"
	PhonK Phoneme = "k"
	PhonB Phoneme = "b"
	PhonD Phoneme = "d"
	PhonG Phoneme = "g"

	// Fricatives
	PhonF  Phoneme = "f"
	PhonS  Phoneme = "s"
	PhonSh Phoneme = "S" // as in "chat"
	PhonV  Phoneme = "v"
	PhonZ  Phoneme = "z"
	PhonZh Phoneme = "Z" // as in "jour"

	// Nasals
	PhonM  Phoneme = "m"
	PhonN  Phoneme = "n"
	PhonNg Phoneme = "G" // velar nasal, as in "parking"
	PhonNy Phoneme = "N" // palatal nasal

	// Liquids and glides
	PhonL Phoneme = "l"
	PhonR Phoneme = "R" // uvular r
	PhonJ Phoneme = "j"
	PhonW Phoneme = "w"

	// Placeholder units. The aligner's model spells these vowels with the
	// word the sound occurs in.
	PhonHuit Phoneme = "huit" // [ɥ]
	PhonNeuf Phoneme = "neuf" // [œ]
)

// Digits are kept as their own units until the number reading is decided.
const (
	Digit0 Phoneme = "0"
	Digit1 Phoneme = "1"
	Digit2 Phoneme = "2"
	Digit3 Phoneme = "3"
	Digit4 Phoneme = "4"
	Digit5 Phoneme = "5"
	Digit6 Phoneme = "6"
	Digit7 Phoneme = "7"
	Digit8 Phoneme = "8"
	Digit9 Phoneme = "9"
)

// Inventory returns the complete phoneme set, silent unit excluded.
func Inventory() []Phoneme {
	return []Phoneme{
		PhonA, PhonE, PhonEh, PhonI, PhonO, PhonOh, PhonU, PhonY,
		PhonP, PhonT, PhonK, PhonB, PhonD, PhonG,
		PhonF, PhonS, PhonSh, PhonV, PhonZ, PhonZh,
		PhonM, PhonN, PhonNg, PhonNy,
		PhonL, PhonR, PhonJ, PhonW,
		PhonHuit, PhonNeuf,
		Digit0, Digit1, Digit2, Digit3, Digit4,
		Digit5, Digit6, Digit7, Digit8, Digit9,
	}
}

var known = func() map[Phoneme]bool {
	m := make(map[Phoneme]bool)
	for _, p := range Inventory() {
		m[p] = true
	}
	return m
}()

// Known reports whether p belongs to the inventory.
func Known(p Phoneme) bool {
	return known[p]
}

// Pronunciation is an ordered sequence of units, in articulation order.
type Pronunciation []Phoneme

// Of is a shorthand to build a Pronunciation.
func Of(ps ...Phoneme) Pronunciation { return ps }

// Parse splits a space-separated pronunciation string into units.
func Parse(s string) Pronunciation {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	p := make(Pronunciation, len(fields))
	for i, f := range fields {
		p[i] = Phoneme(f)
	}
	return p
}

// Concat joins pronunciations left to right.
func Concat(ps ...Pronunciation) Pronunciation {
	n := 0
	for _, p := range ps {
		n += len(p)
	}
	out := make(Pronunciation, 0, n)
	for _, p := range ps {
		out = append(out, p...)
	}
	return out
}

// String renders the pronunciation with single spaces. Silent units are skipped.
func (p Pronunciation) String() string {
	var b strings.Builder
	for _, u := range p {
		if u == Silent {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(u))
	}
	return b.String()
}

// Audible returns the pronunciation without silent units.
func (p Pronunciation) Audible() Pronunciation {
	out := make(Pronunciation, 0, len(p))
	for _, u := range p {
		if u != Silent {
			out = append(out, u)
		}
	}
	return out
}

// Unknown returns the units of p that are not in the inventory.
func (p Pronunciation) Unknown() []Phoneme {
	var out []Phoneme
	for _, u := range p {
		if u != Silent && !known[u] {
			out = append(out, u)
		}
	}
	return out
}
