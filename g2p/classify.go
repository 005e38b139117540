package g2p

import "fmt"

// Tier is the confidence level of a transcription.
type Tier int

const (
	Certain   Tier = iota
	Guessed        // produced by the rules alone
	Undecided      // needs human review
)

// Tiers lists every tier in report order.
func Tiers() []Tier {
	return []Tier{Certain, Guessed, Undecided}
}

func (t Tier) String() string {
	switch t {
	case Certain:
		return "certain"
	case Guessed:
		return "guessed"
	case Undecided:
		return "undecided"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier is the inverse of Tier.String.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// Provenance records which path produced a pronunciation.
type Provenance int

const (
	ProperNoun Provenance = iota
	Compound
	SingleChar
	Scan
)

func (p Provenance) String() string {
	switch p {
	case ProperNoun:
		return "proper-noun"
	case Compound:
		return "compound"
	case SingleChar:
		return "single-char"
	case Scan:
		return "scan"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// Classify assigns the tier of a transcription. key is the uppercase word-form.
// Ambiguous short words stay undecided even when the one-letter table knows them.
func Classify(key string, prov Provenance) Tier {
	switch prov {
	case ProperNoun, Compound:
		return Certain
	}
	if ambiguous[key] {
		return Undecided
	}
	if prov == SingleChar {
		return Certain
	}
	return Guessed
}
