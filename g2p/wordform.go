package g2p

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordForm is one out-of-vocabulary item.
// Text is the literal form read from the OOV list; Key is its uppercase form.
type WordForm struct {
	Text string
	Key  string
}

// NewWordForm builds a WordForm from literal OOV text.
func NewWordForm(text string) WordForm {
	return WordForm{Text: text, Key: upper(text)}
}

// WordForms wraps each text in a WordForm.
func WordForms(texts ...string) []WordForm {
	out := make([]WordForm, len(texts))
	for i, t := range texts {
		out[i] = NewWordForm(t)
	}
	return out
}

// ReadWordForms reads an OOV list, one word per line. Blank lines are skipped.
func ReadWordForms(r io.Reader) ([]WordForm, error) {
	var out []WordForm
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, NewWordForm(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// upper applies full Unicode case mapping. A Caser keeps state, so each
// call gets its own.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func toLower(r rune) rune {
	return unicode.ToLower(r)
}
