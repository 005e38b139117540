package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ieee0824/g2pdict/phoneme"
)

// ErrMalformedEntry is matched by every *MalformedEntryError.
var ErrMalformedEntry = errors.New("malformed dictionary entry")

// MalformedEntryError reports a dictionary line with a word but no pronunciation.
type MalformedEntryError struct {
	Line int
	Text string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("line %d: no pronunciation separator in %q", e.Line, e.Text)
}

func (e *MalformedEntryError) Unwrap() error { return ErrMalformedEntry }

// Lexicon maps known word-forms to their pronunciation.
// Keys are stored exactly as they appear in the source dictionary.
// A Lexicon is read-only once built and safe for concurrent lookups.
type Lexicon struct {
	entries map[string]phoneme.Pronunciation
}

// Build parses dictionary text. Format: word<SPACE>phoneme1 phoneme2 ...
func Build(text string) (*Lexicon, error) {
	return Load(strings.NewReader(text))
}

// Load reads a pronunciation dictionary, one entry per line.
// Blank lines are skipped; a repeated word keeps its last pronunciation.
func Load(r io.Reader) (*Lexicon, error) {
	lex := &Lexicon{entries: make(map[string]phoneme.Pronunciation)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		word, pron, ok := splitEntry(line)
		if !ok {
			return nil, &MalformedEntryError{Line: lineNum, Text: line}
		}
		lex.entries[word] = phoneme.Parse(pron)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lex, nil
}

// LoadFile is a convenience wrapper that opens a file path.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// splitEntry cuts a line at its first space. Tabs belong to the word.
func splitEntry(line string) (word, pron string, ok bool) {
	i := strings.IndexByte(line, ' ')
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+1:], true
}

// Lookup returns the pronunciation of word. Matching is exact and case-sensitive.
func (l *Lexicon) Lookup(word string) (phoneme.Pronunciation, bool) {
	if l == nil {
		return nil, false
	}
	p, ok := l.entries[word]
	return p, ok
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Words returns all words in byte order.
func (l *Lexicon) Words() []string {
	words := make([]string, 0, len(l.entries))
	for w := range l.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
