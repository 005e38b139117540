package g2p

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCharacter is matched by every *UnknownCharacterError.
	ErrUnknownCharacter = errors.New("unknown character")

	// ErrInvalidRule reports a rule table the engine refuses to run.
	ErrInvalidRule = errors.New("invalid rule")
)

// UnknownCharacterError reports a character outside every table.
// The word is rejected rather than transcribed with a missing sound.
type UnknownCharacterError struct {
	Word string
	Char rune
	Pos  int
}

func (e *UnknownCharacterError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("unknown character %q", e.Char)
	}
	return fmt.Sprintf("unknown character %q at position %d in %q", e.Char, e.Pos, e.Word)
}

func (e *UnknownCharacterError) Unwrap() error { return ErrUnknownCharacter }

// WordError pairs a word-form with the error that stopped its transcription.
type WordError struct {
	Word string
	Err  error
}

func (e WordError) Error() string {
	return fmt.Sprintf("%s: %v", e.Word, e.Err)
}

func (e WordError) Unwrap() error { return e.Err }
