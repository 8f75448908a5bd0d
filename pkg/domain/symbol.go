package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EpsilonLabel is the canonical textual form of the epsilon symbol.
const EpsilonLabel = "ε"

// epsilonAliases are the spellings loaders accept for the epsilon symbol.
var epsilonAliases = map[string]bool{
	EpsilonLabel: true,
	"eps":        true,
	"epsilon":    true,
}

// Symbol is a transition label: either one input character or Epsilon.
// The zero value is not a valid symbol; use Char or Epsilon.
type Symbol struct {
	r   rune
	eps bool
}

// Epsilon is the empty-move marker. It never matches an input character.
var Epsilon = Symbol{eps: true}

// Char returns the symbol consuming the character r.
func Char(r rune) Symbol {
	return Symbol{r: r}
}

// ParseSymbol converts a textual label into a Symbol.
// Epsilon spellings are "ε", "eps" and "epsilon"; anything else must be exactly one character.
func ParseSymbol(label string) (Symbol, error) {
	label = strings.TrimSpace(label)
	if epsilonAliases[strings.ToLower(label)] {
		return Epsilon, nil
	}
	if utf8.RuneCountInString(label) != 1 {
		return Symbol{}, fmt.Errorf("%w: %q", ErrInvalidSymbol, label)
	}
	r, _ := utf8.DecodeRuneInString(label)
	return Char(r), nil
}

// IsEpsilon reports whether s is the epsilon marker.
func (s Symbol) IsEpsilon() bool {
	return s.eps
}

// Rune returns the character of a non-epsilon symbol.
func (s Symbol) Rune() rune {
	return s.r
}

// Matches reports whether s consumes the input character r.
func (s Symbol) Matches(r rune) bool {
	return !s.eps && s.r == r
}

func (s Symbol) String() string {
	if s.eps {
		return EpsilonLabel
	}
	return string(s.r)
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
