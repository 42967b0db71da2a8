package sentiment

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon holds the polarity and modifier word sets.
// It is read-only once built; share it freely between goroutines.
type Lexicon struct {
	positive     map[string]struct{}
	negative     map[string]struct{}
	intensifiers map[string]struct{}
	negators     map[string]struct{}
}

type lexiconFile struct {
	Positive     []string `yaml:"positive"`
	Negative     []string `yaml:"negative"`
	Intensifiers []string `yaml:"intensifiers"`
	Negators     []string `yaml:"negators"`
}

// ParseLexicon builds a Lexicon from its YAML form.
// Positive and negative sets must not share a word.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := &Lexicon{
		positive:     toSet(f.Positive),
		negative:     toSet(f.Negative),
		intensifiers: toSet(f.Intensifiers),
		negators:     toSet(f.Negators),
	}

	if len(lex.positive) == 0 || len(lex.negative) == 0 {
		return nil, fmt.Errorf("parse lexicon: positive and negative lists are required")
	}

	for w := range lex.positive {
		if _, dup := lex.negative[w]; dup {
			return nil, fmt.Errorf("parse lexicon: %q is both positive and negative", w)
		}
	}

	return lex, nil
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := ParseLexicon(defaultLexiconYAML)
	if err != nil {
		panic(err)
	}
	return lex
})

// DefaultLexicon returns the built-in word lists, parsed on first use.
func DefaultLexicon() *Lexicon {
	return defaultLexicon()
}

func (l *Lexicon) IsPositive(word string) bool { return has(l.positive, word) }

func (l *Lexicon) IsNegative(word string) bool { return has(l.negative, word) }

func (l *Lexicon) IsIntensifier(word string) bool { return has(l.intensifiers, word) }

func (l *Lexicon) IsNegator(word string) bool { return has(l.negators, word) }

// Words returns a copy of every polarity and modifier word, for tooling and tests.
func (l *Lexicon) Words() (positive, negative, intensifiers, negators []string) {
	return keys(l.positive), keys(l.negative), keys(l.intensifiers), keys(l.negators)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	return out
}
