// Package sentiment scores short review texts with a keyword lexicon.
//
// Each token that appears in the positive or negative word list contributes
// to a running sum. The token directly before it may negate or intensify
// that contribution. The sum is averaged over matched tokens, clamped to
// [-1, 1], rounded to two decimals and mapped to a three-way label.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Label is the three-way classification of a score.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Labels lists every label in display order.
var Labels = []Label{Positive, Neutral, Negative}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	switch l {
	case Positive, Neutral, Negative:
		return true
	}
	return false
}

// Label thresholds. Scores exactly on a threshold are neutral.
const (
	PositiveThreshold = 0.20
	NegativeThreshold = -0.20
)

// Per-token contributions.
const (
	positiveWeight        = 1.0
	negatedPositiveWeight = -1.0
	intensifiedPositive   = 1.5
	negativeWeight        = -1.0
	negatedNegativeWeight = 0.5
	intensifiedNegative   = -1.5
)

// Result is the outcome of scoring one text.
type Result struct {
	Score float64 `json:"score"`
	Label Label   `json:"label"`
}

// NeutralResult is returned for absent or unscorable input.
var NeutralResult = Result{Score: 0, Label: Neutral}

// Scorer applies a Lexicon to text. The zero value is not usable; call NewScorer.
type Scorer struct {
	lex *Lexicon
}

// NewScorer returns a Scorer over lex, or over the built-in lexicon when lex is nil.
func NewScorer(lex *Lexicon) *Scorer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Scorer{lex: lex}
}

// Analyze scores text. A nil pointer is the absent-input case and yields NeutralResult.
func (s *Scorer) Analyze(text *string) Result {
	if text == nil {
		return NeutralResult
	}
	return s.AnalyzeString(*text)
}

// AnalyzeValue scores a decoded JSON value. Anything that is not a string,
// including nil and numbers, yields NeutralResult.
func (s *Scorer) AnalyzeValue(v any) Result {
	text, ok := v.(string)
	if !ok {
		return NeutralResult
	}
	return s.AnalyzeString(text)
}

// AnalyzeString scores text. It never fails.
func (s *Scorer) AnalyzeString(text string) Result {
	if text == "" {
		return NeutralResult
	}

	tokens := Tokenize(text)

	var (
		sum     float64
		matches int
		prev    string
	)
	for _, tok := range tokens {
		negated := s.lex.IsNegator(prev)
		intensified := s.lex.IsIntensifier(prev)

		switch {
		case s.lex.IsPositive(tok):
			w := positiveWeight
			if negated {
				w = negatedPositiveWeight
			} else if intensified {
				w = intensifiedPositive
			}
			sum += w
			matches++
		case s.lex.IsNegative(tok):
			w := negativeWeight
			if negated {
				w = negatedNegativeWeight
			} else if intensified {
				w = intensifiedNegative
			}
			sum += w
			matches++
		}

		prev = tok
	}

	if matches == 0 {
		return NeutralResult
	}

	score := Round2(clamp(sum/float64(matches), -1, 1))
	return Result{Score: score, Label: LabelFor(score)}
}

// LabelFor maps a score to its label.
func LabelFor(score float64) Label {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Tokenize lower-cases text, drops everything except a-z, whitespace,
// apostrophes and hyphens, and splits on whitespace runs.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case (r >= 'a' && r <= 'z') || r == '\'' || r == '-':
			return r
		case isSpace(r):
			return ' '
		}
		return -1
	}, strings.ToLower(text))
	return strings.Fields(cleaned)
}

// isSpace matches the ECMAScript whitespace and line terminator set:
// Unicode spaces plus the byte order mark, without NEL (U+0085).
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r)
}

// Round2 rounds half-up to two decimals, as floor(x*100 + 0.5) / 100.
// Negative halves round toward positive infinity (-0.125 → -0.12).
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

var defaultScorer = NewScorer(nil)

// Analyze scores text with the built-in lexicon.
func Analyze(text *string) Result { return defaultScorer.Analyze(text) }

// AnalyzeString scores text with the built-in lexicon.
func AnalyzeString(text string) Result { return defaultScorer.AnalyzeString(text) }

// AnalyzeValue scores a decoded JSON value with the built-in lexicon.
func AnalyzeValue(v any) Result { return defaultScorer.AnalyzeValue(v) }
