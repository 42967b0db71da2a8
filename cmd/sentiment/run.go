package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
)

type scored struct {
	Text  string          `json:"text"`
	Score float64         `json:"score"`
	Label sentiment.Label `json:"label"`
}

func loadScorer(path string) (*sentiment.Scorer, error) {
	if path == "" {
		return sentiment.NewScorer(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	lex, err := sentiment.ParseLexicon(data)
	if err != nil {
		return nil, err
	}
	return sentiment.NewScorer(lex), nil
}

func run(in io.Reader, out io.Writer, scorer *sentiment.Scorer, args []string, pretty bool) error {
	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}

	emit := func(text string) error {
		r := scorer.AnalyzeString(text)
		return enc.Encode(scored{Text: text, Score: r.Score, Label: r.Label})
	}

	if len(args) > 0 {
		for _, text := range args {
			if err := emit(text); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := emit(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
