// Package arcade builds game rounds for the grammar and word games
// from static lesson JSON files. Round builders are pure functions
// over an item list; handlers serve their output as JSON and the
// client loop reports attempts to the records API.
package arcade

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"englisharcade/internal/models"
)

// LoadItems parses a lesson file, tolerating the field variants the
// lesson corpus accumulated (en/exampleSentence/example/word). Items
// with no usable English text are dropped.
func LoadItems(data []byte) ([]models.GrammarItem, error) {
	var items []models.GrammarItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse lesson file: %w", err)
	}
	return lo.Filter(items, func(it models.GrammarItem, _ int) bool {
		return it.Sentence() != ""
	}), nil
}

// ShuffledCopy returns the items in random order without touching the
// input.
func ShuffledCopy(items []models.GrammarItem) []models.GrammarItem {
	out := make([]models.GrammarItem, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// SamplePool picks up to n items at random.
func SamplePool(items []models.GrammarItem, n int) []models.GrammarItem {
	out := ShuffledCopy(items)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
