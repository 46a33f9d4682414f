package arcade

import (
	"math/rand"
	"strings"

	"englisharcade/internal/models"
)

// UnscrambleRound is one sentence to rebuild from shuffled tokens.
type UnscrambleRound struct {
	Sentence string   `json:"sentence"`
	Korean   string   `json:"korean,omitempty"`
	Tokens   []string `json:"tokens"`
	Word     string   `json:"word,omitempty"`
}

const unscrambleRoundCap = 15

// ScrambleTokens splits a sentence into words and shuffles them,
// retrying so the result differs from the original order whenever the
// sentence has more than one distinct token.
func ScrambleTokens(sentence string) []string {
	tokens := strings.Fields(sentence)
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]string, len(tokens))
	copy(out, tokens)
	distinct := false
	for _, t := range tokens[1:] {
		if t != tokens[0] {
			distinct = true
			break
		}
	}
	if !distinct {
		return out
	}
	for tries := 0; tries < 10; tries++ {
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
		if !sameOrder(out, tokens) {
			return out
		}
	}
	// Force a difference by swapping the first two unequal tokens.
	for i := 1; i < len(out); i++ {
		if out[i] != out[0] {
			out[0], out[i] = out[i], out[0]
			break
		}
	}
	return out
}

func sameOrder(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CheckUnscramble reports whether the student's answer rebuilds the
// sentence, ignoring case and trailing punctuation.
func CheckUnscramble(answer, sentence string) bool {
	return normalizeSentence(answer) == normalizeSentence(sentence)
}

func normalizeSentence(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.TrimRight(s, ".,!?;: ")
}

// BuildUnscrambleRounds makes up to fifteen shuffled-token rounds
// from the lesson's sentences.
func BuildUnscrambleRounds(items []models.GrammarItem) []UnscrambleRound {
	pool := ShuffledCopy(items)
	if len(pool) > unscrambleRoundCap {
		pool = pool[:unscrambleRoundCap]
	}
	rounds := make([]UnscrambleRound, 0, len(pool))
	for _, it := range pool {
		en := strings.TrimSpace(it.Sentence())
		if en == "" {
			continue
		}
		rounds = append(rounds, UnscrambleRound{
			Sentence: en,
			Korean:   strings.TrimSpace(it.Korean()),
			Tokens:   ScrambleTokens(en),
			Word:     it.Word,
		})
	}
	return rounds
}
