package arcade

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"englisharcade/internal/models"
)

// FillGapRound is one fill-the-gap question: the example sentence
// with the taught form removed, plus the chips the student picks
// from.
type FillGapRound struct {
	Word     string   `json:"word"`
	Emoji    string   `json:"emoji"`
	Sentence string   `json:"sentence"`
	Answer   string   `json:"answer"`
	Choices  []string `json:"choices"`
}

const fillGapRoundCap = 15

// blankSentence removes the item's article from its example sentence.
// The "article word" span is preferred so the blank lands next to the
// taught word; failing a match, the first bare article goes.
func blankSentence(it models.GrammarItem) string {
	sentence := strings.TrimSpace(it.Sentence())
	article := strings.TrimSpace(it.Article)
	word := strings.TrimSpace(it.Word)
	if sentence == "" {
		return strings.TrimSpace("___ " + word)
	}
	if article == "" {
		return sentence
	}
	if word != "" {
		pairRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(article) + `\s+` + regexp.QuoteMeta(word) + `\b`)
		if pairRe.MatchString(sentence) {
			return replaceFirst(pairRe, sentence, "___ "+word)
		}
	}
	articleRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(article) + `\b`)
	if articleRe.MatchString(sentence) {
		return replaceFirst(articleRe, sentence, "___")
	}
	return strings.TrimSpace("___ " + word)
}

// articleChoices collects the distinct forms the list teaches, in
// first-seen order, so the chip row matches the lesson (a/an, or
// am/is/are). Lists with fewer than two forms get the article pair.
func articleChoices(items []models.GrammarItem) []string {
	var out []string
	for _, it := range items {
		a := strings.ToLower(strings.TrimSpace(it.Article))
		if a != "" && !contains(out, a) {
			out = append(out, a)
		}
	}
	if len(out) < 2 {
		out = []string{"a", "an"}
	}
	return out
}

// BuildFillGapRounds makes fill-the-gap rounds from items that carry
// both a word and an article.
func BuildFillGapRounds(items []models.GrammarItem) []FillGapRound {
	valid := lo.Filter(items, func(it models.GrammarItem, _ int) bool {
		return strings.TrimSpace(it.Word) != "" && strings.TrimSpace(it.Article) != ""
	})
	choices := articleChoices(valid)
	chosen := SamplePool(valid, fillGapRoundCap)
	rounds := make([]FillGapRound, 0, len(chosen))
	for _, it := range chosen {
		emoji := it.Emoji
		if emoji == "" {
			emoji = "🧠"
		}
		rounds = append(rounds, FillGapRound{
			Word:     strings.TrimSpace(it.Word),
			Emoji:    emoji,
			Sentence: blankSentence(it),
			Answer:   strings.ToLower(strings.TrimSpace(it.Article)),
			Choices:  choices,
		})
	}
	return rounds
}
