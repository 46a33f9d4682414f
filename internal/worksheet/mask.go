package worksheet

import (
	"math/rand"
	"unicode"

	"englisharcade/internal/models"
)

// HideRandomLetters replaces n randomly chosen letters of word with
// underscores. The first rune is never hidden and only letters are
// candidates, so punctuation, digits and spaces stay put. When the word
// has fewer eligible letters than requested, all of them are hidden.
func HideRandomLetters(word string, n int) string {
	runes := []rune(word)
	if len(runes) <= 1 || n <= 0 {
		return word
	}

	var positions []int
	for i := 1; i < len(runes); i++ {
		if unicode.IsLetter(runes[i]) {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return word
	}

	toHide := n
	if toHide > len(positions) {
		toHide = len(positions)
	}

	rand.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})
	for _, pos := range positions[:toHide] {
		runes[pos] = '_'
	}

	return string(runes)
}

// MaskWordPairs applies the configured test mode to a word list,
// returning a parallel list of equal length. The input is never
// mutated; every output pair carries OriginalEng for image lookups and
// click-to-reveal. Unknown modes behave like TestModeNone.
func MaskWordPairs(pairs []models.WordPair, mode models.TestMode, numLetters int) []models.WordPair {
	if numLetters < 1 {
		numLetters = 1
	}

	masked := make([]models.WordPair, len(pairs))
	for i, pair := range pairs {
		out := models.WordPair{OriginalEng: pair.Eng}
		switch mode {
		case models.TestModeHideEng:
			out.Kor = pair.Kor
		case models.TestModeHideKor:
			out.Eng = pair.Eng
		case models.TestModeHideAll:
			// Both blank; OriginalEng still set.
		case models.TestModeRandomLetters:
			out.Eng = HideRandomLetters(pair.Eng, numLetters)
			out.Kor = pair.Kor
		case models.TestModeRandomLang:
			// Fair coin per word, independently.
			if rand.Intn(2) == 0 {
				out.Kor = pair.Kor
			} else {
				out.Eng = pair.Eng
			}
		default:
			out.Eng = pair.Eng
			out.Kor = pair.Kor
		}
		masked[i] = out
	}

	return masked
}
