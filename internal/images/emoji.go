package images

import "strings"

// emojiMap covers common beginner vocabulary so those slots render
// instantly without a network fetch.
var emojiMap = map[string]string{
	"apple":  "🍎",
	"dog":    "🐶",
	"cat":    "🐱",
	"book":   "📚",
	"car":    "🚗",
	"house":  "🏠",
	"tree":   "🌳",
	"sun":    "☀️",
	"moon":   "🌙",
	"star":   "⭐",
	"water":  "💧",
	"fire":   "🔥",
	"flower": "🌸",
	"fish":   "🐠",
	"bird":   "🐦",
	"food":   "🍎",
	"eat":    "🍽️",
	"drink":  "🥤",
	"sleep":  "😴",
	"run":    "🏃",
	"walk":   "🚶",
	"happy":  "😊",
	"sad":    "😢",
	"big":    "🔍",
	"small":  "🔎",
}

// EmojiFor looks up the static emoji glyph for a word, if any.
func EmojiFor(word string) (string, bool) {
	glyph, ok := emojiMap[strings.ToLower(strings.TrimSpace(word))]
	return glyph, ok
}
