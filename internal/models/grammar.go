package models

// GrammarItem is one entry of a static lesson JSON file. Items are
// read-only during a session; game modes filter and shuffle copies.
type GrammarItem struct {
	ID      string `json:"id,omitempty"`
	Word    string `json:"word,omitempty"`
	Article string `json:"article,omitempty"`
	En      string `json:"exampleSentence,omitempty"`
	Ko      string `json:"exampleSentenceKo,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
	Prompt  string `json:"prompt,omitempty"`

	// Some lesson files carry the sentence under alternate keys.
	AltEn      string `json:"en,omitempty"`
	AltExample string `json:"example,omitempty"`
	AltKo      string `json:"ko,omitempty"`
}

// Sentence returns the English text of the item, whichever key the
// lesson file used.
func (it GrammarItem) Sentence() string {
	if it.En != "" {
		return it.En
	}
	if it.AltEn != "" {
		return it.AltEn
	}
	if it.AltExample != "" {
		return it.AltExample
	}
	return it.Word
}

// Korean returns the item's Korean translation under either key.
func (it GrammarItem) Korean() string {
	if it.Ko != "" {
		return it.Ko
	}
	return it.AltKo
}
