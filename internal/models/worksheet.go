package models

import "time"

// WordPair is a single English/Korean vocabulary entry in a worksheet.
// OriginalEng survives test-mode masking so image lookups and
// click-to-reveal keep working after Eng has been blanked.
type WordPair struct {
	Eng         string `json:"eng"`
	Kor         string `json:"kor"`
	OriginalEng string `json:"_originalEng,omitempty"`
}

// Layout names a worksheet HTML template strategy.
type Layout string

const (
	LayoutDefault        Layout = "default"
	LayoutFourCol        Layout = "4col"
	LayoutPictureList    Layout = "picture-list"
	LayoutPictureList2   Layout = "picture-list-2col"
	LayoutPictureQuiz    Layout = "picture-quiz"
	LayoutPictureQuiz5   Layout = "picture-quiz-5col"
	LayoutPictureMatch   Layout = "picture-matching"
	LayoutEngKorMatch    Layout = "eng-kor-matching"
	LayoutFiveColImages  Layout = "5col-images"
	LayoutSixColImages   Layout = "6col-images"
)

// UsesImages reports whether the layout resolves a picture per word slot.
func (l Layout) UsesImages() bool {
	switch l {
	case LayoutPictureList, LayoutPictureList2, LayoutPictureQuiz,
		LayoutPictureQuiz5, LayoutPictureMatch, LayoutFiveColImages, LayoutSixColImages:
		return true
	}
	return false
}

// Landscape reports whether the layout prints in landscape orientation.
func (l Layout) Landscape() bool {
	return l == LayoutFiveColImages || l == LayoutPictureQuiz5
}

// TestMode is a masking policy applied to word pairs before rendering.
type TestMode string

const (
	TestModeNone          TestMode = "none"
	TestModeHideEng       TestMode = "hide-eng"
	TestModeHideKor       TestMode = "hide-kor"
	TestModeHideAll       TestMode = "hide-all"
	TestModeRandomLetters TestMode = "hide-random-letters"
	TestModeRandomLang    TestMode = "hide-random-lang"
)

// Settings holds the worksheet appearance and test-mode options shared
// by the renderer, the print driver, and the image resolver.
type Settings struct {
	Font             string   `json:"font"`
	FontSize         int      `json:"fontSize"`
	Layout           Layout   `json:"layout"`
	ImageGap         int      `json:"imageGap"`
	ImageSize        int      `json:"imageSize"`
	TestMode         TestMode `json:"testMode"`
	NumLettersToHide int      `json:"numLettersToHide"`
}

// DefaultSettings returns the settings a fresh worksheet starts with.
func DefaultSettings() Settings {
	return Settings{
		Font:             "Arial",
		FontSize:         14,
		Layout:           LayoutDefault,
		ImageGap:         10,
		ImageSize:        50,
		TestMode:         TestModeNone,
		NumLettersToHide: 1,
	}
}

// WorksheetData is the persisted form of a worksheet. The field layout
// is shared with the worksheet-manager frontend and must stay stable.
type WorksheetData struct {
	WorksheetType string   `json:"worksheet_type"`
	Title         string   `json:"title"`
	PassageText   string   `json:"passage_text"`
	Words         []string `json:"words"`
	Layout        string   `json:"layout"`
	Settings      string   `json:"settings"`
	Images        string   `json:"images"`
}

// Worksheet is a stored worksheet row.
type Worksheet struct {
	ID        int64
	OwnerID   int64
	Data      WorksheetData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SavedImage is one entry of WorksheetData.Images, keyed "word_index".
type SavedImage struct {
	Src   string `json:"src"`
	Emoji string `json:"emoji,omitempty"`
	Word  string `json:"word"`
	Index int    `json:"index"`
}
