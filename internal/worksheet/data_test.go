package worksheet

import (
	"reflect"
	"testing"

	"englisharcade/internal/models"
)

func TestCleanWord(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1. apple", "apple"},
		{"12 banana", "banana"},
		{"- cherry", "cherry"},
		{"...dog  ", "dog"},
		{"사과", "사과"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := CleanWord(tt.in); got != tt.want {
			t.Errorf("CleanWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseWordLines(t *testing.T) {
	text := "1. apple, 사과\nbanana,바나나\n\nsolo\n42\nc, d, e\n"
	got := ParseWordLines(text)
	want := []models.WordPair{
		{Eng: "apple", Kor: "사과"},
		{Eng: "banana", Kor: "바나나"},
		{Eng: "solo", Kor: "solo"},
		{Eng: "c", Kor: "d"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWordLines() = %v, want %v", got, want)
	}
}

func TestParseWordLinesEmpty(t *testing.T) {
	if got := ParseWordLines("  \n \n"); got != nil {
		t.Errorf("ParseWordLines(blank) = %v, want nil", got)
	}
}

func TestFormatWordLinesRoundTrip(t *testing.T) {
	pairs := []models.WordPair{
		{Eng: "apple", Kor: "사과"},
		{Eng: "banana", Kor: "바나나"},
	}
	if got := ParseWordLines(FormatWordLines(pairs)); !reflect.DeepEqual(got, pairs) {
		t.Errorf("round trip = %v, want %v", got, pairs)
	}
}

func TestDocumentDataRoundTrip(t *testing.T) {
	st := models.DefaultSettings()
	st.Font = "Poppins"
	st.FontSize = 18
	st.Layout = models.LayoutPictureList
	st.TestMode = models.TestModeHideKor
	st.NumLettersToHide = 2

	doc := Document{
		Title:   "Unit 5",
		Passage: "Once upon a time...",
		Pairs: []models.WordPair{
			{Eng: "apple", Kor: "사과"},
			{Eng: "banana", Kor: "바나나"},
		},
		Settings: st,
		Images: map[string]models.SavedImage{
			"apple_0": {Src: "emoji", Emoji: "🍎", Word: "apple", Index: 0},
			"banana_1": {Src: "https://img.example/banana.jpg", Word: "banana", Index: 1},
		},
	}

	data, err := doc.Data()
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	if data.WorksheetType != "wordtest" {
		t.Errorf("worksheet_type = %q", data.WorksheetType)
	}
	if data.Layout != "picture-list" {
		t.Errorf("layout = %q", data.Layout)
	}
	if len(data.Words) != 2 || data.Words[0] != "apple, 사과" {
		t.Errorf("words = %v", data.Words)
	}

	got := DocumentFromData(data)
	if got.Title != doc.Title || got.Passage != doc.Passage {
		t.Errorf("title/passage = %q/%q", got.Title, got.Passage)
	}
	if !reflect.DeepEqual(got.Pairs, doc.Pairs) {
		t.Errorf("pairs = %v, want %v", got.Pairs, doc.Pairs)
	}
	if got.Settings != doc.Settings {
		t.Errorf("settings = %+v, want %+v", got.Settings, doc.Settings)
	}
	if !reflect.DeepEqual(got.Images, doc.Images) {
		t.Errorf("images = %v, want %v", got.Images, doc.Images)
	}
}

func TestDocumentFromDataTolerantOfBadJSON(t *testing.T) {
	got := DocumentFromData(models.WorksheetData{
		Title:    "Broken",
		Words:    []string{"apple, 사과"},
		Layout:   "4col",
		Settings: "{not json",
		Images:   "also not json",
	})

	defaults := models.DefaultSettings()
	defaults.Layout = models.LayoutFourCol
	if got.Settings != defaults {
		t.Errorf("settings = %+v, want defaults with layout", got.Settings)
	}
	if len(got.Images) != 0 {
		t.Errorf("images = %v, want empty", got.Images)
	}
	if len(got.Pairs) != 1 {
		t.Errorf("pairs = %v", got.Pairs)
	}
}
