package worksheet

import (
	"strings"
	"testing"

	"englisharcade/internal/models"
)

func TestHideRandomLetters(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		n        int
		wantHide int
	}{
		{"hides requested count", "banana", 2, 2},
		{"caps at available letters", "cat", 10, 2},
		{"single rune untouched", "a", 3, 0},
		{"zero request untouched", "apple", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HideRandomLetters(tt.word, tt.n)
			if hidden := strings.Count(got, "_"); hidden != tt.wantHide {
				t.Errorf("HideRandomLetters(%q, %d) = %q, hid %d letters, want %d",
					tt.word, tt.n, got, hidden, tt.wantHide)
			}
			if len([]rune(got)) != len([]rune(tt.word)) {
				t.Errorf("length changed: %q -> %q", tt.word, got)
			}
		})
	}
}

func TestHideRandomLettersNeverHidesFirstRune(t *testing.T) {
	for i := 0; i < 200; i++ {
		got := HideRandomLetters("go", 5)
		if got[0] == '_' {
			t.Fatalf("first letter was hidden: %q", got)
		}
	}
}

func TestHideRandomLettersSkipsNonLetters(t *testing.T) {
	got := HideRandomLetters("a-1 b", 10)
	// Only 'b' is an eligible letter: not first, not punctuation,
	// digit or space.
	if got != "a-1 _" {
		t.Errorf("HideRandomLetters() = %q, want %q", got, "a-1 _")
	}
}

func TestMaskWordPairs(t *testing.T) {
	pairs := []models.WordPair{
		{Eng: "apple", Kor: "사과"},
		{Eng: "banana", Kor: "바나나"},
	}

	tests := []struct {
		name    string
		mode    models.TestMode
		wantEng string
		wantKor string
	}{
		{"none keeps both", models.TestModeNone, "apple", "사과"},
		{"hide-eng blanks english", models.TestModeHideEng, "", "사과"},
		{"hide-kor blanks korean", models.TestModeHideKor, "apple", ""},
		{"hide-all blanks both", models.TestModeHideAll, "", ""},
		{"unknown mode keeps both", models.TestMode("mystery"), "apple", "사과"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked := MaskWordPairs(pairs, tt.mode, 1)
			if len(masked) != len(pairs) {
				t.Fatalf("masked %d pairs, want %d", len(masked), len(pairs))
			}
			if masked[0].Eng != tt.wantEng || masked[0].Kor != tt.wantKor {
				t.Errorf("masked = %q/%q, want %q/%q", masked[0].Eng, masked[0].Kor, tt.wantEng, tt.wantKor)
			}
			for i, m := range masked {
				if m.OriginalEng != pairs[i].Eng {
					t.Errorf("pair %d lost its original English: %q", i, m.OriginalEng)
				}
			}
			if pairs[0].Eng != "apple" || pairs[0].Kor != "사과" {
				t.Error("input pairs were mutated")
			}
		})
	}
}

func TestMaskWordPairsRandomLangHidesExactlyOneSide(t *testing.T) {
	pairs := []models.WordPair{{Eng: "apple", Kor: "사과"}}
	for i := 0; i < 100; i++ {
		m := MaskWordPairs(pairs, models.TestModeRandomLang, 1)[0]
		engHidden := m.Eng == ""
		korHidden := m.Kor == ""
		if engHidden == korHidden {
			t.Fatalf("random-lang hid %v sides: %+v", map[bool]string{true: "both", false: "neither"}[engHidden], m)
		}
	}
}

func TestMaskWordPairsRandomLetters(t *testing.T) {
	pairs := []models.WordPair{{Eng: "banana", Kor: "바나나"}}
	m := MaskWordPairs(pairs, models.TestModeRandomLetters, 3)[0]
	if strings.Count(m.Eng, "_") != 3 {
		t.Errorf("masked English = %q, want 3 hidden letters", m.Eng)
	}
	if m.Kor != "바나나" {
		t.Errorf("Korean changed: %q", m.Kor)
	}
}

func TestDuplicateDetection(t *testing.T) {
	pairs := []models.WordPair{
		{Eng: "apple", Kor: "사과"},
		{Eng: " Apple ", Kor: "다른뜻"},
		{Eng: "banana", Kor: "바나나"},
	}
	ds := FindDuplicates(pairs)

	if !ds.IsDuplicateEng("apple") || !ds.IsDuplicateEng("APPLE") {
		t.Error("case-insensitive duplicate not detected")
	}
	if ds.IsDuplicateEng("banana") {
		t.Error("unique word flagged as duplicate")
	}
	if ds.IsDuplicateKor("사과") {
		t.Error("unique Korean flagged as duplicate")
	}
	if ds.IsDuplicateEng("") {
		t.Error("empty string flagged as duplicate")
	}

	if got := DuplicateWarning(pairs); len(got) != 1 || got[0] != "apple" {
		t.Errorf("DuplicateWarning() = %v, want [apple]", got)
	}
}
