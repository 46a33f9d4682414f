package arcade

import (
	"strings"
	"testing"

	"englisharcade/internal/models"
)

func TestBlankSentence(t *testing.T) {
	tests := []struct {
		name string
		item models.GrammarItem
		want string
	}{
		{
			name: "article next to word",
			item: models.GrammarItem{Word: "dog", Article: "a", En: "I have a dog."},
			want: "I have ___ dog.",
		},
		{
			name: "article away from the word",
			item: models.GrammarItem{Word: "apple", Article: "an", En: "This is an orange."},
			want: "This is ___ orange.",
		},
		{
			name: "be verb",
			item: models.GrammarItem{Word: "She", Article: "is", En: "She is on the bus."},
			want: "She ___ on the bus.",
		},
		{
			name: "article absent from sentence",
			item: models.GrammarItem{Word: "cat", Article: "an", En: "Cats sleep."},
			want: "___ cat",
		},
		{
			name: "no sentence",
			item: models.GrammarItem{Word: "dog", Article: "a"},
			want: "___ dog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blankSentence(tt.item); got != tt.want {
				t.Errorf("blankSentence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlankSentenceFirstMatchOnly(t *testing.T) {
	it := models.GrammarItem{Word: "dog", Article: "a", En: "A dog sees a dog."}
	got := blankSentence(it)
	if got != "___ dog sees a dog." {
		t.Errorf("blankSentence() = %q, want only the first span blanked", got)
	}
}

func TestArticleChoicesFollowTheList(t *testing.T) {
	items := []models.GrammarItem{
		{Word: "I", Article: "am", En: "I am happy."},
		{Word: "She", Article: "is", En: "She is tall."},
		{Word: "They", Article: "are", En: "They are ready."},
		{Word: "We", Article: "are", En: "We are here."},
	}
	got := articleChoices(items)
	want := []string{"am", "is", "are"}
	if len(got) != len(want) {
		t.Fatalf("articleChoices() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("choice %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArticleChoicesDefaultPair(t *testing.T) {
	items := []models.GrammarItem{{Word: "dog", Article: "a", En: "I have a dog."}}
	got := articleChoices(items)
	if len(got) != 2 || got[0] != "a" || got[1] != "an" {
		t.Errorf("articleChoices() = %v, want [a an]", got)
	}
}

func TestBuildFillGapRounds(t *testing.T) {
	items := []models.GrammarItem{
		{Word: "dog", Article: "a", En: "I have a dog.", Emoji: "🐶"},
		{Word: "elephant", Article: "an", En: "I see an elephant."},
		{Word: "cat", En: "She has a cat."}, // no article, dropped
	}
	rounds := BuildFillGapRounds(items)
	if len(rounds) != 2 {
		t.Fatalf("got %d rounds, want 2", len(rounds))
	}
	for _, r := range rounds {
		if !strings.Contains(r.Sentence, "___") {
			t.Errorf("round %q has no blank", r.Sentence)
		}
		if r.Answer != "a" && r.Answer != "an" {
			t.Errorf("round %q answer = %q", r.Word, r.Answer)
		}
		if !contains(r.Choices, r.Answer) {
			t.Errorf("round %q choices %v miss the answer %q", r.Word, r.Choices, r.Answer)
		}
		if r.Emoji == "" {
			t.Errorf("round %q has no emoji", r.Word)
		}
	}
}

func TestBuildFillGapRoundsCapped(t *testing.T) {
	var items []models.GrammarItem
	for i := 0; i < 30; i++ {
		items = append(items, models.GrammarItem{Word: "dog", Article: "a", En: "I have a dog."})
	}
	if got := len(BuildFillGapRounds(items)); got != fillGapRoundCap {
		t.Fatalf("got %d rounds, want %d", got, fillGapRoundCap)
	}
}
