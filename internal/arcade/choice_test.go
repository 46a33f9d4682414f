package arcade

import (
	"testing"

	"englisharcade/internal/models"
)

func pairItems(pairs ...[2]string) []models.GrammarItem {
	items := make([]models.GrammarItem, len(pairs))
	for i, p := range pairs {
		items[i] = models.GrammarItem{En: p[0], Ko: p[1]}
	}
	return items
}

func TestBuildChoiceRoundsShape(t *testing.T) {
	items := pairItems(
		[2]string{"There is a cat.", "고양이가 있어요."},
		[2]string{"There are two dogs.", "개 두 마리가 있어요."},
		[2]string{"There is a book.", "책이 있어요."},
	)
	rounds := buildChoiceRounds(items, "there_is_vs_there_are.json", "", firstPick)
	if len(rounds) != 3 {
		t.Fatalf("got %d rounds, want 3", len(rounds))
	}
	for _, r := range rounds {
		if r.Korean == "" {
			t.Error("round missing Korean prompt")
		}
		if len(r.Options) != 3 {
			t.Fatalf("round %q has %d options, want 3", r.Correct, len(r.Options))
		}
		found := false
		seen := map[string]bool{}
		for _, o := range r.Options {
			if o == r.Correct {
				found = true
			}
			if seen[o] {
				t.Errorf("duplicate option %q", o)
			}
			seen[o] = true
		}
		if !found {
			t.Errorf("correct answer %q not among options %v", r.Correct, r.Options)
		}
	}
}

func TestBuildChoiceRoundsSkipsUntranslated(t *testing.T) {
	items := []models.GrammarItem{
		{En: "I have a dog.", Ko: "나는 개가 있어요."},
		{En: "No translation here."},
		{En: "She has a cat.", Ko: "그녀는 고양이가 있어요."},
	}
	rounds := buildChoiceRounds(items, "", "", firstPick)
	if len(rounds) != 2 {
		t.Fatalf("got %d rounds, want 2", len(rounds))
	}
}

func TestThereIsAreOptions(t *testing.T) {
	pool := []string{"There are two dogs.", "There is a book."}
	grammarWrong, meaningWrong := thereIsAreOptions("There is a cat.", pool)
	if grammarWrong != "There are a cat." {
		t.Fatalf("grammarWrong = %q", grammarWrong)
	}
	// Meaning-wrong keeps the correct auxiliary with another noun phrase.
	if meaningWrong != "There is two dogs." {
		t.Fatalf("meaningWrong = %q", meaningWrong)
	}
}

func TestPresentSimpleOptions(t *testing.T) {
	pool := []string{"They like pizza."}
	grammarWrong, meaningWrong := presentSimpleOptions("He likes milk.", pool)
	if grammarWrong != "He like milk." {
		t.Fatalf("grammarWrong = %q", grammarWrong)
	}
	if meaningWrong != "They like pizza." {
		t.Fatalf("meaningWrong = %q", meaningWrong)
	}
}

func TestPresentSimpleNegativeOptions(t *testing.T) {
	grammarWrong, _ := presentSimpleNegativeOptions("She doesn't like coffee.", nil)
	if grammarWrong != "She don't like coffee." {
		t.Fatalf("grammarWrong = %q", grammarWrong)
	}
}

func TestSomeAnyOptions(t *testing.T) {
	pool := []string{"Do you have any questions?", "I need some water."}
	grammarWrong, meaningWrong := someAnyOptions("I have some pencils.", pool, firstPick)
	if grammarWrong != "I have any pencils." {
		t.Fatalf("grammarWrong = %q", grammarWrong)
	}
	if meaningWrong == "" || meaningWrong == "I have some pencils." {
		t.Fatalf("meaningWrong = %q", meaningWrong)
	}
}

func TestAuxDistractors(t *testing.T) {
	ds := auxDistractors("Does she like pizza?", nil, firstPick)
	if len(ds) == 0 {
		t.Fatal("no distractors built")
	}
	if ds[0] != "Do she like pizza?" {
		t.Fatalf("ds[0] = %q", ds[0])
	}
	for _, d := range ds {
		if d == "Does she like pizza?" {
			t.Errorf("distractor equals the correct sentence")
		}
	}
}

func TestAuxDistractorsBackfillsFromPool(t *testing.T) {
	pool := []string{"He eats rice.", "She drinks tea."}
	ds := auxDistractors("The weather is nice.", pool, firstPick)
	if len(ds) != 2 {
		t.Fatalf("got %d distractors, want 2 from pool", len(ds))
	}
}
