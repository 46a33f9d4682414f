package arcade

import (
	"testing"

	"englisharcade/internal/models"
)

func sentences(ss ...string) []models.GrammarItem {
	items := make([]models.GrammarItem, len(ss))
	for i, s := range ss {
		items[i] = models.GrammarItem{En: s}
	}
	return items
}

func TestChooseStrategyHintRouting(t *testing.T) {
	items := sentences("Is he tall?", "Do you like milk?")
	tests := []struct {
		hint string
		want string
	}{
		{"lessons/some_vs_any.json", "some_any"},
		{"there_is_vs_there_are.json", "there_is_are_statements"},
		{"is_there_questions.json", "there_is_are_questions"},
		{"have_has_basics.json", "have_has"},
		{"do_does_review.json", "do_does_subjects"},
		{"short_questions_1.json", "short_questions_be_do"},
	}
	for _, tt := range tests {
		got := ChooseStrategy(items, tt.hint)
		if got.Name() != tt.want {
			t.Errorf("hint %q: got strategy %q, want %q", tt.hint, got.Name(), tt.want)
		}
	}
}

func TestChooseStrategyDetectFallback(t *testing.T) {
	items := sentences(
		"Is he tall?", "Are they home?", "Isn't she a doctor?",
		"Do you like milk?", "Does he run?", "Don't they play?",
	)
	s := ChooseStrategy(items, "")
	if s.Name() != "short_questions_be_do" {
		t.Fatalf("got %q, want short_questions_be_do", s.Name())
	}
}

func TestQuestionsBeDoClassify(t *testing.T) {
	s := questionsBeDo{}
	tests := []struct {
		sentence string
		want     string
	}{
		{"Is he tall?", "be"},
		{"Aren't they home?", "be"},
		{"Am I late?", "be"},
		{"Do you like milk?", "do"},
		{"Doesn't she sing?", "do"},
		{"He likes milk.", ""},
	}
	for _, tt := range tests {
		if got := s.Classify(models.GrammarItem{En: tt.sentence}); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.sentence, got, tt.want)
		}
	}
}

func TestThereStatementsClassify(t *testing.T) {
	s := thereStatements{}
	tests := []struct {
		sentence string
		want     string
	}{
		{"There is a cat on the sofa.", "there_is"},
		{"There are two dogs.", "there_are"},
		{"There ___ a cat.", "there_is"},
		{"There ___ many books.", "there_are"},
		{"There ___ apples on the table.", "there_are"},
		{"Is there a park nearby?", ""},
	}
	for _, tt := range tests {
		if got := s.Classify(models.GrammarItem{En: tt.sentence}); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.sentence, got, tt.want)
		}
	}
}

func TestThereQuestionsClassify(t *testing.T) {
	s := thereQuestions{}
	tests := []struct {
		sentence string
		want     string
	}{
		{"Is there a park nearby?", "is_there"},
		{"Are there any cookies left?", "are_there"},
		{"___ there a bank near here?", "is_there"},
		{"___ there many students?", "are_there"},
		{"There is a cat.", ""},
	}
	for _, tt := range tests {
		if got := s.Classify(models.GrammarItem{En: tt.sentence}); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.sentence, got, tt.want)
		}
	}
}

func TestSomeAnyDefersToThereLists(t *testing.T) {
	items := sentences(
		"There are some apples.",
		"There is some milk.",
		"Are there any cookies?",
		"There are some books.",
		"There is some bread.",
		"I have some pencils.",
	)
	if (someAny{}).Detect(items) {
		t.Fatal("some_any detected on a there is/are dominated list")
	}
	plain := sentences(
		"I have some pencils.",
		"Do you have any questions?",
		"She wants some water.",
		"We don't have any homework.",
	)
	if !(someAny{}).Detect(plain) {
		t.Fatal("some_any not detected on a plain some/any list")
	}
}

func TestSomeAnySkipsMixedSentences(t *testing.T) {
	if got := (someAny{}).Classify(models.GrammarItem{En: "Some people don't have any money."}); got != "" {
		t.Fatalf("mixed some/any sentence classified as %q", got)
	}
}

func TestHaveHasClassify(t *testing.T) {
	s := haveHas{}
	tests := []struct {
		sentence string
		want     string
	}{
		{"I have a dog.", "have"},
		{"She has long hair.", "has"},
		{"They haven't any money.", "have"},
		{"He has a bike and they have a car.", ""},
	}
	for _, tt := range tests {
		if got := s.Classify(models.GrammarItem{En: tt.sentence}); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.sentence, got, tt.want)
		}
	}
}

func TestBuildSortingRoundDropsUnclassified(t *testing.T) {
	items := sentences(
		"I have a dog.",
		"She has long hair.",
		"We have homework.",
		"It has four legs.",
		"The weather is nice.",
	)
	round := BuildSortingRound(items, "have_has_unit.json")
	if round.Strategy != "have_has" {
		t.Fatalf("strategy = %q, want have_has", round.Strategy)
	}
	if len(round.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(round.Categories))
	}
	if len(round.Cards) != 4 {
		t.Fatalf("got %d cards, want 4", len(round.Cards))
	}
	for _, c := range round.Cards {
		if c.Category != "have" && c.Category != "has" {
			t.Errorf("card %q in unknown bucket %q", c.Sentence, c.Category)
		}
		if c.ID == "" {
			t.Errorf("card %q has empty id", c.Sentence)
		}
	}
}
