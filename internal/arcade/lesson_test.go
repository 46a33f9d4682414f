package arcade

import (
	"testing"

	"englisharcade/internal/models"
)

func TestBuildHaveHasLessonSplitsByArticle(t *testing.T) {
	items := []models.GrammarItem{
		{ID: "i1", Word: "I", Article: "have", En: "I have two pencils.", Emoji: "✏️"},
		{ID: "i2", Word: "He", Article: "has", En: "He has a bike."},
		{ID: "i3", Word: "They", Article: "have", En: "They have a big house."},
	}
	plan := BuildHaveHasLesson(items)
	if len(plan.HaveExamples) != 2 {
		t.Fatalf("got %d have examples, want 2", len(plan.HaveExamples))
	}
	if len(plan.HasExamples) != 1 {
		t.Fatalf("got %d has examples, want 1", len(plan.HasExamples))
	}
	if plan.HasExamples[0].Sentence != "He has a bike." {
		t.Errorf("has example = %q", plan.HasExamples[0].Sentence)
	}
	if plan.HasExamples[0].Emoji != "✨" {
		t.Errorf("missing emoji should default, got %q", plan.HasExamples[0].Emoji)
	}
}

func TestBuildHaveHasLessonSplitsBySentence(t *testing.T) {
	items := []models.GrammarItem{
		{Word: "We", En: "We have music class."},
		{Word: "She", En: "She has long hair."},
	}
	plan := BuildHaveHasLesson(items)
	if len(plan.HaveExamples) != 1 || plan.HaveExamples[0].Sentence != "We have music class." {
		t.Fatalf("have examples = %+v", plan.HaveExamples)
	}
	if len(plan.HasExamples) != 1 || plan.HasExamples[0].Sentence != "She has long hair." {
		t.Fatalf("has examples = %+v", plan.HasExamples)
	}
}

func TestBuildHaveHasLessonFallbacks(t *testing.T) {
	plan := BuildHaveHasLesson(nil)
	if len(plan.HaveExamples) != len(fallbackHave) {
		t.Fatalf("got %d have examples, want fallback set", len(plan.HaveExamples))
	}
	if len(plan.HasExamples) != len(fallbackHas) {
		t.Fatalf("got %d has examples, want fallback set", len(plan.HasExamples))
	}
	if len(plan.SortingPool) != len(fallbackHave)+len(fallbackHas) {
		t.Fatalf("got %d chips, want %d", len(plan.SortingPool), len(fallbackHave)+len(fallbackHas))
	}
}

func TestBuildHaveHasLessonSteps(t *testing.T) {
	plan := BuildHaveHasLesson(nil)
	want := []LessonStep{StepLanguage, StepExplain, StepExamples, StepSorting, StepFinish}
	if len(plan.Steps) != len(want) {
		t.Fatalf("got %d steps", len(plan.Steps))
	}
	for i, s := range want {
		if plan.Steps[i] != s {
			t.Errorf("step %d = %q, want %q", i, plan.Steps[i], s)
		}
	}
}

func TestSortingPoolAnswers(t *testing.T) {
	plan := BuildHaveHasLesson(nil)
	have, has := 0, 0
	for _, chip := range plan.SortingPool {
		switch chip.Answer {
		case "have":
			have++
		case "has":
			has++
		default:
			t.Errorf("chip %q has unknown answer %q", chip.Text, chip.Answer)
		}
		if chip.Text == "" {
			t.Errorf("chip %q has empty text", chip.ID)
		}
	}
	if have != 4 || has != 4 {
		t.Fatalf("have/has chips = %d/%d, want 4/4", have, has)
	}
}

func TestBuildAmAreIsLessonSplitsByArticle(t *testing.T) {
	items := []models.GrammarItem{
		{ID: "b1", Word: "I", Article: "am", En: "I am happy.", Emoji: "😀"},
		{ID: "b2", Word: "She", Article: "is", En: "She is on the bus."},
		{ID: "b3", Word: "They", Article: "are", En: "They are ready."},
		{ID: "b4", Word: "We", Article: "are", En: "We are in class."},
	}
	plan := BuildAmAreIsLesson(items)
	if len(plan.AmExamples) != 1 {
		t.Fatalf("got %d am examples, want 1", len(plan.AmExamples))
	}
	if len(plan.IsExamples) != 1 {
		t.Fatalf("got %d is examples, want 1", len(plan.IsExamples))
	}
	if len(plan.AreExamples) != 2 {
		t.Fatalf("got %d are examples, want 2", len(plan.AreExamples))
	}
	if plan.IsExamples[0].Sentence != "She is on the bus." {
		t.Errorf("is example = %q", plan.IsExamples[0].Sentence)
	}
}

func TestBuildAmAreIsLessonSplitsBySentence(t *testing.T) {
	items := []models.GrammarItem{
		{Word: "I", En: "I am from Korea."},
		{Word: "The cat", En: "The cat is sleepy."},
		{Word: "You", En: "You are my friend."},
	}
	plan := BuildAmAreIsLesson(items)
	if len(plan.AmExamples) != 1 || plan.AmExamples[0].Sentence != "I am from Korea." {
		t.Fatalf("am examples = %+v", plan.AmExamples)
	}
	if len(plan.IsExamples) != 1 || plan.IsExamples[0].Sentence != "The cat is sleepy." {
		t.Fatalf("is examples = %+v", plan.IsExamples)
	}
	if len(plan.AreExamples) != 1 || plan.AreExamples[0].Sentence != "You are my friend." {
		t.Fatalf("are examples = %+v", plan.AreExamples)
	}
}

func TestBuildAmAreIsLessonFallbacks(t *testing.T) {
	plan := BuildAmAreIsLesson(nil)
	if len(plan.AmExamples) != len(fallbackAm) {
		t.Fatalf("got %d am examples, want fallback set", len(plan.AmExamples))
	}
	if len(plan.IsExamples) != len(fallbackIs) {
		t.Fatalf("got %d is examples, want fallback set", len(plan.IsExamples))
	}
	if len(plan.AreExamples) != len(fallbackAre) {
		t.Fatalf("got %d are examples, want fallback set", len(plan.AreExamples))
	}
	want := len(fallbackAm) + len(fallbackIs) + len(fallbackAre)
	if len(plan.SortingPool) != want {
		t.Fatalf("got %d chips, want %d", len(plan.SortingPool), want)
	}
	for _, chip := range plan.SortingPool {
		if chip.Answer != "am" && chip.Answer != "is" && chip.Answer != "are" {
			t.Errorf("chip %q has unknown answer %q", chip.Text, chip.Answer)
		}
	}
}
