package arcade

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"englisharcade/internal/models"
)

// LessonStep is one screen of a guided grammar lesson.
type LessonStep string

const (
	StepLanguage LessonStep = "language"
	StepExplain  LessonStep = "explain"
	StepExamples LessonStep = "examples"
	StepSorting  LessonStep = "sorting"
	StepFinish   LessonStep = "finish"
)

// LessonExample is one example card inside a lesson column.
type LessonExample struct {
	ID       string `json:"id"`
	Word     string `json:"word"`
	Prompt   string `json:"prompt,omitempty"`
	Sentence string `json:"sentence"`
	Korean   string `json:"korean,omitempty"`
	Emoji    string `json:"emoji"`
}

// SortingChip is one draggable subject in the lesson's sorting step.
type SortingChip struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
	Text   string `json:"text"`
}

// LessonPlan is the full have/has lesson: the step sequence plus the
// example columns and sorting pool the client renders.
type LessonPlan struct {
	Steps        []LessonStep    `json:"steps"`
	HaveExamples []LessonExample `json:"haveExamples"`
	HasExamples  []LessonExample `json:"hasExamples"`
	SortingPool  []SortingChip   `json:"sortingPool"`
}

const sortingChipsPerVerb = 5

var (
	haveSentenceRe = regexp.MustCompile(`(?i)\bhave\b`)
	hasSentenceRe  = regexp.MustCompile(`(?i)\bhas\b`)
	amSentenceRe   = regexp.MustCompile(`(?i)\bam\b`)
	isSentenceRe   = regexp.MustCompile(`(?i)\bis\b`)
	areSentenceRe  = regexp.MustCompile(`(?i)\bare\b`)
)

// usesVerb reports whether the item teaches the given verb. The
// article field is authoritative when set; otherwise the example
// sentence decides.
func usesVerb(it models.GrammarItem, verb string) bool {
	if a := strings.ToLower(it.Article); a != "" {
		return a == verb
	}
	en := it.Sentence()
	switch verb {
	case "have":
		return haveSentenceRe.MatchString(en) && !hasSentenceRe.MatchString(en)
	case "has":
		return hasSentenceRe.MatchString(en)
	case "am":
		return amSentenceRe.MatchString(en)
	case "is":
		return isSentenceRe.MatchString(en) && !amSentenceRe.MatchString(en) && !areSentenceRe.MatchString(en)
	case "are":
		return areSentenceRe.MatchString(en) && !amSentenceRe.MatchString(en)
	}
	return false
}

func toExamples(items []models.GrammarItem, verb string) []LessonExample {
	var out []LessonExample
	for i, it := range items {
		sentence := strings.TrimSpace(it.Sentence())
		if sentence == "" && it.Prompt == "" {
			continue
		}
		id := it.ID
		if id == "" {
			word := it.Word
			if word == "" {
				word = "entry"
			}
			id = word + "_" + verb + "_" + strconv.Itoa(i)
		}
		emoji := it.Emoji
		if emoji == "" {
			emoji = "✨"
		}
		out = append(out, LessonExample{
			ID:       id,
			Word:     it.Word,
			Prompt:   it.Prompt,
			Sentence: sentence,
			Korean:   strings.TrimSpace(it.Korean()),
			Emoji:    emoji,
		})
	}
	return out
}

var fallbackHave = []LessonExample{
	{ID: "fb_have_i", Word: "I", Prompt: "I ___ two pencils.", Sentence: "I have two pencils.", Korean: "나는 연필 두 자루를 가지고 있어요.", Emoji: "✏️"},
	{ID: "fb_have_we", Word: "We", Prompt: "We ___ music class.", Sentence: "We have music class.", Korean: "우리는 음악 수업이 있어요.", Emoji: "🎵"},
	{ID: "fb_have_they", Word: "They", Prompt: "They ___ a big house.", Sentence: "They have a big house.", Korean: "그들은 큰 집이 있어요.", Emoji: "🏠"},
	{ID: "fb_have_parents", Word: "My parents", Prompt: "My parents ___ a car.", Sentence: "My parents have a car.", Korean: "우리 부모님은 차를 가지고 있어요.", Emoji: "🚗"},
}

var fallbackHas = []LessonExample{
	{ID: "fb_has_he", Word: "He", Prompt: "He ___ a bike.", Sentence: "He has a bike.", Korean: "그는 자전거를 가지고 있어요.", Emoji: "🚲"},
	{ID: "fb_has_she", Word: "She", Prompt: "She ___ long hair.", Sentence: "She has long hair.", Korean: "그녀는 긴 머리를 가지고 있어요.", Emoji: "💇‍♀️"},
	{ID: "fb_has_it", Word: "It", Prompt: "It ___ four legs.", Sentence: "It has four legs.", Korean: "그것은 다리가 네 개 있어요.", Emoji: "🐕"},
	{ID: "fb_has_friend", Word: "My friend", Prompt: "My friend ___ a pencil case.", Sentence: "My friend has a pencil case.", Korean: "내 친구는 필통이 있어요.", Emoji: "🖍️"},
}

func filterVerb(items []models.GrammarItem, verb string) []models.GrammarItem {
	var out []models.GrammarItem
	for _, it := range items {
		if usesVerb(it, verb) {
			out = append(out, it)
		}
	}
	return out
}

// verbColumn is one answer bucket feeding the sorting step.
type verbColumn struct {
	answer   string
	fallback string
	examples []LessonExample
}

func buildSortingPool(cols ...verbColumn) []SortingChip {
	chips := make([]SortingChip, 0, len(cols)*sortingChipsPerVerb)
	for _, col := range cols {
		shuffled := make([]LessonExample, len(col.examples))
		copy(shuffled, col.examples)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if len(shuffled) > sortingChipsPerVerb {
			shuffled = shuffled[:sortingChipsPerVerb]
		}
		for _, ex := range shuffled {
			text := ex.Word
			if text == "" {
				text = col.fallback
			}
			chips = append(chips, SortingChip{ID: ex.ID, Answer: col.answer, Text: text})
		}
	}
	rand.Shuffle(len(chips), func(i, j int) {
		chips[i], chips[j] = chips[j], chips[i]
	})
	return chips
}

// BuildHaveHasLesson builds the guided possession lesson. Lessons
// with no usable items of a verb fall back to a built-in example set
// so every step still has content.
func BuildHaveHasLesson(items []models.GrammarItem) LessonPlan {
	have := toExamples(filterVerb(items, "have"), "have")
	has := toExamples(filterVerb(items, "has"), "has")
	if len(have) == 0 {
		have = fallbackHave
	}
	if len(has) == 0 {
		has = fallbackHas
	}
	return LessonPlan{
		Steps:        []LessonStep{StepLanguage, StepExplain, StepExamples, StepSorting, StepFinish},
		HaveExamples: have,
		HasExamples:  has,
		SortingPool: buildSortingPool(
			verbColumn{answer: "have", fallback: "I", examples: have},
			verbColumn{answer: "has", fallback: "He", examples: has},
		),
	}
}

// BeLessonPlan is the companion lesson for present-tense "to be":
// three example columns instead of two, same step sequence.
type BeLessonPlan struct {
	Steps       []LessonStep    `json:"steps"`
	AmExamples  []LessonExample `json:"amExamples"`
	IsExamples  []LessonExample `json:"isExamples"`
	AreExamples []LessonExample `json:"areExamples"`
	SortingPool []SortingChip   `json:"sortingPool"`
}

var fallbackAm = []LessonExample{
	{ID: "fb_am_happy", Word: "I", Prompt: "I ___ happy.", Sentence: "I am happy.", Korean: "나는 행복해요.", Emoji: "😀"},
	{ID: "fb_am_korea", Word: "I", Prompt: "I ___ from Korea.", Sentence: "I am from Korea.", Korean: "나는 한국에서 왔어요.", Emoji: "🇰🇷"},
}

var fallbackIs = []LessonExample{
	{ID: "fb_is_bus", Word: "She", Prompt: "She ___ on the bus.", Sentence: "She is on the bus.", Korean: "그녀는 버스에 있어요.", Emoji: "🚌"},
	{ID: "fb_is_cat", Word: "The cat", Prompt: "The cat ___ sleepy.", Sentence: "The cat is sleepy.", Korean: "그 고양이는 졸려요.", Emoji: "🐱"},
}

var fallbackAre = []LessonExample{
	{ID: "fb_are_ready", Word: "They", Prompt: "They ___ ready.", Sentence: "They are ready.", Korean: "그들은 준비됐어요.", Emoji: "👫"},
	{ID: "fb_are_class", Word: "We", Prompt: "We ___ in class.", Sentence: "We are in class.", Korean: "우리는 교실에 있어요.", Emoji: "🏫"},
}

// BuildAmAreIsLesson builds the guided subject-agreement lesson for
// am, is and are, with the same fallback behavior as the possession
// lesson.
func BuildAmAreIsLesson(items []models.GrammarItem) BeLessonPlan {
	am := toExamples(filterVerb(items, "am"), "am")
	is := toExamples(filterVerb(items, "is"), "is")
	are := toExamples(filterVerb(items, "are"), "are")
	if len(am) == 0 {
		am = fallbackAm
	}
	if len(is) == 0 {
		is = fallbackIs
	}
	if len(are) == 0 {
		are = fallbackAre
	}
	return BeLessonPlan{
		Steps:       []LessonStep{StepLanguage, StepExplain, StepExamples, StepSorting, StepFinish},
		AmExamples:  am,
		IsExamples:  is,
		AreExamples: are,
		SortingPool: buildSortingPool(
			verbColumn{answer: "am", fallback: "I", examples: am},
			verbColumn{answer: "is", fallback: "She", examples: is},
			verbColumn{answer: "are", fallback: "They", examples: are},
		),
	}
}
