package arcade

import (
	"regexp"
	"strconv"
	"strings"

	"englisharcade/internal/models"
)

// Category is one bucket in a sorting round.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Strategy decides which buckets a sorting round uses and which
// bucket each sentence belongs to. Detect reports whether the
// strategy fits a lesson's items; Classify returns a category key or
// "" when the sentence does not fit any bucket.
type Strategy interface {
	Name() string
	Title() string
	Categories() []Category
	Detect(items []models.GrammarItem) bool
	Classify(item models.GrammarItem) string
}

var (
	beStartRe     = regexp.MustCompile(`(?i)^(is|are|am|isn't|aren't|am not)\b`)
	doStartRe     = regexp.MustCompile(`(?i)^(do|does|don't|doesn't)\b`)
	thereIsRe     = regexp.MustCompile(`(?i)\bthere\s+(is|isn't)\b`)
	thereAreRe    = regexp.MustCompile(`(?i)\bthere\s+(are|aren't)\b`)
	isThereRe     = regexp.MustCompile(`(?i)^(is|isn't)\s+there\b`)
	areThereRe    = regexp.MustCompile(`(?i)^(are|aren't)\s+there\b`)
	someWordRe    = regexp.MustCompile(`(?i)\bsome\b`)
	anyWordRe     = regexp.MustCompile(`(?i)\bany\b`)
	pluralWordRe  = regexp.MustCompile(`(?i)\b(two|three|four|five|six|seven|eight|nine|ten|many|several|some|any|lots)\b|\ba lot of\b`)
	pluralNounRe  = regexp.MustCompile(`(?i)\b\w{2,}s\b`)
	doesStartRe   = regexp.MustCompile(`(?i)^(does|doesn't)\b`)
	doOnlyStartRe = regexp.MustCompile(`(?i)^(do|don't)\b`)
	haveWordRe    = regexp.MustCompile(`(?i)\b(have|haven't)\b`)
	hasWordRe     = regexp.MustCompile(`(?i)\b(has|hasn't)\b`)
)

type questionsBeDo struct{}

func (questionsBeDo) Name() string  { return "short_questions_be_do" }
func (questionsBeDo) Title() string { return "Be or Do?" }
func (questionsBeDo) Categories() []Category {
	return []Category{{"be", "Be (is / are / am)"}, {"do", "Do (do / does)"}}
}
func (s questionsBeDo) Detect(items []models.GrammarItem) bool {
	be, do := 0, 0
	for _, it := range items {
		switch s.Classify(it) {
		case "be":
			be++
		case "do":
			do++
		}
	}
	return be >= 2 && do >= 2
}
func (questionsBeDo) Classify(it models.GrammarItem) string {
	en := strings.TrimSpace(it.Sentence())
	if beStartRe.MatchString(en) {
		return "be"
	}
	if doStartRe.MatchString(en) {
		return "do"
	}
	return ""
}

// pluralPhrase reports whether a "There ___" sentence talks about
// more than one thing. Number words and quantifiers win; otherwise a
// plural-looking noun after "there" does.
func pluralPhrase(rest string) bool {
	if pluralWordRe.MatchString(rest) {
		return true
	}
	return pluralNounRe.MatchString(rest)
}

type thereStatements struct{}

func (thereStatements) Name() string  { return "there_is_are_statements" }
func (thereStatements) Title() string { return "There is or There are?" }
func (thereStatements) Categories() []Category {
	return []Category{{"there_is", "There is"}, {"there_are", "There are"}}
}
func (s thereStatements) Detect(items []models.GrammarItem) bool {
	count := 0
	for _, it := range items {
		if s.Classify(it) != "" {
			count++
		}
	}
	return count >= len(items)/2 && count >= 4
}
func (thereStatements) Classify(it models.GrammarItem) string {
	en := it.Sentence()
	if isThereRe.MatchString(en) || areThereRe.MatchString(en) {
		return ""
	}
	if loc := thereIsRe.FindStringIndex(en); loc != nil {
		return "there_is"
	}
	if loc := thereAreRe.FindStringIndex(en); loc != nil {
		return "there_are"
	}
	// Cloze-style sentences ("There ___ a cat.") classify by the rest
	// of the phrase.
	if i := strings.Index(strings.ToLower(en), "there ___"); i >= 0 {
		rest := en[i+len("there ___"):]
		if pluralPhrase(rest) {
			return "there_are"
		}
		return "there_is"
	}
	return ""
}

type thereQuestions struct{}

func (thereQuestions) Name() string  { return "there_is_are_questions" }
func (thereQuestions) Title() string { return "Is there or Are there?" }
func (thereQuestions) Categories() []Category {
	return []Category{{"is_there", "Is there"}, {"are_there", "Are there"}}
}
func (s thereQuestions) Detect(items []models.GrammarItem) bool {
	count := 0
	for _, it := range items {
		if s.Classify(it) != "" {
			count++
		}
	}
	return count >= len(items)/2 && count >= 4
}
func (thereQuestions) Classify(it models.GrammarItem) string {
	en := strings.TrimSpace(it.Sentence())
	if isThereRe.MatchString(en) {
		return "is_there"
	}
	if areThereRe.MatchString(en) {
		return "are_there"
	}
	if strings.HasPrefix(strings.ToLower(en), "___ there") {
		rest := en[len("___ there"):]
		if pluralPhrase(rest) {
			return "are_there"
		}
		return "is_there"
	}
	return ""
}

type someAny struct{}

func (someAny) Name() string  { return "some_any" }
func (someAny) Title() string { return "Some or Any?" }
func (someAny) Categories() []Category {
	return []Category{{"some", "Some"}, {"any", "Any"}}
}

// Detect defers to the there is/are strategies when those dominate
// the lesson, since "there are some" sentences match both.
func (s someAny) Detect(items []models.GrammarItem) bool {
	matched, there := 0, 0
	for _, it := range items {
		if s.Classify(it) != "" {
			matched++
		}
		en := it.Sentence()
		if thereIsRe.MatchString(en) || thereAreRe.MatchString(en) ||
			isThereRe.MatchString(en) || areThereRe.MatchString(en) {
			there++
		}
	}
	if matched < 4 {
		return false
	}
	if there >= 3 || (len(items) > 0 && there*100 >= 40*len(items)) {
		return false
	}
	return true
}
func (someAny) Classify(it models.GrammarItem) string {
	en := it.Sentence()
	hasSome := someWordRe.MatchString(en)
	hasAny := anyWordRe.MatchString(en)
	switch {
	case hasSome && !hasAny:
		return "some"
	case hasAny && !hasSome:
		return "any"
	}
	return ""
}

type doDoesSubjects struct{}

func (doDoesSubjects) Name() string  { return "do_does_subjects" }
func (doDoesSubjects) Title() string { return "Do or Does?" }
func (doDoesSubjects) Categories() []Category {
	return []Category{{"do", "Do"}, {"does", "Does"}}
}
func (s doDoesSubjects) Detect(items []models.GrammarItem) bool {
	do, does := 0, 0
	for _, it := range items {
		switch s.Classify(it) {
		case "do":
			do++
		case "does":
			does++
		}
	}
	return do >= 2 && does >= 2
}
func (doDoesSubjects) Classify(it models.GrammarItem) string {
	en := strings.TrimSpace(it.Sentence())
	if doesStartRe.MatchString(en) {
		return "does"
	}
	if doOnlyStartRe.MatchString(en) {
		return "do"
	}
	return ""
}

type haveHas struct{}

func (haveHas) Name() string  { return "have_has" }
func (haveHas) Title() string { return "Have or Has?" }
func (haveHas) Categories() []Category {
	return []Category{{"have", "Have"}, {"has", "Has"}}
}
func (s haveHas) Detect(items []models.GrammarItem) bool {
	have, has := 0, 0
	for _, it := range items {
		switch s.Classify(it) {
		case "have":
			have++
		case "has":
			has++
		}
	}
	return have >= 2 && has >= 2
}
func (haveHas) Classify(it models.GrammarItem) string {
	en := it.Sentence()
	hasHave := haveWordRe.MatchString(en)
	hasHas := hasWordRe.MatchString(en)
	switch {
	case hasHave && !hasHas:
		return "have"
	case hasHas && !hasHave:
		return "has"
	}
	return ""
}

var strategies = []Strategy{
	someAny{},
	thereQuestions{},
	thereStatements{},
	haveHas{},
	doDoesSubjects{},
	questionsBeDo{},
}

// hintRoutes maps substrings of a lesson file name or title to the
// strategy that lesson was written for.
var hintRoutes = []struct {
	substr   string
	strategy Strategy
}{
	{"some_any", someAny{}},
	{"some-any", someAny{}},
	{"some_vs_any", someAny{}},
	{"there_is", thereStatements{}},
	{"there-is", thereStatements{}},
	{"is_there", thereQuestions{}},
	{"have_has", haveHas{}},
	{"have-has", haveHas{}},
	{"do_does", doDoesSubjects{}},
	{"do-does", doDoesSubjects{}},
	{"questions", questionsBeDo{}},
}

// SortingCard is one sentence chip the student drags into a bucket.
type SortingCard struct {
	ID       string `json:"id"`
	Sentence string `json:"sentence"`
	Category string `json:"category"`
	Word     string `json:"word,omitempty"`
}

// SortingRound pairs a strategy's buckets with the classified chips.
type SortingRound struct {
	Strategy   string        `json:"strategy"`
	Title      string        `json:"title"`
	Categories []Category    `json:"categories"`
	Cards      []SortingCard `json:"cards"`
}

// BuildSortingRound classifies the lesson's sentences under the
// chosen strategy. Sentences no bucket claims are left out.
func BuildSortingRound(items []models.GrammarItem, hint string) SortingRound {
	s := ChooseStrategy(items, hint)
	pool := ShuffledCopy(items)
	cards := make([]SortingCard, 0, len(pool))
	for i, it := range pool {
		cat := s.Classify(it)
		if cat == "" {
			continue
		}
		id := it.ID
		if id == "" {
			id = "s" + strconv.Itoa(i)
		}
		cards = append(cards, SortingCard{
			ID:       id,
			Sentence: strings.TrimSpace(it.Sentence()),
			Category: cat,
			Word:     it.Word,
		})
	}
	return SortingRound{
		Strategy:   s.Name(),
		Title:      s.Title(),
		Categories: s.Categories(),
		Cards:      cards,
	}
}

// ChooseStrategy picks the sorting strategy for a lesson. A file name
// or lesson title hint wins; otherwise the first strategy whose
// Detect passes is used, falling back to the be/do split.
func ChooseStrategy(items []models.GrammarItem, hint string) Strategy {
	h := strings.ToLower(hint)
	if h != "" {
		for _, r := range hintRoutes {
			if strings.Contains(h, r.substr) {
				return r.strategy
			}
		}
	}
	for _, s := range strategies {
		if s.Detect(items) {
			return s
		}
	}
	return questionsBeDo{}
}
