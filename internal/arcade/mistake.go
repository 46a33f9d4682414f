package arcade

import (
	"math/rand"
	"regexp"
	"strings"

	"englisharcade/internal/models"
)

// Mistake is one corrupted sentence with the token to strike out and
// the token the student should supply.
type Mistake struct {
	Bad          string
	WrongToken   string
	CorrectToken string
}

// MistakeRound is one card in a find-the-mistake game.
type MistakeRound struct {
	Good         bool   `json:"good"`
	Sentence     string `json:"sentence"`
	Correct      string `json:"correct"`
	WrongToken   string `json:"wrongToken,omitempty"`
	CorrectToken string `json:"correctToken,omitempty"`
	Word         string `json:"word,omitempty"`
}

const mistakeRoundCap = 14

// listFlags records which grammar list a lesson is, sniffed from the
// file name and display name. They gate which corruption the
// corruptor tries first.
type listFlags struct {
	someAny       bool
	preposition   bool
	simple        bool
	simpleNeg     bool
	simpleYesNo   bool
	simpleWh      bool
	progressive   bool
	progNeg       bool
	progWh        bool
	thereIsAre    bool
}

var (
	progressiveHintRe = regexp.MustCompile(`(?i)present\s*progressive`)
	progSubKindRe     = regexp.MustCompile(`(?i)negative|yes\s*/\s*no|wh`)
)

func sniffListFlags(file, name string) listFlags {
	f := strings.ToLower(file)
	n := strings.ToLower(name)
	both := f + " " + n
	has := func(re string) bool {
		return regexp.MustCompile(re).MatchString(both)
	}
	return listFlags{
		someAny:     has(`some_vs_any\.json|some\s*vs\s*any`),
		preposition: has(`prepositions_`),
		simple:      has(`present_simple_sentences\.json|present\s*simple\s*sentences`),
		simpleNeg:   has(`present_simple_negative\.json|present\s*simple[\s:\-]*negative`),
		simpleYesNo: has(`present_simple_questions_yesno\.json|present\s*simple[\s:\-]*(yes|question)|yes\s*/\s*no`),
		simpleWh:    has(`present_simple_questions_wh\.json|present\s*simple[\s:\-]*wh|wh\s*questions?`),
		progressive: strings.Contains(both, "present_progressive.json") ||
			(progressiveHintRe.MatchString(n) && !progSubKindRe.MatchString(n)),
		progNeg:    has(`present_progressive_negative\.json|present\s*progressive[\s:\-]*negative`),
		progWh:     has(`present_progressive_questions_wh\.json|present\s*progressive[\s:\-]*wh`),
		thereIsAre: has(`there_is_vs_there_are\.json|there\s+is\s+vs\s+there\s+are`),
	}
}

// Corruptor turns correct sentences into near-miss wrong ones.
type Corruptor struct {
	flags listFlags
	pool  []models.GrammarItem
	// pick indexes into a candidate slice; swappable for tests.
	pick func(n int) int
}

func NewCorruptor(items []models.GrammarItem, file, name string) *Corruptor {
	return &Corruptor{
		flags: sniffListFlags(file, name),
		pool:  items,
		pick:  rand.Intn,
	}
}

// matchCase gives word the capitalization of model's first letter.
func matchCase(model, word string) string {
	if model == "" || word == "" {
		return word
	}
	if model[0] >= 'A' && model[0] <= 'Z' {
		return strings.ToUpper(word[:1]) + word[1:]
	}
	return word
}

var (
	someRe    = regexp.MustCompile(`(?i)\bsome\b`)
	anyRe     = regexp.MustCompile(`(?i)\bany\b`)
	doesntRe  = regexp.MustCompile(`(?i)\bdoesn'?t\b`)
	dontRe    = regexp.MustCompile(`(?i)\bdon'?t\b`)
	prepRe    = regexp.MustCompile(`(?i)\b(in front of|next to|across from|in|on|under|above|below|between|behind|near|at|by|through|beside|over)\b`)
	beIngRe   = regexp.MustCompile(`(?i)\b(am|is|are)\s+([A-Za-z]+ing)\b`)
	iAmNotRe  = regexp.MustCompile(`(?i)\bI\s+am\s+not\b`)
	isNotRe   = regexp.MustCompile(`(?i)\b(is\s+not|isn'?t)\b`)
	areNotRe  = regexp.MustCompile(`(?i)\b(are\s+not|aren'?t)\b`)
	thereIsRe2  = regexp.MustCompile(`(?i)^(there\s+)is\b`)
	thereAreRe2 = regexp.MustCompile(`(?i)^(there\s+)are\b`)
	doQRe       = regexp.MustCompile(`(?i)^(Do|Does)\s+(.+?)\s+(\w+)(.*)$`)
	whDoQRe     = regexp.MustCompile(`(?i)^(?:Who|What|When|Where|Why|How|Which)\s+(Do|Does)\s+(.+?)\s+(\w+)(.*)$`)
	whBeRe      = regexp.MustCompile(`^(Who|What|When|Where|Why|How|Which)\s+(Am|Is|Are|am|is|are)\b([\s\S]*)`)
	auxStartRe  = regexp.MustCompile(`(?i)^(Do|Does|Is|Are|Can)\s+(\S+)\s+(.*)$`)
	trailPunctRe = regexp.MustCompile(`[.,!?;:]+$`)
	thirdNounRe  = regexp.MustCompile(`\b(?:my|your|his|her|its|our|their)\s+(friend|sister|brother|mother|father|teacher|bag|car|pet)\b`)
	detNounRe    = regexp.MustCompile(`\b(?:the|this|that)\s+\w+\b`)
)

// verbForms returns the base and third-person-singular form of a
// present-simple verb. Irregular verbs are not handled.
func verbForms(v string) (base, sForm string) {
	if v == "" {
		return v, v
	}
	low := strings.ToLower(v)
	switch {
	case strings.HasSuffix(low, "ies") && !regexp.MustCompile(`[aeiou]ies$`).MatchString(low):
		return v[:len(v)-3] + "y", v
	case strings.HasSuffix(low, "ches") || strings.HasSuffix(low, "shes") ||
		strings.HasSuffix(low, "sses") || strings.HasSuffix(low, "xes") ||
		strings.HasSuffix(low, "zes"):
		return v[:len(v)-2], v
	case strings.HasSuffix(low, "s") && !strings.HasSuffix(low, "ss"):
		return v[:len(v)-1], v
	case strings.HasSuffix(low, "ch") || strings.HasSuffix(low, "sh") ||
		strings.HasSuffix(low, "s") || strings.HasSuffix(low, "x") ||
		strings.HasSuffix(low, "z"):
		return v, v + "es"
	case strings.HasSuffix(low, "y") && !regexp.MustCompile(`[aeiou]y$`).MatchString(low):
		return v, v[:len(v)-1] + "ies"
	default:
		return v, v + "s"
	}
}

func (c *Corruptor) corruptSomeAny(en string) (Mistake, bool) {
	if m := someRe.FindString(en); m != "" {
		return Mistake{
			Bad:          someRe.ReplaceAllString(en, matchCase(m, "any")),
			WrongToken:   "any",
			CorrectToken: "some",
		}, true
	}
	if m := anyRe.FindString(en); m != "" {
		return Mistake{
			Bad:          anyRe.ReplaceAllString(en, matchCase(m, "some")),
			WrongToken:   "some",
			CorrectToken: "any",
		}, true
	}
	return Mistake{}, false
}

// corruptPreposition swaps the sentence's preposition for a different
// one used elsewhere in the list; the Korean translation stays the
// arbiter of correctness.
func (c *Corruptor) corruptPreposition(en string) (Mistake, bool) {
	var preps []string
	for _, it := range c.pool {
		if m := prepRe.FindString(it.Sentence()); m != "" {
			preps = append(preps, strings.ToLower(m))
		}
	}
	correct := strings.ToLower(prepRe.FindString(en))
	if correct == "" || len(preps) == 0 {
		return Mistake{}, false
	}
	var wrongs []string
	for _, p := range preps {
		if p != correct {
			wrongs = append(wrongs, p)
		}
	}
	if len(wrongs) == 0 {
		return Mistake{}, false
	}
	wrong := wrongs[c.pick(len(wrongs))]
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(correct) + `\b`)
	replaced := false
	bad := re.ReplaceAllStringFunc(en, func(s string) string {
		if replaced {
			return s
		}
		replaced = true
		return wrong
	})
	return Mistake{Bad: bad, WrongToken: wrong, CorrectToken: correct}, true
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	done := false
	return re.ReplaceAllStringFunc(s, func(m string) string {
		if done {
			return m
		}
		done = true
		return repl
	})
}

func (c *Corruptor) corruptDontDoesnt(en string) (Mistake, bool) {
	if m := doesntRe.FindString(en); m != "" {
		repl := matchCase(m, "don't")
		return Mistake{Bad: replaceFirst(doesntRe, en, repl), WrongToken: repl, CorrectToken: m}, true
	}
	if m := dontRe.FindString(en); m != "" {
		repl := matchCase(m, "doesn't")
		return Mistake{Bad: replaceFirst(dontRe, en, repl), WrongToken: repl, CorrectToken: m}, true
	}
	return Mistake{}, false
}

var verbSkipWords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "with": true, "of": true,
}

func (c *Corruptor) corruptAgreement(en string) (Mistake, bool) {
	tokens := strings.Fields(en)
	if len(tokens) < 3 {
		return Mistake{}, false
	}
	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = trailPunctRe.ReplaceAllString(strings.ToLower(t), "")
	}
	subjIdx := 0
	if lower[0] == "the" && len(lower) >= 2 {
		subjIdx = 1
	}
	subj := lower[subjIdx]
	verbIdx := subjIdx + 1
	for verbIdx < len(lower) && verbSkipWords[lower[verbIdx]] {
		verbIdx++
	}
	if verbIdx >= len(tokens) {
		return Mistake{}, false
	}
	orig := tokens[verbIdx]
	bare := trailPunctRe.ReplaceAllString(orig, "")
	punct := orig[len(bare):]
	base, sForm := verbForms(bare)
	thirdSingular := subj == "he" || subj == "she" || subj == "it" || subj == "sun"
	correct, wrong := base, sForm
	if thirdSingular {
		correct, wrong = sForm, base
	}
	if correct == "" || wrong == "" || strings.EqualFold(correct, wrong) {
		return Mistake{}, false
	}
	bad := make([]string, len(tokens))
	copy(bad, tokens)
	bad[verbIdx] = wrong + punct
	return Mistake{Bad: strings.Join(bad, " "), WrongToken: wrong, CorrectToken: correct}, true
}

func (c *Corruptor) corruptProgressiveNegative(en string) (Mistake, bool) {
	if iAmNotRe.MatchString(en) {
		return Mistake{
			Bad:          replaceFirst(iAmNotRe, en, "I is not"),
			WrongToken:   "is not",
			CorrectToken: "am not",
		}, true
	}
	if m := isNotRe.FindString(en); m != "" {
		wrong := matchCase(m, "aren't")
		return Mistake{
			Bad:          replaceFirst(isNotRe, en, wrong),
			WrongToken:   strings.ToLower(wrong),
			CorrectToken: m,
		}, true
	}
	if m := areNotRe.FindString(en); m != "" {
		wrong := matchCase(m, "isn't")
		return Mistake{
			Bad:          replaceFirst(areNotRe, en, wrong),
			WrongToken:   strings.ToLower(wrong),
			CorrectToken: m,
		}, true
	}
	return Mistake{}, false
}

// baseFromIng strips -ing and undoubles a trailing doubled consonant.
// "running" becomes "run", "playing" becomes "play".
func baseFromIng(vIng string) string {
	base := regexp.MustCompile(`(?i)ing$`).ReplaceAllString(vIng, "")
	if endsDoubledConsonant(base) {
		base = base[:len(base)-1]
	}
	return base
}

// endsDoubledConsonant reports whether s ends with the same consonant
// twice, as in "run" doubling to "running".
func endsDoubledConsonant(s string) bool {
	if len(s) < 2 {
		return false
	}
	a := s[len(s)-1] | 0x20
	b := s[len(s)-2] | 0x20
	if a != b || a < 'b' || a > 'z' {
		return false
	}
	return !strings.ContainsRune("aeiou", rune(a))
}

func (c *Corruptor) corruptProgressive(en string) (Mistake, bool) {
	m := beIngRe.FindStringSubmatch(en)
	if m == nil {
		return Mistake{}, false
	}
	be, vIng := m[1], m[2]
	correctChunk := be + " " + vIng
	var wrongBe string
	switch strings.ToLower(be) {
	case "am", "are":
		wrongBe = "is"
	case "is":
		wrongBe = "are"
	}
	base := baseFromIng(vIng)
	var candidates []Mistake
	if wrongBe != "" {
		candidates = append(candidates, Mistake{
			Bad:          strings.Replace(en, correctChunk, wrongBe+" "+vIng, 1),
			WrongToken:   wrongBe,
			CorrectToken: be,
		})
	}
	if base != "" && !strings.EqualFold(base, vIng) {
		candidates = append(candidates, Mistake{
			Bad:          strings.Replace(en, correctChunk, be+" "+base, 1),
			WrongToken:   base,
			CorrectToken: vIng,
		})
		if wrongBe != "" {
			candidates = append(candidates, Mistake{
				Bad:          strings.Replace(en, correctChunk, wrongBe+" "+base, 1),
				WrongToken:   wrongBe,
				CorrectToken: be,
			})
		}
	}
	if len(candidates) == 0 {
		return Mistake{}, false
	}
	return candidates[c.pick(len(candidates))], true
}

func (c *Corruptor) corruptThereIsAre(en string) (Mistake, bool) {
	if m := thereIsRe2.FindStringSubmatch(en); m != nil {
		return Mistake{
			Bad:          thereIsRe2.ReplaceAllString(en, "${1}are"),
			WrongToken:   "are",
			CorrectToken: "is",
		}, true
	}
	if m := thereAreRe2.FindStringSubmatch(en); m != nil {
		return Mistake{
			Bad:          thereAreRe2.ReplaceAllString(en, "${1}is"),
			WrongToken:   "is",
			CorrectToken: "are",
		}, true
	}
	return Mistake{}, false
}

func (c *Corruptor) corruptDoQuestion(en string) (Mistake, bool) {
	m := whDoQRe.FindStringSubmatch(en)
	if m == nil {
		m = doQRe.FindStringSubmatch(en)
	}
	if m == nil {
		return Mistake{}, false
	}
	aux, subj, verb := m[1], m[2], m[3]
	subjLower := strings.ToLower(strings.TrimSpace(subj))
	thirdSingular := regexp.MustCompile(`\b(he|she|it)\b`).MatchString(subjLower) ||
		thirdNounRe.MatchString(subjLower) ||
		detNounRe.MatchString(subjLower)
	bare := trailPunctRe.ReplaceAllString(verb, "")
	base, sForm := verbForms(bare)
	correctAux, wrongAux := "Do", "Does"
	if thirdSingular {
		correctAux, wrongAux = "Does", "Do"
	}
	auxRe := regexp.MustCompile(`(?i)\b(Do|Does)\b`)
	verbDiffers := base != "" && sForm != "" && !strings.EqualFold(base, sForm)
	var candidates []Mistake
	if !strings.EqualFold(wrongAux, aux) {
		candidates = append(candidates, Mistake{
			Bad:          replaceFirst(auxRe, en, wrongAux),
			WrongToken:   wrongAux,
			CorrectToken: correctAux,
		})
	}
	if verbDiffers {
		verbRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(verb) + `\b`)
		candidates = append(candidates, Mistake{
			Bad:          replaceFirst(verbRe, en, sForm),
			WrongToken:   sForm,
			CorrectToken: base,
		})
		if !strings.EqualFold(wrongAux, aux) {
			bad := replaceFirst(auxRe, en, wrongAux)
			bad = replaceFirst(verbRe, bad, sForm)
			candidates = append(candidates, Mistake{
				Bad:          bad,
				WrongToken:   wrongAux,
				CorrectToken: correctAux,
			})
		}
	}
	if len(candidates) == 0 {
		return Mistake{}, false
	}
	return candidates[c.pick(len(candidates))], true
}

func (c *Corruptor) corruptWhProgressive(en string) (Mistake, bool) {
	m := whBeRe.FindStringSubmatch(en)
	if m == nil {
		return Mistake{}, false
	}
	wh, be, tail := m[1], m[2], strings.TrimSpace(m[3])
	tokens := strings.Fields(tail)
	clean := func(i int) string {
		if i >= len(tokens) {
			return ""
		}
		return strings.ToLower(regexp.MustCompile(`[^A-Za-z]`).ReplaceAllString(tokens[i], ""))
	}
	t0, t1 := clean(0), clean(1)
	beLower := strings.ToLower(be)
	var wrongBe string
	switch {
	case t0 == "i":
		wrongBe = "is"
		if beLower == "is" {
			wrongBe = "are"
		}
	case t0 == "you" || t0 == "we" || t0 == "they":
		wrongBe = "is"
	case t0 == "he" || t0 == "she" || t0 == "it" || strings.HasSuffix(t0, "ing"):
		wrongBe = "are"
	case t0 == "the" && t1 != "":
		if strings.HasSuffix(t1, "s") && !strings.HasSuffix(t1, "ss") && !strings.HasSuffix(t1, "us") {
			wrongBe = "is"
		} else {
			wrongBe = "are"
		}
	default:
		switch beLower {
		case "is":
			wrongBe = "are"
		default:
			wrongBe = "is"
		}
	}
	if wrongBe == "" || wrongBe == beLower {
		return Mistake{}, false
	}
	wrongOut := matchCase(be, wrongBe)
	re := regexp.MustCompile(`^(` + wh + `)\s+(Am|Is|Are|am|is|are)`)
	return Mistake{
		Bad:          re.ReplaceAllString(en, "${1} "+wrongOut),
		WrongToken:   wrongOut,
		CorrectToken: be,
	}, true
}

var genericAuxFlips = map[string]string{
	"do": "Does", "does": "Do", "is": "Are", "are": "Is",
}

var bannedThirdTokens = map[string]bool{
	"always": true, "never": true, "often": true, "sometimes": true,
	"usually": true, "really": true, "very": true, "now": true,
	"today": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "of": true, "a": true, "an": true,
	"the": true, "and": true, "but": true, "or": true,
}

func (c *Corruptor) corruptGeneric(en string) Mistake {
	if m := auxStartRe.FindStringSubmatch(en); m != nil {
		if wrong, ok := genericAuxFlips[strings.ToLower(m[1])]; ok {
			return Mistake{
				Bad:          wrong + " " + m[2] + " " + m[3],
				WrongToken:   wrong,
				CorrectToken: m[1],
			}
		}
	}
	parts := strings.Fields(en)
	if len(parts) >= 2 {
		orig := parts[0]
		low := trailPunctRe.ReplaceAllString(strings.ToLower(orig), "")
		if low == "he" || low == "she" || low == "it" {
			repls := []string{"they", "we", "you"}
			repl := matchCase(orig, repls[c.pick(len(repls))])
			bad := make([]string, len(parts))
			copy(bad, parts)
			bad[0] = repl
			return Mistake{Bad: strings.Join(bad, " "), WrongToken: repl, CorrectToken: orig}
		}
		if len(parts) >= 3 {
			orig := parts[2]
			low := trailPunctRe.ReplaceAllString(strings.ToLower(orig), "")
			if !bannedThirdTokens[low] {
				var changed string
				if strings.HasSuffix(strings.ToLower(orig), "s") {
					changed = orig[:len(orig)-1]
				} else {
					changed = orig + "s"
				}
				bad := make([]string, len(parts))
				copy(bad, parts)
				bad[2] = changed
				return Mistake{Bad: strings.Join(bad, " "), WrongToken: changed, CorrectToken: orig}
			}
		}
	}
	return Mistake{Bad: en + "!", WrongToken: "!", CorrectToken: ""}
}

// CorruptSentence builds a wrong version of a correct sentence. List
// specific corruptions run first so the mistake matches the grammar
// point being taught; the generic fallbacks guarantee a result.
func (c *Corruptor) CorruptSentence(en string) Mistake {
	if c.flags.someAny {
		if m, ok := c.corruptSomeAny(en); ok {
			return m
		}
	}
	if c.flags.preposition {
		if m, ok := c.corruptPreposition(en); ok {
			return m
		}
	}
	if c.flags.simpleNeg {
		if m, ok := c.corruptDontDoesnt(en); ok {
			return m
		}
	}
	if c.flags.simple {
		if m, ok := c.corruptAgreement(en); ok {
			return m
		}
	}
	if c.flags.progNeg {
		if m, ok := c.corruptProgressiveNegative(en); ok {
			return m
		}
	}
	if c.flags.progressive {
		if m, ok := c.corruptProgressive(en); ok {
			return m
		}
	}
	if c.flags.thereIsAre {
		if m, ok := c.corruptThereIsAre(en); ok {
			return m
		}
	}
	if c.flags.simpleYesNo || c.flags.simpleWh {
		if m, ok := c.corruptDoQuestion(en); ok {
			return m
		}
	}
	if c.flags.progWh {
		if m, ok := c.corruptWhProgressive(en); ok {
			return m
		}
	}
	return c.corruptGeneric(en)
}

// BuildMistakeRounds makes a half-good, half-bad shuffled round list
// of at most fourteen sentences.
func BuildMistakeRounds(items []models.GrammarItem, file, name string) []MistakeRound {
	c := NewCorruptor(items, file, name)
	pool := ShuffledCopy(items)
	total := len(pool)
	if total > mistakeRoundCap {
		total = mistakeRoundCap
	}
	pool = pool[:total]
	half := total / 2
	rounds := make([]MistakeRound, 0, total)
	for i, it := range pool {
		en := strings.TrimSpace(it.Sentence())
		if i < half {
			rounds = append(rounds, MistakeRound{Good: true, Sentence: en, Correct: en, Word: it.Word})
			continue
		}
		m := c.CorruptSentence(en)
		rounds = append(rounds, MistakeRound{
			Sentence:     m.Bad,
			Correct:      en,
			WrongToken:   m.WrongToken,
			CorrectToken: m.CorrectToken,
			Word:         it.Word,
		})
	}
	rand.Shuffle(len(rounds), func(i, j int) {
		rounds[i], rounds[j] = rounds[j], rounds[i]
	})
	return rounds
}
