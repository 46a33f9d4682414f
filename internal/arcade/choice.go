package arcade

import (
	"math/rand"
	"regexp"
	"strings"

	"englisharcade/internal/models"
)

// ChoiceRound is one translation question: a Korean prompt and three
// English options, exactly one of which is Correct.
type ChoiceRound struct {
	Korean  string   `json:"korean"`
	Emoji   string   `json:"emoji"`
	Correct string   `json:"correct"`
	Options []string `json:"options"`
	Word    string   `json:"word,omitempty"`
}

const choiceRoundCap = 15

var (
	choiceAuxRe   = regexp.MustCompile(`(?i)^(Do|Does|Is|Are|Can|Could|Will|Would|Should)\s+`)
	thereLeadRe   = regexp.MustCompile(`(?i)^(there\s+(?:is|are)\s+)(.+)$`)
	someAnyDetRe  = regexp.MustCompile(`(?i)\b(any|some)\b`)
	someAnyNounRe = regexp.MustCompile(`(?i)\b(any|some)\b\s+([a-zA-Z']+)`)
	lastWordRe    = regexp.MustCompile(`([A-Za-z']+)([.,!?;:]*)\s*$`)
)

// auxDistractors builds up to two near-miss variants of a question
// sentence by swapping its auxiliary, following typical learner
// errors. Backfills from the pool when the sentence has no leading
// auxiliary.
func auxDistractors(correct string, pool []string, pick func(int) int) []string {
	var out []string
	m := choiceAuxRe.FindString(correct)
	if m != "" {
		aux := strings.ToLower(strings.TrimSpace(m))
		after := correct[len(m):]
		var subj, rest string
		if i := strings.IndexAny(after, " \t"); i > 0 {
			subj, rest = after[:i], strings.TrimSpace(after[i:])
		}
		if subj != "" && rest != "" {
			subjLow := strings.ToLower(subj)
			third := subjLow == "he" || subjLow == "she" || subjLow == "it"
			doForm := "Do"
			if third {
				doForm = "Does"
			}
			var wrongAux string
			switch aux {
			case "can", "could":
				wrongAux = doForm
			case "do":
				wrongAux = "Does"
			case "does":
				wrongAux = "Do"
			case "is":
				wrongAux = "Are"
			case "are":
				wrongAux = "Is"
			}
			if wrongAux != "" && !strings.EqualFold(wrongAux, aux) {
				out = append(out, wrongAux+" "+subj+" "+rest)
			}
			var altAux string
			switch aux {
			case "can", "could", "is", "are":
				altAux = doForm
			case "do", "does":
				altAux = "Can"
			}
			if altAux != "" && !strings.EqualFold(altAux, aux) {
				alt := altAux + " " + subj + " " + rest
				dup := false
				for _, d := range out {
					if strings.HasPrefix(d, altAux) {
						dup = true
					}
				}
				if !dup {
					out = append(out, alt)
				}
			}
			if len(out) < 2 && (aux == "do" || aux == "does") {
				verb := strings.Fields(rest)[0]
				var wrongVerb string
				if strings.HasSuffix(strings.ToLower(verb), "s") && len(verb) > 1 {
					wrongVerb = verb[:len(verb)-1]
				} else {
					wrongVerb = verb + "s"
				}
				wrongAuxForThis := "Does"
				if aux == "does" {
					wrongAuxForThis = "Do"
				}
				out = append(out, wrongAuxForThis+" "+subj+" "+strings.Replace(rest, verb, wrongVerb, 1))
			}
		}
	}
	remaining := append([]string(nil), pool...)
	for len(out) < 2 && len(remaining) > 0 {
		i := pick(len(remaining))
		cand := remaining[i]
		remaining = append(remaining[:i], remaining[i+1:]...)
		if cand != correct && !contains(out, cand) {
			out = append(out, cand)
		}
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func genericOptions(correct string, pool []string, pick func(int) int) (grammarWrong, meaningWrong string) {
	ds := auxDistractors(correct, pool, pick)
	grammarWrong = correct
	if len(ds) > 0 {
		grammarWrong = ds[0]
	}
	if len(pool) > 0 {
		meaningWrong = pool[pick(len(pool))]
	}
	if meaningWrong == "" && len(ds) > 1 {
		meaningWrong = ds[1]
	}
	if meaningWrong == "" {
		meaningWrong = grammarWrong
	}
	return grammarWrong, meaningWrong
}

func thereIsAreOptions(correct string, pool []string) (grammarWrong, meaningWrong string) {
	grammarWrong = correct
	if thereIsRe2.MatchString(correct) {
		grammarWrong = thereIsRe2.ReplaceAllString(correct, "${1}are")
	} else if thereAreRe2.MatchString(correct) {
		grammarWrong = thereAreRe2.ReplaceAllString(correct, "${1}is")
	}
	if m := thereLeadRe.FindStringSubmatch(correct); m != nil {
		for _, p := range pool {
			if p == correct {
				continue
			}
			if om := thereLeadRe.FindStringSubmatch(p); om != nil {
				meaningWrong = m[1] + om[2]
				break
			}
		}
	}
	if meaningWrong == "" && len(pool) > 0 {
		meaningWrong = pool[0]
	}
	return grammarWrong, meaningWrong
}

func presentSimpleOptions(correct string, pool []string) (grammarWrong, meaningWrong string) {
	tokens := strings.Fields(correct)
	grammarWrong = correct
	if len(tokens) >= 2 {
		subjIdx := 0
		if strings.ToLower(tokens[0]) == "the" && len(tokens) >= 3 {
			subjIdx = 1
		}
		verbIdx := subjIdx + 1
		if verbIdx >= len(tokens) {
			verbIdx = 1
		}
		orig := tokens[verbIdx]
		bare := trailPunctRe.ReplaceAllString(orig, "")
		punct := orig[len(bare):]
		base, sForm := verbForms(bare)
		wrongVerb := sForm
		if bare == sForm {
			wrongVerb = base
		}
		if wrongVerb != "" && !strings.EqualFold(wrongVerb, bare) {
			bad := make([]string, len(tokens))
			copy(bad, tokens)
			bad[verbIdx] = wrongVerb + punct
			grammarWrong = strings.Join(bad, " ")
		}
	}
	meaningWrong = firstOther(pool, correct)
	return grammarWrong, meaningWrong
}

func presentSimpleNegativeOptions(correct string, pool []string) (grammarWrong, meaningWrong string) {
	grammarWrong = correct
	if m := doesntRe.FindString(correct); m != "" {
		grammarWrong = replaceFirst(doesntRe, correct, matchCase(m, "don't"))
	} else if m := dontRe.FindString(correct); m != "" {
		grammarWrong = replaceFirst(dontRe, correct, matchCase(m, "doesn't"))
	}
	meaningWrong = firstOther(pool, correct)
	return grammarWrong, meaningWrong
}

// someAnyOptions keeps distractors close to the correct sentence: a
// determiner flip plus a noun swap from the pool.
func someAnyOptions(correct string, pool []string, pick func(int) int) (grammarWrong, meaningWrong string) {
	var outs []string
	if m := someAnyDetRe.FindString(correct); m != "" {
		flip := "any"
		if strings.EqualFold(m, "any") {
			flip = "some"
		}
		wrong := replaceFirst(someAnyDetRe, correct, matchCase(m, flip))
		if wrong != correct {
			outs = append(outs, wrong)
		}
	}
	nounFrom := func(s string) string {
		if m := someAnyNounRe.FindStringSubmatch(s); m != nil {
			return trailPunctRe.ReplaceAllString(m[2], "")
		}
		parts := strings.Fields(strings.TrimSpace(s))
		if len(parts) == 0 {
			return ""
		}
		return trailPunctRe.ReplaceAllString(parts[len(parts)-1], "")
	}
	baseNoun := nounFrom(correct)
	var poolNouns []string
	for _, p := range pool {
		if n := nounFrom(p); n != "" && !strings.EqualFold(n, baseNoun) {
			poolNouns = append(poolNouns, n)
		}
	}
	if len(poolNouns) > 0 {
		cand := poolNouns[pick(len(poolNouns))]
		var wrong2 string
		if m := someAnyNounRe.FindStringSubmatch(correct); m != nil {
			wrong2 = replaceFirst(someAnyNounRe, correct, m[1]+" "+cand)
		} else {
			wrong2 = lastWordRe.ReplaceAllString(correct, cand+"${2}")
		}
		if wrong2 != correct && !contains(outs, wrong2) {
			outs = append(outs, wrong2)
		}
	}
	if len(outs) < 2 {
		for _, d := range auxDistractors(correct, pool, pick) {
			if len(outs) >= 2 {
				break
			}
			if d != correct && !contains(outs, d) {
				outs = append(outs, d)
			}
		}
	}
	grammarWrong = correct
	if len(outs) > 0 {
		grammarWrong = outs[0]
	}
	if len(outs) > 1 {
		meaningWrong = outs[1]
	} else if len(pool) > 0 {
		meaningWrong = pool[0]
	} else {
		meaningWrong = correct
	}
	return grammarWrong, meaningWrong
}

// BuildChoiceRounds makes Korean-to-English multiple choice rounds.
// Each question carries the correct sentence, a grammar-wrong variant
// of it, and a meaning-wrong sentence from elsewhere in the list.
func BuildChoiceRounds(items []models.GrammarItem, file, name string) []ChoiceRound {
	return buildChoiceRounds(items, file, name, rand.Intn)
}

func buildChoiceRounds(items []models.GrammarItem, file, name string, pick func(int) int) []ChoiceRound {
	var valid []models.GrammarItem
	for _, it := range items {
		if strings.TrimSpace(it.Sentence()) != "" && strings.TrimSpace(it.Korean()) != "" {
			valid = append(valid, it)
		}
	}
	flags := sniffListFlags(file, name)
	chosen := ShuffledCopy(valid)
	if len(chosen) > choiceRoundCap {
		chosen = chosen[:choiceRoundCap]
	}
	rounds := make([]ChoiceRound, 0, len(chosen))
	for _, it := range chosen {
		correct := strings.TrimSpace(it.Sentence())
		var pool []string
		for _, v := range valid {
			if en := strings.TrimSpace(v.Sentence()); en != "" && en != correct {
				pool = append(pool, en)
			}
		}
		var grammarWrong, meaningWrong string
		switch {
		case flags.thereIsAre:
			grammarWrong, meaningWrong = thereIsAreOptions(correct, pool)
		case flags.simpleNeg:
			grammarWrong, meaningWrong = presentSimpleNegativeOptions(correct, pool)
		case flags.simple:
			grammarWrong, meaningWrong = presentSimpleOptions(correct, pool)
		case flags.someAny:
			grammarWrong, meaningWrong = someAnyOptions(correct, pool, pick)
		default:
			grammarWrong, meaningWrong = genericOptions(correct, pool, pick)
		}
		options := make([]string, 0, 3)
		for _, o := range []string{correct, grammarWrong, meaningWrong} {
			if o != "" && !contains(options, o) {
				options = append(options, o)
			}
		}
		for _, p := range pool {
			if len(options) >= 3 {
				break
			}
			if !contains(options, p) {
				options = append(options, p)
			}
		}
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		emoji := it.Emoji
		if emoji == "" {
			emoji = "📖"
		}
		rounds = append(rounds, ChoiceRound{
			Korean:  strings.TrimSpace(it.Korean()),
			Emoji:   emoji,
			Correct: correct,
			Options: options,
			Word:    it.Word,
		})
	}
	return rounds
}

func firstOther(pool []string, correct string) string {
	for _, p := range pool {
		if p != correct {
			return p
		}
	}
	if len(pool) > 0 {
		return pool[0]
	}
	return correct
}
