package worksheet

import (
	"sort"
	"strings"

	"englisharcade/internal/models"
)

// DuplicateSet holds normalized frequency counts for a word list, used
// to flag repeated entries in the preview.
type DuplicateSet struct {
	eng map[string]int
	kor map[string]int
}

func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindDuplicates counts English and Korean entries independently,
// case-insensitive and whitespace-insensitive.
func FindDuplicates(pairs []models.WordPair) DuplicateSet {
	ds := DuplicateSet{
		eng: make(map[string]int),
		kor: make(map[string]int),
	}
	for _, p := range pairs {
		if e := normalizeWord(p.Eng); e != "" {
			ds.eng[e]++
		}
		if k := normalizeWord(p.Kor); k != "" {
			ds.kor[k]++
		}
	}
	return ds
}

// IsDuplicateEng reports whether the English word appears more than
// once in the list the set was built from.
func (ds DuplicateSet) IsDuplicateEng(eng string) bool {
	e := normalizeWord(eng)
	return e != "" && ds.eng[e] > 1
}

// IsDuplicateKor reports the same for the Korean column.
func (ds DuplicateSet) IsDuplicateKor(kor string) bool {
	k := normalizeWord(kor)
	return k != "" && ds.kor[k] > 1
}

// DuplicateWarning returns the sorted list of duplicated English words
// for the editor's warning banner, empty when the list is clean.
func DuplicateWarning(pairs []models.WordPair) []string {
	ds := FindDuplicates(pairs)
	var dups []string
	for word, count := range ds.eng {
		if count > 1 {
			dups = append(dups, word)
		}
	}
	sort.Strings(dups)
	return dups
}
