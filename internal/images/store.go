package images

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"

	"englisharcade/internal/models"
)

const (
	// defaultKept is how many candidates a slot keeps on first load:
	// the emoji (if any) and the first fetched photo, or whatever of
	// the two exists plus the blank fallback.
	defaultKept = 2

	// maxAlternatives caps a slot's list after "more images" merges.
	maxAlternatives = 15

	// moreInsertAt keeps the original choices near the front when new
	// variants are merged in.
	moreInsertAt = 3
)

// variantQueries are the extra search terms tried by the explicit
// "more images" action.
var variantQueries = []string{"photo", "image", "vector", "art", "picture", "graphic"}

// Fetcher resolves a search query to a single image URL. Satisfied by
// *PixabayClient; tests substitute fakes.
type Fetcher interface {
	FirstImage(ctx context.Context, query string) (string, error)
}

// Store is the per-worksheet image slot cache: an ordered candidate
// list plus a currently-displayed pointer for every (word, index) slot.
// All methods are safe for concurrent use; slot loads for different
// rows may run in parallel during a render.
type Store struct {
	fetcher Fetcher
	retries *RetryPolicy

	mu      sync.Mutex
	alts    map[string][]Candidate
	current map[string]int
}

// NewStore creates an empty slot cache backed by the given fetcher.
func NewStore(fetcher Fetcher) *Store {
	return &Store{
		fetcher: fetcher,
		retries: NewRetryPolicy(2),
		alts:    make(map[string][]Candidate),
		current: make(map[string]int),
	}
}

// Resolve returns the currently selected candidate for a word slot,
// loading alternatives on first use. It never fails: a dead network
// degrades to emoji or the blank box.
func (s *Store) Resolve(ctx context.Context, word string, index int) Candidate {
	if word == "" {
		return Blank()
	}
	key := SlotKey(word, index)

	if s.retries.Exhausted(key) {
		return Blank()
	}

	s.mu.Lock()
	list, loaded := s.alts[key]
	s.mu.Unlock()

	if !loaded || len(list) == 0 {
		list = s.loadAlternatives(ctx, word, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.current[key]
	if idx >= len(list) {
		idx = 0
		s.current[key] = 0
	}
	return list[idx]
}

// loadAlternatives builds a slot's initial candidate list: emoji first
// when the dictionary has one, a single fetched photo second, and the
// blank box last, keeping the first two entries. The result is never
// empty.
func (s *Store) loadAlternatives(ctx context.Context, word, key string) []Candidate {
	var list []Candidate

	if glyph, ok := EmojiFor(word); ok {
		list = append(list, Emoji(glyph))
	}

	if s.fetcher != nil {
		url, err := s.fetcher.FirstImage(ctx, word)
		if err != nil {
			log.Printf("image lookup failed for %q: %v", word, err)
		} else if url != "" {
			list = append(list, Photo(url))
		}
	}

	list = append(list, Blank())
	if len(list) > defaultKept {
		list = list[:defaultKept]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.alts[key] = list
	if _, ok := s.current[key]; !ok {
		s.current[key] = 0
	}
	return list
}

// AddMore fetches up to six variant search results for the slot and
// merges the unique new ones into the existing list, inserted after
// the original choices and capped at maxAlternatives. Returns how many
// candidates the slot now has.
func (s *Store) AddMore(ctx context.Context, word string, index int) int {
	key := SlotKey(word, index)

	var fresh []Candidate
	if s.fetcher != nil {
		for _, suffix := range variantQueries {
			url, err := s.fetcher.FirstImage(ctx, word+" "+suffix)
			if err != nil {
				log.Printf("variant lookup failed for %q %s: %v", word, suffix, err)
				continue
			}
			if url != "" {
				fresh = append(fresh, Photo(url))
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.alts[key]
	seen := lo.SliceToMap(existing, func(c Candidate) (string, struct{}) {
		return string(c.Kind) + "|" + c.Value, struct{}{}
	})
	unique := lo.Filter(fresh, func(c Candidate, _ int) bool {
		_, dup := seen[string(c.Kind)+"|"+c.Value]
		if !dup {
			seen[string(c.Kind)+"|"+c.Value] = struct{}{}
		}
		return !dup
	})

	if len(unique) > 0 {
		at := moreInsertAt
		if at > len(existing) {
			at = len(existing)
		}
		merged := make([]Candidate, 0, len(existing)+len(unique))
		merged = append(merged, existing[:at]...)
		merged = append(merged, unique...)
		merged = append(merged, existing[at:]...)
		if len(merged) > maxAlternatives {
			merged = merged[:maxAlternatives]
		}
		s.alts[key] = merged
	}

	return len(s.alts[key])
}

// Cycle advances the slot's pointer to the next alternative, wrapping
// at the end, and returns the now-current candidate. The second return
// is false when the slot has nothing loaded yet.
func (s *Store) Cycle(word string, index int) (Candidate, bool) {
	key := SlotKey(word, index)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.alts[key]
	if len(list) == 0 {
		return Candidate{}, false
	}
	s.current[key] = (s.current[key] + 1) % len(list)
	return list[s.current[key]], true
}

// SetSelected puts an explicit user choice (an upload, or a pick from
// the search modal) at the front of the slot's list and resets the
// pointer, so the choice wins on the next render and is included in
// saved state.
func (s *Store) SetSelected(word string, index int, c Candidate) {
	key := SlotKey(word, index)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.alts[key] = append([]Candidate{c}, s.alts[key]...)
	s.current[key] = 0
}

// ReportBroken records a failed <img> load for the slot. While retries
// remain the current candidate is returned unchanged so the client can
// try again; once the cap is hit the slot degrades to the blank box.
func (s *Store) ReportBroken(word string, index int) Candidate {
	key := SlotKey(word, index)

	if s.retries.Record(key) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if list := s.alts[key]; len(list) > 0 {
			return list[s.current[key]%len(list)]
		}
		return Blank()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.alts[key] = []Candidate{Blank()}
	s.current[key] = 0
	return Blank()
}

// Alternatives returns a copy of the slot's candidate list.
func (s *Store) Alternatives(word string, index int) []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.alts[SlotKey(word, index)]
	out := make([]Candidate, len(list))
	copy(out, list)
	return out
}

// Reset drops every slot and retry counter. Called when a worksheet is
// freshly loaded.
func (s *Store) Reset() {
	s.mu.Lock()
	s.alts = make(map[string][]Candidate)
	s.current = make(map[string]int)
	s.mu.Unlock()
	s.retries.Reset()
}

// Snapshot captures the currently selected candidate per slot in the
// persisted "word_index" key format.
func (s *Store) Snapshot() map[string]models.SavedImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make(map[string]models.SavedImage)
	for key, list := range s.alts {
		if len(list) == 0 {
			continue
		}
		c := list[s.current[key]%len(list)]
		word, idx := splitSlotKey(key)
		switch c.Kind {
		case KindEmoji:
			saved[key] = models.SavedImage{Src: "emoji", Emoji: c.Value, Word: word, Index: idx}
		case KindPhoto, KindUpload:
			saved[key] = models.SavedImage{Src: c.Value, Word: word, Index: idx}
		}
	}
	return saved
}

// splitSlotKey recovers the word and row index from a "word_index"
// key. Words may themselves contain underscores, so the split happens
// at the last one.
func splitSlotKey(key string) (string, int) {
	at := strings.LastIndexByte(key, '_')
	if at < 0 {
		return key, 0
	}
	idx, err := strconv.Atoi(key[at+1:])
	if err != nil {
		return key, 0
	}
	return key[:at], idx
}

// LoadSaved seeds slots from persisted worksheet images, replacing any
// existing state. Unknown entries are skipped.
func (s *Store) LoadSaved(saved map[string]models.SavedImage) {
	s.Reset()

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, img := range saved {
		switch {
		case img.Src == "emoji" && img.Emoji != "":
			s.alts[key] = []Candidate{Emoji(img.Emoji), Blank()}
		case img.Src != "":
			s.alts[key] = []Candidate{Photo(img.Src), Blank()}
		default:
			continue
		}
		s.current[key] = 0
	}
}
