package images

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeFetcher returns canned URLs per query and counts calls.
type fakeFetcher struct {
	urls  map[string]string
	err   error
	calls []string
}

func (f *fakeFetcher) FirstImage(_ context.Context, query string) (string, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return "", f.err
	}
	return f.urls[query], nil
}

func TestResolveLoadsAlternatives(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		urls     map[string]string
		err      error
		wantKind CandidateKind
		wantAlts int
	}{
		{
			name:     "emoji word with photo keeps emoji first",
			word:     "apple",
			urls:     map[string]string{"apple": "https://img.example/apple.jpg"},
			wantKind: KindEmoji,
			wantAlts: 2,
		},
		{
			name:     "plain word gets photo then blank",
			word:     "photosynthesis",
			urls:     map[string]string{"photosynthesis": "https://img.example/p.jpg"},
			wantKind: KindPhoto,
			wantAlts: 2,
		},
		{
			name:     "fetch failure on emoji word falls back to emoji",
			word:     "apple",
			err:      errors.New("network down"),
			wantKind: KindEmoji,
			wantAlts: 2,
		},
		{
			name:     "fetch failure on plain word falls back to blank",
			word:     "photosynthesis",
			err:      errors.New("network down"),
			wantKind: KindBlank,
			wantAlts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(&fakeFetcher{urls: tt.urls, err: tt.err})
			got := s.Resolve(context.Background(), tt.word, 0)
			if got.Kind != tt.wantKind {
				t.Errorf("Resolve() kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if alts := s.Alternatives(tt.word, 0); len(alts) != tt.wantAlts {
				t.Errorf("alternatives = %d, want %d", len(alts), tt.wantAlts)
			}
		})
	}
}

func TestResolveEmptyWordIsBlank(t *testing.T) {
	s := NewStore(&fakeFetcher{})
	if got := s.Resolve(context.Background(), "", 3); got.Kind != KindBlank {
		t.Errorf("Resolve(\"\") kind = %q, want blank", got.Kind)
	}
}

func TestResolveFetchesOnce(t *testing.T) {
	f := &fakeFetcher{urls: map[string]string{"dog": "https://img.example/dog.jpg"}}
	s := NewStore(f)

	s.Resolve(context.Background(), "dog", 0)
	s.Resolve(context.Background(), "dog", 0)
	s.Resolve(context.Background(), "dog", 0)

	if len(f.calls) != 1 {
		t.Errorf("fetcher called %d times, want 1", len(f.calls))
	}
}

func TestAddMoreMergesUniqueVariants(t *testing.T) {
	f := &fakeFetcher{urls: map[string]string{
		"dog":         "https://img.example/dog.jpg",
		"dog photo":   "https://img.example/dog1.jpg",
		"dog image":   "https://img.example/dog2.jpg",
		"dog vector":  "https://img.example/dog1.jpg", // duplicate of photo variant
		"dog art":     "",
		"dog picture": "https://img.example/dog3.jpg",
		"dog graphic": "https://img.example/dog.jpg", // already loaded
	}}
	s := NewStore(f)
	s.Resolve(context.Background(), "dog", 0)

	// 2 loaded + dog1 + dog2 + dog3; the duplicate URLs and the empty
	// result contribute nothing.
	if got := s.AddMore(context.Background(), "dog", 0); got != 5 {
		t.Errorf("AddMore() = %d alternatives, want 5", got)
	}
}

func TestAddMoreInsertsAfterOriginals(t *testing.T) {
	f := &fakeFetcher{urls: map[string]string{
		"dog":       "https://img.example/dog.jpg",
		"dog photo": "https://img.example/fresh.jpg",
	}}
	s := NewStore(f)
	s.Resolve(context.Background(), "dog", 0)
	s.AddMore(context.Background(), "dog", 0)

	alts := s.Alternatives("dog", 0)
	// Only two originals exist, so the fresh candidate lands right
	// after them rather than at a fixed offset.
	if alts[2].Value != "https://img.example/fresh.jpg" {
		t.Errorf("fresh candidate at %q, want position 2", alts[2].Value)
	}
}

func TestAddMoreCapsList(t *testing.T) {
	s := NewStore(nil)
	for i := 0; i < 20; i++ {
		s.SetSelected("dog", 0, Photo(fmt.Sprintf("https://img.example/%d.jpg", i)))
	}
	f := &fakeFetcher{urls: map[string]string{"dog photo": "https://img.example/new.jpg"}}
	s.fetcher = f

	if got := s.AddMore(context.Background(), "dog", 0); got != maxAlternatives {
		t.Errorf("AddMore() = %d, want cap %d", got, maxAlternatives)
	}
}

func TestCycleWrapsAround(t *testing.T) {
	f := &fakeFetcher{urls: map[string]string{"dog": "https://img.example/dog.jpg"}}
	s := NewStore(f)
	first := s.Resolve(context.Background(), "dog", 0)

	second, ok := s.Cycle("dog", 0)
	if !ok || second == first {
		t.Fatalf("Cycle() = %v, %v, want a different candidate", second, ok)
	}
	wrapped, _ := s.Cycle("dog", 0)
	if wrapped != first {
		t.Errorf("Cycle() after full loop = %v, want %v", wrapped, first)
	}
}

func TestCycleUnloadedSlot(t *testing.T) {
	s := NewStore(nil)
	if _, ok := s.Cycle("dog", 0); ok {
		t.Error("Cycle() on unloaded slot reported ok")
	}
}

func TestSetSelectedWinsNextResolve(t *testing.T) {
	f := &fakeFetcher{urls: map[string]string{"dog": "https://img.example/dog.jpg"}}
	s := NewStore(f)
	s.Resolve(context.Background(), "dog", 0)
	s.Cycle("dog", 0)

	pick := Photo("https://img.example/chosen.jpg")
	s.SetSelected("dog", 0, pick)

	if got := s.Resolve(context.Background(), "dog", 0); got != pick {
		t.Errorf("Resolve() after SetSelected = %v, want %v", got, pick)
	}
}

func TestReportBrokenDegradesAfterRetries(t *testing.T) {
	// "harbor" has no emoji entry, so the photo is the slot's first
	// candidate and the retry path is what gets exercised.
	f := &fakeFetcher{urls: map[string]string{"harbor": "https://img.example/harbor.jpg"}}
	s := NewStore(f)
	s.Resolve(context.Background(), "harbor", 0)

	if got := s.ReportBroken("harbor", 0); got.Kind != KindPhoto {
		t.Errorf("first failure: kind = %q, want photo retry", got.Kind)
	}
	if got := s.ReportBroken("harbor", 0); got.Kind != KindPhoto {
		t.Errorf("second failure: kind = %q, want photo retry", got.Kind)
	}
	if got := s.ReportBroken("harbor", 0); got.Kind != KindBlank {
		t.Errorf("third failure: kind = %q, want blank", got.Kind)
	}
	// The slot stays blank from now on.
	if got := s.Resolve(context.Background(), "harbor", 0); got.Kind != KindBlank {
		t.Errorf("Resolve() after exhaustion = %q, want blank", got.Kind)
	}
}

func TestSnapshotLoadSavedRoundTrip(t *testing.T) {
	f := &fakeFetcher{urls: map[string]string{"harbor": "https://img.example/harbor.jpg"}}
	s := NewStore(f)
	s.Resolve(context.Background(), "apple", 2)  // emoji wins
	s.Resolve(context.Background(), "harbor", 0) // photo wins, no emoji entry

	saved := s.Snapshot()
	if len(saved) != 2 {
		t.Fatalf("Snapshot() = %d entries, want 2", len(saved))
	}
	if img := saved["apple_2"]; img.Src != "emoji" || img.Emoji == "" || img.Word != "apple" || img.Index != 2 {
		t.Errorf("apple_2 = %+v, want emoji entry", img)
	}
	if img := saved["harbor_0"]; img.Src != "https://img.example/harbor.jpg" {
		t.Errorf("harbor_0 src = %q", img.Src)
	}

	fresh := NewStore(nil)
	fresh.LoadSaved(saved)
	if got := fresh.Resolve(context.Background(), "apple", 2); got.Kind != KindEmoji {
		t.Errorf("restored apple kind = %q, want emoji", got.Kind)
	}
	if got := fresh.Resolve(context.Background(), "harbor", 0); got.Value != "https://img.example/harbor.jpg" {
		t.Errorf("restored harbor value = %q", got.Value)
	}
}

func TestResetClearsSlots(t *testing.T) {
	f := &fakeFetcher{urls: map[string]string{"dog": "https://img.example/dog.jpg"}}
	s := NewStore(f)
	s.Resolve(context.Background(), "dog", 0)
	s.ReportBroken("dog", 0)
	s.Reset()

	if alts := s.Alternatives("dog", 0); len(alts) != 0 {
		t.Errorf("alternatives after Reset = %d, want 0", len(alts))
	}
	if s.retries.Exhausted(SlotKey("dog", 0)) {
		t.Error("retry counter survived Reset")
	}
}
