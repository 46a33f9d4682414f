package worksheet

import (
	"sync"

	"englisharcade/internal/images"
	"englisharcade/internal/models"
)

// undoDepth bounds the edit history per editor session.
const undoDepth = 50

// State is one editor session: the current word list, its settings,
// the image slot store, and a bounded undo history. It replaces the
// page-global mutable state the browser editor kept.
type State struct {
	mu       sync.Mutex
	title    string
	passage  string
	words    []models.WordPair
	settings models.Settings
	images   *images.Store
	undo     [][]models.WordPair
}

// NewState creates a fresh editor session with default settings.
func NewState(store *images.Store) *State {
	return &State{
		settings: models.DefaultSettings(),
		images:   store,
	}
}

// Words returns a copy of the current word list.
func (s *State) Words() []models.WordPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WordPair, len(s.words))
	copy(out, s.words)
	return out
}

// Settings returns the session's current settings.
func (s *State) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the session settings. Settings changes are
// not undoable; only word edits push history.
func (s *State) UpdateSettings(st models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st
}

// TitleAndPassage returns the session's title and source passage.
func (s *State) TitleAndPassage() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title, s.passage
}

// SetTitle sets the worksheet title.
func (s *State) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// SetPassage sets the source passage text.
func (s *State) SetPassage(passage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passage = passage
}

// Images exposes the session's image slot store.
func (s *State) Images() *images.Store {
	return s.images
}

// pushUndo must be called with the lock held, before the word list is
// mutated.
func (s *State) pushUndo() {
	snapshot := make([]models.WordPair, len(s.words))
	copy(snapshot, s.words)
	s.undo = append(s.undo, snapshot)
	if len(s.undo) > undoDepth {
		s.undo = s.undo[1:]
	}
}

// SetWords replaces the whole word list, as when the textarea is
// re-parsed. The previous list is pushed onto the undo history.
func (s *State) SetWords(pairs []models.WordPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushUndo()
	s.words = make([]models.WordPair, len(pairs))
	copy(s.words, pairs)
}

// EditWord updates one side of a word pair in place.
func (s *State) EditWord(index int, lang, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.words) {
		return false
	}
	s.pushUndo()
	switch lang {
	case "kor":
		s.words[index].Kor = value
	default:
		s.words[index].Eng = value
	}
	return true
}

// DeleteWord removes the pair at index.
func (s *State) DeleteWord(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.words) {
		return false
	}
	s.pushUndo()
	s.words = append(s.words[:index], s.words[index+1:]...)
	return true
}

// Undo restores the most recent word list snapshot. Returns false when
// the history is empty.
func (s *State) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	s.words = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return true
}

// UndoDepth reports how many snapshots the history currently holds.
func (s *State) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// Reset clears the session back to an empty worksheet with default
// settings, dropping the undo history and all image slots.
func (s *State) Reset() {
	s.mu.Lock()
	s.title = ""
	s.passage = ""
	s.words = nil
	s.settings = models.DefaultSettings()
	s.undo = nil
	s.mu.Unlock()
	if s.images != nil {
		s.images.Reset()
	}
}

// LoadWorksheet replaces the session with a saved worksheet. Image
// slots are reseeded from the saved selections; previously loaded
// alternatives never leak across worksheets.
func (s *State) LoadWorksheet(data models.WorksheetData) {
	doc := DocumentFromData(data)

	s.mu.Lock()
	s.title = doc.Title
	s.passage = doc.Passage
	s.words = doc.Pairs
	s.settings = doc.Settings
	s.undo = nil
	s.mu.Unlock()

	if s.images != nil {
		s.images.LoadSaved(doc.Images)
	}
}

// Snapshot captures the session as a persistable worksheet.
func (s *State) Snapshot() (models.WorksheetData, error) {
	s.mu.Lock()
	doc := Document{
		Title:    s.title,
		Passage:  s.passage,
		Pairs:    append([]models.WordPair(nil), s.words...),
		Settings: s.settings,
	}
	s.mu.Unlock()

	if s.images != nil {
		doc.Images = s.images.Snapshot()
	}
	return doc.Data()
}

// SessionStore hands out editor sessions keyed by an opaque ID, so
// several worksheets can be edited concurrently.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*State
	newStore func() *images.Store
}

// NewSessionStore creates a session registry. newStore builds the
// image slot store backing each fresh session.
func NewSessionStore(newStore func() *images.Store) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*State),
		newStore: newStore,
	}
}

// Get returns the session for the ID, creating it on first use.
func (ss *SessionStore) Get(id string) *State {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if st, ok := ss.sessions[id]; ok {
		return st
	}
	var imgs *images.Store
	if ss.newStore != nil {
		imgs = ss.newStore()
	}
	st := NewState(imgs)
	ss.sessions[id] = st
	return st
}

// Drop discards a session.
func (ss *SessionStore) Drop(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, id)
}
