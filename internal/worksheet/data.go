package worksheet

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"englisharcade/internal/models"
)

var (
	leadingNumber = regexp.MustCompile(`^\s*\d+\.?\s*`)
	leadingJunk   = regexp.MustCompile(`^[^\w가-힣]+`)
	digitsOnly    = regexp.MustCompile(`^\d+$`)
)

// CleanWord strips list numbering ("1. apple"), leading punctuation,
// and trailing whitespace from a pasted word.
func CleanWord(s string) string {
	s = leadingNumber.ReplaceAllString(s, "")
	s = leadingJunk.ReplaceAllString(s, "")
	return strings.TrimRight(s, " \t")
}

// ParseWordLines parses the editor's word list text: one pair per
// line as "english, korean". A line without a comma repeats the word
// in both columns; blank lines and bare numbers are dropped.
func ParseWordLines(text string) []models.WordPair {
	var pairs []models.WordPair
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var eng, kor string
		if strings.Contains(line, ",") {
			parts := strings.Split(line, ",")
			eng = CleanWord(strings.TrimSpace(parts[0]))
			kor = strings.TrimSpace(parts[1])
		} else {
			eng = CleanWord(strings.TrimSpace(line))
			kor = eng
		}
		if eng == "" || digitsOnly.MatchString(eng) {
			continue
		}
		pairs = append(pairs, models.WordPair{Eng: eng, Kor: kor})
	}
	return pairs
}

// FormatWordLines is the inverse of ParseWordLines, producing the
// textarea text for a word list.
func FormatWordLines(pairs []models.WordPair) string {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = p.Eng + ", " + p.Kor
	}
	return strings.Join(lines, "\n")
}

// Document is the in-memory form of a saved worksheet: everything the
// editor needs to restore a session.
type Document struct {
	Title    string
	Passage  string
	Pairs    []models.WordPair
	Settings models.Settings
	Images   map[string]models.SavedImage
}

// savedSettings is the subset persisted inside WorksheetData.Settings.
// Layout travels in its own column so the worksheet manager can filter
// on it.
type savedSettings struct {
	Font             string          `json:"font"`
	FontSize         int             `json:"fontSize"`
	ImageSize        int             `json:"imageSize"`
	ImageGap         int             `json:"imageGap"`
	TestMode         models.TestMode `json:"testMode"`
	NumLettersToHide int             `json:"numLettersToHide"`
}

// Data flattens the document into the persisted worksheet shape.
func (d Document) Data() (models.WorksheetData, error) {
	settings, err := json.Marshal(savedSettings{
		Font:             d.Settings.Font,
		FontSize:         d.Settings.FontSize,
		ImageSize:        d.Settings.ImageSize,
		ImageGap:         d.Settings.ImageGap,
		TestMode:         d.Settings.TestMode,
		NumLettersToHide: d.Settings.NumLettersToHide,
	})
	if err != nil {
		return models.WorksheetData{}, fmt.Errorf("marshal settings: %w", err)
	}

	imgs := d.Images
	if imgs == nil {
		imgs = map[string]models.SavedImage{}
	}
	images, err := json.Marshal(imgs)
	if err != nil {
		return models.WorksheetData{}, fmt.Errorf("marshal images: %w", err)
	}

	words := make([]string, len(d.Pairs))
	for i, p := range d.Pairs {
		words[i] = p.Eng + ", " + p.Kor
	}

	return models.WorksheetData{
		WorksheetType: "wordtest",
		Title:         d.Title,
		PassageText:   d.Passage,
		Words:         words,
		Layout:        string(d.Settings.Layout),
		Settings:      string(settings),
		Images:        string(images),
	}, nil
}

// DocumentFromData restores a document from its persisted form.
// Malformed settings or image JSON degrades to defaults rather than
// failing the load, matching how older saved worksheets behave.
func DocumentFromData(data models.WorksheetData) Document {
	doc := Document{
		Title:    data.Title,
		Passage:  data.PassageText,
		Pairs:    ParseWordLines(strings.Join(data.Words, "\n")),
		Settings: models.DefaultSettings(),
		Images:   map[string]models.SavedImage{},
	}

	if data.Settings != "" {
		var saved savedSettings
		if err := json.Unmarshal([]byte(data.Settings), &saved); err == nil {
			if saved.Font != "" {
				doc.Settings.Font = saved.Font
			}
			if saved.FontSize > 0 {
				doc.Settings.FontSize = saved.FontSize
			}
			if saved.ImageSize > 0 {
				doc.Settings.ImageSize = saved.ImageSize
			}
			if saved.ImageGap > 0 {
				doc.Settings.ImageGap = saved.ImageGap
			}
			if saved.TestMode != "" {
				doc.Settings.TestMode = saved.TestMode
			}
			if saved.NumLettersToHide > 0 {
				doc.Settings.NumLettersToHide = saved.NumLettersToHide
			}
		}
	}
	if data.Layout != "" {
		doc.Settings.Layout = models.Layout(data.Layout)
	}
	if data.Images != "" {
		var imgs map[string]models.SavedImage
		if err := json.Unmarshal([]byte(data.Images), &imgs); err == nil && imgs != nil {
			doc.Images = imgs
		}
	}
	return doc
}
