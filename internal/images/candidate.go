package images

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// CandidateKind discriminates what a slot candidate renders as.
type CandidateKind string

const (
	KindEmoji  CandidateKind = "emoji"
	KindPhoto  CandidateKind = "photo"
	KindUpload CandidateKind = "upload"
	KindBlank  CandidateKind = "blank"
)

// Candidate is one renderable visual for a word slot: an emoji glyph,
// a fetched photo URL, a user-uploaded data URL, or the blank box.
type Candidate struct {
	Kind  CandidateKind `json:"kind"`
	Value string        `json:"value"`
}

// Emoji builds an emoji candidate.
func Emoji(glyph string) Candidate { return Candidate{Kind: KindEmoji, Value: glyph} }

// Photo builds a photo-URL candidate.
func Photo(url string) Candidate { return Candidate{Kind: KindPhoto, Value: url} }

// Upload builds a candidate from an uploaded data URL.
func Upload(dataURL string) Candidate { return Candidate{Kind: KindUpload, Value: dataURL} }

// Blank is the empty white box appended as the final fallback.
func Blank() Candidate { return Candidate{Kind: KindBlank} }

// IsRemote reports whether the candidate points at a fetched URL that
// can break after render (and so participates in retry accounting).
func (c Candidate) IsRemote() bool { return c.Kind == KindPhoto }

// SlotKey builds the cache key for a word slot. Keys are shared with
// the persisted images map, so the format must stay "word_index".
func SlotKey(word string, index int) string {
	return strings.ToLower(word) + "_" + strconv.Itoa(index)
}

// HTML renders the candidate at the given pixel size. Photo and upload
// candidates become an <img>; emoji and blank become styled divs, the
// emoji scaled to 80% of the slot like the original artwork.
func (c Candidate) HTML(size int) template.HTML {
	switch c.Kind {
	case KindEmoji:
		return template.HTML(fmt.Sprintf(
			`<div style="font-size:%dpx;line-height:1;">%s</div>`,
			size*8/10, template.HTMLEscapeString(c.Value)))
	case KindPhoto, KindUpload:
		return template.HTML(fmt.Sprintf(
			`<img src="%s" style="width:%dpx;height:%dpx;object-fit:cover;border-radius:8px;border:2px solid #ddd;cursor:pointer;" alt="">`,
			template.HTMLEscapeString(c.Value), size, size))
	default:
		return template.HTML(fmt.Sprintf(
			`<div style="width:%dpx;height:%dpx;background:#fff;border-radius:8px;border:2px solid #ddd;"></div>`,
			size, size))
	}
}

// PlaceholderHTML is the labeled grey box shown while a slot has no
// word or its image failed permanently.
func PlaceholderHTML(index, size int, label string) template.HTML {
	if label == "" {
		label = fmt.Sprintf("Image %d", index+1)
	}
	return template.HTML(fmt.Sprintf(
		`<div style="width:%dpx;height:%dpx;background:#f5f5f5;display:flex;align-items:center;justify-content:center;border-radius:8px;border:2px solid #ddd;font-size:14px;color:#666;">%s</div>`,
		size, size, template.HTMLEscapeString(label)))
}
