package images

import (
	"encoding/base64"
	"fmt"

	"github.com/h2non/filetype"
)

// maxUploadBytes limits dropped images to 5MB.
const maxUploadBytes = 5 * 1024 * 1024

// ErrNotImage and ErrTooLarge carry the messages shown to the user
// when a dropped file is rejected. A rejected upload never touches the
// slot's existing candidates.
var (
	ErrNotImage = fmt.Errorf("Please drop an image file (JPG, PNG, GIF, etc.)")
	ErrTooLarge = fmt.Errorf("Image file is too large. Please use an image smaller than 5MB.")
)

// ValidateUpload checks a dropped file's bytes before they are
// accepted into a slot. The content is sniffed rather than trusting
// the client's declared MIME type.
func ValidateUpload(data []byte) error {
	if len(data) > maxUploadBytes {
		return ErrTooLarge
	}
	if !filetype.IsImage(data) {
		return ErrNotImage
	}
	return nil
}

// AcceptUpload validates a dropped image and, on success, installs it
// as the slot's selected candidate as a data URL. The returned
// candidate is what the slot now displays.
func (s *Store) AcceptUpload(word string, index int, data []byte) (Candidate, error) {
	if err := ValidateUpload(data); err != nil {
		return Candidate{}, err
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return Candidate{}, ErrNotImage
	}

	dataURL := "data:" + kind.MIME.Value + ";base64," + base64.StdEncoding.EncodeToString(data)
	c := Upload(dataURL)
	s.SetSelected(word, index, c)
	return c, nil
}
