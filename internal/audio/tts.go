package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
)

// TTSService generates word pronunciation MP3s for lists that have no
// pre-recorded clips on the storage host.
type TTSService struct {
	audioDir string
}

const ttsRequestTimeout = probeTimeout * 2

// NewTTSService creates a new TTS service writing into audioDir.
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
	}
}

// GenerateAudioFile converts text to speech and saves it as an MP3.
// Returns the filename (not full path) on success. Existing files are
// reused.
func (s *TTSService) GenerateAudioFile(ctx context.Context, text string) (string, error) {
	filename := fmt.Sprintf("word_%s.mp3", slug.Make(text))
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.generateUsingGoogleTTS(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech API.
// This is a simple, free option that doesn't require API keys
func (s *TTSService) generateUsingGoogleTTS(ctx context.Context, text, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := &http.Client{Timeout: ttsRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// BatchGenerateAudio generates audio files for multiple words
func (s *TTSService) BatchGenerateAudio(ctx context.Context, words []string) (map[string]string, error) {
	results := make(map[string]string)

	for _, word := range words {
		filename, err := s.GenerateAudioFile(ctx, word)
		if err != nil {
			return results, fmt.Errorf("failed to generate audio for '%s': %w", word, err)
		}
		results[word] = filename
	}

	return results, nil
}
