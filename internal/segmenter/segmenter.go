// Package segmenter splits raw document text into overlapping
// fixed-size chunks with stable identifiers.
package segmenter

import (
	"fmt"
	"strings"

	"github.com/traceleaf/docrag/internal/core/domain"
)

// DefaultWindowSize is the default number of characters per chunk.
const DefaultWindowSize = 900

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 120

// FallbackTitle is used when a chunk body has no usable heading line.
const FallbackTitle = "Untitled document"

// maxTitleLen caps derived titles for display.
const maxTitleLen = 80

// Segmenter walks text with a sliding window and emits trimmed chunks.
// It is a pure function of its inputs: identical input yields identical
// chunks in identical order.
type Segmenter struct {
	windowSize int
	overlap    int
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithWindowSize sets the window size in characters.
func WithWindowSize(size int) Option {
	return func(s *Segmenter) {
		s.windowSize = size
	}
}

// WithOverlap sets the overlap between consecutive windows in characters.
func WithOverlap(overlap int) Option {
	return func(s *Segmenter) {
		s.overlap = overlap
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		windowSize: DefaultWindowSize,
		overlap:    DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Segment splits text into chunks for one source document.
//
// The window start advances by windowSize-overlap each step until it
// reaches the text length. Windows are trimmed of surrounding whitespace;
// windows that are empty after trimming are dropped and do not consume a
// sequence number. Trimming affects only output content, never the
// traversal position.
func (s *Segmenter) Segment(source, text string) ([]domain.Chunk, error) {
	if s.windowSize <= 0 || s.overlap <= 0 || s.windowSize <= s.overlap {
		return nil, fmt.Errorf("%w: window size %d must exceed overlap %d (both positive)",
			domain.ErrInvalidChunkConfig, s.windowSize, s.overlap)
	}

	stride := s.windowSize - s.overlap
	estimated := len(text)/stride + 1
	chunks := make([]domain.Chunk, 0, estimated)

	seq := 0
	for start := 0; start < len(text); start += stride {
		end := start + s.windowSize
		if end > len(text) {
			end = len(text)
		}

		body := strings.TrimSpace(text[start:end])
		if body == "" {
			continue
		}

		chunks = append(chunks, domain.Chunk{
			ID:     fmt.Sprintf("%s:%d", source, seq),
			Source: source,
			Title:  titleFromText(body),
			Text:   body,
		})
		seq++
	}

	return chunks, nil
}

// titleFromText derives a display title: the first line that is non-empty
// after stripping leading '#' and space characters, capped at 80
// characters. The cap counts runes, never splitting a multibyte
// character mid-sequence.
func titleFromText(body string) string {
	for _, line := range strings.Split(body, "\n") {
		clean := strings.TrimSpace(strings.TrimLeft(line, "# "))
		if clean == "" {
			continue
		}
		if runes := []rune(clean); len(runes) > maxTitleLen {
			clean = string(runes[:maxTitleLen])
		}
		return clean
	}
	return FallbackTitle
}
