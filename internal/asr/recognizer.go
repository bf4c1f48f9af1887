package asr

import (
	"context"
	"fmt"

	"github.com/scrivenlabs/scriven/internal/config"
	"github.com/scrivenlabs/scriven/internal/transcript"
)

// Segment is one recognizer-emitted chunk with raw timing and scoring.
type Segment struct {
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Text       string   `json:"text"`
	AvgLogProb *float64 `json:"avg_logprob,omitempty"`
}

// Result captures one complete recognition pass over an audio file.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// TranscriptSegments converts the wire segments into the transcript model.
// Unscored segments keep a nil confidence; the sentinel substitution happens
// downstream.
func (r Result) TranscriptSegments() []transcript.Segment {
	segments := make([]transcript.Segment, len(r.Segments))
	for i, s := range r.Segments {
		segments[i] = transcript.Segment{
			Start:      s.Start,
			End:        s.End,
			Text:       s.Text,
			Confidence: s.AvgLogProb,
		}
	}
	return segments
}

// Recognizer abstracts speech-to-text backends.
type Recognizer interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}

// New selects a recognizer implementation from configuration.
func New(cfg config.ASRConfig) (Recognizer, error) {
	switch cfg.Mode {
	case "exec":
		return NewExecRecognizer(cfg)
	case "http":
		return NewHTTPRecognizer(cfg)
	case "mock":
		return NewMockRecognizer(), nil
	default:
		return nil, fmt.Errorf("unknown asr mode %q", cfg.Mode)
	}
}
