// Package render turns a processed interview into presentation formats:
// console output, a plain-text transcript, markdown, and a JSON bundle.
package render

import (
	"strings"
	"time"

	"github.com/scrivenlabs/scriven/internal/stats"
	"github.com/scrivenlabs/scriven/internal/transcript"
)

// Metadata carries the descriptive header fields shared by all formats.
type Metadata struct {
	Interviewer   string    `json:"interviewer"`
	Participant   string    `json:"participant"`
	Date          time.Time `json:"date"`
	Duration      string    `json:"duration"`
	Language      string    `json:"language"`
	InterviewType string    `json:"interview_type"`
	AudioQuality  string    `json:"audio_quality"`
	Model         string    `json:"model"`
	AudioFile     string    `json:"audio_file"`
}

// Document is the complete renderable result of one transcription run.
type Document struct {
	Meta  Metadata
	Turns []transcript.Turn
	Stats stats.Interview
}

var languageNames = map[string]string{
	"en": "English", "da": "Danish", "de": "German", "fr": "French",
	"es": "Spanish", "it": "Italian", "pt": "Portuguese", "nl": "Dutch",
	"sv": "Swedish", "no": "Norwegian", "fi": "Finnish", "ru": "Russian",
	"zh": "Chinese", "ja": "Japanese", "ko": "Korean", "ar": "Arabic",
}

// LanguageDisplayName maps an ISO 639-1 code to a display name, falling back
// to the upper-cased code for languages outside the table.
func LanguageDisplayName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}
