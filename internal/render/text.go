package render

import (
	"fmt"
	"strings"

	"github.com/scrivenlabs/scriven/internal/transcript"
)

// Text renders the transcript as a plain-text document with a metadata
// header. Consecutive turns by the same speaker share a turn number; a blank
// line separates speaker changes.
func Text(doc Document) string {
	var b strings.Builder
	b.WriteString("INTERVIEW TRANSCRIPT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Date: %s\n", doc.Meta.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Duration: %s\n", doc.Meta.Duration)
	fmt.Fprintf(&b, "Language: %s\n", doc.Meta.Language)
	fmt.Fprintf(&b, "Quality: %s\n", doc.Meta.AudioQuality)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	writeTurns(&b, doc.Turns)
	return b.String()
}

// Console renders the transcript plus the statistics summary printed after a
// run. The layout matches Text but with a wider rule and a closing summary
// block.
func Console(doc Document) string {
	var b strings.Builder
	b.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	b.WriteString("INTERVIEW TRANSCRIPT\n")
	b.WriteString(strings.Repeat("=", 80) + "\n")
	fmt.Fprintf(&b, "Date: %s\n", doc.Meta.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Duration: %s\n", doc.Meta.Duration)
	fmt.Fprintf(&b, "Language: %s\n", doc.Meta.Language)
	fmt.Fprintf(&b, "Quality: %s\n", doc.Meta.AudioQuality)
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	writeTurns(&b, doc.Turns)

	b.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	b.WriteString("TRANSCRIPTION SUMMARY\n")
	b.WriteString(strings.Repeat("=", 80) + "\n")
	fmt.Fprintf(&b, "Interviewer: %s\n", doc.Meta.Interviewer)
	fmt.Fprintf(&b, "Participant: %s\n", doc.Meta.Participant)
	fmt.Fprintf(&b, "Total duration: %s\n", doc.Meta.Duration)
	fmt.Fprintf(&b, "Total turns: %d\n", doc.Stats.TotalSegments)
	fmt.Fprintf(&b, "Total words: %d\n", doc.Stats.TotalWords)
	fmt.Fprintf(&b, "Speech rate: %.1f words/minute\n", doc.Stats.SpeechRateWPM)
	fmt.Fprintf(&b, "%s: %d turns (%.1f%%), %d words (%.1f%%)\n",
		transcript.SpeakerInterviewer, doc.Stats.Interviewer.Turns, doc.Stats.Interviewer.TurnPct,
		doc.Stats.Interviewer.Words, doc.Stats.Interviewer.WordPct)
	fmt.Fprintf(&b, "%s: %d turns (%.1f%%), %d words (%.1f%%)\n",
		transcript.SpeakerParticipant, doc.Stats.Participant.Turns, doc.Stats.Participant.TurnPct,
		doc.Stats.Participant.Words, doc.Stats.Participant.WordPct)
	b.WriteString("\nQuality metrics:\n")
	fmt.Fprintf(&b, "Audio quality: %s\n", doc.Stats.AudioQuality)
	fmt.Fprintf(&b, "Average confidence: %v (higher is better)\n", doc.Stats.AvgConfidence)
	return b.String()
}

func writeTurns(b *strings.Builder, turns []transcript.Turn) {
	numbers := transcript.DisplayNumbers(turns)
	var current transcript.Speaker
	for i, t := range turns {
		if t.Speaker != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = t.Speaker
		}
		fmt.Fprintf(b, "Turn %2d [%s - %s] %s: %s\n", numbers[i], t.StartTime, t.EndTime, t.Speaker, t.Text)
	}
}
