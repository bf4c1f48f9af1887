package render

import (
	"fmt"
	"strings"

	"github.com/scrivenlabs/scriven/internal/transcript"
)

// Markdown renders the transcript with a metadata header, transcription
// notes, and a statistics table.
func Markdown(doc Document) string {
	var b strings.Builder
	b.WriteString("# Interview Transcript\n\n")
	fmt.Fprintf(&b, "- **Date:** %s\n", doc.Meta.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "- **Interviewer:** %s\n", doc.Meta.Interviewer)
	fmt.Fprintf(&b, "- **Participant:** %s\n", doc.Meta.Participant)
	fmt.Fprintf(&b, "- **Duration:** %s\n", doc.Meta.Duration)
	fmt.Fprintf(&b, "- **Language:** %s\n", doc.Meta.Language)
	fmt.Fprintf(&b, "- **Interview type:** %s\n", doc.Meta.InterviewType)
	fmt.Fprintf(&b, "- **Audio quality:** %s\n", doc.Meta.AudioQuality)
	if doc.Meta.Model != "" {
		fmt.Fprintf(&b, "- **Model:** %s\n", doc.Meta.Model)
	}

	b.WriteString("\n## Transcription Notes\n\n")
	if doc.Meta.Model != "" {
		fmt.Fprintf(&b, "- Automated transcription using the %s model\n", doc.Meta.Model)
	} else {
		b.WriteString("- Automated transcription\n")
	}
	b.WriteString("- Speaker identification based on pause detection\n")
	b.WriteString("- Timestamps indicate the start and end of each utterance\n")
	b.WriteString("- [PAUSE] and [UNCLEAR] markers inserted where detected\n")
	b.WriteString("- Manual review recommended for final accuracy\n")

	b.WriteString("\n## Transcript\n\n")
	numbers := transcript.DisplayNumbers(doc.Turns)
	var current transcript.Speaker
	for i, t := range doc.Turns {
		if t.Speaker != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = t.Speaker
		}
		fmt.Fprintf(&b, "**Turn %d** \\[%s - %s\\] **%s:** %s\n", numbers[i], t.StartTime, t.EndTime, t.Speaker, t.Text)
	}

	s := doc.Stats
	b.WriteString("\n## Statistics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| Total turns | %d |\n", s.TotalSegments)
	fmt.Fprintf(&b, "| Interviewer turns | %d (%.1f%%) |\n", s.Interviewer.Turns, s.Interviewer.TurnPct)
	fmt.Fprintf(&b, "| Participant turns | %d (%.1f%%) |\n", s.Participant.Turns, s.Participant.TurnPct)
	fmt.Fprintf(&b, "| Total words | %d |\n", s.TotalWords)
	fmt.Fprintf(&b, "| Avg words/segment | %v |\n", s.AvgWordsPerSegment)
	fmt.Fprintf(&b, "| Speech rate | %.1f words/min |\n", s.SpeechRateWPM)
	fmt.Fprintf(&b, "| Avg segment length | %vs |\n", s.AvgSegmentLength)
	fmt.Fprintf(&b, "| Longest segment | %vs |\n", s.LongestSegment)
	fmt.Fprintf(&b, "| Shortest segment | %vs |\n", s.ShortestSegment)
	fmt.Fprintf(&b, "| Total pauses | %d |\n", s.TotalPauses)
	fmt.Fprintf(&b, "| Avg pause duration | %vs |\n", s.AvgPauseDuration)
	fmt.Fprintf(&b, "| Longest pause | %vs |\n", s.LongestPause)
	fmt.Fprintf(&b, "| Speech vs silence | %.1f%% speech |\n", s.SpeechVsPauseRatio)
	fmt.Fprintf(&b, "| High confidence segments | %.1f%% |\n", s.HighConfidencePct)
	fmt.Fprintf(&b, "| Overall confidence | %v (scale: -3 to 0) |\n", s.AvgConfidence)
	return b.String()
}
