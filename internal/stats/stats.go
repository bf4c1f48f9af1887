// Package stats derives interview-level statistics from speaker-attributed
// transcript segments. All inputs are consumed in one pass over the labeled
// sequence; nothing here re-reads audio or re-runs attribution.
package stats

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scrivenlabs/scriven/internal/transcript"
)

// Confidence bucket boundaries, in average log-probability.
const (
	// HighConfidenceFloor is exclusive: a segment is high confidence only
	// strictly above it.
	HighConfidenceFloor = -0.5
	// LowConfidenceCeil is inclusive for medium: segments at or above it
	// (and not high) are medium, strictly below is low.
	LowConfidenceCeil = -1.0
)

// Audio quality labels derived from average confidence.
const (
	QualityHigh    = "High"
	QualityMedium  = "Medium"
	QualityLow     = "Low"
	QualityUnknown = "Unknown"
)

// SpeakerShare summarizes one role's share of the conversation.
type SpeakerShare struct {
	Turns   int     `json:"turns"`
	TurnPct float64 `json:"turn_pct"`
	Words   int     `json:"words"`
	WordPct float64 `json:"word_pct"`
}

// Interview aggregates volume, confidence, segment-length, pause, and
// per-speaker statistics for one transcribed interview.
//
// Rounding policy: percentages, average words per segment, and speech rate
// carry one decimal place; durations, segment lengths, and pause figures two;
// average confidence three. Rounding is half to even on the shortest decimal
// representation of the value.
type Interview struct {
	TotalSegments      int     `json:"total_segments"`
	TotalWords         int     `json:"total_words"`
	AvgWordsPerSegment float64 `json:"avg_words_per_segment"`

	AvgConfidence         float64 `json:"avg_confidence"`
	HighConfidenceCount   int     `json:"high_confidence_count"`
	MediumConfidenceCount int     `json:"medium_confidence_count"`
	LowConfidenceCount    int     `json:"low_confidence_count"`
	HighConfidencePct     float64 `json:"high_confidence_pct"`
	MediumConfidencePct   float64 `json:"medium_confidence_pct"`
	LowConfidencePct      float64 `json:"low_confidence_pct"`

	AvgSegmentLength float64 `json:"avg_segment_length"`
	LongestSegment   float64 `json:"longest_segment"`
	ShortestSegment  float64 `json:"shortest_segment"`

	TotalPauses        int     `json:"total_pauses"`
	AvgPauseDuration   float64 `json:"avg_pause_duration"`
	LongestPause       float64 `json:"longest_pause"`
	TotalPauseTime     float64 `json:"total_pause_time"`
	SpeechVsPauseRatio float64 `json:"speech_vs_pause_ratio"`

	TotalDuration float64 `json:"total_duration"`
	SpeechRateWPM float64 `json:"speech_rate_wpm"`
	AudioQuality  string  `json:"audio_quality"`

	Interviewer SpeakerShare `json:"interviewer"`
	Participant SpeakerShare `json:"participant"`
}

// Compute derives the full statistics record from labeled segments and the
// total audio duration in seconds. An empty sequence yields zero values with
// quality Unknown; only the duration input is carried through. Word counts
// come from whitespace-splitting the raw segment text, so content markers
// applied later for display never change the numbers.
func Compute(labeled []transcript.LabeledSegment, audioDuration float64) Interview {
	out := Interview{
		AudioQuality:  QualityUnknown,
		TotalDuration: round2(audioDuration),
	}
	if len(labeled) == 0 {
		return out
	}

	n := len(labeled)
	out.TotalSegments = n

	var (
		confSum    float64
		lengthSum  float64
		longest    float64
		shortest   float64
		totalWords int
	)
	longest = labeled[0].End - labeled[0].Start
	shortest = longest
	for _, ls := range labeled {
		totalWords += len(strings.Fields(ls.Text))

		c := ls.ConfidenceOrDefault()
		confSum += c
		switch {
		case c > HighConfidenceFloor:
			out.HighConfidenceCount++
		case c >= LowConfidenceCeil:
			out.MediumConfidenceCount++
		default:
			out.LowConfidenceCount++
		}

		length := ls.End - ls.Start
		lengthSum += length
		if length > longest {
			longest = length
		}
		if length < shortest {
			shortest = length
		}
	}

	out.TotalWords = totalWords
	out.AvgWordsPerSegment = round1(float64(totalWords) / float64(n))

	avgConf := confSum / float64(n)
	out.AvgConfidence = round3(avgConf)
	out.HighConfidencePct = round1(float64(out.HighConfidenceCount) / float64(n) * 100)
	out.MediumConfidencePct = round1(float64(out.MediumConfidenceCount) / float64(n) * 100)
	out.LowConfidencePct = round1(float64(out.LowConfidenceCount) / float64(n) * 100)
	out.AudioQuality = qualityFor(avgConf)

	out.AvgSegmentLength = round2(lengthSum / float64(n))
	out.LongestSegment = round2(longest)
	out.ShortestSegment = round2(shortest)

	// Only strictly positive gaps count as pauses; touching or overlapping
	// segments contribute nothing.
	var (
		pauseCount   int
		pauseSum     float64
		longestPause float64
	)
	for i := 1; i < n; i++ {
		gap := labeled[i].Start - labeled[i-1].End
		if gap <= 0 {
			continue
		}
		pauseCount++
		pauseSum += gap
		if gap > longestPause {
			longestPause = gap
		}
	}
	out.TotalPauses = pauseCount
	if pauseCount > 0 {
		out.AvgPauseDuration = round2(pauseSum / float64(pauseCount))
	}
	out.LongestPause = round2(longestPause)
	out.TotalPauseTime = round2(pauseSum)
	if audioDuration > 0 {
		out.SpeechVsPauseRatio = round1((audioDuration - pauseSum) / audioDuration * 100)
		out.SpeechRateWPM = round1(float64(totalWords) / (audioDuration / 60))
	}

	out.Interviewer = speakerShare(labeled, transcript.SpeakerInterviewer, n, totalWords)
	out.Participant = speakerShare(labeled, transcript.SpeakerParticipant, n, totalWords)
	return out
}

func speakerShare(labeled []transcript.LabeledSegment, who transcript.Speaker, totalTurns, totalWords int) SpeakerShare {
	var share SpeakerShare
	for _, ls := range labeled {
		if ls.Speaker != who {
			continue
		}
		share.Turns++
		share.Words += len(strings.Fields(ls.Text))
	}
	if totalTurns > 0 {
		share.TurnPct = round1(float64(share.Turns) / float64(totalTurns) * 100)
	}
	if totalWords > 0 {
		share.WordPct = round1(float64(share.Words) / float64(totalWords) * 100)
	}
	return share
}

// qualityFor maps the unrounded average confidence to a coarse label. The
// thresholds are strict, so an average sitting exactly on a boundary falls
// into the lower band.
func qualityFor(avg float64) string {
	switch {
	case avg > HighConfidenceFloor:
		return QualityHigh
	case avg > LowConfidenceCeil:
		return QualityMedium
	default:
		return QualityLow
	}
}

func round1(v float64) float64 { return roundTo(v, 1) }
func round2(v float64) float64 { return roundTo(v, 2) }
func round3(v float64) float64 { return roundTo(v, 3) }

func roundTo(v float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(v).RoundBank(places).Float64()
	return out
}
