package stats

import (
	"testing"

	"github.com/scrivenlabs/scriven/internal/transcript"
)

func conf(v float64) *float64 { return &v }

func labeled(start, end float64, text string, c *float64, who transcript.Speaker) transcript.LabeledSegment {
	return transcript.LabeledSegment{
		Segment: transcript.Segment{Start: start, End: end, Text: text, Confidence: c},
		Speaker: who,
	}
}

func TestComputeEmptyInput(t *testing.T) {
	got := Compute(nil, 0)
	if got.TotalSegments != 0 || got.TotalWords != 0 {
		t.Fatalf("counts not zero: %+v", got)
	}
	if got.AvgConfidence != 0 || got.AvgWordsPerSegment != 0 || got.SpeechVsPauseRatio != 0 {
		t.Fatalf("averages not zero: %+v", got)
	}
	if got.AudioQuality != QualityUnknown {
		t.Fatalf("quality = %q, want %q", got.AudioQuality, QualityUnknown)
	}
	if got.Interviewer.Turns != 0 || got.Participant.Turns != 0 {
		t.Fatalf("speaker shares not zero: %+v", got)
	}
}

func TestComputeEmptyInputKeepsDuration(t *testing.T) {
	got := Compute(nil, 300)
	if got.TotalDuration != 300 {
		t.Fatalf("duration = %v, want 300", got.TotalDuration)
	}
	// Derived figures stay zero even though the recording had length.
	if got.SpeechVsPauseRatio != 0 || got.SpeechRateWPM != 0 {
		t.Fatalf("derived figures not zero: ratio=%v rate=%v", got.SpeechVsPauseRatio, got.SpeechRateWPM)
	}
}

func TestComputeTwoSegmentInterview(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 2.0, "Hello there", conf(-0.3), transcript.SpeakerInterviewer),
		labeled(2.1, 4.0, "I am fine", conf(-0.4), transcript.SpeakerInterviewer),
	}
	got := Compute(in, 4.0)

	if got.TotalSegments != 2 {
		t.Fatalf("segments = %d", got.TotalSegments)
	}
	if got.TotalWords != 5 {
		t.Fatalf("words = %d, want 5", got.TotalWords)
	}
	if got.AvgWordsPerSegment != 2.5 {
		t.Fatalf("avg words = %v, want 2.5", got.AvgWordsPerSegment)
	}
	if got.AvgConfidence != -0.35 {
		t.Fatalf("avg confidence = %v, want -0.35", got.AvgConfidence)
	}
	if got.HighConfidenceCount != 2 || got.HighConfidencePct != 100 {
		t.Fatalf("high bucket = %d (%v%%)", got.HighConfidenceCount, got.HighConfidencePct)
	}
	if got.AudioQuality != QualityHigh {
		t.Fatalf("quality = %q, want %q", got.AudioQuality, QualityHigh)
	}
	if got.AvgSegmentLength != 1.95 || got.LongestSegment != 2.0 || got.ShortestSegment != 1.9 {
		t.Fatalf("lengths = avg %v longest %v shortest %v",
			got.AvgSegmentLength, got.LongestSegment, got.ShortestSegment)
	}
	if got.TotalPauses != 1 || got.TotalPauseTime != 0.1 || got.AvgPauseDuration != 0.1 || got.LongestPause != 0.1 {
		t.Fatalf("pauses = %+v", got)
	}
	if got.SpeechVsPauseRatio != 97.5 {
		t.Fatalf("ratio = %v, want 97.5", got.SpeechVsPauseRatio)
	}
	if got.SpeechRateWPM != 75.0 {
		t.Fatalf("speech rate = %v, want 75", got.SpeechRateWPM)
	}
	if got.Interviewer.Turns != 2 || got.Interviewer.TurnPct != 100 || got.Interviewer.Words != 5 || got.Interviewer.WordPct != 100 {
		t.Fatalf("interviewer share = %+v", got.Interviewer)
	}
	if got.Participant.Turns != 0 || got.Participant.Words != 0 {
		t.Fatalf("participant share = %+v", got.Participant)
	}
}

func TestComputeTouchingSegmentsAreNotPauses(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 2.0, "first part", conf(-0.2), transcript.SpeakerInterviewer),
		labeled(2.0, 4.0, "second part", conf(-0.2), transcript.SpeakerInterviewer),
	}
	got := Compute(in, 4.0)
	if got.TotalPauses != 0 || got.TotalPauseTime != 0 || got.AvgPauseDuration != 0 || got.LongestPause != 0 {
		t.Fatalf("zero-gap boundary counted as pause: %+v", got)
	}
	if got.SpeechVsPauseRatio != 100 {
		t.Fatalf("ratio = %v, want 100", got.SpeechVsPauseRatio)
	}
}

func TestComputeOverlapIsNotPause(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 3.0, "overlapping speech", conf(-0.2), transcript.SpeakerInterviewer),
		labeled(2.5, 5.0, "still talking", conf(-0.2), transcript.SpeakerParticipant),
	}
	got := Compute(in, 5.0)
	if got.TotalPauses != 0 || got.TotalPauseTime != 0 {
		t.Fatalf("negative gap counted as pause: %+v", got)
	}
}

func TestConfidenceBuckets(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 1, "just above floor", conf(-0.49), transcript.SpeakerInterviewer),
		labeled(2, 3, "exactly on floor", conf(-0.5), transcript.SpeakerInterviewer),
		labeled(4, 5, "exactly on ceil", conf(-1.0), transcript.SpeakerInterviewer),
		labeled(6, 7, "below the ceil", conf(-1.01), transcript.SpeakerInterviewer),
		labeled(8, 9, "unscored segment", nil, transcript.SpeakerInterviewer),
	}
	got := Compute(in, 9)
	if got.HighConfidenceCount != 1 {
		t.Fatalf("high = %d, want 1", got.HighConfidenceCount)
	}
	if got.MediumConfidenceCount != 2 {
		t.Fatalf("medium = %d, want 2", got.MediumConfidenceCount)
	}
	if got.LowConfidenceCount != 2 {
		t.Fatalf("low = %d, want 2", got.LowConfidenceCount)
	}
}

func TestAudioQualityThresholdsAreStrict(t *testing.T) {
	cases := []struct {
		avg  float64
		want string
	}{
		{-0.3, QualityHigh},
		{-0.5, QualityMedium},
		{-0.7, QualityMedium},
		{-1.0, QualityLow},
		{-1.8, QualityLow},
	}
	for _, tc := range cases {
		in := []transcript.LabeledSegment{
			labeled(0, 1, "some words here", conf(tc.avg), transcript.SpeakerInterviewer),
		}
		if got := Compute(in, 1).AudioQuality; got != tc.want {
			t.Fatalf("quality for avg %v = %q, want %q", tc.avg, got, tc.want)
		}
	}
}

func TestUnscoredSegmentsDragQualityDown(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 1, "clear speech", conf(-0.2), transcript.SpeakerInterviewer),
		labeled(2, 3, "missing score", nil, transcript.SpeakerParticipant),
	}
	got := Compute(in, 3)
	// (-0.2 + -2.0) / 2 = -1.1
	if got.AvgConfidence != -1.1 {
		t.Fatalf("avg confidence = %v, want -1.1", got.AvgConfidence)
	}
	if got.AudioQuality != QualityLow {
		t.Fatalf("quality = %q, want %q", got.AudioQuality, QualityLow)
	}
}

func TestSpeakerShares(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 1, "to ord", conf(-0.2), transcript.SpeakerInterviewer),
		labeled(2, 3, "et", conf(-0.2), transcript.SpeakerInterviewer),
		labeled(4, 5, "tre ord til", conf(-0.2), transcript.SpeakerParticipant),
	}
	got := Compute(in, 5)
	if got.Interviewer.Turns != 2 || got.Interviewer.Words != 3 {
		t.Fatalf("interviewer = %+v", got.Interviewer)
	}
	if got.Participant.Turns != 1 || got.Participant.Words != 3 {
		t.Fatalf("participant = %+v", got.Participant)
	}
	if got.Interviewer.TurnPct != 66.7 || got.Participant.TurnPct != 33.3 {
		t.Fatalf("turn pcts = %v / %v", got.Interviewer.TurnPct, got.Participant.TurnPct)
	}
	if got.Interviewer.WordPct != 50.0 || got.Participant.WordPct != 50.0 {
		t.Fatalf("word pcts = %v / %v", got.Interviewer.WordPct, got.Participant.WordPct)
	}
}

func TestWordPctGuardsZeroWords(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 1, "", conf(-0.2), transcript.SpeakerInterviewer),
		labeled(2, 3, "   ", conf(-0.2), transcript.SpeakerParticipant),
	}
	got := Compute(in, 3)
	if got.TotalWords != 0 {
		t.Fatalf("words = %d, want 0", got.TotalWords)
	}
	if got.Interviewer.WordPct != 0 || got.Participant.WordPct != 0 {
		t.Fatalf("word pcts not zero: %+v / %+v", got.Interviewer, got.Participant)
	}
}

func TestZeroDurationSkipsRatioAndRate(t *testing.T) {
	in := []transcript.LabeledSegment{
		labeled(0, 1, "noget tekst her", conf(-0.2), transcript.SpeakerInterviewer),
	}
	got := Compute(in, 0)
	if got.SpeechVsPauseRatio != 0 || got.SpeechRateWPM != 0 {
		t.Fatalf("ratio=%v rate=%v, want both 0", got.SpeechVsPauseRatio, got.SpeechRateWPM)
	}
}

func TestRoundingIsHalfToEven(t *testing.T) {
	// 5 words over 4 segments is exactly 1.25, a representable tie: half to
	// even rounds down to 1.2 where half away from zero would give 1.3.
	texts := []string{"et ord", "to", "tre", "fire"}
	in := make([]transcript.LabeledSegment, 0, len(texts))
	for i, text := range texts {
		in = append(in, labeled(float64(i), float64(i)+0.125, text, conf(-0.2), transcript.SpeakerInterviewer))
	}
	got := Compute(in, 10)
	if got.AvgWordsPerSegment != 1.2 {
		t.Fatalf("avg words = %v, want 1.2", got.AvgWordsPerSegment)
	}
	// Segment lengths are all exactly 0.125; the two-place round is again
	// a tie and lands on the even neighbor.
	if got.AvgSegmentLength != 0.12 {
		t.Fatalf("avg length = %v, want 0.12", got.AvgSegmentLength)
	}
}
