package transcript

import "testing"

func conf(v float64) *float64 { return &v }

func TestBuildTurnsOneToOne(t *testing.T) {
	labeled := []LabeledSegment{
		{Segment: Segment{Start: 0, End: 2.5, Text: "Hello there...  welcome", Confidence: conf(-0.3)}, Speaker: SpeakerInterviewer},
		{Segment: Segment{Start: 65, End: 66, Text: "hm", Confidence: nil}, Speaker: SpeakerParticipant},
	}
	turns := BuildTurns(labeled)
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}

	first := turns[0]
	if first.Speaker != SpeakerInterviewer {
		t.Fatalf("speaker = %q", first.Speaker)
	}
	if first.StartTime != "00:00" || first.EndTime != "00:02" {
		t.Fatalf("timestamps = %q..%q", first.StartTime, first.EndTime)
	}
	if want := "Hello there" + MarkerPause + " welcome"; first.Text != want {
		t.Fatalf("text = %q, want %q", first.Text, want)
	}
	// Word count comes from the raw text, before marker substitution.
	if first.Words != 3 {
		t.Fatalf("words = %d, want 3", first.Words)
	}
	if first.Confidence != -0.3 {
		t.Fatalf("confidence = %v, want -0.3", first.Confidence)
	}

	second := turns[1]
	if second.StartTime != "01:05" {
		t.Fatalf("start time = %q, want 01:05", second.StartTime)
	}
	if second.Text != MarkerUnclear {
		t.Fatalf("text = %q, want %q", second.Text, MarkerUnclear)
	}
	if second.Words != 1 {
		t.Fatalf("words = %d, want 1", second.Words)
	}
	if second.Confidence != DefaultConfidence {
		t.Fatalf("confidence = %v, want sentinel %v", second.Confidence, DefaultConfidence)
	}
}

func TestBuildTurnsEmpty(t *testing.T) {
	if turns := BuildTurns(nil); len(turns) != 0 {
		t.Fatalf("expected no turns, got %d", len(turns))
	}
}

func TestDisplayNumbersIncrementOnSpeakerChange(t *testing.T) {
	mk := func(s Speaker) Turn { return Turn{Speaker: s} }
	turns := []Turn{
		mk(SpeakerInterviewer),
		mk(SpeakerInterviewer),
		mk(SpeakerParticipant),
		mk(SpeakerParticipant),
		mk(SpeakerParticipant),
		mk(SpeakerInterviewer),
	}
	want := []int{1, 1, 2, 2, 2, 3}
	got := DisplayNumbers(turns)
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("number %d = %d, want %d (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLabelZipsByIndex(t *testing.T) {
	segments := []Segment{seg(0, 1), seg(2, 3)}
	speakers := []Speaker{SpeakerInterviewer, SpeakerParticipant}
	labeled := Label(segments, speakers)
	if labeled[0].Speaker != SpeakerInterviewer || labeled[1].Speaker != SpeakerParticipant {
		t.Fatalf("labels out of order: %v, %v", labeled[0].Speaker, labeled[1].Speaker)
	}
	if labeled[1].Start != 2 {
		t.Fatalf("segment fields not carried: start = %v", labeled[1].Start)
	}
}
