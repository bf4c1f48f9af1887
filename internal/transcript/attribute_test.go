package transcript

import "testing"

func seg(start, end float64) Segment {
	return Segment{Start: start, End: end, Text: "placeholder words here"}
}

func TestAttributeSpeakersEmpty(t *testing.T) {
	if got := AttributeSpeakers(nil, DefaultCalibration()); len(got) != 0 {
		t.Fatalf("expected no labels for empty input, got %d", len(got))
	}
}

func TestAttributeSpeakersLabelsEverySegment(t *testing.T) {
	segments := []Segment{seg(0, 2), seg(2.1, 4), seg(6, 8), seg(8.2, 10)}
	labels := AttributeSpeakers(segments, DefaultCalibration())
	if len(labels) != len(segments) {
		t.Fatalf("expected %d labels, got %d", len(segments), len(labels))
	}
	for i, l := range labels {
		if l != SpeakerInterviewer && l != SpeakerParticipant {
			t.Fatalf("label %d is %q, want one of the two roles", i, l)
		}
	}
}

func TestFirstSegmentIsInterviewer(t *testing.T) {
	cal := Calibration{SilenceThreshold: 0.0001, MinSpeakerTime: 0.0001}
	segments := []Segment{seg(100, 102), seg(110, 112)}
	labels := AttributeSpeakers(segments, cal)
	if labels[0] != SpeakerInterviewer {
		t.Fatalf("first label = %q, want %q", labels[0], SpeakerInterviewer)
	}
}

func TestShortGapDoesNotSwitch(t *testing.T) {
	cal := Calibration{SilenceThreshold: 1.2, MinSpeakerTime: 4.0}
	segments := []Segment{seg(0, 2), seg(2.1, 4)}
	labels := AttributeSpeakers(segments, cal)
	if labels[0] != SpeakerInterviewer || labels[1] != SpeakerInterviewer {
		t.Fatalf("expected both segments attributed to interviewer, got %v", labels)
	}
}

func TestSilenceGapSwitches(t *testing.T) {
	cal := Calibration{SilenceThreshold: 1.2, MinSpeakerTime: 1.0}
	segments := []Segment{seg(0, 2), seg(5, 7)}
	labels := AttributeSpeakers(segments, cal)
	if labels[1] != SpeakerParticipant {
		t.Fatalf("second label = %q, want %q", labels[1], SpeakerParticipant)
	}
}

func TestGapEqualToThresholdDoesNotSwitch(t *testing.T) {
	cal := Calibration{SilenceThreshold: 1.5, MinSpeakerTime: 0.5}
	segments := []Segment{seg(0, 2), seg(3.5, 5)}
	labels := AttributeSpeakers(segments, cal)
	if labels[1] != SpeakerInterviewer {
		t.Fatalf("gap exactly at threshold must not switch, got %q", labels[1])
	}
}

func TestMinSpeakerTimeBlocksRapidFlips(t *testing.T) {
	cal := Calibration{SilenceThreshold: 1.0, MinSpeakerTime: 10.0}
	// Every gap exceeds the silence threshold, but the second switch
	// candidate arrives before the hold time has elapsed.
	segments := []Segment{seg(0, 2), seg(4, 6), seg(8, 10), seg(20, 22)}
	labels := AttributeSpeakers(segments, cal)
	want := []Speaker{SpeakerInterviewer, SpeakerInterviewer, SpeakerInterviewer, SpeakerParticipant}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("label %d = %q, want %q (all: %v)", i, labels[i], want[i], labels)
		}
	}
}

func TestChangesSpacedByHoldTime(t *testing.T) {
	cal := Calibration{SilenceThreshold: 1.0, MinSpeakerTime: 4.0}
	segments := []Segment{seg(0, 2), seg(4.5, 6), seg(12, 14), seg(14.2, 15)}
	labels := AttributeSpeakers(segments, cal)
	want := []Speaker{SpeakerInterviewer, SpeakerParticipant, SpeakerInterviewer, SpeakerInterviewer}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("label %d = %q, want %q (all: %v)", i, labels[i], want[i], labels)
		}
	}

	// Any two consecutive role changes must start more than the hold time
	// apart.
	lastChange := -1.0
	for i := 1; i < len(labels); i++ {
		if labels[i] == labels[i-1] {
			continue
		}
		if lastChange >= 0 && segments[i].Start-lastChange <= cal.MinSpeakerTime {
			t.Fatalf("changes at %.1fs and %.1fs violate the %.1fs hold time",
				lastChange, segments[i].Start, cal.MinSpeakerTime)
		}
		lastChange = segments[i].Start
	}
}

func TestOverlappingSegmentsNeverSwitch(t *testing.T) {
	cal := Calibration{SilenceThreshold: 0.5, MinSpeakerTime: 0.5}
	// Out-of-order timestamps yield negative gaps.
	segments := []Segment{seg(10, 14), seg(12, 16), seg(8, 9)}
	labels := AttributeSpeakers(segments, cal)
	for i, l := range labels {
		if l != SpeakerInterviewer {
			t.Fatalf("label %d = %q, want interviewer throughout", i, l)
		}
	}
}
