package transcript

// Speaker identifies one of the two fixed interview roles.
type Speaker string

const (
	SpeakerInterviewer Speaker = "INTERVIEWER"
	SpeakerParticipant Speaker = "PARTICIPANT"
)

// Other returns the opposite interview role.
func (s Speaker) Other() Speaker {
	if s == SpeakerInterviewer {
		return SpeakerParticipant
	}
	return SpeakerInterviewer
}

// DefaultConfidence is the sentinel applied to segments the recognizer left
// unscored. It sits below the low-confidence bucket boundary so unscored
// segments count as low quality rather than skewing averages upward.
const DefaultConfidence = -2.0

// Segment is one timestamped chunk of recognized speech as delivered by the
// recognition boundary. Segments arrive time-ordered and non-overlapping;
// violations are tolerated downstream, not corrected here.
type Segment struct {
	Start      float64
	End        float64
	Text       string
	Confidence *float64 // average log-probability, nil when unscored
}

// ConfidenceOrDefault returns the segment confidence, substituting
// DefaultConfidence when the recognizer supplied none.
func (s Segment) ConfidenceOrDefault() float64 {
	if s.Confidence == nil {
		return DefaultConfidence
	}
	return *s.Confidence
}

// LabeledSegment pairs a segment with its attributed speaker.
type LabeledSegment struct {
	Segment
	Speaker Speaker
}

// Label zips segments with their attributed speakers. speakers must have the
// same length as segments, as produced by AttributeSpeakers.
func Label(segments []Segment, speakers []Speaker) []LabeledSegment {
	labeled := make([]LabeledSegment, len(segments))
	for i, seg := range segments {
		labeled[i] = LabeledSegment{Segment: seg, Speaker: speakers[i]}
	}
	return labeled
}
