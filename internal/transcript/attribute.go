package transcript

// Calibration holds the pause-timing parameters for speaker attribution.
type Calibration struct {
	// SilenceThreshold is the minimum silence gap in seconds between two
	// consecutive segments that may indicate a speaker change.
	SilenceThreshold float64
	// MinSpeakerTime is the minimum time in seconds a role must hold the
	// floor before another change can trigger.
	MinSpeakerTime float64
}

// DefaultCalibration returns the attribution parameters tuned for
// two-person interview recordings.
func DefaultCalibration() Calibration {
	return Calibration{
		SilenceThreshold: 1.2,
		MinSpeakerTime:   4.0,
	}
}

// attributionState is the accumulator threaded through the attribution fold.
type attributionState struct {
	current    Speaker
	lastChange float64
}

// next advances the state across one segment transition. prev is the segment
// immediately before cur in stream order. A role change requires both a
// silence gap strictly above the threshold and strictly more than
// MinSpeakerTime elapsed since the previous change, so a burst of short
// utterances right after a change cannot flip the role straight back.
func (st attributionState) next(prev, cur Segment, cal Calibration) attributionState {
	gap := cur.Start - prev.End
	sinceChange := cur.Start - st.lastChange
	if gap > cal.SilenceThreshold && sinceChange > cal.MinSpeakerTime {
		return attributionState{current: st.current.Other(), lastChange: cur.Start}
	}
	return st
}

// AttributeSpeakers assigns one of the two interview roles to every segment
// using pause timing alone. The first segment always belongs to the
// interviewer, reflecting the convention that the interviewer opens the
// recording. The heuristic has no acoustic identity: one speaker pausing
// longer than the threshold is split across roles, and a genuine change
// without a pause is missed. Downstream consumers are calibrated against
// this behavior.
//
// The returned slice has exactly one entry per input segment. Overlapping
// or out-of-order segments produce negative gaps, which simply never
// trigger a change.
func AttributeSpeakers(segments []Segment, cal Calibration) []Speaker {
	if len(segments) == 0 {
		return nil
	}
	speakers := make([]Speaker, len(segments))
	st := attributionState{current: SpeakerInterviewer}
	speakers[0] = st.current
	for i := 1; i < len(segments); i++ {
		st = st.next(segments[i-1], segments[i], cal)
		speakers[i] = st.current
	}
	return speakers
}
