package transcript

import "strings"

// Turn is one speaker-attributed transcript unit. Turns map one to one onto
// input segments and are never merged, even across a run of same-speaker
// segments; grouping for display is a renderer concern (see DisplayNumbers).
type Turn struct {
	Speaker    Speaker `json:"speaker"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Text       string  `json:"text"`
	Words      int     `json:"words"`
	Confidence float64 `json:"confidence"`
}

// BuildTurns produces one Turn per labeled segment. Text carries the
// normalized form while Words counts whitespace-delimited tokens of the raw
// text, so word statistics are unaffected by marker substitution.
func BuildTurns(labeled []LabeledSegment) []Turn {
	turns := make([]Turn, len(labeled))
	for i, ls := range labeled {
		turns[i] = Turn{
			Speaker:    ls.Speaker,
			Start:      ls.Start,
			End:        ls.End,
			StartTime:  FormatTimestamp(ls.Start),
			EndTime:    FormatTimestamp(ls.End),
			Text:       Normalize(ls.Text),
			Words:      len(strings.Fields(ls.Text)),
			Confidence: ls.ConfidenceOrDefault(),
		}
	}
	return turns
}

// DisplayNumbers assigns the printed turn number for each turn. The number
// increments only when the speaker changes, so consecutive turns by the same
// speaker share one number.
func DisplayNumbers(turns []Turn) []int {
	numbers := make([]int, len(turns))
	var current Speaker
	n := 0
	for i, t := range turns {
		if t.Speaker != current {
			current = t.Speaker
			n++
		}
		numbers[i] = n
	}
	return numbers
}
