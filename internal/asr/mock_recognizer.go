package asr

import (
	"context"
	"strings"
)

type mockRecognizer struct{}

// NewMockRecognizer returns a recognizer that emits a fixed short interview.
// The script alternates long and short silences so speaker attribution,
// content markers, and the statistics paths all get exercised without a real
// model.
func NewMockRecognizer() Recognizer {
	return &mockRecognizer{}
}

func score(v float64) *float64 { return &v }

func (m *mockRecognizer) Transcribe(_ context.Context, _ string) (Result, error) {
	segments := []Segment{
		{Start: 0.0, End: 3.2, Text: "Velkommen, og tak fordi du ville deltage i dag", AvgLogProb: score(-0.21)},
		{Start: 3.4, End: 6.1, Text: "Kan du starte med at fortælle lidt om dig selv?", AvgLogProb: score(-0.28)},
		{Start: 8.0, End: 12.5, Text: "Ja... jeg har arbejdet med omsorgsarbejde i femten år", AvgLogProb: score(-0.35)},
		{Start: 12.9, End: 15.0, Text: "først som vikar og siden som fastansat", AvgLogProb: score(-0.42)},
		{Start: 17.1, End: 19.8, Text: "Hvordan oplevede du overgangen?", AvgLogProb: score(-0.3)},
		{Start: 21.5, End: 26.0, Text: "Det var en stor omvæltning  men også spændende", AvgLogProb: score(-0.55)},
		{Start: 26.2, End: 26.5, Text: "hm", AvgLogProb: nil},
	}

	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	return Result{
		Text:     strings.Join(texts, " "),
		Language: "da",
		Duration: 27.0,
		Segments: segments,
	}, nil
}
