package render

import (
	"encoding/json"

	"github.com/scrivenlabs/scriven/internal/stats"
	"github.com/scrivenlabs/scriven/internal/transcript"
)

type numberedTurn struct {
	Number int `json:"turn"`
	transcript.Turn
}

type bundle struct {
	Metadata   Metadata        `json:"metadata"`
	Statistics stats.Interview `json:"statistics"`
	Turns      []numberedTurn  `json:"turns"`
}

// JSONBundle renders the full result as one indented JSON document suitable
// for downstream tooling.
func JSONBundle(doc Document) ([]byte, error) {
	numbers := transcript.DisplayNumbers(doc.Turns)
	turns := make([]numberedTurn, len(doc.Turns))
	for i, t := range doc.Turns {
		turns[i] = numberedTurn{Number: numbers[i], Turn: t}
	}
	return json.MarshalIndent(bundle{
		Metadata:   doc.Meta,
		Statistics: doc.Stats,
		Turns:      turns,
	}, "", "  ")
}
