package transcript

import (
	"strings"
	"unicode/utf8"
)

// Content markers inserted by Normalize.
const (
	MarkerUnclear = "[UNCLEAR]"
	MarkerPause   = "[PAUSE]"
)

// minClearRunes is the stripped rune count below which recognized text is
// treated as too short to carry meaning.
const minClearRunes = 3

// Normalize rewrites raw recognized text for presentation. Text whose
// stripped form is under three runes is replaced wholesale with the
// [UNCLEAR] marker. Otherwise literal ellipses become [PAUSE] and double
// spaces are narrowed by one space each, in that order, before a final
// strip. Both substitutions are single left-to-right passes over fixed-width
// patterns: a run of four spaces narrows to two, not one.
func Normalize(text string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minClearRunes {
		return MarkerUnclear
	}
	out := strings.ReplaceAll(text, "...", MarkerPause)
	out = strings.ReplaceAll(out, "  ", " ")
	return strings.TrimSpace(out)
}
