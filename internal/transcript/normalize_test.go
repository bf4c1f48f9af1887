package transcript

import "testing"

func TestNormalizeShortTextBecomesUnclear(t *testing.T) {
	for _, in := range []string{"", "   ", "a", " ab ", "..", "  ..", "\tok\n"} {
		if got := Normalize(in); got != MarkerUnclear {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, MarkerUnclear)
		}
	}
}

func TestNormalizeRuneCountNotByteCount(t *testing.T) {
	// Two runes, six bytes: still under the three-rune floor.
	if got := Normalize("æø"); got != MarkerUnclear {
		t.Fatalf("Normalize(æø) = %q, want %q", got, MarkerUnclear)
	}
	// Three runes survive.
	if got := Normalize("æøå"); got != "æøå" {
		t.Fatalf("Normalize(æøå) = %q, want unchanged", got)
	}
}

func TestNormalizeEllipsisBecomesPauseMarker(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Well... I think so", "Well" + MarkerPause + " I think so"},
		{"Ja... altså...", "Ja" + MarkerPause + " altså" + MarkerPause},
		// Stripped "..." is exactly three runes, so it clears the unclear
		// floor and becomes a pause marker.
		{"  ...", MarkerPause},
		{"......", MarkerPause + MarkerPause},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDoubleSpaceNarrowsOneStep(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello  there", "hello there"},
		// Four spaces narrow to two, not one.
		{"hello    there", "hello  there"},
		// Three spaces narrow to two.
		{"hello   there", "hello  there"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeStripsEdges(t *testing.T) {
	if got := Normalize("  hello there \n"); got != "hello there" {
		t.Fatalf("got %q, want %q", got, "hello there")
	}
}

func TestNormalizeStableOnTypicalText(t *testing.T) {
	// Recognized speech has single spaces between tokens; on such input a
	// second pass is a no-op, and marker outputs are fixed points.
	for _, in := range []string{
		"Hvordan har du det i dag?",
		"Well... I was thinking",
		"x",
		"hello  there",
	} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}
