package match

import "testing"

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"a", "hello", "el perro come"} {
		if got := Similarity(s, s); got != 1 {
			t.Fatalf("Similarity(%q, %q) = %v, want 1", s, s, got)
		}
	}
}

func TestSimilarityEmptyUser(t *testing.T) {
	if got := Similarity("", "anything"); got != 0 {
		t.Fatalf("Similarity(\"\", ...) = %v, want 0", got)
	}
}

func TestSimilarityExactShortCircuit(t *testing.T) {
	// Exact match against a later alternative must return exactly 1 even when
	// earlier alternatives are distant.
	if got := Similarity("EAT", "completely different sentence", "eat"); got != 1 {
		t.Fatalf("exact alternative should score 1, got %v", got)
	}
}

func TestSimilarityBestAlternative(t *testing.T) {
	// "helo" vs "hello" = 1 edit over 5 = 0.8; vs "bye" is much worse.
	got := Similarity("helo", "bye", "hello")
	if got < 0.79 || got > 0.81 {
		t.Fatalf("Similarity = %v, want ~0.8", got)
	}
}

func TestSimilarityDictation(t *testing.T) {
	// Typo'd dictation of "Hello, world!" lands in the high band.
	got := Similarity("helo world", "Hello, world!")
	if got < 0.85 || got > 0.95 {
		t.Fatalf("Similarity = %v, want within [0.85,0.95]", got)
	}
	if TierFor(got) != TierHigh {
		t.Fatalf("tier = %v, want high", TierFor(got))
	}
}

func TestSimilarityBounds(t *testing.T) {
	cases := [][2]string{
		{"abc", "xyz"},
		{"a", "aaaaaaaaaa"},
		{"totally unrelated", "q"},
	}
	for _, c := range cases {
		got := Similarity(c[0], c[1])
		if got < 0 || got > 1 {
			t.Fatalf("Similarity(%q, %q) = %v out of [0,1]", c[0], c[1], got)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{1, TierHigh},
		{0.8, TierHigh},
		{0.79, TierMedium},
		{0.6, TierMedium},
		{0.59, TierLow},
		{0, TierLow},
	}
	for _, tc := range tests {
		if got := TierFor(tc.score); got != tc.want {
			t.Fatalf("TierFor(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tc := range tests {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Fatalf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
