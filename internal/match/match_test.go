package match

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		user string
		alts []string
		want bool
	}{
		{name: "exact", user: "go", alts: []string{"go", "goes"}, want: true},
		{name: "case insensitive", user: "Go", alts: []string{"go"}, want: true},
		{name: "diacritics", user: "cafe", alts: []string{"Café"}, want: true},
		{name: "second alternative", user: "goes", alts: []string{"go", "goes"}, want: true},
		{name: "no match", user: "ran", alts: []string{"run"}, want: false},
		{name: "empty user", user: "", alts: []string{"go"}, want: false},
		{name: "empty user empty alt", user: "", alts: []string{""}, want: false},
		{name: "blank alternatives skipped", user: "go", alts: []string{"", "go"}, want: true},
		{name: "punctuation only user", user: "?!", alts: []string{"go"}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.user, tc.alts...); got != tc.want {
				t.Fatalf("Matches(%q, %v) = %v, want %v", tc.user, tc.alts, got, tc.want)
			}
		})
	}
}

func TestMatchesOrderIndependent(t *testing.T) {
	alts := []string{"go", "goes", "went", "gone"}
	perms := [][]string{
		{"go", "goes", "went", "gone"},
		{"gone", "went", "goes", "go"},
		{"goes", "gone", "go", "went"},
	}
	for _, user := range []string{"went", "walked"} {
		want := Matches(user, alts...)
		for _, p := range perms {
			if got := Matches(user, p...); got != want {
				t.Fatalf("Matches(%q) changed with alternative order %v", user, p)
			}
		}
	}
}

func TestMatchesPunct(t *testing.T) {
	if !MatchesPunct("Hello, world!", "hello, world!") {
		t.Fatal("punctuation-aware match should accept identical punctuation")
	}
	if MatchesPunct("Hello world", "hello, world!") {
		t.Fatal("punctuation-aware match should reject missing punctuation")
	}
}
