package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []Option
		want string
	}{
		{name: "lowercase", in: "HeLLo", want: "hello"},
		{name: "diacritics", in: "Café", want: "cafe"},
		{name: "spanish accents", in: "¿Dónde está el baño?", want: "donde esta el bano"},
		{name: "punctuation stripped", in: "Hello, world!", want: "hello world"},
		{name: "punctuation kept", in: "Hello, world!", opts: []Option{KeepPunctuation()}, want: "hello, world!"},
		{name: "whitespace collapsed", in: "  I   go \t to\nschool  ", want: "i go to school"},
		{name: "digits kept", in: "Room 42", want: "room 42"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "?!...,", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in, tc.opts...)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Café con leche", "¡HOLA!", "  a  b  c ", "église", "Hello, world!"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCaseDiacriticInsensitive(t *testing.T) {
	if Normalize("Café") != Normalize("cafe") {
		t.Fatal("Café and cafe should normalize equal")
	}
}

func TestEmpty(t *testing.T) {
	if !Empty("  ¿? ") {
		t.Fatal("punctuation-only input should be empty")
	}
	if Empty("no") {
		t.Fatal("real input should not be empty")
	}
}
