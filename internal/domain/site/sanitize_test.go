package site

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"sentence", "This is a Test, and so on.", "this-is-a-test-and-so-on"},
		{"keeps dashes", "free-software", "free-software"},
		{"digits", "HFGE 2.0 Release", "hfge-20-release"},
		{"no collapse", "a  b", "a--b"},
		{"tabs and newlines", "a\tb\nc", "a-b-c"},
		{"unicode space", "a\u00a0b", "a-b"},
		{"non ascii dropped", "Café Naïve", "caf-nave"},
		{"empty", "", ""},
		{"only punctuation", "!?.,", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestSanitizeIdempotentAndCharset(t *testing.T) {
	inputs := []string{
		"This is a Test, and so on.",
		"  Leading and trailing  ",
		"Ünïcödé / Slashes \\ and_underscores",
		"MiXeD-CaSe 123",
		"\u3000ideographic space",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
		for _, r := range once {
			if !(r == '-' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')) {
				t.Errorf("Sanitize(%q) = %q contains %q", in, once, r)
			}
		}
	}
}
