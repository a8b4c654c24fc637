package ipa

import (
	"testing"
)

func TestHasMarkers(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"stress mark", "casa /ˈkasa/ <n>", true},
		{"ipa vowel", "word /wɜːd/ <n>", true},
		{"simple slashed", "abkazi /abkazi/", true},
		{"nasal vowel", "bon /bɔ̃/", true},
		{"no slash", "ˈkasa", false},
		{"plain translation", "house", false},
		{"slash without transcription", "and/or", false},
		{"spaced slashes", "a / b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := HasMarkers(tt.line); result != tt.expected {
				t.Errorf("HasMarkers(%q) = %v, want %v", tt.line, result, tt.expected)
			}
		})
	}
}

func TestHasTranscription(t *testing.T) {
	if !HasTranscription("the /ðə/") {
		t.Error("expected transcription")
	}
	if HasTranscription("and/or") {
		t.Error("and/or is not a transcription")
	}
}

func TestHeadword(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"simple", "casa /ˈkasa/ <n>", "casa", true},
		{"keeps original form", "well-being /ˌwelˈbiːɪŋ/", "well-being", true},
		{"two words", "ice cream /aɪs kriːm/", "ice cream", true},
		{"digit rejected", "mp3 /ɛmpiːθriː/", "", false},
		{"single letter rejected", "a /ə/", "", false},
		{"no slash", "casa", "", false},
		{"empty head", "/ˈkasa/", "", false},
		{"symbol rejected", "c++ /siːplʌsplʌs/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Headword(tt.line)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Headword(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
