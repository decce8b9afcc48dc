package text

import (
	"testing"
)

func TestCharDirection(t *testing.T) {
	tests := []struct {
		name string
		char rune
		want Direction
	}{
		// Arabic
		{"Arabic alif", 'ا', RTL}, // U+0627
		{"Arabic meem", 'م', RTL}, // U+0645

		// Hebrew
		{"Hebrew alef", 'א', RTL}, // U+05D0
		{"Hebrew shin", 'ש', RTL}, // U+05E9

		// Left to right scripts
		{"Latin A", 'A', LTR},
		{"Latin é", 'é', LTR},
		{"Cyrillic я", 'я', LTR},
		{"Greek Omega", 'Ω', LTR},
		{"CJK 中", '中', LTR},
		{"Hiragana あ", 'あ', LTR},

		// Neutral characters
		{"Space", ' ', Neutral},
		{"Digit 5", '5', Neutral},
		{"Period", '.', Neutral},
		{"Question", '?', Neutral},
		{"Newline", '\n', Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CharDirection(tt.char)
			if got != tt.want {
				t.Errorf("CharDirection(%q U+%04X) = %v, want %v",
					tt.char, tt.char, got, tt.want)
			}
		})
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"English", "Hello World", LTR},
		{"Russian", "Привет мир", LTR},
		{"Chinese", "你好世界", LTR},

		{"Arabic", "مرحبا", RTL},
		{"Hebrew", "שלום", RTL},

		// Mixed: the majority wins
		{"English with Arabic", "Hello مرحبا World", LTR},
		{"Arabic with English", "مرحبا Hello عليكم", RTL},

		{"Numbers only", "12345", Neutral},
		{"Punctuation", "...", Neutral},
		{"Empty string", "", Neutral},

		{"Arabic + numbers", "مرحبا 123", RTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDirection(tt.text)
			if got != tt.want {
				t.Errorf("DetectDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if LTR.String() != "LTR" || RTL.String() != "RTL" || Neutral.String() != "Neutral" {
		t.Errorf("unexpected direction names: %v %v %v", LTR, RTL, Neutral)
	}
	if Direction(9).String() != "Unknown" {
		t.Errorf("Direction(9).String() = %q, want Unknown", Direction(9).String())
	}
}
