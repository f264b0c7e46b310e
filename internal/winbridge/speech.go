package winbridge

import (
	"strings"
	"unicode"
)

// maxSpokenLength bounds the text handed to the synthesizer.
const maxSpokenLength = 1000

// SanitizeSpeech strips everything but letters, digits, common punctuation,
// and whitespace, then truncates. Raw text never reaches the synthesis
// invocation: whatever mechanism drives it must not see shell metacharacters.
func SanitizeSpeech(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case strings.ContainsRune(".,!?;:-()'", r):
			b.WriteRune(r)
		}
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	if len(out) > maxSpokenLength {
		runes := []rune(out)
		if len(runes) > maxSpokenLength {
			runes = runes[:maxSpokenLength]
		}
		out = string(runes)
	}
	return out
}

// Speak sanitizes text and plays it through the OS speech synthesizer.
func Speak(text string) error {
	clean := SanitizeSpeech(text)
	if clean == "" {
		return nil
	}
	return speakText(clean)
}
