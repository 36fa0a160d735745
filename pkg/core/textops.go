package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reverse returns the code points of text in reverse order.
// For valid UTF-8 input it is an involution and preserves the byte length.
func Reverse(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// CountVowels returns how many code points of text are one of a, e, i, o, u
// in either ASCII case. The letter y is not a vowel.
func CountVowels(text string) int {
	n := 0
	for _, r := range text {
		if IsVowel(r) {
			n++
		}
	}
	return n
}

// IsVowel reports whether r is an ASCII vowel, ignoring case.
func IsVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// CapitalizeWords upper-cases the first code point of every word and joins
// the words with a single space. The rest of each word is left as is.
// Leading, trailing and repeated whitespace is not preserved.
func CapitalizeWords(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		upper := unicode.ToUpper(r)
		if upper == r {
			continue
		}
		words[i] = string(upper) + w[size:]
	}
	return strings.Join(words, " ")
}
