// Package translit converts Serbian Cyrillic text to its Latin-script
// form and derives unique URL slugs from either script.
package translit

import (
	"strings"
	"unicode"
)

// digraphs must be checked before single characters: Љ, Њ and Џ map to
// two-letter Latin sequences.
var digraphs = map[string]string{
	"Љ": "Lj", "Њ": "Nj", "Џ": "Dž",
	"љ": "lj", "њ": "nj", "џ": "dž",
}

var singles = map[rune]string{
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Ђ': "Đ", 'Е': "E",
	'Ж': "Ž", 'З': "Z", 'И': "I", 'Ј': "J", 'К': "K", 'Л': "L",
	'М': "M", 'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S",
	'Т': "T", 'Ћ': "Ć", 'У': "U", 'Ф': "F", 'Х': "H", 'Ц': "C", 'Ч': "Č",
	'Ш': "Š",
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'ђ': "đ", 'е': "e",
	'ж': "ž", 'з': "z", 'и': "i", 'ј': "j", 'к': "k", 'л': "l",
	'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s",
	'т': "t", 'ћ': "ć", 'у': "u", 'ф': "f", 'х': "h", 'ц': "c", 'ч': "č",
	'ш': "š",
}

// IsCyrillic reports whether any code point of text falls in the
// Cyrillic Unicode block.
func IsCyrillic(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

// ToLatin transliterates Serbian Cyrillic text to Latin script. Digraph
// characters are matched greedily, scanning left to right; characters
// without a mapping pass through unchanged, so the function is a no-op
// on text that is already Latin.
func ToLatin(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if lat, ok := digraphs[string(runes[i])]; ok {
			b.WriteString(lat)
			continue
		}
		if lat, ok := singles[runes[i]]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// Normalize returns the full Latin transliteration when the text contains
// any Cyrillic character, and the text unchanged otherwise. It exists to
// produce slug source text; it never decides which script gets stored.
func Normalize(text string) string {
	if IsCyrillic(text) {
		return ToLatin(text)
	}
	return text
}
