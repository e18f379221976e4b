package translate

import (
	"fmt"
	"strings"
	"unicode"
)

// Language describes one supported language.
type Language struct {
	Code   string
	Name   string
	Flag   string
	Script *unicode.RangeTable
}

var languages = map[string]Language{
	"uk": {"uk", "Ukrainian", "🇺🇦", unicode.Cyrillic},
	"ru": {"ru", "Russian", "🇷🇺", unicode.Cyrillic},
	"bg": {"bg", "Bulgarian", "🇧🇬", unicode.Cyrillic},
	"el": {"el", "Greek", "🇬🇷", unicode.Greek},
	"en": {"en", "English", "🇬🇧", unicode.Latin},
	"de": {"de", "German", "🇩🇪", unicode.Latin},
	"fr": {"fr", "French", "🇫🇷", unicode.Latin},
	"es": {"es", "Spanish", "🇪🇸", unicode.Latin},
	"pl": {"pl", "Polish", "🇵🇱", unicode.Latin},
}

// LookupLanguage finds a language by its ISO 639-1 code.
func LookupLanguage(code string) (Language, error) {
	l, ok := languages[strings.ToLower(code)]
	if !ok {
		return Language{}, fmt.Errorf("unsupported language %q", code)
	}
	return l, nil
}

// writtenIn reports whether any letter of s belongs to script.
func writtenIn(s string, script *unicode.RangeTable) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && unicode.Is(script, r) {
			return true
		}
	}
	return false
}
