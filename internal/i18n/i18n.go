// Package i18n resolves display strings for an explicitly chosen language.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"

	"driving-quiz-service/internal/domain"
)

// Language is a supported catalog language.
type Language string

const (
	English Language = "en"
	Turkish Language = "tr"

	// DefaultLanguage is used when nothing else matches.
	DefaultLanguage = Turkish
)

var supported = []language.Tag{language.Turkish, language.English}

var matcher = language.NewMatcher(supported)

// Parse resolves an Accept-Language style value or a plain tag to a supported language.
// Unknown or empty input yields DefaultLanguage.
func Parse(raw string) Language {
	if raw == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	base, _ := supported[idx].Base()
	return Language(base.String())
}

// Translator looks keys up in one language, falling back to English and then to the key.
type Translator struct {
	lang Language
}

func New(lang Language) Translator {
	if _, ok := catalog[lang]; !ok {
		lang = DefaultLanguage
	}
	return Translator{lang: lang}
}

func (t Translator) Language() Language { return t.lang }

func (t Translator) T(key string) string {
	if s, ok := catalog[t.lang][key]; ok {
		return s
	}
	if s, ok := catalog[English][key]; ok {
		return s
	}
	return key
}

// Tf formats the translated key with args.
func (t Translator) Tf(key string, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

// CategoryTitle returns the display title of a category, including the mixed "all" pseudo-category.
func (t Translator) CategoryTitle(c domain.Category) string {
	return t.T("category." + string(c))
}

// TierMessage returns the result message shown for a tier.
func (t Translator) TierMessage(tier domain.Tier) string {
	return t.T("tier." + string(tier))
}
