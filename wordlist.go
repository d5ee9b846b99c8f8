// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language selects a BIP39 wordlist.
type Language string

// Supported wordlist languages.
const (
	English            Language = "en"
	Japanese           Language = "jp"
	Korean             Language = "kr"
	Spanish            Language = "es"
	French             Language = "fr"
	Italian            Language = "it"
	Czech              Language = "cs"
	ChineseSimplified  Language = "zh-hans"
	ChineseTraditional Language = "zh-hant"
)

const wordlistSize = 2048

var wordlistsByLanguage = map[Language][]string{
	English:            wordlists.English,
	Japanese:           wordlists.Japanese,
	Korean:             wordlists.Korean,
	Spanish:            wordlists.Spanish,
	French:             wordlists.French,
	Italian:            wordlists.Italian,
	Czech:              wordlists.Czech,
	ChineseSimplified:  wordlists.ChineseSimplified,
	ChineseTraditional: wordlists.ChineseTraditional,
}

// Wordlist returns the words bound to l. The returned slice is shared and
// must not be modified.
func Wordlist(l Language) ([]string, error) {
	words, ok := wordlistsByLanguage[l]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, l)
	}
	return words, nil
}

// Languages lists the supported wordlist languages.
func Languages() []Language {
	return []Language{
		English, Japanese, Korean, Spanish, French,
		Italian, Czech, ChineseSimplified, ChineseTraditional,
	}
}

// DisplayName returns the English name of l, such as "Japanese" or
// "Traditional Chinese".
func (l Language) DisplayName() string {
	for t, candidate := range languageTags {
		if candidate != l {
			continue
		}
		switch t {
		case lang.Chinese, lang.AmericanEnglish, lang.BritishEnglish,
			lang.EuropeanSpanish, lang.LatinAmericanSpanish:
			continue
		}
		return display.English.Tags().Name(t)
	}
	return string(l)
}

// separator returns the string placed between words of a phrase.
func (l Language) separator() string {
	if l == Japanese {
		return "　" // ideographic space
	}
	return " "
}

var languageTags = map[lang.Tag]Language{
	lang.Chinese:              ChineseSimplified,
	lang.SimplifiedChinese:    ChineseSimplified,
	lang.TraditionalChinese:   ChineseTraditional,
	lang.Czech:                Czech,
	lang.AmericanEnglish:      English,
	lang.BritishEnglish:       English,
	lang.English:              English,
	lang.French:               French,
	lang.Italian:              Italian,
	lang.Japanese:             Japanese,
	lang.Korean:               Korean,
	lang.Spanish:              Spanish,
	lang.EuropeanSpanish:      Spanish,
	lang.LatinAmericanSpanish: Spanish,
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// ParseLanguage resolves a short code ("en", "jp"), a BCP 47 tag ("ja",
// "zh-Hant") or an English language name ("japanese") to a Language.
func ParseLanguage(s string) (Language, error) {
	name := sanitizeLang(s)
	if _, ok := wordlistsByLanguage[Language(name)]; ok {
		return Language(name), nil
	}

	tag, err := lang.Parse(name)
	if err != nil {
		tag = lang.Und
	}
	en := display.English.Languages()
	for t := range languageTags {
		if sanitizeLang(en.Name(t)) == name {
			tag = t
			break
		}
	}
	if tag == lang.Und {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, s)
	}
	if l, ok := languageTags[tag]; ok {
		return l, nil
	}
	base, _ := tag.Base()
	if l, ok := languageTags[lang.Make(base.String())]; ok {
		return l, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, s)
}
