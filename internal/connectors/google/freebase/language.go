package freebase

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

// DefaultLanguage is sent when neither the query nor the locale names one.
const DefaultLanguage = "en"

// localeVars are consulted in order; the first one set wins.
var localeVars = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

// ValidateLanguage checks that lang is a two-letter ISO 639-1 code.
func ValidateLanguage(lang string) error {
	if len(lang) != 2 {
		return fmt.Errorf("%w: language %q is not a two-letter code", domain.ErrInvalidQuery, lang)
	}
	base, err := language.ParseBase(lang)
	if err != nil || base.String() != strings.ToLower(lang) {
		return fmt.Errorf("%w: unknown language %q", domain.ErrInvalidQuery, lang)
	}
	return nil
}

// localeLanguage reduces a POSIX locale name such as "pt_BR.UTF-8@euro" to
// its two-letter language, or "".
func localeLanguage(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	if s := base.String(); len(s) == 2 {
		return s
	}
	return ""
}

// UserLanguages returns the two-letter languages of the user's locale
// settings in preference order, without duplicates.
func UserLanguages() []string {
	var value string
	for _, name := range localeVars {
		if v := os.Getenv(name); v != "" {
			value = v
			break
		}
	}
	var langs []string
	for _, locale := range strings.Split(value, ":") {
		if lang := localeLanguage(locale); lang != "" && !slices.Contains(langs, lang) {
			langs = append(langs, lang)
		}
	}
	return langs
}
