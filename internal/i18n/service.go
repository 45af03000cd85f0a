package i18n

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/goliatone/go-faqs/pkg/interfaces"
)

// Service resolves templates from a Catalog and selects plural variants with
// the CLDR cardinal rules of the requested locale.
type Service struct {
	catalog       *Catalog
	defaultLocale string
}

var _ interfaces.Translator = (*Service)(nil)

// NewService wires a translator over catalog. A nil catalog behaves like an
// empty one, returning the source strings.
func NewService(catalog *Catalog, defaultLocale string) *Service {
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Service{
		catalog:       catalog,
		defaultLocale: strings.TrimSpace(defaultLocale),
	}
}

// Catalog exposes the backing catalog so callers can register messages.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// DefaultLocale returns the locale used when callers pass an empty one.
func (s *Service) DefaultLocale() string {
	return s.defaultLocale
}

// Translate resolves key for locale and interpolates params.
func (s *Service) Translate(locale, key string, params map[string]any) (string, error) {
	locale = s.resolveLocale(locale)
	text := key
	if forms, ok := s.catalog.Lookup(locale, key); ok {
		if translated := pick(forms, plural.Other); translated != "" {
			text = translated
		}
	}
	return Format(text, params)
}

// TranslatePlural chooses between variants for count. Catalog entries are
// keyed by the singular source string. When the locale has no entry the
// source pair is used with English rules, so 0 selects the plural form.
func (s *Service) TranslatePlural(locale, singular, pluralText string, count int, params map[string]any) (string, error) {
	locale = s.resolveLocale(locale)

	if forms, ok := s.catalog.Lookup(locale, singular); ok {
		form := PluralForm(locale, count)
		if text := pick(forms, form); text != "" {
			return Format(text, params)
		}
	}

	text := pluralText
	if plural.Cardinal.MatchPlural(language.English, count, 0, 0, 0, 0) == plural.One {
		text = singular
	}
	return Format(text, params)
}

func (s *Service) resolveLocale(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return s.defaultLocale
	}
	return locale
}

// PluralForm returns the CLDR cardinal category for an integer count.
func PluralForm(locale string, count int) plural.Form {
	if count < 0 {
		count = -count
	}
	return plural.Cardinal.MatchPlural(parseTag(locale), count, 0, 0, 0, 0)
}

func pick(forms Forms, form plural.Form) string {
	if text, ok := forms[form]; ok && text != "" {
		return text
	}
	return forms[plural.Other]
}

// NoOp returns a translator that only interpolates the source strings.
func NoOp() interfaces.Translator {
	return NewService(nil, "")
}
