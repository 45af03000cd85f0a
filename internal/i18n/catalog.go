package i18n

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Forms maps CLDR plural categories to message templates. Messages without
// plural variants store their text under plural.Other.
type Forms map[plural.Form]string

// Catalog stores translated templates per locale. Keys are the source strings.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]Forms
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{messages: map[string]map[string]Forms{}}
}

// Set registers a message without plural variants.
func (c *Catalog) Set(locale, key, text string) {
	c.SetPlural(locale, key, Forms{plural.Other: text})
}

// SetPlural registers plural variants for key.
func (c *Catalog) SetPlural(locale, key string, forms Forms) {
	locale = normalizeLocale(locale)
	if locale == "" || key == "" || len(forms) == 0 {
		return
	}
	copied := make(Forms, len(forms))
	for form, text := range forms {
		copied[form] = text
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[locale] == nil {
		c.messages[locale] = map[string]Forms{}
	}
	c.messages[locale][key] = copied
}

// Lookup returns the forms registered for key, trying the exact locale first
// and then its base language ("es-MX" falls back to "es").
func (c *Catalog) Lookup(locale, key string) (Forms, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeChain(locale) {
		if forms, ok := c.messages[candidate][key]; ok {
			return forms, true
		}
	}
	return nil, false
}

// Locales lists the locales that carry at least one message.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}

func localeChain(locale string) []string {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return nil
	}
	chain := []string{normalized}
	if base, _, found := strings.Cut(normalized, "-"); found && base != "" {
		chain = append(chain, base)
	}
	return chain
}

// parseTag resolves locale to a language tag, falling back to English so
// plural rules always have a ruleset.
func parseTag(locale string) language.Tag {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return language.English
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return language.English
	}
	return tag
}
