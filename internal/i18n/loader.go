package i18n

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/feature/plural"
)

// Fixture is the serialised form of a catalog. Each message is either a plain
// string or an object keyed by CLDR plural category (zero, one, two, few,
// many, other).
type Fixture struct {
	DefaultLocale string                                `json:"default_locale"`
	Translations  map[string]map[string]json.RawMessage `json:"translations"`
}

//go:embed locales/default.json
var defaultFixtureData embed.FS

var formNames = map[string]plural.Form{
	"zero":  plural.Zero,
	"one":   plural.One,
	"two":   plural.Two,
	"few":   plural.Few,
	"many":  plural.Many,
	"other": plural.Other,
}

// DefaultFixture loads the built-in translations.
func DefaultFixture() (*Fixture, error) {
	data, err := defaultFixtureData.ReadFile("locales/default.json")
	if err != nil {
		return nil, fmt.Errorf("i18n: read embedded fixture: %w", err)
	}
	return decodeFixture(bytes.NewReader(data))
}

// Loader reads translation fixtures from disk.
type Loader struct {
	path string
}

// NewLoader constructs a loader for path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the configured fixture file.
func (l *Loader) Load(ctx context.Context) (*Fixture, error) {
	if l == nil || strings.TrimSpace(l.path) == "" {
		return nil, errors.New("i18n: loader path cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("i18n: open fixture %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeFixture(file)
}

// Apply registers fixture messages on catalog. When locales is not empty only
// those locales (and regional variants of them) are registered.
func (fx *Fixture) Apply(catalog *Catalog, locales ...string) error {
	if fx == nil || catalog == nil {
		return nil
	}
	enabled := make(map[string]struct{}, len(locales))
	for _, locale := range locales {
		if normalized := normalizeLocale(locale); normalized != "" {
			enabled[normalized] = struct{}{}
		}
	}
	for locale, messages := range fx.Translations {
		if !localeEnabled(enabled, locale) {
			continue
		}
		for key, raw := range messages {
			forms, err := decodeForms(raw)
			if err != nil {
				return fmt.Errorf("i18n: locale %q key %q: %w", locale, key, err)
			}
			catalog.SetPlural(locale, key, forms)
		}
	}
	return nil
}

func localeEnabled(enabled map[string]struct{}, locale string) bool {
	if len(enabled) == 0 {
		return true
	}
	for _, candidate := range localeChain(locale) {
		if _, ok := enabled[candidate]; ok {
			return true
		}
	}
	return false
}

func decodeFixture(r io.Reader) (*Fixture, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var fx Fixture
	if err := decoder.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if fx.Translations == nil {
		fx.Translations = map[string]map[string]json.RawMessage{}
	}
	return &fx, nil
}

func decodeForms(raw json.RawMessage) (Forms, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return Forms{plural.Other: text}, nil
	}

	var named map[string]string
	if err := json.Unmarshal(raw, &named); err != nil {
		return nil, fmt.Errorf("message must be a string or a plural object: %w", err)
	}
	forms := make(Forms, len(named))
	for name, value := range named {
		form, ok := formNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown plural category %q", name)
		}
		forms[form] = value
	}
	if _, ok := forms[plural.Other]; !ok {
		return nil, errors.New(`plural object requires an "other" category`)
	}
	return forms, nil
}
