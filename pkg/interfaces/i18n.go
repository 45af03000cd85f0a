package interfaces

// Translator resolves message keys for a locale. Keys are the source (English)
// strings so they stay stable across catalogs. Templates use named
// placeholders of the form %(name)s which are filled from params.
type Translator interface {
	Translate(locale, key string, params map[string]any) (string, error)
	TranslatePlural(locale, singular, plural string, count int, params map[string]any) (string, error)
}
