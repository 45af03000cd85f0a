package i18n

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/feature/plural"
)

const (
	summarySingular = "%(rows_updated)s %(verbose_name)s was successfully %(verb)s."
	summaryPlural   = "%(rows_updated)s %(verbose_name_plural)s were successfully %(verb)s."
)

func summaryParams(count int) map[string]any {
	return map[string]any{
		"rows_updated":        count,
		"verbose_name":        "Article",
		"verbose_name_plural": "Articles",
		"verb":                "published",
	}
}

func TestTranslatePluralSourceStrings(t *testing.T) {
	svc := NewService(nil, "en")

	cases := []struct {
		count int
		want  string
	}{
		{0, "0 Articles were successfully published."},
		{1, "1 Article was successfully published."},
		{2, "2 Articles were successfully published."},
		{3, "3 Articles were successfully published."},
	}
	for _, tc := range cases {
		got, err := svc.TranslatePlural("en", summarySingular, summaryPlural, tc.count, summaryParams(tc.count))
		if err != nil {
			t.Fatalf("count %d: unexpected error %v", tc.count, err)
		}
		if got != tc.want {
			t.Fatalf("count %d: expected %q, got %q", tc.count, tc.want, got)
		}
	}
}

func TestTranslatePluralUsesCatalogForms(t *testing.T) {
	catalog := NewCatalog()
	catalog.SetPlural("es", summarySingular, Forms{
		plural.One:   "%(rows_updated)s %(verbose_name)s fue %(verb)s.",
		plural.Other: "%(rows_updated)s %(verbose_name_plural)s fueron %(verb)s.",
	})
	svc := NewService(catalog, "en")

	got, err := svc.TranslatePlural("es-MX", summarySingular, summaryPlural, 1, summaryParams(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1 Article fue published." {
		t.Fatalf("unexpected singular translation %q", got)
	}

	got, err = svc.TranslatePlural("es", summarySingular, summaryPlural, 0, summaryParams(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0 Articles fueron published." {
		t.Fatalf("unexpected zero translation %q", got)
	}
}

func TestPluralFormFollowsLocaleRules(t *testing.T) {
	if form := PluralForm("en", 0); form != plural.Other {
		t.Fatalf("expected English zero to be other, got %v", form)
	}
	if form := PluralForm("fr", 0); form != plural.One {
		t.Fatalf("expected French zero to be one, got %v", form)
	}
	if form := PluralForm("", 1); form != plural.One {
		t.Fatalf("expected default one, got %v", form)
	}
}

func TestTranslateFallsBackToKey(t *testing.T) {
	svc := NewService(nil, "en")
	got, err := svc.Translate("de", "Publish selected %(verbose_name_plural)s", map[string]any{
		"verbose_name_plural": "topics",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Publish selected topics" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestTranslateUsesDefaultLocale(t *testing.T) {
	catalog := NewCatalog()
	catalog.Set("es", "published", "publicado")
	svc := NewService(catalog, "es")

	got, err := svc.Translate("", "published", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "publicado" {
		t.Fatalf("expected default locale translation, got %q", got)
	}
}

func TestFormatReportsMissingParams(t *testing.T) {
	_, err := Format("%(rows_updated)s %(verb)s", map[string]any{"verb": "removed"})
	if !errors.Is(err, ErrMissingParam) {
		t.Fatalf("expected ErrMissingParam, got %v", err)
	}

	got, err := Format("100%% %(verb)s", map[string]any{"verb": "done"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "100% done" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDefaultFixtureAppliesSpanishCatalog(t *testing.T) {
	fx, err := DefaultFixture()
	if err != nil {
		t.Fatalf("DefaultFixture: %v", err)
	}
	catalog := NewCatalog()
	if err := fx.Apply(catalog); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	svc := NewService(catalog, fx.DefaultLocale)

	got, err := svc.TranslatePlural("es", summarySingular, summaryPlural, 2, map[string]any{
		"rows_updated":        2,
		"verbose_name":        "tema",
		"verbose_name_plural": "temas",
		"verb":                "publicado",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2 temas cambiaron a «publicado» correctamente." {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestFixtureApplySkipsDisabledLocales(t *testing.T) {
	fx, err := DefaultFixture()
	if err != nil {
		t.Fatalf("DefaultFixture: %v", err)
	}

	englishOnly := NewCatalog()
	if err := fx.Apply(englishOnly, "en"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := englishOnly.Locales(); len(got) != 0 {
		t.Fatalf("expected no translated locales, got %v", got)
	}

	regional := NewCatalog()
	if err := fx.Apply(regional, "en", "es-MX"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := regional.Lookup("es-MX", "published"); ok {
		t.Fatal("expected base locale catalog to stay out when only a region is enabled")
	}

	spanish := NewCatalog()
	if err := fx.Apply(spanish, "ES"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if forms, ok := spanish.Lookup("es", "published"); !ok || forms[plural.Other] != "publicado" {
		t.Fatalf("expected spanish catalog, got %v", forms)
	}
}

func TestLoaderRejectsInvalidPluralObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{"translations": {"es": {"key": {"one": "uno"}}}}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fx, err := NewLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := fx.Apply(NewCatalog()); err == nil {
		t.Fatal("expected missing other category to fail")
	}
}
