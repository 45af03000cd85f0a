package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-faqs/internal/domain"
	"github.com/goliatone/go-faqs/internal/i18n"
)

func TestActionsRenderMenuLabels(t *testing.T) {
	f := newFixture(t, nil)

	entries, err := f.admin.Actions("en")
	if err != nil {
		t.Fatalf("Actions: %v", err)
	}
	want := []MenuEntry{
		{Name: ActionDraft, Label: "Draft selected Articles"},
		{Name: ActionPublish, Label: "Publish selected Articles"},
		{Name: ActionRemove, Label: "Remove selected Articles"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestActionsTranslateLabels(t *testing.T) {
	catalog := i18n.NewCatalog()
	catalog.Set("es", "Articles", "artículos")
	catalog.Set("es", PublishDescription, "Publicar los %(verbose_name_plural)s seleccionados")
	f := newFixture(t, nil, WithTranslator[*article](i18n.NewService(catalog, "en")))

	entries, err := f.admin.Actions("es")
	if err != nil {
		t.Fatalf("Actions: %v", err)
	}
	if entries[1].Label != "Publicar los artículos seleccionados" {
		t.Fatalf("unexpected translated label %q", entries[1].Label)
	}
	if entries[0].Label != "Draft selected artículos" {
		t.Fatalf("expected untranslated template to fall back, got %q", entries[0].Label)
	}
}

func TestDispatchByName(t *testing.T) {
	records := drafted("d1", "d2")
	f := newFixture(t, records)

	summary, err := f.admin.Dispatch(context.Background(), f.req, "publish", records)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if summary.Status != domain.StatusPublished || summary.Count != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if _, err := f.admin.Dispatch(context.Background(), f.req, "archive", records); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestDispatchIDsLoadsRecords(t *testing.T) {
	f := newFixture(t, drafted("i1", "i2", "i3"))

	summary, err := f.admin.DispatchIDs(context.Background(), f.req, ActionRemove, []string{"i3", "i1"})
	if err != nil {
		t.Fatalf("DispatchIDs: %v", err)
	}
	if summary.Message != "2 Articles were successfully removed." {
		t.Fatalf("unexpected message %q", summary.Message)
	}
	if f.saver.stored["i2"] != domain.StatusDrafted {
		t.Fatal("expected unselected record untouched")
	}
	if got := f.saver.saves; len(got) != 2 || got[0] != "i3" || got[1] != "i1" {
		t.Fatalf("expected saves in selection order, got %v", got)
	}
}

func TestDispatchIDsCountsRepeatedIDsOnce(t *testing.T) {
	f := newFixture(t, drafted("d1", "d2"))

	summary, err := f.admin.DispatchIDs(context.Background(), f.req, ActionPublish, []string{"d2", "d1", "d2", " d1"})
	if err != nil {
		t.Fatalf("DispatchIDs: %v", err)
	}
	if summary.Count != 2 || summary.Message != "2 Articles were successfully published." {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if got := f.saver.saves; len(got) != 2 || got[0] != "d2" || got[1] != "d1" {
		t.Fatalf("expected one save per record in first-seen order, got %v", got)
	}
	if entries := f.log.Entries(); len(entries) != 2 {
		t.Fatalf("expected one audit entry per record, got %d", len(entries))
	}
}

func TestDispatchIDsRequiresFinder(t *testing.T) {
	saver := newMemorySaver()
	a := New[*article](articleMeta, saver)
	_, err := a.DispatchIDs(context.Background(), Request{SessionID: "s"}, ActionDraft, []string{"x"})
	if !errors.Is(err, ErrFinderRequired) {
		t.Fatalf("expected ErrFinderRequired, got %v", err)
	}
}

func TestRegisterCustomAction(t *testing.T) {
	f := newFixture(t, nil)
	called := false
	custom := NewStatusAction[*article]("republish", "Republish selected %(verbose_name_plural)s",
		func(ctx context.Context, req Request, records []*article) (Summary, error) {
			called = true
			return Summary{Count: len(records)}, nil
		})

	if err := f.admin.Register(custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := f.admin.Register(custom); !errors.Is(err, ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}

	entries, err := f.admin.Actions("en")
	if err != nil {
		t.Fatalf("Actions: %v", err)
	}
	if len(entries) != 4 || entries[3].Label != "Republish selected Articles" {
		t.Fatalf("unexpected menu %+v", entries)
	}

	if _, err := f.admin.Dispatch(context.Background(), f.req, "republish", nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !called {
		t.Fatal("expected custom action to run")
	}
}

func TestSiteRoutesToModel(t *testing.T) {
	f := newFixture(t, drafted("m1"))
	site := NewSite()
	if err := site.Register(f.admin); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := site.Register(f.admin); !errors.Is(err, ErrDuplicateModel) {
		t.Fatalf("expected ErrDuplicateModel, got %v", err)
	}

	summary, err := site.Dispatch(context.Background(), "article", f.req, ActionPublish, []string{"m1"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if summary.Message != "1 Article was successfully published." {
		t.Fatalf("unexpected message %q", summary.Message)
	}

	if _, err := site.Dispatch(context.Background(), "topic", f.req, ActionPublish, nil); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
	if models := site.Models(); len(models) != 1 || models[0] != articleMeta {
		t.Fatalf("unexpected models %+v", models)
	}
}
