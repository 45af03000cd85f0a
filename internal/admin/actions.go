package admin

import (
	"context"
	"fmt"
	"strings"
)

// Built-in action names.
const (
	ActionDraft   = "draft"
	ActionPublish = "publish"
	ActionRemove  = "remove"
)

// Menu label templates, resolved through the translator at render time.
const (
	DraftDescription   = "Draft selected %(verbose_name_plural)s"
	PublishDescription = "Publish selected %(verbose_name_plural)s"
	RemoveDescription  = "Remove selected %(verbose_name_plural)s"
)

// BulkAction is an operation applied to a selection of records.
type BulkAction[T Record] interface {
	Name() string
	DescriptionKey() string
	Apply(ctx context.Context, req Request, records []T) (Summary, error)
}

// ApplyFunc runs a bulk action.
type ApplyFunc[T Record] func(ctx context.Context, req Request, records []T) (Summary, error)

type statusAction[T Record] struct {
	name        string
	description string
	apply       ApplyFunc[T]
}

// NewStatusAction wraps fn as a named BulkAction.
func NewStatusAction[T Record](name, description string, fn ApplyFunc[T]) BulkAction[T] {
	return statusAction[T]{name: name, description: description, apply: fn}
}

func (s statusAction[T]) Name() string           { return s.name }
func (s statusAction[T]) DescriptionKey() string { return s.description }

func (s statusAction[T]) Apply(ctx context.Context, req Request, records []T) (Summary, error) {
	return s.apply(ctx, req, records)
}

// Register appends a custom action to the menu.
func (a *ModelAdmin[T]) Register(action BulkAction[T]) error {
	name := strings.TrimSpace(action.Name())
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownAction)
	}
	if _, ok := a.lookup(name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, name)
	}
	a.actions = append(a.actions, action)
	return nil
}

// Actions renders the menu entries in registration order.
func (a *ModelAdmin[T]) Actions(locale string) ([]MenuEntry, error) {
	plural, err := a.translator.Translate(locale, a.meta.VerboseNamePlural, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]MenuEntry, 0, len(a.actions))
	for _, action := range a.actions {
		label, err := a.translator.Translate(locale, action.DescriptionKey(), map[string]any{
			"verbose_name_plural": plural,
		})
		if err != nil {
			return nil, fmt.Errorf("admin: render action %s: %w", action.Name(), err)
		}
		entries = append(entries, MenuEntry{Name: action.Name(), Label: label})
	}
	return entries, nil
}

// Dispatch applies the named action to records.
func (a *ModelAdmin[T]) Dispatch(ctx context.Context, req Request, name string, records []T) (Summary, error) {
	action, ok := a.lookup(name)
	if !ok {
		return Summary{}, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return action.Apply(ctx, req, records)
}

// DispatchIDs loads records through the configured Finder and dispatches.
func (a *ModelAdmin[T]) DispatchIDs(ctx context.Context, req Request, name string, ids []string) (Summary, error) {
	if _, ok := a.lookup(name); !ok {
		return Summary{}, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if a.finder == nil {
		return Summary{}, ErrFinderRequired
	}
	records, err := a.finder.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return Summary{}, err
	}
	return a.Dispatch(ctx, req, name, records)
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (a *ModelAdmin[T]) lookup(name string) (BulkAction[T], bool) {
	name = strings.TrimSpace(name)
	for _, action := range a.actions {
		if action.Name() == name {
			return action, true
		}
	}
	return nil, false
}
