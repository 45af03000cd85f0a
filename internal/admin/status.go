package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-faqs/internal/audit"
	"github.com/goliatone/go-faqs/internal/domain"
	"github.com/goliatone/go-faqs/internal/i18n"
	"github.com/goliatone/go-faqs/internal/logging"
	"github.com/goliatone/go-faqs/internal/messages"
	"github.com/goliatone/go-faqs/pkg/interfaces"
)

const (
	// ChangeMessageKey is stored untranslated on every audit entry.
	ChangeMessageKey = "Changed status to '%s'."

	SummarySingular = "%(rows_updated)s %(verbose_name)s was successfully %(verb)s."
	SummaryPlural   = "%(rows_updated)s %(verbose_name_plural)s were successfully %(verb)s."
)

// ModelAdmin runs bulk status actions for one record type.
type ModelAdmin[T Record] struct {
	meta       ModelMeta
	saver      Saver[T]
	finder     Finder[T]
	audit      audit.Log
	messenger  messages.Messenger
	translator interfaces.Translator
	logger     interfaces.Logger
	now        func() time.Time
	actions    []BulkAction[T]
}

// Option configures a ModelAdmin.
type Option[T Record] func(*ModelAdmin[T])

// WithAuditLog sets the audit log. Defaults to an in-memory log.
func WithAuditLog[T Record](log audit.Log) Option[T] {
	return func(a *ModelAdmin[T]) {
		if log != nil {
			a.audit = log
		}
	}
}

// WithMessenger sets the user notification channel. Defaults to an in-memory session store.
func WithMessenger[T Record](messenger messages.Messenger) Option[T] {
	return func(a *ModelAdmin[T]) {
		if messenger != nil {
			a.messenger = messenger
		}
	}
}

// WithTranslator sets the translator used for labels and summaries.
func WithTranslator[T Record](translator interfaces.Translator) Option[T] {
	return func(a *ModelAdmin[T]) {
		if translator != nil {
			a.translator = translator
		}
	}
}

// WithLogger sets the logger.
func WithLogger[T Record](logger interfaces.Logger) Option[T] {
	return func(a *ModelAdmin[T]) {
		a.logger = logging.Ensure(logger)
	}
}

// WithFinder enables dispatching by record id.
func WithFinder[T Record](finder Finder[T]) Option[T] {
	return func(a *ModelAdmin[T]) {
		a.finder = finder
	}
}

// WithClock overrides the time source for audit entries.
func WithClock[T Record](now func() time.Time) Option[T] {
	return func(a *ModelAdmin[T]) {
		if now != nil {
			a.now = now
		}
	}
}

// New builds a ModelAdmin with the draft, publish and remove actions registered.
func New[T Record](meta ModelMeta, saver Saver[T], opts ...Option[T]) *ModelAdmin[T] {
	if saver == nil {
		panic("admin: saver cannot be nil")
	}
	a := &ModelAdmin[T]{
		meta:       meta,
		saver:      saver,
		audit:      audit.NewMemoryLog(),
		messenger:  messages.NewSessionStore(),
		translator: i18n.NoOp(),
		logger:     logging.NoOp(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.actions = []BulkAction[T]{
		NewStatusAction(ActionDraft, DraftDescription, a.Draft),
		NewStatusAction(ActionPublish, PublishDescription, a.Publish),
		NewStatusAction(ActionRemove, RemoveDescription, a.Remove),
	}
	return a
}

// Meta returns the model description.
func (a *ModelAdmin[T]) Meta() ModelMeta {
	return a.meta
}

// Draft moves records to StatusDrafted.
func (a *ModelAdmin[T]) Draft(ctx context.Context, req Request, records []T) (Summary, error) {
	return a.UpdateStatus(ctx, req, records, domain.StatusDrafted)
}

// Publish moves records to StatusPublished.
func (a *ModelAdmin[T]) Publish(ctx context.Context, req Request, records []T) (Summary, error) {
	return a.UpdateStatus(ctx, req, records, domain.StatusPublished)
}

// Remove moves records to StatusRemoved.
func (a *ModelAdmin[T]) Remove(ctx context.Context, req Request, records []T) (Summary, error) {
	return a.UpdateStatus(ctx, req, records, domain.StatusRemoved)
}

// UpdateStatus sets status on each record in order, saving it and writing one
// audit entry per record, then sends a single pluralized summary to the user.
//
// Records are saved one at a time so every change gets its own audit entry.
// The first save or audit failure is returned as is: earlier records stay
// committed, later ones are not touched, and no summary is sent. The request
// session and the summary text are resolved before any record changes.
func (a *ModelAdmin[T]) UpdateStatus(ctx context.Context, req Request, records []T, status domain.Status) (Summary, error) {
	if !status.Valid() {
		return Summary{}, fmt.Errorf("%w: %d", domain.ErrInvalidStatus, int(status))
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return Summary{}, messages.ErrSessionRequired
	}

	logger := logging.WithFields(a.logger, map[string]any{
		"model":    a.meta.Name,
		"status":   status.Label(),
		"selected": len(records),
	}).WithContext(ctx)
	logger.Debug("admin.status.update.start")

	label, err := a.translator.Translate(req.Locale, status.Label(), nil)
	if err != nil {
		return Summary{}, err
	}
	count := len(records)
	message, err := a.summaryMessage(req.Locale, count, status)
	if err != nil {
		return Summary{}, err
	}

	for _, record := range records {
		id := record.RecordID()
		previous := record.CurrentStatus()
		record.SetStatus(status)
		if err := a.saver.Save(ctx, record); err != nil {
			record.SetStatus(previous)
			logger.Error("admin.status.update.save_failed", "record_id", id, "error", err)
			return Summary{}, fmt.Errorf("admin: save %s %s: %w", a.meta.Name, id, err)
		}

		entry := audit.Entry{
			ActorID:    req.ActorID,
			ObjectType: a.meta.Name,
			ObjectID:   id,
			Action:     audit.ActionChange,
			Message:    fmt.Sprintf(ChangeMessageKey, label),
			MessageKey: ChangeMessageKey,
			OccurredAt: a.now().UTC(),
			Metadata: map[string]any{
				"status":          int(status),
				"status_label":    status.Label(),
				"previous_status": int(previous),
			},
		}
		if err := a.audit.LogChange(ctx, entry); err != nil {
			logger.Error("admin.status.update.audit_failed", "record_id", id, "error", err)
			return Summary{}, fmt.Errorf("admin: audit %s %s: %w", a.meta.Name, id, err)
		}
	}

	if err := a.messenger.MessageUser(ctx, req.SessionID, messages.LevelInfo, message); err != nil {
		return Summary{}, err
	}

	logger.Info("admin.status.update.completed", "count", count)
	return Summary{Count: count, Status: status, Message: message}, nil
}

func (a *ModelAdmin[T]) summaryMessage(locale string, count int, status domain.Status) (string, error) {
	verboseName, err := a.translator.Translate(locale, a.meta.VerboseName, nil)
	if err != nil {
		return "", err
	}
	verboseNamePlural, err := a.translator.Translate(locale, a.meta.VerboseNamePlural, nil)
	if err != nil {
		return "", err
	}
	verb, err := a.translator.Translate(locale, status.Label(), nil)
	if err != nil {
		return "", err
	}
	return a.translator.TranslatePlural(locale, SummarySingular, SummaryPlural, count, map[string]any{
		"rows_updated":        count,
		"verbose_name":        verboseName,
		"verbose_name_plural": verboseNamePlural,
		"verb":                verb,
	})
}
