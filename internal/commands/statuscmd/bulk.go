package statuscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-faqs/internal/admin"
	"github.com/goliatone/go-faqs/internal/commands"
	"github.com/goliatone/go-faqs/pkg/interfaces"
)

const bulkStatusMessageType = "faqs.admin.bulk_status"

// BulkStatusCommand runs a named bulk action over the selected records of a
// registered model.
type BulkStatusCommand struct {
	Model     string    `json:"model"`
	Action    string    `json:"action"`
	IDs       []string  `json:"ids"`
	ActorID   uuid.UUID `json:"actor_id"`
	SessionID string    `json:"session_id"`
	Locale    string    `json:"locale,omitempty"`
	// ResultCallback receives the summary once the action completes.
	ResultCallback func(admin.Summary) `json:"-"`
}

// Type implements command.Message.
func (BulkStatusCommand) Type() string { return bulkStatusMessageType }

// Validate ensures the command names a model, an action, the acting user
// with their session, and a non-empty selection.
func (m BulkStatusCommand) Validate() error {
	errs := validation.Errors{}
	err := validation.ValidateStruct(&m,
		validation.Field(&m.Model, validation.Required, validation.By(notBlank("faqs.admin.bulk_status.model_required", "model is required"))),
		validation.Field(&m.Action, validation.Required, validation.By(notBlank("faqs.admin.bulk_status.action_required", "action is required"))),
		validation.Field(&m.SessionID, validation.Required, validation.By(notBlank("faqs.admin.bulk_status.session_required", "session_id is required"))),
		validation.Field(&m.IDs, validation.Required.ErrorObject(
			validation.NewError("faqs.admin.bulk_status.ids_required", "items must be selected in order to perform actions on them"),
		), validation.Each(validation.By(notBlank("faqs.admin.bulk_status.id_invalid", "ids must not contain empty values")))),
	)
	if err != nil {
		fieldErrs, ok := err.(validation.Errors)
		if !ok {
			return err
		}
		for field, fieldErr := range fieldErrs {
			errs[field] = fieldErr
		}
	}
	if m.ActorID == uuid.Nil {
		errs["actor_id"] = validation.NewError("faqs.admin.bulk_status.actor_required", "actor_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

// Dispatcher runs a named action for a model. *admin.Site satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, model string, req admin.Request, action string, ids []string) (admin.Summary, error)
}

// BulkStatusHandler executes BulkStatusCommand through the shared command handler.
type BulkStatusHandler struct {
	inner *commands.Handler[BulkStatusCommand]
}

// NewBulkStatusHandler constructs a handler wired to the provided dispatcher.
func NewBulkStatusHandler(dispatcher Dispatcher, logger interfaces.Logger, opts ...commands.HandlerOption[BulkStatusCommand]) *BulkStatusHandler {
	if dispatcher == nil {
		panic("statuscmd: dispatcher cannot be nil")
	}
	exec := func(ctx context.Context, msg BulkStatusCommand) error {
		req := admin.Request{
			ActorID:   msg.ActorID,
			SessionID: strings.TrimSpace(msg.SessionID),
			Locale:    strings.TrimSpace(msg.Locale),
		}
		summary, err := dispatcher.Dispatch(ctx, strings.TrimSpace(msg.Model), req, strings.TrimSpace(msg.Action), msg.IDs)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(summary)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BulkStatusCommand]{
		commands.WithLogger[BulkStatusCommand](logger),
		commands.WithOperation[BulkStatusCommand]("admin.bulk_status"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BulkStatusHandler{
		inner: commands.NewHandler[BulkStatusCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BulkStatusCommand].Execute.
func (h *BulkStatusHandler) Execute(ctx context.Context, msg BulkStatusCommand) error {
	return h.inner.Execute(ctx, msg)
}
