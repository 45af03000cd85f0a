package faqs

import (
	"context"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-faqs/internal/admin"
	"github.com/goliatone/go-faqs/internal/audit"
	"github.com/goliatone/go-faqs/internal/commands/statuscmd"
	"github.com/goliatone/go-faqs/internal/di"
	internalfaqs "github.com/goliatone/go-faqs/internal/faqs"
	"github.com/goliatone/go-faqs/internal/messages"
	"github.com/goliatone/go-faqs/pkg/interfaces"
)

type (
	// Topic groups related questions.
	Topic = internalfaqs.Topic
	// Question is a single FAQ entry.
	Question = internalfaqs.Question
	// CreateTopicRequest captures the fields required to add a topic.
	CreateTopicRequest = internalfaqs.CreateTopicRequest
	// CreateQuestionRequest captures the fields required to add a question.
	CreateQuestionRequest = internalfaqs.CreateQuestionRequest
	// Service creates FAQ records.
	Service = internalfaqs.Service

	// TopicAdmin runs bulk status actions on topics.
	TopicAdmin = admin.ModelAdmin[*Topic]
	// QuestionAdmin runs bulk status actions on questions.
	QuestionAdmin = admin.ModelAdmin[*Question]
	Request       = admin.Request
	Summary       = admin.Summary
	MenuEntry     = admin.MenuEntry
	ModelMeta     = admin.ModelMeta

	AuditEntry = audit.Entry
	AuditLog   = audit.Log

	Message      = messages.Message
	MessageLevel = messages.Level
	SessionStore = messages.SessionStore

	BulkStatusCommand = statuscmd.BulkStatusCommand
	BulkStatusHandler = statuscmd.BulkStatusHandler

	Option = di.Option
)

const (
	ActionDraft   = admin.ActionDraft
	ActionPublish = admin.ActionPublish
	ActionRemove  = admin.ActionRemove
)

var (
	ErrUnknownAction = admin.ErrUnknownAction
	ErrUnknownModel  = admin.ErrUnknownModel

	WithBunDB          = di.WithBunDB
	WithCache          = di.WithCache
	WithLoggerProvider = di.WithLoggerProvider
	WithActivitySink   = di.WithActivitySink
	WithTranslator     = di.WithTranslator
	WithAuditLog       = di.WithAuditLog
	WithClock          = di.WithClock
)

// Module is the top level facade over the FAQ admin.
type Module struct {
	container *di.Container
}

// New validates cfg and builds the module.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Migrate creates the storage schema.
func (m *Module) Migrate(ctx context.Context) error {
	return m.container.Migrate(ctx)
}

// Close releases storage opened by the module.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}

// FAQs returns the record creation service.
func (m *Module) FAQs() *Service {
	return m.container.FAQService()
}

// Topics returns the topic admin.
func (m *Module) Topics() *TopicAdmin {
	return m.container.TopicAdmin()
}

// Questions returns the question admin.
func (m *Module) Questions() *QuestionAdmin {
	return m.container.QuestionAdmin()
}

// Dispatch runs a named action on the records of a registered model.
func (m *Module) Dispatch(ctx context.Context, model string, req Request, action string, ids []string) (Summary, error) {
	return m.container.Site().Dispatch(ctx, model, req, action, ids)
}

// Models lists the registered models in registration order.
func (m *Module) Models() []ModelMeta {
	return m.container.Site().Models()
}

// Messages returns the per-session message queue.
func (m *Module) Messages() *SessionStore {
	return m.container.Messages()
}

// Audit returns the configured audit log.
func (m *Module) Audit() AuditLog {
	return m.container.AuditLog()
}

// Translator returns the translator used for labels and summaries.
func (m *Module) Translator() interfaces.Translator {
	return m.container.Translator()
}

// BulkStatusHandler returns the go-command handler for BulkStatusCommand.
func (m *Module) BulkStatusHandler() *BulkStatusHandler {
	return m.container.BulkStatusHandler()
}

// SubscribeCommands registers the module's command handlers with the
// go-command dispatcher. The returned func removes the subscription.
func (m *Module) SubscribeCommands() (unsubscribe func()) {
	sub := dispatcher.SubscribeCommand[BulkStatusCommand](m.container.BulkStatusHandler())
	return sub.Unsubscribe
}
