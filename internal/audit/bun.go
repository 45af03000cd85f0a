package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-faqs/pkg/interfaces"
)

// LogEntryModel is the persisted shape of an audit entry.
type LogEntryModel struct {
	bun.BaseModel `bun:"table:admin_log_entries,alias:ale"`

	ID         uuid.UUID      `bun:",pk,type:uuid"`
	ActorID    uuid.UUID      `bun:"actor_id,type:uuid"`
	ObjectType string         `bun:"object_type,notnull"`
	ObjectID   string         `bun:"object_id,notnull"`
	Action     string         `bun:"action,notnull"`
	Message    string         `bun:"message,notnull"`
	MessageKey string         `bun:"message_key"`
	Metadata   map[string]any `bun:"metadata,type:jsonb"`
	OccurredAt time.Time      `bun:"occurred_at,notnull"`
}

// BunLog persists entries to the admin_log_entries table.
type BunLog struct {
	db     bun.IDB
	now    func() time.Time
	logger interfaces.Logger
}

var _ Log = (*BunLog)(nil)

// NewBunLog constructs a log over db.
func NewBunLog(db bun.IDB, opts ...Option) *BunLog {
	o := applyOptions(opts)
	return &BunLog{db: db, now: time.Now, logger: o.logger}
}

// CreateTable creates the backing table when it does not exist.
func (l *BunLog) CreateTable(ctx context.Context) error {
	if l.db == nil {
		return errors.New("audit: bun log requires a database")
	}
	_, err := l.db.NewCreateTable().Model((*LogEntryModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// LogChange inserts one row per entry.
func (l *BunLog) LogChange(ctx context.Context, entry Entry) error {
	if l.db == nil {
		return errors.New("audit: bun log requires a database")
	}
	if err := entry.validate(); err != nil {
		return err
	}
	entry = entry.normalized(l.now)

	model := &LogEntryModel{
		ID:         uuid.New(),
		ActorID:    entry.ActorID,
		ObjectType: entry.ObjectType,
		ObjectID:   entry.ObjectID,
		Action:     entry.Action,
		Message:    entry.Message,
		MessageKey: entry.MessageKey,
		Metadata:   entry.Metadata,
		OccurredAt: entry.OccurredAt,
	}
	logger := l.logger.WithContext(ctx)
	if _, err := l.db.NewInsert().Model(model).Exec(ctx); err != nil {
		logger.Error("audit.bun.insert_failed", "object_type", entry.ObjectType, "object_id", entry.ObjectID, "error", err)
		return err
	}
	logger.Debug("audit.bun.recorded", "object_type", entry.ObjectType, "object_id", entry.ObjectID, "entry_id", model.ID)
	return nil
}

// List returns entries ordered by occurrence.
func (l *BunLog) List(ctx context.Context) ([]Entry, error) {
	if l.db == nil {
		return nil, errors.New("audit: bun log requires a database")
	}
	var models []LogEntryModel
	if err := l.db.NewSelect().Model(&models).Order("occurred_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(models))
	for _, m := range models {
		out = append(out, Entry{
			ActorID:    m.ActorID,
			ObjectType: m.ObjectType,
			ObjectID:   m.ObjectID,
			Action:     m.Action,
			Message:    m.Message,
			MessageKey: m.MessageKey,
			OccurredAt: m.OccurredAt,
			Metadata:   m.Metadata,
		})
	}
	return out, nil
}
