package audit

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-faqs/pkg/interfaces"
)

const activityChannel = "faqs.admin"

// ActivityLog forwards entries to a go-users activity sink. It keeps no state
// of its own, so List always returns an empty slice.
type ActivityLog struct {
	sink   interfaces.ActivitySink
	now    func() time.Time
	logger interfaces.Logger
}

var _ Log = (*ActivityLog)(nil)

// NewActivityLog adapts sink to the audit log contract.
func NewActivityLog(sink interfaces.ActivitySink, opts ...Option) *ActivityLog {
	o := applyOptions(opts)
	return &ActivityLog{sink: sink, now: time.Now, logger: o.logger}
}

// LogChange maps the entry onto an ActivityRecord.
func (l *ActivityLog) LogChange(ctx context.Context, entry Entry) error {
	if l.sink == nil {
		return errors.New("audit: activity log requires a sink")
	}
	if err := entry.validate(); err != nil {
		return err
	}
	entry = entry.normalized(l.now)

	data := cloneMetadata(entry.Metadata)
	if data == nil {
		data = map[string]any{}
	}
	data["message"] = entry.Message
	if entry.MessageKey != "" {
		data["message_key"] = entry.MessageKey
	}

	err := l.sink.Log(ctx, interfaces.ActivityRecord{
		ActorID:    entry.ActorID,
		UserID:     entry.ActorID,
		Verb:       entry.Action,
		ObjectType: entry.ObjectType,
		ObjectID:   entry.ObjectID,
		Channel:    activityChannel,
		Data:       data,
		OccurredAt: entry.OccurredAt,
	})
	if err != nil {
		l.logger.WithContext(ctx).Error("audit.activity.forward_failed", "object_type", entry.ObjectType, "object_id", entry.ObjectID, "error", err)
	}
	return err
}

// List is not supported by activity sinks.
func (l *ActivityLog) List(context.Context) ([]Entry, error) {
	return []Entry{}, nil
}
