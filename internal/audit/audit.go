package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-faqs/internal/logging"
	"github.com/goliatone/go-faqs/pkg/interfaces"
)

// ActionChange is recorded when an existing record is modified.
const ActionChange = "change"

// ErrEntryInvalid is returned when an entry lacks the object it refers to.
var ErrEntryInvalid = errors.New("audit: entry requires object type and id")

// Option configures the bun and activity logs.
type Option func(*options)

type options struct {
	logger interfaces.Logger
}

// WithLogger reports write failures and recorded entries.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Entry is a single audit log line keyed by actor and record.
type Entry struct {
	ActorID    uuid.UUID
	ObjectType string
	ObjectID   string
	Action     string
	// Message is rendered at write time. MessageKey keeps the untranslated
	// template so the entry can be re-rendered in another locale later.
	Message    string
	MessageKey string
	OccurredAt time.Time
	Metadata   map[string]any
}

// Log appends entries and returns them in insertion order.
type Log interface {
	LogChange(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
}

func (e Entry) validate() error {
	if e.ObjectType == "" || e.ObjectID == "" {
		return ErrEntryInvalid
	}
	return nil
}

func (e Entry) normalized(now func() time.Time) Entry {
	if e.Action == "" {
		e.Action = ActionChange
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now().UTC()
	}
	e.Metadata = cloneMetadata(e.Metadata)
	return e
}

func cloneMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Tee writes every entry to each log in order, stopping at the first error.
// List reads from the first log.
func Tee(logs ...Log) Log {
	filtered := make([]Log, 0, len(logs))
	for _, log := range logs {
		if log != nil {
			filtered = append(filtered, log)
		}
	}
	return teeLog(filtered)
}

type teeLog []Log

func (t teeLog) LogChange(ctx context.Context, entry Entry) error {
	for _, log := range t {
		if err := log.LogChange(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (t teeLog) List(ctx context.Context) ([]Entry, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return t[0].List(ctx)
}
