package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/goliatone/go-faqs/internal/domain"
)

var (
	// ErrUnknownAction is returned when a dispatched action name is not registered.
	ErrUnknownAction = errors.New("admin: unknown action")
	// ErrDuplicateAction is returned when two actions share a name.
	ErrDuplicateAction = errors.New("admin: duplicate action")
	// ErrUnknownModel is returned when the site has no admin for a model.
	ErrUnknownModel = errors.New("admin: unknown model")
	// ErrDuplicateModel is returned when a model is registered twice.
	ErrDuplicateModel = errors.New("admin: duplicate model")
	// ErrFinderRequired is returned when records are dispatched by id without a finder.
	ErrFinderRequired = errors.New("admin: finder required to load records by id")
)

// Record is a persisted item that carries a status.
type Record interface {
	RecordID() string
	CurrentStatus() domain.Status
	SetStatus(status domain.Status)
}

// Saver persists a single record.
type Saver[T Record] interface {
	Save(ctx context.Context, record T) error
}

// Finder loads records by id, preserving the order of ids.
type Finder[T Record] interface {
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
}

// ModelMeta describes a record type for messages and audit entries.
type ModelMeta struct {
	Name              string
	VerboseName       string
	VerboseNamePlural string
}

// Request carries the acting user and the channel that receives the summary.
type Request struct {
	ActorID   uuid.UUID
	SessionID string
	Locale    string
}

// Summary reports the outcome of a bulk action. It signals the caller to
// redisplay the current listing.
type Summary struct {
	Count   int
	Status  domain.Status
	Message string
}

// MenuEntry is one option of the selection-action menu.
type MenuEntry struct {
	Name  string
	Label string
}
