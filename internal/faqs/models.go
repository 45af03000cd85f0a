package faqs

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-faqs/internal/admin"
	"github.com/goliatone/go-faqs/internal/domain"
)

var (
	// TopicMeta describes topics in admin messages.
	TopicMeta = admin.ModelMeta{Name: "topic", VerboseName: "topic", VerboseNamePlural: "topics"}
	// QuestionMeta describes questions in admin messages.
	QuestionMeta = admin.ModelMeta{Name: "question", VerboseName: "question", VerboseNamePlural: "questions"}
)

// Topic groups related questions.
type Topic struct {
	bun.BaseModel `bun:"table:faq_topics,alias:ft"`

	ID          uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Title       string        `bun:"title,notnull" json:"title"`
	Slug        string        `bun:"slug,notnull,unique" json:"slug"`
	Description string        `bun:"description" json:"description,omitempty"`
	Status      domain.Status `bun:"status,notnull,type:integer" json:"status"`
	SortOrder   int           `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt   time.Time     `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time     `bun:"updated_at,notnull" json:"updated_at"`
}

// Question is a single FAQ entry.
type Question struct {
	bun.BaseModel `bun:"table:faq_questions,alias:fq"`

	ID        uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	TopicID   uuid.UUID     `bun:"topic_id,notnull,type:uuid" json:"topic_id"`
	Text      string        `bun:"text,notnull" json:"text"`
	Slug      string        `bun:"slug,notnull" json:"slug"`
	Answer    string        `bun:"answer" json:"answer,omitempty"`
	Status    domain.Status `bun:"status,notnull,type:integer" json:"status"`
	SortOrder int           `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time     `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time     `bun:"updated_at,notnull" json:"updated_at"`
}

var (
	_ admin.Record = (*Topic)(nil)
	_ admin.Record = (*Question)(nil)
)

func (t *Topic) RecordID() string                  { return t.ID.String() }
func (t *Topic) CurrentStatus() domain.Status      { return t.Status }
func (t *Topic) SetStatus(status domain.Status)    { t.Status = status }
func (q *Question) RecordID() string               { return q.ID.String() }
func (q *Question) CurrentStatus() domain.Status   { return q.Status }
func (q *Question) SetStatus(status domain.Status) { q.Status = status }

// Models lists every bun model owned by this package.
func Models() []any {
	return []any{(*Topic)(nil), (*Question)(nil)}
}

// touch stamps the timestamps and returns a func that puts the old ones back.
func (t *Topic) touch(now time.Time) (undo func()) {
	created, updated := t.CreatedAt, t.UpdatedAt
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return func() { t.CreatedAt, t.UpdatedAt = created, updated }
}

func (q *Question) touch(now time.Time) (undo func()) {
	created, updated := q.CreatedAt, q.UpdatedAt
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
	return func() { q.CreatedAt, q.UpdatedAt = created, updated }
}

type record interface {
	admin.Record
	touch(now time.Time) (undo func())
}
