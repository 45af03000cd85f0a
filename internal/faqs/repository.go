package faqs

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-faqs/internal/domain"
)

// TopicRepository stores topics.
type TopicRepository interface {
	Create(ctx context.Context, topic *Topic) (*Topic, error)
	Save(ctx context.Context, topic *Topic) error
	GetByID(ctx context.Context, id uuid.UUID) (*Topic, error)
	GetBySlug(ctx context.Context, slug string) (*Topic, error)
	List(ctx context.Context) ([]*Topic, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*Topic, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Topic, error)
}

// QuestionRepository stores questions.
type QuestionRepository interface {
	Create(ctx context.Context, question *Question) (*Question, error)
	Save(ctx context.Context, question *Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*Question, error)
	List(ctx context.Context) ([]*Question, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Question, error)
}

// NewTopicRepository builds the go-repository-bun repository for topics.
func NewTopicRepository(db *bun.DB) repository.Repository[*Topic] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Topic]{
		NewRecord: func() *Topic { return &Topic{} },
		GetID: func(t *Topic) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Topic, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(t *Topic) string {
			return t.Slug
		},
	})
}

// NewQuestionRepository builds the go-repository-bun repository for questions.
func NewQuestionRepository(db *bun.DB) repository.Repository[*Question] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Question]{
		NewRecord: func() *Question { return &Question{} },
		GetID: func(q *Question) uuid.UUID {
			return q.ID
		},
		SetID: func(q *Question, id uuid.UUID) {
			q.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(q *Question) string {
			if q == nil {
				return ""
			}
			return q.ID.String()
		},
	})
}

// canonicalIDs parses ids into their canonical uuid form, dropping repeats
// and keeping first-seen order.
func canonicalIDs(resource string, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		uid, err := uuid.Parse(strings.TrimSpace(id))
		if err != nil {
			return nil, &NotFoundError{Resource: resource, Key: id}
		}
		key := uid.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}
