package faqs

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-faqs/internal/domain"
)

// bunStore holds the operations shared by topic and question repositories.
//
// Reads whose criteria capture arguments go through ListTx on db: the cache
// decorator keys a criteria func by its code pointer, so every closure built
// from one literal would share a cache entry.
type bunStore[T record] struct {
	repo     repository.Repository[T]
	db       bun.IDB
	resource string
	now      func() time.Time
}

func (s *bunStore[T]) create(ctx context.Context, rec T) (T, error) {
	rec.touch(s.now().UTC())
	if !rec.CurrentStatus().Valid() {
		rec.SetStatus(domain.StatusDrafted)
	}
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s repository error: %w", s.resource, err)
	}
	return created, nil
}

func (s *bunStore[T]) save(ctx context.Context, rec T) error {
	undo := rec.touch(s.now().UTC())
	if _, err := s.repo.Update(ctx, rec); err != nil {
		undo()
		return mapRepositoryError(err, s.resource, rec.RecordID())
	}
	return nil
}

func (s *bunStore[T]) getByID(ctx context.Context, id uuid.UUID) (T, error) {
	rec, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		var zero T
		return zero, mapRepositoryError(err, s.resource, id.String())
	}
	return rec, nil
}

func (s *bunStore[T]) list(ctx context.Context) ([]T, error) {
	records, _, err := s.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Limit(0).Order("sort_order ASC", "created_at ASC")
	}))
	return records, err
}

func (s *bunStore[T]) listByStatus(ctx context.Context, status domain.Status) ([]T, error) {
	records, _, err := s.repo.ListTx(ctx, s.db, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.status = ?", int(status)).Limit(0).Order("sort_order ASC", "created_at ASC")
	}))
	return records, err
}

// findByIDs loads every id in one query and returns them in the order given.
func (s *bunStore[T]) findByIDs(ctx context.Context, ids []string) ([]T, error) {
	canonical, err := canonicalIDs(s.resource, ids)
	if err != nil {
		return nil, err
	}
	if len(canonical) == 0 {
		return []T{}, nil
	}

	records, _, err := s.repo.ListTx(ctx, s.db, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id IN (?)", bun.In(canonical)).Limit(0)
	}))
	if err != nil {
		return nil, err
	}
	return orderByIDs(records, canonical, s.resource)
}

func orderByIDs[T record](records []T, ids []string, resource string) ([]T, error) {
	index := make(map[string]T, len(records))
	for _, rec := range records {
		index[rec.RecordID()] = rec
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		rec, ok := index[id]
		if !ok {
			return nil, &NotFoundError{Resource: resource, Key: id}
		}
		out = append(out, rec)
	}
	return out, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

// BunTopicRepository persists topics with optional caching.
type BunTopicRepository struct {
	store *bunStore[*Topic]
}

var _ TopicRepository = (*BunTopicRepository)(nil)

// NewBunTopicRepository creates a topic repository without caching.
func NewBunTopicRepository(db *bun.DB) *BunTopicRepository {
	return NewBunTopicRepositoryWithCache(db, nil, nil)
}

// NewBunTopicRepositoryWithCache creates a topic repository that reads through the cache.
func NewBunTopicRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTopicRepository {
	return &BunTopicRepository{store: &bunStore[*Topic]{
		repo:     wrapWithCache(NewTopicRepository(db), cacheService, keySerializer),
		db:       db,
		resource: "topic",
		now:      time.Now,
	}}
}

func (r *BunTopicRepository) Create(ctx context.Context, topic *Topic) (*Topic, error) {
	return r.store.create(ctx, topic)
}

func (r *BunTopicRepository) Save(ctx context.Context, topic *Topic) error {
	return r.store.save(ctx, topic)
}

func (r *BunTopicRepository) GetByID(ctx context.Context, id uuid.UUID) (*Topic, error) {
	return r.store.getByID(ctx, id)
}

func (r *BunTopicRepository) GetBySlug(ctx context.Context, slug string) (*Topic, error) {
	topic, err := r.store.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "topic", slug)
	}
	return topic, nil
}

func (r *BunTopicRepository) List(ctx context.Context) ([]*Topic, error) {
	return r.store.list(ctx)
}

func (r *BunTopicRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*Topic, error) {
	return r.store.listByStatus(ctx, status)
}

func (r *BunTopicRepository) FindByIDs(ctx context.Context, ids []string) ([]*Topic, error) {
	return r.store.findByIDs(ctx, ids)
}

// BunQuestionRepository persists questions with optional caching.
type BunQuestionRepository struct {
	store *bunStore[*Question]
}

var _ QuestionRepository = (*BunQuestionRepository)(nil)

// NewBunQuestionRepository creates a question repository without caching.
func NewBunQuestionRepository(db *bun.DB) *BunQuestionRepository {
	return NewBunQuestionRepositoryWithCache(db, nil, nil)
}

// NewBunQuestionRepositoryWithCache creates a question repository that reads through the cache.
func NewBunQuestionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunQuestionRepository {
	return &BunQuestionRepository{store: &bunStore[*Question]{
		repo:     wrapWithCache(NewQuestionRepository(db), cacheService, keySerializer),
		db:       db,
		resource: "question",
		now:      time.Now,
	}}
}

func (r *BunQuestionRepository) Create(ctx context.Context, question *Question) (*Question, error) {
	return r.store.create(ctx, question)
}

func (r *BunQuestionRepository) Save(ctx context.Context, question *Question) error {
	return r.store.save(ctx, question)
}

func (r *BunQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	return r.store.getByID(ctx, id)
}

func (r *BunQuestionRepository) List(ctx context.Context) ([]*Question, error) {
	return r.store.list(ctx)
}

func (r *BunQuestionRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*Question, error) {
	return r.store.listByStatus(ctx, status)
}

func (r *BunQuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]*Question, error) {
	return r.store.findByIDs(ctx, ids)
}
