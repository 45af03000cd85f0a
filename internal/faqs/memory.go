package faqs

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-faqs/internal/domain"
)

// MemoryTopicRepository is an in-memory implementation for scaffolding and tests.
type MemoryTopicRepository struct {
	mu        sync.RWMutex
	topics    map[uuid.UUID]*Topic
	slugIndex map[string]uuid.UUID
	now       func() time.Time
}

var _ TopicRepository = (*MemoryTopicRepository)(nil)

// NewMemoryTopicRepository creates an empty in-memory topic repository.
func NewMemoryTopicRepository() *MemoryTopicRepository {
	return &MemoryTopicRepository{
		topics:    make(map[uuid.UUID]*Topic),
		slugIndex: make(map[string]uuid.UUID),
		now:       time.Now,
	}
}

// Create inserts the supplied topic.
func (m *MemoryTopicRepository) Create(_ context.Context, topic *Topic) (*Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(topic.Slug)
	if _, exists := m.slugIndex[key]; exists {
		return nil, ErrSlugExists
	}
	copied := cloneTopic(topic)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if !copied.Status.Valid() {
		copied.Status = domain.StatusDrafted
	}
	copied.touch(m.now().UTC())
	m.topics[copied.ID] = copied
	m.slugIndex[key] = copied.ID
	return cloneTopic(copied), nil
}

// Save replaces a stored topic.
func (m *MemoryTopicRepository) Save(_ context.Context, topic *Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.topics[topic.ID]
	if !ok {
		return &NotFoundError{Resource: "topic", Key: topic.ID.String()}
	}
	topic.touch(m.now().UTC())
	copied := cloneTopic(topic)
	if existing.Slug != copied.Slug {
		delete(m.slugIndex, strings.ToLower(existing.Slug))
		m.slugIndex[strings.ToLower(copied.Slug)] = copied.ID
	}
	m.topics[copied.ID] = copied
	return nil
}

// GetByID retrieves a topic by identifier.
func (m *MemoryTopicRepository) GetByID(_ context.Context, id uuid.UUID) (*Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.topics[id]
	if !ok {
		return nil, &NotFoundError{Resource: "topic", Key: id.String()}
	}
	return cloneTopic(rec), nil
}

// GetBySlug retrieves a topic by slug, returning NotFoundError when absent.
func (m *MemoryTopicRepository) GetBySlug(_ context.Context, slug string) (*Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[strings.ToLower(slug)]
	if !ok {
		return nil, &NotFoundError{Resource: "topic", Key: slug}
	}
	return cloneTopic(m.topics[id]), nil
}

// List returns all topics ordered by sort order.
func (m *MemoryTopicRepository) List(_ context.Context) ([]*Topic, error) {
	return m.filter(func(*Topic) bool { return true }), nil
}

// ListByStatus returns the topics currently in status.
func (m *MemoryTopicRepository) ListByStatus(_ context.Context, status domain.Status) ([]*Topic, error) {
	return m.filter(func(t *Topic) bool { return t.Status == status }), nil
}

// FindByIDs returns the topics for ids in the order given.
func (m *MemoryTopicRepository) FindByIDs(_ context.Context, ids []string) ([]*Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	canonical, err := canonicalIDs("topic", ids)
	if err != nil {
		return nil, err
	}
	out := make([]*Topic, 0, len(canonical))
	for _, id := range canonical {
		rec, ok := m.topics[uuid.MustParse(id)]
		if !ok {
			return nil, &NotFoundError{Resource: "topic", Key: id}
		}
		out = append(out, cloneTopic(rec))
	}
	return out, nil
}

func (m *MemoryTopicRepository) filter(keep func(*Topic) bool) []*Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Topic, 0, len(m.topics))
	for _, rec := range m.topics {
		if keep(rec) {
			out = append(out, cloneTopic(rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneTopic(src *Topic) *Topic {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

// MemoryQuestionRepository stores questions in-memory.
type MemoryQuestionRepository struct {
	mu        sync.RWMutex
	questions map[uuid.UUID]*Question
	now       func() time.Time
}

var _ QuestionRepository = (*MemoryQuestionRepository)(nil)

// NewMemoryQuestionRepository constructs the repository.
func NewMemoryQuestionRepository() *MemoryQuestionRepository {
	return &MemoryQuestionRepository{
		questions: make(map[uuid.UUID]*Question),
		now:       time.Now,
	}
}

// Create inserts the supplied question.
func (m *MemoryQuestionRepository) Create(_ context.Context, question *Question) (*Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneQuestion(question)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if !copied.Status.Valid() {
		copied.Status = domain.StatusDrafted
	}
	copied.touch(m.now().UTC())
	m.questions[copied.ID] = copied
	return cloneQuestion(copied), nil
}

// Save replaces a stored question.
func (m *MemoryQuestionRepository) Save(_ context.Context, question *Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[question.ID]; !ok {
		return &NotFoundError{Resource: "question", Key: question.ID.String()}
	}
	question.touch(m.now().UTC())
	m.questions[question.ID] = cloneQuestion(question)
	return nil
}

// GetByID retrieves a question by identifier.
func (m *MemoryQuestionRepository) GetByID(_ context.Context, id uuid.UUID) (*Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.questions[id]
	if !ok {
		return nil, &NotFoundError{Resource: "question", Key: id.String()}
	}
	return cloneQuestion(rec), nil
}

// List returns all questions ordered by sort order.
func (m *MemoryQuestionRepository) List(_ context.Context) ([]*Question, error) {
	return m.filter(func(*Question) bool { return true }), nil
}

// ListByStatus returns the questions currently in status.
func (m *MemoryQuestionRepository) ListByStatus(_ context.Context, status domain.Status) ([]*Question, error) {
	return m.filter(func(q *Question) bool { return q.Status == status }), nil
}

// FindByIDs returns the questions for ids in the order given.
func (m *MemoryQuestionRepository) FindByIDs(_ context.Context, ids []string) ([]*Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	canonical, err := canonicalIDs("question", ids)
	if err != nil {
		return nil, err
	}
	out := make([]*Question, 0, len(canonical))
	for _, id := range canonical {
		rec, ok := m.questions[uuid.MustParse(id)]
		if !ok {
			return nil, &NotFoundError{Resource: "question", Key: id}
		}
		out = append(out, cloneQuestion(rec))
	}
	return out, nil
}

func (m *MemoryQuestionRepository) filter(keep func(*Question) bool) []*Question {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Question, 0, len(m.questions))
	for _, rec := range m.questions {
		if keep(rec) {
			out = append(out, cloneQuestion(rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneQuestion(src *Question) *Question {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
