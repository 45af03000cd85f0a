package faqs

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-faqs/internal/domain"
	"github.com/goliatone/go-faqs/internal/identity"
)

// CreateTopicRequest captures the fields required to add a topic.
type CreateTopicRequest struct {
	Title       string
	Slug        string
	Description string
	SortOrder   int
}

// Validate ensures the title is present.
func (r CreateTopicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.ErrorObject(
			validation.NewError("faqs.topic.title_required", ErrTitleRequired.Error()),
		)),
	)
}

// CreateQuestionRequest captures the fields required to add a question.
type CreateQuestionRequest struct {
	TopicID   uuid.UUID
	Text      string
	Slug      string
	Answer    string
	SortOrder int
}

// Validate ensures the topic and text are present.
func (r CreateQuestionRequest) Validate() error {
	errs := validation.Errors{}
	if r.TopicID == uuid.Nil {
		errs["topic_id"] = validation.NewError("faqs.question.topic_required", ErrTopicRequired.Error())
	}
	if strings.TrimSpace(r.Text) == "" {
		errs["text"] = validation.NewError("faqs.question.text_required", "text is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Service creates FAQ records. Status changes go through the admin actions.
type Service struct {
	topics    TopicRepository
	questions QuestionRepository
}

// NewService wires the repositories.
func NewService(topics TopicRepository, questions QuestionRepository) *Service {
	return &Service{topics: topics, questions: questions}
}

// CreateTopic stores a drafted topic with a normalised slug and a
// deterministic id derived from it.
func (s *Service) CreateTopic(ctx context.Context, req CreateTopicRequest) (*Topic, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slugValue, err := normalizeSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}
	if _, err := s.topics.GetBySlug(ctx, slugValue); err == nil {
		return nil, ErrSlugExists
	} else if !IsNotFound(err) {
		return nil, err
	}
	return s.topics.Create(ctx, &Topic{
		ID:          identity.TopicUUID(slugValue),
		Title:       strings.TrimSpace(req.Title),
		Slug:        slugValue,
		Description: strings.TrimSpace(req.Description),
		Status:      domain.StatusDrafted,
		SortOrder:   req.SortOrder,
	})
}

// CreateQuestion stores a drafted question under an existing topic.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*Question, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.topics.GetByID(ctx, req.TopicID); err != nil {
		return nil, err
	}
	slugValue, err := normalizeSlug(req.Slug, req.Text)
	if err != nil {
		return nil, err
	}
	return s.questions.Create(ctx, &Question{
		ID:        identity.QuestionUUID(req.TopicID, slugValue),
		TopicID:   req.TopicID,
		Text:      strings.TrimSpace(req.Text),
		Slug:      slugValue,
		Answer:    strings.TrimSpace(req.Answer),
		Status:    domain.StatusDrafted,
		SortOrder: req.SortOrder,
	})
}

// Topics exposes the topic repository.
func (s *Service) Topics() TopicRepository { return s.topics }

// Questions exposes the question repository.
func (s *Service) Questions() QuestionRepository { return s.questions }

func normalizeSlug(explicit, fallback string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = strings.TrimSpace(fallback)
	}
	normalized, err := slug.Normalize(source)
	if err != nil {
		return "", errors.Join(ErrSlugInvalid, err)
	}
	if normalized == "" {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}
