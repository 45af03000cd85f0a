package faqs_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-faqs/internal/admin"
	"github.com/goliatone/go-faqs/internal/audit"
	"github.com/goliatone/go-faqs/internal/domain"
	"github.com/goliatone/go-faqs/internal/faqs"
	"github.com/goliatone/go-faqs/internal/identity"
	"github.com/goliatone/go-faqs/internal/messages"
	"github.com/goliatone/go-faqs/pkg/testsupport"
)

func TestServiceCreateTopic_NormalisesSlugAndDrafts(t *testing.T) {
	ctx := context.Background()
	svc := faqs.NewService(faqs.NewMemoryTopicRepository(), faqs.NewMemoryQuestionRepository())

	topic, err := svc.CreateTopic(ctx, faqs.CreateTopicRequest{Title: "Billing Payments"})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if topic.Slug != "billing-payments" {
		t.Fatalf("expected normalised slug, got %q", topic.Slug)
	}
	if topic.ID != identity.TopicUUID("billing-payments") {
		t.Fatalf("expected deterministic id, got %s", topic.ID)
	}
	if topic.Status != domain.StatusDrafted {
		t.Fatalf("expected drafted status, got %v", topic.Status)
	}
	if topic.CreatedAt.IsZero() || topic.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}

	if _, err := svc.CreateTopic(ctx, faqs.CreateTopicRequest{Title: "Billing payments", Slug: "Billing Payments"}); !errors.Is(err, faqs.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestServiceCreateTopic_RequiresTitle(t *testing.T) {
	svc := faqs.NewService(faqs.NewMemoryTopicRepository(), faqs.NewMemoryQuestionRepository())
	if _, err := svc.CreateTopic(context.Background(), faqs.CreateTopicRequest{Title: "  "}); err == nil {
		t.Fatalf("expected validation error for blank title")
	}
}

func TestServiceCreateQuestion_RequiresExistingTopic(t *testing.T) {
	ctx := context.Background()
	svc := faqs.NewService(faqs.NewMemoryTopicRepository(), faqs.NewMemoryQuestionRepository())

	if _, err := svc.CreateQuestion(ctx, faqs.CreateQuestionRequest{Text: "How do refunds work?"}); err == nil {
		t.Fatalf("expected validation error without topic id")
	}

	_, err := svc.CreateQuestion(ctx, faqs.CreateQuestionRequest{TopicID: uuid.New(), Text: "How do refunds work?"})
	if !faqs.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}

	topic, err := svc.CreateTopic(ctx, faqs.CreateTopicRequest{Title: "Refunds"})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	question, err := svc.CreateQuestion(ctx, faqs.CreateQuestionRequest{TopicID: topic.ID, Text: "How do refunds work?", Answer: "Within 30 days."})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if question.Slug != "how-do-refunds-work" {
		t.Fatalf("unexpected question slug %q", question.Slug)
	}
	if question.ID != identity.QuestionUUID(topic.ID, question.Slug) {
		t.Fatalf("expected deterministic question id")
	}
}

func TestMemoryTopicRepository_FindByIDsKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := faqs.NewMemoryTopicRepository()

	first, _ := repo.Create(ctx, &faqs.Topic{Title: "One", Slug: "one"})
	second, _ := repo.Create(ctx, &faqs.Topic{Title: "Two", Slug: "two"})

	found, err := repo.FindByIDs(ctx, []string{second.RecordID(), first.RecordID()})
	if err != nil {
		t.Fatalf("find by ids: %v", err)
	}
	if len(found) != 2 || found[0].ID != second.ID || found[1].ID != first.ID {
		t.Fatalf("expected requested order, got %+v", found)
	}

	if _, err := repo.FindByIDs(ctx, []string{uuid.NewString()}); !faqs.IsNotFound(err) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestMemoryRepositories_PublishThroughAdmin(t *testing.T) {
	ctx := context.Background()
	topics := faqs.NewMemoryTopicRepository()
	svc := faqs.NewService(topics, faqs.NewMemoryQuestionRepository())

	var ids []string
	for _, title := range []string{"Accounts", "Shipping"} {
		topic, err := svc.CreateTopic(ctx, faqs.CreateTopicRequest{Title: title})
		if err != nil {
			t.Fatalf("create topic: %v", err)
		}
		ids = append(ids, topic.RecordID())
	}

	log := audit.NewMemoryLog()
	store := messages.NewSessionStore()
	topicAdmin := admin.New[*faqs.Topic](faqs.TopicMeta, topics,
		admin.WithFinder[*faqs.Topic](topics),
		admin.WithAuditLog[*faqs.Topic](log),
		admin.WithMessenger[*faqs.Topic](store),
	)

	summary, err := topicAdmin.DispatchIDs(ctx, admin.Request{ActorID: uuid.New(), SessionID: "s1"}, admin.ActionPublish, ids)
	if err != nil {
		t.Fatalf("dispatch publish: %v", err)
	}
	if summary.Message != "2 topics were successfully published." {
		t.Fatalf("unexpected summary %q", summary.Message)
	}

	published, err := topics.ListByStatus(ctx, domain.StatusPublished)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published topics, got %d", len(published))
	}
	if entries := log.Entries(); len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
}

func TestBunRepositories_WithSQLiteAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newTestDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	topics := faqs.NewBunTopicRepositoryWithCache(bunDB, cacheService, keySerializer)
	questions := faqs.NewBunQuestionRepositoryWithCache(bunDB, cacheService, keySerializer)
	svc := faqs.NewService(topics, questions)

	topic, err := topics.Create(ctx, &faqs.Topic{ID: uuid.New(), Title: "Getting Started", Slug: "getting-started"})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if _, err := svc.CreateQuestion(ctx, faqs.CreateQuestionRequest{TopicID: topic.ID, Text: "Where do I sign up?"}); err != nil {
		t.Fatalf("create question: %v", err)
	}

	if _, err := topics.GetByID(ctx, topic.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	cached, err := topics.GetByID(ctx, topic.ID)
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if cached.Status != domain.StatusDrafted {
		t.Fatalf("expected drafted status from storage, got %v", cached.Status)
	}

	bySlug, err := topics.GetBySlug(ctx, "getting-started")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != topic.ID {
		t.Fatalf("expected slug lookup to return %s, got %s", topic.ID, bySlug.ID)
	}

	if _, err := topics.GetByID(ctx, uuid.New()); !faqs.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}

	list, err := questions.List(ctx)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 question, got %d", len(list))
	}
}

func TestBunRepositories_CachedSelectionsStayDistinct(t *testing.T) {
	ctx := context.Background()
	bunDB := newTestDB(t)

	cacheService, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	topics := faqs.NewBunTopicRepositoryWithCache(bunDB, cacheService, repocache.NewDefaultKeySerializer())

	var ids []string
	for _, slug := range []string{"orders", "returns", "gift-cards"} {
		topic, err := topics.Create(ctx, &faqs.Topic{ID: uuid.New(), Title: slug, Slug: slug})
		if err != nil {
			t.Fatalf("create topic %s: %v", slug, err)
		}
		ids = append(ids, topic.RecordID())
	}

	drafted, err := topics.ListByStatus(ctx, domain.StatusDrafted)
	if err != nil {
		t.Fatalf("list drafted: %v", err)
	}
	published, err := topics.ListByStatus(ctx, domain.StatusPublished)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(drafted) != 3 || len(published) != 0 {
		t.Fatalf("expected 3 drafted and 0 published, got %d and %d", len(drafted), len(published))
	}

	for _, id := range ids[:2] {
		found, err := topics.FindByIDs(ctx, []string{id})
		if err != nil {
			t.Fatalf("find %s: %v", id, err)
		}
		if len(found) != 1 || found[0].RecordID() != id {
			t.Fatalf("expected topic %s, got %+v", id, found)
		}
	}

	store := messages.NewSessionStore()
	topicAdmin := admin.New[*faqs.Topic](faqs.TopicMeta, topics,
		admin.WithFinder[*faqs.Topic](topics),
		admin.WithMessenger[*faqs.Topic](store),
	)
	req := admin.Request{ActorID: uuid.New(), SessionID: "s1"}

	first, err := topicAdmin.DispatchIDs(ctx, req, admin.ActionPublish, []string{ids[0], ids[0]})
	if err != nil {
		t.Fatalf("publish first selection: %v", err)
	}
	if first.Message != "1 topic was successfully published." {
		t.Fatalf("unexpected summary %q", first.Message)
	}
	if _, err := topicAdmin.DispatchIDs(ctx, req, admin.ActionPublish, []string{ids[1]}); err != nil {
		t.Fatalf("publish second selection: %v", err)
	}

	published, err = topics.ListByStatus(ctx, domain.StatusPublished)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published topics, got %d", len(published))
	}
	stillDrafted, err := topics.ListByStatus(ctx, domain.StatusDrafted)
	if err != nil {
		t.Fatalf("list drafted: %v", err)
	}
	if len(stillDrafted) != 1 || stillDrafted[0].RecordID() != ids[2] {
		t.Fatalf("expected only %s drafted, got %+v", ids[2], stillDrafted)
	}
}

func TestBunRepositories_FindByIDsBeyondDefaultPage(t *testing.T) {
	ctx := context.Background()
	bunDB := newTestDB(t)
	questions := faqs.NewBunQuestionRepository(bunDB)
	topicID := uuid.New()

	ids := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		question, err := questions.Create(ctx, &faqs.Question{ID: uuid.New(), TopicID: topicID, Text: fmt.Sprintf("Question %d?", i)})
		if err != nil {
			t.Fatalf("create question %d: %v", i, err)
		}
		ids = append(ids, question.RecordID())
	}

	found, err := questions.FindByIDs(ctx, ids)
	if err != nil {
		t.Fatalf("find by ids: %v", err)
	}
	if len(found) != len(ids) {
		t.Fatalf("expected %d questions, got %d", len(ids), len(found))
	}
	all, err := questions.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != len(ids) {
		t.Fatalf("expected %d questions listed, got %d", len(ids), len(all))
	}
}

func TestBunRepositories_SaveFailureKeepsTimestamps(t *testing.T) {
	ctx := context.Background()
	bunDB := newTestDB(t)
	topics := faqs.NewBunTopicRepository(bunDB)

	topic, err := topics.Create(ctx, &faqs.Topic{ID: uuid.New(), Title: "Invoices", Slug: "invoices"})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	created, updated := topic.CreatedAt, topic.UpdatedAt

	if err := bunDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	topic.Status = domain.StatusPublished
	if err := topics.Save(ctx, topic); err == nil {
		t.Fatal("expected save on a closed database to fail")
	}
	if !topic.CreatedAt.Equal(created) || !topic.UpdatedAt.Equal(updated) {
		t.Fatalf("expected timestamps %v/%v, got %v/%v", created, updated, topic.CreatedAt, topic.UpdatedAt)
	}
}

func TestMemoryRepositories_FindByIDsDropsRepeats(t *testing.T) {
	ctx := context.Background()
	repo := faqs.NewMemoryQuestionRepository()
	question, err := repo.Create(ctx, &faqs.Question{ID: uuid.New(), TopicID: uuid.New(), Text: "Can I pause my plan?"})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	upper := strings.ToUpper(question.RecordID())

	found, err := repo.FindByIDs(ctx, []string{question.RecordID(), upper})
	if err != nil {
		t.Fatalf("find by ids: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected the repeated id to load once, got %d", len(found))
	}
}

func TestBunRepositories_RemoveThroughAdmin(t *testing.T) {
	ctx := context.Background()
	bunDB := newTestDB(t)

	topics := faqs.NewBunTopicRepository(bunDB)
	svc := faqs.NewService(topics, faqs.NewBunQuestionRepository(bunDB))

	var ids []string
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		topic, err := svc.CreateTopic(ctx, faqs.CreateTopicRequest{Title: title})
		if err != nil {
			t.Fatalf("create topic %s: %v", title, err)
		}
		ids = append(ids, topic.RecordID())
	}

	log := audit.NewBunLog(bunDB)
	if err := log.CreateTable(ctx); err != nil {
		t.Fatalf("create audit table: %v", err)
	}
	store := messages.NewSessionStore()
	topicAdmin := admin.New[*faqs.Topic](faqs.TopicMeta, topics,
		admin.WithFinder[*faqs.Topic](topics),
		admin.WithAuditLog[*faqs.Topic](log),
		admin.WithMessenger[*faqs.Topic](store),
	)

	selected := []string{ids[2], ids[0]}
	summary, err := topicAdmin.DispatchIDs(ctx, admin.Request{ActorID: uuid.New(), SessionID: "s1"}, admin.ActionRemove, selected)
	if err != nil {
		t.Fatalf("dispatch remove: %v", err)
	}
	if summary.Count != 2 || summary.Message != "2 topics were successfully removed." {
		t.Fatalf("unexpected summary %+v", summary)
	}

	removed, err := topics.ListByStatus(ctx, domain.StatusRemoved)
	if err != nil {
		t.Fatalf("list removed: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed topics, got %d", len(removed))
	}
	drafted, err := topics.ListByStatus(ctx, domain.StatusDrafted)
	if err != nil {
		t.Fatalf("list drafted: %v", err)
	}
	if len(drafted) != 1 || drafted[0].RecordID() != ids[1] {
		t.Fatalf("expected only the unselected topic to stay drafted, got %+v", drafted)
	}

	entries, err := log.List(ctx)
	if err != nil {
		t.Fatalf("list audit entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Message != "Changed status to 'removed'." {
			t.Fatalf("unexpected audit message %q", entry.Message)
		}
	}

	flashed := store.Pop("s1")
	if len(flashed) != 1 || flashed[0].Text != summary.Message {
		t.Fatalf("expected one flashed summary, got %+v", flashed)
	}
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = bunDB.Close()
	})

	for _, model := range faqs.Models() {
		if _, err := bunDB.NewCreateTable().Model(model).IfNotExists().Exec(context.Background()); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return bunDB
}
