package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-faqs/internal/admin"
	"github.com/goliatone/go-faqs/internal/audit"
	"github.com/goliatone/go-faqs/internal/commands/statuscmd"
	"github.com/goliatone/go-faqs/internal/faqs"
	"github.com/goliatone/go-faqs/internal/i18n"
	"github.com/goliatone/go-faqs/internal/logging"
	"github.com/goliatone/go-faqs/internal/logging/gologger"
	"github.com/goliatone/go-faqs/internal/messages"
	"github.com/goliatone/go-faqs/internal/runtimeconfig"
	"github.com/goliatone/go-faqs/internal/storage"
	"github.com/goliatone/go-faqs/pkg/interfaces"
)

// ErrActivitySinkRequired is returned when the activity audit sink is
// selected without providing a sink.
var ErrActivitySinkRequired = errors.New("di: activity audit sink requires WithActivitySink")

// Container wires the FAQ admin module.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	activitySink   interfaces.ActivitySink
	translator     interfaces.Translator

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	auditLog audit.Log
	messages *messages.SessionStore

	topicRepo    faqs.TopicRepository
	questionRepo faqs.QuestionRepository
	faqSvc       *faqs.Service

	topicAdmin    *admin.ModelAdmin[*faqs.Topic]
	questionAdmin *admin.ModelAdmin[*faqs.Question]
	site          *admin.Site
	bulkHandler   *statuscmd.BulkStatusHandler

	now func() time.Time
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an existing database instead of opening one from config.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache used when caching is enabled.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActivitySink forwards audit entries to a go-users activity sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithTranslator replaces the catalog-backed translator.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) {
		c.translator = translator
	}
}

// WithAuditLog replaces the audit log selected by config.
func WithAuditLog(log audit.Log) Option {
	return func(c *Container) {
		c.auditLog = log
	}
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and assembles every dependency.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		messages: messages.NewSessionStore(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func() error{
		c.configureLoggerProvider,
		c.configureTranslator,
		c.configureStorage,
		c.configureAuditLog,
		c.configureAdmins,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) != runtimeconfig.LoggingGoLogger {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureTranslator() error {
	if c.translator != nil {
		return nil
	}
	var (
		fixture *i18n.Fixture
		err     error
	)
	if path := strings.TrimSpace(c.Config.I18N.FixturePath); path != "" {
		fixture, err = i18n.NewLoader(path).Load(context.Background())
	} else {
		fixture, err = i18n.DefaultFixture()
	}
	if err != nil {
		return fmt.Errorf("di: load translations: %w", err)
	}
	catalog := i18n.NewCatalog()
	if err := fixture.Apply(catalog, c.Config.I18N.Locales...); err != nil {
		return fmt.Errorf("di: apply translations: %w", err)
	}
	c.translator = i18n.NewService(catalog, c.Config.DefaultLocale)
	return nil
}

func (c *Container) configureStorage() error {
	logger := logging.StorageLogger(c.loggerProvider)

	if strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) == runtimeconfig.StorageMemory {
		topics := faqs.NewMemoryTopicRepository()
		c.topicRepo = topics
		c.questionRepo = faqs.NewMemoryQuestionRepository()
		c.faqSvc = faqs.NewService(c.topicRepo, c.questionRepo)
		logger.Debug("storage.configured", "provider", runtimeconfig.StorageMemory)
		return nil
	}

	if c.bunDB == nil {
		db, err := storage.Open(context.Background(), c.Config.Storage, logger)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if c.Config.Cache.Enabled && (c.cacheService == nil || c.keySerializer == nil) {
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = c.Config.Cache.TTL
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("di: cache service: %w", err)
		}
		c.cacheService = service
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}

	if c.Config.Cache.Enabled {
		c.topicRepo = faqs.NewBunTopicRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.questionRepo = faqs.NewBunQuestionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.topicRepo = faqs.NewBunTopicRepository(c.bunDB)
		c.questionRepo = faqs.NewBunQuestionRepository(c.bunDB)
	}
	c.faqSvc = faqs.NewService(c.topicRepo, c.questionRepo)
	logger.Debug("storage.configured", "provider", runtimeconfig.StorageBun, "cache", c.Config.Cache.Enabled)
	return nil
}

func (c *Container) configureAuditLog() error {
	if c.auditLog != nil {
		return nil
	}
	withLogger := audit.WithLogger(logging.AuditLogger(c.loggerProvider))
	var primary audit.Log
	if c.bunDB != nil && strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) == runtimeconfig.StorageBun {
		primary = audit.NewBunLog(c.bunDB, withLogger)
	} else {
		primary = audit.NewMemoryLog()
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Audit.Sink)) {
	case runtimeconfig.AuditMemory:
		c.auditLog = audit.NewMemoryLog()
	case runtimeconfig.AuditActivity:
		if c.activitySink == nil {
			return ErrActivitySinkRequired
		}
		c.auditLog = audit.Tee(primary, audit.NewActivityLog(c.activitySink, withLogger))
	default:
		c.auditLog = primary
	}
	return nil
}

func (c *Container) configureAdmins() error {
	adminLogger := logging.AdminLogger(c.loggerProvider)

	c.topicAdmin = admin.New[*faqs.Topic](faqs.TopicMeta, c.topicRepo,
		admin.WithFinder[*faqs.Topic](c.topicRepo),
		admin.WithAuditLog[*faqs.Topic](c.auditLog),
		admin.WithMessenger[*faqs.Topic](c.messages),
		admin.WithTranslator[*faqs.Topic](c.translator),
		admin.WithLogger[*faqs.Topic](adminLogger),
		admin.WithClock[*faqs.Topic](c.now),
	)
	c.questionAdmin = admin.New[*faqs.Question](faqs.QuestionMeta, c.questionRepo,
		admin.WithFinder[*faqs.Question](c.questionRepo),
		admin.WithAuditLog[*faqs.Question](c.auditLog),
		admin.WithMessenger[*faqs.Question](c.messages),
		admin.WithTranslator[*faqs.Question](c.translator),
		admin.WithLogger[*faqs.Question](adminLogger),
		admin.WithClock[*faqs.Question](c.now),
	)

	c.site = admin.NewSite()
	if err := c.site.Register(c.topicAdmin); err != nil {
		return err
	}
	if err := c.site.Register(c.questionAdmin); err != nil {
		return err
	}

	c.bulkHandler = statuscmd.NewBulkStatusHandler(c.site, logging.CommandsLogger(c.loggerProvider))
	return nil
}

// Migrate creates the tables used by bun storage. It is a no-op for memory storage.
func (c *Container) Migrate(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	models := append(faqs.Models(), (*audit.LogEntryModel)(nil))
	indexes := []storage.Index{
		{Name: "faq_topics_status_idx", Model: (*faqs.Topic)(nil), Columns: []string{"status"}},
		{Name: "faq_questions_status_idx", Model: (*faqs.Question)(nil), Columns: []string{"status"}},
		{Name: "faq_questions_topic_idx", Model: (*faqs.Question)(nil), Columns: []string{"topic_id"}},
		{Name: "admin_log_entries_object_idx", Model: (*audit.LogEntryModel)(nil), Columns: []string{"object_type", "object_id"}},
	}
	return storage.Migrate(ctx, c.bunDB, models, indexes)
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	return c.bunDB.Close()
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider        { return c.loggerProvider }
func (c *Container) Translator() interfaces.Translator                { return c.translator }
func (c *Container) BunDB() *bun.DB                                   { return c.bunDB }
func (c *Container) AuditLog() audit.Log                              { return c.auditLog }
func (c *Container) Messages() *messages.SessionStore                 { return c.messages }
func (c *Container) FAQService() *faqs.Service                        { return c.faqSvc }
func (c *Container) TopicAdmin() *admin.ModelAdmin[*faqs.Topic]       { return c.topicAdmin }
func (c *Container) QuestionAdmin() *admin.ModelAdmin[*faqs.Question] { return c.questionAdmin }
func (c *Container) Site() *admin.Site                                { return c.site }
func (c *Container) BulkStatusHandler() *statuscmd.BulkStatusHandler  { return c.bulkHandler }
