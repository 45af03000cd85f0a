package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-faqs"
)

func main() {
	var (
		locale    = flag.String("locale", "en", "Locale used for menu labels and summary messages")
		dialect   = flag.String("dialect", "sqlite", "Storage dialect (sqlite or postgres)")
		dsn       = flag.String("dsn", "file:faqs_example?mode=memory&cache=shared", "Database connection string")
		logFormat = flag.String("log-format", "", "Enable go-logger output in the given format (console, json, pretty)")
		debugSQL  = flag.Bool("debug-sql", false, "Log every SQL query")
		cache     = flag.Bool("cache", false, "Wrap repositories with go-repository-cache")
	)
	flag.Parse()

	cfg := faqs.DefaultConfig()
	cfg.DefaultLocale = *locale
	cfg.Storage.Dialect = *dialect
	cfg.Storage.DSN = *dsn
	cfg.Storage.Debug = *debugSQL
	cfg.Cache.Enabled = *cache
	if strings.TrimSpace(*logFormat) != "" {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = *logFormat
		cfg.Logging.Level = "debug"
	}

	if err := run(context.Background(), cfg, *locale); err != nil {
		log.Fatalf("faqs example: %v", err)
	}
}

func run(ctx context.Context, cfg faqs.Config, locale string) error {
	module, err := faqs.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	if err := module.Migrate(ctx); err != nil {
		return err
	}

	topicIDs, questionIDs, err := seed(ctx, module.FAQs())
	if err != nil {
		return err
	}

	fmt.Println("Actions:")
	for _, model := range module.Models() {
		var entries []faqs.MenuEntry
		switch model.Name {
		case "topic":
			entries, err = module.Topics().Actions(locale)
		case "question":
			entries, err = module.Questions().Actions(locale)
		}
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Printf("  [%s] %s: %s\n", model.Name, entry.Name, entry.Label)
		}
	}

	req := faqs.Request{ActorID: uuid.New(), SessionID: "example", Locale: locale}
	steps := []struct {
		model  string
		action string
		ids    []string
	}{
		{"topic", faqs.ActionPublish, topicIDs},
		{"question", faqs.ActionPublish, questionIDs},
		{"question", faqs.ActionRemove, questionIDs[:1]},
		{"topic", faqs.ActionDraft, topicIDs[1:]},
	}
	for _, step := range steps {
		if _, err := module.Dispatch(ctx, step.model, req, step.action, step.ids); err != nil {
			return fmt.Errorf("%s %s: %w", step.action, step.model, err)
		}
	}

	fmt.Println("Messages:")
	for _, msg := range module.Messages().Pop(req.SessionID) {
		fmt.Printf("  %s: %s\n", msg.Level, msg.Text)
	}

	entries, err := module.Audit().List(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Audit log:")
	for _, entry := range entries {
		fmt.Printf("  %s %s %s\n", entry.ObjectType, entry.ObjectID, entry.Message)
	}
	return nil
}

func seed(ctx context.Context, svc *faqs.Service) (topicIDs, questionIDs []string, err error) {
	catalog := []struct {
		title     string
		questions []string
	}{
		{"Accounts", []string{"How do I reset my password?", "Can I change my email address?"}},
		{"Shipping", []string{"How long does delivery take?"}},
	}
	for i, entry := range catalog {
		topic, err := svc.CreateTopic(ctx, faqs.CreateTopicRequest{Title: entry.title, SortOrder: i})
		if err != nil {
			return nil, nil, err
		}
		topicIDs = append(topicIDs, topic.RecordID())
		for j, text := range entry.questions {
			question, err := svc.CreateQuestion(ctx, faqs.CreateQuestionRequest{TopicID: topic.ID, Text: text, SortOrder: j})
			if err != nil {
				return nil, nil, err
			}
			questionIDs = append(questionIDs, question.RecordID())
		}
	}
	return topicIDs, questionIDs, nil
}
