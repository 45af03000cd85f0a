package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDefaultLocaleRequired   = errors.New("faqs config: default locale is required")
	ErrDefaultLocaleDisabled   = errors.New("faqs config: default locale must be one of the enabled locales")
	ErrStorageProviderUnknown  = errors.New("faqs config: storage provider is invalid")
	ErrStorageDialectUnknown   = errors.New("faqs config: storage dialect is invalid")
	ErrStorageDSNRequired      = errors.New("faqs config: storage dsn is required for bun storage")
	ErrCacheTTLInvalid         = errors.New("faqs config: cache ttl must be positive when cache is enabled")
	ErrCacheRequiresBunStorage = errors.New("faqs config: cache requires bun storage")
	ErrAuditSinkUnknown        = errors.New("faqs config: audit sink is invalid")
	ErrAuditSinkRequiresBun    = errors.New("faqs config: bun audit sink requires bun storage")
	ErrLoggingProviderUnknown  = errors.New("faqs config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("faqs config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("faqs config: logging format is invalid")
)

const (
	StorageMemory = "memory"
	StorageBun    = "bun"

	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"

	AuditMemory   = "memory"
	AuditBun      = "bun"
	AuditActivity = "activity"

	LoggingNone     = "none"
	LoggingGoLogger = "gologger"
)

// Config aggregates the settings used to assemble the FAQ admin module.
type Config struct {
	DefaultLocale string
	I18N          I18NConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Audit         AuditConfig
	Logging       LoggingConfig
}

// I18NConfig selects the translation catalog.
type I18NConfig struct {
	// Locales limits which catalog locales are loaded. Empty loads all of them.
	Locales []string
	// FixturePath points at a JSON catalog. Empty uses the embedded default.
	FixturePath string
}

// StorageConfig selects where records live.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
	// Debug logs every query through bundebug.
	Debug bool
}

// CacheConfig toggles go-repository-cache wrapping of bun repositories.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// AuditConfig selects the audit log sink.
type AuditConfig struct {
	Sink string
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns an in-memory sqlite setup with English messages.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		I18N: I18NConfig{
			Locales: []string{"en", "es"},
		},
		Storage: StorageConfig{
			Provider: StorageBun,
			Dialect:  DialectSQLite,
			DSN:      "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Audit: AuditConfig{
			Sink: AuditBun,
		},
		Logging: LoggingConfig{
			Provider: LoggingNone,
			Level:    "info",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.I18N.Locales) > 0 && !containsLocale(cfg.I18N.Locales, cfg.DefaultLocale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleDisabled, cfg.DefaultLocale)
	}

	storage := normalize(cfg.Storage.Provider)
	switch storage {
	case StorageMemory:
	case StorageBun:
		if dialect := normalize(cfg.Storage.Dialect); dialect != DialectSQLite && dialect != DialectPostgres {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled {
		if storage != StorageBun {
			return ErrCacheRequiresBunStorage
		}
		if cfg.Cache.TTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}

	switch normalize(cfg.Audit.Sink) {
	case AuditMemory, AuditActivity:
	case AuditBun:
		if storage != StorageBun {
			return ErrAuditSinkRequiresBun
		}
	default:
		return fmt.Errorf("%w: %s", ErrAuditSinkUnknown, cfg.Audit.Sink)
	}

	switch provider := normalize(cfg.Logging.Provider); provider {
	case "", LoggingNone:
	case LoggingGoLogger:
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func containsLocale(locales []string, locale string) bool {
	want := normalizeLocale(locale)
	for _, candidate := range locales {
		if normalizeLocale(candidate) == want {
			return true
		}
	}
	return false
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(normalize(locale), "_", "-")
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
