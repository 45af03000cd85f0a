package faqs

import "github.com/goliatone/go-faqs/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRequiresBunStorage = runtimeconfig.ErrCacheRequiresBunStorage
	ErrAuditSinkUnknown        = runtimeconfig.ErrAuditSinkUnknown
	ErrAuditSinkRequiresBun    = runtimeconfig.ErrAuditSinkRequiresBun
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	I18NConfig    = runtimeconfig.I18NConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	AuditConfig   = runtimeconfig.AuditConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
