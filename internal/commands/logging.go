package commands

import (
	"strings"

	"github.com/goliatone/go-faqs/internal/logging"
	"github.com/goliatone/go-faqs/pkg/interfaces"
)

// CommandLogger returns a logger for the named command module with the
// component fields every handler log entry carries.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, "faqs.commands."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
