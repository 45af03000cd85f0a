package i18n

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMissingParam is returned when a template references a parameter that
// was not supplied.
var ErrMissingParam = errors.New("i18n: missing template parameter")

var placeholderPattern = regexp.MustCompile(`%%|%\(([A-Za-z_][A-Za-z0-9_]*)\)[sd]`)

// Format interpolates %(name)s and %(name)d placeholders from params. A
// literal percent sign is written as %%.
func Format(template string, params map[string]any) (string, error) {
	if !strings.Contains(template, "%") {
		return template, nil
	}

	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		if match == "%%" {
			return "%"
		}
		name := match[2 : len(match)-2]
		value, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return fmt.Sprint(value)
	})

	if len(missing) > 0 {
		return out, fmt.Errorf("%w: %s", ErrMissingParam, strings.Join(missing, ", "))
	}
	return out, nil
}
