package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
//
// INLINECHROME_TOOLBAR_LOCATION=bottom becomes toolbar_location: bottom.
// Explicit mappings handle nested keys such as logging.console.level.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "INLINECHROME_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// NewEnvLoaderFrom creates a loader reading from a fixed environment, for tests.
func NewEnvLoaderFrom(prefix string, env []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return env }
	return l
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":         "logging.console.level",
		prefix + "LOG_FILE":          "logging.file.destination",
		prefix + "LOG_FILE_LEVEL":    "logging.file.level",
		prefix + "FIXED_TOOLBAR":     "fixed_toolbar_container",
		prefix + "STICKY":            "toolbar_sticky",
		prefix + "DIRECTIONALITY":    "directionality",
		prefix + "TOOLBAR_MAX_WIDTH": "max_width",
	}
}

// Load reads environment variables and returns a configuration map.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = strings.ToLower(strings.TrimPrefix(name, l.prefix))
		}
		SetByPath(config, path, parseValue(value))
	}

	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
