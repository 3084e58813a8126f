// Package redaction masks credentials before they reach log output.
// The client handles bearer session tokens and account passwords; neither
// may appear in the console stream or the JSON log file.
package redaction

import (
	"regexp"
	"strings"
	"sync"
)

// Config holds redaction configuration.
type Config struct {
	// Enabled controls whether redaction is active.
	Enabled bool `json:"enabled"`

	// Replacement is the string used to replace sensitive data.
	Replacement string `json:"replacement"`
}

// DefaultConfig returns the default redaction configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		Replacement: "[REDACTED]",
	}
}

// Redactor masks credential material in strings and log fields.
type Redactor struct {
	config   Config
	patterns []*regexp.Regexp
	mu       sync.RWMutex
}

// NewRedactor creates a new Redactor with the given configuration.
func NewRedactor(config Config) *Redactor {
	return &Redactor{
		config: config,
		patterns: []*regexp.Regexp{
			// Authorization headers
			regexp.MustCompile(`(?i)bearer\s+([a-zA-Z0-9_\-\.]{20,})`),
			// Supabase/GoTrue session tokens in key=value or JSON form
			regexp.MustCompile(`(?i)(access[_-]?token|refresh[_-]?token|apikey|api[_-]?key)["']?\s*[=:]\s*["']?([a-zA-Z0-9_\-\.]{16,})["']?`),
			// JWTs on their own
			regexp.MustCompile(`eyJ[a-zA-Z0-9_-]*\.eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*`),
			// Password fields
			regexp.MustCompile(`(?i)(password|passwd|pwd)["']?\s*[=:]\s*["']?([^"'\s]{4,})["']?`),
		},
	}
}

// Redact masks credential material in the input string.
func (r *Redactor) Redact(input string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.config.Enabled || input == "" {
		return input
	}

	result := input
	for _, re := range r.patterns {
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			submatches := re.FindStringSubmatch(match)
			if len(submatches) > 1 {
				// Redact only the captured secret, preserve the surrounding text.
				redacted := match
				for i := len(submatches) - 1; i >= 1; i-- {
					if submatches[i] != "" && r.isSecretGroup(re, i) {
						redacted = strings.Replace(redacted, submatches[i], r.config.Replacement, 1)
					}
				}
				return redacted
			}
			return r.config.Replacement
		})
	}
	return result
}

// isSecretGroup reports whether capture group i holds the secret rather than
// the key name. Patterns with two groups capture (key, secret).
func (r *Redactor) isSecretGroup(re *regexp.Regexp, i int) bool {
	return i == re.NumSubexp()
}

// RedactFields redacts sensitive values in a log field map.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if !r.config.Enabled {
		return fields
	}

	result := make(map[string]any, len(fields))
	for k, v := range fields {
		if isSensitiveKey(strings.ToLower(k)) {
			result[k] = r.config.Replacement
			continue
		}
		switch val := v.(type) {
		case string:
			result[k] = r.Redact(val)
		case map[string]any:
			result[k] = r.RedactFields(val)
		default:
			result[k] = v
		}
	}
	return result
}

func isSensitiveKey(key string) bool {
	sensitiveKeys := []string{
		"password", "passwd", "pwd",
		"token", "access_token", "refresh_token", "bearer",
		"apikey", "api_key", "anon_key",
		"credential", "credentials",
	}
	for _, sk := range sensitiveKeys {
		if strings.Contains(key, sk) {
			return true
		}
	}
	return false
}

// SetEnabled enables or disables redaction at runtime.
func (r *Redactor) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config.Enabled = enabled
}

// Global redactor instance with default config
var globalRedactor = NewRedactor(DefaultConfig())

// Redact applies redaction using the global redactor.
func Redact(input string) string {
	return globalRedactor.Redact(input)
}

// RedactFields redacts fields using the global redactor.
func RedactFields(fields map[string]any) map[string]any {
	return globalRedactor.RedactFields(fields)
}

// SetGlobalConfig sets the configuration for the global redactor.
func SetGlobalConfig(config Config) {
	globalRedactor = NewRedactor(config)
}
