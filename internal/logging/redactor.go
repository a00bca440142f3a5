package logging

import (
	"regexp"
	"strings"
)

var keySegmentSplitter = regexp.MustCompile(`[^a-z0-9]+`)

// redactor replaces the values of sensitive log keys.
type redactor struct {
	sensitiveWords map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "key", "apikey", "auth", "authorization", "credential"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitiveWords: m}
}

// redact walks flattened key/value pairs and returns a copy in which the value of
// every sensitive key is "[REDACTED]".
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if ok && r.isSensitive(key) {
			result[i+1] = "[REDACTED]"
		}
	}
	return result
}

// isSensitive matches whole key segments, so "order_id" is kept but "api_key" is not.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range keySegmentSplitter.Split(strings.ToLower(key), -1) {
		if r.sensitiveWords[part] {
			return true
		}
	}
	return false
}
