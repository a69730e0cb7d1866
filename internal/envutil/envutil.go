// Package envutil expands ${VAR} environment references inside
// configuration values. Expansion happens at every read so a value is
// never retained in its unexpanded form.
package envutil

import (
	"os"
	"strings"
)

// Expand replaces every ${NAME} reference in s with the value of the
// NAME environment variable. References to unset variables are left
// intact, which lets non-environment placeholders (such as query
// template parameters) pass through untouched. Bare $NAME is not
// recognized.
func Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			break
		}

		b.WriteString(s[:start])
		name := s[start+2 : start+end]
		if value, ok := os.LookupEnv(name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[start : start+end+1])
		}
		s = s[start+end+1:]
	}
	return b.String()
}
