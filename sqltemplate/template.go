// Package sqltemplate turns administrator-supplied SQL templates with
// ${name} placeholders into driver-bound parameterized queries.
// Placeholder values never get spliced into the SQL text; every
// placeholder becomes a bind marker and the value travels as a query
// argument.
package sqltemplate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrMissingParam is returned by Render when the template references a
// parameter that was not supplied.
var ErrMissingParam = errors.New("missing template parameter")

// Binder renders the bind marker for the i-th parameter (1-based) in
// the dialect of the target driver.
type Binder func(i int) string

// Question renders MySQL/SQLite-style "?" markers.
func Question(int) string { return "?" }

// Dollar renders PostgreSQL-style "$1", "$2", ... markers.
func Dollar(i int) string { return "$" + strconv.Itoa(i) }

// A placeholder is ${name}. Templates conventionally quote string
// placeholders ("... where username = '${username}'"); the quoted form
// is recognized as a single token so the whole literal binds as one
// parameter instead of leaving stray quotes around the marker.
var placeholderPattern = regexp.MustCompile(`'\$\{([A-Za-z_][A-Za-z0-9_]*)\}'|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Query is a parsed template: literal SQL fragments interleaved with
// named placeholders. len(fragments) == len(names)+1.
type Query struct {
	fragments []string
	names     []string
}

// Parse splits a template into literal fragments and placeholder
// names. Text that merely resembles a placeholder (unterminated "${",
// invalid name characters) stays literal.
func Parse(text string) *Query {
	q := &Query{}
	last := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		q.fragments = append(q.fragments, text[last:m[0]])
		last = m[1]

		// Group 1 is the quoted form, group 2 the bare form.
		if m[2] >= 0 {
			q.names = append(q.names, text[m[2]:m[3]])
		} else {
			q.names = append(q.names, text[m[4]:m[5]])
		}
	}
	q.fragments = append(q.fragments, text[last:])
	return q
}

// Names returns the placeholder names in template order. Repeated
// placeholders appear once per occurrence.
func (q *Query) Names() []string {
	names := make([]string, len(q.names))
	copy(names, q.names)
	return names
}

// Has reports whether the template references the named parameter.
func (q *Query) Has(name string) bool {
	for _, n := range q.names {
		if n == name {
			return true
		}
	}
	return false
}

// Render produces the executable SQL and its argument list. Every
// placeholder occurrence consumes one bind marker, so a parameter used
// twice appears twice in args.
func (q *Query) Render(bind Binder, params map[string]any) (string, []any, error) {
	var (
		sql  []byte
		args []any
	)
	for i, name := range q.names {
		value, ok := params[name]
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		sql = append(sql, q.fragments[i]...)
		sql = append(sql, bind(i+1)...)
		args = append(args, value)
	}
	sql = append(sql, q.fragments[len(q.fragments)-1]...)
	return string(sql), args, nil
}
