package template

import (
	"strings"
	"unicode"
)

// Marker delimits a placeholder on both sides: @@name@@.
const Marker = "@@"

// Table maps variable names to their values for the current run.
type Table map[string]string

// Set records value under name, replacing any earlier value.
func (t Table) Set(name, value string) {
	t[name] = value
}

// Lookup returns the value for name and whether it is set.
func (t Table) Lookup(name string) (string, bool) {
	v, ok := t[name]
	return v, ok
}

// Substitute replaces every @@name@@ in s whose name is present in vars.
// Substituted values are never re-scanned. Placeholders with no table entry are
// kept verbatim and their names are returned in order of appearance.
func Substitute(vars Table, s string) (string, []string) {
	out, _, unresolved := substitute(vars, s)
	return out, unresolved
}

// Unresolved returns the placeholder names in s that vars has no value for.
func Unresolved(vars Table, s string) []string {
	_, _, names := substitute(vars, s)
	return names
}

func substitute(vars Table, s string) (string, int, []string) {
	if !strings.Contains(s, Marker) {
		return s, 0, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	var unresolved []string
	replaced := 0

	rest := s
	for {
		open := strings.Index(rest, Marker)
		if open < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		after := rest[open+len(Marker):]
		end := strings.Index(after, Marker)
		if end < 0 {
			b.WriteString(rest[open:])
			break
		}
		name := after[:end]
		if val, ok := vars.Lookup(name); ok && isName(name) {
			b.WriteString(val)
			replaced++
			rest = after[end+len(Marker):]
			continue
		}
		if isName(name) {
			unresolved = append(unresolved, name)
		}
		// Advance one byte so a marker inside this candidate can still open
		// a placeholder.
		b.WriteByte(rest[open])
		rest = rest[open+1:]
	}
	return b.String(), replaced, unresolved
}

// isName reports whether s can name a variable: non-empty, no whitespace and
// no marker character.
func isName(s string) bool {
	return s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		return r == '@' || unicode.IsSpace(r)
	})
}

// RewriteLine applies Substitute to a single line and reports whether any
// placeholder was replaced.
func RewriteLine(vars Table, line string) (string, bool) {
	out, n, _ := substitute(vars, line)
	if n == 0 {
		return line, false
	}
	return out, true
}
