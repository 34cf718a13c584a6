// Package matcher implements the pattern semantics shared by builtin
// selection and tool filtering: "*" matches everything, a trailing slash
// matches by prefix, anything else matches exactly or by prefix.
package matcher

import "strings"

// Match reports whether name satisfies pattern using common CLI semantics
// adopted across the project.
func Match(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if pattern == "" {
		return false
	}
	return strings.HasPrefix(name, pattern)
}
