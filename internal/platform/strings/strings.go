// Package strings holds the few string helpers module wiring leans on
package strings

import std "strings"

// IfEmpty falls back to def when in has no elements, as CORS defaults do
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<name> is required" when s is blank.
// Used where a blank value is a wiring bug, like a module built without a name
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix turns "spam-detection/" or " /meta " into "/spam-detection" and "/meta".
// A module cannot mount at the bare root, so an empty result panics
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}
