package caselist

import "strings"

// MatchWildcards reports whether name matches pattern. Both are single path
// segments. A '*' in pattern matches any run of characters, including an
// empty one; every other byte matches only itself.
func MatchWildcards(pattern, name string) bool {
	p, n := 0, 0
	star, mark := -1, 0

	for n < len(name) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			star, mark = p, n
			p++
		case p < len(pattern) && pattern[p] == name[n]:
			p++
			n++
		case star >= 0:
			// Let the last star swallow one more byte and retry.
			p = star + 1
			mark++
			n = mark
		default:
			return false
		}
	}

	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// matchPath matches a split pattern against a split candidate path segment by
// segment. With allowPrefix, a candidate shorter than the pattern matches
// when all of its segments match, so ancestors of selectable cases are kept.
func matchPath(pattern, path []string, allowPrefix bool) bool {
	if len(path) > len(pattern) {
		return false
	}
	if len(path) < len(pattern) && !allowPrefix {
		return false
	}
	for i, seg := range path {
		if !MatchWildcards(pattern[i], seg) {
			return false
		}
	}
	return true
}

// splitPath splits a dotted path into segments. The empty path is the root
// and has no segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// JoinPath appends name to the dotted path parent.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
