package caselist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CasePaths is a set of dotted case patterns whose segments may contain '*'
// wildcards. It is immutable once built.
type CasePaths struct {
	patterns [][]string
	raw      []string
}

// NewCasePaths builds a pattern set, one pattern per element. Duplicates are
// collapsed. An empty pattern or an empty segment is rejected.
func NewCasePaths(patterns []string) (*CasePaths, error) {
	cp := &CasePaths{}
	seen := make(map[string]bool, len(patterns))

	for _, pattern := range patterns {
		if seen[pattern] {
			continue
		}
		seen[pattern] = true

		segs, err := splitPattern(pattern)
		if err != nil {
			return nil, err
		}
		cp.patterns = append(cp.patterns, segs)
		cp.raw = append(cp.raw, pattern)
	}

	return cp, nil
}

// ReadCasePaths reads one pattern per line. Carriage returns are dropped and
// blank lines skipped.
func ReadCasePaths(r io.Reader) (*CasePaths, error) {
	var patterns []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.ReplaceAll(scanner.Text(), "\r", "")
		if strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read case patterns: %w", err)
	}

	return NewCasePaths(patterns)
}

// Matches reports whether any pattern matches path. With allowPrefix, path
// also matches when it names a group on the way to something a pattern
// could select.
func (c *CasePaths) Matches(path string, allowPrefix bool) bool {
	segs := splitPath(path)
	for _, pattern := range c.patterns {
		if matchPath(pattern, segs, allowPrefix) {
			return true
		}
	}
	return false
}

// Patterns returns the distinct patterns in the order they were given.
func (c *CasePaths) Patterns() []string {
	return append([]string(nil), c.raw...)
}

// Len returns the number of distinct patterns.
func (c *CasePaths) Len() int {
	return len(c.patterns)
}

func splitPattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, &ParseError{Syntax: SyntaxPattern, Reason: "empty case pattern"}
	}

	segs := strings.Split(pattern, ".")
	offset := 0
	for _, seg := range segs {
		if seg == "" {
			return nil, &ParseError{Syntax: SyntaxPattern, Offset: offset, Reason: fmt.Sprintf("empty segment in case pattern %q", pattern)}
		}
		offset += len(seg) + 1
	}
	return segs, nil
}
