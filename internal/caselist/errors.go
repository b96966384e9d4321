package caselist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCaseList indicates case-list text that follows neither the
	// trie nor the flat grammar. Every *ParseError wraps it.
	ErrInvalidCaseList = errors.New("invalid case list")
	// ErrConflictingSources indicates more than one case selection source was
	// given. Only one of the case patterns, inline case list, case-list file,
	// case-list resource and stdin may be used at a time.
	ErrConflictingSources = errors.New("conflicting case list sources")
	// ErrInvalidFraction indicates a case fraction that is not "index,count"
	// with 0 <= index < count.
	ErrInvalidFraction = errors.New("invalid case fraction")
	// ErrInvalidRunnerType indicates an unknown runner type name.
	ErrInvalidRunnerType = errors.New("invalid runner type")
	// ErrNoArchive indicates a case-list resource was requested without an
	// archive to read it from.
	ErrNoArchive = errors.New("no archive for case list resource")
)

// Syntax identifies which mini-language a piece of text was parsed as.
type Syntax int

const (
	// SyntaxTrie is the bracketed form: {a{b,c},d}.
	SyntaxTrie Syntax = iota
	// SyntaxFlat is one dotted path per line.
	SyntaxFlat
	// SyntaxPattern is a single wildcard case pattern.
	SyntaxPattern
)

func (s Syntax) String() string {
	switch s {
	case SyntaxTrie:
		return "trie"
	case SyntaxFlat:
		return "flat"
	case SyntaxPattern:
		return "pattern"
	default:
		return fmt.Sprintf("Syntax(%d)", int(s))
	}
}

// ParseError describes where and why case-list text was rejected.
type ParseError struct {
	Syntax Syntax
	// Offset is the byte offset into the input where parsing stopped.
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s case list: %s at offset %d", e.Syntax, e.Reason, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidCaseList
}
