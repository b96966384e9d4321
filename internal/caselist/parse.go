package caselist

import (
	"fmt"
	"strings"
)

// ParseOption configures Parse, ParseTrie and ParseFlat.
type ParseOption func(*parseConfig)

type parseConfig struct {
	rejectDuplicates bool
}

// WithDuplicateCheck makes a case listed twice a parse error. Without it
// repeated entries are merged. Repeating a group, or naming a path both as a
// case and as a group, is never an error.
func WithDuplicateCheck() ParseOption {
	return func(c *parseConfig) {
		c.rejectDuplicates = true
	}
}

func newParseConfig(opts []ParseOption) parseConfig {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// IsValidNameChar reports whether c may appear in a test case or group name.
func IsValidNameChar(c byte) bool {
	return ('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9') ||
		c == '_' || c == '-'
}

// ValidName reports whether name is a non-empty single segment made of valid
// name characters.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !IsValidNameChar(name[i]) {
			return false
		}
	}
	return true
}

// Parse parses text in trie syntax when it starts with '{' and in flat
// syntax otherwise. On error no tree is returned.
func Parse(text string, opts ...ParseOption) (*Tree, error) {
	if strings.HasPrefix(text, "{") {
		return ParseTrie(text, opts...)
	}
	return ParseFlat(text, opts...)
}

// ParseTrie parses the bracketed form:
//
//	tree     := '{' siblings '}' [CR | LF | CRLF]
//	siblings := entry (',' entry)*
//	entry    := name ['{' siblings '}']
//
// No whitespace is allowed anywhere else.
func ParseTrie(text string, opts ...ParseOption) (*Tree, error) {
	p := &trieParser{src: text, cfg: newParseConfig(opts), leaves: make(map[*Node]bool)}
	root := newGroup("")

	if err := p.expect('{'); err != nil {
		return nil, err
	}
	if err := p.siblings(root); err != nil {
		return nil, err
	}
	if err := p.expect('}'); err != nil {
		return nil, err
	}

	if p.peek() == '\r' {
		p.pos++
	}
	if p.peek() == '\n' {
		p.pos++
	}
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing characters after case list")
	}

	return newTree(root), nil
}

const eof = -1

// maxNestingDepth bounds how deep groups may nest in the bracketed form.
const maxNestingDepth = 1024

type trieParser struct {
	src    string
	pos    int
	depth  int
	cfg    parseConfig
	leaves map[*Node]bool
}

func (p *trieParser) peek() int {
	if p.pos >= len(p.src) {
		return eof
	}
	return int(p.src[p.pos])
}

func (p *trieParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Syntax: SyntaxTrie, Offset: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *trieParser) expect(c byte) error {
	switch got := p.peek(); {
	case got == eof:
		return p.errorf("unterminated case list, expected %q", c)
	case got != int(c):
		return p.errorf("expected %q, found %q", c, rune(got))
	}
	p.pos++
	return nil
}

func (p *trieParser) siblings(parent *Node) error {
	for {
		if err := p.entry(parent); err != nil {
			return err
		}
		if p.peek() != ',' {
			return nil
		}
		p.pos++
	}
}

func (p *trieParser) entry(parent *Node) error {
	start := p.pos
	name, err := p.name()
	if err != nil {
		return err
	}

	node := parent.Child(name)
	if node == nil {
		node = parent.addChild(name)
	}

	if p.peek() != '{' {
		if p.leaves[node] && p.cfg.rejectDuplicates {
			return &ParseError{Syntax: SyntaxTrie, Offset: start, Reason: fmt.Sprintf("duplicate entry %q", name)}
		}
		p.leaves[node] = true
		return nil
	}

	if p.depth >= maxNestingDepth {
		return p.errorf("case list nested too deeply")
	}
	p.depth++
	defer func() { p.depth-- }()

	p.pos++
	if err := p.siblings(node); err != nil {
		return err
	}
	return p.expect('}')
}

func (p *trieParser) name() (string, error) {
	start := p.pos
	for p.pos < len(p.src) && IsValidNameChar(p.src[p.pos]) {
		p.pos++
	}

	switch next := p.peek(); {
	case next == eof && p.pos == start:
		return "", p.errorf("unterminated case list, expected a name")
	case next == eof, next == '{', next == ',', next == '}':
		if p.pos == start {
			return "", p.errorf("empty name")
		}
		return p.src[start:p.pos], nil
	default:
		return "", p.errorf("illegal character %q in name", rune(next))
	}
}

// ParseFlat parses one dotted case path per line. Lines end in LF, CR or
// CRLF, and the last line may or may not be terminated. A path that extends
// an earlier case turns that case into a group.
func ParseFlat(text string, opts ...ParseOption) (*Tree, error) {
	cfg := newParseConfig(opts)
	root := newGroup("")
	leaves := make(map[*Node]bool)

	pos := 0
	for {
		end, next := lineBounds(text, pos)
		if err := addFlatLine(root, text[pos:end], pos, cfg, leaves); err != nil {
			return nil, err
		}
		if next >= len(text) {
			break
		}
		pos = next
	}

	return newTree(root), nil
}

// lineBounds returns the end of the line starting at pos and the start of
// the line after it.
func lineBounds(text string, pos int) (end, next int) {
	i := strings.IndexAny(text[pos:], "\r\n")
	if i < 0 {
		return len(text), len(text)
	}
	end = pos + i
	if text[end] == '\r' && end+1 < len(text) && text[end+1] == '\n' {
		return end, end + 2
	}
	return end, end + 1
}

// addFlatLine adds one path below root. leaves records the nodes already
// listed as the final segment of a line.
func addFlatLine(root *Node, line string, offset int, cfg parseConfig, leaves map[*Node]bool) error {
	if line == "" {
		return &ParseError{Syntax: SyntaxFlat, Offset: offset, Reason: "empty line"}
	}

	lineStart := offset
	node := root
	segs := strings.Split(line, ".")
	for i, seg := range segs {
		last := i == len(segs)-1

		if seg == "" {
			reason := "empty group name"
			if last {
				reason = "empty case name"
			}
			return &ParseError{Syntax: SyntaxFlat, Offset: offset, Reason: reason}
		}
		for j := 0; j < len(seg); j++ {
			if !IsValidNameChar(seg[j]) {
				return &ParseError{Syntax: SyntaxFlat, Offset: offset + j, Reason: fmt.Sprintf("illegal character %q in name", rune(seg[j]))}
			}
		}

		child := node.Child(seg)
		if child == nil {
			child = node.addChild(seg)
		}

		node = child
		offset += len(seg) + 1
	}

	if leaves[node] && cfg.rejectDuplicates {
		return &ParseError{Syntax: SyntaxFlat, Offset: lineStart, Reason: fmt.Sprintf("duplicate case %q", line)}
	}
	leaves[node] = true
	return nil
}
