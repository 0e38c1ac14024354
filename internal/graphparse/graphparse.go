// Package graphparse turns free-form generated text into typed node and
// relationship literals.
//
// The generator is instructed to emit a fixed two-shape grammar:
//
//	Node(id='...', type='...')
//	Relationship(subj=Node(...), obj=Node(...), type='...'[, timestamp='...'])
//
// Models do not always comply, so the parser is built to salvage rather
// than reject: it scans the whole text for literal candidates, parses
// each with a small recursive-descent parser that tolerates arbitrary
// whitespace between tokens, and records a diagnostic for every
// malformed fragment instead of failing the call.
//
// A node literal consumed as the subject or object of a relationship
// belongs to that relationship; it is not reported as a standalone
// node. When a relationship fails to parse, scanning resumes inside the
// broken fragment so that any intact node literals it contains are
// still recovered.
package graphparse

import (
	"fmt"
	"strings"
)

// Node is one parsed node literal.
type Node struct {
	// ID and Type are the literal's quoted values, verbatim.
	ID   string
	Type string

	// Offset is the byte position of the literal in the scanned text.
	Offset int
}

// Relationship is one parsed relationship literal.
type Relationship struct {
	// Subject and Object are the embedded endpoint literals.
	Subject Node
	Object  Node

	// Type is the relationship category value.
	Type string

	// Timestamp is the optional trailing value, empty when absent.
	Timestamp string

	// Offset is the byte position of the literal in the scanned text.
	Offset int
}

// Diagnostic records one malformed fragment that was skipped.
type Diagnostic struct {
	// Offset is the byte position where the candidate started.
	Offset int

	// Fragment is a truncated excerpt of the offending text.
	Fragment string

	// Reason describes what the parser expected.
	Reason string
}

// Result is the typed outcome of one parse pass.
type Result struct {
	// Nodes are the standalone node literals in order of appearance.
	Nodes []Node

	// Relationships are the relationship literals in order of appearance.
	Relationships []Relationship

	// Diagnostics lists every skipped malformed fragment.
	Diagnostics []Diagnostic
}

const (
	kwNode         = "Node"
	kwRelationship = "Relationship"

	fragmentLimit = 60
)

// Parse scans text for node and relationship literals. It never fails;
// unparseable fragments are reported through Result.Diagnostics.
func Parse(text string) Result {
	var res Result

	for i := 0; i < len(text); {
		if !wordBoundary(text, i) {
			i++
			continue
		}

		switch {
		case literalStartsAt(text, i, kwRelationship):
			p := &parser{src: text, pos: i}
			rel, err := p.parseRelationship()
			if err != nil {
				res.Diagnostics = append(res.Diagnostics, diagnostic(text, i, err))
				// Resume inside the broken fragment to salvage
				// intact endpoint literals.
				i += len(kwRelationship)
				continue
			}
			res.Relationships = append(res.Relationships, rel)
			i = p.pos

		case literalStartsAt(text, i, kwNode):
			p := &parser{src: text, pos: i}
			node, err := p.parseNode()
			if err != nil {
				res.Diagnostics = append(res.Diagnostics, diagnostic(text, i, err))
				i += len(kwNode)
				continue
			}
			res.Nodes = append(res.Nodes, node)
			i = p.pos

		default:
			i++
		}
	}

	return res
}

// literalStartsAt reports whether a literal candidate begins at pos:
// the keyword immediately followed by an opening parenthesis.
func literalStartsAt(src string, pos int, keyword string) bool {
	end := pos + len(keyword)
	return strings.HasPrefix(src[pos:], keyword) && end < len(src) && src[end] == '('
}

// wordBoundary reports whether pos does not continue a preceding word,
// so "SuperNode(" is never treated as a node literal.
func wordBoundary(src string, pos int) bool {
	if pos == 0 {
		return true
	}
	return !isWordChar(src[pos-1])
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func diagnostic(src string, offset int, err error) Diagnostic {
	fragment := src[offset:]
	if len(fragment) > fragmentLimit {
		fragment = fragment[:fragmentLimit] + "..."
	}
	return Diagnostic{
		Offset:   offset,
		Fragment: fragment,
		Reason:   err.Error(),
	}
}

// parser is a recursive-descent parser over one literal candidate.
// Whitespace (including newlines) is permitted between any two tokens;
// field order within a literal is fixed by the grammar.
type parser struct {
	src string
	pos int
}

// parseNode consumes Node(id='...', type='...').
func (p *parser) parseNode() (Node, error) {
	p.skipSpaces()
	offset := p.pos
	if err := p.keyword(kwNode); err != nil {
		return Node{}, err
	}
	if err := p.expect('('); err != nil {
		return Node{}, err
	}

	id, err := p.field("id")
	if err != nil {
		return Node{}, err
	}
	if err := p.expect(','); err != nil {
		return Node{}, err
	}
	typ, err := p.field("type")
	if err != nil {
		return Node{}, err
	}
	if err := p.expect(')'); err != nil {
		return Node{}, err
	}

	return Node{ID: id, Type: typ, Offset: offset}, nil
}

// parseRelationship consumes
// Relationship(subj=Node(...), obj=Node(...), type='...'[, timestamp='...']).
func (p *parser) parseRelationship() (Relationship, error) {
	offset := p.pos
	if err := p.keyword(kwRelationship); err != nil {
		return Relationship{}, err
	}
	if err := p.expect('('); err != nil {
		return Relationship{}, err
	}

	if err := p.fieldName("subj"); err != nil {
		return Relationship{}, err
	}
	subject, err := p.parseNode()
	if err != nil {
		return Relationship{}, err
	}

	if err := p.expect(','); err != nil {
		return Relationship{}, err
	}
	if err := p.fieldName("obj"); err != nil {
		return Relationship{}, err
	}
	object, err := p.parseNode()
	if err != nil {
		return Relationship{}, err
	}

	if err := p.expect(','); err != nil {
		return Relationship{}, err
	}
	typ, err := p.field("type")
	if err != nil {
		return Relationship{}, err
	}

	rel := Relationship{
		Subject: subject,
		Object:  object,
		Type:    typ,
		Offset:  offset,
	}

	// Optional trailing timestamp.
	p.skipSpaces()
	if p.peek() == ',' {
		p.pos++
		ts, err := p.field("timestamp")
		if err != nil {
			return Relationship{}, err
		}
		rel.Timestamp = ts
	}

	if err := p.expect(')'); err != nil {
		return Relationship{}, err
	}
	return rel, nil
}

// field consumes name='value' and returns the value.
func (p *parser) field(name string) (string, error) {
	if err := p.fieldName(name); err != nil {
		return "", err
	}
	return p.quoted()
}

// fieldName consumes name= including surrounding whitespace.
func (p *parser) fieldName(name string) error {
	p.skipSpaces()
	if !strings.HasPrefix(p.src[p.pos:], name) {
		return fmt.Errorf("expected %q at offset %d", name, p.pos)
	}
	p.pos += len(name)
	p.skipSpaces()
	if p.peek() != '=' {
		return fmt.Errorf("expected %q after %q at offset %d", "=", name, p.pos)
	}
	p.pos++
	return nil
}

// keyword consumes the literal keyword.
func (p *parser) keyword(kw string) error {
	if !strings.HasPrefix(p.src[p.pos:], kw) {
		return fmt.Errorf("expected %q at offset %d", kw, p.pos)
	}
	p.pos += len(kw)
	return nil
}

// quoted consumes a single-quoted value. Values cannot contain quotes;
// the generator never escapes them.
func (p *parser) quoted() (string, error) {
	p.skipSpaces()
	if p.peek() != '\'' {
		return "", fmt.Errorf("expected quoted value at offset %d", p.pos)
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], '\'')
	if end < 0 {
		return "", fmt.Errorf("unterminated quoted value at offset %d", p.pos)
	}
	value := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return value, nil
}

// expect consumes one required character, skipping leading whitespace.
func (p *parser) expect(c byte) error {
	p.skipSpaces()
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the current byte or 0 at end of input.
func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}
