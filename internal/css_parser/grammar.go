package css_parser

// Grammars compose out of four capabilities: peeking (would this node start
// here?), building (wrap a single cursor infallibly), parsing (consume
// arbitrarily, may fail), and serialising (emit cursors in source order).
// Peek and Build are plain functions; Parse is any func(*Parser) (T, error);
// ToCursors is the one capability expressed as an interface because every
// node carries it.

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/logger"
)

// Node is anything that can emit its cursors in source order.
type Node interface {
	ToCursors(s css_lexer.CursorSink)
}

// PeekFunc decides from bounded lookahead whether a parse would succeed.
// Implementations must be side-effect free: any temporary skip-set change
// or lexer movement has to be undone before returning.
type PeekFunc func(p *Parser, c css_lexer.Cursor) bool

// PeekKind builds the common PeekFunc that accepts a single kind.
func PeekKind(kind css_lexer.Kind) PeekFunc {
	return func(p *Parser, c css_lexer.Cursor) bool {
		return c.Is(kind)
	}
}

// PeekKindSet builds a PeekFunc that accepts membership in a set.
func PeekKindSet(set css_lexer.KindSet) PeekFunc {
	return func(p *Parser, c css_lexer.Cursor) bool {
		return c.InSet(set)
	}
}

// TryParse checkpoints, runs the parse, and rewinds on failure so the
// caller can try an alternative.
func TryParse[T any](p *Parser, parse func(*Parser) (T, error)) (T, error) {
	checkpoint := p.Checkpoint()
	value, err := parse(p)
	if err != nil {
		p.Rewind(checkpoint)
	}
	return value, err
}

// ParseIfPeek peeks first and only commits to parsing when the peek
// succeeds. A false peek is not an error; the parser does not move.
func ParseIfPeek[T any](p *Parser, peek PeekFunc, parse func(*Parser) (T, error)) (*T, error) {
	if !peek(p, p.Peek()) {
		return nil, nil
	}
	value, err := parse(p)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// ParseSeparated parses one-or-more items separated by a token kind,
// returning items interleaved with the separator cursors.
type Separated[T any] struct {
	Items      []T
	Separators []css_lexer.Cursor
}

func (s Separated[T]) ToCursors(sink css_lexer.CursorSink) {
	for i := range s.Items {
		if node, ok := any(s.Items[i]).(Node); ok {
			node.ToCursors(sink)
		}
		if i < len(s.Separators) {
			sink.Append(s.Separators[i])
		}
	}
}

func ParseSeparated[T any](p *Parser, separator css_lexer.Kind, parse func(*Parser) (T, error)) (Separated[T], error) {
	var result Separated[T]
	for {
		item, err := parse(p)
		if err != nil {
			return result, err
		}
		result.Items = append(result.Items, item)
		c := p.Peek()
		if !c.Is(separator) {
			return result, nil
		}
		p.Hop(c)
		result.Separators = append(result.Separators, c)
	}
}

// NodeRange computes the source span a node covers: from its first cursor
// to the end of its last.
func NodeRange(node Node) logger.Range {
	var cursors css_lexer.CursorSlice
	node.ToCursors(&cursors)
	if len(cursors.Cursors) == 0 {
		return logger.Range{}
	}
	first := cursors.Cursors[0]
	last := cursors.Cursors[len(cursors.Cursors)-1]
	return logger.Range{Loc: first.Loc, Len: last.End() - first.Loc.Start}
}

// AppendOptional emits an optional node if present.
func AppendOptional[T Node](sink css_lexer.CursorSink, node *T) {
	if node != nil {
		(*node).ToCursors(sink)
	}
}
