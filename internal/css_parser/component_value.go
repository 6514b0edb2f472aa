package css_parser

// Component values are the generic value layer of CSS syntax: a preserved
// token, a {}/[]/() block, or a function block. Anything the typed grammars
// do not understand can still be captured as component values and written
// back out unchanged.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

type ComponentValue interface {
	Node
	isComponentValue()
}

type PreservedToken struct{ css_lexer.Cursor }

type SimpleBlock struct {
	Open   css_lexer.Cursor
	Values []ComponentValue

	// Nil when the block was implicitly closed by the end of the file
	Close *css_lexer.Cursor
}

type FunctionBlock struct {
	Name   css_lexer.Cursor
	Values []ComponentValue

	// Nil when the function was implicitly closed by the end of the file
	Close *css_lexer.Cursor
}

func (PreservedToken) isComponentValue() {}
func (SimpleBlock) isComponentValue()    {}
func (FunctionBlock) isComponentValue()  {}

func (b SimpleBlock) ToCursors(s css_lexer.CursorSink) {
	s.Append(b.Open)
	for _, v := range b.Values {
		v.ToCursors(s)
	}
	if b.Close != nil {
		s.Append(*b.Close)
	}
}

func (b FunctionBlock) ToCursors(s css_lexer.CursorSink) {
	s.Append(b.Name)
	for _, v := range b.Values {
		v.ToCursors(s)
	}
	if b.Close != nil {
		s.Append(*b.Close)
	}
}

func closingKindFor(open css_lexer.Kind) css_lexer.Kind {
	switch open {
	case css_lexer.KindLeftCurly:
		return css_lexer.KindRightCurly
	case css_lexer.KindLeftSquare:
		return css_lexer.KindRightSquare
	default:
		return css_lexer.KindRightParen
	}
}

func ParseComponentValue(p *Parser) (ComponentValue, error) {
	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindLeftCurly, css_lexer.KindLeftSquare, css_lexer.KindLeftParen:
		return ParseSimpleBlock(p)

	case css_lexer.KindFunction:
		return ParseFunctionBlock(p)

	case css_lexer.KindRightCurly:
		return nil, UnexpectedCloseCurly(c.Range())

	case css_lexer.KindRightSquare, css_lexer.KindRightParen:
		return nil, Unexpected(c)

	case css_lexer.KindEof:
		return nil, UnexpectedEnd(c.Range())
	}
	p.Hop(c)
	return PreservedToken{c}, nil
}

func ParseSimpleBlock(p *Parser) (SimpleBlock, error) {
	open := p.Peek()
	switch open.Token.Kind() {
	case css_lexer.KindLeftCurly, css_lexer.KindLeftSquare, css_lexer.KindLeftParen:
	default:
		return SimpleBlock{}, Unexpected(open)
	}
	p.Hop(open)

	block := SimpleBlock{Open: open}
	closing := closingKindFor(open.Token.Kind())
	for {
		c := p.Peek()
		if c.Is(closing) {
			p.Hop(c)
			block.Close = &c
			return block, nil
		}
		if c.Is(css_lexer.KindEof) {
			return block, nil
		}
		value, err := ParseComponentValue(p)
		if err != nil {
			return block, err
		}
		block.Values = append(block.Values, value)
	}
}

func ParseFunctionBlock(p *Parser) (FunctionBlock, error) {
	name, err := ParseFunction(p)
	if err != nil {
		return FunctionBlock{}, err
	}

	block := FunctionBlock{Name: name.Cursor}
	for {
		c := p.Peek()
		if c.Is(css_lexer.KindRightParen) {
			p.Hop(c)
			block.Close = &c
			return block, nil
		}
		if c.Is(css_lexer.KindEof) {
			return block, nil
		}
		value, err := ParseComponentValue(p)
		if err != nil {
			return block, err
		}
		block.Values = append(block.Values, value)
	}
}

// ComponentValues is a flat run of component values, used wherever a
// grammar keeps a region raw: unknown at-rule preludes, unrecognised
// declaration values, and recovery paths.
type ComponentValues []ComponentValue

func (values ComponentValues) ToCursors(s css_lexer.CursorSink) {
	for _, v := range values {
		v.ToCursors(s)
	}
}

// ParseComponentValues consumes until one of the stop kinds appears at the
// current nesting level. Stop kinds inside nested blocks do not stop the
// scan because blocks consume their own closers.
func ParseComponentValues(p *Parser, stop css_lexer.KindSet) (ComponentValues, error) {
	var values ComponentValues
	for {
		c := p.Peek()
		if c.Is(css_lexer.KindEof) || c.InSet(stop) {
			return values, nil
		}
		value, err := ParseComponentValue(p)
		if err != nil {
			return values, err
		}
		values = append(values, value)
	}
}
