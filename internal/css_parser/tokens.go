package css_parser

// Thin wrappers over single cursors so grammars compose at the type level.
// Each wrapper embeds the cursor, which provides ToCursors by promotion;
// the Parse functions are the only way to construct one from live input,
// so holding a wrapper means the token really had that shape.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

func parseCursorOfKind(p *Parser, kind css_lexer.Kind) (css_lexer.Cursor, error) {
	c := p.Peek()
	if !c.Is(kind) {
		return c, ExpectedKind(kind, c)
	}
	p.Hop(c)
	return c, nil
}

type Ident struct{ css_lexer.Cursor }

func ParseIdent(p *Parser) (Ident, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindIdent)
	return Ident{c}, err
}

type Function struct{ css_lexer.Cursor }

func ParseFunction(p *Parser) (Function, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindFunction)
	return Function{c}, err
}

type AtKeyword struct{ css_lexer.Cursor }

func ParseAtKeyword(p *Parser) (AtKeyword, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindAtKeyword) {
		return AtKeyword{c}, ExpectedAtKeyword(c)
	}
	p.Hop(c)
	return AtKeyword{c}, nil
}

type Hash struct{ css_lexer.Cursor }

func ParseHash(p *Parser) (Hash, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindHash)
	return Hash{c}, err
}

type String struct{ css_lexer.Cursor }

func ParseString(p *Parser) (String, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindString)
	return String{c}, err
}

type Url struct{ css_lexer.Cursor }

func ParseUrl(p *Parser) (Url, error) {
	c := p.Peek()
	switch {
	case c.Is(css_lexer.KindUrl):
		p.Hop(c)
		return Url{c}, nil
	case c.Is(css_lexer.KindBadUrl):
		p.Hop(c)
		return Url{c}, BadURLWarning(c)
	}
	return Url{c}, ExpectedKind(css_lexer.KindUrl, c)
}

type Number struct{ css_lexer.Cursor }

func ParseNumber(p *Parser) (Number, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindNumber) {
		return Number{c}, ExpectedNumber(c)
	}
	p.Hop(c)
	return Number{c}, nil
}

func (n Number) Value() float32 {
	return n.Token.Value()
}

type Dimension struct{ css_lexer.Cursor }

func ParseDimension(p *Parser) (Dimension, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindDimension) {
		return Dimension{c}, ExpectedDimension(c)
	}
	p.Hop(c)
	return Dimension{c}, nil
}

// ParseDimensionOfUnit accepts only a specific unit. Escaped units fall
// back to a lowercased text comparison against the canonical spelling.
func ParseDimensionOfUnit(p *Parser, unit css_lexer.DimensionUnit) (Dimension, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindDimension) {
		return Dimension{c}, ExpectedDimension(c)
	}
	if c.Token.DimensionUnit() != unit {
		numLen := c.Token.NumericLength()
		suffix := p.ParseStrLower(c)
		if uint32(len(suffix)) <= numLen || suffix[numLen:] != unit.String() {
			return Dimension{c}, UnexpectedDimension(p.ParseStr(c), c)
		}
	}
	p.Hop(c)
	return Dimension{c}, nil
}

func (d Dimension) Value() float32 {
	return d.Token.Value()
}

type Whitespace struct{ css_lexer.Cursor }

func ParseWhitespace(p *Parser) (Whitespace, error) {
	prev := p.SetSkip(css_lexer.KindSetNone)
	c, err := parseCursorOfKind(p, css_lexer.KindWhitespace)
	p.SetSkip(prev)
	return Whitespace{c}, err
}

type Comment struct{ css_lexer.Cursor }

func ParseComment(p *Parser) (Comment, error) {
	prev := p.SetSkip(css_lexer.KindSetNone)
	c, err := parseCursorOfKind(p, css_lexer.KindComment)
	p.SetSkip(prev)
	return Comment{c}, err
}

// Punctuation

type Colon struct{ css_lexer.Cursor }

func ParseColon(p *Parser) (Colon, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindColon)
	return Colon{c}, err
}

type Semicolon struct{ css_lexer.Cursor }

func ParseSemicolon(p *Parser) (Semicolon, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindSemicolon)
	return Semicolon{c}, err
}

type Comma struct{ css_lexer.Cursor }

func ParseComma(p *Parser) (Comma, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindComma)
	return Comma{c}, err
}

type LeftCurly struct{ css_lexer.Cursor }

func ParseLeftCurly(p *Parser) (LeftCurly, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindLeftCurly)
	return LeftCurly{c}, err
}

type RightCurly struct{ css_lexer.Cursor }

func ParseRightCurly(p *Parser) (RightCurly, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindRightCurly)
	return RightCurly{c}, err
}

type LeftParen struct{ css_lexer.Cursor }

func ParseLeftParen(p *Parser) (LeftParen, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindLeftParen)
	return LeftParen{c}, err
}

type RightParen struct{ css_lexer.Cursor }

func ParseRightParen(p *Parser) (RightParen, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindRightParen)
	return RightParen{c}, err
}

type LeftSquare struct{ css_lexer.Cursor }

func ParseLeftSquare(p *Parser) (LeftSquare, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindLeftSquare)
	return LeftSquare{c}, err
}

type RightSquare struct{ css_lexer.Cursor }

func ParseRightSquare(p *Parser) (RightSquare, error) {
	c, err := parseCursorOfKind(p, css_lexer.KindRightSquare)
	return RightSquare{c}, err
}

type Delim struct{ css_lexer.Cursor }

func ParseDelimChar(p *Parser, ch rune) (Delim, error) {
	c := p.Peek()
	if !c.IsDelimChar(ch) {
		return Delim{c}, ExpectedDelimOf(ch, c)
	}
	p.Hop(c)
	return Delim{c}, nil
}

// Double delimiters

// DoubleDelim is two adjacent single-character tokens with no trivia in
// between, such as ">=" or "::". The inner parses run with an empty
// skip-set; the previous set is restored on every path out.
type DoubleDelim struct {
	First  css_lexer.Cursor
	Second css_lexer.Cursor
}

func (d DoubleDelim) ToCursors(s css_lexer.CursorSink) {
	s.Append(d.First)
	s.Append(d.Second)
}

func PeekDoubleDelim(p *Parser, c css_lexer.Cursor, first rune, second rune) bool {
	if !c.IsDelimChar(first) {
		return false
	}
	checkpoint := p.Checkpoint()
	defer p.Rewind(checkpoint)
	p.SetSkip(css_lexer.KindSetNone)
	p.Hop(c)
	return p.Peek().IsDelimChar(second)
}

func ParseDoubleDelim(p *Parser, first rune, second rune) (DoubleDelim, error) {
	prev := p.SetSkip(css_lexer.KindSetNone)
	defer p.SetSkip(prev)

	a, err := ParseDelimChar(p, first)
	if err != nil {
		return DoubleDelim{}, err
	}
	b, err := ParseDelimChar(p, second)
	if err != nil {
		return DoubleDelim{}, err
	}
	return DoubleDelim{First: a.Cursor, Second: b.Cursor}, nil
}

// ColonColon is the "::" of a pseudo-element, which must not be separated
// by whitespace.
type ColonColon struct {
	First  css_lexer.Cursor
	Second css_lexer.Cursor
}

func (d ColonColon) ToCursors(s css_lexer.CursorSink) {
	s.Append(d.First)
	s.Append(d.Second)
}

func PeekColonColon(p *Parser, c css_lexer.Cursor) bool {
	if !c.Is(css_lexer.KindColon) {
		return false
	}
	checkpoint := p.Checkpoint()
	defer p.Rewind(checkpoint)
	p.SetSkip(css_lexer.KindSetNone)
	p.Hop(c)
	return p.Peek().Is(css_lexer.KindColon)
}

func ParseColonColon(p *Parser) (ColonColon, error) {
	prev := p.SetSkip(css_lexer.KindSetNone)
	defer p.SetSkip(prev)

	a, err := ParseColon(p)
	if err != nil {
		return ColonColon{}, err
	}
	b, err := ParseColon(p)
	if err != nil {
		return ColonColon{}, err
	}
	return ColonColon{First: a.Cursor, Second: b.Cursor}, nil
}
