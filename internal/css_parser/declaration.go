package css_parser

// The declaration skeleton: "name : value !important? ;?". The value
// parser is pluggable so a typed property grammar and the generic
// component-value fallback share everything else.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

// Important is the "!" and "important" pair at the end of a declaration
// value. Whitespace may separate the two tokens.
type Important struct {
	Bang  css_lexer.Cursor
	Ident css_lexer.Cursor
}

func (i Important) ToCursors(s css_lexer.CursorSink) {
	s.Append(i.Bang)
	s.Append(i.Ident)
}

func PeekImportant(p *Parser, c css_lexer.Cursor) bool {
	return c.IsDelimChar('!') && p.PeekN(2).Is(css_lexer.KindIdent)
}

func ParseImportant(p *Parser) (Important, error) {
	bang, err := ParseDelimChar(p, '!')
	if err != nil {
		return Important{}, err
	}
	ident, err := ParseIdent(p)
	if err != nil {
		return Important{}, err
	}
	if !p.EqIgnoreASCIICase(ident.Cursor, "important") {
		return Important{}, ExpectedIdentOf("important", p.ParseStrLower(ident.Cursor), ident.Cursor)
	}
	return Important{Bang: bang.Cursor, Ident: ident.Cursor}, nil
}

type Declaration[V Node] struct {
	Name      css_lexer.Cursor
	Colon     css_lexer.Cursor
	Value     V
	Important *Important
	Semicolon *css_lexer.Cursor
}

func (d Declaration[V]) ToCursors(s css_lexer.CursorSink) {
	s.Append(d.Name)
	s.Append(d.Colon)
	d.Value.ToCursors(s)
	if d.Important != nil {
		d.Important.ToCursors(s)
	}
	if d.Semicolon != nil {
		s.Append(*d.Semicolon)
	}
}

// PeekDeclaration is the two-token test the block consumer uses to choose
// the declaration track: an identifier directly followed by a colon.
func PeekDeclaration(p *Parser, c css_lexer.Cursor) bool {
	return c.Is(css_lexer.KindIdent) && p.PeekN(2).Is(css_lexer.KindColon)
}

// ParseDeclarationWith parses the skeleton around a caller-supplied value
// parser. The value parser receives the name cursor so it can dispatch on
// the property, and must stop before "!", ";" or "}" at its nesting level.
func ParseDeclarationWith[V Node](p *Parser, parseValue func(*Parser, css_lexer.Cursor) (V, error)) (Declaration[V], error) {
	var d Declaration[V]

	name, err := ParseIdent(p)
	if err != nil {
		return d, err
	}
	d.Name = name.Cursor

	colon, err := ParseColon(p)
	if err != nil {
		return d, err
	}
	d.Colon = colon.Cursor

	value, err := parseValue(p, d.Name)
	if err != nil {
		return d, err
	}
	d.Value = value

	if c := p.Peek(); PeekImportant(p, c) {
		important, err := ParseImportant(p)
		if err != nil {
			return d, err
		}
		d.Important = &important
	}

	if c := p.Peek(); c.Is(css_lexer.KindSemicolon) {
		p.Hop(c)
		d.Semicolon = &c
	}

	return d, nil
}

// KindSetDeclarationValueStop is where a component-value declaration value
// ends: the terminator or the close of the containing block. A trailing
// "!important" is detected separately with PeekImportant.
var KindSetDeclarationValueStop = css_lexer.NewKindSet(
	css_lexer.KindSemicolon,
	css_lexer.KindRightCurly,
)

// ParseComponentValuesDeclarationValue is the default value parser: raw
// component values up to the declaration terminator, leaving a trailing
// "!important" unconsumed. A "{" at the top level also stops the scan,
// because a normal declaration value cannot contain a naked block and its
// presence means the "declaration" was really a selector prefix.
func ParseComponentValuesDeclarationValue(p *Parser, _ css_lexer.Cursor) (ComponentValues, error) {
	var values ComponentValues
	for {
		c := p.Peek()
		if c.Is(css_lexer.KindEof) || c.Is(css_lexer.KindLeftCurly) || c.InSet(KindSetDeclarationValueStop) {
			return values, nil
		}
		if PeekImportant(p, c) {
			return values, nil
		}
		value, err := ParseComponentValue(p)
		if err != nil {
			return values, err
		}
		values = append(values, value)
	}
}

// ParseCustomPropertyValue accepts everything a custom property may hold,
// including naked "{...}" blocks.
func ParseCustomPropertyValue(p *Parser, _ css_lexer.Cursor) (ComponentValues, error) {
	var values ComponentValues
	for {
		c := p.Peek()
		if c.Is(css_lexer.KindEof) || c.InSet(KindSetDeclarationValueStop) {
			return values, nil
		}
		if PeekImportant(p, c) {
			return values, nil
		}
		value, err := ParseComponentValue(p)
		if err != nil {
			return values, err
		}
		values = append(values, value)
	}
}

// IsComputedValueFunction reports whether a function name preempts typed
// value parsing. A declaration whose value mentions var(), env() or a math
// function cannot be checked against the property grammar before computed
// value time, so such values stay as component values.
func IsComputedValueFunction(name string) bool {
	switch name {
	case "var", "env", "calc", "min", "max", "clamp", "round", "mod", "rem",
		"sin", "cos", "tan", "asin", "acos", "atan", "atan2", "pow", "sqrt",
		"hypot", "log", "exp", "abs", "sign":
		return true
	}
	return false
}

// PeekComputedValue scans a declaration value ahead of typed parsing for a
// computed-value function at any nesting depth. The scan is bounded by the
// declaration terminator.
func PeekComputedValue(p *Parser) bool {
	checkpoint := p.Checkpoint()
	defer p.Rewind(checkpoint)
	depth := 0
	for {
		c := p.Peek()
		switch c.Token.Kind() {
		case css_lexer.KindEof:
			return false
		case css_lexer.KindFunction:
			if IsComputedValueFunction(p.ParseStrLower(c)) {
				return true
			}
			depth++
		case css_lexer.KindLeftParen, css_lexer.KindLeftSquare, css_lexer.KindLeftCurly:
			depth++
		case css_lexer.KindRightParen, css_lexer.KindRightSquare:
			depth--
		case css_lexer.KindSemicolon:
			if depth <= 0 {
				return false
			}
		case css_lexer.KindRightCurly:
			if depth <= 0 {
				return false
			}
			depth--
		}
		p.Hop(c)
	}
}
