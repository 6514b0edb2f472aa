package css_parser

// The shared at-rule skeleton: "@keyword prelude? { block }?" or
// "@keyword prelude? ;". Concrete at-rules supply the prelude and block
// parsers and decide afterwards whether a missing or present part is an
// error for their grammar.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

type AtRuleParts[P Node, B Node] struct {
	Name      AtKeyword
	Prelude   *P
	Block     *B
	Semicolon *css_lexer.Cursor
}

func (r AtRuleParts[P, B]) ToCursors(s css_lexer.CursorSink) {
	r.Name.ToCursors(s)
	AppendOptional(s, r.Prelude)
	AppendOptional(s, r.Block)
	if r.Semicolon != nil {
		s.Append(*r.Semicolon)
	}
}

// ParseAtRuleParts drives the skeleton. The prelude parser must stop before
// a "{" or ";" at its own nesting level; the block parser consumes the
// braces itself.
func ParseAtRuleParts[P Node, B Node](
	p *Parser,
	name string,
	parsePrelude func(*Parser) (P, error),
	parseBlock func(*Parser) (B, error),
) (AtRuleParts[P, B], error) {
	var parts AtRuleParts[P, B]

	keyword, err := ParseAtKeyword(p)
	if err != nil {
		return parts, err
	}
	if name != "" && !p.EqIgnoreASCIICase(keyword.Cursor, name) {
		return parts, ExpectedAtKeywordOf(name, p.ParseStrLower(keyword.Cursor), keyword.Cursor)
	}
	parts.Name = keyword

	c := p.Peek()
	if !c.InSet(css_lexer.KindSetStopOnBlockStart) && !c.Is(css_lexer.KindEof) {
		prelude, err := parsePrelude(p)
		if err != nil {
			return parts, err
		}
		parts.Prelude = &prelude
	}

	switch c := p.Peek(); {
	case c.Is(css_lexer.KindLeftCurly):
		block, err := parseBlock(p)
		if err != nil {
			return parts, err
		}
		parts.Block = &block
	case c.Is(css_lexer.KindSemicolon):
		p.Hop(c)
		parts.Semicolon = &c
	}

	return parts, nil
}

// RequireAtRulePrelude converts a missing prelude into the structural error
// a concrete at-rule raises.
func RequireAtRulePrelude[P Node, B Node](parts AtRuleParts[P, B]) error {
	if parts.Prelude == nil {
		return MissingAtRulePrelude(parts.Name.Range())
	}
	return nil
}

func DisallowAtRulePrelude[P Node, B Node](parts AtRuleParts[P, B]) error {
	if parts.Prelude != nil {
		return DisallowedAtRulePrelude(parts.Name.Range())
	}
	return nil
}

func RequireAtRuleBlock[P Node, B Node](parts AtRuleParts[P, B]) error {
	if parts.Block == nil {
		return MissingAtRuleBlock(parts.Name.Range())
	}
	return nil
}

func DisallowAtRuleBlock[P Node, B Node](parts AtRuleParts[P, B]) error {
	if parts.Block != nil {
		return DisallowedAtRuleBlock(parts.Name.Range())
	}
	return nil
}

// RawPrelude captures an at-rule prelude as component values, for rules the
// parser does not otherwise understand.
type RawPrelude struct{ ComponentValues }

func ParseRawPrelude(p *Parser) (RawPrelude, error) {
	values, err := ParseComponentValues(p, css_lexer.KindSetStopOnBlockStart)
	return RawPrelude{values}, err
}

// RawBlock captures a braced block as component values.
type RawBlock struct{ SimpleBlock }

func ParseRawBlock(p *Parser) (RawBlock, error) {
	block, err := ParseSimpleBlock(p)
	return RawBlock{block}, err
}
