package css_ast

// The @keyframes rule. The prelude is a name (ident or string); certain
// CSS-wide keywords are reserved as idents and must be quoted instead.
// Each keyframe block selects offsets with "from", "to" or percentages,
// and its declarations must not carry "!important".
//
// Reference: https://drafts.csswg.org/css-animations-1/

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

// KeyframesName is the animation name.
type KeyframesName struct{ css_lexer.Cursor }

func isReservedKeyframeName(name string) bool {
	switch name {
	case "none", "initial", "inherit", "unset", "revert", "revert-layer", "default":
		return true
	}
	return false
}

func ParseKeyframesName(p *css_parser.Parser) (KeyframesName, error) {
	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindIdent:
		if name := p.ParseAtomLower(c); isReservedKeyframeName(name) {
			return KeyframesName{}, css_parser.ReservedKeyframeName(name, c)
		}
		p.Hop(c)
		return KeyframesName{c}, nil

	case css_lexer.KindString:
		p.Hop(c)
		return KeyframesName{c}, nil
	}
	return KeyframesName{}, css_parser.ExpectedIdent(c)
}

// KeyframeSelector is "from", "to" or a percentage.
type KeyframeSelector struct{ css_lexer.Cursor }

func ParseKeyframeSelector(p *css_parser.Parser) (KeyframeSelector, error) {
	c := p.Peek()
	switch {
	case c.Is(css_lexer.KindIdent):
		if !p.EqIgnoreASCIICase(c, "from") && !p.EqIgnoreASCIICase(c, "to") {
			return KeyframeSelector{}, css_parser.ExpectedIdentOf("from", p.ParseStrLower(c), c)
		}
		p.Hop(c)
		return KeyframeSelector{c}, nil

	case c.Token.IsUnit(css_lexer.UnitPercent):
		p.Hop(c)
		return KeyframeSelector{c}, nil
	}
	return KeyframeSelector{}, css_parser.Unexpected(c)
}

// KeyframeBlock is "<selectors> { declarations }".
type KeyframeBlock struct {
	Selectors css_parser.Separated[KeyframeSelector]
	Block     DeclarationBlock
}

func (b KeyframeBlock) ToCursors(s css_lexer.CursorSink) {
	b.Selectors.ToCursors(s)
	b.Block.ToCursors(s)
}

func ParseKeyframeBlock(p *css_parser.Parser) (KeyframeBlock, error) {
	var b KeyframeBlock

	selectors, err := css_parser.ParseSeparated(p, css_lexer.KindComma, ParseKeyframeSelector)
	if err != nil {
		return b, err
	}
	b.Selectors = selectors

	block, err := ParseDeclarationBlock(p)
	if err != nil {
		return b, err
	}
	for _, item := range block.Items {
		if d, ok := item.(css_parser.Declaration[StyleValue]); ok && d.Important != nil {
			p.Warn(css_parser.DisallowedImportant(d.Important.Bang))
		}
	}
	b.Block = block
	return b, nil
}

// KeyframesBody is the "{ <keyframe-block>* }" of the rule.
type KeyframesBody struct {
	Open   css_lexer.Cursor
	Blocks []KeyframeBlock
	Close  *css_lexer.Cursor
}

func (b KeyframesBody) ToCursors(s css_lexer.CursorSink) {
	s.Append(b.Open)
	for _, block := range b.Blocks {
		block.ToCursors(s)
	}
	if b.Close != nil {
		s.Append(*b.Close)
	}
}

func ParseKeyframesBody(p *css_parser.Parser) (KeyframesBody, error) {
	var body KeyframesBody

	open, err := css_parser.ParseLeftCurly(p)
	if err != nil {
		return body, err
	}
	body.Open = open.Cursor

	for {
		c := p.Peek()
		if c.Is(css_lexer.KindRightCurly) {
			p.Hop(c)
			body.Close = &c
			return body, nil
		}
		if c.Is(css_lexer.KindEof) {
			p.Warn(css_parser.UnexpectedEnd(c.Range()))
			return body, nil
		}
		block, err := ParseKeyframeBlock(p)
		if err != nil {
			return body, err
		}
		body.Blocks = append(body.Blocks, block)
	}
}

type KeyframesRule struct {
	css_parser.AtRuleParts[KeyframesName, KeyframesBody]
}

func (KeyframesRule) isRule() {}

func ParseKeyframesRule(p *css_parser.Parser) (KeyframesRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "", ParseKeyframesName, ParseKeyframesBody)
	if err != nil {
		return KeyframesRule{}, err
	}
	if err := css_parser.RequireAtRulePrelude(parts); err != nil {
		return KeyframesRule{}, err
	}
	if err := css_parser.RequireAtRuleBlock(parts); err != nil {
		return KeyframesRule{}, err
	}
	return KeyframesRule{parts}, nil
}
