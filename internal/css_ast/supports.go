package css_ast

// The @supports rule. Features are parenthesised declarations or
// selector(...) tests; the condition-list shape is shared with @media and
// @container.
//
// Reference: https://drafts.csswg.org/css-conditional-3/

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

type SupportsRule struct {
	css_parser.AtRuleParts[SupportsCondition, RuleBlock]
}

func (SupportsRule) isRule() {}

func ParseSupportsRule(p *css_parser.Parser) (SupportsRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "supports", ParseSupportsCondition, ParseRuleBlock)
	if err != nil {
		return SupportsRule{}, err
	}
	if err := css_parser.RequireAtRulePrelude(parts); err != nil {
		return SupportsRule{}, err
	}
	if err := css_parser.RequireAtRuleBlock(parts); err != nil {
		return SupportsRule{}, err
	}
	return SupportsRule{parts}, nil
}

type SupportsCondition struct {
	FeatureCondition[SupportsFeature]
}

func ParseSupportsCondition(p *css_parser.Parser) (SupportsCondition, error) {
	inner, err := parseFeatureCondition(p, ParseSupportsFeature)
	if err != nil {
		return SupportsCondition{}, err
	}
	return SupportsCondition{inner}, nil
}

type SupportsFeature interface {
	css_parser.Node
	isSupportsFeature()
}

// SupportsConditionParen is a nested parenthesised condition.
type SupportsConditionParen struct {
	Open      css_lexer.Cursor
	Condition SupportsCondition
	Close     css_lexer.Cursor
}

func (f SupportsConditionParen) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Open)
	f.Condition.ToCursors(s)
	s.Append(f.Close)
}

// SupportsDeclaration is "(property: value)".
type SupportsDeclaration struct {
	Open        css_lexer.Cursor
	Declaration css_parser.Declaration[css_parser.ComponentValues]
	Close       css_lexer.Cursor
}

func (f SupportsDeclaration) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Open)
	f.Declaration.ToCursors(s)
	s.Append(f.Close)
}

// SupportsSelector is "selector(<complex-selector>)".
type SupportsSelector struct {
	Function css_lexer.Cursor
	Selector ComplexSelector
	Close    *css_lexer.Cursor
}

func (f SupportsSelector) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Function)
	f.Selector.ToCursors(s)
	if f.Close != nil {
		s.Append(*f.Close)
	}
}

// SupportsGeneralEnclosed preserves unknown feature tests.
type SupportsGeneralEnclosed struct {
	Value css_parser.ComponentValue
}

func (f SupportsGeneralEnclosed) ToCursors(s css_lexer.CursorSink) {
	f.Value.ToCursors(s)
}

func (SupportsConditionParen) isSupportsFeature()  {}
func (SupportsDeclaration) isSupportsFeature()     {}
func (SupportsSelector) isSupportsFeature()        {}
func (SupportsGeneralEnclosed) isSupportsFeature() {}

func ParseSupportsFeature(p *css_parser.Parser) (SupportsFeature, error) {
	c := p.Peek()

	if c.Is(css_lexer.KindFunction) {
		if p.EqIgnoreASCIICase(c, "selector") {
			return parseSupportsSelector(p)
		}
		value, err := css_parser.ParseComponentValue(p)
		if err != nil {
			return nil, err
		}
		return SupportsGeneralEnclosed{Value: value}, nil
	}

	if !c.Is(css_lexer.KindLeftParen) {
		return nil, css_parser.ExpectedKind(css_lexer.KindLeftParen, c)
	}

	// "(not ...)", "((...) and (...))" and similar nest a full condition
	if inner := p.PeekN(2); inner.Is(css_lexer.KindLeftParen) || inner.Is(css_lexer.KindFunction) ||
		(inner.Is(css_lexer.KindIdent) && p.EqIgnoreASCIICase(inner, "not")) {
		p.Hop(c)
		condition, err := ParseSupportsCondition(p)
		if err != nil {
			return nil, err
		}
		close, err := css_parser.ParseRightParen(p)
		if err != nil {
			return nil, err
		}
		return SupportsConditionParen{Open: c, Condition: condition, Close: close.Cursor}, nil
	}

	// "(property: value)"
	if inner := p.PeekN(2); inner.Is(css_lexer.KindIdent) && p.PeekN(3).Is(css_lexer.KindColon) {
		p.Hop(c)
		declaration, err := css_parser.ParseDeclarationWith(p, parseStyleQueryValue)
		if err != nil {
			return nil, err
		}
		close, err := css_parser.ParseRightParen(p)
		if err != nil {
			return nil, err
		}
		return SupportsDeclaration{Open: c, Declaration: declaration, Close: close.Cursor}, nil
	}

	block, err := css_parser.ParseSimpleBlock(p)
	if err != nil {
		return nil, err
	}
	return SupportsGeneralEnclosed{Value: block}, nil
}

func parseSupportsSelector(p *css_parser.Parser) (SupportsSelector, error) {
	var f SupportsSelector

	function, err := css_parser.ParseFunction(p)
	if err != nil {
		return f, err
	}
	f.Function = function.Cursor

	selector, err := ParseComplexSelector(p)
	if err != nil {
		return f, err
	}
	f.Selector = selector

	close, err := css_parser.ParseRightParen(p)
	if err != nil {
		return f, err
	}
	f.Close = &close.Cursor
	return f, nil
}
