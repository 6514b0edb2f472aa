package css_ast

// The @container rule. The prelude is an optional container name followed
// by a container condition: size features in the familiar condition-list
// shape, or a style(...) query over declarations.
//
// Reference: https://drafts.csswg.org/css-contain-3/

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

type ContainerRule struct {
	css_parser.AtRuleParts[ContainerPrelude, RuleBlock]
}

func (ContainerRule) isRule() {}

func ParseContainerRule(p *css_parser.Parser) (ContainerRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "container", ParseContainerPrelude, ParseRuleBlock)
	if err != nil {
		return ContainerRule{}, err
	}
	if err := css_parser.RequireAtRulePrelude(parts); err != nil {
		return ContainerRule{}, err
	}
	if err := css_parser.RequireAtRuleBlock(parts); err != nil {
		return ContainerRule{}, err
	}
	return ContainerRule{parts}, nil
}

// ContainerCondition is a FeatureCondition over container features.
type ContainerCondition struct {
	FeatureCondition[ContainerFeature]
}

type ContainerPrelude struct {
	// An optional container name restricting which containers apply
	Name *css_lexer.Cursor

	Condition ContainerCondition
}

func (cp ContainerPrelude) ToCursors(s css_lexer.CursorSink) {
	if cp.Name != nil {
		s.Append(*cp.Name)
	}
	cp.Condition.ToCursors(s)
}

func isReservedContainerName(name string) bool {
	switch name {
	case "none", "and", "not", "or":
		return true
	}
	return false
}

func ParseContainerPrelude(p *css_parser.Parser) (ContainerPrelude, error) {
	var prelude ContainerPrelude

	if c := p.Peek(); c.Is(css_lexer.KindIdent) && !isReservedContainerName(p.ParseAtomLower(c)) {
		p.Hop(c)
		prelude.Name = &c
	}

	inner, err := parseFeatureCondition(p, ParseContainerFeature)
	if err != nil {
		return prelude, err
	}
	prelude.Condition = ContainerCondition{inner}
	return prelude, nil
}

// ContainerFeature is one parenthesised term of a container condition.
type ContainerFeature interface {
	css_parser.Node
	isContainerFeature()
}

// ContainerConditionParen is a nested parenthesised condition.
type ContainerConditionParen struct {
	Open      css_lexer.Cursor
	Condition ContainerCondition
	Close     css_lexer.Cursor
}

func (f ContainerConditionParen) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Open)
	f.Condition.ToCursors(s)
	s.Append(f.Close)
}

// Size features

type WidthContainerFeature struct {
	css_parser.RangedFeature[Length]
}
type HeightContainerFeature struct {
	css_parser.RangedFeature[Length]
}
type InlineSizeContainerFeature struct {
	css_parser.RangedFeature[Length]
}
type BlockSizeContainerFeature struct {
	css_parser.RangedFeature[Length]
}
type AspectRatioContainerFeature struct {
	css_parser.RangedFeature[Ratio]
}
type OrientationContainerFeature struct {
	css_parser.DiscreteFeature[OrientationKeyword]
}

// StyleQuery is "style(<declaration>)": a style query over a single
// declaration, kept raw because any property may appear.
type StyleQuery struct {
	Function css_lexer.Cursor
	Query    css_parser.Declaration[css_parser.ComponentValues]
	Close    *css_lexer.Cursor
}

func (q StyleQuery) ToCursors(s css_lexer.CursorSink) {
	s.Append(q.Function)
	q.Query.ToCursors(s)
	if q.Close != nil {
		s.Append(*q.Close)
	}
}

// ContainerGeneralEnclosed preserves unknown container features.
type ContainerGeneralEnclosed struct {
	Value css_parser.ComponentValue
}

func (f ContainerGeneralEnclosed) ToCursors(s css_lexer.CursorSink) {
	f.Value.ToCursors(s)
}

func (ContainerConditionParen) isContainerFeature()     {}
func (WidthContainerFeature) isContainerFeature()       {}
func (HeightContainerFeature) isContainerFeature()      {}
func (InlineSizeContainerFeature) isContainerFeature()  {}
func (BlockSizeContainerFeature) isContainerFeature()   {}
func (AspectRatioContainerFeature) isContainerFeature() {}
func (OrientationContainerFeature) isContainerFeature() {}
func (StyleQuery) isContainerFeature()                  {}
func (ContainerGeneralEnclosed) isContainerFeature()    {}

func ParseContainerFeature(p *css_parser.Parser) (ContainerFeature, error) {
	c := p.Peek()

	if c.Is(css_lexer.KindFunction) {
		if p.EqIgnoreASCIICase(c, "style") {
			return parseStyleQuery(p)
		}
		value, err := css_parser.ParseComponentValue(p)
		if err != nil {
			return nil, err
		}
		return ContainerGeneralEnclosed{Value: value}, nil
	}

	if !c.Is(css_lexer.KindLeftParen) {
		return nil, css_parser.ExpectedKind(css_lexer.KindLeftParen, c)
	}

	if inner := p.PeekN(2); inner.Is(css_lexer.KindLeftParen) ||
		(inner.Is(css_lexer.KindIdent) && p.EqIgnoreASCIICase(inner, "not") && p.PeekN(3).Is(css_lexer.KindLeftParen)) {
		p.Hop(c)
		innerCondition, err := parseFeatureCondition(p, ParseContainerFeature)
		if err != nil {
			return nil, err
		}
		close, err := css_parser.ParseRightParen(p)
		if err != nil {
			return nil, err
		}
		return ContainerConditionParen{Open: c, Condition: ContainerCondition{innerCondition}, Close: close.Cursor}, nil
	}

	if name, ok := featureNameInParens(p); ok {
		if feature, handled, err := parseKnownContainerFeature(p, name); handled {
			return feature, err
		}
	}

	block, err := css_parser.ParseSimpleBlock(p)
	if err != nil {
		return nil, err
	}
	return ContainerGeneralEnclosed{Value: block}, nil
}

func parseKnownContainerFeature(p *css_parser.Parser, name string) (ContainerFeature, bool, error) {
	if len(name) > 4 && (name[:4] == "min-" || name[:4] == "max-") {
		name = name[4:]
	}

	switch name {
	case "width":
		f, err := css_parser.ParseRangedFeature(p, []string{"width"}, ParseLength)
		return WidthContainerFeature{f}, true, err
	case "height":
		f, err := css_parser.ParseRangedFeature(p, []string{"height"}, ParseLength)
		return HeightContainerFeature{f}, true, err
	case "inline-size":
		f, err := css_parser.ParseRangedFeature(p, []string{"inline-size"}, ParseLength)
		return InlineSizeContainerFeature{f}, true, err
	case "block-size":
		f, err := css_parser.ParseRangedFeature(p, []string{"block-size"}, ParseLength)
		return BlockSizeContainerFeature{f}, true, err
	case "aspect-ratio":
		f, err := css_parser.ParseRangedFeature(p, []string{"aspect-ratio"}, ParseRatio)
		return AspectRatioContainerFeature{f}, true, err
	case "orientation":
		f, err := css_parser.ParseDiscreteFeature(p, "orientation", orientationKeywords)
		return OrientationContainerFeature{f}, true, err
	}
	return nil, false, nil
}

func parseStyleQuery(p *css_parser.Parser) (StyleQuery, error) {
	var q StyleQuery

	function, err := css_parser.ParseFunction(p)
	if err != nil {
		return q, err
	}
	q.Function = function.Cursor

	declaration, err := css_parser.ParseDeclarationWith(p, parseStyleQueryValue)
	if err != nil {
		return q, err
	}
	q.Query = declaration

	close := p.Peek()
	if !close.Is(css_lexer.KindRightParen) {
		return q, css_parser.ExpectedKind(css_lexer.KindRightParen, close)
	}
	p.Hop(close)
	q.Close = &close
	return q, nil
}

func parseStyleQueryValue(p *css_parser.Parser, _ css_lexer.Cursor) (css_parser.ComponentValues, error) {
	return css_parser.ParseComponentValues(p, css_lexer.KindSetRightParen)
}
