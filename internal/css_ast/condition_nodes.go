package css_ast

// FeatureCondition is the concrete node shape shared by every condition
// list: @media conditions, @container conditions, @supports conditions and
// style queries all produce one of the four combinations.

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

type ConditionKind uint8

const (
	ConditionIs ConditionKind = iota
	ConditionNot
	ConditionAnd
	ConditionOr
)

type FeatureCondition[F css_parser.Node] struct {
	Kind ConditionKind

	// The "not" keyword of a Not condition
	Keyword *css_parser.ConditionKeyword

	// The single feature of an Is or Not condition
	Feature *F

	// The features and joining keywords of an And or Or condition
	Terms []css_parser.ConditionTerm[F]
}

func (c FeatureCondition[F]) ToCursors(s css_lexer.CursorSink) {
	if c.Keyword != nil {
		s.Append(c.Keyword.Cursor)
	}
	if c.Feature != nil {
		(*c.Feature).ToCursors(s)
	}
	for _, term := range c.Terms {
		term.ToCursors(s)
	}
}

func conditionOps[F css_parser.Node](parseFeature func(*css_parser.Parser) (F, error)) css_parser.ConditionOps[F, FeatureCondition[F]] {
	return css_parser.ConditionOps[F, FeatureCondition[F]]{
		ParseFeature: parseFeature,
		BuildIs: func(feature F) FeatureCondition[F] {
			return FeatureCondition[F]{Kind: ConditionIs, Feature: &feature}
		},
		BuildNot: func(keyword css_parser.ConditionKeyword, feature F) FeatureCondition[F] {
			return FeatureCondition[F]{Kind: ConditionNot, Keyword: &keyword, Feature: &feature}
		},
		BuildAnd: func(terms []css_parser.ConditionTerm[F]) FeatureCondition[F] {
			return FeatureCondition[F]{Kind: ConditionAnd, Terms: terms}
		},
		BuildOr: func(terms []css_parser.ConditionTerm[F]) FeatureCondition[F] {
			return FeatureCondition[F]{Kind: ConditionOr, Terms: terms}
		},
	}
}

func parseFeatureCondition[F css_parser.Node](p *css_parser.Parser, parseFeature func(*css_parser.Parser) (F, error)) (FeatureCondition[F], error) {
	return css_parser.ParseCondition(p, conditionOps(parseFeature))
}
