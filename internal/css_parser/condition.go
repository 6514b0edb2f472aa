package css_parser

// The shared feature-condition grammar used by @media, @container,
// @supports and style queries:
//
//	not <feature>
//	<feature> [ and <feature> ]*
//	<feature> [ or <feature> ]*
//
// "and" and "or" must not mix at one nesting level; a parenthesised inner
// condition is itself a feature, which is how mixing nests legally.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

// ConditionKeyword is a "not", "and" or "or" keyword cursor.
type ConditionKeyword struct{ css_lexer.Cursor }

// ConditionTerm pairs a feature with the keyword that follows it, if any.
// The trailing keyword layout keeps ToCursors in source order.
type ConditionTerm[F Node] struct {
	Feature F
	Keyword *ConditionKeyword
}

func (t ConditionTerm[F]) ToCursors(s css_lexer.CursorSink) {
	t.Feature.ToCursors(s)
	if t.Keyword != nil {
		s.Append(t.Keyword.Cursor)
	}
}

// ConditionOps supplies the constructors for a concrete condition type.
type ConditionOps[F Node, C any] struct {
	ParseFeature func(*Parser) (F, error)
	BuildIs      func(F) C
	BuildNot     func(ConditionKeyword, F) C
	BuildAnd     func([]ConditionTerm[F]) C
	BuildOr      func([]ConditionTerm[F]) C
}

// ParseCondition drives the shared algorithm.
func ParseCondition[F Node, C any](p *Parser, ops ConditionOps[F, C]) (C, error) {
	var zero C

	if c := p.Peek(); c.Is(css_lexer.KindIdent) && p.EqIgnoreASCIICase(c, "not") {
		p.Hop(c)
		feature, err := ops.ParseFeature(p)
		if err != nil {
			return zero, err
		}
		return ops.BuildNot(ConditionKeyword{c}, feature), nil
	}

	first, err := ops.ParseFeature(p)
	if err != nil {
		return zero, err
	}

	combinator, ok := peekConditionKeyword(p)
	if !ok {
		return ops.BuildIs(first), nil
	}

	word := p.ParseAtomLower(combinator)
	terms := []ConditionTerm[F]{{Feature: first}}
	for {
		c, ok := peekConditionKeyword(p)
		if !ok {
			break
		}
		if p.ParseAtomLower(c) != word {
			// "(a) and (b) or (c)" needs parentheses to disambiguate
			return zero, UnexpectedIdent(p.ParseAtomLower(c), c)
		}
		p.Hop(c)
		keyword := ConditionKeyword{c}
		terms[len(terms)-1].Keyword = &keyword

		feature, err := ops.ParseFeature(p)
		if err != nil {
			return zero, err
		}
		terms = append(terms, ConditionTerm[F]{Feature: feature})
	}

	if word == "and" {
		return ops.BuildAnd(terms), nil
	}
	return ops.BuildOr(terms), nil
}

func peekConditionKeyword(p *Parser) (css_lexer.Cursor, bool) {
	c := p.Peek()
	if !c.Is(css_lexer.KindIdent) {
		return c, false
	}
	if p.EqIgnoreASCIICase(c, "and") || p.EqIgnoreASCIICase(c, "or") {
		return c, true
	}
	return c, false
}
