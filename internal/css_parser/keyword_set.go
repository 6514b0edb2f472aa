package css_parser

// Keyword sets give grammars typed dispatch over a closed set of names.
// The map is keyed by the lowercased spelling, so escaped or mixed-case
// source still routes to the right variant while the cursor keeps the
// original bytes for serialisation.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

// Keyword is a single matched token paired with which variant it matched.
type Keyword[T ~uint8] struct {
	css_lexer.Cursor
	Value T
}

type KeywordSet[T ~uint8] struct {
	m    map[string]T
	kind css_lexer.Kind
}

// NewKeywordSet matches Ident tokens.
func NewKeywordSet[T ~uint8](m map[string]T) KeywordSet[T] {
	return KeywordSet[T]{kind: css_lexer.KindIdent, m: m}
}

// NewFunctionSet matches Function tokens by their name.
func NewFunctionSet[T ~uint8](m map[string]T) KeywordSet[T] {
	return KeywordSet[T]{kind: css_lexer.KindFunction, m: m}
}

// NewAtKeywordSet matches AtKeyword tokens by their name without the "@".
func NewAtKeywordSet[T ~uint8](m map[string]T) KeywordSet[T] {
	return KeywordSet[T]{kind: css_lexer.KindAtKeyword, m: m}
}

func (ks KeywordSet[T]) Peek(p *Parser, c css_lexer.Cursor) bool {
	_, ok := ks.Match(p, c)
	return ok
}

// Match reports which variant the cursor names, without advancing.
func (ks KeywordSet[T]) Match(p *Parser, c css_lexer.Cursor) (T, bool) {
	var zero T
	if !c.Is(ks.kind) {
		return zero, false
	}
	value, ok := ks.m[p.ParseAtomLower(c)]
	if !ok {
		return zero, false
	}
	return value, true
}

// Build wraps an already-vetted cursor; it must only be called after Match.
func (ks KeywordSet[T]) Build(p *Parser, c css_lexer.Cursor) Keyword[T] {
	value, _ := ks.Match(p, c)
	return Keyword[T]{Cursor: c, Value: value}
}

func (ks KeywordSet[T]) Parse(p *Parser) (Keyword[T], error) {
	c := p.Peek()
	value, ok := ks.Match(p, c)
	if !ok {
		switch ks.kind {
		case css_lexer.KindFunction:
			if !c.Is(css_lexer.KindFunction) {
				return Keyword[T]{}, ExpectedFunction(c)
			}
			return Keyword[T]{}, UnexpectedFunction(p.ParseStrLower(c), c)
		case css_lexer.KindAtKeyword:
			if !c.Is(css_lexer.KindAtKeyword) {
				return Keyword[T]{}, ExpectedAtKeyword(c)
			}
			return Keyword[T]{}, UnexpectedAtRule(p.ParseStrLower(c), c)
		default:
			if !c.Is(css_lexer.KindIdent) {
				return Keyword[T]{}, ExpectedIdent(c)
			}
			return Keyword[T]{}, UnexpectedIdent(p.ParseStrLower(c), c)
		}
	}
	p.Hop(c)
	return Keyword[T]{Cursor: c, Value: value}, nil
}
