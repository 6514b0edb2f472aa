package css_parser

// Media and container features come in three grammars. A ranged feature
// accepts the full range context:
//
//	(feature)
//	(feature: value)
//	(feature op value)
//	(value op feature)
//	(value op feature op value)
//
// with op one of <, <=, =, >=, >. A discrete feature accepts "(feature)"
// and "(feature: keyword)"; a boolean feature only "(feature)". The legacy
// "min-"/"max-" prefixes remain valid in the colon form and are rejected in
// the range context.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

type RangeOp uint8

const (
	RangeOpEq RangeOp = iota
	RangeOpLt
	RangeOpLe
	RangeOpGt
	RangeOpGe
)

func (op RangeOp) String() string {
	switch op {
	case RangeOpLt:
		return "<"
	case RangeOpLe:
		return "<="
	case RangeOpGt:
		return ">"
	case RangeOpGe:
		return ">="
	}
	return "="
}

// RangeComparison is one or two adjacent delimiter cursors forming an op.
type RangeComparison struct {
	First  css_lexer.Cursor
	Second *css_lexer.Cursor
	Op     RangeOp
}

func (r RangeComparison) ToCursors(s css_lexer.CursorSink) {
	s.Append(r.First)
	if r.Second != nil {
		s.Append(*r.Second)
	}
}

func PeekRangeComparison(p *Parser, c css_lexer.Cursor) bool {
	return c.IsDelimChar('<') || c.IsDelimChar('>') || c.IsDelimChar('=')
}

// ParseRangeComparison reads an op. The "=" of "<=" and ">=" must be
// adjacent to the first character, so the second read runs with an empty
// skip-set.
func ParseRangeComparison(p *Parser) (RangeComparison, error) {
	c := p.Peek()
	switch {
	case c.IsDelimChar('='):
		p.Hop(c)
		return RangeComparison{First: c, Op: RangeOpEq}, nil

	case c.IsDelimChar('<'), c.IsDelimChar('>'):
		p.Hop(c)
		op := RangeOpLt
		if c.IsDelimChar('>') {
			op = RangeOpGt
		}
		prev := p.SetSkip(css_lexer.KindSetNone)
		eq := p.Peek()
		if eq.IsDelimChar('=') {
			p.Hop(eq)
			p.SetSkip(prev)
			if op == RangeOpLt {
				op = RangeOpLe
			} else {
				op = RangeOpGe
			}
			return RangeComparison{First: c, Second: &eq, Op: op}, nil
		}
		p.SetSkip(prev)
		return RangeComparison{First: c, Op: op}, nil
	}
	return RangeComparison{}, ExpectedDelim(c)
}

type RangedFeatureKind uint8

const (
	// "(feature)"
	RangedFeatureBoolean RangedFeatureKind = iota
	// "(feature: value)", also the legacy min-/max- form
	RangedFeaturePlain
	// "(value op feature)"
	RangedFeatureLeft
	// "(feature op value)"
	RangedFeatureRight
	// "(value op feature op value)"
	RangedFeatureDual
)

type RangedFeature[V Node] struct {
	Open css_lexer.Cursor
	Name css_lexer.Cursor

	// Plain form
	Colon *css_lexer.Cursor
	Value *V

	// Range context
	LeftValue  *V
	LeftOp     *RangeComparison
	RightOp    *RangeComparison
	RightValue *V

	Close css_lexer.Cursor
	Kind  RangedFeatureKind
}

func (f RangedFeature[V]) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Open)
	switch f.Kind {
	case RangedFeatureBoolean:
		s.Append(f.Name)
	case RangedFeaturePlain:
		s.Append(f.Name)
		if f.Colon != nil {
			s.Append(*f.Colon)
		}
		AppendOptional(s, f.Value)
	case RangedFeatureLeft:
		AppendOptional(s, f.LeftValue)
		if f.LeftOp != nil {
			f.LeftOp.ToCursors(s)
		}
		s.Append(f.Name)
	case RangedFeatureRight:
		s.Append(f.Name)
		if f.RightOp != nil {
			f.RightOp.ToCursors(s)
		}
		AppendOptional(s, f.RightValue)
	case RangedFeatureDual:
		AppendOptional(s, f.LeftValue)
		if f.LeftOp != nil {
			f.LeftOp.ToCursors(s)
		}
		s.Append(f.Name)
		if f.RightOp != nil {
			f.RightOp.ToCursors(s)
		}
		AppendOptional(s, f.RightValue)
	}
	s.Append(f.Close)
}

// matchRangedName reports whether the lowered ident names this feature,
// and whether it did so through a legacy "min-"/"max-" prefix.
func matchRangedName(name string, names []string) (match bool, legacy bool) {
	trimmed := name
	if len(name) > 4 && (name[:4] == "min-" || name[:4] == "max-") {
		trimmed = name[4:]
		legacy = true
	}
	for _, candidate := range names {
		if name == candidate {
			return true, false
		}
		if legacy && trimmed == candidate {
			return true, true
		}
	}
	return false, false
}

// ParseRangedFeature parses the full range context for the given feature
// names. Values are parsed by the supplied function, which keeps the same
// grammar usable for lengths, ratios and any other comparable value.
func ParseRangedFeature[V Node](p *Parser, names []string, parseValue func(*Parser) (V, error)) (RangedFeature[V], error) {
	var f RangedFeature[V]

	open, err := ParseLeftParen(p)
	if err != nil {
		return f, err
	}
	f.Open = open.Cursor

	if c := p.Peek(); c.Is(css_lexer.KindIdent) {
		if match, legacy := matchRangedName(p.ParseStrLower(c), names); match {
			p.Hop(c)
			f.Name = c
			return parseRangedAfterName(p, f, legacy, parseValue)
		}
	}

	// Value-first: "(value op feature [op value])"
	left, err := parseValue(p)
	if err != nil {
		return f, err
	}
	f.LeftValue = &left

	leftOp, err := ParseRangeComparison(p)
	if err != nil {
		return f, err
	}
	f.LeftOp = &leftOp

	name, err := ParseIdent(p)
	if err != nil {
		return f, err
	}
	lowered := p.ParseStrLower(name.Cursor)
	if match, legacy := matchRangedName(lowered, names); !match || legacy {
		// The range context disallows the prefixed legacy spellings
		return f, UnexpectedIdent(lowered, name.Cursor)
	}
	f.Name = name.Cursor

	if c := p.Peek(); PeekRangeComparison(p, c) {
		rightOp, err := ParseRangeComparison(p)
		if err != nil {
			return f, err
		}
		if leftOp.Op == RangeOpEq && rightOp.Op == RangeOpEq {
			return f, UnexpectedMediaRangeComparisonEqualsTwice(rightOp.First)
		}
		f.RightOp = &rightOp

		right, err := parseValue(p)
		if err != nil {
			return f, err
		}
		f.RightValue = &right
		f.Kind = RangedFeatureDual
	} else {
		f.Kind = RangedFeatureLeft
	}

	return finishRangedFeature(p, f)
}

func parseRangedAfterName[V Node](p *Parser, f RangedFeature[V], legacy bool, parseValue func(*Parser) (V, error)) (RangedFeature[V], error) {
	c := p.Peek()
	switch {
	case c.Is(css_lexer.KindRightParen):
		// The boolean form never takes the legacy prefixes
		if legacy {
			return f, UnexpectedIdent(p.ParseStrLower(f.Name), f.Name)
		}
		p.Hop(c)
		f.Close = c
		f.Kind = RangedFeatureBoolean
		return f, nil

	case c.Is(css_lexer.KindColon):
		p.Hop(c)
		f.Colon = &c
		value, err := parseValue(p)
		if err != nil {
			return f, err
		}
		f.Value = &value
		f.Kind = RangedFeaturePlain
		return finishRangedFeature(p, f)

	case PeekRangeComparison(p, c):
		// The range context disallows the prefixed legacy spellings
		if legacy {
			return f, UnexpectedIdent(p.ParseStrLower(f.Name), f.Name)
		}
		op, err := ParseRangeComparison(p)
		if err != nil {
			return f, err
		}
		f.RightOp = &op
		value, err := parseValue(p)
		if err != nil {
			return f, err
		}
		f.RightValue = &value
		f.Kind = RangedFeatureRight
		return finishRangedFeature(p, f)
	}
	return f, Unexpected(c)
}

func finishRangedFeature[V Node](p *Parser, f RangedFeature[V]) (RangedFeature[V], error) {
	close, err := ParseRightParen(p)
	if err != nil {
		return f, err
	}
	f.Close = close.Cursor
	return f, nil
}

// DiscreteFeature is "(feature)" or "(feature: keyword)" with the keyword
// drawn from a closed set.
type DiscreteFeature[K ~uint8] struct {
	Open  css_lexer.Cursor
	Name  css_lexer.Cursor
	Colon *css_lexer.Cursor
	Value *Keyword[K]
	Close css_lexer.Cursor
}

func (f DiscreteFeature[K]) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Open)
	s.Append(f.Name)
	if f.Colon != nil {
		s.Append(*f.Colon)
	}
	if f.Value != nil {
		s.Append(f.Value.Cursor)
	}
	s.Append(f.Close)
}

func ParseDiscreteFeature[K ~uint8](p *Parser, name string, keywords KeywordSet[K]) (DiscreteFeature[K], error) {
	var f DiscreteFeature[K]

	open, err := ParseLeftParen(p)
	if err != nil {
		return f, err
	}
	f.Open = open.Cursor

	ident, err := ParseIdent(p)
	if err != nil {
		return f, err
	}
	if !p.EqIgnoreASCIICase(ident.Cursor, name) {
		return f, ExpectedIdentOf(name, p.ParseStrLower(ident.Cursor), ident.Cursor)
	}
	f.Name = ident.Cursor

	if c := p.Peek(); c.Is(css_lexer.KindColon) {
		p.Hop(c)
		f.Colon = &c
		value, err := keywords.Parse(p)
		if err != nil {
			return f, err
		}
		f.Value = &value
	}

	close, err := ParseRightParen(p)
	if err != nil {
		return f, err
	}
	f.Close = close.Cursor
	return f, nil
}

// BooleanFeature is a bare "(feature)".
type BooleanFeature struct {
	Open  css_lexer.Cursor
	Name  css_lexer.Cursor
	Close css_lexer.Cursor
}

func (f BooleanFeature) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Open)
	s.Append(f.Name)
	s.Append(f.Close)
}

func ParseBooleanFeature(p *Parser, name string) (BooleanFeature, error) {
	var f BooleanFeature

	open, err := ParseLeftParen(p)
	if err != nil {
		return f, err
	}
	f.Open = open.Cursor

	ident, err := ParseIdent(p)
	if err != nil {
		return f, err
	}
	if !p.EqIgnoreASCIICase(ident.Cursor, name) {
		return f, ExpectedIdentOf(name, p.ParseStrLower(ident.Cursor), ident.Cursor)
	}
	f.Name = ident.Cursor

	close, err := ParseRightParen(p)
	if err != nil {
		return f, err
	}
	f.Close = close.Cursor
	return f, nil
}
