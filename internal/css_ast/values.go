package css_ast

// Numeric value grammars. Each node is a thin wrapper over one or a few
// cursors; validation happens at parse time so holding a node means the
// source really matched the grammar.

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

// Length is a dimension with a length unit, or a unitless zero.
type Length struct{ css_lexer.Cursor }

func ParseLength(p *css_parser.Parser) (Length, error) {
	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindDimension:
		if !c.Token.DimensionUnit().IsLength() {
			return Length{}, css_parser.UnexpectedDimension(p.ParseStrLower(c), c)
		}
		p.Hop(c)
		return Length{c}, nil

	case css_lexer.KindNumber:
		// Only zero may omit its unit
		if c.Token.Value() != 0 {
			return Length{}, css_parser.DisallowedValueWithoutDimension(p.ParseStr(c), c)
		}
		p.Hop(c)
		return Length{c}, nil
	}
	return Length{}, css_parser.ExpectedDimension(c)
}

func (l Length) Value() float32 {
	return l.Token.Value()
}

func (l Length) Unit() css_lexer.DimensionUnit {
	return l.Token.DimensionUnit()
}

// LengthPercentage additionally accepts a percentage dimension.
type LengthPercentage struct{ css_lexer.Cursor }

func ParseLengthPercentage(p *css_parser.Parser) (LengthPercentage, error) {
	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindDimension:
		unit := c.Token.DimensionUnit()
		if !unit.IsLength() && unit != css_lexer.UnitPercent {
			return LengthPercentage{}, css_parser.UnexpectedDimension(p.ParseStrLower(c), c)
		}
		p.Hop(c)
		return LengthPercentage{c}, nil

	case css_lexer.KindNumber:
		if c.Token.Value() != 0 {
			return LengthPercentage{}, css_parser.DisallowedValueWithoutDimension(p.ParseStr(c), c)
		}
		p.Hop(c)
		return LengthPercentage{c}, nil
	}
	return LengthPercentage{}, css_parser.ExpectedDimension(c)
}

func (l LengthPercentage) Value() float32 {
	return l.Token.Value()
}

func (l LengthPercentage) Unit() css_lexer.DimensionUnit {
	return l.Token.DimensionUnit()
}

// Percentage is a "%" dimension alone.
type Percentage struct{ css_lexer.Cursor }

func ParsePercentage(p *css_parser.Parser) (Percentage, error) {
	d, err := css_parser.ParseDimensionOfUnit(p, css_lexer.UnitPercent)
	return Percentage{d.Cursor}, err
}

func (pc Percentage) Value() float32 {
	return pc.Token.Value()
}

// Angle is a dimension with an angle unit.
type Angle struct{ css_lexer.Cursor }

func ParseAngle(p *css_parser.Parser) (Angle, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindDimension) {
		return Angle{}, css_parser.ExpectedDimension(c)
	}
	if !c.Token.DimensionUnit().IsAngle() {
		return Angle{}, css_parser.UnexpectedDimension(p.ParseStrLower(c), c)
	}
	p.Hop(c)
	return Angle{c}, nil
}

// Time is a dimension in seconds or milliseconds.
type Time struct{ css_lexer.Cursor }

func ParseTime(p *css_parser.Parser) (Time, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindDimension) {
		return Time{}, css_parser.ExpectedDimension(c)
	}
	if !c.Token.DimensionUnit().IsDuration() {
		return Time{}, css_parser.UnexpectedDimension(p.ParseStrLower(c), c)
	}
	p.Hop(c)
	return Time{c}, nil
}

// Resolution is a dimension in dpi, dpcm, dppx or x.
type Resolution struct{ css_lexer.Cursor }

func ParseResolution(p *css_parser.Parser) (Resolution, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindDimension) {
		return Resolution{}, css_parser.ExpectedDimension(c)
	}
	if !c.Token.DimensionUnit().IsResolution() {
		return Resolution{}, css_parser.UnexpectedDimension(p.ParseStrLower(c), c)
	}
	p.Hop(c)
	return Resolution{c}, nil
}

// Ratio is "<number> [/ <number>]". A missing denominator means 1.
type Ratio struct {
	Numerator   css_parser.Number
	Slash       *css_lexer.Cursor
	Denominator *css_parser.Number
}

func (r Ratio) ToCursors(s css_lexer.CursorSink) {
	r.Numerator.ToCursors(s)
	if r.Slash != nil {
		s.Append(*r.Slash)
	}
	if r.Denominator != nil {
		r.Denominator.ToCursors(s)
	}
}

func ParseRatio(p *css_parser.Parser) (Ratio, error) {
	var r Ratio

	numerator, err := css_parser.ParseNumber(p)
	if err != nil {
		return r, err
	}
	if numerator.Value() < 0 {
		return r, css_parser.NumberNotNegative(numerator.Value(), numerator.Cursor)
	}
	r.Numerator = numerator

	if c := p.Peek(); c.IsDelimChar('/') {
		p.Hop(c)
		r.Slash = &c
		denominator, err := css_parser.ParseNumber(p)
		if err != nil {
			return r, err
		}
		if denominator.Value() < 0 {
			return r, css_parser.NumberNotNegative(denominator.Value(), denominator.Cursor)
		}
		r.Denominator = &denominator
	}

	return r, nil
}

// Integer is a number token without a fractional component.
type Integer struct{ css_lexer.Cursor }

func ParseInteger(p *css_parser.Parser) (Integer, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindNumber) {
		return Integer{}, css_parser.ExpectedNumber(c)
	}
	if !c.Token.IsInt() {
		return Integer{}, css_parser.ExpectedInt(c.Token.Value(), c)
	}
	p.Hop(c)
	return Integer{c}, nil
}

func (i Integer) Value() int32 {
	return int32(i.Token.Value())
}
