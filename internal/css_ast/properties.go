package css_ast

// Typed declaration values. A modest set of properties parses into typed
// values; everything else, every custom property, and any value leaning on
// var()/env()/math functions is captured as raw component values instead.
// A typed parse that fails falls back to the raw form with a warning, so a
// stylesheet never loses a declaration to a value the table cannot model.

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

type StyleValue interface {
	css_parser.Node
	isStyleValue()
}

// RawValue is the untyped fallback: the value as component values.
type RawValue struct {
	css_parser.ComponentValues
}

// ColorValue wraps a parsed color.
type ColorValue struct {
	Color Color
}

func (v ColorValue) ToCursors(s css_lexer.CursorSink) {
	v.Color.ToCursors(s)
}

// DimensionValue wraps a length or percentage.
type DimensionValue struct {
	LengthPercentage
}

// NumberValue wraps a bare number.
type NumberValue struct {
	css_parser.Number
}

// IntegerValue wraps an integer.
type IntegerValue struct {
	Integer
}

// KeywordValue is a single keyword drawn from the property's allowed set
// or the CSS-wide keywords.
type KeywordValue struct{ css_lexer.Cursor }

// DisplayValue is the display grammar: a single-keyword form, or an
// outside/inside pair optionally combined with "list-item".
type DisplayValue struct {
	First  css_lexer.Cursor
	Second *css_lexer.Cursor
	Third  *css_lexer.Cursor
}

func (v DisplayValue) ToCursors(s css_lexer.CursorSink) {
	s.Append(v.First)
	if v.Second != nil {
		s.Append(*v.Second)
	}
	if v.Third != nil {
		s.Append(*v.Third)
	}
}

func (RawValue) isStyleValue()       {}
func (ColorValue) isStyleValue()     {}
func (DimensionValue) isStyleValue() {}
func (NumberValue) isStyleValue()    {}
func (IntegerValue) isStyleValue()   {}
func (KeywordValue) isStyleValue()   {}
func (DisplayValue) isStyleValue()   {}

func isCSSWideKeyword(name string) bool {
	switch name {
	case "initial", "inherit", "unset", "revert", "revert-layer":
		return true
	}
	return false
}

// ParseDeclaration parses one declaration with typed-value dispatch.
func ParseDeclaration(p *css_parser.Parser) (css_parser.Declaration[StyleValue], error) {
	return css_parser.ParseDeclarationWith(p, parseStyleValue)
}

func parseDeclarationNode(p *css_parser.Parser) (css_parser.Node, error) {
	return ParseDeclaration(p)
}

func parseStyleValue(p *css_parser.Parser, name css_lexer.Cursor) (StyleValue, error) {
	// Custom properties take arbitrary values, naked blocks included
	if name.Token.IsDashed() {
		values, err := css_parser.ParseCustomPropertyValue(p, name)
		return RawValue{values}, err
	}

	// Values holding var()/env()/math functions cannot be checked against
	// the property grammar before computed-value time
	if css_parser.PeekComputedValue(p) {
		return parseRawValue(p)
	}

	parseTyped, ok := propertyParsers[p.ParseAtomLower(name)]
	if !ok {
		return parseRawValue(p)
	}

	checkpoint := p.Checkpoint()
	value, err := parseTypedValue(p, parseTyped)
	if err == nil {
		return value, nil
	}
	p.Rewind(checkpoint)
	p.Warn(err)
	return parseRawValue(p)
}

func parseRawValue(p *css_parser.Parser) (StyleValue, error) {
	values, err := css_parser.ParseComponentValuesDeclarationValue(p, css_lexer.Cursor{})
	return RawValue{values}, err
}

// parseTypedValue runs a property parser and requires it to consume the
// entire value.
func parseTypedValue(p *css_parser.Parser, parse func(*css_parser.Parser) (StyleValue, error)) (StyleValue, error) {
	if c := p.Peek(); c.Is(css_lexer.KindIdent) && isCSSWideKeyword(p.ParseAtomLower(c)) {
		p.Hop(c)
		return KeywordValue{c}, nil
	}

	value, err := parse(p)
	if err != nil {
		return nil, err
	}

	c := p.Peek()
	if !c.Is(css_lexer.KindEof) && !c.InSet(css_parser.KindSetDeclarationValueStop) && !css_parser.PeekImportant(p, c) {
		return nil, css_parser.ExpectedEnd(c.Range())
	}
	return value, nil
}

var propertyParsers = map[string]func(*css_parser.Parser) (StyleValue, error){
	"color":                     parseColorValue,
	"background-color":          parseColorValue,
	"border-color":              parseColorValue,
	"border-top-color":          parseColorValue,
	"border-right-color":        parseColorValue,
	"border-bottom-color":       parseColorValue,
	"border-left-color":         parseColorValue,
	"outline-color":             parseColorValue,
	"text-decoration-color":     parseColorValue,
	"caret-color":               parseColorValue,
	"accent-color":              parseColorValue,
	"width":                     parseSizeValue,
	"height":                    parseSizeValue,
	"min-width":                 parseSizeValue,
	"min-height":                parseSizeValue,
	"max-width":                 parseSizeValue,
	"max-height":                parseSizeValue,
	"inline-size":               parseSizeValue,
	"block-size":                parseSizeValue,
	"margin-top":                parseMarginValue,
	"margin-right":              parseMarginValue,
	"margin-bottom":             parseMarginValue,
	"margin-left":               parseMarginValue,
	"padding-top":               parsePaddingValue,
	"padding-right":             parsePaddingValue,
	"padding-bottom":            parsePaddingValue,
	"padding-left":              parsePaddingValue,
	"top":                       parseMarginValue,
	"right":                     parseMarginValue,
	"bottom":                    parseMarginValue,
	"left":                      parseMarginValue,
	"opacity":                   parseOpacityValue,
	"z-index":                   parseZIndexValue,
	"display":                   parseDisplayValue,
	"float":                     keywordProperty("left", "right", "none", "inline-start", "inline-end"),
	"clear":                     keywordProperty("none", "left", "right", "both", "inline-start", "inline-end"),
	"visibility":                keywordProperty("visible", "hidden", "collapse"),
	"position":                  keywordProperty("static", "relative", "absolute", "sticky", "fixed"),
	"overflow-x":                keywordProperty("visible", "hidden", "clip", "scroll", "auto"),
	"overflow-y":                keywordProperty("visible", "hidden", "clip", "scroll", "auto"),
	"box-sizing":                keywordProperty("content-box", "border-box"),
	"font-weight":               parseFontWeightValue,
	"line-height":               parseLineHeightValue,
	"letter-spacing":            parseSpacingValue,
	"word-spacing":              parseSpacingValue,
	"text-indent":               parseLengthPercentValue,
	"border-top-width":          parseLineWidthValue,
	"border-right-width":        parseLineWidthValue,
	"border-bottom-width":       parseLineWidthValue,
	"border-left-width":         parseLineWidthValue,
	"border-top-left-radius":    parseLengthPercentValue,
	"border-top-right-radius":   parseLengthPercentValue,
	"border-bottom-left-radius": parseLengthPercentValue,
	"border-bottom-right-radius": parseLengthPercentValue,
}

func parseColorValue(p *css_parser.Parser) (StyleValue, error) {
	color, err := ParseColor(p)
	if err != nil {
		return nil, err
	}
	return ColorValue{Color: color}, nil
}

func keywordProperty(allowed ...string) func(*css_parser.Parser) (StyleValue, error) {
	set := make(map[string]bool, len(allowed))
	for _, keyword := range allowed {
		set[keyword] = true
	}
	return func(p *css_parser.Parser) (StyleValue, error) {
		c := p.Peek()
		if !c.Is(css_lexer.KindIdent) {
			return nil, css_parser.ExpectedIdent(c)
		}
		name := p.ParseAtomLower(c)
		if !set[name] {
			return nil, css_parser.UnexpectedIdent(name, c)
		}
		p.Hop(c)
		return KeywordValue{c}, nil
	}
}

func parseKeywordOrDimension(p *css_parser.Parser, keywords map[string]bool) (StyleValue, error) {
	c := p.Peek()
	if c.Is(css_lexer.KindIdent) {
		name := p.ParseAtomLower(c)
		if !keywords[name] {
			return nil, css_parser.UnexpectedIdent(name, c)
		}
		p.Hop(c)
		return KeywordValue{c}, nil
	}
	value, err := ParseLengthPercentage(p)
	if err != nil {
		return nil, err
	}
	return DimensionValue{value}, nil
}

var sizeKeywords = map[string]bool{
	"auto": true, "min-content": true, "max-content": true, "fit-content": true, "none": true,
}

func parseSizeValue(p *css_parser.Parser) (StyleValue, error) {
	return parseKeywordOrDimension(p, sizeKeywords)
}

var autoKeyword = map[string]bool{"auto": true}

func parseMarginValue(p *css_parser.Parser) (StyleValue, error) {
	return parseKeywordOrDimension(p, autoKeyword)
}

func parsePaddingValue(p *css_parser.Parser) (StyleValue, error) {
	value, err := ParseLengthPercentage(p)
	if err != nil {
		return nil, err
	}
	if value.Value() < 0 {
		return nil, css_parser.NumberNotNegative(value.Value(), value.Cursor)
	}
	return DimensionValue{value}, nil
}

func parseLengthPercentValue(p *css_parser.Parser) (StyleValue, error) {
	value, err := ParseLengthPercentage(p)
	if err != nil {
		return nil, err
	}
	return DimensionValue{value}, nil
}

func parseOpacityValue(p *css_parser.Parser) (StyleValue, error) {
	c := p.Peek()
	switch {
	case c.Is(css_lexer.KindNumber):
		p.Hop(c)
		return NumberValue{css_parser.Number{Cursor: c}}, nil
	case c.Token.IsUnit(css_lexer.UnitPercent):
		p.Hop(c)
		return DimensionValue{LengthPercentage{c}}, nil
	}
	return nil, css_parser.ExpectedNumber(c)
}

func parseZIndexValue(p *css_parser.Parser) (StyleValue, error) {
	c := p.Peek()
	if c.Is(css_lexer.KindIdent) {
		if name := p.ParseAtomLower(c); name != "auto" {
			return nil, css_parser.UnexpectedIdent(name, c)
		}
		p.Hop(c)
		return KeywordValue{c}, nil
	}
	value, err := ParseInteger(p)
	if err != nil {
		return nil, err
	}
	return IntegerValue{value}, nil
}

func parseFontWeightValue(p *css_parser.Parser) (StyleValue, error) {
	c := p.Peek()
	if c.Is(css_lexer.KindIdent) {
		name := p.ParseAtomLower(c)
		switch name {
		case "normal", "bold", "bolder", "lighter":
			p.Hop(c)
			return KeywordValue{c}, nil
		}
		return nil, css_parser.UnexpectedIdent(name, c)
	}
	if !c.Is(css_lexer.KindNumber) {
		return nil, css_parser.ExpectedNumber(c)
	}
	if value := c.Token.Value(); value < 1 || value > 1000 {
		return nil, css_parser.NumberOutOfBounds(value, "1 and 1000", c)
	}
	p.Hop(c)
	return NumberValue{css_parser.Number{Cursor: c}}, nil
}

func parseLineHeightValue(p *css_parser.Parser) (StyleValue, error) {
	c := p.Peek()
	switch {
	case c.Is(css_lexer.KindIdent):
		if name := p.ParseAtomLower(c); name != "normal" {
			return nil, css_parser.UnexpectedIdent(name, c)
		}
		p.Hop(c)
		return KeywordValue{c}, nil
	case c.Is(css_lexer.KindNumber):
		if c.Token.Value() < 0 {
			return nil, css_parser.NumberNotNegative(c.Token.Value(), c)
		}
		p.Hop(c)
		return NumberValue{css_parser.Number{Cursor: c}}, nil
	}
	return parseLengthPercentValue(p)
}

func parseSpacingValue(p *css_parser.Parser) (StyleValue, error) {
	c := p.Peek()
	if c.Is(css_lexer.KindIdent) {
		if name := p.ParseAtomLower(c); name != "normal" {
			return nil, css_parser.UnexpectedIdent(name, c)
		}
		p.Hop(c)
		return KeywordValue{c}, nil
	}
	length, err := ParseLength(p)
	if err != nil {
		return nil, err
	}
	return DimensionValue{LengthPercentage{length.Cursor}}, nil
}

var lineWidthKeywords = map[string]bool{"thin": true, "medium": true, "thick": true}

func parseLineWidthValue(p *css_parser.Parser) (StyleValue, error) {
	c := p.Peek()
	if c.Is(css_lexer.KindIdent) {
		name := p.ParseAtomLower(c)
		if !lineWidthKeywords[name] {
			return nil, css_parser.UnexpectedIdent(name, c)
		}
		p.Hop(c)
		return KeywordValue{c}, nil
	}
	length, err := ParseLength(p)
	if err != nil {
		return nil, err
	}
	if length.Value() < 0 {
		return nil, css_parser.NumberNotNegative(length.Value(), length.Cursor)
	}
	return DimensionValue{LengthPercentage{length.Cursor}}, nil
}

// Display keyword classification for the two-value syntax.
var displayOutside = map[string]bool{"block": true, "inline": true, "run-in": true}
var displayInside = map[string]bool{
	"flow": true, "flow-root": true, "table": true, "flex": true, "grid": true, "ruby": true,
}
var displaySingle = map[string]bool{
	"contents": true, "none": true, "inline-block": true, "inline-table": true,
	"inline-flex": true, "inline-grid": true, "table-row-group": true,
	"table-header-group": true, "table-footer-group": true, "table-row": true,
	"table-cell": true, "table-column-group": true, "table-column": true,
	"table-caption": true, "ruby-base": true, "ruby-text": true,
	"ruby-base-container": true, "ruby-text-container": true, "list-item": true,
}

// "list-item" may only combine with an outside keyword and flow or
// flow-root.
func listItemCombinable(name string) bool {
	return displayOutside[name] || name == "flow" || name == "flow-root"
}

func parseDisplayValue(p *css_parser.Parser) (StyleValue, error) {
	first := p.Peek()
	if !first.Is(css_lexer.KindIdent) {
		return nil, css_parser.ExpectedIdent(first)
	}
	firstName := p.ParseAtomLower(first)
	if !displayOutside[firstName] && !displayInside[firstName] && !displaySingle[firstName] {
		return nil, css_parser.UnexpectedIdent(firstName, first)
	}
	p.Hop(first)
	value := DisplayValue{First: first}
	sawListItem := firstName == "list-item"

	for i := 0; i < 2; i++ {
		c := p.Peek()
		if !c.Is(css_lexer.KindIdent) {
			break
		}
		name := p.ParseAtomLower(c)
		if !displayOutside[name] && !displayInside[name] && name != "list-item" {
			break
		}
		if name == "list-item" {
			sawListItem = true
		}
		p.Hop(c)
		if value.Second == nil {
			value.Second = &c
		} else {
			value.Third = &c
		}
	}

	// Check the combination once all keywords are known
	if sawListItem {
		for _, cursor := range []*css_lexer.Cursor{&value.First, value.Second, value.Third} {
			if cursor == nil {
				continue
			}
			name := p.ParseAtomLower(*cursor)
			if name != "list-item" && !listItemCombinable(name) {
				return nil, css_parser.DisplayHasInvalidListItemCombo(name, *cursor)
			}
		}
	}

	return value, nil
}
