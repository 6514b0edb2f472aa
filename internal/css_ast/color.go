package css_ast

// Color value grammars: hex colors, named colors, and the color functions
// of CSS Color 4 in both the legacy comma syntax and the modern
// space-separated syntax with a "/"-separated alpha.

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

type Color interface {
	css_parser.Node
	isColor()
}

// HexColor stores the resolved channels as 0xRRGGBBAA; "#abc" becomes
// 0xAABBCCFF.
type HexColor struct {
	css_lexer.Cursor
	RGBA uint32
}

// CurrentColor is the "currentcolor" keyword.
type CurrentColor struct{ css_lexer.Cursor }

// NamedColor is one of the CSS named colors, with its resolved channels.
type NamedColor struct {
	css_lexer.Cursor
	RGBA uint32
}

// SystemColor is a CSS system color keyword such as "canvastext". The
// resolved value depends on the platform, so only the name is kept.
type SystemColor struct{ css_lexer.Cursor }

func (HexColor) isColor()      {}
func (CurrentColor) isColor()  {}
func (NamedColor) isColor()    {}
func (SystemColor) isColor()   {}
func (ColorFunction) isColor() {}

type ColorFunctionName uint8

const (
	ColorFunctionRgb ColorFunctionName = iota
	ColorFunctionRgba
	ColorFunctionHsl
	ColorFunctionHsla
	ColorFunctionHwb
	ColorFunctionLab
	ColorFunctionLch
	ColorFunctionOklab
	ColorFunctionOklch
	ColorFunctionColor
)

func (n ColorFunctionName) isLegacyCapable() bool {
	return n <= ColorFunctionHsla
}

func (n ColorFunctionName) startsWithHue() bool {
	return n == ColorFunctionHsl || n == ColorFunctionHsla || n == ColorFunctionHwb
}

func (n ColorFunctionName) endsWithHue() bool {
	return n == ColorFunctionLch || n == ColorFunctionOklch
}

var colorFunctionNames = css_parser.NewFunctionSet(map[string]ColorFunctionName{
	"rgb":   ColorFunctionRgb,
	"rgba":  ColorFunctionRgba,
	"hsl":   ColorFunctionHsl,
	"hsla":  ColorFunctionHsla,
	"hwb":   ColorFunctionHwb,
	"lab":   ColorFunctionLab,
	"lch":   ColorFunctionLch,
	"oklab": ColorFunctionOklab,
	"oklch": ColorFunctionOklch,
	"color": ColorFunctionColor,
})

type ColorSpace uint8

const (
	ColorSpaceSrgb ColorSpace = iota
	ColorSpaceSrgbLinear
	ColorSpaceDisplayP3
	ColorSpaceA98Rgb
	ColorSpaceProphotoRgb
	ColorSpaceRec2020
	ColorSpaceXyz
	ColorSpaceXyzD50
	ColorSpaceXyzD65
)

var colorSpaces = css_parser.NewKeywordSet(map[string]ColorSpace{
	"srgb":         ColorSpaceSrgb,
	"srgb-linear":  ColorSpaceSrgbLinear,
	"display-p3":   ColorSpaceDisplayP3,
	"a98-rgb":      ColorSpaceA98Rgb,
	"prophoto-rgb": ColorSpaceProphotoRgb,
	"rec2020":      ColorSpaceRec2020,
	"xyz":          ColorSpaceXyz,
	"xyz-d50":      ColorSpaceXyzD50,
	"xyz-d65":      ColorSpaceXyzD65,
})

// ColorFunction covers every function form. Absent parts are nil; the
// legacy flag records whether commas separated the channels.
type ColorFunction struct {
	Name     css_parser.Keyword[ColorFunctionName]
	Space    *css_parser.Keyword[ColorSpace]
	Channels [3]*css_lexer.Cursor
	Commas   [3]*css_lexer.Cursor
	Slash    *css_lexer.Cursor
	Alpha    *css_lexer.Cursor
	Close    *css_lexer.Cursor
	Legacy   bool
}

func (f ColorFunction) ToCursors(s css_lexer.CursorSink) {
	s.Append(f.Name.Cursor)
	if f.Space != nil {
		s.Append(f.Space.Cursor)
	}
	for i := 0; i < 3; i++ {
		if f.Channels[i] != nil {
			s.Append(*f.Channels[i])
		}
		if f.Commas[i] != nil {
			s.Append(*f.Commas[i])
		}
	}
	if f.Slash != nil {
		s.Append(*f.Slash)
	}
	if f.Alpha != nil {
		s.Append(*f.Alpha)
	}
	if f.Close != nil {
		s.Append(*f.Close)
	}
}

// parseColorChannel accepts a number, a percentage, an angle (for hue
// positions), or the "none" keyword.
func parseColorChannel(p *css_parser.Parser, allowHue bool) (css_lexer.Cursor, error) {
	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindNumber:
		p.Hop(c)
		return c, nil

	case css_lexer.KindDimension:
		unit := c.Token.DimensionUnit()
		if unit == css_lexer.UnitPercent || (allowHue && unit.IsAngle()) {
			p.Hop(c)
			return c, nil
		}
		return c, css_parser.UnexpectedDimension(p.ParseStrLower(c), c)

	case css_lexer.KindIdent:
		if p.EqIgnoreASCIICase(c, "none") {
			p.Hop(c)
			return c, nil
		}
		return c, css_parser.UnexpectedIdent(p.ParseStrLower(c), c)
	}
	return c, css_parser.ExpectedNumber(c)
}

func ParseColorFunction(p *css_parser.Parser) (ColorFunction, error) {
	var f ColorFunction

	name, err := colorFunctionNames.Parse(p)
	if err != nil {
		return f, err
	}
	f.Name = name

	if name.Value == ColorFunctionColor {
		space, err := colorSpaces.Parse(p)
		if err != nil {
			return f, err
		}
		f.Space = &space
	}

	// First channel. The hue-first functions reject a leading percentage.
	first := p.Peek()
	if name.Value.startsWithHue() && first.Token.IsUnit(css_lexer.UnitPercent) {
		return f, css_parser.ColorMustStartWithHue(first)
	}
	ch0, err := parseColorChannel(p, name.Value.startsWithHue())
	if err != nil {
		return f, err
	}
	f.Channels[0] = &ch0

	f.Legacy = p.Peek().Is(css_lexer.KindComma)
	if f.Legacy && !name.Value.isLegacyCapable() {
		return f, css_parser.Unexpected(p.Peek())
	}

	for i := 1; i < 3; i++ {
		if f.Legacy {
			comma := p.Peek()
			if !comma.Is(css_lexer.KindComma) {
				return f, css_parser.ColorLegacyMustIncludeComma(comma)
			}
			p.Hop(comma)
			f.Commas[i-1] = &comma
		}
		ch, err := parseColorChannel(p, i == 2 && name.Value.endsWithHue())
		if err != nil {
			return f, err
		}
		f.Channels[i] = &ch
	}

	// Alpha: ", a" in the legacy syntax, "/ a" in the modern one
	if f.Legacy {
		if c := p.Peek(); c.Is(css_lexer.KindComma) {
			p.Hop(c)
			f.Commas[2] = &c
			alpha, err := parseColorChannel(p, false)
			if err != nil {
				return f, err
			}
			f.Alpha = &alpha
		}
	} else if c := p.Peek(); c.IsDelimChar('/') {
		p.Hop(c)
		f.Slash = &c
		alpha, err := parseColorChannel(p, false)
		if err != nil {
			return f, err
		}
		f.Alpha = &alpha
	}

	close, err := css_parser.ParseRightParen(p)
	if err != nil {
		return f, err
	}
	f.Close = &close.Cursor
	return f, nil
}

// ParseHexColor decodes a hash token of 3, 4, 6 or 8 hex digits.
func ParseHexColor(p *css_parser.Parser) (HexColor, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindHash) {
		return HexColor{}, css_parser.ExpectedKind(css_lexer.KindHash, c)
	}
	text := p.ParseRawStr(c)
	rgba, ok := decodeHexColor(text)
	if !ok {
		return HexColor{}, css_parser.BadHexColor(p.ParseStr(c), c)
	}
	p.Hop(c)
	return HexColor{Cursor: c, RGBA: rgba}, nil
}

func decodeHexColor(text string) (uint32, bool) {
	digits := make([]uint32, 0, 8)
	for i := 0; i < len(text); i++ {
		d, ok := hexDigit(text[i])
		if !ok {
			return 0, false
		}
		digits = append(digits, d)
	}

	switch len(digits) {
	case 3:
		digits = append(digits, 0xF)
		fallthrough
	case 4:
		return digits[0]<<28 | digits[0]<<24 |
			digits[1]<<20 | digits[1]<<16 |
			digits[2]<<12 | digits[2]<<8 |
			digits[3]<<4 | digits[3], true
	case 6:
		digits = append(digits, 0xF, 0xF)
		fallthrough
	case 8:
		var rgba uint32
		for _, d := range digits {
			rgba = rgba<<4 | d
		}
		return rgba, true
	}
	return 0, false
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// ParseColor dispatches between the color forms by the next token.
func ParseColor(p *css_parser.Parser) (Color, error) {
	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindHash:
		return ParseHexColor(p)

	case css_lexer.KindFunction:
		return ParseColorFunction(p)

	case css_lexer.KindIdent:
		name := p.ParseAtomLower(c)
		if name == "currentcolor" {
			p.Hop(c)
			return CurrentColor{c}, nil
		}
		if rgba, ok := namedColors[name]; ok {
			p.Hop(c)
			return NamedColor{Cursor: c, RGBA: rgba}, nil
		}
		if systemColors[name] {
			p.Hop(c)
			return SystemColor{c}, nil
		}
		return nil, css_parser.UnexpectedIdent(name, c)
	}
	return nil, css_parser.Unexpected(c)
}
