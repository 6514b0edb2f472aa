package css_ast

// The @media rule. A prelude is a comma-separated media query list; each
// query is a media type with an optional "not"/"only" modifier, a media
// condition, or a type chained to a condition with "and".
//
// Reference: https://drafts.csswg.org/mediaqueries-4/

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

type MediaRule struct {
	css_parser.AtRuleParts[MediaQueryList, RuleBlock]
}

func (MediaRule) isRule() {}

func ParseMediaRule(p *css_parser.Parser) (MediaRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "media", ParseMediaQueryList, ParseRuleBlock)
	if err != nil {
		return MediaRule{}, err
	}
	if err := css_parser.RequireAtRulePrelude(parts); err != nil {
		return MediaRule{}, err
	}
	if err := css_parser.RequireAtRuleBlock(parts); err != nil {
		return MediaRule{}, err
	}
	return MediaRule{parts}, nil
}

type MediaQueryList struct {
	css_parser.Separated[MediaQuery]
}

func ParseMediaQueryList(p *css_parser.Parser) (MediaQueryList, error) {
	list, err := css_parser.ParseSeparated(p, css_lexer.KindComma, ParseMediaQuery)
	return MediaQueryList{list}, err
}

type MediaModifier uint8

const (
	MediaModifierNot MediaModifier = iota
	MediaModifierOnly
)

var mediaModifiers = css_parser.NewKeywordSet(map[string]MediaModifier{
	"not":  MediaModifierNot,
	"only": MediaModifierOnly,
})

// MediaCondition is a FeatureCondition over media-in-parens terms.
type MediaCondition struct {
	FeatureCondition[MediaInParens]
}

type MediaQuery struct {
	// "not" or "only", which requires a media type to follow
	Modifier *css_parser.Keyword[MediaModifier]

	// The media type ident; nil for a bare condition query
	MediaType *css_lexer.Cursor

	// The "and" joining a media type to a trailing condition
	And *css_parser.ConditionKeyword

	Condition *MediaCondition
}

func (q MediaQuery) ToCursors(s css_lexer.CursorSink) {
	if q.Modifier != nil {
		s.Append(q.Modifier.Cursor)
	}
	if q.MediaType != nil {
		s.Append(*q.MediaType)
	}
	if q.And != nil {
		s.Append(q.And.Cursor)
	}
	if q.Condition != nil {
		q.Condition.ToCursors(s)
	}
}

// The <media-type> production excludes these keywords.
func isReservedMediaType(name string) bool {
	switch name {
	case "not", "only", "and", "or", "layer":
		return true
	}
	return false
}

func ParseMediaQuery(p *css_parser.Parser) (MediaQuery, error) {
	var q MediaQuery

	c := p.Peek()

	// A bare condition: "(...)" or "not (...)"
	if c.Is(css_lexer.KindLeftParen) || c.Is(css_lexer.KindFunction) ||
		(c.Is(css_lexer.KindIdent) && p.EqIgnoreASCIICase(c, "not") && p.PeekN(2).Is(css_lexer.KindLeftParen)) {
		condition, err := parseMediaCondition(p, true)
		if err != nil {
			return q, err
		}
		q.Condition = &condition
		return q, nil
	}

	if value, ok := mediaModifiers.Match(p, c); ok {
		p.Hop(c)
		modifier := css_parser.Keyword[MediaModifier]{Cursor: c, Value: value}
		q.Modifier = &modifier
		c = p.Peek()
	}

	if !c.Is(css_lexer.KindIdent) {
		return q, css_parser.ExpectedIdent(c)
	}
	if name := p.ParseAtomLower(c); isReservedMediaType(name) {
		return q, css_parser.ExpectedOtherIdent(name, c)
	}
	p.Hop(c)
	q.MediaType = &c

	// "and" chains a condition that must not contain a top-level "or"
	if c := p.Peek(); c.Is(css_lexer.KindIdent) && p.EqIgnoreASCIICase(c, "and") {
		p.Hop(c)
		and := css_parser.ConditionKeyword{Cursor: c}
		q.And = &and
		condition, err := parseMediaCondition(p, false)
		if err != nil {
			return q, err
		}
		q.Condition = &condition
	}

	return q, nil
}

// parseMediaCondition parses the condition list. After a media type, "or"
// is not allowed at the top level; parenthesised groups may still use it.
func parseMediaCondition(p *css_parser.Parser, allowOr bool) (MediaCondition, error) {
	inner, err := parseFeatureCondition(p, ParseMediaInParens)
	if err != nil {
		return MediaCondition{}, err
	}
	if !allowOr && inner.Kind == ConditionOr {
		keyword := inner.Terms[0].Keyword
		return MediaCondition{}, css_parser.UnexpectedIdent("or", keyword.Cursor)
	}
	return MediaCondition{inner}, nil
}

// MediaInParens is one parenthesised term of a media condition.
type MediaInParens interface {
	css_parser.Node
	isMediaInParens()
}

// MediaConditionParen is a nested parenthesised condition, which is how
// "and" and "or" legally mix: "((hover) or (pointer)) and (width > 0)".
type MediaConditionParen struct {
	Open      css_lexer.Cursor
	Condition MediaCondition
	Close     css_lexer.Cursor
}

func (m MediaConditionParen) ToCursors(s css_lexer.CursorSink) {
	s.Append(m.Open)
	m.Condition.ToCursors(s)
	s.Append(m.Close)
}

// GeneralEnclosed preserves a feature this parser does not understand, per
// the <general-enclosed> production.
type GeneralEnclosed struct {
	Value css_parser.ComponentValue
}

func (g GeneralEnclosed) ToCursors(s css_lexer.CursorSink) {
	g.Value.ToCursors(s)
}

// Ranged media features

type WidthMediaFeature struct {
	css_parser.RangedFeature[Length]
}
type HeightMediaFeature struct {
	css_parser.RangedFeature[Length]
}
type DeviceWidthMediaFeature struct {
	css_parser.RangedFeature[Length]
}
type DeviceHeightMediaFeature struct {
	css_parser.RangedFeature[Length]
}
type AspectRatioMediaFeature struct {
	css_parser.RangedFeature[Ratio]
}
type DeviceAspectRatioMediaFeature struct {
	css_parser.RangedFeature[Ratio]
}
type ResolutionMediaFeature struct {
	css_parser.RangedFeature[Resolution]
}
type ColorMediaFeature struct {
	css_parser.RangedFeature[Integer]
}
type ColorIndexMediaFeature struct {
	css_parser.RangedFeature[Integer]
}
type MonochromeMediaFeature struct {
	css_parser.RangedFeature[Integer]
}

// Discrete media features

type OrientationKeyword uint8

const (
	OrientationPortrait OrientationKeyword = iota
	OrientationLandscape
)

var orientationKeywords = css_parser.NewKeywordSet(map[string]OrientationKeyword{
	"portrait":  OrientationPortrait,
	"landscape": OrientationLandscape,
})

type HoverKeyword uint8

const (
	HoverNone HoverKeyword = iota
	HoverHover
)

var hoverKeywords = css_parser.NewKeywordSet(map[string]HoverKeyword{
	"none":  HoverNone,
	"hover": HoverHover,
})

type PointerKeyword uint8

const (
	PointerNone PointerKeyword = iota
	PointerCoarse
	PointerFine
)

var pointerKeywords = css_parser.NewKeywordSet(map[string]PointerKeyword{
	"none":   PointerNone,
	"coarse": PointerCoarse,
	"fine":   PointerFine,
})

type ScanKeyword uint8

const (
	ScanInterlace ScanKeyword = iota
	ScanProgressive
)

var scanKeywords = css_parser.NewKeywordSet(map[string]ScanKeyword{
	"interlace":   ScanInterlace,
	"progressive": ScanProgressive,
})

type UpdateKeyword uint8

const (
	UpdateNone UpdateKeyword = iota
	UpdateSlow
	UpdateFast
)

var updateKeywords = css_parser.NewKeywordSet(map[string]UpdateKeyword{
	"none": UpdateNone,
	"slow": UpdateSlow,
	"fast": UpdateFast,
})

type OverflowBlockKeyword uint8

const (
	OverflowBlockNone OverflowBlockKeyword = iota
	OverflowBlockScroll
	OverflowBlockPaged
)

var overflowBlockKeywords = css_parser.NewKeywordSet(map[string]OverflowBlockKeyword{
	"none":   OverflowBlockNone,
	"scroll": OverflowBlockScroll,
	"paged":  OverflowBlockPaged,
})

type OverflowInlineKeyword uint8

const (
	OverflowInlineNone OverflowInlineKeyword = iota
	OverflowInlineScroll
)

var overflowInlineKeywords = css_parser.NewKeywordSet(map[string]OverflowInlineKeyword{
	"none":   OverflowInlineNone,
	"scroll": OverflowInlineScroll,
})

type ColorSchemeKeyword uint8

const (
	ColorSchemeLight ColorSchemeKeyword = iota
	ColorSchemeDark
)

var colorSchemeKeywords = css_parser.NewKeywordSet(map[string]ColorSchemeKeyword{
	"light": ColorSchemeLight,
	"dark":  ColorSchemeDark,
})

type ReducedMotionKeyword uint8

const (
	ReducedMotionNoPreference ReducedMotionKeyword = iota
	ReducedMotionReduce
)

var reducedMotionKeywords = css_parser.NewKeywordSet(map[string]ReducedMotionKeyword{
	"no-preference": ReducedMotionNoPreference,
	"reduce":        ReducedMotionReduce,
})

type DisplayModeKeyword uint8

const (
	DisplayModeFullscreen DisplayModeKeyword = iota
	DisplayModeStandalone
	DisplayModeMinimalUi
	DisplayModeBrowser
)

var displayModeKeywords = css_parser.NewKeywordSet(map[string]DisplayModeKeyword{
	"fullscreen": DisplayModeFullscreen,
	"standalone": DisplayModeStandalone,
	"minimal-ui": DisplayModeMinimalUi,
	"browser":    DisplayModeBrowser,
})

type OrientationMediaFeature struct {
	css_parser.DiscreteFeature[OrientationKeyword]
}
type HoverMediaFeature struct {
	css_parser.DiscreteFeature[HoverKeyword]
}
type AnyHoverMediaFeature struct {
	css_parser.DiscreteFeature[HoverKeyword]
}
type PointerMediaFeature struct {
	css_parser.DiscreteFeature[PointerKeyword]
}
type AnyPointerMediaFeature struct {
	css_parser.DiscreteFeature[PointerKeyword]
}
type ScanMediaFeature struct {
	css_parser.DiscreteFeature[ScanKeyword]
}
type UpdateMediaFeature struct {
	css_parser.DiscreteFeature[UpdateKeyword]
}
type OverflowBlockMediaFeature struct {
	css_parser.DiscreteFeature[OverflowBlockKeyword]
}
type OverflowInlineMediaFeature struct {
	css_parser.DiscreteFeature[OverflowInlineKeyword]
}
type PrefersColorSchemeMediaFeature struct {
	css_parser.DiscreteFeature[ColorSchemeKeyword]
}
type PrefersReducedMotionMediaFeature struct {
	css_parser.DiscreteFeature[ReducedMotionKeyword]
}
type DisplayModeMediaFeature struct {
	css_parser.DiscreteFeature[DisplayModeKeyword]
}

// Boolean media features

type GridMediaFeature struct {
	css_parser.BooleanFeature
}

func (MediaConditionParen) isMediaInParens()              {}
func (GeneralEnclosed) isMediaInParens()                  {}
func (WidthMediaFeature) isMediaInParens()                {}
func (HeightMediaFeature) isMediaInParens()               {}
func (DeviceWidthMediaFeature) isMediaInParens()          {}
func (DeviceHeightMediaFeature) isMediaInParens()         {}
func (AspectRatioMediaFeature) isMediaInParens()          {}
func (DeviceAspectRatioMediaFeature) isMediaInParens()    {}
func (ResolutionMediaFeature) isMediaInParens()           {}
func (ColorMediaFeature) isMediaInParens()                {}
func (ColorIndexMediaFeature) isMediaInParens()           {}
func (MonochromeMediaFeature) isMediaInParens()           {}
func (OrientationMediaFeature) isMediaInParens()          {}
func (HoverMediaFeature) isMediaInParens()                {}
func (AnyHoverMediaFeature) isMediaInParens()             {}
func (PointerMediaFeature) isMediaInParens()              {}
func (AnyPointerMediaFeature) isMediaInParens()           {}
func (ScanMediaFeature) isMediaInParens()                 {}
func (UpdateMediaFeature) isMediaInParens()               {}
func (OverflowBlockMediaFeature) isMediaInParens()        {}
func (OverflowInlineMediaFeature) isMediaInParens()       {}
func (PrefersColorSchemeMediaFeature) isMediaInParens()   {}
func (PrefersReducedMotionMediaFeature) isMediaInParens() {}
func (DisplayModeMediaFeature) isMediaInParens()          {}
func (GridMediaFeature) isMediaInParens()                 {}

// featureNameInParens looks inside a parenthesised term for the feature
// ident, skipping over a leading value in the range context, so the term
// can be routed to the right feature grammar.
func featureNameInParens(p *css_parser.Parser) (string, bool) {
	checkpoint := p.Checkpoint()
	defer p.Rewind(checkpoint)

	open := p.Peek()
	if !open.Is(css_lexer.KindLeftParen) {
		return "", false
	}
	p.Hop(open)

	for i := 0; i < 8; i++ {
		c := p.Peek()
		switch c.Token.Kind() {
		case css_lexer.KindIdent:
			return p.ParseAtomLower(c), true
		case css_lexer.KindNumber, css_lexer.KindDimension, css_lexer.KindDelim:
			p.Hop(c)
			continue
		}
		return "", false
	}
	return "", false
}

func ParseMediaInParens(p *css_parser.Parser) (MediaInParens, error) {
	c := p.Peek()

	if c.Is(css_lexer.KindFunction) {
		value, err := css_parser.ParseComponentValue(p)
		if err != nil {
			return nil, err
		}
		return GeneralEnclosed{Value: value}, nil
	}

	if !c.Is(css_lexer.KindLeftParen) {
		return nil, css_parser.ExpectedKind(css_lexer.KindLeftParen, c)
	}

	// A nested condition: "((...) and (...))" or "(not (...))"
	if inner := p.PeekN(2); inner.Is(css_lexer.KindLeftParen) ||
		(inner.Is(css_lexer.KindIdent) && p.EqIgnoreASCIICase(inner, "not") && p.PeekN(3).Is(css_lexer.KindLeftParen)) {
		p.Hop(c)
		condition, err := parseMediaCondition(p, true)
		if err != nil {
			return nil, err
		}
		close, err := css_parser.ParseRightParen(p)
		if err != nil {
			return nil, err
		}
		return MediaConditionParen{Open: c, Condition: condition, Close: close.Cursor}, nil
	}

	if name, ok := featureNameInParens(p); ok {
		if feature, handled, err := parseKnownMediaFeature(p, name); handled {
			return feature, err
		}
	}

	// Unknown features are preserved, never fatal
	block, err := css_parser.ParseSimpleBlock(p)
	if err != nil {
		return nil, err
	}
	return GeneralEnclosed{Value: block}, nil
}

func parseKnownMediaFeature(p *css_parser.Parser, name string) (MediaInParens, bool, error) {
	if len(name) > 4 && (name[:4] == "min-" || name[:4] == "max-") {
		name = name[4:]
	}

	switch name {
	case "width":
		f, err := css_parser.ParseRangedFeature(p, []string{"width"}, ParseLength)
		return WidthMediaFeature{f}, true, err
	case "height":
		f, err := css_parser.ParseRangedFeature(p, []string{"height"}, ParseLength)
		return HeightMediaFeature{f}, true, err
	case "device-width":
		f, err := css_parser.ParseRangedFeature(p, []string{"device-width"}, ParseLength)
		return DeviceWidthMediaFeature{f}, true, err
	case "device-height":
		f, err := css_parser.ParseRangedFeature(p, []string{"device-height"}, ParseLength)
		return DeviceHeightMediaFeature{f}, true, err
	case "aspect-ratio":
		f, err := css_parser.ParseRangedFeature(p, []string{"aspect-ratio"}, ParseRatio)
		return AspectRatioMediaFeature{f}, true, err
	case "device-aspect-ratio":
		f, err := css_parser.ParseRangedFeature(p, []string{"device-aspect-ratio"}, ParseRatio)
		return DeviceAspectRatioMediaFeature{f}, true, err
	case "resolution":
		f, err := css_parser.ParseRangedFeature(p, []string{"resolution"}, ParseResolution)
		return ResolutionMediaFeature{f}, true, err
	case "color":
		f, err := css_parser.ParseRangedFeature(p, []string{"color"}, ParseInteger)
		return ColorMediaFeature{f}, true, err
	case "color-index":
		f, err := css_parser.ParseRangedFeature(p, []string{"color-index"}, ParseInteger)
		return ColorIndexMediaFeature{f}, true, err
	case "monochrome":
		f, err := css_parser.ParseRangedFeature(p, []string{"monochrome"}, ParseInteger)
		return MonochromeMediaFeature{f}, true, err

	case "orientation":
		f, err := css_parser.ParseDiscreteFeature(p, "orientation", orientationKeywords)
		return OrientationMediaFeature{f}, true, err
	case "hover":
		f, err := css_parser.ParseDiscreteFeature(p, "hover", hoverKeywords)
		return HoverMediaFeature{f}, true, err
	case "any-hover":
		f, err := css_parser.ParseDiscreteFeature(p, "any-hover", hoverKeywords)
		return AnyHoverMediaFeature{f}, true, err
	case "pointer":
		f, err := css_parser.ParseDiscreteFeature(p, "pointer", pointerKeywords)
		return PointerMediaFeature{f}, true, err
	case "any-pointer":
		f, err := css_parser.ParseDiscreteFeature(p, "any-pointer", pointerKeywords)
		return AnyPointerMediaFeature{f}, true, err
	case "scan":
		f, err := css_parser.ParseDiscreteFeature(p, "scan", scanKeywords)
		return ScanMediaFeature{f}, true, err
	case "update":
		f, err := css_parser.ParseDiscreteFeature(p, "update", updateKeywords)
		return UpdateMediaFeature{f}, true, err
	case "overflow-block":
		f, err := css_parser.ParseDiscreteFeature(p, "overflow-block", overflowBlockKeywords)
		return OverflowBlockMediaFeature{f}, true, err
	case "overflow-inline":
		f, err := css_parser.ParseDiscreteFeature(p, "overflow-inline", overflowInlineKeywords)
		return OverflowInlineMediaFeature{f}, true, err
	case "prefers-color-scheme":
		f, err := css_parser.ParseDiscreteFeature(p, "prefers-color-scheme", colorSchemeKeywords)
		return PrefersColorSchemeMediaFeature{f}, true, err
	case "prefers-reduced-motion":
		f, err := css_parser.ParseDiscreteFeature(p, "prefers-reduced-motion", reducedMotionKeywords)
		return PrefersReducedMotionMediaFeature{f}, true, err
	case "display-mode":
		f, err := css_parser.ParseDiscreteFeature(p, "display-mode", displayModeKeywords)
		return DisplayModeMediaFeature{f}, true, err

	case "grid":
		f, err := css_parser.ParseBooleanFeature(p, "grid")
		return GridMediaFeature{f}, true, err
	}
	return nil, false, nil
}
