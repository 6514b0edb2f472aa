package css_ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
	"github.com/csskit/csskit/internal/logger"
	"github.com/csskit/csskit/internal/test"
)

func parserForTest(contents string) (*css_parser.Parser, logger.Log) {
	log := logger.NewDeferLog(logger.DeferLogAll)
	return css_parser.New(log, test.SourceForTest(contents), css_parser.Options{}), log
}

func expectRoundTrip(t *testing.T, contents string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		p, log := parserForTest(contents)
		sheet := ParseStyleSheet(p)
		for _, msg := range log.Done() {
			if msg.Kind == logger.Error {
				t.Fatalf("unexpected error: %s", msg.Data.Text)
			}
		}
		test.AssertEqualWithDiff(t, Serialize(contents, sheet), contents)
	})
}

func TestRoundTrip(t *testing.T) {
	expectRoundTrip(t, "")
	expectRoundTrip(t, "  \n\t  ")
	expectRoundTrip(t, "a{}")
	expectRoundTrip(t, "a { color : red ; }")
	expectRoundTrip(t, "a{color:red}")
	expectRoundTrip(t, "/* leading */ a {} /* trailing */")
	expectRoundTrip(t, ".cls , #id > p::before { margin : 0 auto ; }")
	expectRoundTrip(t, "a[href^=\"https://\" i] ~ b.cls { opacity : 50% !important }")
	expectRoundTrip(t, "@media print { }")
	expectRoundTrip(t, "@media (min-width: 1200px) { body { color : red ; } }")
	expectRoundTrip(t, "@media screen and (100px <= width <= 1400px) { a {} }")
	expectRoundTrip(t, "@media not ((hover) or (pointer: coarse)) { a {} }")
	expectRoundTrip(t, "@media only screen and (orientation: portrait), only print { a {} }")
	expectRoundTrip(t, "@container sidebar (width > 360px) and (height > 100px) { a {} }")
	expectRoundTrip(t, "@container style(--accent: green) { a {} }")
	expectRoundTrip(t, "@supports (display: grid) and (not (display: inline-grid)) { a {} }")
	expectRoundTrip(t, "@supports selector(h2 > p) { a {} }")
	expectRoundTrip(t, "@charset \"utf-8\";")
	expectRoundTrip(t, "@import url(\"theme.css\") screen;")
	expectRoundTrip(t, "@import \"plain.css\";")
	expectRoundTrip(t, "@namespace svg url(http://www.w3.org/2000/svg);")
	expectRoundTrip(t, "@layer base, components;")
	expectRoundTrip(t, "@layer utilities { a { color : green } }")
	expectRoundTrip(t, "@page :first { margin-top : 1in ; }")
	expectRoundTrip(t, "@font-face { font-family : \"Test\" ; src : url(t.woff2) ; }")
	expectRoundTrip(t, "@keyframes slide { from { left : 0 } 50% { left : 30px } to { left : 60px } }")
	expectRoundTrip(t, "@unknown-rule weird (prelude) { whatever { goes } here }")
	expectRoundTrip(t, "<!-- a{} -->")
	expectRoundTrip(t, "a { --custom : { any [ tokens ] ( at all ) } ; }")
	expectRoundTrip(t, "a { width : calc( 100% - var(--x) ) ; }")
	expectRoundTrip(t, "a { b : c } d { e : f }")
	expectRoundTrip(t, "a { & > b { color : red } }")
	expectRoundTrip(t, "élément { color : réd }")
}

// Warnings may be recorded, but the bytes always survive.
func expectRoundTripWithWarnings(t *testing.T, contents string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		p, _ := parserForTest(contents)
		sheet := ParseStyleSheet(p)
		test.AssertEqualWithDiff(t, Serialize(contents, sheet), contents)
	})
}

func TestRoundTripOfRecoveredInput(t *testing.T) {
	expectRoundTripWithWarnings(t, "a { color:red; !!!garbage!!! ; width:1px }")
	expectRoundTripWithWarnings(t, "a { ; ; color:red ; ; }")
	expectRoundTripWithWarnings(t, "a { unclosed:")
	expectRoundTripWithWarnings(t, "a { font-weight : 9999 }")
	expectRoundTripWithWarnings(t, "a { width : 1px 2px }")
}

// Re-parsing the serialised output must give a structurally identical tree.
func TestIdempotentReparse(t *testing.T) {
	contents := "@media (min-width: 1200px) { body { color : red } } a.cls:hover { margin : 0 }"
	p1, _ := parserForTest(contents)
	sheet1 := ParseStyleSheet(p1)

	serialized := Serialize(contents, sheet1)
	p2, _ := parserForTest(serialized)
	sheet2 := ParseStyleSheet(p2)

	test.AssertSameStructure(t, sheet2, sheet1)
}

// Children must cover their parent's span in source order with no overlap.
func TestSpanOrdering(t *testing.T) {
	contents := "@media (min-width: 1200px) { body { color : red } }"
	p, _ := parserForTest(contents)
	sheet := ParseStyleSheet(p)

	var cursors css_lexer.CursorSlice
	sheet.ToCursors(&cursors)
	require.NotEmpty(t, cursors.Cursors)
	last := int32(0)
	for _, c := range cursors.Cursors {
		require.GreaterOrEqual(t, c.Loc.Start, last, "cursors must be in source order")
		last = c.End()
	}

	rule := sheet.Rules[0]
	r := css_parser.NodeRange(rule)
	require.Equal(t, int32(0), r.Loc.Start)
	require.Equal(t, int32(len(contents)), r.End())
}

func TestMediaRulePrint(t *testing.T) {
	p, _ := parserForTest("@media print{}")
	rule, err := ParseMediaRule(p)
	require.NoError(t, err)

	require.NotNil(t, rule.Prelude)
	require.Len(t, rule.Prelude.Items, 1)
	query := rule.Prelude.Items[0]
	require.Nil(t, query.Modifier)
	require.NotNil(t, query.MediaType)
	require.Equal(t, "print", p.ParseStr(*query.MediaType))
	require.Nil(t, query.Condition)

	require.NotNil(t, rule.Block)
	require.Empty(t, rule.Block.Items)
}

func TestMediaRuleWithCondition(t *testing.T) {
	contents := "@media(min-width:1200px){body{color:red;}}"
	p, _ := parserForTest(contents)
	rule, err := ParseMediaRule(p)
	require.NoError(t, err)

	require.Len(t, rule.Prelude.Items, 1)
	query := rule.Prelude.Items[0]
	require.Nil(t, query.MediaType)
	require.NotNil(t, query.Condition)
	require.Equal(t, ConditionIs, query.Condition.Kind)

	feature, ok := (*query.Condition.Feature).(WidthMediaFeature)
	require.True(t, ok)
	require.Equal(t, css_parser.RangedFeaturePlain, feature.RangedFeature.Kind)
	require.Equal(t, float32(1200), feature.Value.Value())
	require.Equal(t, css_lexer.UnitPx, feature.Value.Unit())

	require.Len(t, rule.Block.Items, 1)
	style, ok := rule.Block.Items[0].(StyleRule)
	require.True(t, ok)
	require.Len(t, style.Block.Items, 1)
	declaration, ok := style.Block.Items[0].(css_parser.Declaration[StyleValue])
	require.True(t, ok)
	require.Equal(t, "color", p.ParseStr(declaration.Name))
	color, ok := declaration.Value.(ColorValue)
	require.True(t, ok)
	named, ok := color.Color.(NamedColor)
	require.True(t, ok)
	require.Equal(t, uint32(0xFF0000FF), named.RGBA)
}

func TestMediaQueryReservedType(t *testing.T) {
	p, _ := parserForTest("@media or { }")
	_, err := ParseMediaRule(p)
	require.Error(t, err)
}

func TestMediaTypeAndConditionDisallowsOr(t *testing.T) {
	p, _ := parserForTest("screen and (hover) or (pointer)")
	_, err := ParseMediaQuery(p)
	require.Error(t, err)
}

func TestNestedMediaConditionMixes(t *testing.T) {
	p, _ := parserForTest("not ((hover) or (pointer))")
	query, err := ParseMediaQuery(p)
	require.NoError(t, err)
	require.NotNil(t, query.Condition)
	require.Equal(t, ConditionNot, query.Condition.Kind)

	paren, ok := (*query.Condition.Feature).(MediaConditionParen)
	require.True(t, ok)
	require.Equal(t, ConditionOr, paren.Condition.Kind)
	require.Len(t, paren.Condition.Terms, 2)
}

func TestContainerWidthFeature(t *testing.T) {
	p, _ := parserForTest("(width:360px)")
	feature, err := ParseContainerFeature(p)
	require.NoError(t, err)

	width, ok := feature.(WidthContainerFeature)
	require.True(t, ok)
	require.Equal(t, css_parser.RangedFeaturePlain, width.RangedFeature.Kind)
	require.Equal(t, float32(360), width.Value.Value())
	require.Equal(t, css_lexer.UnitPx, width.Value.Unit())
}

func TestContainerRangedFeature(t *testing.T) {
	p, _ := parserForTest("(100px<=width>1400px)")
	feature, err := ParseContainerFeature(p)
	require.NoError(t, err)

	width, ok := feature.(WidthContainerFeature)
	require.True(t, ok)
	require.Equal(t, css_parser.RangedFeatureDual, width.RangedFeature.Kind)
	require.Equal(t, css_parser.RangeOpLe, width.LeftOp.Op)
	require.Equal(t, css_parser.RangeOpGt, width.RightOp.Op)
	require.Equal(t, float32(100), width.LeftValue.Value())
	require.Equal(t, float32(1400), width.RightValue.Value())
}

func TestMediaRangeEqualsTwice(t *testing.T) {
	p, _ := parserForTest("(100px = width = 1400px)")
	_, err := ParseMediaInParens(p)
	d, ok := err.(*css_parser.Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_UnexpectedMediaRangeComparisonEqualsTwice, d.ID)
}

func TestMediaRangeRejectsPrefixedNames(t *testing.T) {
	p, _ := parserForTest("(min-width > 10px)")
	_, err := ParseMediaInParens(p)
	require.Error(t, err)
}

func TestUnknownMediaFeaturePreserved(t *testing.T) {
	p, _ := parserForTest("(future-feature: 42wat)")
	feature, err := ParseMediaInParens(p)
	require.NoError(t, err)
	_, ok := feature.(GeneralEnclosed)
	require.True(t, ok)
}

func TestHexColors(t *testing.T) {
	expected := []struct {
		contents string
		rgba     uint32
	}{
		{"#abc", 0xAABBCCFF},
		{"#abcd", 0xAABBCCDD},
		{"#aabbcc", 0xAABBCCFF},
		{"#aabbccdd", 0xAABBCCDD},
		{"#FFF", 0xFFFFFFFF},
	}
	for _, it := range expected {
		it := it
		t.Run(it.contents, func(t *testing.T) {
			p, _ := parserForTest(it.contents)
			hex, err := ParseHexColor(p)
			require.NoError(t, err)
			require.Equal(t, it.rgba, hex.RGBA)
		})
	}

	p, _ := parserForTest("#abcde")
	_, err := ParseHexColor(p)
	d, ok := err.(*css_parser.Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_BadHexColor, d.ID)
}

func TestColorFunctionModern(t *testing.T) {
	contents := "color(srgb 1 .5 0 / .25)"
	p, _ := parserForTest(contents)
	function, err := ParseColorFunction(p)
	require.NoError(t, err)

	require.Equal(t, ColorFunctionColor, function.Name.Value)
	require.NotNil(t, function.Space)
	require.Equal(t, ColorSpaceSrgb, function.Space.Value)
	require.False(t, function.Legacy)
	for i := 0; i < 3; i++ {
		require.NotNil(t, function.Channels[i])
	}
	require.Equal(t, float32(1), function.Channels[0].Token.Value())
	require.Equal(t, float32(0.5), function.Channels[1].Token.Value())
	require.Equal(t, float32(0), function.Channels[2].Token.Value())
	require.NotNil(t, function.Slash)
	require.NotNil(t, function.Alpha)
	require.Equal(t, float32(0.25), function.Alpha.Token.Value())
	require.NotNil(t, function.Close)

	require.Equal(t, contents, Serialize(contents, function))
}

func TestColorFunctionLegacy(t *testing.T) {
	p, _ := parserForTest("rgb(255, 128, 0, 0.5)")
	function, err := ParseColorFunction(p)
	require.NoError(t, err)
	require.True(t, function.Legacy)
	require.NotNil(t, function.Commas[0])
	require.NotNil(t, function.Commas[1])
	require.NotNil(t, function.Commas[2])
	require.NotNil(t, function.Alpha)

	// Mixing commas with the space syntax is rejected
	p, _ = parserForTest("rgb(255, 128 0)")
	_, err = ParseColorFunction(p)
	d, ok := err.(*css_parser.Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_ColorLegacyMustIncludeComma, d.ID)
}

func TestColorFunctionHueFirst(t *testing.T) {
	p, _ := parserForTest("hsl(120deg 50% 50%)")
	function, err := ParseColorFunction(p)
	require.NoError(t, err)
	require.Equal(t, ColorFunctionHsl, function.Name.Value)

	p, _ = parserForTest("hsl(50% 120 50%)")
	_, err = ParseColorFunction(p)
	d, ok := err.(*css_parser.Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_ColorMustStartWithHue, d.ID)
}

func TestNamedColors(t *testing.T) {
	p, _ := parserForTest("rebeccapurple currentColor transparent canvastext")

	color, err := ParseColor(p)
	require.NoError(t, err)
	named, ok := color.(NamedColor)
	require.True(t, ok)
	require.Equal(t, uint32(0x663399FF), named.RGBA)

	color, err = ParseColor(p)
	require.NoError(t, err)
	_, ok = color.(CurrentColor)
	require.True(t, ok)

	color, err = ParseColor(p)
	require.NoError(t, err)
	named, ok = color.(NamedColor)
	require.True(t, ok)
	require.Equal(t, uint32(0), named.RGBA)

	color, err = ParseColor(p)
	require.NoError(t, err)
	_, ok = color.(SystemColor)
	require.True(t, ok)
}

func TestSelectorComponents(t *testing.T) {
	p, _ := parserForTest("svg|circle.big#main[href^=\"x\" i]:hover::before")
	selector, err := ParseComplexSelector(p)
	require.NoError(t, err)
	require.Len(t, selector.Components, 6)

	typ, ok := selector.Components[0].(TypeSelector)
	require.True(t, ok)
	require.NotNil(t, typ.Namespace)
	require.Equal(t, "circle", p.ParseStr(typ.Name))

	_, ok = selector.Components[1].(ClassSelector)
	require.True(t, ok)
	_, ok = selector.Components[2].(IdSelector)
	require.True(t, ok)

	attribute, ok := selector.Components[3].(AttributeSelector)
	require.True(t, ok)
	require.NotNil(t, attribute.Matcher)
	require.NotNil(t, attribute.Matcher.Prefix)
	require.NotNil(t, attribute.Modifier)

	_, ok = selector.Components[4].(PseudoClassSelector)
	require.True(t, ok)
	_, ok = selector.Components[5].(PseudoElementSelector)
	require.True(t, ok)
}

func TestSelectorCombinators(t *testing.T) {
	p, _ := parserForTest("a > b c ~ d + e")
	selector, err := ParseComplexSelector(p)
	require.NoError(t, err)
	require.Len(t, selector.Components, 9)

	kinds := []CombinatorKind{}
	for _, component := range selector.Components {
		if combinator, ok := component.(Combinator); ok {
			kinds = append(kinds, combinator.Kind)
		}
	}
	require.Equal(t, []CombinatorKind{
		CombinatorChild, CombinatorDescendant, CombinatorSubsequent, CombinatorNextSibling,
	}, kinds)
}

func TestAdjacentCombinatorsRejected(t *testing.T) {
	p, _ := parserForTest("a > > b")
	_, err := ParseComplexSelector(p)
	d, ok := err.(*css_parser.Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_AdjacentSelectorCombinators, d.ID)
}

func TestMozLocaleDirPseudoFunction(t *testing.T) {
	p, _ := parserForTest(":-moz-locale-dir(ltr)")
	selector, err := ParseComplexSelector(p)
	require.NoError(t, err)
	require.Len(t, selector.Components, 1)

	localeDir, ok := selector.Components[0].(MozLocaleDirPseudoFunction)
	require.True(t, ok)
	require.Equal(t, DirValueLtr, localeDir.Value.Value)
	require.NotNil(t, localeDir.Close)
}

func TestSelectorListPseudoFunction(t *testing.T) {
	p, _ := parserForTest(":is(a, b.cls)")
	selector, err := ParseComplexSelector(p)
	require.NoError(t, err)

	is, ok := selector.Components[0].(SelectorListPseudoFunction)
	require.True(t, ok)
	require.Len(t, is.Selectors.Items, 2)
}

func TestUnknownPseudoClassRejected(t *testing.T) {
	p, _ := parserForTest(":totally-made-up(x)")
	_, err := ParseComplexSelector(p)
	d, ok := err.(*css_parser.Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_UnexpectedPseudoClass, d.ID)
}

func TestTypedDeclarations(t *testing.T) {
	p, _ := parserForTest("width: 100px")
	declaration, err := ParseDeclaration(p)
	require.NoError(t, err)
	dimension, ok := declaration.Value.(DimensionValue)
	require.True(t, ok)
	require.Equal(t, float32(100), dimension.Value())

	p, _ = parserForTest("width: auto")
	declaration, err = ParseDeclaration(p)
	require.NoError(t, err)
	_, ok = declaration.Value.(KeywordValue)
	require.True(t, ok)

	p, _ = parserForTest("z-index: 3")
	declaration, err = ParseDeclaration(p)
	require.NoError(t, err)
	integer, ok := declaration.Value.(IntegerValue)
	require.True(t, ok)
	require.Equal(t, int32(3), integer.Value())

	p, _ = parserForTest("color: inherit")
	declaration, err = ParseDeclaration(p)
	require.NoError(t, err)
	_, ok = declaration.Value.(KeywordValue)
	require.True(t, ok)

	// Values leaning on computed-value functions stay raw
	p, _ = parserForTest("width: var(--w)")
	declaration, err = ParseDeclaration(p)
	require.NoError(t, err)
	_, ok = declaration.Value.(RawValue)
	require.True(t, ok)

	// Custom properties stay raw
	p, _ = parserForTest("--anything: { weird } stuff")
	declaration, err = ParseDeclaration(p)
	require.NoError(t, err)
	_, ok = declaration.Value.(RawValue)
	require.True(t, ok)

	// Unknown properties stay raw
	p, _ = parserForTest("mystery-prop: some values")
	declaration, err = ParseDeclaration(p)
	require.NoError(t, err)
	_, ok = declaration.Value.(RawValue)
	require.True(t, ok)
}

// A typed parse failure falls back to the raw value with a warning rather
// than losing the declaration.
func TestTypedDeclarationFallback(t *testing.T) {
	p, log := parserForTest("font-weight: 9999")
	declaration, err := ParseDeclaration(p)
	require.NoError(t, err)
	_, ok := declaration.Value.(RawValue)
	require.True(t, ok)

	msgs := log.Done()
	require.NotEmpty(t, msgs)
	require.Equal(t, logger.MsgID_CSS_NumberOutOfBounds, msgs[0].ID)
}

func TestDisplayListItemCombo(t *testing.T) {
	p, _ := parserForTest("display: list-item block flow")
	declaration, err := ParseDeclaration(p)
	require.NoError(t, err)
	_, ok := declaration.Value.(DisplayValue)
	require.True(t, ok)

	p, log := parserForTest("display: grid list-item")
	declaration, err = ParseDeclaration(p)
	require.NoError(t, err)
	_, ok = declaration.Value.(RawValue)
	require.True(t, ok)
	msgs := log.Done()
	require.NotEmpty(t, msgs)
	require.Equal(t, logger.MsgID_CSS_DisplayHasInvalidListItemCombo, msgs[0].ID)
}

func TestKeyframesReservedName(t *testing.T) {
	p, _ := parserForTest("@keyframes none { }")
	_, err := ParseKeyframesRule(p)
	d, ok := err.(*css_parser.Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_ReservedKeyframeName, d.ID)

	// Quoting makes the name legal
	p, _ = parserForTest("@keyframes \"none\" { }")
	_, err = ParseKeyframesRule(p)
	require.NoError(t, err)
}

func TestKeyframesImportantWarns(t *testing.T) {
	p, log := parserForTest("@keyframes slide { from { left : 0 !important } }")
	_, err := ParseKeyframesRule(p)
	require.NoError(t, err)

	found := false
	for _, msg := range log.Done() {
		if msg.ID == logger.MsgID_CSS_DisallowedImportant {
			found = true
		}
	}
	require.True(t, found)
}

func TestCharsetRule(t *testing.T) {
	p, _ := parserForTest("@charset \"utf-8\";")
	rule, err := ParseCharsetRule(p)
	require.NoError(t, err)
	require.NotNil(t, rule.Prelude)
	require.NotNil(t, rule.Semicolon)
}

func TestLayerRule(t *testing.T) {
	p, _ := parserForTest("@layer base.colors, components;")
	rule, err := ParseLayerRule(p)
	require.NoError(t, err)
	require.Len(t, rule.Prelude.Items, 2)
	require.Len(t, rule.Prelude.Items[0].Parts, 3)

	// Multiple names with a block is invalid
	p, _ = parserForTest("@layer a, b { }")
	_, err = ParseLayerRule(p)
	require.Error(t, err)
}

func TestUnknownAtRuleNeverFatal(t *testing.T) {
	contents := "@-vendor-thing some (weird) prelude { with { nested } blocks }"
	p, log := parserForTest(contents)
	sheet := ParseStyleSheet(p)
	require.Len(t, sheet.Rules, 1)
	_, ok := sheet.Rules[0].(UnknownAtRule)
	require.True(t, ok)
	for _, msg := range log.Done() {
		require.NotEqual(t, logger.Error, msg.Kind)
	}
	require.Equal(t, contents, Serialize(contents, sheet))
}

func TestBadDeclarationRecovery(t *testing.T) {
	contents := "a { color:red; 5px; width:1px }"
	p, log := parserForTest(contents)
	sheet := ParseStyleSheet(p)
	require.Equal(t, contents, Serialize(contents, sheet))

	style := sheet.Rules[0].(StyleRule)
	require.Len(t, style.Block.Items, 3)
	_, ok := style.Block.Items[1].(css_parser.BadDeclaration)
	require.True(t, ok)

	found := false
	for _, msg := range log.Done() {
		if msg.ID == logger.MsgID_CSS_BadDeclaration {
			found = true
		}
	}
	require.True(t, found)
}

func TestStylesheetRecoverySkipsBrokenRule(t *testing.T) {
	contents := "@media { } a { color:red }"
	p, log := parserForTest(contents)
	sheet := ParseStyleSheet(p)

	// The @media without a prelude fails but the next rule survives
	require.Len(t, sheet.Rules, 1)
	_, ok := sheet.Rules[0].(StyleRule)
	require.True(t, ok)
	hasError := false
	for _, msg := range log.Done() {
		if msg.Kind == logger.Error {
			hasError = true
		}
	}
	require.True(t, hasError)

	// Recovery never loses bytes
	require.Equal(t, contents, Serialize(contents, sheet))
}
