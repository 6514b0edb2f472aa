package css_parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/logger"
	"github.com/csskit/csskit/internal/test"
)

func parserForTest(contents string) *Parser {
	log := logger.NewDeferLog(logger.DeferLogAll)
	return New(log, test.SourceForTest(contents), Options{})
}

func TestPeekSkipsTrivia(t *testing.T) {
	p := parserForTest("  /* note */  color  :  red")

	c := p.Peek()
	require.True(t, c.Is(css_lexer.KindIdent))
	require.Equal(t, "color", p.ParseStr(c))

	require.True(t, p.PeekN(2).Is(css_lexer.KindColon))
	require.True(t, p.PeekN(3).Is(css_lexer.KindIdent))
	require.Equal(t, "red", p.ParseStr(p.PeekN(3)))

	// Peeking never advances
	require.Equal(t, int32(0), p.Offset())
}

func TestPeekWithWhitespace(t *testing.T) {
	p := parserForTest("  a")
	require.True(t, p.PeekWithWhitespace().Is(css_lexer.KindWhitespace))
	require.True(t, p.Peek().Is(css_lexer.KindIdent))
}

func TestNextAndHop(t *testing.T) {
	p := parserForTest(" a b ")

	a := p.Next()
	require.Equal(t, "a", p.ParseStr(a))

	b := p.Peek()
	require.Equal(t, "b", p.ParseStr(b))
	p.Hop(b)
	require.True(t, p.Peek().Is(css_lexer.KindEof))
}

func TestCheckpointRewind(t *testing.T) {
	p := parserForTest("a b c")

	checkpoint := p.Checkpoint()
	p.Next()
	p.Next()
	require.Equal(t, "c", p.ParseStr(p.Peek()))

	p.Rewind(checkpoint)
	require.Equal(t, "a", p.ParseStr(p.Peek()))
}

func TestSetSkipDiscipline(t *testing.T) {
	p := parserForTest("a b")

	prev := p.SetSkip(css_lexer.KindSetNone)
	require.Equal(t, css_lexer.KindSetWhitespaceComment, prev)
	p.Hop(p.Peek())
	require.True(t, p.Peek().Is(css_lexer.KindWhitespace))
	p.SetSkip(prev)
	require.True(t, p.Peek().Is(css_lexer.KindIdent))
}

// A failed double-delimiter parse must not leak its empty skip-set.
func TestSkipSetRestoredOnError(t *testing.T) {
	p := parserForTest("> =")

	_, err := ParseDoubleDelim(p, '>', '=')
	require.Error(t, err)
	require.Equal(t, css_lexer.KindSetWhitespaceComment, p.Skip())
}

func TestDoubleDelim(t *testing.T) {
	p := parserForTest(">=")
	d, err := ParseDoubleDelim(p, '>', '=')
	require.NoError(t, err)
	require.True(t, d.First.IsDelimChar('>'))
	require.True(t, d.Second.IsDelimChar('='))

	p = parserForTest("::before")
	require.True(t, PeekColonColon(p, p.Peek()))
	colons, err := ParseColonColon(p)
	require.NoError(t, err)
	require.True(t, colons.Second.Is(css_lexer.KindColon))

	p = parserForTest(": :")
	require.False(t, PeekColonColon(p, p.Peek()))
	_, err = ParseColonColon(p)
	require.Error(t, err)
}

func TestParseStrLower(t *testing.T) {
	p := parserForTest("Color WIDTH \\57 idth plain")

	c := p.Next()
	require.Equal(t, "color", p.ParseStrLower(c))

	c = p.Next()
	require.Equal(t, "width", p.ParseStrLower(c))

	c = p.Next()
	require.Equal(t, "width", p.ParseStrLower(c))

	c = p.Next()
	require.Equal(t, "plain", p.ParseStrLower(c))
}

// Two identifiers with different raw bytes but equal unescaped text must
// produce the same atom.
func TestAtomEscapeEquality(t *testing.T) {
	p := parserForTest("width \\57 idth WIDTH")
	a := p.ParseAtomLower(p.Next())
	b := p.ParseAtomLower(p.Next())
	c := p.ParseAtomLower(p.Next())
	require.Equal(t, a, b)
	require.Equal(t, a, c)
}

func TestEqIgnoreASCIICase(t *testing.T) {
	p := parserForTest("Hello \\48 ello other")
	require.True(t, p.EqIgnoreASCIICase(p.Next(), "hello"))
	require.True(t, p.EqIgnoreASCIICase(p.Next(), "hello"))
	require.False(t, p.EqIgnoreASCIICase(p.Next(), "hello"))
}

func TestTryParseRewindsOnError(t *testing.T) {
	p := parserForTest("nope")

	_, err := TryParse(p, func(p *Parser) (Number, error) {
		return ParseNumber(p)
	})
	require.Error(t, err)
	require.Equal(t, int32(0), p.Offset())

	ident, err := ParseIdent(p)
	require.NoError(t, err)
	require.Equal(t, "nope", p.ParseStr(ident.Cursor))
}

func TestParseIfPeek(t *testing.T) {
	p := parserForTest("red 1px")

	number, err := ParseIfPeek(p, PeekKind(css_lexer.KindNumber), ParseNumber)
	require.NoError(t, err)
	require.Nil(t, number)

	ident, err := ParseIfPeek(p, PeekKind(css_lexer.KindIdent), ParseIdent)
	require.NoError(t, err)
	require.NotNil(t, ident)
}

func TestComponentValues(t *testing.T) {
	p := parserForTest("1px solid { nested ( deep [ er ] ) } fn(a, b) ;")

	values, err := ParseComponentValues(p, css_lexer.NewKindSet(css_lexer.KindSemicolon))
	require.NoError(t, err)
	require.Len(t, values, 4)

	block, ok := values[2].(SimpleBlock)
	require.True(t, ok)
	require.True(t, block.Open.Is(css_lexer.KindLeftCurly))
	require.NotNil(t, block.Close)

	function, ok := values[3].(FunctionBlock)
	require.True(t, ok)
	require.NotNil(t, function.Close)
	require.Len(t, function.Values, 3)

	// The stop token is not consumed
	require.True(t, p.Peek().Is(css_lexer.KindSemicolon))
}

func TestSimpleBlockImplicitClose(t *testing.T) {
	p := parserForTest("[ a b")
	block, err := ParseSimpleBlock(p)
	require.NoError(t, err)
	require.Nil(t, block.Close)
	require.Len(t, block.Values, 2)
}

func TestDeclarationSkeleton(t *testing.T) {
	p := parserForTest("margin : 0 auto !important ;")

	d, err := ParseDeclarationWith(p, ParseComponentValuesDeclarationValue)
	require.NoError(t, err)
	require.Equal(t, "margin", p.ParseStr(d.Name))
	require.Len(t, d.Value, 2)
	require.NotNil(t, d.Important)
	require.NotNil(t, d.Semicolon)
}

func TestDeclarationWithoutImportant(t *testing.T) {
	p := parserForTest("color:red")

	d, err := ParseDeclarationWith(p, ParseComponentValuesDeclarationValue)
	require.NoError(t, err)
	require.Nil(t, d.Important)
	require.Nil(t, d.Semicolon)
	require.Len(t, d.Value, 1)
}

func TestPeekComputedValue(t *testing.T) {
	p := parserForTest("1px solid var(--x); next")
	require.True(t, PeekComputedValue(p))
	require.Equal(t, int32(0), p.Offset())

	p = parserForTest("1px solid red; var(--x)")
	require.False(t, PeekComputedValue(p))

	p = parserForTest("calc(1px + 2px)")
	require.True(t, PeekComputedValue(p))
}

func TestKeywordSet(t *testing.T) {
	type direction uint8
	const (
		up direction = iota
		down
	)
	directions := NewKeywordSet(map[string]direction{"up": up, "down": down})

	p := parserForTest("DOWN sideways")
	keyword, err := directions.Parse(p)
	require.NoError(t, err)
	require.Equal(t, down, keyword.Value)

	_, err = directions.Parse(p)
	require.Error(t, err)
}

func TestConditionList(t *testing.T) {
	parseFeature := func(p *Parser) (BooleanFeature, error) {
		return ParseBooleanFeature(p, "hover")
	}
	parse := func(contents string) (FeatureConditionKindForTest, error) {
		p := parserForTest(contents)
		return ParseCondition(p, testConditionOps(parseFeature))
	}

	condition, err := parse("(hover)")
	require.NoError(t, err)
	require.Equal(t, "is", condition.kind)

	condition, err = parse("not (hover)")
	require.NoError(t, err)
	require.Equal(t, "not", condition.kind)

	condition, err = parse("(hover) and (hover) and (hover)")
	require.NoError(t, err)
	require.Equal(t, "and", condition.kind)
	require.Equal(t, 3, condition.terms)

	condition, err = parse("(hover) or (hover)")
	require.NoError(t, err)
	require.Equal(t, "or", condition.kind)
	require.Equal(t, 2, condition.terms)

	// "and" and "or" cannot mix at one level
	_, err = parse("(hover) and (hover) or (hover)")
	require.Error(t, err)
}

type FeatureConditionKindForTest struct {
	kind  string
	terms int
}

func testConditionOps(parseFeature func(*Parser) (BooleanFeature, error)) ConditionOps[BooleanFeature, FeatureConditionKindForTest] {
	return ConditionOps[BooleanFeature, FeatureConditionKindForTest]{
		ParseFeature: parseFeature,
		BuildIs: func(BooleanFeature) FeatureConditionKindForTest {
			return FeatureConditionKindForTest{kind: "is", terms: 1}
		},
		BuildNot: func(ConditionKeyword, BooleanFeature) FeatureConditionKindForTest {
			return FeatureConditionKindForTest{kind: "not", terms: 1}
		},
		BuildAnd: func(terms []ConditionTerm[BooleanFeature]) FeatureConditionKindForTest {
			return FeatureConditionKindForTest{kind: "and", terms: len(terms)}
		},
		BuildOr: func(terms []ConditionTerm[BooleanFeature]) FeatureConditionKindForTest {
			return FeatureConditionKindForTest{kind: "or", terms: len(terms)}
		},
	}
}

func TestRangeComparison(t *testing.T) {
	expected := []struct {
		contents string
		op       RangeOp
	}{
		{"=", RangeOpEq},
		{"<", RangeOpLt},
		{"<=", RangeOpLe},
		{">", RangeOpGt},
		{">=", RangeOpGe},
	}
	for _, it := range expected {
		it := it
		t.Run(it.contents, func(t *testing.T) {
			p := parserForTest(it.contents)
			comparison, err := ParseRangeComparison(p)
			require.NoError(t, err)
			require.Equal(t, it.op, comparison.Op)
			require.Equal(t, it.contents, comparison.Op.String())
		})
	}

	// "< =" with whitespace is two separate comparisons, not "<="
	p := parserForTest("< =")
	comparison, err := ParseRangeComparison(p)
	require.NoError(t, err)
	require.Equal(t, RangeOpLt, comparison.Op)
}

func TestRangedFeatureForms(t *testing.T) {
	parse := func(contents string) (RangedFeature[Dimension], error) {
		p := parserForTest(contents)
		return ParseRangedFeature(p, []string{"width"}, ParseDimension)
	}

	f, err := parse("(width)")
	require.NoError(t, err)
	require.Equal(t, RangedFeatureBoolean, f.Kind)

	f, err = parse("(width: 100px)")
	require.NoError(t, err)
	require.Equal(t, RangedFeaturePlain, f.Kind)
	require.Equal(t, float32(100), f.Value.Value())

	f, err = parse("(min-width: 100px)")
	require.NoError(t, err)
	require.Equal(t, RangedFeaturePlain, f.Kind)

	f, err = parse("(width > 100px)")
	require.NoError(t, err)
	require.Equal(t, RangedFeatureRight, f.Kind)
	require.Equal(t, RangeOpGt, f.RightOp.Op)

	f, err = parse("(100px <= width)")
	require.NoError(t, err)
	require.Equal(t, RangedFeatureLeft, f.Kind)
	require.Equal(t, RangeOpLe, f.LeftOp.Op)

	f, err = parse("(100px<=width>1400px)")
	require.NoError(t, err)
	require.Equal(t, RangedFeatureDual, f.Kind)
	require.Equal(t, RangeOpLe, f.LeftOp.Op)
	require.Equal(t, RangeOpGt, f.RightOp.Op)
	require.Equal(t, float32(100), f.LeftValue.Value())
	require.Equal(t, float32(1400), f.RightValue.Value())

	// Equality on both sides is rejected
	_, err = parse("(100px = width = 1400px)")
	d, ok := err.(*Diagnostic)
	require.True(t, ok)
	require.Equal(t, logger.MsgID_CSS_UnexpectedMediaRangeComparisonEqualsTwice, d.ID)

	// The legacy prefixes are invalid in the range context
	_, err = parse("(min-width > 100px)")
	require.Error(t, err)
}

func TestDiscreteAndBooleanFeatures(t *testing.T) {
	type orientation uint8
	keywords := NewKeywordSet(map[string]orientation{"portrait": 0, "landscape": 1})

	p := parserForTest("(orientation: landscape)")
	f, err := ParseDiscreteFeature(p, "orientation", keywords)
	require.NoError(t, err)
	require.NotNil(t, f.Value)
	require.Equal(t, orientation(1), f.Value.Value)

	p = parserForTest("(orientation)")
	f, err = ParseDiscreteFeature(p, "orientation", keywords)
	require.NoError(t, err)
	require.Nil(t, f.Value)

	p = parserForTest("(grid)")
	b, err := ParseBooleanFeature(p, "grid")
	require.NoError(t, err)
	require.Equal(t, "grid", p.ParseStr(b.Name))

	p = parserForTest("(flex)")
	_, err = ParseBooleanFeature(p, "grid")
	require.Error(t, err)
}

func TestNodeRange(t *testing.T) {
	p := parserForTest("fn(a, b)")
	block, err := ParseFunctionBlock(p)
	require.NoError(t, err)
	r := NodeRange(block)
	require.Equal(t, int32(0), r.Loc.Start)
	require.Equal(t, int32(8), r.End())
}
