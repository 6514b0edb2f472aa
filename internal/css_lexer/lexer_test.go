package css_lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csskit/csskit/internal/logger"
)

func loc(start int32) logger.Loc {
	return logger.Loc{Start: start}
}

func lexAll(contents string, features Feature) []Cursor {
	lexer := NewLexer(contents, features)
	var cursors []Cursor
	for {
		offset := lexer.Offset()
		token := lexer.Advance()
		if token.Is(KindEof) {
			return cursors
		}
		cursors = append(cursors, NewCursor(loc(offset), token))
	}
}

func lexOne(contents string) Token {
	lexer := NewLexer(contents, 0)
	return lexer.Advance()
}

func TestTokenKinds(t *testing.T) {
	expected := []struct {
		contents string
		kind     Kind
	}{
		{"", KindEof},
		{" ", KindWhitespace},
		{"\t\n ", KindWhitespace},
		{"/* comment */", KindComment},
		{"<!--", KindCdcOrCdo},
		{"-->", KindCdcOrCdo},
		{"123", KindNumber},
		{"1.5e2", KindNumber},
		{"+12", KindNumber},
		{"-.5", KindNumber},
		{"1px", KindDimension},
		{"50%", KindDimension},
		{"12rem", KindDimension},
		{"'abc", KindString},
		{"'ab\ncd'", KindBadString},
		{"url(x y z)", KindBadUrl},
		{"name", KindIdent},
		{"--custom", KindIdent},
		{"max(", KindFunction},
		{"url('x')", KindFunction},
		{"@media", KindAtKeyword},
		{"#id", KindHash},
		{"#0f0", KindHash},
		{"\"abc\"", KindString},
		{"url(test.png)", KindUrl},
		{"url( spaced )", KindUrl},
		{"?", KindDelim},
		{"#", KindDelim},
		{"@", KindDelim},
		{"<", KindDelim},
		{":", KindColon},
		{";", KindSemicolon},
		{",", KindComma},
		{"[", KindLeftSquare},
		{"]", KindRightSquare},
		{"(", KindLeftParen},
		{")", KindRightParen},
		{"{", KindLeftCurly},
		{"}", KindRightCurly},
	}

	for _, it := range expected {
		it := it
		t.Run(it.contents, func(t *testing.T) {
			require.Equal(t, it.kind, lexOne(it.contents).Kind())
		})
	}
}

// Concatenating every token's bytes must reproduce the source, with no
// gaps and no overlaps.
func TestLosslessTokenStream(t *testing.T) {
	sources := []string{
		"",
		"a{b:c}",
		"  /* x */ .cls , #id > p::before { margin : 0 auto ; } ",
		"@media (min-width: 100px) and (max-width: 200px) { a { color: #fff } }",
		"url(foo.png) url( bar.png ) url(\"baz.png\")",
		"content: \"quoted \\\" string\";",
		"--custom: { nested [ tokens ] ( here ) };",
		"\\66 00 { color: red }",
		"1px 2em 3% 4fr 5unknown 6.5e3 -7 +8.9",
		"<!-- a{} -->",
		"élément { color: réd }",
		"bad\"string\nrest{}",
		"url(bad url{}()after",
	}

	for _, source := range sources {
		source := source
		t.Run(source, func(t *testing.T) {
			offset := int32(0)
			for _, c := range lexAll(source, 0) {
				require.Equal(t, offset, c.Loc.Start, "token %s begins at wrong offset", c.Token.Kind())
				require.NotZero(t, c.Token.Length(), "zero-length %s token", c.Token.Kind())
				offset = c.End()
			}
			require.Equal(t, int32(len(source)), offset, "tokens must cover the whole source")
		})
	}
}

func TestNumericTokens(t *testing.T) {
	expected := []struct {
		contents string
		value    float32
		hasSign  bool
		isFloat  bool
	}{
		{"0", 0, false, false},
		{"123", 123, false, false},
		{"+12", 12, true, false},
		{"-45", -45, true, false},
		{".5", 0.5, false, true},
		{"-.5", -0.5, true, true},
		{"1.25", 1.25, false, true},
		{"3e2", 300, false, true},
		{"1E+2", 100, false, true},
		{"1e-2", 0.01, false, true},
	}

	for _, it := range expected {
		it := it
		t.Run(it.contents, func(t *testing.T) {
			token := lexOne(it.contents)
			require.Equal(t, KindNumber, token.Kind())
			require.Equal(t, it.value, token.Value())
			require.Equal(t, it.hasSign, token.HasSign())
			require.Equal(t, it.isFloat, token.IsFloat())
			require.Equal(t, uint32(len(it.contents)), token.Length())
		})
	}
}

func TestDimensionTokens(t *testing.T) {
	token := lexOne("360px")
	require.Equal(t, KindDimension, token.Kind())
	require.Equal(t, float32(360), token.Value())
	require.Equal(t, UnitPx, token.DimensionUnit())
	require.Equal(t, uint32(3), token.NumericLength())
	require.Equal(t, uint32(5), token.Length())

	token = lexOne("50%")
	require.Equal(t, KindDimension, token.Kind())
	require.Equal(t, UnitPercent, token.DimensionUnit())
	require.Equal(t, float32(50), token.Value())

	token = lexOne("10VMIN")
	require.Equal(t, UnitVmin, token.DimensionUnit())

	token = lexOne("12foo")
	require.Equal(t, KindDimension, token.Kind())
	require.Equal(t, UnitUnknown, token.DimensionUnit())
	require.Equal(t, uint32(5), token.Length())

	// "e" only begins an exponent when digits follow
	token = lexOne("12em")
	require.Equal(t, KindDimension, token.Kind())
	require.Equal(t, UnitEm, token.DimensionUnit())

	// A dot with no digit after it ends the number
	token = lexOne("1.em")
	require.Equal(t, KindNumber, token.Kind())
	require.Equal(t, uint32(1), token.Length())
}

func TestIdentTokens(t *testing.T) {
	token := lexOne("name")
	require.Equal(t, KindIdent, token.Kind())
	require.False(t, token.IsDashed())
	require.False(t, token.ContainsNonLowerASCII())
	require.False(t, token.ContainsEscape())

	token = lexOne("--custom-prop")
	require.True(t, token.IsDashed())

	token = lexOne("Name")
	require.True(t, token.ContainsNonLowerASCII())

	token = lexOne("\\66 oo")
	require.Equal(t, KindIdent, token.Kind())
	require.True(t, token.ContainsEscape())

	token = lexOne("-single")
	require.Equal(t, KindIdent, token.Kind())
	require.False(t, token.IsDashed())
}

func TestHashTokens(t *testing.T) {
	token := lexOne("#id")
	require.Equal(t, KindHash, token.Kind())
	require.True(t, token.HashFirstIsIdent())

	token = lexOne("#0abc")
	require.Equal(t, KindHash, token.Kind())
	require.False(t, token.HashFirstIsIdent())

	token = lexOne("# x")
	require.Equal(t, KindDelim, token.Kind())
	require.Equal(t, '#', token.Char())
}

func TestStringTokens(t *testing.T) {
	token := lexOne("\"hello\"")
	require.Equal(t, KindString, token.Kind())
	require.Equal(t, QuoteStyleDouble, token.QuoteStyle())
	require.True(t, token.HasClosingQuote())
	require.False(t, token.ContainsEscape())

	token = lexOne("'hello")
	require.Equal(t, KindString, token.Kind())
	require.Equal(t, QuoteStyleSingle, token.QuoteStyle())
	require.False(t, token.HasClosingQuote())

	token = lexOne("'esc\\'aped'")
	require.True(t, token.ContainsEscape())
	require.Equal(t, uint32(11), token.Length())

	token = lexOne("'line\\\ncontinued'")
	require.Equal(t, KindString, token.Kind())
	require.True(t, token.HasClosingQuote())

	token = lexOne("'broken\nrest")
	require.Equal(t, KindBadString, token.Kind())
	require.Equal(t, uint32(7), token.Length())
}

func TestUrlTokens(t *testing.T) {
	token := lexOne("url(foo.png)")
	require.Equal(t, KindUrl, token.Kind())
	require.Equal(t, uint32(4), token.UrlLeadingLength())
	require.Equal(t, uint32(1), token.UrlTrailingLength())
	require.False(t, token.UrlHasWhitespaceAfterOpenParen())
	require.True(t, token.UrlEndsWithParen())

	token = lexOne("url(  foo.png  )")
	require.Equal(t, KindUrl, token.Kind())
	require.Equal(t, uint32(6), token.UrlLeadingLength())
	require.Equal(t, uint32(3), token.UrlTrailingLength())
	require.True(t, token.UrlHasWhitespaceAfterOpenParen())

	token = lexOne("url(unterminated")
	require.Equal(t, KindUrl, token.Kind())
	require.False(t, token.UrlEndsWithParen())

	token = lexOne("url(two words)")
	require.Equal(t, KindBadUrl, token.Kind())
	require.Equal(t, uint32(14), token.Length())

	token = lexOne("url('quoted')")
	require.Equal(t, KindFunction, token.Kind())
	require.Equal(t, uint32(4), token.Length())

	token = lexOne("URL(caps)")
	require.Equal(t, KindUrl, token.Kind())
}

func TestWhitespaceTokens(t *testing.T) {
	token := lexOne("   ")
	require.Equal(t, KindWhitespace, token.Kind())
	require.False(t, token.HasTab())
	require.False(t, token.HasNewline())
	require.Equal(t, uint32(3), token.Length())

	token = lexOne(" \t\n ")
	require.True(t, token.HasTab())
	require.True(t, token.HasNewline())
	require.Equal(t, uint32(4), token.Length())
}

func TestSeparateWhitespace(t *testing.T) {
	cursors := lexAll(" \t\t\n", FeatureSeparateWhitespace)
	require.Len(t, cursors, 3)
	require.Equal(t, WhitespaceStyleSpace, cursors[0].Token.WhitespaceStyle())
	require.Equal(t, WhitespaceStyleTab, cursors[1].Token.WhitespaceStyle())
	require.Equal(t, uint32(2), cursors[1].Token.Length())
	require.Equal(t, WhitespaceStyleNewline, cursors[2].Token.WhitespaceStyle())

	// CRLF is one newline-style run
	cursors = lexAll("\r\n\r\n", FeatureSeparateWhitespace)
	require.Len(t, cursors, 1)
	require.Equal(t, uint32(4), cursors[0].Token.Length())
}

func TestCommentTokens(t *testing.T) {
	expected := []struct {
		contents string
		style    CommentStyle
	}{
		{"/* plain */", CommentStyleBlock},
		{"/** doc */", CommentStyleBlockStar},
		{"/*! license */", CommentStyleBlockBang},
		{"/*# sourceMappingURL=x */", CommentStyleBlockPound},
		{"/*---*/", CommentStyleBlockHeading},
		{"/*===*/", CommentStyleBlockHeading},
	}
	for _, it := range expected {
		it := it
		t.Run(it.contents, func(t *testing.T) {
			token := lexOne(it.contents)
			require.Equal(t, KindComment, token.Kind())
			require.Equal(t, it.style, token.CommentStyle())
			require.Equal(t, uint32(len(it.contents)), token.Length())
		})
	}

	// Unterminated comments lex to the end of the file
	token := lexOne("/* runs off")
	require.Equal(t, KindComment, token.Kind())
	require.Equal(t, uint32(11), token.Length())

	// "//" is a delimiter without the feature enabled
	token = lexOne("// not a comment")
	require.Equal(t, KindDelim, token.Kind())
}

func TestSingleLineComments(t *testing.T) {
	cursors := lexAll("// one\nx", FeatureSingleLineComments)
	require.Equal(t, KindComment, cursors[0].Token.Kind())
	require.Equal(t, CommentStyleSingle, cursors[0].Token.CommentStyle())
	require.Equal(t, uint32(6), cursors[0].Token.Length())
	require.Equal(t, KindWhitespace, cursors[1].Token.Kind())
	require.Equal(t, KindIdent, cursors[2].Token.Kind())

	token := lexOne("//! bang")
	require.Equal(t, KindDelim, token.Kind())

	lexer := NewLexer("//! bang", FeatureSingleLineComments)
	bang := lexer.Advance()
	require.Equal(t, KindComment, bang.Kind())
	require.Equal(t, CommentStyleSingleBang, bang.CommentStyle())

	lexer = NewLexer("//* star */", FeatureSingleLineComments)
	star := lexer.Advance()
	require.Equal(t, CommentStyleSingleStar, star.CommentStyle())
}

func TestCdcCdoTokens(t *testing.T) {
	token := lexOne("<!--")
	require.Equal(t, KindCdcOrCdo, token.Kind())
	require.False(t, token.IsCdc())
	require.Equal(t, uint32(4), token.Length())

	token = lexOne("-->")
	require.Equal(t, KindCdcOrCdo, token.Kind())
	require.True(t, token.IsCdc())
	require.Equal(t, uint32(3), token.Length())
}

func TestSeekReproducesTokens(t *testing.T) {
	source := "a { color : red }"
	lexer := NewLexer(source, 0)
	var offsets []int32
	var tokens []Token
	for {
		offsets = append(offsets, lexer.Offset())
		token := lexer.Advance()
		tokens = append(tokens, token)
		if token.Is(KindEof) {
			break
		}
	}
	for i, offset := range offsets {
		lexer.Seek(offset)
		require.Equal(t, tokens[i], lexer.Advance(), "token at offset %d", offset)
	}
}

func TestDecodedText(t *testing.T) {
	expected := []struct {
		contents string
		decoded  string
	}{
		{"name", "name"},
		{"\\66 oo", "foo"},
		{"@media", "media"},
		{"#id", "id"},
		{"fn(", "fn"},
		{"\"str\\\"ing\"", "str\"ing"},
		{"'unterminated", "unterminated"},
		{"url( padded.png )", "padded.png"},
		{"url(plain.png)", "plain.png"},
	}
	for _, it := range expected {
		it := it
		t.Run(it.contents, func(t *testing.T) {
			lexer := NewLexer(it.contents, 0)
			token := lexer.Advance()
			require.Equal(t, it.decoded, DecodedText(it.contents, NewCursor(loc(0), token)))
		})
	}
}

func TestSourceWriterFillsGaps(t *testing.T) {
	source := "  a  /* note */  b  "
	cursors := lexAll(source, 0)

	// Drop the whitespace and comment cursors; the writer must recover
	// them from the gaps
	var sparse []Cursor
	for _, c := range cursors {
		if !c.Token.InSet(KindSetWhitespaceComment) {
			sparse = append(sparse, c)
		}
	}
	sparse = append(sparse, NewCursor(loc(int32(len(source))), TokenEOF))

	sb := strings.Builder{}
	w := NewSourceWriter(source, &sb)
	for _, c := range sparse {
		w.Append(c)
	}
	require.NoError(t, w.Err())
	require.Equal(t, source, sb.String())
}
