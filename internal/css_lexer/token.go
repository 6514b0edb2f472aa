package css_lexer

import (
	"math"
	"unicode/utf8"
)

// Token packs a lexed token into exactly 64 bits so that token streams stay
// cache-friendly and copying is free. The two words are laid out as:
//
//	hi: [ flags: 3 | kind: 5 | data: 24 ]
//	lo: [ value or length: 32 ]
//
// The three flag bits are reused per kind, and the data word changes meaning
// with the kind as well. Never read the raw fields; the accessors dispatch on
// kind to honour each layout:
//
//   - Number: flags = hasSign | isFloat; data = source length; lo = value bits
//   - Dimension: flags = hasSign | isFloat | knownUnit; data packs the numeric
//     length (high 12 bits) with either a DimensionUnit or the unit's byte
//     length (low 12 bits); lo = value bits
//   - Ident/Function/AtKeyword: flags = dashed | nonLowerASCII | escaped; lo = length
//   - Hash: flags = firstIsIdent | nonLowerASCII | escaped; lo = length
//   - String: flags = escaped | closed | doubleQuote; lo = length
//   - Url: flags = escaped | wsAfterOpen | closedWithParen; data packs the
//     leading and trailing lengths 12/12; lo = length
//   - Whitespace: flags = WhitespaceStyle bitmask; lo = length
//   - Comment: flags = hasTab | hasNewline; data = CommentStyle; lo = length
//   - CdcOrCdo: flags = isCdc; lo = length
//   - Delimiter-like: flags = UTF-8 byte length of the char; lo = char
type Token struct {
	hi uint32
	lo uint32
}

const (
	kindShift  = 24
	flagsShift = 29
	dataMask   = (1 << kindShift) - 1
	halfData   = 12
	halfMask   = (1 << halfData) - 1
)

const (
	flag0 = 0b001
	flag1 = 0b010
	flag2 = 0b100
)

func newToken(kind Kind, flags uint32, data uint32, lo uint32) Token {
	return Token{
		hi: flags<<flagsShift | uint32(kind)<<kindShift | data&dataMask,
		lo: lo,
	}
}

func boolFlag(b bool, bit uint32) uint32 {
	if b {
		return bit
	}
	return 0
}

func NewWhitespace(style WhitespaceStyle, length uint32) Token {
	return newToken(KindWhitespace, uint32(style), 0, length)
}

func NewComment(style CommentStyle, hasTab bool, hasNewline bool, length uint32) Token {
	return newToken(KindComment, boolFlag(hasTab, flag0)|boolFlag(hasNewline, flag1), uint32(style), length)
}

func NewCdcOrCdo(isCdc bool) Token {
	length := uint32(4)
	if isCdc {
		length = 3
	}
	return newToken(KindCdcOrCdo, boolFlag(isCdc, flag0), 0, length)
}

func NewNumber(hasSign bool, isFloat bool, length uint32, value float32) Token {
	flags := boolFlag(hasSign, flag0) | boolFlag(isFloat, flag1)
	return newToken(KindNumber, flags, length, math.Float32bits(value))
}

// NewDimension stores a known unit as its enum value and an unknown unit as
// its byte length; the knownUnit flag records which.
func NewDimension(hasSign bool, isFloat bool, numLen uint32, unitLen uint32, value float32, unit DimensionUnit) Token {
	flags := boolFlag(hasSign, flag0) | boolFlag(isFloat, flag1)
	low := unitLen & halfMask
	if unit != UnitUnknown {
		flags |= flag2
		low = uint32(unit) & halfMask
	}
	return newToken(KindDimension, flags, numLen<<halfData|low, math.Float32bits(value))
}

func NewIdent(dashed bool, nonLowerASCII bool, escaped bool, length uint32) Token {
	return newToken(KindIdent, identFlags(dashed, nonLowerASCII, escaped), 0, length)
}

func NewFunction(dashed bool, nonLowerASCII bool, escaped bool, length uint32) Token {
	return newToken(KindFunction, identFlags(dashed, nonLowerASCII, escaped), 0, length)
}

func NewAtKeyword(dashed bool, nonLowerASCII bool, escaped bool, length uint32) Token {
	return newToken(KindAtKeyword, identFlags(dashed, nonLowerASCII, escaped), 0, length)
}

func identFlags(dashed bool, nonLowerASCII bool, escaped bool) uint32 {
	return boolFlag(dashed, flag0) | boolFlag(nonLowerASCII, flag1) | boolFlag(escaped, flag2)
}

func NewHash(firstIsIdent bool, nonLowerASCII bool, escaped bool, length uint32) Token {
	flags := boolFlag(firstIsIdent, flag0) | boolFlag(nonLowerASCII, flag1) | boolFlag(escaped, flag2)
	return newToken(KindHash, flags, 0, length)
}

func NewString(escaped bool, closed bool, doubleQuote bool, length uint32) Token {
	flags := boolFlag(escaped, flag0) | boolFlag(closed, flag1) | boolFlag(doubleQuote, flag2)
	return newToken(KindString, flags, 0, length)
}

func NewUrl(escaped bool, wsAfterOpen bool, closedWithParen bool, leadingLen uint32, trailingLen uint32, length uint32) Token {
	flags := boolFlag(escaped, flag0) | boolFlag(wsAfterOpen, flag1) | boolFlag(closedWithParen, flag2)
	return newToken(KindUrl, flags, leadingLen<<halfData|trailingLen&halfMask, length)
}

func NewBadString(length uint32) Token {
	return newToken(KindBadString, 0, 0, length)
}

func NewBadUrl(length uint32) Token {
	return newToken(KindBadUrl, 0, 0, length)
}

// NewDelimLike builds any of the single-character tokens. The kind must be a
// delimiter-like kind; the character's UTF-8 byte length lands in the flag
// bits so Length never has to re-measure the rune.
func NewDelimLike(kind Kind, c rune) Token {
	return newToken(kind, uint32(utf8.RuneLen(c)), 0, uint32(c))
}

func NewDelim(c rune) Token {
	return NewDelimLike(KindDelim, c)
}

var (
	TokenEOF        = Token{}
	TokenSpace      = NewWhitespace(WhitespaceStyleSpace, 1)
	TokenTab        = NewWhitespace(WhitespaceStyleTab, 1)
	TokenNewline    = NewWhitespace(WhitespaceStyleNewline, 1)
	TokenNumberZero = NewNumber(false, false, 1, 0)
	TokenCdo        = NewCdcOrCdo(false)
	TokenCdc        = NewCdcOrCdo(true)

	TokenColon       = NewDelimLike(KindColon, ':')
	TokenSemicolon   = NewDelimLike(KindSemicolon, ';')
	TokenComma       = NewDelimLike(KindComma, ',')
	TokenLeftSquare  = NewDelimLike(KindLeftSquare, '[')
	TokenRightSquare = NewDelimLike(KindRightSquare, ']')
	TokenLeftParen   = NewDelimLike(KindLeftParen, '(')
	TokenRightParen  = NewDelimLike(KindRightParen, ')')
	TokenLeftCurly   = NewDelimLike(KindLeftCurly, '{')
	TokenRightCurly  = NewDelimLike(KindRightCurly, '}')

	TokenBang        = NewDelim('!')
	TokenHashDelim   = NewDelim('#')
	TokenDollar      = NewDelim('$')
	TokenPercent     = NewDelim('%')
	TokenAmpersand   = NewDelim('&')
	TokenAsterisk    = NewDelim('*')
	TokenPlus        = NewDelim('+')
	TokenDash        = NewDelim('-')
	TokenPeriod      = NewDelim('.')
	TokenSlash       = NewDelim('/')
	TokenLessThan    = NewDelim('<')
	TokenEquals      = NewDelim('=')
	TokenGreaterThan = NewDelim('>')
	TokenQuestion    = NewDelim('?')
	TokenAt          = NewDelim('@')
	TokenBackslash   = NewDelim('\\')
	TokenCaret       = NewDelim('^')
	TokenUnderscore  = NewDelim('_')
	TokenBacktick    = NewDelim('`')
	TokenPipe        = NewDelim('|')
	TokenTilde       = NewDelim('~')
)

func (t Token) Kind() Kind {
	return Kind(t.hi>>kindShift) & kindMask
}

func (t Token) flags() uint32 {
	return t.hi >> flagsShift
}

func (t Token) data() uint32 {
	return t.hi & dataMask
}

// Length is the number of source bytes the token covers. The storage
// location depends on the kind, so this must dispatch.
func (t Token) Length() uint32 {
	switch kind := t.Kind(); {
	case kind == KindEof:
		return 0
	case kind.IsDelimLike():
		return t.flags()
	case kind == KindNumber:
		return t.data()
	case kind == KindDimension:
		numLen := t.data() >> halfData
		if t.flags()&flag2 != 0 {
			return numLen + uint32(len(DimensionUnit(t.data()&halfMask).String()))
		}
		return numLen + t.data()&halfMask
	default:
		return t.lo
	}
}

// Numeric accessors

func (t Token) Value() float32 {
	return math.Float32frombits(t.lo)
}

func (t Token) HasSign() bool {
	return t.Kind().IsNumeric() && t.flags()&flag0 != 0
}

func (t Token) IsFloat() bool {
	return t.Kind().IsNumeric() && t.flags()&flag1 != 0
}

func (t Token) IsInt() bool {
	return t.Kind().IsNumeric() && t.flags()&flag1 == 0
}

func (t Token) NumericLength() uint32 {
	if t.Kind() == KindDimension {
		return t.data() >> halfData
	}
	return t.Length()
}

func (t Token) HasKnownDimensionUnit() bool {
	return t.Kind() == KindDimension && t.flags()&flag2 != 0
}

func (t Token) DimensionUnit() DimensionUnit {
	if t.HasKnownDimensionUnit() {
		return DimensionUnit(t.data() & halfMask)
	}
	return UnitUnknown
}

// Ident-like accessors

func (t Token) IsDashed() bool {
	switch t.Kind() {
	case KindIdent, KindFunction, KindAtKeyword:
		return t.flags()&flag0 != 0
	}
	return false
}

func (t Token) ContainsNonLowerASCII() bool {
	switch t.Kind() {
	case KindIdent, KindFunction, KindAtKeyword, KindHash:
		return t.flags()&flag1 != 0
	}
	return false
}

func (t Token) ContainsEscape() bool {
	switch t.Kind() {
	case KindIdent, KindFunction, KindAtKeyword, KindHash:
		return t.flags()&flag2 != 0
	case KindString, KindUrl:
		return t.flags()&flag0 != 0
	}
	return false
}

func (t Token) HashFirstIsIdent() bool {
	return t.Kind() == KindHash && t.flags()&flag0 != 0
}

// String accessors

func (t Token) QuoteStyle() QuoteStyle {
	if t.flags()&flag2 != 0 {
		return QuoteStyleDouble
	}
	return QuoteStyleSingle
}

func (t Token) HasClosingQuote() bool {
	return t.Kind() == KindString && t.flags()&flag1 != 0
}

// Url accessors

func (t Token) UrlLeadingLength() uint32 {
	return t.data() >> halfData
}

func (t Token) UrlTrailingLength() uint32 {
	return t.data() & halfMask
}

func (t Token) UrlHasWhitespaceAfterOpenParen() bool {
	return t.Kind() == KindUrl && t.flags()&flag1 != 0
}

func (t Token) UrlEndsWithParen() bool {
	return t.Kind() == KindUrl && t.flags()&flag2 != 0
}

// Trivia accessors

func (t Token) WhitespaceStyle() WhitespaceStyle {
	if t.Kind() != KindWhitespace {
		return WhitespaceStyleNone
	}
	return WhitespaceStyle(t.flags())
}

func (t Token) CommentStyle() CommentStyle {
	return CommentStyle(t.data())
}

func (t Token) HasTab() bool {
	switch t.Kind() {
	case KindWhitespace:
		return t.WhitespaceStyle().HasTab()
	case KindComment:
		return t.flags()&flag0 != 0
	}
	return false
}

func (t Token) HasNewline() bool {
	switch t.Kind() {
	case KindWhitespace:
		return t.WhitespaceStyle().HasNewline()
	case KindComment:
		return t.flags()&flag1 != 0
	}
	return false
}

func (t Token) IsCdc() bool {
	return t.Kind() == KindCdcOrCdo && t.flags()&flag0 != 0
}

// Delimiter accessors

// Char returns the character of a delimiter-like token, or the rune error
// value for any other kind.
func (t Token) Char() rune {
	if !t.Kind().IsDelimLike() {
		return utf8.RuneError
	}
	return rune(t.lo)
}

// Equality helpers

func (t Token) Is(kind Kind) bool {
	return t.Kind() == kind
}

func (t Token) InSet(set KindSet) bool {
	return set.Contains(t.Kind())
}

func (t Token) IsChar(c rune) bool {
	return t.Kind().IsDelimLike() && t.lo == uint32(c)
}

func (t Token) IsDelimChar(c rune) bool {
	return t.Kind() == KindDelim && t.lo == uint32(c)
}

func (t Token) IsUnit(unit DimensionUnit) bool {
	return t.Kind() == KindDimension && t.DimensionUnit() == unit
}

func (t Token) IsValue(value float32) bool {
	return t.Kind().IsNumeric() && t.Value() == value
}
