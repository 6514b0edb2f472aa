package css_parser

// Every way a parse can fail gets its own constructor so callers can match
// on the ID and tooling can label the offending span. Diagnostics are plain
// errors; whether one is fatal depends on where it surfaces (see the
// recovery rules in the stylesheet and block parsers).

import (
	"fmt"

	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/logger"
)

type Diagnostic struct {
	Text  string
	Range logger.Range
	ID    logger.MsgID
}

func (d *Diagnostic) Error() string {
	return d.Text
}

func diag(id logger.MsgID, r logger.Range, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{ID: id, Range: r, Text: fmt.Sprintf(format, args...)}
}

// Structural

func MissingAtRulePrelude(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_MissingAtRulePrelude, r, "This at-rule requires a prelude")
}

func MissingAtRuleBlock(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_MissingAtRuleBlock, r, "This at-rule requires a \"{...}\" block")
}

func DisallowedAtRulePrelude(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_DisallowedAtRulePrelude, r, "This at-rule does not take a prelude")
}

func DisallowedAtRuleBlock(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_DisallowedAtRuleBlock, r, "This at-rule does not take a block")
}

func UnexpectedEnd(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedEnd, r, "Unexpected end of file")
}

func ExpectedEnd(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedEnd, r, "Expected the end of the value but found extra content")
}

func UnexpectedCloseCurly(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedCloseCurly, r, "Unexpected \"}\"")
}

func BadDeclarationError(r logger.Range) *Diagnostic {
	return diag(logger.MsgID_CSS_BadDeclaration, r, "This is not valid syntax for a declaration")
}

// Token mismatch

func ExpectedKind(expected css_lexer.Kind, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedKind, c.Range(), "Expected %s but found %s", expected.String(), c.Token.Kind().String())
}

func ExpectedIdent(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedIdent, c.Range(), "Expected an identifier but found %s", c.Token.Kind().String())
}

func ExpectedOtherIdent(found string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedOtherIdent, c.Range(), "The identifier cannot be %q here", found)
}

func ExpectedIdentOf(expected string, found string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedIdentOf, c.Range(), "Expected %q but found %q", expected, found)
}

func ExpectedFunction(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedFunction, c.Range(), "Expected a function but found %s", c.Token.Kind().String())
}

func ExpectedFunctionOf(expected string, found string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedFunction, c.Range(), "Expected %q to be %q", found, expected)
}

func ExpectedAtKeyword(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedAtKeyword, c.Range(), "Expected an at-keyword but found %s", c.Token.Kind().String())
}

func ExpectedAtKeywordOf(expected string, found string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedAtKeyword, c.Range(), "Expected \"@%s\" but found \"@%s\"", expected, found)
}

func ExpectedDelim(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedDelim, c.Range(), "Expected a delimiter but found %s", c.Token.Kind().String())
}

func ExpectedDelimOf(expected rune, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedDelim, c.Range(), "Expected %q", expected)
}

func ExpectedDimension(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedDimension, c.Range(), "Expected a dimension but found %s", c.Token.Kind().String())
}

func ExpectedNumber(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedNumber, c.Range(), "Expected a number but found %s", c.Token.Kind().String())
}

func ExpectedSign(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedSign, c.Range(), "The number %v must be written with a sign", value)
}

func ExpectedUnsigned(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedUnsigned, c.Range(), "The number %v must be written without a sign", value)
}

func ExpectedZero(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedZero, c.Range(), "This value must be 0, not %v", value)
}

func ExpectedInt(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedInt, c.Range(), "This value must be an integer, not %v", value)
}

func ExpectedFloat(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ExpectedFloat, c.Range(), "This value must have a fractional component")
}

// Semantic

func NumberOutOfBounds(value float32, bounds string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_NumberOutOfBounds, c.Range(), "The number %v must be within %s", value, bounds)
}

func NumberNotNegative(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_NumberNotNegative, c.Range(), "The number %v must not be negative", value)
}

func NumberTooSmall(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_NumberTooSmall, c.Range(), "The number %v is too small", value)
}

func NumberTooLarge(value float32, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_NumberTooLarge, c.Range(), "The number %v is too large", value)
}

func DisallowedValueWithoutDimension(found string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_DisallowedValueWithoutDimension, c.Range(), "The value %q requires a unit", found)
}

func DisallowedMathFunction(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_DisallowedMathFunction, c.Range(), "The math function %q is not allowed here", name)
}

func UnexpectedDimension(unit string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedDimension, c.Range(), "The unit %q is not recognised here", unit)
}

func UnexpectedIdent(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedIdent, c.Range(), "The identifier %q was not expected here", name)
}

func UnexpectedPseudoClass(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedPseudoClass, c.Range(), "The pseudo-class %q is not recognised", name)
}

func UnexpectedPseudoElement(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedPseudoElement, c.Range(), "The pseudo-element %q is not recognised", name)
}

func UnexpectedFunction(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedFunction, c.Range(), "The function %q was not expected here", name)
}

func UnexpectedAtRule(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedAtRule, c.Range(), "The at-rule \"@%s\" is not recognised here", name)
}

func Unexpected(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_None, c.Range(), "This %s was not expected here", c.Token.Kind().String())
}

// CSS-specific

func BadHexColor(text string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_BadHexColor, c.Range(), "%q is not a valid hex color", text)
}

func ColorMustStartWithHue(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ColorMustStartWithHue, c.Range(), "This color function must start with a hue component")
}

func ColorLegacyMustIncludeComma(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ColorLegacyMustIncludeComma, c.Range(), "Legacy color syntax separates components with commas")
}

func AdjacentSelectorCombinators(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_AdjacentSelectorCombinators, c.Range(), "A selector combinator cannot follow another combinator")
}

func AdjacentSelectorTypes(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_AdjacentSelectorTypes, c.Range(), "A type selector cannot follow another type selector")
}

func ReservedKeyframeName(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_ReservedKeyframeName, c.Range(), "The keyframe name %q is reserved; rename it or wrap it in quotes", name)
}

func DisplayHasInvalidListItemCombo(name string, c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_DisplayHasInvalidListItemCombo, c.Range(), "\"list-item\" cannot be combined with %q", name)
}

func DisallowedImportant(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_DisallowedImportant, c.Range(), "\"!important\" is not allowed here")
}

func UnexpectedMediaRangeComparisonEqualsTwice(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_UnexpectedMediaRangeComparisonEqualsTwice, c.Range(), "A range cannot compare with \"=\" on both sides")
}

// Lexer recoveries

func BadStringWarning(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_BadString, c.Range(), "Unterminated string token")
}

func BadURLWarning(c css_lexer.Cursor) *Diagnostic {
	return diag(logger.MsgID_CSS_BadURL, c.Range(), "Invalid URL token")
}
