package css_ast

// Rule nodes: the style rule, the known at-rules without a condition-list
// prelude, and the generic fallback for at-rules this parser does not
// recognise. Unknown at-rules keep their raw prelude and block and are
// never fatal at stylesheet scope.

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

// Rule is any node valid at stylesheet scope.
type Rule interface {
	css_parser.Node
	isRule()
}

// StyleRule is a qualified rule: a selector list and a block of
// declarations, nested rules and at-rules.
type StyleRule struct {
	Selectors SelectorList
	Block     css_parser.DeclarationsAndRules
}

func (StyleRule) isRule() {}

func (r StyleRule) ToCursors(s css_lexer.CursorSink) {
	r.Selectors.ToCursors(s)
	r.Block.ToCursors(s)
}

func ParseStyleRule(p *css_parser.Parser) (StyleRule, error) {
	var r StyleRule

	selectors, err := ParseSelectorList(p)
	if err != nil {
		return r, err
	}
	r.Selectors = selectors

	block, err := css_parser.ParseDeclarationsAndRules(p, css_parser.BlockOptions{
		ParseDeclaration: parseDeclarationNode,
		ParseAtRule:      parseAtRuleNode,
		ParseRule:        parseStyleRuleNode,
	})
	if err != nil {
		return r, err
	}
	r.Block = block
	return r, nil
}

// RuleBlock is a "{...}" body holding rules only, used by the grouping
// at-rules. Nested declarations are still accepted inside style rules
// within it.
type RuleBlock struct {
	css_parser.DeclarationsAndRules
}

func ParseRuleBlock(p *css_parser.Parser) (RuleBlock, error) {
	block, err := css_parser.ParseDeclarationsAndRules(p, css_parser.BlockOptions{
		ParseAtRule: parseAtRuleNode,
		ParseRule:   parseStyleRuleNode,
	})
	return RuleBlock{block}, err
}

// DeclarationBlock is a "{...}" body holding declarations only, used by
// @font-face, @page bodies and keyframe blocks.
type DeclarationBlock struct {
	css_parser.DeclarationsAndRules
}

func ParseDeclarationBlock(p *css_parser.Parser) (DeclarationBlock, error) {
	block, err := css_parser.ParseDeclarationsAndRules(p, css_parser.BlockOptions{
		ParseDeclaration: parseDeclarationNode,
	})
	return DeclarationBlock{block}, err
}

func parseStyleRuleNode(p *css_parser.Parser) (css_parser.Node, error) {
	return ParseStyleRule(p)
}

func parseAtRuleNode(p *css_parser.Parser) (css_parser.Node, error) {
	return ParseAtRule(p)
}

// ParseAtRule dispatches a rule starting at an at-keyword by its name.
func ParseAtRule(p *css_parser.Parser) (Rule, error) {
	c := p.Peek()
	if !c.Is(css_lexer.KindAtKeyword) {
		return nil, css_parser.ExpectedAtKeyword(c)
	}

	switch p.ParseAtomLower(c) {
	case "media":
		return ParseMediaRule(p)
	case "container":
		return ParseContainerRule(p)
	case "supports":
		return ParseSupportsRule(p)
	case "charset":
		return ParseCharsetRule(p)
	case "import":
		return ParseImportRule(p)
	case "namespace":
		return ParseNamespaceRule(p)
	case "layer":
		return ParseLayerRule(p)
	case "page":
		return ParsePageRule(p)
	case "font-face":
		return ParseFontFaceRule(p)
	case "keyframes", "-webkit-keyframes", "-moz-keyframes":
		return ParseKeyframesRule(p)
	}
	return ParseUnknownAtRule(p)
}

// UnknownAtRule holds any at-rule with a raw prelude and block.
type UnknownAtRule struct {
	css_parser.AtRuleParts[css_parser.RawPrelude, css_parser.RawBlock]
}

func (UnknownAtRule) isRule() {}

func ParseUnknownAtRule(p *css_parser.Parser) (UnknownAtRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "", css_parser.ParseRawPrelude, css_parser.ParseRawBlock)
	if err != nil {
		return UnknownAtRule{}, err
	}
	return UnknownAtRule{parts}, nil
}

// CharsetRule is `@charset "<encoding>";`.
type CharsetRule struct {
	css_parser.AtRuleParts[css_parser.String, NoBlock]
}

func (CharsetRule) isRule() {}

// NoBlock fills the block slot of at-rules that never take one.
type NoBlock struct{}

func (NoBlock) ToCursors(css_lexer.CursorSink) {}

func parseNoBlock(p *css_parser.Parser) (NoBlock, error) {
	return NoBlock{}, css_parser.DisallowedAtRuleBlock(p.Peek().Range())
}

func ParseCharsetRule(p *css_parser.Parser) (CharsetRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "charset", css_parser.ParseString, parseNoBlock)
	if err != nil {
		return CharsetRule{}, err
	}
	if err := css_parser.RequireAtRulePrelude(parts); err != nil {
		return CharsetRule{}, err
	}
	return CharsetRule{parts}, nil
}

// ImportPrelude is "<url-or-string> [<media-query-list>]". The href is a
// string token, a url token, or a "url(...)" function with a quoted body.
type ImportPrelude struct {
	Href    css_parser.Node
	Queries *MediaQueryList
}

func (i ImportPrelude) ToCursors(s css_lexer.CursorSink) {
	i.Href.ToCursors(s)
	if i.Queries != nil {
		i.Queries.ToCursors(s)
	}
}

func ParseImportPrelude(p *css_parser.Parser) (ImportPrelude, error) {
	var prelude ImportPrelude

	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindString, css_lexer.KindUrl:
		p.Hop(c)
		prelude.Href = css_parser.PreservedToken{Cursor: c}
	case css_lexer.KindFunction:
		if !p.EqIgnoreASCIICase(c, "url") {
			return prelude, css_parser.ExpectedFunctionOf("url", p.ParseStrLower(c), c)
		}
		block, err := css_parser.ParseFunctionBlock(p)
		if err != nil {
			return prelude, err
		}
		prelude.Href = block
	default:
		return prelude, css_parser.ExpectedKind(css_lexer.KindUrl, c)
	}

	if c := p.Peek(); !c.InSet(css_lexer.KindSetStopOnBlockStart) && !c.Is(css_lexer.KindEof) {
		queries, err := ParseMediaQueryList(p)
		if err != nil {
			return prelude, err
		}
		prelude.Queries = &queries
	}
	return prelude, nil
}

type ImportRule struct {
	css_parser.AtRuleParts[ImportPrelude, NoBlock]
}

func (ImportRule) isRule() {}

func ParseImportRule(p *css_parser.Parser) (ImportRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "import", ParseImportPrelude, parseNoBlock)
	if err != nil {
		return ImportRule{}, err
	}
	if err := css_parser.RequireAtRulePrelude(parts); err != nil {
		return ImportRule{}, err
	}
	return ImportRule{parts}, nil
}

// NamespacePrelude is "[<prefix>] <url-or-string>".
type NamespacePrelude struct {
	Prefix *css_lexer.Cursor
	Href   css_lexer.Cursor
}

func (n NamespacePrelude) ToCursors(s css_lexer.CursorSink) {
	if n.Prefix != nil {
		s.Append(*n.Prefix)
	}
	s.Append(n.Href)
}

func ParseNamespacePrelude(p *css_parser.Parser) (NamespacePrelude, error) {
	var prelude NamespacePrelude

	if c := p.Peek(); c.Is(css_lexer.KindIdent) {
		p.Hop(c)
		prelude.Prefix = &c
	}

	c := p.Peek()
	switch c.Token.Kind() {
	case css_lexer.KindString, css_lexer.KindUrl:
		p.Hop(c)
		prelude.Href = c
	default:
		return prelude, css_parser.ExpectedKind(css_lexer.KindUrl, c)
	}
	return prelude, nil
}

type NamespaceRule struct {
	css_parser.AtRuleParts[NamespacePrelude, NoBlock]
}

func (NamespaceRule) isRule() {}

func ParseNamespaceRule(p *css_parser.Parser) (NamespaceRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "namespace", ParseNamespacePrelude, parseNoBlock)
	if err != nil {
		return NamespaceRule{}, err
	}
	if err := css_parser.RequireAtRulePrelude(parts); err != nil {
		return NamespaceRule{}, err
	}
	return NamespaceRule{parts}, nil
}

// LayerName is "a" or "a.b.c" with adjacent dots.
type LayerName struct {
	Parts []css_lexer.Cursor
}

func (n LayerName) ToCursors(s css_lexer.CursorSink) {
	for _, part := range n.Parts {
		s.Append(part)
	}
}

func ParseLayerName(p *css_parser.Parser) (LayerName, error) {
	var name LayerName

	ident, err := css_parser.ParseIdent(p)
	if err != nil {
		return name, err
	}
	name.Parts = append(name.Parts, ident.Cursor)

	prev := p.SetSkip(css_lexer.KindSetNone)
	defer p.SetSkip(prev)
	for {
		dot := p.Peek()
		if !dot.IsDelimChar('.') {
			return name, nil
		}
		p.Hop(dot)
		name.Parts = append(name.Parts, dot)
		ident, err := css_parser.ParseIdent(p)
		if err != nil {
			return name, err
		}
		name.Parts = append(name.Parts, ident.Cursor)
	}
}

type LayerNameList struct {
	css_parser.Separated[LayerName]
}

func ParseLayerNameList(p *css_parser.Parser) (LayerNameList, error) {
	list, err := css_parser.ParseSeparated(p, css_lexer.KindComma, ParseLayerName)
	return LayerNameList{list}, err
}

// LayerRule is "@layer a, b;" or "@layer a? { rules }". A block form may
// name at most one layer.
type LayerRule struct {
	css_parser.AtRuleParts[LayerNameList, RuleBlock]
}

func (LayerRule) isRule() {}

func ParseLayerRule(p *css_parser.Parser) (LayerRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "layer", ParseLayerNameList, ParseRuleBlock)
	if err != nil {
		return LayerRule{}, err
	}
	if parts.Block != nil && parts.Prelude != nil && len(parts.Prelude.Items) > 1 {
		return LayerRule{}, css_parser.DisallowedAtRuleBlock(parts.Name.Range())
	}
	return LayerRule{parts}, nil
}

// PagePrelude is an optional page selector list: "ident?(:left|:right|
// :first|:blank)*".
type PagePrelude struct {
	css_parser.ComponentValues
}

func ParsePagePrelude(p *css_parser.Parser) (PagePrelude, error) {
	values, err := css_parser.ParseComponentValues(p, css_lexer.KindSetStopOnBlockStart)
	return PagePrelude{values}, err
}

type PageRule struct {
	css_parser.AtRuleParts[PagePrelude, DeclarationBlock]
}

func (PageRule) isRule() {}

func ParsePageRule(p *css_parser.Parser) (PageRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "page", ParsePagePrelude, ParseDeclarationBlock)
	if err != nil {
		return PageRule{}, err
	}
	if err := css_parser.RequireAtRuleBlock(parts); err != nil {
		return PageRule{}, err
	}
	return PageRule{parts}, nil
}

type FontFaceRule struct {
	css_parser.AtRuleParts[css_parser.RawPrelude, DeclarationBlock]
}

func (FontFaceRule) isRule() {}

func ParseFontFaceRule(p *css_parser.Parser) (FontFaceRule, error) {
	parts, err := css_parser.ParseAtRuleParts(p, "font-face", css_parser.ParseRawPrelude, ParseDeclarationBlock)
	if err != nil {
		return FontFaceRule{}, err
	}
	if err := css_parser.DisallowAtRulePrelude(parts); err != nil {
		return FontFaceRule{}, err
	}
	if err := css_parser.RequireAtRuleBlock(parts); err != nil {
		return FontFaceRule{}, err
	}
	return FontFaceRule{parts}, nil
}
