package css_ast

// Selector grammar. A selector list is comma-separated complex selectors;
// a complex selector is a run of components where the descendant combinator
// is implied by trivia between two compounds. Components never store the
// trivia itself; the writer recovers it from the cursor gaps.

import (
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
)

type SelectorList struct {
	css_parser.Separated[ComplexSelector]
}

func ParseSelectorList(p *css_parser.Parser) (SelectorList, error) {
	list, err := css_parser.ParseSeparated(p, css_lexer.KindComma, ParseComplexSelector)
	return SelectorList{list}, err
}

type SelectorComponent interface {
	css_parser.Node
	isSelectorComponent()
}

type ComplexSelector struct {
	Components []SelectorComponent
}

func (s ComplexSelector) ToCursors(sink css_lexer.CursorSink) {
	for _, component := range s.Components {
		component.ToCursors(sink)
	}
}

// TypeSelector is "name", "*", "ns|name", "|name" or "*|name".
type TypeSelector struct {
	Namespace *css_lexer.Cursor
	Pipe      *css_lexer.Cursor
	Name      css_lexer.Cursor
}

func (s TypeSelector) ToCursors(sink css_lexer.CursorSink) {
	if s.Namespace != nil {
		sink.Append(*s.Namespace)
	}
	if s.Pipe != nil {
		sink.Append(*s.Pipe)
	}
	sink.Append(s.Name)
}

// NestingSelector is the "&" of CSS nesting.
type NestingSelector struct{ css_lexer.Cursor }

// IdSelector is "#name".
type IdSelector struct{ css_lexer.Cursor }

// ClassSelector is ".name"; the dot and the name must be adjacent.
type ClassSelector struct {
	Dot  css_lexer.Cursor
	Name css_lexer.Cursor
}

func (s ClassSelector) ToCursors(sink css_lexer.CursorSink) {
	sink.Append(s.Dot)
	sink.Append(s.Name)
}

type CombinatorKind uint8

const (
	CombinatorDescendant CombinatorKind = iota
	CombinatorChild                     // ">"
	CombinatorNextSibling               // "+"
	CombinatorSubsequent                // "~"
	CombinatorColumn                    // "||"
)

// Combinator separates two compound selectors. The descendant combinator
// has no cursors of its own; the whitespace that implies it lives in the
// gap between the neighbouring components.
type Combinator struct {
	First  *css_lexer.Cursor
	Second *css_lexer.Cursor
	Kind   CombinatorKind
}

func (c Combinator) ToCursors(sink css_lexer.CursorSink) {
	if c.First != nil {
		sink.Append(*c.First)
	}
	if c.Second != nil {
		sink.Append(*c.Second)
	}
}

// AttributeMatcher is the "=", "~=", "|=", "^=", "$=" or "*=" plus value
// part of an attribute selector.
type AttributeMatcher struct {
	Prefix *css_lexer.Cursor
	Equals css_lexer.Cursor
	Value  css_lexer.Cursor
}

func (m AttributeMatcher) ToCursors(sink css_lexer.CursorSink) {
	if m.Prefix != nil {
		sink.Append(*m.Prefix)
	}
	sink.Append(m.Equals)
	sink.Append(m.Value)
}

// AttributeSelector is "[name]" or "[name <matcher> value <modifier>?]".
type AttributeSelector struct {
	Open     css_lexer.Cursor
	Name     css_lexer.Cursor
	Matcher  *AttributeMatcher
	Modifier *css_lexer.Cursor
	Close    css_lexer.Cursor
}

func (s AttributeSelector) ToCursors(sink css_lexer.CursorSink) {
	sink.Append(s.Open)
	sink.Append(s.Name)
	if s.Matcher != nil {
		s.Matcher.ToCursors(sink)
	}
	if s.Modifier != nil {
		sink.Append(*s.Modifier)
	}
	sink.Append(s.Close)
}

// PseudoClassSelector is ":name".
type PseudoClassSelector struct {
	Colon css_lexer.Cursor
	Name  css_lexer.Cursor
}

func (s PseudoClassSelector) ToCursors(sink css_lexer.CursorSink) {
	sink.Append(s.Colon)
	sink.Append(s.Name)
}

// PseudoElementSelector is "::name".
type PseudoElementSelector struct {
	Colons css_parser.ColonColon
	Name   css_lexer.Cursor
}

func (s PseudoElementSelector) ToCursors(sink css_lexer.CursorSink) {
	s.Colons.ToCursors(sink)
	sink.Append(s.Name)
}

type DirValue uint8

const (
	DirValueLtr DirValue = iota
	DirValueRtl
)

var dirValues = css_parser.NewKeywordSet(map[string]DirValue{
	"ltr": DirValueLtr,
	"rtl": DirValueRtl,
})

// DirPseudoFunction is ":dir(ltr)" / ":dir(rtl)".
type DirPseudoFunction struct {
	Colon    css_lexer.Cursor
	Function css_lexer.Cursor
	Value    css_parser.Keyword[DirValue]
	Close    *css_lexer.Cursor
}

func (s DirPseudoFunction) ToCursors(sink css_lexer.CursorSink) {
	sink.Append(s.Colon)
	sink.Append(s.Function)
	sink.Append(s.Value.Cursor)
	if s.Close != nil {
		sink.Append(*s.Close)
	}
}

// MozLocaleDirPseudoFunction is the vendor ":-moz-locale-dir(ltr)".
type MozLocaleDirPseudoFunction struct {
	Colon    css_lexer.Cursor
	Function css_lexer.Cursor
	Value    css_parser.Keyword[DirValue]
	Close    *css_lexer.Cursor
}

func (s MozLocaleDirPseudoFunction) ToCursors(sink css_lexer.CursorSink) {
	sink.Append(s.Colon)
	sink.Append(s.Function)
	sink.Append(s.Value.Cursor)
	if s.Close != nil {
		sink.Append(*s.Close)
	}
}

// SelectorListPseudoFunction is ":is(...)", ":not(...)", ":where(...)" and
// ":has(...)".
type SelectorListPseudoFunction struct {
	Colon     css_lexer.Cursor
	Function  css_lexer.Cursor
	Selectors SelectorList
	Close     *css_lexer.Cursor
}

func (s SelectorListPseudoFunction) ToCursors(sink css_lexer.CursorSink) {
	sink.Append(s.Colon)
	sink.Append(s.Function)
	s.Selectors.ToCursors(sink)
	if s.Close != nil {
		sink.Append(*s.Close)
	}
}

// GenericPseudoFunction covers the functional pseudo-classes without a
// typed grammar here, keeping their arguments as component values.
type GenericPseudoFunction struct {
	Colon    css_lexer.Cursor
	Function css_lexer.Cursor
	Args     css_parser.ComponentValues
	Close    *css_lexer.Cursor
}

func (s GenericPseudoFunction) ToCursors(sink css_lexer.CursorSink) {
	sink.Append(s.Colon)
	sink.Append(s.Function)
	s.Args.ToCursors(sink)
	if s.Close != nil {
		sink.Append(*s.Close)
	}
}

// PseudoElementFunction is "::part(...)" or "::slotted(...)".
type PseudoElementFunction struct {
	Colons   css_parser.ColonColon
	Function css_lexer.Cursor
	Args     css_parser.ComponentValues
	Close    *css_lexer.Cursor
}

func (s PseudoElementFunction) ToCursors(sink css_lexer.CursorSink) {
	s.Colons.ToCursors(sink)
	sink.Append(s.Function)
	s.Args.ToCursors(sink)
	if s.Close != nil {
		sink.Append(*s.Close)
	}
}

func (TypeSelector) isSelectorComponent()               {}
func (NestingSelector) isSelectorComponent()            {}
func (IdSelector) isSelectorComponent()                 {}
func (ClassSelector) isSelectorComponent()              {}
func (Combinator) isSelectorComponent()                 {}
func (AttributeSelector) isSelectorComponent()          {}
func (PseudoClassSelector) isSelectorComponent()        {}
func (PseudoElementSelector) isSelectorComponent()      {}
func (DirPseudoFunction) isSelectorComponent()          {}
func (MozLocaleDirPseudoFunction) isSelectorComponent() {}
func (SelectorListPseudoFunction) isSelectorComponent() {}
func (GenericPseudoFunction) isSelectorComponent()      {}
func (PseudoElementFunction) isSelectorComponent()      {}

// kindSetSelectorStop ends a complex selector at the list comma, the rule
// block, or any closer that belongs to an enclosing grammar.
var kindSetSelectorStop = css_lexer.NewKindSet(
	css_lexer.KindComma,
	css_lexer.KindLeftCurly,
	css_lexer.KindRightParen,
	css_lexer.KindRightCurly,
	css_lexer.KindSemicolon,
	css_lexer.KindEof,
)

func ParseComplexSelector(p *css_parser.Parser) (ComplexSelector, error) {
	var s ComplexSelector

	for {
		c := p.Peek()
		if c.InSet(kindSetSelectorStop) {
			break
		}

		// Trivia before this component implies a descendant combinator
		// between two compounds
		gap := c.Loc.Start > p.Offset()

		component, err := parseSelectorComponent(p, c)
		if err != nil {
			return s, err
		}

		_, isCombinator := component.(Combinator)
		if len(s.Components) > 0 {
			_, prevIsCombinator := s.Components[len(s.Components)-1].(Combinator)
			if isCombinator && prevIsCombinator {
				return s, css_parser.AdjacentSelectorCombinators(c)
			}
			if !isCombinator && !prevIsCombinator && gap {
				s.Components = append(s.Components, Combinator{Kind: CombinatorDescendant})
			}
			if _, isType := component.(TypeSelector); isType && !gap {
				if _, prevIsType := s.Components[len(s.Components)-1].(TypeSelector); prevIsType {
					return s, css_parser.AdjacentSelectorTypes(c)
				}
			}
		} else if isCombinator {
			combinator := component.(Combinator)
			// A leading combinator is only valid in a nested relative
			// selector; descendant cannot lead
			if combinator.Kind == CombinatorDescendant {
				return s, css_parser.Unexpected(c)
			}
		}

		s.Components = append(s.Components, component)
	}

	if len(s.Components) == 0 {
		return s, css_parser.Unexpected(p.Peek())
	}
	if _, endsWithCombinator := s.Components[len(s.Components)-1].(Combinator); endsWithCombinator {
		return s, css_parser.Unexpected(p.Peek())
	}
	return s, nil
}

func parseSelectorComponent(p *css_parser.Parser, c css_lexer.Cursor) (SelectorComponent, error) {
	switch {
	case c.Is(css_lexer.KindIdent), c.IsDelimChar('*'), c.IsDelimChar('|'):
		return parseTypeSelector(p)

	case c.Is(css_lexer.KindHash):
		if !c.Token.HashFirstIsIdent() {
			return nil, css_parser.Unexpected(c)
		}
		p.Hop(c)
		return IdSelector{c}, nil

	case c.IsDelimChar('.'):
		return parseClassSelector(p)

	case c.Is(css_lexer.KindColon):
		return parsePseudoSelector(p)

	case c.Is(css_lexer.KindLeftSquare):
		return parseAttributeSelector(p)

	case c.IsDelimChar('&'):
		p.Hop(c)
		return NestingSelector{c}, nil

	case c.IsDelimChar('>'):
		p.Hop(c)
		return Combinator{First: &c, Kind: CombinatorChild}, nil

	case c.IsDelimChar('+'):
		p.Hop(c)
		return Combinator{First: &c, Kind: CombinatorNextSibling}, nil

	case c.IsDelimChar('~'):
		p.Hop(c)
		return Combinator{First: &c, Kind: CombinatorSubsequent}, nil
	}
	return nil, css_parser.Unexpected(c)
}

// parseTypeSelector handles plain and namespaced names, where the "|" and
// its neighbours must be adjacent.
func parseTypeSelector(p *css_parser.Parser) (SelectorComponent, error) {
	first := p.Peek()
	p.Hop(first)

	if first.IsDelimChar('|') {
		prev := p.SetSkip(css_lexer.KindSetNone)
		next := p.Peek()
		if next.IsDelimChar('|') {
			p.Hop(next)
			p.SetSkip(prev)
			return Combinator{First: &first, Second: &next, Kind: CombinatorColumn}, nil
		}
		p.SetSkip(prev)
		name, err := parseSelectorName(p)
		if err != nil {
			return nil, err
		}
		return TypeSelector{Pipe: &first, Name: name}, nil
	}

	// "ns|name": the pipe must directly follow and must not be the "|=" of
	// an attribute matcher or the "||" column combinator
	prev := p.SetSkip(css_lexer.KindSetNone)
	pipe := p.Peek()
	if pipe.IsDelimChar('|') {
		p.Hop(pipe)
		next := p.Peek()
		if next.IsDelimChar('|') {
			// "||" is the column combinator
			p.SetSkip(prev)
			p.Hop(next)
			return Combinator{First: &pipe, Second: &next, Kind: CombinatorColumn}, nil
		}
		name, err := parseSelectorName(p)
		p.SetSkip(prev)
		if err != nil {
			return nil, err
		}
		return TypeSelector{Namespace: &first, Pipe: &pipe, Name: name}, nil
	}
	p.SetSkip(prev)

	return TypeSelector{Name: first}, nil
}

func parseSelectorName(p *css_parser.Parser) (css_lexer.Cursor, error) {
	c := p.Peek()
	if c.Is(css_lexer.KindIdent) || c.IsDelimChar('*') {
		p.Hop(c)
		return c, nil
	}
	return c, css_parser.ExpectedIdent(c)
}

func parseClassSelector(p *css_parser.Parser) (ClassSelector, error) {
	prev := p.SetSkip(css_lexer.KindSetNone)
	defer p.SetSkip(prev)

	dot, err := css_parser.ParseDelimChar(p, '.')
	if err != nil {
		return ClassSelector{}, err
	}
	name, err := css_parser.ParseIdent(p)
	if err != nil {
		return ClassSelector{}, err
	}
	return ClassSelector{Dot: dot.Cursor, Name: name.Cursor}, nil
}

// Pseudo-element names valid after a double colon. Vendor-prefixed names
// pass through unchecked.
var pseudoElementNames = map[string]bool{
	"after":                true,
	"backdrop":             true,
	"before":               true,
	"cue":                  true,
	"file-selector-button": true,
	"first-letter":         true,
	"first-line":           true,
	"grammar-error":        true,
	"marker":               true,
	"placeholder":          true,
	"selection":            true,
	"spelling-error":       true,
	"target-text":          true,
}

var pseudoElementFunctionNames = map[string]bool{
	"highlight": true,
	"part":      true,
	"slotted":   true,
}

func parsePseudoSelector(p *css_parser.Parser) (SelectorComponent, error) {
	if css_parser.PeekColonColon(p, p.Peek()) {
		return parsePseudoElement(p)
	}

	colon, err := css_parser.ParseColon(p)
	if err != nil {
		return nil, err
	}

	// The name must be adjacent to the colon
	prev := p.SetSkip(css_lexer.KindSetNone)
	c := p.Peek()
	p.SetSkip(prev)

	switch c.Token.Kind() {
	case css_lexer.KindIdent:
		p.Hop(c)
		return PseudoClassSelector{Colon: colon.Cursor, Name: c}, nil

	case css_lexer.KindFunction:
		p.Hop(c)
		return parsePseudoClassFunction(p, colon.Cursor, c)
	}
	return nil, css_parser.ExpectedIdent(c)
}

func parsePseudoClassFunction(p *css_parser.Parser, colon css_lexer.Cursor, function css_lexer.Cursor) (SelectorComponent, error) {
	name := p.ParseAtomLower(function)

	switch name {
	case "dir":
		value, err := dirValues.Parse(p)
		if err != nil {
			return nil, err
		}
		close, err := parseOptionalCloseParen(p)
		if err != nil {
			return nil, err
		}
		return DirPseudoFunction{Colon: colon, Function: function, Value: value, Close: close}, nil

	case "-moz-locale-dir":
		value, err := dirValues.Parse(p)
		if err != nil {
			return nil, err
		}
		close, err := parseOptionalCloseParen(p)
		if err != nil {
			return nil, err
		}
		return MozLocaleDirPseudoFunction{Colon: colon, Function: function, Value: value, Close: close}, nil

	case "is", "matches", "-moz-any", "-webkit-any", "not", "where", "has":
		selectors, err := ParseSelectorList(p)
		if err != nil {
			return nil, err
		}
		close, err := parseOptionalCloseParen(p)
		if err != nil {
			return nil, err
		}
		return SelectorListPseudoFunction{Colon: colon, Function: function, Selectors: selectors, Close: close}, nil

	case "lang", "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type", "nth-col", "nth-last-col", "state", "host", "host-context", "current":
		args, err := css_parser.ParseComponentValues(p, css_lexer.KindSetRightParen)
		if err != nil {
			return nil, err
		}
		close, err := parseOptionalCloseParen(p)
		if err != nil {
			return nil, err
		}
		return GenericPseudoFunction{Colon: colon, Function: function, Args: args, Close: close}, nil
	}

	if len(name) > 1 && name[0] == '-' {
		// Unknown vendor-prefixed pseudo-classes keep their raw arguments
		args, err := css_parser.ParseComponentValues(p, css_lexer.KindSetRightParen)
		if err != nil {
			return nil, err
		}
		close, err := parseOptionalCloseParen(p)
		if err != nil {
			return nil, err
		}
		return GenericPseudoFunction{Colon: colon, Function: function, Args: args, Close: close}, nil
	}

	return nil, css_parser.UnexpectedPseudoClass(name, function)
}

func parsePseudoElement(p *css_parser.Parser) (SelectorComponent, error) {
	colons, err := css_parser.ParseColonColon(p)
	if err != nil {
		return nil, err
	}

	prev := p.SetSkip(css_lexer.KindSetNone)
	c := p.Peek()
	p.SetSkip(prev)

	switch c.Token.Kind() {
	case css_lexer.KindIdent:
		name := p.ParseAtomLower(c)
		if !pseudoElementNames[name] && (len(name) < 2 || name[0] != '-') {
			return nil, css_parser.UnexpectedPseudoElement(name, c)
		}
		p.Hop(c)
		return PseudoElementSelector{Colons: colons, Name: c}, nil

	case css_lexer.KindFunction:
		name := p.ParseAtomLower(c)
		if !pseudoElementFunctionNames[name] && (len(name) < 2 || name[0] != '-') {
			return nil, css_parser.UnexpectedPseudoElement(name, c)
		}
		p.Hop(c)
		args, err := css_parser.ParseComponentValues(p, css_lexer.KindSetRightParen)
		if err != nil {
			return nil, err
		}
		close, err := parseOptionalCloseParen(p)
		if err != nil {
			return nil, err
		}
		return PseudoElementFunction{Colons: colons, Function: c, Args: args, Close: close}, nil
	}
	return nil, css_parser.ExpectedIdent(c)
}

func parseOptionalCloseParen(p *css_parser.Parser) (*css_lexer.Cursor, error) {
	c := p.Peek()
	if c.Is(css_lexer.KindEof) {
		return nil, nil
	}
	if !c.Is(css_lexer.KindRightParen) {
		return nil, css_parser.ExpectedKind(css_lexer.KindRightParen, c)
	}
	p.Hop(c)
	return &c, nil
}

var attributeMatcherPrefixes = map[rune]bool{'~': true, '|': true, '^': true, '$': true, '*': true}

func parseAttributeSelector(p *css_parser.Parser) (AttributeSelector, error) {
	var s AttributeSelector

	open, err := css_parser.ParseLeftSquare(p)
	if err != nil {
		return s, err
	}
	s.Open = open.Cursor

	name, err := css_parser.ParseIdent(p)
	if err != nil {
		return s, err
	}
	s.Name = name.Cursor

	c := p.Peek()
	if c.Is(css_lexer.KindDelim) && !c.IsDelimChar(']') {
		var matcher AttributeMatcher
		if attributeMatcherPrefixes[c.Token.Char()] {
			p.Hop(c)
			matcher.Prefix = &c

			// The "=" must be adjacent to the prefix character
			prev := p.SetSkip(css_lexer.KindSetNone)
			equals, err := css_parser.ParseDelimChar(p, '=')
			p.SetSkip(prev)
			if err != nil {
				return s, err
			}
			matcher.Equals = equals.Cursor
		} else {
			equals, err := css_parser.ParseDelimChar(p, '=')
			if err != nil {
				return s, err
			}
			matcher.Equals = equals.Cursor
		}

		value := p.Peek()
		if !value.Is(css_lexer.KindIdent) && !value.Is(css_lexer.KindString) {
			return s, css_parser.Unexpected(value)
		}
		p.Hop(value)
		matcher.Value = value
		s.Matcher = &matcher

		if modifier := p.Peek(); modifier.Is(css_lexer.KindIdent) {
			lowered := p.ParseAtomLower(modifier)
			if lowered != "i" && lowered != "s" {
				return s, css_parser.UnexpectedIdent(lowered, modifier)
			}
			p.Hop(modifier)
			s.Modifier = &modifier
		}
	}

	close, err := css_parser.ParseRightSquare(p)
	if err != nil {
		return s, err
	}
	s.Close = close.Cursor
	return s, nil
}
