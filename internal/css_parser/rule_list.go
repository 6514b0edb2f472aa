package css_parser

// The top-level rule list driver. A stylesheet is rules until end of file,
// with stray CDO/CDC tokens tolerated between rules and a skip-to-boundary
// recovery when a rule fails to parse.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

type RuleListOptions struct {
	ParseAtRule func(*Parser) (Node, error)
	ParseRule   func(*Parser) (Node, error)
}

// ParseRuleList drives rules until end of input and returns the rules plus
// the end-of-file cursor, which marks where trailing trivia ends.
func ParseRuleList(p *Parser, opts RuleListOptions) ([]Node, css_lexer.Cursor) {
	var rules []Node
	for {
		c := p.Peek()
		switch c.Token.Kind() {
		case css_lexer.KindEof:
			return rules, c

		case css_lexer.KindCdcOrCdo:
			// Legal between top-level rules and meaningless; hop it
			p.Hop(c)
			continue

		case css_lexer.KindAtKeyword:
			rule, err := TryParse(p, opts.ParseAtRule)
			if err != nil {
				p.Error(err)
				skipToNextRule(p)
				continue
			}
			rules = append(rules, rule)
			continue
		}

		rule, err := TryParse(p, opts.ParseRule)
		if err != nil {
			p.Error(err)
			skipToNextRule(p)
			continue
		}
		rules = append(rules, rule)
	}
}

// skipToNextRule consumes tokens through the next "}" or ";" at depth
// zero, or to the end of the input, which is the top-level recovery
// boundary.
func skipToNextRule(p *Parser) {
	depth := 0
	for {
		c := p.Peek()
		switch c.Token.Kind() {
		case css_lexer.KindEof:
			return
		case css_lexer.KindSemicolon:
			if depth == 0 {
				p.Hop(c)
				return
			}
		case css_lexer.KindLeftCurly, css_lexer.KindLeftSquare, css_lexer.KindLeftParen, css_lexer.KindFunction:
			depth++
		case css_lexer.KindRightSquare, css_lexer.KindRightParen:
			if depth > 0 {
				depth--
			}
		case css_lexer.KindRightCurly:
			if depth <= 1 {
				p.Hop(c)
				return
			}
			depth--
		}
		p.Hop(c)
	}
}
