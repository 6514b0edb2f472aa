package css_parser

// The qualified-rule block consumer. A "{...}" body can interleave
// declarations, at-rules and nested qualified rules; the consumer picks a
// track per item and falls back to the bad-declaration recovery when a
// track fails, so one broken item never loses the rest of the block.

import (
	"github.com/csskit/csskit/internal/css_lexer"
)

// BadDeclaration captures everything a failed item covered, through the
// next ";" at the current nesting level or up to the block's "}".
type BadDeclaration struct {
	Values    ComponentValues
	Semicolon *css_lexer.Cursor
}

func (b BadDeclaration) ToCursors(s css_lexer.CursorSink) {
	b.Values.ToCursors(s)
	if b.Semicolon != nil {
		s.Append(*b.Semicolon)
	}
}

// consumeBadDeclaration implements the recovery path. It cannot fail.
func consumeBadDeclaration(p *Parser) BadDeclaration {
	var bad BadDeclaration
	for {
		c := p.Peek()
		switch c.Token.Kind() {
		case css_lexer.KindEof, css_lexer.KindRightCurly:
			return bad
		case css_lexer.KindSemicolon:
			p.Hop(c)
			bad.Semicolon = &c
			return bad
		}
		value, err := ParseComponentValue(p)
		if err != nil {
			// Component values only fail on stray closers; skip the token.
			p.Hop(c)
			bad.Values = append(bad.Values, PreservedToken{c})
			continue
		}
		bad.Values = append(bad.Values, value)
	}
}

// DeclarationsAndRules is a parsed "{...}" body.
type DeclarationsAndRules struct {
	Open  css_lexer.Cursor
	Items []Node

	// Nil when the block was implicitly closed by the end of the file
	Close *css_lexer.Cursor
}

func (b DeclarationsAndRules) ToCursors(s css_lexer.CursorSink) {
	s.Append(b.Open)
	for _, item := range b.Items {
		item.ToCursors(s)
	}
	if b.Close != nil {
		s.Append(*b.Close)
	}
}

type BlockOptions struct {
	// ParseDeclaration handles "ident:" items. Nil disables the track.
	ParseDeclaration func(*Parser) (Node, error)

	// ParseAtRule handles "@ident" items. Nil disables the track.
	ParseAtRule func(*Parser) (Node, error)

	// ParseRule handles nested qualified rules. Nil disables the track.
	ParseRule func(*Parser) (Node, error)
}

// ParseDeclarationsAndRules consumes "{" items "}" with per-item recovery.
// Items that fail every track become BadDeclaration nodes and a warning.
func ParseDeclarationsAndRules(p *Parser, opts BlockOptions) (DeclarationsAndRules, error) {
	open, err := ParseLeftCurly(p)
	if err != nil {
		return DeclarationsAndRules{}, err
	}
	block := DeclarationsAndRules{Open: open.Cursor}

	for {
		c := p.Peek()
		switch c.Token.Kind() {
		case css_lexer.KindRightCurly:
			p.Hop(c)
			block.Close = &c
			return block, nil

		case css_lexer.KindEof:
			p.Warn(UnexpectedEnd(c.Range()))
			return block, nil

		case css_lexer.KindSemicolon:
			// Stray semicolons between items are legal and preserved
			p.Hop(c)
			block.Items = append(block.Items, PreservedToken{c})
			continue

		case css_lexer.KindAtKeyword:
			if opts.ParseAtRule != nil {
				item, err := TryParse(p, opts.ParseAtRule)
				if err == nil {
					block.Items = append(block.Items, item)
					continue
				}
				p.Warn(err)
			}
			block.Items = append(block.Items, badItem(p))
			continue
		}

		// A declaration and a nested rule can both start with an identifier
		// ("color:red" vs "a:hover{}"), so the declaration track runs first
		// and the rule track is the fallback. A parsed declaration that sits
		// directly before a "{" was really a selector prefix, so it fails
		// over to the rule track too.
		if opts.ParseDeclaration != nil && PeekDeclaration(p, c) {
			item, declErr := TryParse(p, func(p *Parser) (Node, error) {
				d, err := opts.ParseDeclaration(p)
				if err != nil {
					return nil, err
				}
				if c := p.Peek(); c.Is(css_lexer.KindLeftCurly) {
					return nil, Unexpected(c)
				}
				return d, nil
			})
			if declErr == nil {
				block.Items = append(block.Items, item)
				continue
			}
			if opts.ParseRule == nil {
				p.Warn(declErr)
				block.Items = append(block.Items, badItem(p))
				continue
			}
		}

		if opts.ParseRule != nil {
			item, ruleErr := TryParse(p, opts.ParseRule)
			if ruleErr == nil {
				block.Items = append(block.Items, item)
				continue
			}
			p.Warn(ruleErr)
		}
		block.Items = append(block.Items, badItem(p))
	}
}

func badItem(p *Parser) BadDeclaration {
	start := p.Peek()
	bad := consumeBadDeclaration(p)
	p.Warn(BadDeclarationError(start.Range()))
	return bad
}
