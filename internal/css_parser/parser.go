package css_parser

// The parser is a cursor-based recursive-descent engine over the lazy
// lexer. Grammar nodes never see token text unless they ask for it; they
// peek at cursors, decide, and advance. Because a lexer position is just a
// byte offset, speculative parsing is a matter of remembering an offset and
// seeking back to it.

import (
	"strings"

	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/logger"
)

type Options struct {
	Features css_lexer.Feature
}

type Parser struct {
	source  logger.Source
	lexer   css_lexer.Lexer
	tracker logger.LineColumnTracker
	log     logger.Log
	atoms   map[string]string
	skip    css_lexer.KindSet
	options Options
}

func New(log logger.Log, source logger.Source, options Options) *Parser {
	return &Parser{
		source:  source,
		lexer:   css_lexer.NewLexer(source.Contents, options.Features),
		tracker: logger.MakeLineColumnTracker(&source),
		log:     log,
		atoms:   make(map[string]string),
		skip:    css_lexer.KindSetWhitespaceComment,
		options: options,
	}
}

func (p *Parser) Source() *logger.Source {
	return &p.source
}

// Offset is the byte offset the next read starts from.
func (p *Parser) Offset() int32 {
	return p.lexer.Offset()
}

// Checkpoint captures the position and the skip-set so a speculative parse
// can be fully undone.
type Checkpoint struct {
	offset int32
	skip   css_lexer.KindSet
}

func (p *Parser) Checkpoint() Checkpoint {
	return Checkpoint{offset: p.lexer.Offset(), skip: p.skip}
}

func (p *Parser) Rewind(c Checkpoint) {
	p.lexer.Seek(c.offset)
	p.skip = c.skip
}

// SetSkip replaces the skip-set and returns the previous one. Callers must
// restore the previous set on every exit path, error paths included.
func (p *Parser) SetSkip(set css_lexer.KindSet) css_lexer.KindSet {
	prev := p.skip
	p.skip = set
	return prev
}

func (p *Parser) Skip() css_lexer.KindSet {
	return p.skip
}

// Peek returns the next significant cursor without advancing.
func (p *Parser) Peek() css_lexer.Cursor {
	return p.PeekN(1)
}

// PeekN returns the cursor n positions ahead, counting only tokens outside
// the skip-set. PeekN(1) is the next significant cursor.
func (p *Parser) PeekN(n int) css_lexer.Cursor {
	lexer := p.lexer
	for {
		loc := logger.Loc{Start: lexer.Offset()}
		token := lexer.Advance()
		if token.Is(css_lexer.KindEof) {
			return css_lexer.NewCursor(loc, token)
		}
		if token.InSet(p.skip) {
			continue
		}
		if n--; n <= 0 {
			return css_lexer.NewCursor(loc, token)
		}
	}
}

// PeekWithWhitespace ignores the skip-set, which nodes use when adjacency
// matters, such as the two colons of a pseudo-element.
func (p *Parser) PeekWithWhitespace() css_lexer.Cursor {
	lexer := p.lexer
	loc := logger.Loc{Start: lexer.Offset()}
	return css_lexer.NewCursor(loc, lexer.Advance())
}

// Next advances past skipped tokens, consumes the next significant token,
// and returns its cursor.
func (p *Parser) Next() css_lexer.Cursor {
	for {
		loc := logger.Loc{Start: p.lexer.Offset()}
		token := p.lexer.Advance()
		if token.InSet(p.skip) && !token.Is(css_lexer.KindEof) {
			continue
		}
		return css_lexer.NewCursor(loc, token)
	}
}

// Hop advances the offset to one past the given cursor. Peeking combinators
// call this once they decide to consume what they saw.
func (p *Parser) Hop(c css_lexer.Cursor) {
	p.lexer.Seek(c.End())
}

// AtEnd reports whether only skippable trivia remains.
func (p *Parser) AtEnd() bool {
	return p.Peek().Is(css_lexer.KindEof)
}

// ParseStr borrows the raw bytes of a token from the source.
func (p *Parser) ParseStr(c css_lexer.Cursor) string {
	return c.Text(p.source.Contents)
}

// ParseRawStr borrows the logical text of a token: unescaped, without
// syntactic framing such as quotes or the "@" of an at-keyword.
func (p *Parser) ParseRawStr(c css_lexer.Cursor) string {
	return css_lexer.DecodedText(p.source.Contents, c)
}

// ParseStrLower is ParseRawStr with ASCII lowercasing. When the token is
// already escape-free lowercase this borrows from the source without
// allocating.
func (p *Parser) ParseStrLower(c css_lexer.Cursor) string {
	if !c.Token.ContainsEscape() && !c.Token.ContainsNonLowerASCII() {
		return css_lexer.DecodedText(p.source.Contents, c)
	}
	return strings.ToLower(css_lexer.DecodedText(p.source.Contents, c))
}

// ParseAtomLower interns the lowercased text so repeated keywords share one
// backing string per parse.
func (p *Parser) ParseAtomLower(c css_lexer.Cursor) string {
	s := p.ParseStrLower(c)
	if atom, ok := p.atoms[s]; ok {
		return atom
	}
	p.atoms[s] = s
	return s
}

// EqIgnoreASCIICase compares a token's logical text against an expected
// lowercase string without allocating in the common escape-free case.
func (p *Parser) EqIgnoreASCIICase(c css_lexer.Cursor, expected string) bool {
	if c.Token.ContainsEscape() {
		return p.ParseStrLower(c) == expected
	}
	raw := css_lexer.DecodedText(p.source.Contents, c)
	if len(raw) != len(expected) {
		return false
	}
	for i := 0; i < len(raw); i++ {
		a := raw[i]
		if a >= 'A' && a <= 'Z' {
			a |= 0x20
		}
		if a != expected[i] {
			return false
		}
	}
	return true
}

// Warn records a recoverable problem without failing the parse.
func (p *Parser) Warn(err error) {
	if d, ok := err.(*Diagnostic); ok {
		p.log.AddID(d.ID, logger.Warning, &p.tracker, d.Range, d.Text)
		return
	}
	p.log.Add(logger.Warning, &p.tracker, logger.Range{Loc: logger.Loc{Start: p.Offset()}}, err.Error())
}

// Error records a hard failure that was recovered at an enclosing rule
// boundary.
func (p *Parser) Error(err error) {
	if d, ok := err.(*Diagnostic); ok {
		p.log.AddID(d.ID, logger.Error, &p.tracker, d.Range, d.Text)
		return
	}
	p.log.Add(logger.Error, &p.tracker, logger.Range{Loc: logger.Loc{Start: p.Offset()}}, err.Error())
}
