package css_lexer

import (
	"io"
	"strings"

	"github.com/csskit/csskit/internal/logger"
)

// Cursor pairs a token with its byte offset, which is the only value that
// unambiguously locates the token in the source.
type Cursor struct {
	Loc   logger.Loc
	Token Token
}

func NewCursor(loc logger.Loc, token Token) Cursor {
	return Cursor{Loc: loc, Token: token}
}

func (c Cursor) Range() logger.Range {
	return logger.Range{Loc: c.Loc, Len: int32(c.Token.Length())}
}

func (c Cursor) End() int32 {
	return c.Loc.Start + int32(c.Token.Length())
}

// Text borrows the token's bytes from the source.
func (c Cursor) Text(source string) string {
	return source[c.Loc.Start:c.End()]
}

// ToCursors lets a cursor act as its own serialisation leaf. Every node
// type that embeds a cursor picks this up by promotion.
func (c Cursor) ToCursors(s CursorSink) {
	s.Append(c)
}

func (c Cursor) Is(kind Kind) bool        { return c.Token.Is(kind) }
func (c Cursor) InSet(set KindSet) bool   { return c.Token.InSet(set) }
func (c Cursor) IsChar(ch rune) bool      { return c.Token.IsChar(ch) }
func (c Cursor) IsDelimChar(ch rune) bool { return c.Token.IsDelimChar(ch) }

// CursorSink receives cursors in source order. Serialisation of any syntax
// tree is a walk that appends every cursor the tree holds; the sink decides
// whether to collect them or write their bytes somewhere.
type CursorSink interface {
	Append(c Cursor)
}

// CursorSlice collects cursors for later inspection.
type CursorSlice struct {
	Cursors []Cursor
}

func (s *CursorSlice) Append(c Cursor) {
	s.Cursors = append(s.Cursors, c)
}

// SourceWriter copies each cursor's bytes out of the source. Trivia the
// parser skipped never lands in a node, so the writer recovers it from the
// gap between the previous cursor's end and the next cursor's start. As
// long as cursors arrive in source order the output reproduces the original
// text byte-for-byte.
type SourceWriter struct {
	source  string
	w       io.Writer
	err     error
	lastEnd int32
}

func NewSourceWriter(source string, w io.Writer) *SourceWriter {
	return &SourceWriter{source: source, w: w}
}

func (s *SourceWriter) Append(c Cursor) {
	if s.err != nil {
		return
	}
	if c.Loc.Start > s.lastEnd {
		if _, err := io.WriteString(s.w, s.source[s.lastEnd:c.Loc.Start]); err != nil {
			s.err = err
			return
		}
	}
	if _, s.err = io.WriteString(s.w, c.Text(s.source)); s.err == nil {
		if end := c.End(); end > s.lastEnd {
			s.lastEnd = end
		}
	}
}

func (s *SourceWriter) Err() error {
	return s.err
}

// WriteCursors drains a cursor slice through a SourceWriter and returns the
// reproduced text.
func WriteCursors(source string, cursors []Cursor) string {
	sb := strings.Builder{}
	w := NewSourceWriter(source, &sb)
	for _, c := range cursors {
		w.Append(c)
	}
	return sb.String()
}
