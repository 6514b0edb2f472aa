package css_ast

// CSS syntax comes in two layers: a minimal syntax that accepts anything
// that looks vaguely like CSS, and the built-in rules browsers actually
// interpret. This package parses the built-in rules it knows and keeps
// everything else as component values with enough information to write it
// back out unchanged.
//
// Every node references the source through cursors rather than owning
// token text. Serialising a tree walks it in source order pushing cursors
// into a sink; the sink recovers skipped trivia from the cursor gaps, so
// the output reproduces the input byte-for-byte.

import (
	"strings"

	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
	"github.com/csskit/csskit/internal/logger"
)

// StyleSheet is the root node: rules until end of input. The end-of-file
// cursor marks where trailing trivia ends so serialisation keeps it.
type StyleSheet struct {
	Rules []css_parser.Node
	Eof   css_lexer.Cursor
}

func (s *StyleSheet) ToCursors(sink css_lexer.CursorSink) {
	for _, rule := range s.Rules {
		rule.ToCursors(sink)
	}
	sink.Append(s.Eof)
}

func ParseStyleSheet(p *css_parser.Parser) *StyleSheet {
	rules, eof := css_parser.ParseRuleList(p, css_parser.RuleListOptions{
		ParseAtRule: parseAtRuleNode,
		ParseRule:   parseStyleRuleNode,
	})
	return &StyleSheet{Rules: rules, Eof: eof}
}

// Parse tokenizes and parses a whole source.
func Parse(log logger.Log, source logger.Source, options css_parser.Options) *StyleSheet {
	p := css_parser.New(log, source, options)
	return ParseStyleSheet(p)
}

// Serialize writes a node's cursors back into text using the source the
// node was parsed from.
func Serialize(source string, node css_parser.Node) string {
	sb := strings.Builder{}
	sb.Grow(len(source))
	w := css_lexer.NewSourceWriter(source, &sb)
	node.ToCursors(w)
	return sb.String()
}
