// Package csskit is the public surface of the toolkit: parse a stylesheet,
// inspect the tree, and write it back out losslessly.
package csskit

import (
	"github.com/csskit/csskit/internal/css_ast"
	"github.com/csskit/csskit/internal/css_lexer"
	"github.com/csskit/csskit/internal/css_parser"
	"github.com/csskit/csskit/internal/logger"
)

type Feature uint8

const (
	// SeparateWhitespace splits mixed whitespace runs into one token per
	// whitespace style.
	SeparateWhitespace Feature = Feature(css_lexer.FeatureSeparateWhitespace)

	// SingleLineComments accepts "//" comments.
	SingleLineComments Feature = Feature(css_lexer.FeatureSingleLineComments)
)

type ParseOptions struct {
	// Features toggles opt-in lexer behaviours.
	Features Feature

	// PrettyPath names the source in messages. Defaults to "<stdin>".
	PrettyPath string
}

type Message struct {
	Text    string
	ID      string
	Line    int // 1-based
	Column  int // 0-based, in bytes
	IsError bool
}

type ParseResult struct {
	StyleSheet *css_ast.StyleSheet
	Messages   []Message

	source string
}

// Parse converts CSS source text into a syntax tree. Parsing never fails
// outright; problems surface as messages and unparseable regions stay in
// the tree as raw component values.
func Parse(source string, options ParseOptions) ParseResult {
	prettyPath := options.PrettyPath
	if prettyPath == "" {
		prettyPath = "<stdin>"
	}
	log := logger.NewDeferLog(logger.DeferLogAll)
	sheet := css_ast.Parse(log, logger.Source{
		PrettyPath: prettyPath,
		Contents:   source,
	}, css_parser.Options{
		Features: css_lexer.Feature(options.Features),
	})

	var messages []Message
	for _, msg := range log.Done() {
		message := Message{
			Text:    msg.Data.Text,
			ID:      logger.MsgIDToString(msg.ID),
			IsError: msg.Kind == logger.Error,
		}
		if msg.Data.Location != nil {
			message.Line = msg.Data.Location.Line
			message.Column = msg.Data.Location.Column
		}
		messages = append(messages, message)
	}

	return ParseResult{StyleSheet: sheet, Messages: messages, source: source}
}

// Serialize reproduces the source text of the parsed tree. For a tree that
// parsed without fatal errors this returns the original input bytes.
func (r ParseResult) Serialize() string {
	return css_ast.Serialize(r.source, r.StyleSheet)
}
