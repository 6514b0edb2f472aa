package logger

// Logging is designed to look and feel like clang's error format. Messages
// are collected on a log and rendered at the end. Rewinding a speculative
// parse does not remove the messages that parse already added.

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

const defaultTerminalWidth = 80

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelVerbose
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Note
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		panic("Internal error")
	}
}

type Msg struct {
	Data  MsgData
	Notes []MsgData
	ID    MsgID
	Kind  MsgKind
}

type MsgData struct {
	Text     string
	Location *MsgLocation
}

type MsgLocation struct {
	File     string
	LineText string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
}

// Loc is a 0-based byte index from the start of the file.
type Loc struct {
	Start int32
}

// Range is a half-open span of bytes: [Loc.Start, Loc.Start+Len).
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 {
	return r.Loc.Start + r.Len
}

func (r Range) Contains(loc Loc) bool {
	return loc.Start >= r.Loc.Start && loc.Start < r.End()
}

func (r Range) ContainsRange(other Range) bool {
	return other.Loc.Start >= r.Loc.Start && other.End() <= r.End()
}

// Union returns the smallest range covering both ranges.
func (r Range) Union(other Range) Range {
	start := r.Loc.Start
	if other.Loc.Start < start {
		start = other.Loc.Start
	}
	end := r.End()
	if other.End() > end {
		end = other.End()
	}
	return Range{Loc: Loc{Start: start}, Len: end - start}
}

// Intersect returns the overlap of both ranges and whether one exists.
func (r Range) Intersect(other Range) (Range, bool) {
	start := r.Loc.Start
	if other.Loc.Start > start {
		start = other.Loc.Start
	}
	end := r.End()
	if other.End() < end {
		end = other.End()
	}
	if start > end {
		return Range{}, false
	}
	return Range{Loc: Loc{Start: start}, Len: end - start}, true
}

type Span struct {
	Text  string
	Range Range
}

type Source struct {
	Index uint32

	// This is used for error messages and is a platform-independent path.
	PrettyPath string

	Contents string
}

func (s *Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start:r.End()]
}

func (s *Source) RangeOfString(loc Loc) Range {
	text := s.Contents[loc.Start:]
	if len(text) == 0 {
		return Range{Loc: loc, Len: 0}
	}
	quote := text[0]
	if quote == '"' || quote == '\'' {
		for i := 1; i < len(text); i++ {
			c := text[i]
			if c == quote {
				return Range{Loc: loc, Len: int32(i + 1)}
			} else if c == '\\' {
				i += 1
			}
		}
	}
	return Range{Loc: loc, Len: 0}
}

// This type is just so we can use Go's native sort function
type SortableMsgs []Msg

func (a SortableMsgs) Len() int          { return len(a) }
func (a SortableMsgs) Swap(i int, j int) { a[i], a[j] = a[j], a[i] }

func (a SortableMsgs) Less(i int, j int) bool {
	ai := a[i]
	aj := a[j]
	aiLoc := ai.Data.Location
	ajLoc := aj.Data.Location
	if aiLoc == nil || ajLoc == nil {
		return aiLoc == nil && ajLoc != nil
	}
	if aiLoc.File != ajLoc.File {
		return aiLoc.File < ajLoc.File
	}
	if aiLoc.Line != ajLoc.Line {
		return aiLoc.Line < ajLoc.Line
	}
	if aiLoc.Column != ajLoc.Column {
		return aiLoc.Column < ajLoc.Column
	}
	if ai.Kind != aj.Kind {
		return ai.Kind < aj.Kind
	}
	return ai.Data.Text < aj.Data.Text
}

type DeferLogKind uint8

const (
	DeferLogAll DeferLogKind = iota
	DeferLogNoVerboseOrDebug
)

// NewDeferLog returns a log that collects messages for later retrieval. The
// log is safe for use from a single parse at a time; the mutex only guards
// against misuse across goroutines.
func NewDeferLog(kind DeferLogKind) Log {
	var msgs SortableMsgs
	var mutex sync.Mutex
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			if kind == DeferLogNoVerboseOrDebug && msg.Kind == Note {
				return
			}
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.Stable(msgs)
			return msgs
		},
	}
}

func (log Log) Add(kind MsgKind, tracker *LineColumnTracker, r Range, text string) {
	log.AddMsg(Msg{
		Kind: kind,
		Data: tracker.MsgData(r, text),
	})
}

func (log Log) AddID(id MsgID, kind MsgKind, tracker *LineColumnTracker, r Range, text string) {
	log.AddMsg(Msg{
		ID:   id,
		Kind: kind,
		Data: tracker.MsgData(r, text),
	})
}

func (log Log) AddWithNotes(kind MsgKind, tracker *LineColumnTracker, r Range, text string, notes []MsgData) {
	log.AddMsg(Msg{
		Kind:  kind,
		Data:  tracker.MsgData(r, text),
		Notes: notes,
	})
}

func (log Log) AddIDWithNotes(id MsgID, kind MsgKind, tracker *LineColumnTracker, r Range, text string, notes []MsgData) {
	log.AddMsg(Msg{
		ID:    id,
		Kind:  kind,
		Data:  tracker.MsgData(r, text),
		Notes: notes,
	})
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
	Height          int
}

type OutputOptions struct {
	IncludeSource bool
	Color         bool
}

type Colors struct {
	Reset     string
	Bold      string
	Dim       string
	Underline string

	Red   string
	Green string
	Blue  string

	Cyan    string
	Magenta string
	Yellow  string
}

var TerminalColors = Colors{
	Reset:     "\033[0m",
	Bold:      "\033[1m",
	Dim:       "\033[37m",
	Underline: "\033[4m",

	Red:   "\033[31m",
	Green: "\033[32m",
	Blue:  "\033[34m",

	Cyan:    "\033[36m",
	Magenta: "\033[35m",
	Yellow:  "\033[33m",
}

func (msg Msg) String(options OutputOptions, terminalInfo TerminalInfo) string {
	var colors Colors
	if terminalInfo.UseColorEscapes && options.Color {
		colors = TerminalColors
	}

	var sb strings.Builder
	msgString(&sb, msg.Kind, msg.Data, colors)
	for _, note := range msg.Notes {
		msgString(&sb, Note, note, colors)
	}
	return sb.String()
}

func msgString(sb *strings.Builder, kind MsgKind, data MsgData, colors Colors) {
	var kindColor string
	switch kind {
	case Error:
		kindColor = colors.Red
	case Warning:
		kindColor = colors.Magenta
	default:
		kindColor = colors.Blue
	}

	if data.Location == nil {
		fmt.Fprintf(sb, "%s%s%s: %s%s%s\n",
			kindColor, kind.String(), colors.Reset,
			colors.Bold, data.Text, colors.Reset)
		return
	}

	loc := data.Location
	fmt.Fprintf(sb, "%s%s:%d:%d: %s%s:%s %s%s\n",
		colors.Bold, loc.File, loc.Line, loc.Column,
		kindColor, kind.String(), colors.Reset,
		data.Text, colors.Reset)

	if loc.LineText != "" {
		sb.WriteString(loc.LineText)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", loc.Column))
		sb.WriteString(colors.Green)
		if loc.Length > 1 {
			sb.WriteString(strings.Repeat("~", loc.Length))
		} else {
			sb.WriteByte('^')
		}
		sb.WriteString(colors.Reset)
		sb.WriteByte('\n')
	}
}

func hasNoColorEnvironmentVariable() bool {
	// https://no-color.org/
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// PrintMessagesToStderr is a convenience used by callers that do not collect
// messages themselves.
func PrintMessagesToStderr(msgs []Msg, options OutputOptions) {
	terminalInfo := GetTerminalInfo(os.Stderr)
	for _, msg := range msgs {
		os.Stderr.WriteString(msg.String(options, terminalInfo))
	}
}

// LineColumnTracker converts byte offsets into 1-based line and 0-based
// column pairs for error messages. Line starts are computed lazily because
// most parses produce no messages at all.
type LineColumnTracker struct {
	contents   string
	prettyPath string
	lineStarts []int32
}

func MakeLineColumnTracker(source *Source) LineColumnTracker {
	return LineColumnTracker{
		contents:   source.Contents,
		prettyPath: source.PrettyPath,
	}
}

func (t *LineColumnTracker) scan() {
	t.lineStarts = append(t.lineStarts, 0)
	for i := 0; i < len(t.contents); i++ {
		switch t.contents[i] {
		case '\r':
			if i+1 < len(t.contents) && t.contents[i+1] == '\n' {
				continue
			}
			t.lineStarts = append(t.lineStarts, int32(i+1))
		case '\n', '\f':
			t.lineStarts = append(t.lineStarts, int32(i+1))
		}
	}
}

func (t *LineColumnTracker) MsgData(r Range, text string) MsgData {
	if t.lineStarts == nil {
		t.scan()
	}

	// Binary search for the line containing the start of this range
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > r.Loc.Start
	}) - 1
	lineStart := t.lineStarts[line]
	lineEnd := int32(len(t.contents))
	if line+1 < len(t.lineStarts) {
		lineEnd = t.lineStarts[line+1]
	}
	lineText := strings.TrimRight(t.contents[lineStart:lineEnd], "\r\n\f")

	length := int(r.Len)
	if int(r.Loc.Start-lineStart)+length > len(lineText) {
		length = len(lineText) - int(r.Loc.Start-lineStart)
		if length < 0 {
			length = 0
		}
	}

	return MsgData{
		Text: text,
		Location: &MsgLocation{
			File:     t.prettyPath,
			Line:     line + 1,
			Column:   int(r.Loc.Start - lineStart),
			Length:   length,
			LineText: lineText,
		},
	}
}
