package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// reportWidth is the column at which detail text wraps.
const reportWidth = 72

type style string

const (
	styleNone  style = ""
	styleError style = "\033[1;31m"
	styleCode  style = "\033[1m"
	styleMuted style = "\033[2m"
	styleHint  style = "\033[36m"
)

var plain atomic.Bool

// DisableColors turns off ANSI styling in reports.
func DisableColors() { plain.Store(true) }

// EnableColors turns ANSI styling back on.
func EnableColors() { plain.Store(false) }

func (s style) paint(text string) string {
	if s == styleNone || plain.Load() {
		return text
	}
	return string(s) + text + "\033[0m"
}

// Format renders e as a multi-line report:
//
//	error[E020] snapshot: Snapshot not found
//
//	  no snapshot named "home"
//
//	  cause: open home.html: no such file or directory
//
//	  hint: Run 'hyperoop snapshot list' to see saved snapshots
func (e *Error) Format() string {
	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(e.header())
	b.WriteString("\n\n")

	if e.Detail != "" {
		writeBlock(&b, "", e.Detail)
	}
	for _, cause := range causes(e.Wrapped) {
		writeBlock(&b, styleMuted.paint("cause: "), cause)
	}
	if e.Suggestion != "" {
		writeBlock(&b, styleHint.paint("hint: "), e.Suggestion)
	}
	return b.String()
}

// FormatCompact renders e on one line as "CODE: message".
func (e *Error) FormatCompact() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

func (e *Error) header() string {
	label := "error"
	if e.Code != "" {
		label += "[" + e.Code + "]"
	}
	head := styleError.paint(label)
	if e.Category != "" {
		head += " " + styleMuted.paint(string(e.Category)+":")
	} else {
		head += styleError.paint(":")
	}
	return head + " " + styleCode.paint(e.Message)
}

// causes lists the messages of err and everything it wraps, outermost first.
// A structured cause ends the walk since its own message already includes
// whatever it wraps.
func causes(err error) []string {
	var out []string
	for err != nil {
		if se, ok := err.(*Error); ok {
			return append(out, se.FormatCompact())
		}
		next := stderrors.Unwrap(err)
		msg := err.Error()
		if next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
		out = append(out, msg)
		err = next
	}
	return out
}

func writeBlock(b *strings.Builder, prefix, text string) {
	for i, line := range wrapText(text, reportWidth) {
		b.WriteString("  ")
		if i == 0 {
			b.WriteString(prefix)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}

// wrapText splits text into lines no wider than width, breaking at spaces.
// A single word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := []string{words[0]}
	for _, w := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(w) > width {
			lines = append(lines, w)
			continue
		}
		*last += " " + w
	}
	return lines
}

// PrintError writes a report for err to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError writes a report for err to w. Errors without a code are
// reported by message alone.
func FprintError(w io.Writer, err error) {
	if se, ok := err.(*Error); ok {
		fmt.Fprint(w, se.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", styleError.paint("error:"), err)
}
