package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"pharaoh/internal/domain"
)

// Formatter turns a failed test result into a human readable summary
type Formatter interface {
	// ComputeSummary returns the empty string exactly when the result is successful
	ComputeSummary(result domain.TestResult) string
}

var _ Formatter = (*DiffFormatter)(nil)

// DiffFormatter reports a status mismatch and line diffs of stdout and stderr
type DiffFormatter struct {
	label   func(a ...interface{}) string
	removed func(a ...interface{}) string
	added   func(a ...interface{}) string
}

// NewFormatter creates a DiffFormatter producing plain text
func NewFormatter() *DiffFormatter {
	return &DiffFormatter{
		label:   fmt.Sprint,
		removed: fmt.Sprint,
		added:   fmt.Sprint,
	}
}

// NewColorFormatter creates a DiffFormatter that colors labels yellow, expected
// lines green and actual lines red
func NewColorFormatter() *DiffFormatter {
	return &DiffFormatter{
		label:   colorFunc(color.FgYellow),
		removed: colorFunc(color.FgGreen),
		added:   colorFunc(color.FgRed),
	}
}

func colorFunc(attr color.Attribute) func(a ...interface{}) string {
	c := color.New(attr)
	c.EnableColor()
	return c.SprintFunc()
}

// ComputeSummary reports, in this order, the status code, stdout and stderr
// differences of the result. Blocks with nothing to report are left out.
func (f *DiffFormatter) ComputeSummary(result domain.TestResult) string {
	var b strings.Builder
	f.writeStatus(&b, result.ExpectedStatus, result.ActualStatus)
	f.writeDiff(&b, "stdout", result.ExpectedStdout, result.ActualStdout)
	f.writeDiff(&b, "stderr", result.ExpectedStderr, result.ActualStderr)
	return b.String()
}

func (f *DiffFormatter) writeStatus(b *strings.Builder, expected, actual int) {
	if expected == actual {
		return
	}
	fmt.Fprintf(b, "%s differs:\nexpected: %d\nactual: %d\n", f.label("status code"), expected, actual)
}

// writeDiff writes a minimal line diff: unchanged lines prefixed with a space,
// lines only in expected with "-", lines only in actual with "+". Line text is
// kept verbatim.
func (f *DiffFormatter) writeDiff(b *strings.Builder, name, expected, actual string) {
	if expected == actual {
		return
	}

	fmt.Fprintf(b, "%s differs:\n%s expected\n%s actual\n", f.label(name), f.removed("---"), f.added("+++"))
	for _, d := range lineDiff(expected, actual) {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for _, line := range lines {
				b.WriteString(" " + terminated(line))
			}
		case diffmatchpatch.DiffDelete:
			f.writeLines(b, f.removed, "-", lines)
		case diffmatchpatch.DiffInsert:
			f.writeLines(b, f.added, "+", lines)
		}
	}
}

// lineDiff computes a Myers diff over whole lines. Each line is mapped to one
// rune so the character diff works on lines; a zero timeout turns off the
// half-match shortcut, which may return a diff longer than the shortest one.
func lineDiff(expected, actual string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	a, c, lines := dmp.DiffLinesToChars(expected, actual)
	return dmp.DiffCharsToLines(dmp.DiffMain(a, c, false), lines)
}

func (f *DiffFormatter) writeLines(b *strings.Builder, paint func(a ...interface{}) string, prefix string, lines []string) {
	for _, line := range lines {
		b.WriteString(paint(prefix + terminated(line)))
	}
}

// splitLines splits s after each "\n", keeping the terminators
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// terminated ends a final unterminated line so every diff line ends a line
func terminated(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\n"
}
