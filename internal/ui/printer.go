package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"pharaoh/internal/domain"
)

// Printer renders a whole report
type Printer interface {
	PrintReport(report domain.TestReport) error
}

var _ Printer = (*ReportPrinter)(nil)

// ReportPrinter writes the report as plain lines to a writer, optionally with
// colored OK/FAILED markers
type ReportPrinter struct {
	writer    io.Writer
	formatter Formatter
	ok        func(a ...interface{}) string
	failed    func(a ...interface{}) string
}

// NewPrinter creates a new ReportPrinter
func NewPrinter(w io.Writer, formatter Formatter, colorize bool) *ReportPrinter {
	p := &ReportPrinter{
		writer:    w,
		formatter: formatter,
		ok:        fmt.Sprint,
		failed:    fmt.Sprint,
	}
	if colorize {
		p.ok = colorFunc(color.FgGreen)
		p.failed = colorFunc(color.FgRed)
	}
	return p
}

// PrintReport prints one header per suite and one line per result, followed by
// a failures section holding the summary of every failed result in report order.
func (p *ReportPrinter) PrintReport(report domain.TestReport) error {
	ew := &errWriter{w: p.writer}

	if report.Empty() {
		ew.printf("No test case found. Exiting.\n")
		return ew.result()
	}

	var failures []domain.TestResult
	for _, suite := range report.TestSuites {
		ew.printf("Running tests for %s\n", suite.Name)
		for _, result := range suite.Results {
			if result.IsSuccessful() {
				ew.printf("test %s ... %s\n", result.Name, p.ok("OK"))
				continue
			}
			ew.printf("test %s ... %s\n", result.Name, p.failed("FAILED"))
			failures = append(failures, result)
		}
	}

	if len(failures) > 0 {
		ew.printf("\nfailures:\n\n")
		for _, failure := range failures {
			ew.printf("---- %s ----\n", failure.Name)
			ew.printf("%s\n", p.formatter.ComputeSummary(failure))
		}
	}

	return ew.result()
}

// errWriter stops writing after the first error
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) result() error {
	if ew.err != nil {
		return domain.NewError(domain.KindIO, "write report", ew.err)
	}
	return nil
}
