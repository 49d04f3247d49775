package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pharaoh/internal/domain"
)

const maxCmdWidth = 60

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

// PrintTestList prints every discovered test case, one row per case
func PrintTestList(w io.Writer, collection domain.TestSuiteCollection) {
	t := newTable(w, fmt.Sprintf("Found %d test case(s) in %d suite(s)", collection.CaseCount(), len(collection.TestSuites)))
	t.AppendHeader(table.Row{"#", "Suite", "Test case", "Command", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: maxCmdWidth},
		{Number: 5, Align: text.AlignRight},
	})

	n := 0
	for _, suite := range collection.TestSuites {
		for _, tc := range suite.Tests {
			n++
			t.AppendRow(table.Row{n, suite.Name, CaseName(suite.Name, tc.Name), oneLine(tc.Cmd), tc.Status})
		}
	}
	t.Render()
}

// PrintSummary prints the statistics of a finished run
func PrintSummary(w io.Writer, meta domain.RunMeta) {
	t := newTable(w, "Test Execution Statistics")
	t.AppendRows([]table.Row{
		{"Run", meta.RunID},
		{"Suites", meta.TotalSuites},
		{"Test Cases", meta.TotalTestCases},
		{"Passed", meta.PassedTestCases},
		{"Failed", meta.FailedTestCases},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Jobs", meta.Jobs},
		{"Timestamp", meta.Timestamp},
	})
	t.Render()
}

// PrintHistory prints past runs, most recent first
func PrintHistory(w io.Writer, runs []domain.RunMeta) {
	t := newTable(w, fmt.Sprintf("Last %d run(s)", len(runs)))
	t.AppendHeader(table.Row{"Run", "Timestamp", "Tests", "Passed", "Failed", "Duration", "Jobs"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.RunID,
			run.Timestamp,
			run.TotalTestCases,
			run.PassedTestCases,
			run.FailedTestCases,
			fmt.Sprintf("%.2fs", run.DurationSeconds),
			run.Jobs,
		})
	}
	t.Render()
}

// CaseName strips the "<suite>::" prefix from a qualified test name
func CaseName(suite, qualified string) string {
	return strings.TrimPrefix(qualified, suite+domain.SuiteSeparator)
}

func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", " ⏎ ")
}
