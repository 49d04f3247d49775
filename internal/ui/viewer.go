package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pharaoh/internal/domain"
	"pharaoh/internal/storage"
)

// Viewer displays test results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}

var _ Viewer = (*ErrorViewer)(nil)

// ErrorViewer displays stored test failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View browses the failures of a run. Toggling the resolved mark of a failure
// writes the whole run back to storage.
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	b := newFailureBrowser(results, ev.storage.SaveOutput)
	if err := b.app.SetRoot(b.layout(), true).SetFocus(b.list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if b.saveErr != nil {
		return fmt.Errorf("failed to save resolved status: %w", b.saveErr)
	}
	return nil
}

// failureBrowser holds the widgets and state of one viewer session
type failureBrowser struct {
	run  *domain.RunOutput
	save func(*domain.RunOutput) error

	app     *tview.Application
	header  *tview.TextView
	list    *tview.List
	caseBar *tview.TextView
	details *tview.TextView

	saveErr error
}

func newFailureBrowser(run *domain.RunOutput, save func(*domain.RunOutput) error) *failureBrowser {
	b := &failureBrowser{
		run:  run,
		save: save,
		app:  tview.NewApplication(),
		header: tview.NewTextView().
			SetTextAlign(tview.AlignCenter).
			SetDynamicColors(true),
		list: tview.NewList().
			ShowSecondaryText(false).
			SetHighlightFullLine(true),
		caseBar: tview.NewTextView().
			SetDynamicColors(true),
		details: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(true).
			SetWordWrap(true),
	}

	b.list.SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	for i, failure := range run.Details {
		b.list.AddItem(listItemText(failure, i+1), "", 0, nil)
	}

	b.list.SetChangedFunc(func(int, string, string, rune) { b.showSelected() })
	b.list.SetInputCapture(b.onListKey)
	b.details.SetInputCapture(b.onDetailsKey)

	b.refreshHeader()
	b.showSelected()
	return b
}

// layout places the header on top, the failure list on the left third and
// the selected failure on the right
func (b *failureBrowser) layout() tview.Primitive {
	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(b.caseBar, 2, 0, false).
		AddItem(b.details, 0, 1, false)

	body := tview.NewFlex().
		AddItem(b.list, 0, 1, true).
		AddItem(right, 0, 2, false)

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(b.header, 1, 0, false).
		AddItem(body, 0, 1, true)
}

func (b *failureBrowser) onListKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter, tcell.KeyRight:
		b.app.SetFocus(b.details)
		return nil
	case tcell.KeyCtrlC:
		b.app.Stop()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'r' || event.Rune() == 'R' {
			b.toggleResolved(b.list.GetCurrentItem())
			return nil
		}
	}
	return event
}

func (b *failureBrowser) onDetailsKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft, tcell.KeyEsc:
		b.app.SetFocus(b.list)
		return nil
	case tcell.KeyCtrlC:
		b.app.Stop()
		return nil
	}
	return event
}

// toggleResolved flips the resolved mark of the n-th failure and persists the
// run; a failed save ends the session
func (b *failureBrowser) toggleResolved(n int) {
	if n < 0 || n >= len(b.run.Details) {
		return
	}
	failure := &b.run.Details[n]
	failure.Resolved = !failure.Resolved
	b.list.SetItemText(n, listItemText(*failure, n+1), "")
	b.refreshHeader()

	if err := b.save(b.run); err != nil {
		b.saveErr = err
		b.app.Stop()
	}
}

func (b *failureBrowser) refreshHeader() {
	b.header.SetText(headerText(b.run.Details))
}

func (b *failureBrowser) showSelected() {
	n := b.list.GetCurrentItem()
	if n < 0 || n >= len(b.run.Details) {
		return
	}
	failure := b.run.Details[n]
	b.caseBar.SetText(formatFailureStats(failure, n+1))
	b.details.SetText(formatFailureDetails(failure)).ScrollToBeginning()
}

func headerText(failures []domain.TestFailure) string {
	unresolved := 0
	for _, f := range failures {
		if !f.Resolved {
			unresolved++
		}
	}
	return fmt.Sprintf(" %d failed, %d unresolved | ↑↓ select, [yellow]r[white] resolve, → details, ← back, Ctrl+C quit ",
		len(failures), unresolved)
}

func listItemText(failure domain.TestFailure, number int) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", number)
	}
	name = tview.Escape(name)
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ %d. %s[white]", number, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", number, name)
}

// formatFailureDetails renders a failure with tview color tags: the command,
// then the stored summary with expected-only diff lines green and actual-only
// lines red
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.TestName))
	if failure.Cmd != "" {
		fmt.Fprintf(&b, "[cyan]Command:[white] %s\n\n", tview.Escape(failure.Cmd))
	}

	for _, line := range splitLines(failure.Summary) {
		line = tview.Escape(strings.TrimSuffix(line, "\n"))
		switch {
		case strings.HasPrefix(line, "-"):
			fmt.Fprintf(&b, "[green]%s[white]\n", line)
		case strings.HasPrefix(line, "+"):
			fmt.Fprintf(&b, "[red]%s[white]\n", line)
		case strings.HasSuffix(line, " differs:"):
			fmt.Fprintf(&b, "[yellow]%s[white]\n", line)
		default:
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	return b.String()
}

// formatFailureStats renders the "<suite>::<case>" line of a failure
func formatFailureStats(failure domain.TestFailure, number int) string {
	suite := failure.Suite
	if suite == "" {
		suite = "Unknown suite"
	}

	testCase := CaseName(failure.Suite, failure.TestName)
	if testCase == "" {
		testCase = fmt.Sprintf("Test %d", number)
	}

	return fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white]::[yellow]%s[white]\n",
		tview.Escape(suite), tview.Escape(testCase))
}
