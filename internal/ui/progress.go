package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"pharaoh/internal/domain"
)

// ProgressBar renders run progress with success and failure counts
type ProgressBar struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	passed int
	failed int
}

// NewProgressBar creates a progress bar drawn on w once the run starts
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{writer: w}
}

// Start creates the bar for a run of total test cases
func (p *ProgressBar) Start(total int) {
	p.passed, p.failed = 0, 0
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.writer, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Observe counts one finished test case
func (p *ProgressBar) Observe(result domain.TestResult, _ time.Duration) {
	if result.IsSuccessful() {
		p.passed++
	} else {
		p.failed++
	}
	p.Update(p.passed, p.failed)
}

// Update updates the progress bar with success and failure counts
func (p *ProgressBar) Update(successCount, failCount int) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(describe(successCount, failCount))
	_ = p.bar.Set(successCount + failCount)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

func describe(successCount, failCount int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[success: %d", successCount) +
		" | " +
		color.RedString("failed: %d]", failCount)
}
