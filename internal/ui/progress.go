package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressBar shows per-case progress of one golden file. It implements
// execution.Progress; the bar is created once the case count is known.
type ProgressBar struct {
	label string
	w     io.Writer
	bar   *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar labelled with the golden file name
func NewProgressBar(label string, w io.Writer) *ProgressBar {
	return &ProgressBar{label: label, w: w}
}

// Start creates the underlying bar for total cases
func (p *ProgressBar) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(p.describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update updates the progress bar with pass and failure counts
func (p *ProgressBar) Update(completed, passed, failed int) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(p.describe(passed, failed))
	_ = p.bar.Set(completed)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

func (p *ProgressBar) describe(passed, failed int) string {
	return color.CyanString("%s: ", p.label) +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// IsTerminal reports whether file is attached to a terminal
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// Clear clears the terminal screen when stdout is a terminal
func Clear() {
	if IsTerminal(os.Stdout) {
		fmt.Print("\033[2J\033[H")
	}
}
