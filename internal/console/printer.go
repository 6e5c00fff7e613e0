// Package console renders download progress for the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/xkcd-downloader/internal/download"
)

// Styles for console output.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")),
		success: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1A3")),
		err: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFE66D")),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#A8DADC")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("#6C757D")),
	}
}

// Printer writes styled ProgressEvents to a writer.
//
// Colors are only emitted when the writer is a terminal.
type Printer struct {
	out     io.Writer
	verbose bool
	styles  styles
	bar     progress.Model
}

// NewPrinter creates a Printer. Verbose events are dropped unless verbose is set.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	renderer := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		verbose: verbose,
		styles:  newStyles(renderer),
		bar: progress.New(
			progress.WithSolidFill("#4ECDC4"),
			progress.WithWidth(24),
			progress.WithoutPercentage(),
		),
	}
}

// Handle renders a single event. It matches the download.Manager callback.
func (p *Printer) Handle(event download.ProgressEvent) {
	switch event.Level {
	case download.LevelVerbose:
		if !p.verbose {
			return
		}
		p.println(p.styles.dim.Render("   " + event.Message))
	case download.LevelInfo:
		if event.Total > 1 {
			p.println(p.position(event) + " " + event.Message)
			return
		}
		p.println(event.Message)
	case download.LevelWarning:
		p.Warning(event.Message)
	case download.LevelError:
		p.Error(event.Message)
	case download.LevelSuccess:
		p.println(p.styles.success.Render("✓ ") + event.Message)
	}
}

func (p *Printer) position(event download.ProgressEvent) string {
	done := float64(event.Current-1) / float64(event.Total)
	width := len(fmt.Sprint(event.Total))
	counter := fmt.Sprintf("%*d/%d", width, event.Current, event.Total)
	return p.bar.ViewAs(done) + " " + p.styles.info.Render(counter)
}

// Title prints a bold heading.
func (p *Printer) Title(msg string) {
	p.println(p.styles.title.Render(msg))
}

// Success prints a bold green message.
func (p *Printer) Success(msg string) {
	p.println(p.styles.success.Render(msg))
}

// Error prints a bold red message.
func (p *Printer) Error(msg string) {
	p.println(p.styles.err.Render(msg))
}

// Warning prints a yellow message.
func (p *Printer) Warning(msg string) {
	p.println(p.styles.warning.Render(msg))
}

// Info prints an unstyled message.
func (p *Printer) Info(msg string) {
	p.println(msg)
}

// Summary prints the outcome of a batch.
func (p *Printer) Summary(report *download.Report) {
	parts := []string{fmt.Sprintf("%d downloaded", report.Count(download.OutcomeSuccess))}
	if n := report.Count(download.OutcomePartial); n > 0 {
		parts = append(parts, fmt.Sprintf("%d without image", n))
	}
	if n := report.Count(download.OutcomeFailed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	line := fmt.Sprintf("%s (%.2f MB)", strings.Join(parts, ", "), float64(report.Bytes)/1024/1024)

	if report.HasFailures() {
		p.Warning("Done with errors: " + line)
		return
	}
	p.Success("Done! " + line)
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.out, s)
}
