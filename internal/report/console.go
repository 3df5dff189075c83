package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colours for console output.
var (
	colorInfo    = lipgloss.Color("#2196F3")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorHeading = lipgloss.Color("#4db6ac")
	colorMuted   = lipgloss.Color("#8a8f98")
)

type styles struct {
	info, success, warn, err, heading, dim lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, color bool) styles {
	if !color {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		info:    r.NewStyle().Foreground(colorInfo),
		success: r.NewStyle().Foreground(colorSuccess),
		warn:    r.NewStyle().Foreground(colorWarning),
		err:     r.NewStyle().Foreground(colorError),
		heading: r.NewStyle().Foreground(colorHeading).Bold(true),
		dim:     r.NewStyle().Foreground(colorMuted).Faint(true),
	}
}

// Console writes styled lines to a pair of writers. Warnings and errors go to errOut.
type Console struct {
	out      io.Writer
	errOut   io.Writer
	outStyle styles
	errStyle styles
}

// NewConsole builds a Console. Colour is applied only when color is true and the writer
// is a terminal.
func NewConsole(out, errOut io.Writer, color bool) *Console {
	return &Console{
		out:      out,
		errOut:   errOut,
		outStyle: newStyles(lipgloss.NewRenderer(out), color),
		errStyle: newStyles(lipgloss.NewRenderer(errOut), color),
	}
}

func (c *Console) Progress(msg string) { c.Info(msg) }

func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.errOut, c.errStyle.warn.Render("⚠ "+msg))
}

func (c *Console) Error(err error) {
	fmt.Fprintln(c.errOut, c.errStyle.err.Render("✗ "+err.Error()))
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, c.outStyle.info.Render(msg))
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.outStyle.success.Render("✓ "+msg))
}

func (c *Console) Heading(text string) {
	fmt.Fprintln(c.out, c.outStyle.heading.Render(text))
}

func (c *Console) Dim(text string) {
	fmt.Fprintln(c.out, c.outStyle.dim.Render(text))
}

func (c *Console) Newline() {
	fmt.Fprintln(c.out)
}
