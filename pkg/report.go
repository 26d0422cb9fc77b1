package arcrelease

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter prints human-readable progress lines. A nil *Reporter is silent.
type Reporter struct {
	w     io.Writer
	green func(a ...interface{}) string
	cyan  func(a ...interface{}) string
	amber func(a ...interface{}) string
	red   func(a ...interface{}) string
}

// NewReporter writes to w. With noColor set, output carries no ANSI escapes.
func NewReporter(w io.Writer, noColor bool) *Reporter {
	paint := func(attr color.Attribute) func(a ...interface{}) string {
		c := color.New(attr)
		if noColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Reporter{
		w:     w,
		green: paint(color.FgGreen),
		cyan:  paint(color.FgCyan),
		amber: paint(color.FgYellow),
		red:   paint(color.FgRed),
	}
}

func (r *Reporter) line(mark string, format string, args ...interface{}) {
	if r == nil {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Step reports a completed action.
func (r *Reporter) Step(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.line(r.green("✓"), format, args...)
}

// Info reports something that is neither progress nor a problem.
func (r *Reporter) Info(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.line(r.cyan("ℹ"), format, args...)
}

// Warn reports a non-fatal problem.
func (r *Reporter) Warn(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.line(r.amber("⚠"), format, args...)
}

// Fail reports a fatal problem.
func (r *Reporter) Fail(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.line(r.red("✗"), format, args...)
}

// Bullet prints an indented list item.
func (r *Reporter) Bullet(format string, args ...interface{}) {
	if r == nil {
		return
	}
	fmt.Fprintf(r.w, "   • %s\n", fmt.Sprintf(format, args...))
}

// Highlight returns s in the reporter's accent color.
func (r *Reporter) Highlight(s string) string {
	if r == nil {
		return s
	}
	return r.cyan(s)
}
