package cli

import (
	"fmt"
	"io"
	"strings"

	apperrors "bankdesk/internal/errors"

	"github.com/fatih/color"
)

// renderer prints menus and message boxes
type renderer struct {
	out     io.Writer
	heading *color.Color
	success *color.Color
	failure *color.Color
}

func newRenderer(out io.Writer, noColor bool) *renderer {
	r := &renderer{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	if noColor {
		r.heading.DisableColor()
		r.success.DisableColor()
		r.failure.DisableColor()
	}
	return r
}

func (r *renderer) menu(title string, items []string) {
	fmt.Fprintln(r.out)
	r.heading.Fprintln(r.out, "==== "+title+" ====")
	for i, item := range items {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, item)
	}
}

// info shows a success message box
func (r *renderer) info(title string, lines ...string) {
	r.box(r.success, title, lines)
}

// notice shows an error message box
func (r *renderer) notice(n *apperrors.Notice) {
	r.box(r.failure, n.Title, strings.Split(n.Text(), "\n"))
}

func (r *renderer) line(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *renderer) box(c *color.Color, title string, lines []string) {
	c.Fprintln(r.out, "["+title+"]")
	for _, l := range lines {
		for _, part := range strings.Split(l, "\n") {
			c.Fprintln(r.out, "  "+part)
		}
	}
}
