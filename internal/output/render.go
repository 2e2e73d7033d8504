// internal/output/render.go
// Styled usage and error messages for the terminal

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderUsage writes the help text with a highlighted first line.
// Styling is dropped automatically when w is not a terminal.
func RenderUsage(w io.Writer, text string) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

	head, rest, _ := strings.Cut(text, "\n")
	fmt.Fprintln(w, title.Render(head))
	if rest != "" {
		fmt.Fprint(w, rest)
	}
}

// RenderError writes "<program> problem parsing arguments: <reason>"
func RenderError(w io.Writer, program string, err error) {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))

	fmt.Fprintf(w, "%s %s %v\n", program, label.Render("problem parsing arguments:"), err)
}
