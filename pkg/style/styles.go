package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles is the set of styles bound to one renderer
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Foreign lipgloss.Style
	Path    lipgloss.Style
	Point   lipgloss.Style
	Bold    lipgloss.Style
}

// Renderer styles agm's terminal output for one writer
type Renderer struct {
	lg     *lipgloss.Renderer
	Styles Styles
}

// NewRenderer detects whether w can show colors. Output is plain when
// NO_COLOR is set, w is not a terminal or the terminal has no colors.
func NewRenderer(w io.Writer) *Renderer {
	if !supportsColor(w) {
		return NewPlainRenderer(w)
	}
	return newRenderer(lipgloss.NewRenderer(w))
}

// NewPlainRenderer never emits escape sequences
func NewPlainRenderer(w io.Writer) *Renderer {
	return newRenderer(lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii)))
}

func supportsColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

func newRenderer(lg *lipgloss.Renderer) *Renderer {
	return &Renderer{
		lg: lg,
		Styles: Styles{
			Title:   lg.NewStyle().Foreground(HeadingColor).Bold(true),
			Muted:   lg.NewStyle().Foreground(MutedColor),
			Success: lg.NewStyle().Foreground(SuccessColor).Bold(true),
			Error:   lg.NewStyle().Foreground(ErrorColor).Bold(true),
			Warning: lg.NewStyle().Foreground(WarningColor).Bold(true),
			Foreign: lg.NewStyle().Foreground(ForeignColor),
			Path:    lg.NewStyle().Foreground(SecondaryColor).Italic(true),
			Point:   lg.NewStyle().Foreground(PointColor),
			Bold:    lg.NewStyle().Bold(true),
		},
	}
}

// Indent pads every line of s by two spaces per level
func (r *Renderer) Indent(s string, level int) string {
	return r.lg.NewStyle().PaddingLeft(level * 2).Render(s)
}
