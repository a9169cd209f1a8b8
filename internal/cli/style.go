package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	clrBrand = lipgloss.Color("214")
	clrRed   = lipgloss.Color("203")
	clrDim   = lipgloss.Color("245")
	clrWhite = lipgloss.Color("255")
)

// styles wraps lipgloss renderers. When output is not a terminal all styling
// is disabled and raw text is emitted.
type styles struct {
	enabled bool

	Header lipgloss.Style
	Title  lipgloss.Style
	Key    lipgloss.Style
	Value  lipgloss.Style
	Dim    lipgloss.Style
	Error  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
	}

	s := styles{enabled: enabled}
	if !enabled {
		noop := lipgloss.NewStyle()
		s.Header, s.Title, s.Key, s.Value, s.Dim, s.Error = noop, noop, noop, noop, noop, noop
		return s
	}

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(clrBrand)
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(clrWhite)
	s.Key = lipgloss.NewStyle().Foreground(clrDim)
	s.Value = lipgloss.NewStyle().Foreground(clrWhite)
	s.Dim = lipgloss.NewStyle().Foreground(clrDim)
	s.Error = lipgloss.NewStyle().Foreground(clrRed).Bold(true)
	return s
}

// kv formats a key-value pair like "   Key:       value".
func (s styles) kv(key, value string) string {
	if !s.enabled {
		return fmt.Sprintf("   %-10s %s", key+":", value)
	}
	return fmt.Sprintf("   %s %s",
		s.Key.Render(fmt.Sprintf("%-10s", key+":")),
		s.Value.Render(value),
	)
}

func (s styles) sectionHeader(title string) string {
	if !s.enabled {
		return title
	}
	return s.Header.Render(title)
}

func (s styles) title(text string) string {
	if !s.enabled {
		return text
	}
	return s.Title.Render(text)
}

func (s styles) dim(text string) string {
	if !s.enabled {
		return text
	}
	return s.Dim.Render(text)
}

func (s styles) errPrefix() string {
	if !s.enabled {
		return "ERROR:"
	}
	return s.Error.Render("ERROR:")
}

// PrintError writes err to w with a styled prefix.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, newStyles(w).errPrefix(), err)
}
