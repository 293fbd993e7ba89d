package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Shared lipgloss styles for CLI rendering.
var (
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	CyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	BrandStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	GreenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	YellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	DimStyle     = lipgloss.NewStyle().Faint(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// SupportsColor reports whether w is a terminal that should receive
// styled output. NO_COLOR always wins.
func SupportsColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
