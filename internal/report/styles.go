package report

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorAlert = lipgloss.Color("#FF6B6B") // failures, removed lines
	ColorGood  = lipgloss.Color("#4ECDC4") // pass, added lines
	ColorWarn  = lipgloss.Color("#FFE66D") // memory errors, timeouts
	ColorIce   = lipgloss.Color("#A8D8EA") // hunk headers
	ColorMuted = lipgloss.Color("#6c757d") // section headers
)

// Styles are bound to one renderer so colour follows the destination's
// capabilities. A non-terminal writer gets plain text.
type Styles struct {
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warn    lipgloss.Style
	Section lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
	Hunk    lipgloss.Style
}

// NewStyles builds the styles for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	verbatim := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Styles{
		Pass:    r.NewStyle().Foreground(ColorGood).Bold(true),
		Fail:    r.NewStyle().Foreground(ColorAlert).Bold(true),
		Warn:    r.NewStyle().Foreground(ColorWarn).Bold(true),
		Section: r.NewStyle().Foreground(ColorMuted),
		Added:   verbatim.Foreground(ColorGood),
		Removed: verbatim.Foreground(ColorAlert),
		Hunk:    verbatim.Foreground(ColorIce),
	}
}
